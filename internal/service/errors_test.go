package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError_Message(t *testing.T) {
	assert.Equal(t, "item 2: itemNumber: is required", (&ValidationError{Index: 2, Field: "itemNumber", Message: "is required"}).Error())
	assert.Equal(t, "item 0: duplicate key", (&ValidationError{Index: 0, Message: "duplicate key"}).Error())
	assert.Equal(t, "ratings: must not be empty", (&ValidationError{Index: -1, Field: "ratings", Message: "must not be empty"}).Error())
}

func TestNotFoundError_Is(t *testing.T) {
	err := fmt.Errorf("lookup: %w", &NotFoundError{Resource: "candidate", ID: "7"})
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, "lookup: candidate 7 not found", err.Error())
}

func TestPersistence_DoesNotDoubleWrap(t *testing.T) {
	base := errors.New("connection reset")
	first := persistence("upsert rating", base)
	second := persistence("submit batch", first)

	assert.Same(t, first, second)
	assert.ErrorIs(t, second, base)
}
