package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xhrissun/rhrmpsb-system-sub000/internal/models"
)

func TestWhereClause(t *testing.T) {
	candidateID := uint(7)
	raterID := uint(3)

	where, args := whereClause(models.RatingLogFilter{}, "")
	assert.Empty(t, where)
	assert.Empty(t, args)

	where, args = whereClause(models.RatingLogFilter{
		CandidateID: &candidateID,
		RaterID:     &raterID,
		ItemNumber:  "ITEM-001",
		Action:      models.RatingActionUpdated,
	}, "l")
	assert.Equal(t, " WHERE l.candidate_id = $1 AND l.rater_id = $2 AND l.item_number = $3 AND l.action = $4", where)
	assert.Equal(t, []any{uint(7), uint(3), "ITEM-001", models.RatingActionUpdated}, args)

	where, args = whereClause(models.RatingLogFilter{BatchID: "b-1"}, "")
	assert.Equal(t, " WHERE batch_id = $1", where)
	assert.Equal(t, []any{"b-1"}, args)
}
