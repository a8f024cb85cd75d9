package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/xhrissun/rhrmpsb-system-sub000/internal/service"
)

// ValidationErrorResponse is the body of a 400 caused by batch validation
type ValidationErrorResponse struct {
	Error string `json:"error"`
	Index *int   `json:"index,omitempty"`
	Field string `json:"field,omitempty"`
}

// ConflictResponse asks the client to resubmit with isUpdate set
type ConflictResponse struct {
	Error          string `json:"error"`
	RequiresUpdate bool   `json:"requiresUpdate"`
	ExistingCount  int    `json:"existingCount"`
}

// writeServiceError maps a service error to its HTTP status and body
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		validationErr *service.ValidationError
		conflictErr   *service.ConflictError
		notFoundErr   *service.NotFoundError
		forbiddenErr  *service.ForbiddenError
		persistErr    *service.PersistenceError
	)

	switch {
	case errors.As(err, &validationErr):
		resp := ValidationErrorResponse{Error: validationErr.Error(), Field: validationErr.Field}
		if validationErr.Index >= 0 {
			idx := validationErr.Index
			resp.Index = &idx
		}
		respondWithJSON(w, http.StatusBadRequest, resp)

	case errors.As(err, &conflictErr):
		respondWithJSON(w, http.StatusConflict, ConflictResponse{
			Error:          conflictErr.Error(),
			RequiresUpdate: true,
			ExistingCount:  conflictErr.ExistingCount,
		})

	case errors.As(err, &notFoundErr):
		respondWithError(w, http.StatusNotFound, notFoundErr.Error())

	case errors.As(err, &forbiddenErr):
		respondWithError(w, http.StatusForbidden, forbiddenErr.Error())

	case errors.As(err, &persistErr):
		slog.Error("Persistence failure", "op", persistErr.Op, "path", r.URL.Path, "error", persistErr.Err)
		respondWithError(w, http.StatusInternalServerError, ErrMsgInternal)

	default:
		slog.Error("Unhandled service error", "path", r.URL.Path, "error", err)
		respondWithError(w, http.StatusInternalServerError, ErrMsgInternal)
	}
}
