package handlers

// Common error message constants shared across handlers
const (
	ErrMsgInvalidRequestBody = "Invalid request body"
	ErrMsgUnauthorized       = "Unauthorized"
	ErrMsgInvalidCandidateID = "Invalid candidateId"
	ErrMsgInvalidRaterID     = "Invalid raterId"
	ErrMsgInvalidVacancyID   = "Invalid vacancyId"
	ErrMsgInternal           = "Internal server error"
)

// API path constants
const (
	APIBasePath = "/api/v1"
)
