// Package dto provides Data Transfer Objects for API requests/responses.
package dto

import (
	"shelfmark/internal/core/apperror"
	"shelfmark/internal/core/id"
)

// ParseOptionalID parses an optional UUID string from a request.
func ParseOptionalID(s *string) (*id.ID, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	parsed, err := id.Parse(*s)
	if err != nil {
		return nil, apperror.NewValidation("invalid id").
			WithDetail("value", *s)
	}
	return &parsed, nil
}

// idString renders an optional ID for a response.
func idString(i *id.ID) *string {
	if i == nil {
		return nil
	}
	s := i.String()
	return &s
}

// --- List parameters ---

// ListRequest contains common list query parameters.
type ListRequest struct {
	Search string `form:"search"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=200"`
	Offset int    `form:"offset" binding:"omitempty,min=0"`
}

// Defaults sets default list values.
func (r *ListRequest) Defaults() {
	if r.Limit == 0 {
		r.Limit = 50
	}
}

// ListResponse wraps list results.
type ListResponse struct {
	Items  any `json:"items"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// --- ID Response ---

// IDResponse for create operations.
type IDResponse struct {
	ID string `json:"id"`
}

// NewIDResponse creates ID response.
func NewIDResponse(i id.ID) IDResponse {
	return IDResponse{ID: i.String()}
}

// --- Success Response ---

// SuccessResponse for operations without data.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// --- Error Response ---

// ErrorResponse for error details.
type ErrorResponse struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}
