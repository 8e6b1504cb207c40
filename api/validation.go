// Package api provides validation utilities for API request handling.
package api

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const minQueryLength = 3

// ValidationError represents a validation error with field context
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResult holds the result of validation operations
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// AddError adds a validation error to the result
func (vr *ValidationResult) AddError(field, message string) {
	vr.Valid = false
	vr.Errors = append(vr.Errors, ValidationError{
		Field:   field,
		Message: message,
	})
}

// HasErrors returns true if there are validation errors
func (vr *ValidationResult) HasErrors() bool {
	return len(vr.Errors) > 0
}

// ValidateSearchQuery validates the query parameter of a search request.
// The query is required and its trimmed form must be at least three
// characters long.
func ValidateSearchQuery(query string) *ValidationResult {
	result := &ValidationResult{Valid: true}

	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		result.AddError("query", "Query is required and cannot be empty")
		return result
	}

	if len(trimmed) < minQueryLength {
		result.AddError("query", "Query must be at least 3 characters long")
		return result
	}

	return result
}

// ValidateIndexMode validates the mode parameter of a reindex request.
func ValidateIndexMode(mode string) *ValidationResult {
	result := &ValidationResult{Valid: true}

	switch mode {
	case "upsert", "rebuild":
	default:
		result.AddError("mode", "Mode must be 'upsert' or 'rebuild'")
	}

	return result
}

// SendValidationError sends a standardized validation error response
func SendValidationError(c *gin.Context, result *ValidationResult) {
	SendStructuredValidationError(c, result)
}
