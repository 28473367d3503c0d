// ABOUTME: Custom error types for the news pipeline and broadcast layer
// ABOUTME: Each type marks a failure scope so callers can degrade instead of aborting

package errors

import (
	"errors"
	"fmt"
)

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// ExternalAPIError represents an error from an external API
type ExternalAPIError struct {
	StatusCode int
	Message    string
	API        string
}

// Error implements the error interface
func (e *ExternalAPIError) Error() string {
	return fmt.Sprintf("external API error from %s: %d - %s", e.API, e.StatusCode, e.Message)
}

// SourceUnavailableError means one feed could not be reached or parsed this run.
// The source is skipped and its watermark stays where it was.
type SourceUnavailableError struct {
	Source string
	Err    error
}

// Error implements the error interface
func (e *SourceUnavailableError) Error() string {
	return fmt.Sprintf("source %s unavailable: %v", e.Source, e.Err)
}

// Unwrap returns the underlying cause
func (e *SourceUnavailableError) Unwrap() error {
	return e.Err
}

// ExtractionError means the full text of one article could not be resolved.
// Callers fall back to the feed snippet.
type ExtractionError struct {
	URL    string
	Reason string
	Err    error
}

// Error implements the error interface
func (e *ExtractionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("content extraction failed for %s: %s: %v", e.URL, e.Reason, e.Err)
	}
	return fmt.Sprintf("content extraction failed for %s: %s", e.URL, e.Reason)
}

// Unwrap returns the underlying cause
func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// SummarizationError means one article could not be summarized; it is dropped from the run
type SummarizationError struct {
	Link string
	Err  error
}

// Error implements the error interface
func (e *SummarizationError) Error() string {
	return fmt.Sprintf("summarization failed for %s: %v", e.Link, e.Err)
}

// Unwrap returns the underlying cause
func (e *SummarizationError) Unwrap() error {
	return e.Err
}

// PersistenceError means durable state could not be written
type PersistenceError struct {
	Resource string
	Err      error
}

// Error implements the error interface
func (e *PersistenceError) Error() string {
	return fmt.Sprintf("failed to persist %s: %v", e.Resource, e.Err)
}

// Unwrap returns the underlying cause
func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// TransportError means a send to one connected client failed
type TransportError struct {
	ClientID string
	Err      error
}

// Error implements the error interface
func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error for client %s: %v", e.ClientID, e.Err)
}

// Unwrap returns the underlying cause
func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsValidation checks if an error is a ValidationError
func IsValidation(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// IsExternalAPI checks if an error is an ExternalAPIError
func IsExternalAPI(err error) bool {
	var apiErr *ExternalAPIError
	return errors.As(err, &apiErr)
}

// IsSourceUnavailable checks if an error is a SourceUnavailableError
func IsSourceUnavailable(err error) bool {
	var sourceErr *SourceUnavailableError
	return errors.As(err, &sourceErr)
}

// IsExtraction checks if an error is an ExtractionError
func IsExtraction(err error) bool {
	var extractionErr *ExtractionError
	return errors.As(err, &extractionErr)
}

// IsSummarization checks if an error is a SummarizationError
func IsSummarization(err error) bool {
	var summaryErr *SummarizationError
	return errors.As(err, &summaryErr)
}

// IsPersistence checks if an error is a PersistenceError
func IsPersistence(err error) bool {
	var persistErr *PersistenceError
	return errors.As(err, &persistErr)
}

// IsTransport checks if an error is a TransportError
func IsTransport(err error) bool {
	var transportErr *TransportError
	return errors.As(err, &transportErr)
}

// WrapError wraps an error with additional context
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
