package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/skillbyte/internal/analysis"
	"github.com/jonathan/skillbyte/internal/ingestion"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrNoFile indicates a multipart upload without the resume field
type ErrNoFile struct {
	Field string
}

func (e *ErrNoFile) Error() string {
	return "No file uploaded. Please select a TXT, PDF or DOCX file."
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validationErr *ErrValidation
		noFileErr     *ErrNoFile
		extractErr    *ingestion.ExtractError
		tooLargeErr   *http.MaxBytesError
	)
	switch {
	case errors.As(err, &validationErr), errors.As(err, &noFileErr):
		return http.StatusBadRequest
	case errors.Is(err, analysis.ErrEmptyInput):
		return http.StatusBadRequest
	case errors.Is(err, ingestion.ErrUnsupportedType):
		return http.StatusUnsupportedMediaType
	case errors.As(err, &extractErr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &tooLargeErr):
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

// userMessage returns the text shown to the client for err. Internal errors
// are not exposed.
func userMessage(err error) string {
	var (
		validationErr *ErrValidation
		noFileErr     *ErrNoFile
		tooLargeErr   *http.MaxBytesError
	)
	switch {
	case errors.As(err, &validationErr), errors.As(err, &noFileErr):
		return err.Error()
	case errors.Is(err, analysis.ErrEmptyInput):
		return analysis.ErrEmptyInput.Error()
	case errors.Is(err, ingestion.ErrUnsupportedType):
		return "Invalid file type. Please upload a TXT, Markdown, HTML, PDF or DOCX file."
	case errors.As(err, &tooLargeErr):
		return fmt.Sprintf("File too large. The limit is %d bytes.", tooLargeErr.Limit)
	case HTTPStatus(err) == http.StatusUnprocessableEntity:
		return "The file could not be read. Please upload a text-based resume."
	default:
		return "Server error. Please try again later."
	}
}

// validationError converts validator errors into an *ErrValidation
func validationError(err error) error {
	var errs validator.ValidationErrors
	if errors.As(err, &errs) && len(errs) > 0 {
		fe := errs[0]
		return &ErrValidation{Field: fe.Field(), Message: fe.Tag()}
	}
	return &ErrValidation{Field: "body", Message: err.Error()}
}
