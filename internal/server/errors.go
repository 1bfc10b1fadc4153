package server

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jonathan/cv-studio/internal/ats"
	"github.com/jonathan/cv-studio/internal/enhance"
	"github.com/jonathan/cv-studio/internal/llm"
	"github.com/jonathan/cv-studio/internal/normalize"
	"github.com/jonathan/cv-studio/internal/validation"
)

// ErrInvalidSection indicates an unknown document section in the URL.
type ErrInvalidSection struct {
	Section string
}

func (e *ErrInvalidSection) Error() string {
	return fmt.Sprintf("unknown section: %q", e.Section)
}

// ErrEntryNotFound indicates no entry with the given id exists.
type ErrEntryNotFound struct {
	Section string
	ID      string
}

func (e *ErrEntryNotFound) Error() string {
	return fmt.Sprintf("no entry %q in section %q", e.ID, e.Section)
}

// ErrBadRequest indicates a malformed request body or missing parameter.
type ErrBadRequest struct {
	Message string
}

func (e *ErrBadRequest) Error() string {
	return e.Message
}

// ErrLLMUnavailable indicates no API key is configured for model-backed
// operations.
type ErrLLMUnavailable struct{}

func (e *ErrLLMUnavailable) Error() string {
	return "no API key configured; set GEMINI_API_KEY to enable AI features"
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		invalidSection *ErrInvalidSection
		entryNotFound  *ErrEntryNotFound
		badRequest     *ErrBadRequest
		llmUnavailable *ErrLLMUnavailable
		emptyJob       *ats.EmptyJobDescriptionError
		unknownField   *enhance.UnknownFieldError
		authErr        *llm.AuthError
		quotaErr       *llm.QuotaError
		responseErr    *llm.ResponseError
		validationErr  *validation.ValidationError
		unsupported    *normalize.UnsupportedFormatError
		sourceErr      *normalize.SourceError
	)

	switch {
	case errors.As(err, &invalidSection),
		errors.As(err, &badRequest),
		errors.As(err, &emptyJob),
		errors.As(err, &unknownField),
		errors.As(err, &validationErr),
		errors.As(err, &sourceErr):
		return http.StatusBadRequest
	case errors.As(err, &entryNotFound):
		return http.StatusNotFound
	case errors.As(err, &unsupported):
		return http.StatusUnsupportedMediaType
	case errors.As(err, &authErr), errors.As(err, &llmUnavailable):
		return http.StatusUnauthorized
	case errors.As(err, &quotaErr):
		return http.StatusTooManyRequests
	case errors.As(err, &responseErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// QuotaRetryAfter pulls the provider-suggested wait off a quota error, or
// zero for any other error.
func QuotaRetryAfter(err error) time.Duration {
	var quotaErr *llm.QuotaError
	if errors.As(err, &quotaErr) {
		return quotaErr.RetryAfter
	}
	return 0
}
