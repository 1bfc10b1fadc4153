package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"google.golang.org/api/googleapi"
)

// AuthError indicates the API rejected the supplied credentials. It is never
// retried.
type AuthError struct {
	Message string
	Cause   error
}

func (e *AuthError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("authentication failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("authentication failed: %s", e.Message)
}

func (e *AuthError) Unwrap() error {
	return e.Cause
}

// QuotaError indicates the provider rejected the call for rate or quota
// reasons. RetryAfter carries the provider-suggested wait, or a fallback when
// the response did not include one.
type QuotaError struct {
	Message    string
	RetryAfter time.Duration
	Cause      error
}

func (e *QuotaError) Error() string {
	return fmt.Sprintf("quota exceeded: %s (retry after %s)", e.Message, e.RetryAfter)
}

func (e *QuotaError) Unwrap() error {
	return e.Cause
}

// ResponseError indicates the provider returned a response the caller could
// not use (empty candidates, malformed payload, schema mismatch).
type ResponseError struct {
	Message string
	Cause   error
}

func (e *ResponseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("unusable model response: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("unusable model response: %s", e.Message)
}

func (e *ResponseError) Unwrap() error {
	return e.Cause
}

// FallbackRetryDelay is used when a quota response carries no usable
// RetryInfo detail.
const FallbackRetryDelay = 12 * time.Second

// WrapAPIError classifies a raw provider error into the package's error
// taxonomy. Quota exhaustion (HTTP 429 / RESOURCE_EXHAUSTED) becomes a
// QuotaError with the provider-suggested delay extracted from RetryInfo;
// credential problems become an AuthError; everything else passes through
// unchanged.
func WrapAPIError(err error) error {
	if err == nil {
		return nil
	}

	msg := err.Error()

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		if apiErr.Code == 429 || strings.Contains(apiErr.Message, "RESOURCE_EXHAUSTED") {
			return &QuotaError{
				Message:    apiErr.Message,
				RetryAfter: retryDelayFromError(apiErr),
				Cause:      err,
			}
		}
		if apiErr.Code == 401 || apiErr.Code == 403 || strings.Contains(apiErr.Message, "API key not valid") {
			return &AuthError{Message: apiErr.Message, Cause: err}
		}
		return err
	}

	// Some transport paths surface the status as text only.
	if strings.Contains(msg, "429") || strings.Contains(msg, "RESOURCE_EXHAUSTED") {
		return &QuotaError{
			Message:    msg,
			RetryAfter: retryDelayFromMessage(msg),
			Cause:      err,
		}
	}
	if strings.Contains(msg, "API key not valid") || strings.Contains(msg, "API_KEY_INVALID") {
		return &AuthError{Message: msg, Cause: err}
	}

	return err
}

// retryInfoDetail is the RetryInfo shape attached to quota error details.
// The retryDelay field arrives either as a duration string ("12s") or as a
// proto duration object.
type retryInfoDetail struct {
	Type       string          `json:"@type"`
	RetryDelay json.RawMessage `json:"retryDelay"`
}

type protoDuration struct {
	Seconds int64 `json:"seconds"`
	Nanos   int64 `json:"nanos"`
}

func retryDelayFromError(apiErr *googleapi.Error) time.Duration {
	for _, detail := range apiErr.Details {
		raw, err := json.Marshal(detail)
		if err != nil {
			continue
		}
		var info retryInfoDetail
		if err := json.Unmarshal(raw, &info); err != nil {
			continue
		}
		if !strings.HasSuffix(info.Type, "RetryInfo") || len(info.RetryDelay) == 0 {
			continue
		}
		if d, ok := parseRetryDelay(info.RetryDelay); ok {
			return d
		}
	}
	if d, ok := scanRetryDelay(apiErr.Body); ok {
		return d
	}
	return FallbackRetryDelay
}

func retryDelayFromMessage(msg string) time.Duration {
	if d, ok := scanRetryDelay(msg); ok {
		return d
	}
	return FallbackRetryDelay
}

func parseRetryDelay(raw json.RawMessage) (time.Duration, bool) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if d, err := time.ParseDuration(s); err == nil && d > 0 {
			return d, true
		}
		return 0, false
	}
	var pd protoDuration
	if err := json.Unmarshal(raw, &pd); err == nil {
		d := time.Duration(pd.Seconds)*time.Second + time.Duration(pd.Nanos)*time.Nanosecond
		if d > 0 {
			return d, true
		}
	}
	return 0, false
}

// scanRetryDelay looks for a `"retryDelay": "Ns"` fragment in a raw error
// body or message.
func scanRetryDelay(text string) (time.Duration, bool) {
	idx := strings.Index(text, "retryDelay")
	if idx < 0 {
		return 0, false
	}
	rest := text[idx:]
	start := strings.IndexAny(rest, "0123456789")
	if start < 0 {
		return 0, false
	}
	end := start
	for end < len(rest) && (rest[end] >= '0' && rest[end] <= '9' || rest[end] == '.') {
		end++
	}
	secs, err := strconv.ParseFloat(rest[start:end], 64)
	if err != nil || secs <= 0 {
		return 0, false
	}
	return time.Duration(secs * float64(time.Second)), true
}
