package llm

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"
)

func TestWrapAPIError_Quota(t *testing.T) {
	apiErr := &googleapi.Error{
		Code:    429,
		Message: "Quota exceeded for quota metric",
	}

	wrapped := WrapAPIError(apiErr)

	var quotaErr *QuotaError
	require.ErrorAs(t, wrapped, &quotaErr)
	assert.Equal(t, FallbackRetryDelay, quotaErr.RetryAfter)
	assert.ErrorIs(t, wrapped, apiErr)
}

func TestWrapAPIError_QuotaWithRetryDelayInBody(t *testing.T) {
	apiErr := &googleapi.Error{
		Code:    429,
		Message: "RESOURCE_EXHAUSTED",
		Body:    `{"error": {"details": [{"@type": "type.googleapis.com/google.rpc.RetryInfo", "retryDelay": "37s"}]}}`,
	}

	wrapped := WrapAPIError(apiErr)

	var quotaErr *QuotaError
	require.ErrorAs(t, wrapped, &quotaErr)
	assert.Equal(t, 37*time.Second, quotaErr.RetryAfter)
}

func TestWrapAPIError_QuotaWithRetryInfoDetail(t *testing.T) {
	apiErr := &googleapi.Error{
		Code:    429,
		Message: "RESOURCE_EXHAUSTED",
		Details: []interface{}{
			map[string]interface{}{
				"@type":      "type.googleapis.com/google.rpc.RetryInfo",
				"retryDelay": "21s",
			},
		},
	}

	wrapped := WrapAPIError(apiErr)

	var quotaErr *QuotaError
	require.ErrorAs(t, wrapped, &quotaErr)
	assert.Equal(t, 21*time.Second, quotaErr.RetryAfter)
}

func TestWrapAPIError_QuotaWithProtoDuration(t *testing.T) {
	apiErr := &googleapi.Error{
		Code:    429,
		Message: "RESOURCE_EXHAUSTED",
		Details: []interface{}{
			map[string]interface{}{
				"@type":      "type.googleapis.com/google.rpc.RetryInfo",
				"retryDelay": map[string]interface{}{"seconds": 8, "nanos": 0},
			},
		},
	}

	wrapped := WrapAPIError(apiErr)

	var quotaErr *QuotaError
	require.ErrorAs(t, wrapped, &quotaErr)
	assert.Equal(t, 8*time.Second, quotaErr.RetryAfter)
}

func TestWrapAPIError_Auth(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"http 403", &googleapi.Error{Code: 403, Message: "forbidden"}},
		{"http 401", &googleapi.Error{Code: 401, Message: "unauthorized"}},
		{"invalid key message", fmt.Errorf("API key not valid. Please pass a valid API key")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := WrapAPIError(tt.err)
			var authErr *AuthError
			assert.ErrorAs(t, wrapped, &authErr)
		})
	}
}

func TestWrapAPIError_QuotaFromMessageText(t *testing.T) {
	err := fmt.Errorf(`googleapi: got HTTP response code 429 with body: {"retryDelay": "5s"}`)

	wrapped := WrapAPIError(err)

	var quotaErr *QuotaError
	require.ErrorAs(t, wrapped, &quotaErr)
	assert.Equal(t, 5*time.Second, quotaErr.RetryAfter)
}

func TestWrapAPIError_Passthrough(t *testing.T) {
	err := errors.New("connection reset by peer")

	wrapped := WrapAPIError(err)

	assert.Equal(t, err, wrapped)
}

func TestWrapAPIError_Nil(t *testing.T) {
	assert.NoError(t, WrapAPIError(nil))
}
