package rest

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAPIError(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		body       string
		wantDetail string
		wantFields map[string][]string
	}{
		{
			name:       "detail envelope",
			statusCode: http.StatusUnauthorized,
			body:       `{"detail":"No active account found with the given credentials"}`,
			wantDetail: "No active account found with the given credentials",
		},
		{
			name:       "error envelope",
			statusCode: http.StatusBadRequest,
			body:       `{"error":"invalid request"}`,
			wantDetail: "invalid request",
		},
		{
			name:       "field errors",
			statusCode: http.StatusBadRequest,
			body:       `{"username":["A user with that username already exists."],"password":["Too short.","Too common."]}`,
			wantFields: map[string][]string{
				"username": {"A user with that username already exists."},
				"password": {"Too short.", "Too common."},
			},
		},
		{
			name:       "scalar field error",
			statusCode: http.StatusBadRequest,
			body:       `{"email":"Enter a valid email address."}`,
			wantFields: map[string][]string{"email": {"Enter a valid email address."}},
		},
		{
			name:       "empty body",
			statusCode: http.StatusBadGateway,
			body:       "",
		},
		{
			name:       "non-json body",
			statusCode: http.StatusInternalServerError,
			body:       "<html>Server Error</html>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apiErr := parseAPIError(tt.statusCode, []byte(tt.body))

			require.NotNil(t, apiErr)
			assert.Equal(t, tt.statusCode, apiErr.StatusCode)
			assert.Equal(t, tt.wantDetail, apiErr.Detail)
			assert.Equal(t, tt.wantFields, apiErr.Fields)
		})
	}
}

func TestAPIError_Error(t *testing.T) {
	t.Run("with detail", func(t *testing.T) {
		err := &APIError{StatusCode: 401, Detail: "token expired"}
		assert.Equal(t, "api error 401: token expired", err.Error())
	})

	t.Run("with fields", func(t *testing.T) {
		err := &APIError{StatusCode: 400, Fields: map[string][]string{"username": {"taken"}}}
		assert.Equal(t, "api error 400: username: taken", err.Error())
	})

	t.Run("bare status", func(t *testing.T) {
		err := &APIError{StatusCode: 502}
		assert.Equal(t, "api error 502", err.Error())
	})
}
