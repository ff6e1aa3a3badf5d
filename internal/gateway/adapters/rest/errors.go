// Package rest содержит HTTP клиенты для удаленного finance API.
package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Ошибки REST клиента.
var (
	// ErrSessionExpired возвращается, когда сессию не удалось восстановить:
	// refresh-токен отклонен, хранилище очищено. Для вызывающего это
	// терминальный исход - дальше только повторный вход.
	ErrSessionExpired = errors.New("session expired")
)

// APIError содержит ошибку удаленного API с деталями из тела ответа.
type APIError struct {
	StatusCode int
	Detail     string
	Fields     map[string][]string
}

// Error возвращает строковое представление ошибки API.
func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Detail)
	}
	if len(e.Fields) > 0 {
		parts := make([]string, 0, len(e.Fields))
		for field, msgs := range e.Fields {
			parts = append(parts, field+": "+strings.Join(msgs, "; "))
		}
		return fmt.Sprintf("api error %d: %s", e.StatusCode, strings.Join(parts, ", "))
	}
	return fmt.Sprintf("api error %d", e.StatusCode)
}

// parseAPIError разбирает тело ошибки в формате DRF: {"detail": ...},
// {"error": ...} либо карта ошибок по полям формы.
func parseAPIError(statusCode int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: statusCode}

	if len(body) == 0 {
		return apiErr
	}

	var envelope struct {
		Detail string `json:"detail"`
		Error  string `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil {
		if envelope.Detail != "" {
			apiErr.Detail = envelope.Detail
			return apiErr
		}
		if envelope.Error != "" {
			apiErr.Detail = envelope.Error
			return apiErr
		}
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return apiErr
	}

	fields := make(map[string][]string, len(raw))
	for field, msg := range raw {
		var list []string
		if err := json.Unmarshal(msg, &list); err == nil {
			fields[field] = list
			continue
		}
		var single string
		if err := json.Unmarshal(msg, &single); err == nil {
			fields[field] = []string{single}
		}
	}
	if len(fields) > 0 {
		apiErr.Fields = fields
	}

	return apiErr
}
