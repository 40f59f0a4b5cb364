package apiclient

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"

	apperrors "github.com/louisbranch/retina.care/internal/services/web/platform/errors"
)

// User-facing messages for statuses whose wording never comes from the
// backend body.
const (
	MessageUnauthorized   = "Invalid email or password, or your session has expired. Please sign in again."
	MessageDuplicateEmail = "An account with this email already exists."
	MessageValidation     = "Please check the highlighted fields."
	MessageNotImplemented = "This feature is not available yet."
	MessageServerError    = "The server encountered an error. Please try again later."
	MessageFailed         = "Request failed. Please try again."
	MessageUnreachable    = "Unable to reach the server. Check your connection and try again."
)

// Error is a backend call failure carrying one human-readable message.
type Error struct {
	// Status is the upstream HTTP status, or 0 for transport failures.
	Status  int
	Message string
	// Fields holds per-field validation messages from 422 responses.
	Fields map[string][]string
	cause  error
}

// Error returns the normalized user-facing message.
func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Message != "" {
		return e.Message
	}
	return MessageFailed
}

// Unwrap exposes transport causes to errors.Is.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

// HTTPStatus reports the upstream status for web error mapping.
func (e *Error) HTTPStatus() int {
	if e == nil {
		return 0
	}
	return e.Status
}

// Kind maps the failure to a web application error kind.
func (e *Error) Kind() apperrors.Kind {
	return apperrors.KindForStatus(e.HTTPStatus())
}

// FieldMessage returns the first message for field, if any.
func (e *Error) FieldMessage(field string) string {
	if e == nil {
		return ""
	}
	if msgs := e.Fields[field]; len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

// NormalizeMessage derives the single user-facing message for a non-2xx
// backend response.
func NormalizeMessage(status int, body []byte) string {
	msg, _ := normalize(status, body)
	return msg
}

func normalize(status int, body []byte) (string, map[string][]string) {
	switch status {
	case http.StatusUnauthorized:
		return MessageUnauthorized, nil
	case http.StatusConflict:
		return MessageDuplicateEmail, nil
	case http.StatusUnprocessableEntity:
		fields := fieldErrors(body)
		if len(fields) == 0 {
			return MessageValidation, nil
		}
		return joinFieldErrors(fields), fields
	case http.StatusNotImplemented:
		return MessageNotImplemented, nil
	}
	if msg := bodyMessage(body); msg != "" {
		return msg, nil
	}
	if status >= http.StatusInternalServerError {
		return MessageServerError, nil
	}
	return MessageFailed, nil
}

func bodyMessage(body []byte) string {
	var payload struct {
		Message any `json:"message"`
		Error   any `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if msg, ok := payload.Message.(string); ok && strings.TrimSpace(msg) != "" {
		return strings.TrimSpace(msg)
	}
	if msg, ok := payload.Error.(string); ok && strings.TrimSpace(msg) != "" {
		return strings.TrimSpace(msg)
	}
	return ""
}

// fieldErrors reads validation messages from "errors", then "data", then the
// top-level object. Values may be a string, a list of strings or a nested map.
func fieldErrors(body []byte) map[string][]string {
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil
	}
	for _, key := range []string{"errors", "data"} {
		raw, ok := payload[key]
		if !ok {
			continue
		}
		var nested map[string]any
		if err := json.Unmarshal(raw, &nested); err == nil && len(nested) > 0 {
			return flattenFields("", nested)
		}
	}
	top := make(map[string]any, len(payload))
	for key, raw := range payload {
		if key == "message" || key == "error" || key == "status" || key == "success" {
			continue
		}
		var value any
		if err := json.Unmarshal(raw, &value); err == nil {
			top[key] = value
		}
	}
	return flattenFields("", top)
}

func flattenFields(prefix string, values map[string]any) map[string][]string {
	out := map[string][]string{}
	for key, value := range values {
		name := key
		if prefix != "" {
			name = prefix + "." + key
		}
		switch typed := value.(type) {
		case string:
			if strings.TrimSpace(typed) != "" {
				out[name] = append(out[name], strings.TrimSpace(typed))
			}
		case []any:
			for _, item := range typed {
				if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
					out[name] = append(out[name], strings.TrimSpace(s))
				}
			}
		case map[string]any:
			for nestedName, msgs := range flattenFields(name, typed) {
				out[nestedName] = append(out[nestedName], msgs...)
			}
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func joinFieldErrors(fields map[string][]string) string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", name, strings.Join(fields[name], ", ")))
	}
	return strings.Join(parts, "; ")
}

func responseError(status int, body []byte) *Error {
	msg, fields := normalize(status, body)
	return &Error{Status: status, Message: msg, Fields: fields}
}

func transportError(cause error) *Error {
	return &Error{Status: 0, Message: MessageUnreachable, cause: cause}
}
