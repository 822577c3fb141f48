package goKiosk

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// FailureKind classifies an [APIError] for callers that branch on failure
// class rather than status code.
type FailureKind uint8

const (
	// KindTransport is a non-2xx response that carried a decodable detail.
	KindTransport FailureKind = iota
	// KindAuthExpired is a 401: the session is no longer valid.
	KindAuthExpired
	// KindValidationRejected is a 422: the backend refused the parameters.
	KindValidationRejected
	// KindUnknown is a non-JSON or otherwise unparseable failure, including
	// transport-level errors (StatusCode 0).
	KindUnknown
)

// String implements fmt.Stringer for diagnostics.
func (k FailureKind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindAuthExpired:
		return "auth-expired"
	case KindValidationRejected:
		return "validation-rejected"
	default:
		return "unknown"
	}
}

// APIError is the single typed failure every gateway call produces. Callers
// never see a raw transport error: network failures carry StatusCode 0.
type APIError struct {
	StatusCode int
	Message    string

	kind FailureKind
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.StatusCode == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.StatusCode)
}

// Kind returns the failure classification.
func (e *APIError) Kind() FailureKind {
	if e == nil {
		return KindUnknown
	}
	return e.kind
}

func newAPIError(statusCode int, message string, kind FailureKind) *APIError {
	return &APIError{
		StatusCode: statusCode,
		Message:    message,
		kind:       kind,
	}
}

// detailMessage extracts the backend's {"detail": "..."} message from an
// error body. ok is false when the body is not JSON or the field is absent.
func detailMessage(body []byte) (string, bool) {
	var envelope struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return "", false
	}
	if envelope.Detail == "" {
		return "", false
	}
	return envelope.Detail, true
}

// failureFromBody maps a non-2xx response body to the typed failure,
// falling back to fallback when no detail can be decoded.
func failureFromBody(statusCode int, body []byte, fallback string) *APIError {
	kind := KindUnknown
	message := fallback
	if detail, ok := detailMessage(body); ok {
		message = detail
		kind = KindTransport
	}
	if statusCode == http.StatusUnauthorized {
		kind = KindAuthExpired
	}
	return newAPIError(statusCode, message, kind)
}
