package pos

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrNotFound matches 404 responses on key-based operations. Use
// errors.Is(err, ErrNotFound) to detect it.
var ErrNotFound = errors.New("resource not found")

// HTTPError describes a non-2xx response that carried no user-facing
// validation message.
type HTTPError struct {
	Status int
	Body   string
	Detail string
}

func (e *HTTPError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("api returned status %d: %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("api returned status %d", e.Status)
}

// Is reports ErrNotFound for 404 responses so callers can use errors.Is
// without inspecting the status themselves.
func (e *HTTPError) Is(target error) bool {
	return target == ErrNotFound && e.Status == http.StatusNotFound
}

// ValidationError is a 4xx response whose body carried a "detail" field
// meant for the user (duplicate barcode, insufficient stock, and so on).
type ValidationError struct {
	Status int
	Detail string
}

func (e *ValidationError) Error() string {
	return e.Detail
}

// errorBody is the structured error payload the service returns.
type errorBody struct {
	Detail string `json:"detail"`
}

// decodeError classifies a non-2xx response per the API error contract:
// 404 satisfies errors.Is(err, ErrNotFound); other 4xx with a detail field
// become ValidationError; everything else is a plain HTTPError.
func decodeError(status int, body []byte) error {
	var payload errorBody
	_ = json.Unmarshal(body, &payload)
	detail := strings.TrimSpace(payload.Detail)

	if status == http.StatusNotFound {
		return &HTTPError{Status: status, Body: string(body), Detail: detail}
	}
	if status >= 400 && status < 500 && detail != "" {
		return &ValidationError{Status: status, Detail: detail}
	}
	return &HTTPError{Status: status, Body: string(body), Detail: detail}
}

// Reason extracts the message to show the user for err, falling back to
// the provided generic message when the error carries nothing displayable.
func Reason(err error, fallback string) string {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Detail
	}
	var he *HTTPError
	if errors.As(err, &he) && he.Detail != "" {
		return he.Detail
	}
	return fallback
}
