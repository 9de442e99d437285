package onoffice

import (
	"fmt"
	"unicode/utf8"
)

const maxErrorBody = 200

// APIError is returned when the API answers but reports a failure, either
// with a non-200 HTTP status or with an error code on the request or action.
type APIError struct {
	HTTPStatus int
	Code       int
	ErrorCode  int
	Message    string
}

func (e *APIError) Error() string {
	switch {
	case e.ErrorCode != 0:
		return fmt.Sprintf("onoffice api error %d: %s", e.ErrorCode, e.Message)
	case e.Code != 0:
		return fmt.Sprintf("onoffice api status %d: %s", e.Code, e.Message)
	default:
		return fmt.Sprintf("onoffice api returned http status %d: %s", e.HTTPStatus, e.Message)
	}
}

// truncateForError shortens response bodies used in error messages without
// splitting a rune.
func truncateForError(body []byte) string {
	if len(body) <= maxErrorBody {
		return string(body)
	}
	cut := maxErrorBody
	for cut > 0 && !utf8.RuneStart(body[cut]) {
		cut--
	}
	return string(body[:cut]) + "... (truncated)"
}
