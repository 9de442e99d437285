package onoffice

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncateForError(t *testing.T) {
	t.Run("short body unchanged", func(t *testing.T) {
		assert.Equal(t, "bad gateway", truncateForError([]byte("bad gateway")))
	})

	t.Run("ascii cut at limit", func(t *testing.T) {
		got := truncateForError([]byte(strings.Repeat("a", 300)))
		assert.Equal(t, strings.Repeat("a", maxErrorBody)+"... (truncated)", got)
	})

	t.Run("multi-byte rune kept whole", func(t *testing.T) {
		// 199 ASCII bytes followed by "ä" puts the limit inside the rune.
		body := strings.Repeat("a", maxErrorBody-1) + strings.Repeat("ä", 10)
		got := truncateForError([]byte(body))

		assert.True(t, utf8.ValidString(got))
		assert.Equal(t, strings.Repeat("a", maxErrorBody-1)+"... (truncated)", got)
	})
}

func TestAPIError_Error(t *testing.T) {
	assert.Equal(t, "onoffice api error 22: bad action", (&APIError{ErrorCode: 22, Message: "bad action"}).Error())
	assert.Equal(t, "onoffice api status 400: denied", (&APIError{Code: 400, Message: "denied"}).Error())
	assert.Equal(t, "onoffice api returned http status 502: down", (&APIError{HTTPStatus: 502, Message: "down"}).Error())
}
