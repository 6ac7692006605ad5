package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"strings"
)

// Error carries an HTTP failure back to the caller. Message holds the most
// specific text the server offered; Body keeps the raw payload for logging.
type Error struct {
	StatusCode int
	Message    string
	Body       []byte
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return http.StatusText(e.StatusCode)
}

// IsUnauthorized reports whether err is an API error with status 401.
func IsUnauthorized(err error) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.StatusCode == http.StatusUnauthorized
}

// messageFromBody digs the most specific human-readable message out of an
// error payload. Tried in order: plain string body, "detail", "error",
// "non_field_errors", then the first field-specific error (keys sorted so the
// pick is deterministic).
func messageFromBody(body []byte) string {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return ""
	}

	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		// Non-JSON body: use it as-is if it looks like text.
		if !strings.HasPrefix(trimmed, "<") {
			return trimmed
		}
		return ""
	}

	switch val := v.(type) {
	case string:
		return val
	case map[string]any:
		for _, key := range []string{"detail", "error", "non_field_errors"} {
			if msg := asMessage(val[key]); msg != "" {
				return msg
			}
		}
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if msg := asMessage(val[k]); msg != "" {
				return k + ": " + msg
			}
		}
	}
	return ""
}

func asMessage(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case []any:
		if len(val) > 0 {
			if s, ok := val[0].(string); ok {
				return s
			}
		}
	}
	return ""
}
