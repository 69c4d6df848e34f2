package netx

import (
	"encoding/json"
	"fmt"
	"strings"
)

// RequestError is returned for any non-2xx response.
type RequestError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *RequestError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("request failed: %d %s", e.StatusCode, e.Status)
	}
	return fmt.Sprintf("request failed: %d %s: %s", e.StatusCode, e.Status, e.Body)
}

// Detail returns the backend's human-readable message: the "detail" field of
// a JSON error body when there is one, otherwise the trimmed body text.
// Validation errors that carry a list of details are joined with "; ".
func (e *RequestError) Detail() string {
	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal([]byte(e.Body), &payload); err == nil && len(payload.Detail) > 0 {
		var s string
		if err := json.Unmarshal(payload.Detail, &s); err == nil {
			return s
		}
		var items []struct {
			Msg string `json:"msg"`
		}
		if err := json.Unmarshal(payload.Detail, &items); err == nil {
			msgs := make([]string, 0, len(items))
			for _, it := range items {
				if it.Msg != "" {
					msgs = append(msgs, it.Msg)
				}
			}
			if len(msgs) > 0 {
				return strings.Join(msgs, "; ")
			}
		}
	}
	return strings.TrimSpace(e.Body)
}
