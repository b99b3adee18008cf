package api

import (
	"encoding/json"
	"fmt"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// RejectedError is a structured non-2xx answer from the service.
type RejectedError struct {
	Status   int
	Messages []string
}

func (e *RejectedError) Error() string {
	return e.Message()
}

// Message joins the server messages with newlines, in order.
func (e *RejectedError) Message() string {
	return strings.Join(e.Messages, "\n")
}

// TransportError covers network failures and responses that could not be
// understood. Reason is safe to show to users; Err is for logs.
type TransportError struct {
	Reason string
	Err    error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Reason, e.Err)
	}
	return e.Reason
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

var stripMarkup = bluemonday.StrictPolicy()

// maxPageSummary bounds the text kept from an error page.
const maxPageSummary = 200

// extractAPIErrorBody reads {"error": ...} or {"errors": [...]}.
// "error" wins when both are present. Messages are kept as sent, only
// trimmed; items that are not strings are rendered as JSON rather than
// dropped.
func extractAPIErrorBody(body []byte) ([]string, bool) {
	if len(body) == 0 {
		return nil, false
	}

	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, false
	}

	if msg, ok := parseErrorValue(payload["error"]); ok {
		return []string{msg}, true
	}
	if list, ok := payload["errors"].([]any); ok {
		msgs := make([]string, 0, len(list))
		for _, item := range list {
			if msg, ok := parseErrorValue(item); ok {
				msgs = append(msgs, msg)
			}
		}
		if len(msgs) > 0 {
			return msgs, true
		}
	}
	return nil, false
}

func parseErrorValue(raw any) (string, bool) {
	switch value := raw.(type) {
	case nil:
		return "", false
	case string:
		msg := strings.TrimSpace(value)
		return msg, msg != ""
	case map[string]any:
		if nested, ok := parseErrorValue(value["error"]); ok {
			return nested, true
		}
		code, _ := value["code"].(string)
		message, _ := value["message"].(string)
		if msg, ok := formatAPIError(strings.TrimSpace(code), strings.TrimSpace(message)); ok {
			return msg, true
		}
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return fmt.Sprint(raw), true
	}
	return string(data), true
}

func formatAPIError(code, message string) (string, bool) {
	switch {
	case code != "" && message != "":
		return fmt.Sprintf("%s: %s", code, message), true
	case code != "":
		return code, true
	case message != "":
		return message, true
	default:
		return "", false
	}
}

// summarizeErrorPage turns an HTML or plain-text error body into one short
// readable line. It returns "" when nothing readable is left.
func summarizeErrorPage(body []byte) string {
	text := html.UnescapeString(string(stripMarkup.SanitizeBytes(body)))
	text = strings.Join(strings.Fields(text), " ")
	if runes := []rune(text); len(runes) > maxPageSummary {
		text = string(runes[:maxPageSummary]) + "..."
	}
	return text
}
