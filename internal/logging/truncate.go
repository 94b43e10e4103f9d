package logging

import (
	"encoding/json"
	"strings"
)

// Tool parameters and results carry whole paragraphs of document text.
// Debug logs keep a prefix, enough to correlate a call with its document,
// without mirroring entire documents into the log file.
const maxLoggedString = 256

func TruncateValue(value string) string {
	if len(value) <= maxLoggedString {
		return value
	}
	// Cut on a rune boundary.
	cut := maxLoggedString
	for cut > 0 && value[cut]&0xC0 == 0x80 {
		cut--
	}
	return value[:cut] + "…[truncated]"
}

func TruncateAny(value any) any {
	switch typed := value.(type) {
	case string:
		return TruncateValue(typed)
	case map[string]any:
		out := make(map[string]any, len(typed))
		for key, val := range typed {
			out[key] = TruncateAny(val)
		}
		return out
	case []any:
		out := make([]any, len(typed))
		for i, val := range typed {
			out[i] = TruncateAny(val)
		}
		return out
	case []string:
		out := make([]string, len(typed))
		for i, val := range typed {
			out[i] = TruncateValue(val)
		}
		return out
	default:
		return value
	}
}

func TruncateJSON(raw json.RawMessage) any {
	if len(raw) == 0 {
		return nil
	}
	var payload any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return TruncateValue(strings.TrimSpace(string(raw)))
	}
	return TruncateAny(payload)
}
