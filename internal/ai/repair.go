package ai

import (
	"encoding/json"
	"strings"
)

// The model is instructed to return bare JSON, but in practice it often wraps
// the payload in a markdown code fence or surrounds it with prose. One local
// repair attempt is made before giving up: strip the fence, then extract the
// first bracketed/braced span. No upstream retry.

// stripFences removes a leading ```json / ``` fence and the trailing ```.
func stripFences(s string) string {
	clean := strings.TrimSpace(s)

	if strings.HasPrefix(clean, "```json") {
		clean = strings.TrimPrefix(clean, "```json")
	} else if strings.HasPrefix(clean, "```") {
		clean = strings.TrimPrefix(clean, "```")
	}
	clean = strings.TrimLeft(clean, "\r\n")

	clean = strings.TrimSuffix(clean, "```")

	return strings.TrimSpace(clean)
}

// extractSpan returns the outermost open..close span of s, or "" when s
// contains no such span.
func extractSpan(s string, open, close byte) string {
	i := strings.IndexByte(s, open)
	j := strings.LastIndexByte(s, close)
	if i < 0 || j <= i {
		return ""
	}
	return s[i : j+1]
}

// decodeRepaired unmarshals provider output into v, applying the single
// repair attempt when the cleaned text does not parse as-is.
func decodeRepaired(raw string, open, close byte, v any) error {
	text := stripFences(raw)

	err := json.Unmarshal([]byte(text), v)
	if err == nil {
		return nil
	}

	if span := extractSpan(text, open, close); span != "" {
		if spanErr := json.Unmarshal([]byte(span), v); spanErr == nil {
			return nil
		}
	}

	return err
}
