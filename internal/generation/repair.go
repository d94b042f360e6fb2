package generation

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Repair turns raw model text into candidate JSON array text. It strips
// markdown code fences, falls back to the outermost [...] span when the text
// is not a bare array, and drops trailing commas before ] or }.
//
// Repair does not judge the items themselves; that is Validate's job. It
// fails with ErrSchemaInvalid only when no array can be located at all.
func Repair(raw string) (string, error) {
	text := stripFences(raw)

	if !isArray(text) {
		start := strings.IndexByte(text, '[')
		if start < 0 {
			return "", fmt.Errorf("%w: no JSON array in response", ErrSchemaInvalid)
		}
		end := strings.LastIndexByte(text, ']')
		if end < start {
			return "", fmt.Errorf("%w: unterminated JSON array in response", ErrSchemaInvalid)
		}
		text = text[start : end+1]
	}

	return stripTrailingCommas(text), nil
}

func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		// Drop an info string such as "json" up to the end of the fence line.
		if nl := strings.IndexByte(s, '\n'); nl >= 0 && !strings.ContainsAny(s[:nl], "[{") {
			s = s[nl+1:]
		} else {
			s = strings.TrimPrefix(s, "json")
		}
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

func isArray(s string) bool {
	var elems []json.RawMessage
	return strings.HasPrefix(s, "[") && json.Unmarshal([]byte(s), &elems) == nil
}

// stripTrailingCommas removes any comma that is followed, after optional
// whitespace, by a closing bracket or brace. Commas inside string literals
// are left alone.
func stripTrailingCommas(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	inString, escaped := false, false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString {
			b.WriteByte(c)
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case ',':
			j := i + 1
			for j < len(s) && isJSONSpace(s[j]) {
				j++
			}
			if j < len(s) && (s[j] == ']' || s[j] == '}') {
				continue
			}
		}
		b.WriteByte(c)
	}
	return b.String()
}

func isJSONSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
