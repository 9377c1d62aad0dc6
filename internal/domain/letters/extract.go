package letters

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ExtractJSON parses free-form generation output into a flat string
// map. The output is untrusted: models wrap JSON in markdown fences,
// prose preambles and trailing commentary, so extraction runs two
// stages before giving up:
//
//  1. take the span from the first '{' to the last '}' (greedy, to
//     tolerate trailing commentary);
//  2. failing that, strip a leading ```json fence and a trailing ```
//     fence and parse the remainder whole.
//
// Missing expected keys are filled with their documented defaults —
// partial success beats total failure once a JSON object parsed.
// A MalformedOutputError is returned only when no object can be
// located or parsed at all.
func ExtractJSON(raw string, expectedKeys []string) (map[string]string, error) {
	candidate := braceSpan(raw)
	if candidate == "" {
		candidate = stripFences(raw)
	}
	if strings.TrimSpace(candidate) == "" {
		return nil, newMalformedOutputError(raw, fmt.Errorf("no JSON object found"))
	}

	var parsed map[string]any
	if err := json.Unmarshal([]byte(candidate), &parsed); err != nil {
		// Brace-span may have grabbed prose braces; retry on the
		// fence-stripped whole string before failing.
		fallback := stripFences(raw)
		if fallback != candidate {
			if err2 := json.Unmarshal([]byte(fallback), &parsed); err2 == nil {
				return fillDefaults(flatten(parsed), expectedKeys), nil
			}
		}
		return nil, newMalformedOutputError(raw, err)
	}
	return fillDefaults(flatten(parsed), expectedKeys), nil
}

// braceSpan returns the substring from the first '{' to the last '}',
// or "" when no such span exists.
func braceSpan(s string) string {
	start := strings.IndexByte(s, '{')
	end := strings.LastIndexByte(s, '}')
	if start == -1 || end <= start {
		return ""
	}
	return s[start : end+1]
}

// stripFences removes a leading ```json (or bare ```) fence line and a
// trailing ``` fence, returning the trimmed remainder.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		} else {
			return ""
		}
		if end := strings.LastIndex(s, "```"); end != -1 {
			s = s[:end]
		}
		s = strings.TrimSpace(s)
	}
	return s
}

// flatten stringifies non-string JSON values so callers always see a
// flat string map regardless of how the model typed its fields.
func flatten(parsed map[string]any) map[string]string {
	out := make(map[string]string, len(parsed))
	for k, v := range parsed {
		switch val := v.(type) {
		case string:
			out[k] = val
		case float64:
			out[k] = strconv.FormatFloat(val, 'f', -1, 64)
		case bool:
			out[k] = strconv.FormatBool(val)
		case nil:
			out[k] = ""
		default:
			// Nested objects/arrays are re-encoded verbatim.
			if b, err := json.Marshal(val); err == nil {
				out[k] = string(b)
			}
		}
	}
	return out
}

func fillDefaults(m map[string]string, expectedKeys []string) map[string]string {
	for _, k := range expectedKeys {
		if strings.TrimSpace(m[k]) == "" {
			m[k] = defaultForKey(k)
		}
	}
	return m
}

// defaultForKey documents the per-key fill value for absent fields.
func defaultForKey(key string) string {
	switch key {
	case "summary":
		return DefaultSummary
	case "parameters":
		return ""
	default:
		return DefaultValue
	}
}
