package node

import (
	"strconv"
	"strings"
)

// Parameters holds the user-configured field values for one execution.
// Values arrive loosely typed from the host (JSON numbers decode as
// float64), so the accessors normalize on read.
type Parameters map[string]interface{}

// String returns the field as a string, or "" when absent.
func (p Parameters) String(key string) string {
	switch v := p[key].(type) {
	case string:
		return v
	default:
		return ""
	}
}

// StringOr returns the field as a string, or def when absent or empty.
func (p Parameters) StringOr(key, def string) string {
	if s := p.String(key); s != "" {
		return s
	}
	return def
}

// Int returns the field as an int, accepting the numeric and string
// encodings hosts produce. Absent or unparsable values yield 0.
func (p Parameters) Int(key string) int {
	switch v := p[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case string:
		n, _ := strconv.Atoi(strings.TrimSpace(v))
		return n
	default:
		return 0
	}
}

// Bool returns the field as a bool; the string forms "true"/"false" are
// accepted as well. Absent values yield false.
func (p Parameters) Bool(key string) bool {
	switch v := p[key].(type) {
	case bool:
		return v
	case string:
		return strings.EqualFold(strings.TrimSpace(v), "true")
	default:
		return false
	}
}

// StringSlice returns the field as a list of non-empty trimmed strings.
// It accepts []string, []interface{} and comma-separated string forms.
func (p Parameters) StringSlice(key string) []string {
	switch v := p[key].(type) {
	case []string:
		return trimAll(v)
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, e := range v {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return trimAll(out)
	case string:
		return trimAll(strings.Split(v, ","))
	default:
		return nil
	}
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if t := strings.TrimSpace(s); t != "" {
			out = append(out, t)
		}
	}
	return out
}
