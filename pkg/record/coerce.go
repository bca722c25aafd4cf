package record

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// ParseNumber coerces form input into a number. Strings may use a comma as
// decimal separator ("12,5" -> 12.5). Empty, invalid and non-finite input
// gives nil.
func ParseNumber(v any) *float64 {
	var f float64
	switch n := v.(type) {
	case nil:
		return nil
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case uint:
		f = float64(n)
	case *float64:
		if n == nil {
			return nil
		}
		f = *n
	case json.Number:
		return ParseNumber(n.String())
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return nil
		}
		parsed, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
		if err != nil {
			return nil
		}
		f = parsed
	default:
		return nil
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

func asString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case *string:
		if s == nil {
			return ""
		}
		return *s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(s)
	case json.Number:
		return s.String()
	}
	return fmt.Sprint(v)
}

// asOptionalString keeps null apart from "".
func asOptionalString(v any) *string {
	if v == nil {
		return nil
	}
	if p, ok := v.(*string); ok {
		if p == nil {
			return nil
		}
		s := *p
		return &s
	}
	s := asString(v)
	return &s
}

func asBool(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case string:
		switch strings.ToLower(strings.TrimSpace(b)) {
		case "true", "1", "on", "sim":
			return true
		}
	case float64:
		return b != 0
	case json.Number:
		f, err := b.Float64()
		return err == nil && f != 0
	}
	return false
}

func asStrings(v any) []string {
	switch l := v.(type) {
	case []string:
		out := make([]string, len(l))
		copy(out, l)
		return out
	case []any:
		out := make([]string, 0, len(l))
		for _, item := range l {
			out = append(out, asString(item))
		}
		return out
	case string:
		if l == "" {
			return []string{}
		}
		return []string{l}
	}
	return []string{}
}

func asID(v any) (uint, bool) {
	switch n := v.(type) {
	case uint:
		return n, true
	case int:
		if n >= 0 {
			return uint(n), true
		}
	case float64:
		if n >= 0 && n == math.Trunc(n) {
			return uint(n), true
		}
	case json.Number:
		return asID(n.String())
	case string:
		if id, err := strconv.ParseUint(strings.TrimSpace(n), 10, 64); err == nil {
			return uint(id), true
		}
	case *uint:
		if n != nil {
			return *n, true
		}
	}
	return 0, false
}

func asOptionalID(v any) *uint {
	id, ok := asID(v)
	if !ok {
		return nil
	}
	return &id
}

func asTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(time.RFC3339Nano, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
