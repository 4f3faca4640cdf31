package paramq

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"
)

///////////////////////////////////////////////////////////////////////////////
// Helpers
///////////////////////////////////////////////////////////////////////////////

// isAbsent reports whether a raw value counts as missing: untyped nil or a
// nil pointer, map, slice or interface.
func isAbsent(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}

// toString stringifies a raw value.
//
// Currently supports:
//   - string and []byte as is
//   - fmt.Stringer
//   - numbers without exponent noise (15, 3.5)
//   - time.Time as RFC 3339
//   - everything else through fmt.Sprint
func toString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case []byte:
		return string(t)
	case time.Time:
		return t.Format(time.RFC3339)
	case fmt.Stringer:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case []any:
		parts := make([]string, 0, len(t))
		for _, e := range t {
			parts = append(parts, toString(e))
		}
		return strings.Join(parts, ",")
	default:
		return fmt.Sprint(v)
	}
}

// toFloat converts native numbers and numeric strings to float64.
func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case int:
		return float64(t), true
	case int8:
		return float64(t), true
	case int16:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case uint:
		return float64(t), true
	case uint8:
		return float64(t), true
	case uint16:
		return float64(t), true
	case uint32:
		return float64(t), true
	case uint64:
		return float64(t), true
	case float32:
		return float64(t), true
	case float64:
		return t, !math.IsNaN(t)
	case bool:
		if t {
			return 1, true
		}
		return 0, true
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(f) {
			return 0, false
		}
		return f, true
	case []byte:
		return toFloat(string(t))
	default:
		return 0, false
	}
}

// toInt converts like toFloat and truncates any fractional part.
func toInt(v any) (int, bool) {
	if s, ok := v.(string); ok {
		if i, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			return i, true
		}
	}
	f, ok := toFloat(v)
	// float64(math.MaxInt) rounds up to -math.MinInt, which int cannot hold
	if !ok || math.IsInf(f, 0) || f >= -math.MinInt || f < math.MinInt {
		return 0, false
	}
	return int(f), true
}

// toSlice returns the elements of any slice or array value.
func toSlice(v any) ([]any, bool) {
	if items, ok := v.([]any); ok {
		return items, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	if rv.Type().Elem().Kind() == reflect.Uint8 {
		// []byte is a string, not a list
		return nil, false
	}
	items := make([]any, rv.Len())
	for i := range items {
		items[i] = rv.Index(i).Interface()
	}
	return items, true
}

// sameValue compares two parsed values, treating numbers of different Go
// types as equal when they hold the same value.
func sameValue(a, b any) bool {
	if fa, ok := numericValue(a); ok {
		if fb, ok := numericValue(b); ok {
			return fa == fb
		}
		return false
	}
	if ta, ok := a.(time.Time); ok {
		if tb, ok := b.(time.Time); ok {
			return ta.Equal(tb)
		}
		return false
	}
	return reflect.DeepEqual(a, b)
}

// numericValue is toFloat restricted to native number types.
func numericValue(v any) (float64, bool) {
	switch v.(type) {
	case string, []byte, bool:
		return 0, false
	}
	return toFloat(v)
}

func containsValue(set []any, v any) bool {
	for _, candidate := range set {
		if sameValue(candidate, v) {
			return true
		}
	}
	return false
}

// stringsToAny widens a string list into an allowed set.
func stringsToAny(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

// splitFields splits a space separated list, dropping empty entries.
func splitFields(s string) []string {
	return strings.Fields(s)
}

// boundFloat reads a numeric Min/Max option.
func boundFloat(state *ParserState, bound any, which string) (float64, bool, error) {
	if bound == nil {
		return 0, false, nil
	}
	f, ok := numericValue(bound)
	if !ok {
		return 0, false, configError(state.Name(), ErrInvalidBound, "%s must be a number, got %T", which, bound)
	}
	return f, true, nil
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
