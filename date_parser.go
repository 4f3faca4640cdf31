package paramq

import (
	"fmt"
	"strings"
	"time"
)

// DateParser parses dates against FieldSpec.Format and enforces
// chronological Min/Max bounds. Bounds given as strings are parsed with the
// same format. Inputs without a zone are read as UTC.
type DateParser struct{}

func NewDateParser() *DateParser {
	return &DateParser{}
}

func (dp *DateParser) Kind() Kind {
	return KindDate
}

func (dp *DateParser) Parse(state *ParserState) (any, error) {
	return state.run(dp.parseDate)
}

func (dp *DateParser) parseDate(state *ParserState) (any, error) {
	format := state.Spec.Format
	if format == "" {
		format = DefaultDateFormat
	}
	layout, err := goLayout(format)
	if err != nil {
		return nil, configError(state.Name(), ErrInvalidFormat, "%v", err)
	}

	var date time.Time
	switch v := state.Val.(type) {
	case time.Time:
		date = v
	case *time.Time:
		date = *v
	default:
		parsed, err := time.Parse(layout, toString(v))
		if err != nil {
			return nil, state.Fail("%s must be a valid date", state.Name())
		}
		date = parsed
	}

	min, hasMin, err := dateBound(state, state.Spec.Min, layout, "min")
	if err != nil {
		return nil, err
	}
	if hasMin && date.Before(min) {
		return nil, state.Fail("%s must be greater than or equal to %s", state.Name(), min.Format(layout))
	}

	max, hasMax, err := dateBound(state, state.Spec.Max, layout, "max")
	if err != nil {
		return nil, err
	}
	if hasMax && date.After(max) {
		return nil, state.Fail("%s must be less than or equal to %s", state.Name(), max.Format(layout))
	}

	if state.Spec.OutputFormat != "" {
		out, err := goLayout(state.Spec.OutputFormat)
		if err != nil {
			return nil, configError(state.Name(), ErrInvalidFormat, "%v", err)
		}
		return date.Format(out), nil
	}
	return date, nil
}

// dateBound coerces a Min/Max option into a time.Time.
func dateBound(state *ParserState, bound any, layout, which string) (time.Time, bool, error) {
	switch b := bound.(type) {
	case nil:
		return time.Time{}, false, nil
	case time.Time:
		return b, true, nil
	case *time.Time:
		if b == nil {
			return time.Time{}, false, nil
		}
		return *b, true, nil
	case string:
		t, err := time.Parse(layout, b)
		if err != nil {
			return time.Time{}, false, configError(state.Name(), ErrInvalidBound, "%s %q does not match the date format", which, b)
		}
		return t, true, nil
	default:
		return time.Time{}, false, configError(state.Name(), ErrInvalidBound, "%s must be a date, got %T", which, bound)
	}
}

///////////////////////////////////////////////////////////////////////////////
// Date Formats
///////////////////////////////////////////////////////////////////////////////

// momentTokens maps moment style format tokens to Go layout elements,
// longest token first so that "YYYY" wins over "YY".
var momentTokens = []struct {
	token  string
	layout string
}{
	{"YYYY", "2006"},
	{"MMMM", "January"},
	{"dddd", "Monday"},
	{"MMM", "Jan"},
	{"ddd", "Mon"},
	{"SSS", "000"},
	{"YY", "06"},
	{"MM", "01"},
	{"DD", "02"},
	{"HH", "15"},
	{"hh", "03"},
	{"mm", "04"},
	{"ss", "05"},
	{"ZZ", "Z0700"},
	{"M", "1"},
	{"D", "2"},
	{"H", "15"},
	{"h", "3"},
	{"m", "4"},
	{"s", "5"},
	{"A", "PM"},
	{"a", "pm"},
	{"Z", "Z07:00"},
}

// goLayout translates a moment style format into a Go time layout. Formats
// that already contain the Go reference year are returned unchanged. Text in
// square brackets is copied literally, which Go layouts can only express when
// the text holds no layout element.
func goLayout(format string) (string, error) {
	if strings.Contains(format, "2006") {
		return format, nil
	}
	return layoutCache.GetOrCreate(format, func() (string, error) {
		return translateMoment(format)
	})
}

// literalProbe differs from the reference time in every layout element, so
// formatting it leaves plain text untouched and rewrites anything else.
var literalProbe = time.Date(1999, time.December, 31, 9, 48, 59, 987654321, time.FixedZone("QQQ", 3*3600+1800))

func translateMoment(format string) (string, error) {
	var sb strings.Builder
	for i := 0; i < len(format); {
		if format[i] == '[' {
			if end := strings.IndexByte(format[i:], ']'); end > 0 {
				literal := format[i+1 : i+end]
				if literalProbe.Format(literal) != literal {
					return "", fmt.Errorf("format %q: literal [%s] cannot be escaped in a Go layout", format, literal)
				}
				sb.WriteString(literal)
				i += end + 1
				continue
			}
		}

		matched := false
		for _, mt := range momentTokens {
			if strings.HasPrefix(format[i:], mt.token) {
				sb.WriteString(mt.layout)
				i += len(mt.token)
				matched = true
				break
			}
		}
		if !matched {
			sb.WriteByte(format[i])
			i++
		}
	}
	return sb.String(), nil
}
