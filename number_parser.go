package paramq

import "strings"

// numberConverter turns a raw value into the family's numeric Go type.
type numberConverter func(v any) (any, float64, bool)

// NumberParser implements the number family: generic numbers, ints, floats
// and ids. The family shares validation and differs only in conversion and
// in the effective lower bound.
type NumberParser struct {
	kind    Kind
	convert numberConverter
	minimum *float64 // floor applied on top of the caller supplied Min
}

// NewNumberParser parses any numeric value into a float64.
func NewNumberParser() *NumberParser {
	return &NumberParser{kind: KindNumber, convert: convertFloat}
}

// NewIntParser parses into an int, truncating fractional input.
func NewIntParser() *NumberParser {
	return &NumberParser{kind: KindInt, convert: convertInt}
}

// NewFloatParser parses into a float64.
func NewFloatParser() *NumberParser {
	return &NumberParser{kind: KindFloat, convert: convertFloat}
}

// NewIdParser parses positive, non zero integer identifiers. The effective
// minimum is never lower than 1, whatever Min the caller supplies.
func NewIdParser() *NumberParser {
	one := 1.0
	return &NumberParser{kind: KindId, convert: convertInt, minimum: &one}
}

func (np *NumberParser) Kind() Kind {
	return np.kind
}

func (np *NumberParser) Parse(state *ParserState) (any, error) {
	return state.run(np.parseNumber)
}

func (np *NumberParser) parseNumber(state *ParserState) (any, error) {
	val, f, ok := np.convert(state.Val)
	if !ok {
		return nil, state.Fail("%s must be a number", state.Name())
	}

	if err := state.ValidateAllowed(val); err != nil {
		return nil, err
	}

	min, hasMin, err := boundFloat(state, state.Spec.Min, "min")
	if err != nil {
		return nil, err
	}
	if np.minimum != nil && (!hasMin || min < *np.minimum) {
		min, hasMin = *np.minimum, true
	}
	if hasMin && f < min {
		return nil, state.Fail("%s must be greater than or equal to %s", state.Name(), formatNumber(min))
	}

	max, hasMax, err := boundFloat(state, state.Spec.Max, "max")
	if err != nil {
		return nil, err
	}
	if hasMax && f > max {
		return nil, state.Fail("%s must be less than or equal to %s", state.Name(), formatNumber(max))
	}

	return val, nil
}

func convertInt(v any) (any, float64, bool) {
	i, ok := toInt(v)
	return i, float64(i), ok
}

func convertFloat(v any) (any, float64, bool) {
	f, ok := toFloat(v)
	return f, f, ok
}

// IdListParser parses a list of unique ids. A string is read as a comma
// separated list, so "1,2,3" and a repeated query parameter are equivalent.
type IdListParser struct {
	ids *NumberParser
}

func NewIdListParser() *IdListParser {
	return &IdListParser{ids: NewIdParser()}
}

func (ilp *IdListParser) Kind() Kind {
	return KindIdList
}

func (ilp *IdListParser) Parse(state *ParserState) (any, error) {
	return state.run(ilp.parseIds)
}

func (ilp *IdListParser) parseIds(state *ParserState) (any, error) {
	items, ok := toSlice(state.Val)
	if s, isString := state.Val.(string); isString {
		items, ok = stringsToAny(strings.Split(s, idListSeparator)), true
	}
	if !ok {
		return nil, state.Fail("%s must be a valid list of IDs", state.Name())
	}

	seen := make(map[int]struct{}, len(items))
	ids := make([]any, 0, len(items))
	for _, item := range items {
		parsed, err := ilp.ids.Parse(state.Child(item, FieldSpec{Name: ItemFieldName, Required: true}))
		if err != nil {
			return nil, state.Fail("%s must be a valid list of IDs", state.Name())
		}
		id := parsed.(int)
		if _, dup := seen[id]; dup {
			return nil, state.Fail("%s must be a valid list of IDs", state.Name())
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	if err := validateSubset(state, ids); err != nil {
		return nil, err
	}
	return ids, nil
}
