package paramq

import (
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// StringParser stringifies the raw value and checks it against the allowed
// set and the character length bounds. Length is counted in runes of the
// NFC normal form, so a decomposed "é" counts once.
type StringParser struct{}

func NewStringParser() *StringParser {
	return &StringParser{}
}

func (sp *StringParser) Kind() Kind {
	return KindString
}

func (sp *StringParser) Parse(state *ParserState) (any, error) {
	return state.run(sp.convert)
}

func (sp *StringParser) convert(state *ParserState) (any, error) {
	s := toString(state.Val)
	if err := state.ValidateAllowed(s); err != nil {
		return nil, err
	}

	length := float64(utf8.RuneCountInString(norm.NFC.String(s)))

	min, ok, err := boundFloat(state, state.Spec.Min, "min")
	if err != nil {
		return nil, err
	}
	if ok && length < min {
		return nil, state.Fail("%s must have at least %s characters", state.Name(), formatNumber(min))
	}

	max, ok, err := boundFloat(state, state.Spec.Max, "max")
	if err != nil {
		return nil, err
	}
	if ok && length > max {
		return nil, state.Fail("%s must have no more than %s characters", state.Name(), formatNumber(max))
	}

	return s, nil
}
