package paramq

import "golang.org/x/text/cases"

// BoolParser accepts native booleans and the strings "true" and "false" in
// any letter case.
type BoolParser struct{}

func NewBoolParser() *BoolParser {
	return &BoolParser{}
}

func (bp *BoolParser) Kind() Kind {
	return KindBool
}

func (bp *BoolParser) Parse(state *ParserState) (any, error) {
	return state.run(bp.convert)
}

func (bp *BoolParser) convert(state *ParserState) (any, error) {
	switch v := state.Val.(type) {
	case bool:
		return v, nil
	case string:
		switch cases.Fold().String(v) {
		case "true":
			return true, nil
		case "false":
			return false, nil
		}
	}
	return nil, state.Fail("%s must be a valid boolean value", state.Name())
}
