package paramq

import (
	"github.com/tidwall/gjson"
)

// JsonParser decodes JSON text. Objects become map[string]any, arrays
// []any and numbers float64.
type JsonParser struct{}

func NewJsonParser() *JsonParser {
	return &JsonParser{}
}

func (jp *JsonParser) Kind() Kind {
	return KindJson
}

func (jp *JsonParser) Parse(state *ParserState) (any, error) {
	return state.run(jp.decode)
}

func (jp *JsonParser) decode(state *ParserState) (any, error) {
	var text string
	switch v := state.Val.(type) {
	case []byte:
		text = string(v)
	default:
		text = toString(v)
	}

	if !gjson.Valid(text) {
		return nil, state.Fail("%s must be a valid JSON string", state.Name())
	}
	return gjson.Parse(text).Value(), nil
}
