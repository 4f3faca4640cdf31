package paramq

// CustomParser delegates conversion to FieldSpec.Handler. An error returned
// by the handler is reported as a validation failure of the field.
type CustomParser struct{}

func NewCustomParser() *CustomParser {
	return &CustomParser{}
}

func (cp *CustomParser) Kind() Kind {
	return KindCustom
}

func (cp *CustomParser) Parse(state *ParserState) (any, error) {
	return state.run(cp.convert)
}

func (cp *CustomParser) convert(state *ParserState) (any, error) {
	if state.Spec.Handler == nil {
		return nil, configError(state.Name(), ErrMissingHandler, "")
	}
	val, err := state.Spec.Handler(state.Val)
	if err != nil {
		return nil, state.Fail("%s is incorrect: %s", state.Name(), err.Error())
	}
	return val, nil
}
