package paramq

// ArrayParser maps every element of a list through the parser registered
// for FieldSpec.ItemType. Elements are parsed as required values named
// "item". When Allowed is set the parsed list must be a subset of it.
type ArrayParser struct{}

func NewArrayParser() *ArrayParser {
	return &ArrayParser{}
}

func (ap *ArrayParser) Kind() Kind {
	return KindArray
}

func (ap *ArrayParser) Parse(state *ParserState) (any, error) {
	return state.run(ap.parseItems)
}

func (ap *ArrayParser) parseItems(state *ParserState) (any, error) {
	itemParser, err := ap.itemParser(state)
	if err != nil {
		return nil, err
	}

	items, ok := toSlice(state.Val)
	if !ok {
		return nil, state.Fail("%s must be an array", state.Name())
	}

	parsed := make([]any, 0, len(items))
	for _, item := range items {
		val, err := itemParser.Parse(state.Child(item, FieldSpec{Name: ItemFieldName, Required: true}))
		if err != nil {
			return nil, err
		}
		parsed = append(parsed, val)
	}

	if err := validateSubset(state, parsed); err != nil {
		return nil, err
	}
	return parsed, nil
}

func (ap *ArrayParser) itemParser(state *ParserState) (Parser, error) {
	kind := state.Spec.ItemType
	if kind == "" || kind == KindArray || kind == KindCustom {
		return nil, configError(state.Name(), ErrInvalidItemType, "%q", kind)
	}
	parser, err := state.registry.Lookup(kind)
	if err != nil {
		return nil, configError(state.Name(), ErrInvalidItemType, "%q", kind)
	}
	return parser, nil
}

// validateSubset checks that every element of items belongs to the allowed set.
func validateSubset(state *ParserState, items []any) error {
	if len(state.Spec.Allowed) == 0 {
		return nil
	}
	for _, item := range items {
		if !containsValue(state.Spec.Allowed, item) {
			return state.Fail("%s is incorrect, must be one of %s", state.Name(), joinAllowed(state.Spec.Allowed))
		}
	}
	return nil
}
