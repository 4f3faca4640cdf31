package paramq

import (
	"github.com/google/uuid"
)

// UUIDParser parses RFC 4122 identifiers into uuid.UUID.
type UUIDParser struct{}

func NewUUIDParser() *UUIDParser {
	return &UUIDParser{}
}

func (up *UUIDParser) Kind() Kind {
	return KindUUID
}

func (up *UUIDParser) Parse(state *ParserState) (any, error) {
	return state.run(up.convert)
}

func (up *UUIDParser) convert(state *ParserState) (any, error) {
	var (
		id  uuid.UUID
		err error
	)
	switch v := state.Val.(type) {
	case uuid.UUID:
		id = v
	case []byte:
		id, err = uuid.ParseBytes(v)
	case string:
		id, err = uuid.Parse(v)
	default:
		return nil, state.Fail("%s must be a valid UUID", state.Name())
	}
	if err != nil {
		return nil, state.Fail("%s must be a valid UUID", state.Name())
	}

	// allowed sets may list either uuid.UUID values or their canonical strings
	if containsValue(state.Spec.Allowed, id.String()) {
		return id, nil
	}
	if err := state.ValidateAllowed(id); err != nil {
		return nil, err
	}
	return id, nil
}
