package paramq

import (
	"fmt"
	"sort"
	"sync"
)

// ParserRegistry maps a Kind to its Parser. It is consulted by the
// processors to dispatch a parse call and by the array parser to resolve
// item types.
//
// A registry is built once and then only read, so a single instance may be
// shared by any number of builders.
type ParserRegistry struct {
	m map[Kind]Parser
}

// ParserRegistryOpts configures NewParserRegistry.
type ParserRegistryOpts struct {
	// Parsers are registered after the defaults and may not replace them
	// unless ExcludeDefaults is set.
	Parsers         []Parser
	ExcludeDefaults bool
}

// defaultParsers is the static lookup table from kind to implementation.
func defaultParsers() []Parser {
	return []Parser{
		NewStringParser(),
		NewNumberParser(),
		NewIntParser(),
		NewFloatParser(),
		NewIdParser(),
		NewIdListParser(),
		NewDateParser(),
		NewBoolParser(),
		NewJsonParser(),
		NewRegexpParser(),
		NewObjectIdParser(),
		NewEmailParser(),
		NewUUIDParser(),
		NewArrayParser(),
		NewCustomParser(),
	}
}

func NewParserRegistry(opts ParserRegistryOpts) (*ParserRegistry, error) {
	reg := &ParserRegistry{
		m: make(map[Kind]Parser),
	}

	if !opts.ExcludeDefaults {
		for _, parser := range defaultParsers() {
			if err := reg.register(parser); err != nil {
				return nil, err
			}
		}
	}

	for _, parser := range opts.Parsers {
		if err := reg.register(parser); err != nil {
			return nil, err
		}
	}

	return reg, nil
}

func (reg *ParserRegistry) register(parser Parser) error {
	kind := parser.Kind()
	if _, exists := reg.m[kind]; exists {
		return fmt.Errorf("%w: %s", ErrParserAlreadyRegistered, kind)
	}
	reg.m[kind] = parser
	return nil
}

// Lookup returns the parser registered for kind.
func (reg *ParserRegistry) Lookup(kind Kind) (Parser, error) {
	parser, ok := reg.m[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrParserNotFound, kind)
	}
	return parser, nil
}

// Kinds returns the registered kinds in lexical order.
func (reg *ParserRegistry) Kinds() []Kind {
	kinds := make([]Kind, 0, len(reg.m))
	for kind := range reg.m {
		kinds = append(kinds, kind)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

///////////////////////////////////////////////////////////////////////////////
// Default Registry
///////////////////////////////////////////////////////////////////////////////

var (
	_defaultRegistry     *ParserRegistry
	_defaultRegistryOnce sync.Once
)

// DefaultRegistry returns the shared registry holding the built in parsers.
func DefaultRegistry() *ParserRegistry {
	_defaultRegistryOnce.Do(func() {
		var err error
		_defaultRegistry, err = NewParserRegistry(ParserRegistryOpts{})
		if err != nil {
			panic(fmt.Sprintf("failed to initialize default ParserRegistry: %v", err))
		}
	})
	return _defaultRegistry
}
