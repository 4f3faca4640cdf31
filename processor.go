package paramq

import (
	"log/slog"
)

// ProcessorOpts configures a ParamsProcessor and the builders embedding it.
// The zero value uses the default registry, ValidationError and
// slog.Default().
type ProcessorOpts struct {
	Registry     *ParserRegistry
	ErrorFactory ErrorFactory
	Logger       *slog.Logger
}

// writeHook is called after a parsed value has been stored.
type writeHook func(section Section, key string, spec FieldSpec)

// ParamsProcessor orchestrates parse calls: it resolves the raw value from a
// source map, runs the parser registered for the requested kind and writes
// the result into its destination map.
//
// A processor accumulates state across calls and is not safe for concurrent
// use. Create one per logical input.
type ParamsProcessor struct {
	source         map[string]any
	dest           map[string]any
	defaultSection Section
	registry       *ParserRegistry
	newError       ErrorFactory
	logger         *slog.Logger
	afterWrite     writeHook
}

func newParamsProcessor(source, base map[string]any, defaultSection Section, opts ProcessorOpts) *ParamsProcessor {
	if source == nil {
		source = map[string]any{}
	}
	p := &ParamsProcessor{
		source:         source,
		dest:           map[string]any{},
		defaultSection: defaultSection,
		registry:       opts.Registry,
		newError:       opts.ErrorFactory,
		logger:         opts.Logger,
	}
	if p.registry == nil {
		p.registry = DefaultRegistry()
	}
	if p.newError == nil {
		p.newError = NewValidationError
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}

	// the base map seeds the default section
	if len(base) > 0 {
		target := p.dest
		if defaultSection != SectionRoot {
			target = p.section(defaultSection)
		}
		for k, v := range base {
			target[k] = v
		}
	}
	return p
}

// Parse runs the parser registered for kind against spec and stores the
// result. It returns the parsed value, which is nil when the value was
// absent and no default applied.
func (p *ParamsProcessor) Parse(kind Kind, spec FieldSpec) (any, error) {
	if spec.Name == "" {
		return nil, configError("", ErrMissingFieldName, "kind %s", kind)
	}

	if spec.Op != "" && !IsKnownOperator(spec.Op) {
		return nil, configError(spec.Name, ErrUnknownOperator, "%q", spec.Op)
	}

	parser, err := p.registry.Lookup(kind)
	if err != nil {
		return nil, configError(spec.Name, err, "")
	}

	section := spec.To
	if section == SectionRoot {
		section = p.defaultSection
	}
	if v, ok := p.dest[string(section)]; ok && section != SectionRoot {
		if _, isMap := v.(map[string]any); !isMap {
			return nil, configError(spec.Name, ErrSectionNotAMap, "section %q holds %T", section, v)
		}
	}
	key := spec.OutputName()
	if p.holds(section, key) {
		return nil, configError(spec.Name, ErrDuplicateKey, "section %q key %q", section, key)
	}

	state := NewParserState(p.rawValue(spec), spec, p.registry, p.newError)
	val, err := parser.Parse(state)
	if err != nil {
		p.logger.Debug("parameter rejected",
			slog.String("field", spec.Name),
			slog.String("kind", string(kind)),
			slog.Any("error", err),
		)
		return nil, err
	}

	if isAbsent(val) {
		return nil, nil
	}

	p.write(section, key, val)
	p.logger.Debug("parameter parsed",
		slog.String("field", spec.Name),
		slog.String("key", key),
		slog.String("kind", string(kind)),
		slog.String("section", string(section)),
	)
	if p.afterWrite != nil {
		p.afterWrite(section, key, spec)
	}
	return val, nil
}

///////////////////////////////////////////////////////////////////////////////
// Per Kind Entry Points
///////////////////////////////////////////////////////////////////////////////

func (p *ParamsProcessor) ParseString(spec FieldSpec) (any, error) {
	return p.Parse(KindString, spec)
}

func (p *ParamsProcessor) ParseNumber(spec FieldSpec) (any, error) {
	return p.Parse(KindNumber, spec)
}

func (p *ParamsProcessor) ParseInt(spec FieldSpec) (any, error) {
	return p.Parse(KindInt, spec)
}

func (p *ParamsProcessor) ParseFloat(spec FieldSpec) (any, error) {
	return p.Parse(KindFloat, spec)
}

func (p *ParamsProcessor) ParseDate(spec FieldSpec) (any, error) {
	return p.Parse(KindDate, spec)
}

func (p *ParamsProcessor) ParseId(spec FieldSpec) (any, error) {
	return p.Parse(KindId, spec)
}

func (p *ParamsProcessor) ParseIdList(spec FieldSpec) (any, error) {
	return p.Parse(KindIdList, spec)
}

func (p *ParamsProcessor) ParseObjectId(spec FieldSpec) (any, error) {
	return p.Parse(KindObjectId, spec)
}

func (p *ParamsProcessor) ParseEmail(spec FieldSpec) (any, error) {
	return p.Parse(KindEmail, spec)
}

func (p *ParamsProcessor) ParseRegexp(spec FieldSpec) (any, error) {
	return p.Parse(KindRegexp, spec)
}

func (p *ParamsProcessor) ParseUUID(spec FieldSpec) (any, error) {
	return p.Parse(KindUUID, spec)
}

func (p *ParamsProcessor) ParseJson(spec FieldSpec) (any, error) {
	return p.Parse(KindJson, spec)
}

func (p *ParamsProcessor) ParseBool(spec FieldSpec) (any, error) {
	return p.Parse(KindBool, spec)
}

func (p *ParamsProcessor) ParseArray(spec FieldSpec) (any, error) {
	return p.Parse(KindArray, spec)
}

func (p *ParamsProcessor) ParseCustom(spec FieldSpec) (any, error) {
	return p.Parse(KindCustom, spec)
}

///////////////////////////////////////////////////////////////////////////////
// Destination
///////////////////////////////////////////////////////////////////////////////

func (p *ParamsProcessor) rawValue(spec FieldSpec) any {
	source := p.source
	if spec.Source != nil {
		source = spec.Source
	}
	return source[spec.Name]
}

// section returns the named sub-map, creating it on first use.
func (p *ParamsProcessor) section(name Section) map[string]any {
	if name == SectionRoot {
		return p.dest
	}
	if m, ok := p.dest[string(name)].(map[string]any); ok {
		return m
	}
	m := map[string]any{}
	p.dest[string(name)] = m
	return m
}

// holds reports whether key is already written in a section that enforces
// unique keys. The staging section never does.
func (p *ParamsProcessor) holds(name Section, key string) bool {
	if name == SectionStaging {
		return false
	}
	target := p.dest
	if name != SectionRoot {
		m, ok := p.dest[string(name)].(map[string]any)
		if !ok {
			return false
		}
		target = m
	}
	_, exists := target[key]
	return exists
}

func (p *ParamsProcessor) write(name Section, key string, val any) {
	p.section(name)[key] = val
}

// snapshot copies the destination one level deep, omitting staging.
func (p *ParamsProcessor) snapshot() map[string]any {
	out := make(map[string]any, len(p.dest))
	for k, v := range p.dest {
		if k == string(SectionStaging) {
			continue
		}
		if m, ok := v.(map[string]any); ok {
			out[k] = copyMap(m)
			continue
		}
		out[k] = v
	}
	return out
}

func copyMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
