package paramq

import (
	"fmt"
	"strings"
)

///////////////////////////////////////////////////////////////////////////////
// FieldSpec
///////////////////////////////////////////////////////////////////////////////

// FieldSpec describes how a single parameter is read, converted, validated
// and stored. Only the options meaningful to the chosen Kind are consulted.
type FieldSpec struct {
	Name     string // Name of the parameter in the source map
	As       string // Output key, defaults to Name
	Required bool   // Fail when the value is absent
	Default  any    // Result used when the value is absent and not required
	Min      any    // Lower bound: numeric value, string length or date
	Max      any    // Upper bound: numeric value, string length or date
	Allowed  []any  // Allowed set for the converted value (or every element of an array)

	Format       string // Date input format, moment style tokens or a Go layout
	OutputFormat string // Date output format; the result is a string when set
	ItemType     Kind   // Element kind for arrays
	Pattern      any    // string or *regexp.Regexp for the regexp kind
	ObjectID     bool   // Return a native primitive.ObjectID from the objectId kind
	Handler      func(any) (any, error)

	Op     Operator       // Comparison operator recorded for filter fields
	To     Section        // Destination section, defaults to the builder's default section
	Source map[string]any // Overrides the builder source for this call
}

// OutputName returns the key the parsed value is written under.
func (fs FieldSpec) OutputName() string {
	if fs.As != "" {
		return fs.As
	}
	return fs.Name
}

///////////////////////////////////////////////////////////////////////////////
// Parser Interface
///////////////////////////////////////////////////////////////////////////////

// Parser converts and validates one raw value.
//
// Every implementation must honor the short-circuit contract of
// ParserState.ValidateAndShortCircuit: an absent, non required value yields
// the default (or nothing) without running any other check.
type Parser interface {
	// Kind returns the registry tag of this parser.
	Kind() Kind
	// Parse converts state.Val and returns the parsed value.
	Parse(state *ParserState) (any, error)
}

// convertFunc is the kind specific step run after the shared checks.
type convertFunc func(state *ParserState) (any, error)

///////////////////////////////////////////////////////////////////////////////
// ParserState (BaseParser)
///////////////////////////////////////////////////////////////////////////////

// ParserState is the live validation context of one parse invocation.
type ParserState struct {
	Val      any
	Spec     FieldSpec
	registry *ParserRegistry
	newError ErrorFactory
}

// NewParserState prepares a state for parsing val according to spec.
// A nil registry falls back to DefaultRegistry, a nil factory to
// NewValidationError.
func NewParserState(val any, spec FieldSpec, registry *ParserRegistry, factory ErrorFactory) *ParserState {
	if registry == nil {
		registry = DefaultRegistry()
	}
	if factory == nil {
		factory = NewValidationError
	}
	return &ParserState{
		Val:      val,
		Spec:     spec,
		registry: registry,
		newError: factory,
	}
}

// Name returns the field name used in error messages.
func (ps *ParserState) Name() string {
	return ps.Spec.Name
}

// ValidateAndShortCircuit runs the required check. It returns done=true when
// the value is absent and not required; Val then holds the default (or nil)
// and the caller must skip every further step.
func (ps *ParserState) ValidateAndShortCircuit() (bool, error) {
	if !isAbsent(ps.Val) {
		return false, nil
	}
	if ps.Spec.Required {
		return true, ps.Fail("%s is required", ps.Name())
	}
	ps.Val = ps.Spec.Default
	return true, nil
}

// ValidateAllowed fails when an allowed set is configured and v is not a
// member of it.
func (ps *ParserState) ValidateAllowed(v any) error {
	if len(ps.Spec.Allowed) == 0 || containsValue(ps.Spec.Allowed, v) {
		return nil
	}
	return ps.Fail("%s is incorrect, must be one of %s", ps.Name(), joinAllowed(ps.Spec.Allowed))
}

// Fail builds a validation error through the configured ErrorFactory. A
// factory returning nil falls back to a ValidationError so that rejected
// input never passes as valid.
func (ps *ParserState) Fail(format string, args ...any) error {
	reason := fmt.Sprintf(format, args...)
	if err := ps.newError(ps.Name(), reason); err != nil {
		return err
	}
	return NewValidationError(ps.Name(), reason)
}

// Child returns a state for parsing a nested value, e.g. an array element,
// sharing the registry and error factory of ps.
func (ps *ParserState) Child(val any, spec FieldSpec) *ParserState {
	return &ParserState{
		Val:      val,
		Spec:     spec,
		registry: ps.registry,
		newError: ps.newError,
	}
}

// run is the template shared by every typed parser: required/default check,
// then the kind specific conversion.
func (ps *ParserState) run(convert convertFunc) (any, error) {
	done, err := ps.ValidateAndShortCircuit()
	if err != nil {
		return nil, err
	}
	if done {
		return ps.Val, nil
	}
	return convert(ps)
}

func joinAllowed(allowed []any) string {
	parts := make([]string, 0, len(allowed))
	for _, a := range allowed {
		parts = append(parts, toString(a))
	}
	return strings.Join(parts, allowedValueSeparator)
}
