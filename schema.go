package paramq

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

///////////////////////////////////////////////////////////////////////////////
// Schema Documents
///////////////////////////////////////////////////////////////////////////////

// Schema is a declarative list of parse calls loaded from YAML:
//
//	params:
//	  - name: userId
//	    type: idList
//	    op: nin
//	  - name: userRole
//	    type: string
//	    allowed: [user, admin]
//	fields:
//	  allowed: firstName lastName
//	pagination: {}
//	sorting:
//	  allowed: [firstName]
//
// Applying a schema runs the calls in document order against a builder.
type Schema struct {
	Params     []ParamSchema     `yaml:"params"`
	Fields     *FieldsSchema     `yaml:"fields,omitempty"`
	Pagination *PaginationSchema `yaml:"pagination,omitempty"`
	Sorting    *SortingSchema    `yaml:"sorting,omitempty"`
}

// ParamSchema mirrors FieldSpec for one parameter. Handlers cannot be
// expressed in YAML, so the custom kind is rejected.
type ParamSchema struct {
	Name         string   `yaml:"name"`
	Type         Kind     `yaml:"type"`
	As           string   `yaml:"as,omitempty"`
	Required     bool     `yaml:"required,omitempty"`
	Default      any      `yaml:"default,omitempty"`
	Min          any      `yaml:"min,omitempty"`
	Max          any      `yaml:"max,omitempty"`
	Allowed      []any    `yaml:"allowed,omitempty"`
	Format       string   `yaml:"format,omitempty"`
	OutputFormat string   `yaml:"outputFormat,omitempty"`
	ItemType     Kind     `yaml:"itemType,omitempty"`
	Pattern      string   `yaml:"pattern,omitempty"`
	ObjectID     bool     `yaml:"objectId,omitempty"`
	Op           Operator `yaml:"op,omitempty"`
	To           Section  `yaml:"to,omitempty"`
}

type FieldsSchema struct {
	Name    string `yaml:"name,omitempty"`
	Allowed string `yaml:"allowed"`
	Default string `yaml:"default,omitempty"`
}

type PaginationSchema struct {
	Page  string `yaml:"page,omitempty"`
	Count string `yaml:"count,omitempty"`
}

type SortingSchema struct {
	SortBy        string   `yaml:"sortBy,omitempty"`
	SortDirection string   `yaml:"sortDirection,omitempty"`
	Allowed       []string `yaml:"allowed"`
	Default       string   `yaml:"default,omitempty"`
}

// FieldSpec converts the entry into the spec passed to the processor.
func (ps ParamSchema) FieldSpec() FieldSpec {
	spec := FieldSpec{
		Name:         ps.Name,
		As:           ps.As,
		Required:     ps.Required,
		Default:      ps.Default,
		Min:          ps.Min,
		Max:          ps.Max,
		Allowed:      ps.Allowed,
		Format:       ps.Format,
		OutputFormat: ps.OutputFormat,
		ItemType:     ps.ItemType,
		ObjectID:     ps.ObjectID,
		Op:           ps.Op,
		To:           ps.To,
	}
	if ps.Pattern != "" {
		spec.Pattern = ps.Pattern
	}
	return spec
}

///////////////////////////////////////////////////////////////////////////////
// Loading
///////////////////////////////////////////////////////////////////////////////

// ParseSchema decodes and validates a YAML schema. Unknown keys are errors.
func ParseSchema(data []byte) (*Schema, error) {
	return LoadSchema(bytes.NewReader(data))
}

// LoadSchema reads a YAML schema from r.
func LoadSchema(r io.Reader) (*Schema, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var s Schema
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrInvalidSchema)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidSchema, err)
	}
	if err := s.Validate(DefaultRegistry()); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks every entry against reg without parsing any input.
func (s *Schema) Validate(reg *ParserRegistry) error {
	if reg == nil {
		reg = DefaultRegistry()
	}
	for i, p := range s.Params {
		if p.Name == "" {
			return configError("", ErrMissingFieldName, "params[%d]", i)
		}
		if err := checkSchemaKind(reg, p.Name, p.Type); err != nil {
			return err
		}
		if p.Type == KindArray {
			if p.ItemType == KindArray {
				return configError(p.Name, ErrInvalidItemType, "%s", p.ItemType)
			}
			if err := checkSchemaKind(reg, p.Name, p.ItemType); err != nil {
				return configError(p.Name, ErrInvalidItemType, "%s", p.ItemType)
			}
		}
		if p.Type == KindRegexp && p.Pattern == "" {
			return configError(p.Name, ErrMissingPattern, "")
		}
		if p.Pattern != "" {
			if _, err := compilePattern(p.Pattern); err != nil {
				return configError(p.Name, ErrMissingPattern, "invalid pattern %q: %v", p.Pattern, err)
			}
		}
		if p.Op != "" && !IsKnownOperator(p.Op) {
			return configError(p.Name, ErrUnknownOperator, "%q", p.Op)
		}
		for _, format := range []string{p.Format, p.OutputFormat} {
			if _, err := goLayout(format); err != nil {
				return configError(p.Name, ErrInvalidFormat, "%v", err)
			}
		}
	}
	if s.Sorting != nil && len(s.Sorting.Allowed) == 0 {
		return configError(s.Sorting.SortBy, ErrMissingSortFields, "")
	}
	return nil
}

func checkSchemaKind(reg *ParserRegistry, name string, kind Kind) error {
	if kind == "" {
		return configError(name, ErrInvalidSchema, "type is not provided")
	}
	if kind == KindCustom {
		return configError(name, ErrUnsupportedSchemaKind, "%s", kind)
	}
	if _, err := reg.Lookup(kind); err != nil {
		return configError(name, ErrUnsupportedSchemaKind, "%s", kind)
	}
	return nil
}

///////////////////////////////////////////////////////////////////////////////
// Applying
///////////////////////////////////////////////////////////////////////////////

// Apply runs the schema against a query builder and stops at the first
// error. Parameters go to the filter section unless they name another one.
func (s *Schema) Apply(qb *QueryBuilder) error {
	if err := applyParams(qb.ParamsProcessor, s.Params); err != nil {
		return err
	}
	if f := s.Fields; f != nil {
		if _, err := qb.ParseFields(FieldsSpec{Name: f.Name, Allowed: f.Allowed, Default: f.Default}); err != nil {
			return err
		}
	}
	if p := s.Pagination; p != nil {
		if _, err := qb.ParsePagination(PaginationSpec{PageName: p.Page, CountName: p.Count}); err != nil {
			return err
		}
	}
	if srt := s.Sorting; srt != nil {
		_, err := qb.ParseSorting(SortingSpec{
			SortByName:  srt.SortBy,
			SortDirName: srt.SortDirection,
			Allowed:     srt.Allowed,
			Default:     srt.Default,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// ApplyData runs the parameter list against a data builder. The query
// sections have no meaning there and are rejected.
func (s *Schema) ApplyData(db *DataBuilder) error {
	if s.Fields != nil || s.Pagination != nil || s.Sorting != nil {
		return configError("", ErrInvalidSchema, "query sections need a query builder")
	}
	return applyParams(db.ParamsProcessor, s.Params)
}

func applyParams(p *ParamsProcessor, params []ParamSchema) error {
	for _, param := range params {
		if _, err := p.Parse(param.Type, param.FieldSpec()); err != nil {
			return err
		}
	}
	return nil
}
