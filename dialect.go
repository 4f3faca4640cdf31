package paramq

import (
	"sort"
	"strings"
)

// QueryState is the builder state handed to a dialect renderer.
type QueryState struct {
	Filter     map[string]any
	Criteria   []FilterCriterion
	Fields     []string
	Pagination *Pagination
	Sorting    *Sorting
}

// Query is a rendered query descriptor. The dynamic types of Fields and
// Sorting depend on the dialect.
type Query struct {
	Filter     map[string]any `json:"filter" yaml:"filter"`
	Fields     any            `json:"fields" yaml:"fields"`
	Pagination *Pagination    `json:"pagination" yaml:"pagination"`
	Sorting    any            `json:"sorting" yaml:"sorting"`
}

// Dialect renders a QueryState into one backend's filter representation.
// Implementations are pure: they never modify the state.
type Dialect interface {
	Name() string
	// Token returns the backend token for an operator alias.
	Token(op Operator) (string, bool)
	Render(state QueryState) (Query, error)
}

///////////////////////////////////////////////////////////////////////////////
// Operator Tables
///////////////////////////////////////////////////////////////////////////////

// lt maps to $lte in both tables; kept as observed, see DESIGN.md.
var (
	MongooseOperators = map[Operator]string{
		OpEq:   "$eq",
		OpNe:   "$ne",
		OpGt:   "$gt",
		OpGte:  "$gte",
		OpLt:   "$lte",
		OpLte:  "$lte",
		OpIn:   "$in",
		OpNin:  "$nin",
		OpLike: "$eq", // no pattern operator wired for mongoose
	}

	SequelizeOperators = map[Operator]string{
		OpEq:   "$eq",
		OpNe:   "$ne",
		OpGt:   "$gt",
		OpGte:  "$gte",
		OpLt:   "$lte",
		OpLte:  "$lte",
		OpIn:   "$in",
		OpNin:  "$notIn",
		OpLike: "$like",
	}
)

// IsKnownOperator reports whether op is one of the abstract aliases.
func IsKnownOperator(op Operator) bool {
	_, ok := MongooseOperators[op]
	return ok
}

///////////////////////////////////////////////////////////////////////////////
// Dialect Lookup
///////////////////////////////////////////////////////////////////////////////

var dialects = map[string]Dialect{
	DialectMongoose:  mongooseDialect{},
	DialectSequelize: sequelizeDialect{},
}

// LookupDialect returns the renderer registered under name.
func LookupDialect(name string) (Dialect, error) {
	if name == "" {
		return nil, configError("", ErrUnsupportedDialect, "dialect is not provided")
	}
	d, ok := dialects[strings.ToLower(name)]
	if !ok {
		return nil, configError("", ErrUnsupportedDialect, "%q", name)
	}
	return d, nil
}

// DialectNames lists the supported dialect names.
func DialectNames() []string {
	names := make([]string, 0, len(dialects))
	for name := range dialects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// renderFilter wraps every filter value as {token: value}. Fields without a
// recorded operator render as explicit equality.
func renderFilter(d Dialect, state QueryState) (map[string]any, error) {
	ops := make(map[string]Operator, len(state.Criteria))
	for _, c := range state.Criteria {
		ops[c.Field] = c.Op
	}

	out := make(map[string]any, len(state.Filter))
	for field, val := range state.Filter {
		op := ops[field]
		if op == "" {
			op = OpEq
		}
		token, ok := d.Token(op)
		if !ok {
			return nil, configError(field, ErrUnknownOperator, "%q", op)
		}
		out[field] = map[string]any{token: val}
	}
	return out, nil
}

///////////////////////////////////////////////////////////////////////////////
// Mongoose
///////////////////////////////////////////////////////////////////////////////

type mongooseDialect struct{}

func (mongooseDialect) Name() string {
	return DialectMongoose
}

func (mongooseDialect) Token(op Operator) (string, bool) {
	token, ok := MongooseOperators[op]
	return token, ok
}

// Render produces fields as a space joined projection string and sorting as
// {field: direction}.
func (d mongooseDialect) Render(state QueryState) (Query, error) {
	filter, err := renderFilter(d, state)
	if err != nil {
		return Query{}, err
	}
	q := Query{
		Filter:     filter,
		Fields:     strings.Join(state.Fields, FieldsSeparator),
		Pagination: copyPagination(state.Pagination),
	}
	if state.Sorting != nil {
		q.Sorting = map[string]any{state.Sorting.By: state.Sorting.Direction}
	}
	return q, nil
}

///////////////////////////////////////////////////////////////////////////////
// Sequelize
///////////////////////////////////////////////////////////////////////////////

type sequelizeDialect struct{}

func (sequelizeDialect) Name() string {
	return DialectSequelize
}

func (sequelizeDialect) Token(op Operator) (string, bool) {
	token, ok := SequelizeOperators[op]
	return token, ok
}

// Render produces fields as a list and sorting as a list of
// [field, direction] pairs.
func (d sequelizeDialect) Render(state QueryState) (Query, error) {
	filter, err := renderFilter(d, state)
	if err != nil {
		return Query{}, err
	}
	q := Query{
		Filter:     filter,
		Pagination: copyPagination(state.Pagination),
	}
	if state.Fields != nil {
		q.Fields = append([]string(nil), state.Fields...)
	}
	if state.Sorting != nil {
		q.Sorting = [][]string{{state.Sorting.By, state.Sorting.Direction}}
	}
	return q, nil
}

func copyPagination(p *Pagination) *Pagination {
	if p == nil {
		return nil
	}
	cp := *p
	return &cp
}
