package paramq

import (
	"log/slog"
)

// FilterCriterion records the comparison requested for one filter field.
// An empty Op means equality.
type FilterCriterion struct {
	Field string
	Op    Operator
}

// Pagination is the parsed page window.
type Pagination struct {
	Page  int `json:"page" yaml:"page"`
	Count int `json:"count" yaml:"count"`
}

// Offset is the number of rows skipped before the page.
func (p Pagination) Offset() int64 {
	return int64(p.Page) * int64(p.Count)
}

// Sorting is the parsed sort column and direction.
type Sorting struct {
	By        string `json:"by" yaml:"by"`
	Direction string `json:"direction" yaml:"direction"`
}

// FieldsSpec configures QueryBuilder.ParseFields. Allowed and Default are
// space separated field lists.
type FieldsSpec struct {
	Name    string
	Allowed string
	Default string
	Source  map[string]any
}

// PaginationSpec configures QueryBuilder.ParsePagination.
type PaginationSpec struct {
	PageName  string
	CountName string
	Source    map[string]any
}

// SortingSpec configures QueryBuilder.ParseSorting. Allowed is mandatory;
// Default, when set, is used as sort field if the input names none.
type SortingSpec struct {
	SortByName  string
	SortDirName string
	Allowed     []string
	Default     string
	Source      map[string]any
}

// QueryBuilder specializes ParamsProcessor for building query descriptors.
// Ordinary parse calls target the filter section and record a
// FilterCriterion carrying FieldSpec.Op. ParseFields, ParsePagination and
// ParseSorting fill the remaining sections, and Build renders everything for
// a dialect.
//
// Like every processor a QueryBuilder belongs to one logical input.
type QueryBuilder struct {
	*ParamsProcessor
	criteria []FilterCriterion
}

// NewQueryBuilder creates a builder reading from source. baseFilter, when
// not nil, pre-seeds the filter section; seeded fields render as equality.
func NewQueryBuilder(source, baseFilter map[string]any, opts ProcessorOpts) *QueryBuilder {
	qb := &QueryBuilder{
		ParamsProcessor: newParamsProcessor(source, baseFilter, SectionFilter, opts),
	}
	qb.section(SectionFilter)
	qb.afterWrite = qb.recordCriterion
	return qb
}

func (qb *QueryBuilder) recordCriterion(section Section, key string, spec FieldSpec) {
	if section != SectionFilter {
		return
	}
	for i := range qb.criteria {
		if qb.criteria[i].Field == key {
			qb.criteria[i].Op = spec.Op
			return
		}
	}
	qb.criteria = append(qb.criteria, FilterCriterion{Field: key, Op: spec.Op})
}

// Criteria returns a copy of the recorded filter criteria in write order.
func (qb *QueryBuilder) Criteria() []FilterCriterion {
	return append([]FilterCriterion(nil), qb.criteria...)
}

// ParseFields parses the space separated list of requested fields and
// checks it against the allowed list. The result is the parsed list, or nil
// when nothing was requested and no default applies.
func (qb *QueryBuilder) ParseFields(spec FieldsSpec) ([]string, error) {
	name := spec.Name
	if name == "" {
		name = DefaultFieldsName
	}

	var def any
	if spec.Default != "" {
		def = spec.Default
	}
	raw, err := qb.ParseString(FieldSpec{
		Name:    name,
		As:      stagingRawFieldsKey,
		To:      SectionStaging,
		Default: def,
		Source:  spec.Source,
	})
	if err != nil || raw == nil {
		return nil, err
	}

	parsed, err := qb.ParseArray(FieldSpec{
		Name:     name,
		As:       FieldsKey,
		To:       SectionFields,
		ItemType: KindString,
		Allowed:  stringsToAny(splitFields(spec.Allowed)),
		Source:   map[string]any{name: splitFields(raw.(string))},
	})
	if err != nil {
		return nil, err
	}
	return fieldList(parsed), nil
}

// ParsePagination parses the page (min 0, default 0) and count (min 1,
// max 50, default 10) parameters.
func (qb *QueryBuilder) ParsePagination(spec PaginationSpec) (*Pagination, error) {
	pageName, countName := spec.PageName, spec.CountName
	if pageName == "" {
		pageName = DefaultPageName
	}
	if countName == "" {
		countName = DefaultCountName
	}

	if _, err := qb.ParseInt(FieldSpec{
		Name: pageName, As: PaginationPageKey, To: SectionPagination,
		Min: 0, Max: MaxPage, Default: DefaultPage, Source: spec.Source,
	}); err != nil {
		return nil, err
	}
	if _, err := qb.ParseInt(FieldSpec{
		Name: countName, As: PaginationCountKey, To: SectionPagination,
		Min: 1, Max: MaxCount, Default: DefaultCount, Source: spec.Source,
	}); err != nil {
		return nil, err
	}
	return qb.pagination(), nil
}

// ParseSorting parses the sort field, restricted to spec.Allowed, and the
// direction, restricted to asc and desc with asc as default.
func (qb *QueryBuilder) ParseSorting(spec SortingSpec) (*Sorting, error) {
	if len(spec.Allowed) == 0 {
		return nil, configError(spec.SortByName, ErrMissingSortFields, "")
	}
	byName, dirName := spec.SortByName, spec.SortDirName
	if byName == "" {
		byName = DefaultSortByName
	}
	if dirName == "" {
		dirName = DefaultSortDirName
	}

	var def any
	if spec.Default != "" {
		def = spec.Default
	}
	if _, err := qb.ParseString(FieldSpec{
		Name: byName, As: SortingByKey, To: SectionSorting,
		Allowed: stringsToAny(spec.Allowed), Default: def, Source: spec.Source,
	}); err != nil {
		return nil, err
	}
	if _, err := qb.ParseString(FieldSpec{
		Name: dirName, As: SortingDirectionKey, To: SectionSorting,
		Allowed: []any{SortAsc, SortDesc}, Default: SortAsc, Source: spec.Source,
	}); err != nil {
		return nil, err
	}
	return qb.sorting(), nil
}

// Build renders the accumulated query for dialect. It does not modify the
// builder, so repeated calls return equal results.
func (qb *QueryBuilder) Build(dialect string) (Query, error) {
	d, err := LookupDialect(dialect)
	if err != nil {
		return Query{}, err
	}
	q, err := d.Render(qb.Snapshot())
	if err != nil {
		return Query{}, err
	}
	qb.logger.Debug("query built",
		slog.String("dialect", d.Name()),
		slog.Int("filters", len(q.Filter)),
	)
	return q, nil
}

// Snapshot returns a copy of the builder state consumed by the renderers.
func (qb *QueryBuilder) Snapshot() QueryState {
	return QueryState{
		Filter:     copyMap(qb.section(SectionFilter)),
		Criteria:   qb.Criteria(),
		Fields:     qb.fields(),
		Pagination: qb.pagination(),
		Sorting:    qb.sorting(),
	}
}

func (qb *QueryBuilder) fields() []string {
	m, ok := qb.dest[string(SectionFields)].(map[string]any)
	if !ok {
		return nil
	}
	return fieldList(m[FieldsKey])
}

func (qb *QueryBuilder) pagination() *Pagination {
	m, ok := qb.dest[string(SectionPagination)].(map[string]any)
	if !ok || len(m) == 0 {
		return nil
	}
	p := &Pagination{}
	p.Page, _ = m[PaginationPageKey].(int)
	p.Count, _ = m[PaginationCountKey].(int)
	return p
}

func (qb *QueryBuilder) sorting() *Sorting {
	m, ok := qb.dest[string(SectionSorting)].(map[string]any)
	if !ok {
		return nil
	}
	by, _ := m[SortingByKey].(string)
	if by == "" {
		return nil
	}
	dir, _ := m[SortingDirectionKey].(string)
	return &Sorting{By: by, Direction: dir}
}

func fieldList(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, toString(item))
	}
	return out
}
