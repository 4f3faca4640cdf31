package paramq

import (
	"sort"

	"github.com/Masterminds/squirrel"
)

// SelectBuilder compiles the accumulated query into a squirrel select on
// table using dollar placeholders. The filter goes through the Sequelize
// operator table, so both renderings agree on every operator. Nothing is
// executed; call ToSql on the result to obtain the statement and arguments.
func (qb *QueryBuilder) SelectBuilder(table string) (squirrel.SelectBuilder, error) {
	if table == "" {
		return squirrel.SelectBuilder{}, configError("", ErrInvalidSchema, "table is not provided")
	}
	state := qb.Snapshot()

	columns := state.Fields
	if len(columns) == 0 {
		columns = []string{"*"}
	}
	sb := squirrel.Select(columns...).From(table).PlaceholderFormat(squirrel.Dollar)

	where, err := sqlWhere(state)
	if err != nil {
		return squirrel.SelectBuilder{}, err
	}
	if where != nil {
		sb = sb.Where(where)
	}

	if state.Sorting != nil {
		sb = sb.OrderBy(state.Sorting.By + " " + state.Sorting.Direction)
	}
	if p := state.Pagination; p != nil {
		sb = sb.Limit(uint64(p.Count)).Offset(uint64(p.Offset()))
	}
	return sb, nil
}

// sqlWhere turns the filter into a conjunction ordered by field name.
func sqlWhere(state QueryState) (squirrel.Sqlizer, error) {
	if len(state.Filter) == 0 {
		return nil, nil
	}
	rendered, err := renderFilter(sequelizeDialect{}, state)
	if err != nil {
		return nil, err
	}

	fields := make([]string, 0, len(rendered))
	for field := range rendered {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	exprs := make(squirrel.And, 0, len(fields))
	for _, field := range fields {
		for token, val := range rendered[field].(map[string]any) {
			expr, err := sqlCondition(field, token, val)
			if err != nil {
				return nil, err
			}
			exprs = append(exprs, expr)
		}
	}
	return exprs, nil
}

func sqlCondition(field, token string, val any) (squirrel.Sqlizer, error) {
	switch token {
	case "$eq", "$in":
		return squirrel.Eq{field: val}, nil
	case "$ne", "$notIn":
		return squirrel.NotEq{field: val}, nil
	case "$gt":
		return squirrel.Gt{field: val}, nil
	case "$gte":
		return squirrel.GtOrEq{field: val}, nil
	case "$lt":
		return squirrel.Lt{field: val}, nil
	case "$lte":
		return squirrel.LtOrEq{field: val}, nil
	case "$like":
		return squirrel.Like{field: val}, nil
	default:
		return nil, configError(field, ErrUnknownOperator, "no SQL form for %q", token)
	}
}
