package paramq

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectBuilder(t *testing.T) {
	t.Run("EndToEnd", func(t *testing.T) {
		sb, err := usersQuery(t, OpNin).SelectBuilder("users")
		require.NoError(t, err)

		sql, args, err := sb.ToSql()
		require.NoError(t, err)
		assert.Equal(t,
			"SELECT firstName, lastName FROM users WHERE (userId NOT IN ($1,$2,$3) AND userRole = $4) ORDER BY firstName asc LIMIT 10 OFFSET 50",
			sql)
		assert.Equal(t, []any{1, 2, 3, "user"}, args)
	})

	t.Run("LargestPage", func(t *testing.T) {
		qb := NewQueryBuilder(map[string]any{"page": "2147483647", "count": "50"}, nil, ProcessorOpts{})
		_, err := qb.ParsePagination(PaginationSpec{})
		require.NoError(t, err)

		sb, err := qb.SelectBuilder("t")
		require.NoError(t, err)
		sql, _, err := sb.ToSql()
		require.NoError(t, err)
		assert.Equal(t, "SELECT * FROM t LIMIT 50 OFFSET 107374182350", sql)
	})

	t.Run("Operators", func(t *testing.T) {
		tests := []struct {
			op   Operator
			val  any
			want string
		}{
			{OpEq, 1, "SELECT * FROM t WHERE (c = $1)"},
			{OpNe, 1, "SELECT * FROM t WHERE (c <> $1)"},
			{OpGt, 1, "SELECT * FROM t WHERE (c > $1)"},
			{OpGte, 1, "SELECT * FROM t WHERE (c >= $1)"},
			{OpLt, 1, "SELECT * FROM t WHERE (c <= $1)"},
			{OpLte, 1, "SELECT * FROM t WHERE (c <= $1)"},
			{OpIn, []any{1, 2}, "SELECT * FROM t WHERE (c IN ($1,$2))"},
			{OpNin, []any{1, 2}, "SELECT * FROM t WHERE (c NOT IN ($1,$2))"},
			{OpLike, "a%", "SELECT * FROM t WHERE (c LIKE $1)"},
		}

		for _, tt := range tests {
			t.Run(string(tt.op), func(t *testing.T) {
				qb := NewQueryBuilder(map[string]any{"c": tt.val}, nil, ProcessorOpts{})
				kind := KindString
				switch tt.val.(type) {
				case int:
					kind = KindInt
				case []any:
					kind = KindIdList
				}
				_, err := qb.Parse(kind, FieldSpec{Name: "c", Op: tt.op})
				require.NoError(t, err)

				sb, err := qb.SelectBuilder("t")
				require.NoError(t, err)
				sql, _, err := sb.ToSql()
				require.NoError(t, err)
				assert.Equal(t, tt.want, sql)
			})
		}
	})

	t.Run("NoFilter", func(t *testing.T) {
		sb, err := NewQueryBuilder(nil, nil, ProcessorOpts{}).SelectBuilder("t")
		require.NoError(t, err)
		sql, args, err := sb.ToSql()
		require.NoError(t, err)
		assert.Equal(t, "SELECT * FROM t", sql)
		assert.Empty(t, args)
	})

	t.Run("MissingTable", func(t *testing.T) {
		_, err := NewQueryBuilder(nil, nil, ProcessorOpts{}).SelectBuilder("")
		assert.True(t, IsConfigurationError(err))
	})
}
