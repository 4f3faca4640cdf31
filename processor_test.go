package paramq

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataBuilder(t *testing.T) {
	t.Run("Build", func(t *testing.T) {
		db := NewDataBuilder(
			map[string]any{"login": "alice", "age": "31", "role": "admin"},
			map[string]any{"tenant": "acme"},
			ProcessorOpts{},
		)

		_, err := db.ParseString(FieldSpec{Name: "login", Required: true, Min: 3})
		require.NoError(t, err)
		age, err := db.ParseInt(FieldSpec{Name: "age", Min: 18})
		require.NoError(t, err)
		assert.Equal(t, 31, age)
		_, err = db.ParseBool(FieldSpec{Name: "active", Default: true})
		require.NoError(t, err)
		_, err = db.ParseString(FieldSpec{Name: "role", As: "userRole", Allowed: []any{"user", "admin"}})
		require.NoError(t, err)

		missing, err := db.ParseString(FieldSpec{Name: "nickname"})
		require.NoError(t, err)
		assert.Nil(t, missing)

		assert.Equal(t, map[string]any{
			"tenant":   "acme",
			"login":    "alice",
			"age":      31,
			"active":   true,
			"userRole": "admin",
		}, db.Build())
	})

	t.Run("Build_ReturnsCopy", func(t *testing.T) {
		db := NewDataBuilder(map[string]any{"city": "Oslo"}, nil, ProcessorOpts{})
		_, err := db.ParseString(FieldSpec{Name: "city", To: "address"})
		require.NoError(t, err)

		first := db.Build()
		first["extra"] = 1
		first["address"].(map[string]any)["zip"] = "0150"

		assert.Equal(t, map[string]any{"address": map[string]any{"city": "Oslo"}}, db.Build())
	})

	t.Run("Staging_ExemptAndStripped", func(t *testing.T) {
		db := NewDataBuilder(map[string]any{"raw": "a b"}, nil, ProcessorOpts{})
		for i := 0; i < 2; i++ {
			_, err := db.ParseString(FieldSpec{Name: "raw", To: SectionStaging})
			require.NoError(t, err)
		}
		assert.Empty(t, db.Build())
	})

	t.Run("DuplicateKey", func(t *testing.T) {
		db := NewDataBuilder(map[string]any{"login": "alice", "tenant": "x"}, map[string]any{"tenant": "acme"}, ProcessorOpts{})
		_, err := db.ParseString(FieldSpec{Name: "login"})
		require.NoError(t, err)

		_, err = db.ParseString(FieldSpec{Name: "login"})
		assert.ErrorIs(t, err, ErrDuplicateKey)

		_, err = db.ParseString(FieldSpec{Name: "tenant"})
		assert.ErrorIs(t, err, ErrDuplicateKey)

		// a different section is a different namespace
		_, err = db.ParseString(FieldSpec{Name: "login", To: "audit"})
		assert.NoError(t, err)
	})

	t.Run("SourceOverride", func(t *testing.T) {
		db := NewDataBuilder(map[string]any{"q": "from-builder"}, nil, ProcessorOpts{})
		got, err := db.ParseString(FieldSpec{Name: "q", Source: map[string]any{"q": "from-call"}})
		require.NoError(t, err)
		assert.Equal(t, "from-call", got)
	})

	t.Run("NoRollback", func(t *testing.T) {
		db := NewDataBuilder(map[string]any{"a": "1", "b": "x"}, nil, ProcessorOpts{})
		_, err := db.ParseInt(FieldSpec{Name: "a"})
		require.NoError(t, err)
		_, err = db.ParseInt(FieldSpec{Name: "b"})
		require.Error(t, err)

		assert.Equal(t, map[string]any{"a": 1}, db.Build())
	})

	t.Run("ConfigurationErrors", func(t *testing.T) {
		db := NewDataBuilder(map[string]any{"address": "x"}, map[string]any{"address": "flat"}, ProcessorOpts{})

		tests := []struct {
			name string
			kind Kind
			spec FieldSpec
			want error
		}{
			{"missing_name", KindString, FieldSpec{}, ErrMissingFieldName},
			{"unknown_kind", "matrix", FieldSpec{Name: "m"}, ErrParserNotFound},
			{"unknown_operator", KindString, FieldSpec{Name: "s", Op: "between"}, ErrUnknownOperator},
			{"section_not_a_map", KindString, FieldSpec{Name: "city", To: "address"}, ErrSectionNotAMap},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := db.Parse(tt.kind, tt.spec)
				assert.ErrorIs(t, err, tt.want)
				assert.True(t, IsConfigurationError(err))
				assert.False(t, IsValidationError(err))
			})
		}
	})

	t.Run("ErrorFactory", func(t *testing.T) {
		type rejection struct{ field, reason string }
		var rejections []rejection
		factory := func(field, reason string) error {
			rejections = append(rejections, rejection{field, reason})
			return errors.New("422: " + reason)
		}

		db := NewDataBuilder(map[string]any{"ids": []any{"1", "x"}}, nil, ProcessorOpts{ErrorFactory: factory})
		_, err := db.ParseArray(FieldSpec{Name: "ids", ItemType: KindInt})
		assert.EqualError(t, err, "422: item must be a number")
		_, err = db.ParseString(FieldSpec{Name: "login", Required: true})
		assert.EqualError(t, err, "422: login is required")

		assert.Equal(t, []rejection{{"item", "item must be a number"}, {"login", "login is required"}}, rejections)
	})

	t.Run("Logger", func(t *testing.T) {
		buf := &bytes.Buffer{}
		logger := slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

		db := NewDataBuilder(map[string]any{"age": "old"}, nil, ProcessorOpts{Logger: logger})
		_, _ = db.ParseString(FieldSpec{Name: "age", As: "label"})
		_, _ = db.ParseInt(FieldSpec{Name: "age"})

		out := buf.String()
		assert.Contains(t, out, `"msg":"parameter parsed"`)
		assert.Contains(t, out, `"key":"label"`)
		assert.Contains(t, out, `"msg":"parameter rejected"`)
		assert.Contains(t, out, `"kind":"int"`)
	})
}

func TestParamsProcessor_PerKindMethods(t *testing.T) {
	source := map[string]any{
		"s":     "text",
		"n":     "1.5",
		"i":     "2",
		"f":     "2.5",
		"d":     "2020-05-06",
		"id":    "7",
		"ids":   "1,2",
		"oid":   "507f1f77bcf86cd799439011",
		"email": "a@b.io",
		"re":    "abc",
		"uuid":  "6ba7b810-9dad-11d1-80b4-00c04fd430c8",
		"json":  `{"k":true}`,
		"bool":  "true",
		"arr":   []any{"x"},
		"c":     "v",
	}
	db := NewDataBuilder(source, nil, ProcessorOpts{})

	calls := []func() (any, error){
		func() (any, error) { return db.ParseString(FieldSpec{Name: "s"}) },
		func() (any, error) { return db.ParseNumber(FieldSpec{Name: "n"}) },
		func() (any, error) { return db.ParseInt(FieldSpec{Name: "i"}) },
		func() (any, error) { return db.ParseFloat(FieldSpec{Name: "f"}) },
		func() (any, error) { return db.ParseDate(FieldSpec{Name: "d", Format: "YYYY-MM-DD"}) },
		func() (any, error) { return db.ParseId(FieldSpec{Name: "id"}) },
		func() (any, error) { return db.ParseIdList(FieldSpec{Name: "ids"}) },
		func() (any, error) { return db.ParseObjectId(FieldSpec{Name: "oid"}) },
		func() (any, error) { return db.ParseEmail(FieldSpec{Name: "email"}) },
		func() (any, error) { return db.ParseRegexp(FieldSpec{Name: "re", Pattern: "^a"}) },
		func() (any, error) { return db.ParseUUID(FieldSpec{Name: "uuid"}) },
		func() (any, error) { return db.ParseJson(FieldSpec{Name: "json"}) },
		func() (any, error) { return db.ParseBool(FieldSpec{Name: "bool"}) },
		func() (any, error) { return db.ParseArray(FieldSpec{Name: "arr", ItemType: KindString}) },
		func() (any, error) {
			return db.ParseCustom(FieldSpec{Name: "c", Handler: func(v any) (any, error) { return v, nil }})
		},
	}
	for _, call := range calls {
		val, err := call()
		require.NoError(t, err)
		assert.NotNil(t, val)
	}
	assert.Len(t, db.Build(), len(source))
}
