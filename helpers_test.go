package paramq

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsAbsent(t *testing.T) {
	var nilMap map[string]any
	var nilPtr *time.Time
	var nilSlice []string

	tests := []struct {
		name string
		val  any
		want bool
	}{
		{"nil", nil, true},
		{"nil_map", nilMap, true},
		{"nil_pointer", nilPtr, true},
		{"nil_slice", nilSlice, true},
		{"empty_string", "", false},
		{"zero", 0, false},
		{"false", false, false},
		{"empty_slice", []any{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isAbsent(tt.val))
		})
	}
}

func TestToString(t *testing.T) {
	tests := []struct {
		name string
		val  any
		want string
	}{
		{"string", "abc", "abc"},
		{"bytes", []byte("abc"), "abc"},
		{"int", 15, "15"},
		{"float", 3.5, "3.5"},
		{"whole_float", 1e6, "1000000"},
		{"bool", true, "true"},
		{"time", time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC), "2020-01-02T03:04:05Z"},
		{"list", []any{"a", 1}, "a,1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, toString(tt.val))
		})
	}
}

func TestToFloatAndInt(t *testing.T) {
	tests := []struct {
		name  string
		val   any
		wantF float64
		okF   bool
		wantI int
		okI   bool
	}{
		{"int", 3, 3, true, 3, true},
		{"int64", int64(-2), -2, true, -2, true},
		{"uint8", uint8(9), 9, true, 9, true},
		{"float", 2.75, 2.75, true, 2, true},
		{"numeric_string", " 12 ", 12, true, 12, true},
		{"fraction_string", "4.5", 4.5, true, 4, true},
		{"bool", true, 1, true, 1, true},
		{"garbage", "12abc", 0, false, 0, false},
		{"empty", "", 0, false, 0, false},
		{"nan", "NaN", 0, false, 0, false},
		{"struct", struct{}{}, 0, false, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, ok := toFloat(tt.val)
			assert.Equal(t, tt.okF, ok)
			assert.Equal(t, tt.wantF, f)

			i, ok := toInt(tt.val)
			assert.Equal(t, tt.okI, ok)
			assert.Equal(t, tt.wantI, i)
		})
	}
}

func TestToSlice(t *testing.T) {
	items, ok := toSlice([]string{"a", "b"})
	assert.True(t, ok)
	assert.Equal(t, []any{"a", "b"}, items)

	items, ok = toSlice([2]int{1, 2})
	assert.True(t, ok)
	assert.Equal(t, []any{1, 2}, items)

	_, ok = toSlice([]byte("ab"))
	assert.False(t, ok)

	_, ok = toSlice("ab")
	assert.False(t, ok)
}

func TestSameValue(t *testing.T) {
	at := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

	assert.True(t, sameValue(1, 1.0))
	assert.True(t, sameValue(int64(5), uint(5)))
	assert.False(t, sameValue(1, "1"))
	assert.True(t, sameValue(at, at.In(time.FixedZone("x", 3600))))
	assert.True(t, sameValue("a", "a"))
	assert.False(t, sameValue([]any{1}, 1))
}
