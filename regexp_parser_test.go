package paramq

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestRegexpParser(t *testing.T) {
	parser := NewRegexpParser()

	t.Run("StringPattern", func(t *testing.T) {
		got, err := runParser(parser, "abc", FieldSpec{Name: "code", Pattern: "^[a-z]+$"})
		require.NoError(t, err)
		assert.Equal(t, "abc", got)
	})

	t.Run("CompiledPattern", func(t *testing.T) {
		got, err := runParser(parser, "A-1", FieldSpec{Name: "code", Pattern: regexp.MustCompile(`^[A-Z]-\d$`)})
		require.NoError(t, err)
		assert.Equal(t, "A-1", got)
	})

	t.Run("Mismatch", func(t *testing.T) {
		_, err := runParser(parser, "ABC", FieldSpec{Name: "code", Pattern: "^[a-z]+$"})
		assert.Equal(t, "code must match pattern ^[a-z]+$", reasonOf(t, err))
	})

	t.Run("NonString", func(t *testing.T) {
		_, err := runParser(parser, 12, FieldSpec{Name: "code", Pattern: "^[0-9]+$"})
		assert.Equal(t, "code must match pattern ^[0-9]+$", reasonOf(t, err))
	})

	t.Run("MissingPattern", func(t *testing.T) {
		_, err := runParser(parser, "abc", FieldSpec{Name: "code"})
		assert.ErrorIs(t, err, ErrMissingPattern)
		assert.False(t, IsValidationError(err))
	})

	t.Run("BrokenPattern", func(t *testing.T) {
		_, err := runParser(parser, "abc", FieldSpec{Name: "code", Pattern: "("})
		assert.ErrorIs(t, err, ErrMissingPattern)
	})

	t.Run("Allowed", func(t *testing.T) {
		_, err := runParser(parser, "abd", FieldSpec{Name: "code", Pattern: "^[a-z]+$", Allowed: []any{"abc"}})
		assert.Equal(t, "code is incorrect, must be one of abc", reasonOf(t, err))
	})
}

func TestObjectIdParser(t *testing.T) {
	parser := NewObjectIdParser()
	const hex = "507f1f77bcf86cd799439011"

	t.Run("Valid", func(t *testing.T) {
		got, err := runParser(parser, hex, FieldSpec{Name: "id"})
		require.NoError(t, err)
		assert.Equal(t, hex, got)
	})

	t.Run("Native", func(t *testing.T) {
		got, err := runParser(parser, hex, FieldSpec{Name: "id", ObjectID: true})
		require.NoError(t, err)
		want, _ := primitive.ObjectIDFromHex(hex)
		assert.Equal(t, want, got)
	})

	for _, bad := range []any{"507f1f77bcf86cd79943901", "zz7f1f77bcf86cd799439011", 5} {
		t.Run("Invalid", func(t *testing.T) {
			_, err := runParser(parser, bad, FieldSpec{Name: "id"})
			assert.Equal(t, "id must be a valid ObjectId", reasonOf(t, err))
		})
	}
}

func TestEmailParser(t *testing.T) {
	parser := NewEmailParser()

	valid := []string{
		"user@example.com",
		"first.last+tag@sub.example.org",
		"x@localhost",
	}
	for _, email := range valid {
		t.Run(email, func(t *testing.T) {
			got, err := runParser(parser, email, FieldSpec{Name: "email"})
			require.NoError(t, err)
			assert.Equal(t, email, got)
		})
	}

	invalid := []string{
		"user@",
		"@example.com",
		"user example@example.com",
		"user..dots@example.com",
		strings.Repeat("a", 65) + "@example.com",
		"user@" + strings.Repeat("a", 250) + ".com",
	}
	for _, email := range invalid {
		t.Run("Invalid", func(t *testing.T) {
			_, err := runParser(parser, email, FieldSpec{Name: "email"})
			assert.Equal(t, "email must be a valid email address", reasonOf(t, err))
		})
	}
}
