package paramq

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestMongoFind(t *testing.T) {
	t.Run("EndToEnd", func(t *testing.T) {
		filter, opts, err := usersQuery(t, OpIn).MongoFind()
		require.NoError(t, err)

		assert.Equal(t, bson.M{
			"userRole": bson.M{"$eq": "user"},
			"userId":   bson.M{"$in": []any{1, 2, 3}},
		}, filter)
		assert.Equal(t, bson.M{"firstName": 1, "lastName": 1}, opts.Projection)
		assert.Equal(t, bson.D{{Key: "firstName", Value: 1}}, opts.Sort)
		require.NotNil(t, opts.Skip)
		require.NotNil(t, opts.Limit)
		assert.Equal(t, int64(50), *opts.Skip)
		assert.Equal(t, int64(10), *opts.Limit)
	})

	t.Run("Descending", func(t *testing.T) {
		qb := NewQueryBuilder(map[string]any{"sortBy": "age", "sortDirection": "desc"}, nil, ProcessorOpts{})
		_, err := qb.ParseSorting(SortingSpec{Allowed: []string{"age"}})
		require.NoError(t, err)

		_, opts, err := qb.MongoFind()
		require.NoError(t, err)
		assert.Equal(t, bson.D{{Key: "age", Value: -1}}, opts.Sort)
	})

	t.Run("Empty", func(t *testing.T) {
		filter, opts, err := NewQueryBuilder(nil, nil, ProcessorOpts{}).MongoFind()
		require.NoError(t, err)
		assert.Empty(t, filter)
		assert.Nil(t, opts.Projection)
		assert.Nil(t, opts.Sort)
		assert.Nil(t, opts.Limit)
	})

	t.Run("FilterEncodes", func(t *testing.T) {
		filter, _, err := usersQuery(t, OpNin).MongoFind()
		require.NoError(t, err)

		raw, err := bson.Marshal(filter)
		require.NoError(t, err)
		var decoded bson.M
		require.NoError(t, bson.Unmarshal(raw, &decoded))
		assert.Contains(t, decoded, "userId")
		assert.Contains(t, decoded["userId"], "$nin")
	})
}
