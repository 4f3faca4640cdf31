package paramq

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoFind renders the accumulated query as arguments for the MongoDB
// driver's Collection.Find: a bson filter built from the Mongoose rendering
// and find options carrying projection, sort, skip and limit.
func (qb *QueryBuilder) MongoFind() (bson.M, *options.FindOptions, error) {
	state := qb.Snapshot()
	rendered, err := renderFilter(mongooseDialect{}, state)
	if err != nil {
		return nil, nil, err
	}

	filter := make(bson.M, len(rendered))
	for field, cond := range rendered {
		filter[field] = bson.M(cond.(map[string]any))
	}

	opts := options.Find()
	if len(state.Fields) > 0 {
		projection := make(bson.M, len(state.Fields))
		for _, f := range state.Fields {
			projection[f] = 1
		}
		opts.SetProjection(projection)
	}
	if s := state.Sorting; s != nil {
		order := 1
		if s.Direction == SortDesc {
			order = -1
		}
		opts.SetSort(bson.D{{Key: s.By, Value: order}})
	}
	if p := state.Pagination; p != nil {
		opts.SetSkip(p.Offset())
		opts.SetLimit(int64(p.Count))
	}
	return filter, opts, nil
}
