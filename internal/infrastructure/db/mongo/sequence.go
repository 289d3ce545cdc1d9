package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const collectionCounters = "counters"

// Sequence hands out monotonically increasing integer ids. The increment is
// a single atomic findAndModify, so concurrent callers never share an id.
type Sequence struct {
	col  *mongo.Collection
	name string
}

func NewSequence(db *mongo.Database, name string) *Sequence {
	return &Sequence{col: db.Collection(collectionCounters), name: name}
}

// Next returns the next id, starting at 1.
func (s *Sequence) Next(ctx context.Context) (int64, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var doc struct {
		Seq int64 `bson:"seq"`
	}
	err := s.col.FindOneAndUpdate(ctx,
		bson.M{"_id": s.name},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		opts,
	).Decode(&doc)
	if err != nil {
		return 0, storeError("next "+s.name+" id", err)
	}
	return doc.Seq, nil
}
