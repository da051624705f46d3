package sequenceRepo

import (
	"context"
	"fmt"
	"time"

	"smarthub/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoSequenceRepo stores one counter document per sequence.
type MongoSequenceRepo struct {
	coll *mongo.Collection
}

func NewMongoSequenceRepo() SequenceRepository {
	return &MongoSequenceRepo{coll: database.DB().Collection("counters")}
}

type counter struct {
	Name string `bson:"_id"`
	Seq  int64  `bson:"seq"`
}

// Next increments outside of any session carried by ctx, so ids are never
// rolled back and concurrent transactions never contend on a counter.
func (r *MongoSequenceRepo) Next(ctx context.Context, name string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	cctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var c counter
	err := r.coll.FindOneAndUpdate(cctx, bson.M{"_id": name}, bson.M{"$inc": bson.M{"seq": 1}}, opts).Decode(&c)
	if err != nil {
		return 0, fmt.Errorf("failed to allocate %s id: %w", name, err)
	}
	return c.Seq, nil
}
