package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// fakeCollection keeps documents in a map keyed by _id.
type fakeCollection struct {
	docs     map[string]document
	upserted bool
}

func newFakeCollection() *fakeCollection {
	return &fakeCollection{docs: make(map[string]document)}
}

func idOf(filter interface{}) string {
	id, _ := filter.(bson.M)["_id"].(string)
	return id
}

func (f *fakeCollection) FindOne(_ context.Context, filter interface{}, _ ...*options.FindOneOptions) *mongo.SingleResult {
	doc, ok := f.docs[idOf(filter)]
	if !ok {
		return mongo.NewSingleResultFromDocument(bson.D{}, mongo.ErrNoDocuments, nil)
	}
	return mongo.NewSingleResultFromDocument(doc, nil, nil)
}

func (f *fakeCollection) UpdateOne(_ context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error) {
	for _, o := range opts {
		if o.Upsert != nil && *o.Upsert {
			f.upserted = true
		}
	}
	set := update.(bson.M)["$set"].(bson.M)
	id := idOf(filter)
	f.docs[id] = document{Key: id, Value: set["value"].(string)}
	return &mongo.UpdateResult{ModifiedCount: 1}, nil
}

func (f *fakeCollection) DeleteOne(_ context.Context, filter interface{}, _ ...*options.DeleteOptions) (*mongo.DeleteResult, error) {
	id := idOf(filter)
	if _, ok := f.docs[id]; !ok {
		return &mongo.DeleteResult{}, nil
	}
	delete(f.docs, id)
	return &mongo.DeleteResult{DeletedCount: 1}, nil
}

func TestMongo(t *testing.T) {
	coll := newFakeCollection()
	m := NewMongo(coll)
	exercise(t, m)

	assert.True(t, coll.upserted, "Set must upsert")
	assert.NoError(t, m.Close())
}
