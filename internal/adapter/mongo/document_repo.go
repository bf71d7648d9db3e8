package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	userCollectionName    = "usuarios"
	productCollectionName = "produtos"
)

// DocumentMongoRepository backs the pass-through user and product collections.
// Documents are stored exactly as received; no schema is imposed.
type DocumentMongoRepository struct {
	coll *mongo.Collection
}

func NewUserMongoRepository(client *mongo.Client, dbName string) *DocumentMongoRepository {
	return &DocumentMongoRepository{coll: client.Database(dbName).Collection(userCollectionName)}
}

func NewProductMongoRepository(client *mongo.Client, dbName string) *DocumentMongoRepository {
	return &DocumentMongoRepository{coll: client.Database(dbName).Collection(productCollectionName)}
}

func (r *DocumentMongoRepository) Insert(ctx context.Context, doc map[string]interface{}) (map[string]interface{}, error) {
	res, err := r.coll.InsertOne(ctx, bson.M(doc))
	if err != nil {
		return nil, fmt.Errorf("failed to insert document into %s: %w", r.coll.Name(), err)
	}

	stored := make(map[string]interface{}, len(doc)+1)
	for k, v := range doc {
		stored[k] = v
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		stored["_id"] = oid.Hex()
	}
	return stored, nil
}

func (r *DocumentMongoRepository) List(ctx context.Context) ([]map[string]interface{}, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list documents from %s: %w", r.coll.Name(), err)
	}
	defer cursor.Close(ctx)

	var raw []bson.M
	if err = cursor.All(ctx, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode documents from %s: %w", r.coll.Name(), err)
	}

	docs := make([]map[string]interface{}, 0, len(raw))
	for _, d := range raw {
		doc := map[string]interface{}(d)
		if oid, ok := doc["_id"].(primitive.ObjectID); ok {
			doc["_id"] = oid.Hex()
		}
		docs = append(docs, doc)
	}
	return docs, nil
}
