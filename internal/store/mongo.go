package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/christmas3d/shop-api/internal/ident"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoGateway implements Gateway over a MongoDB database. Documents are
// addressed by the driver-assigned ObjectID in _id.
type MongoGateway struct {
	db *mongo.Database
}

func NewMongoGateway(db *mongo.Database) *MongoGateway {
	return &MongoGateway{db: db}
}

func (g *MongoGateway) Insert(ctx context.Context, collection string, doc Document) (ident.ID, error) {
	if _, ok := doc[IDField]; ok {
		return ident.Nil, ErrHasID
	}
	res, err := g.db.Collection(collection).InsertOne(ctx, bson.M(doc))
	if err != nil {
		return ident.Nil, fmt.Errorf("insert %s: %w", collection, err)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return ident.Nil, fmt.Errorf("insert %s: unexpected id type %T", collection, res.InsertedID)
	}
	return ident.FromObjectID(oid), nil
}

func (g *MongoGateway) FindOne(ctx context.Context, collection string, id ident.ID) (Document, error) {
	var out bson.M
	err := g.db.Collection(collection).FindOne(ctx, bson.M{IDField: id.ObjectID()}).Decode(&out)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("find %s: %w", collection, err)
	}
	return Document(out), nil
}

func (g *MongoGateway) FindSorted(ctx context.Context, collection, field string, descending bool) ([]Document, error) {
	dir := 1
	if descending {
		dir = -1
	}
	opts := options.Find().SetSort(bson.D{{Key: field, Value: dir}})
	cur, err := g.db.Collection(collection).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", collection, err)
	}
	defer cur.Close(ctx)

	out := []Document{}
	for cur.Next(ctx) {
		var d bson.M
		if err := cur.Decode(&d); err != nil {
			return nil, fmt.Errorf("decode %s: %w", collection, err)
		}
		out = append(out, Document(d))
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("cursor %s: %w", collection, err)
	}
	return out, nil
}

func (g *MongoGateway) UpdateOne(ctx context.Context, collection string, id ident.ID, set Document) (int64, error) {
	res, err := g.db.Collection(collection).UpdateOne(ctx, bson.M{IDField: id.ObjectID()}, bson.M{"$set": bson.M(set)})
	if err != nil {
		return 0, fmt.Errorf("update %s: %w", collection, err)
	}
	return res.MatchedCount, nil
}

func (g *MongoGateway) DeleteOne(ctx context.Context, collection string, id ident.ID) (int64, error) {
	res, err := g.db.Collection(collection).DeleteOne(ctx, bson.M{IDField: id.ObjectID()})
	if err != nil {
		return 0, fmt.Errorf("delete %s: %w", collection, err)
	}
	return res.DeletedCount, nil
}

func (g *MongoGateway) Name() string { return g.db.Name() }

func (g *MongoGateway) Collections(ctx context.Context) ([]string, error) {
	names, err := g.db.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}
	return names, nil
}
