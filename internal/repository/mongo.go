package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// Collection names.
const (
	ColUsers         = "users"
	ColGroups        = "groups"
	ColPermissions   = "permissions"
	ColVerifications = "verifications"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate unique field")
)

// wrapError maps driver errors onto the repository error taxonomy.
func wrapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	return err
}

// findOne decodes a single document, returning (nil, nil) when absent.
func findOne[T any](ctx context.Context, col *mongo.Collection, filter bson.D) (*T, error) {
	var result T
	err := col.FindOne(ctx, filter).Decode(&result)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, wrapError(err)
	}
	return &result, nil
}

func findMany[T any](ctx context.Context, col *mongo.Collection, filter bson.D, opts ...options.Lister[options.FindOptions]) ([]T, error) {
	cursor, err := col.Find(ctx, filter, opts...)
	if err != nil {
		return nil, wrapError(err)
	}
	defer cursor.Close(ctx)

	results := []T{}
	for cursor.Next(ctx) {
		var item T
		if err := cursor.Decode(&item); err != nil {
			return nil, err
		}
		results = append(results, item)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// updateByID applies $set fields to the document with the given _id.
func updateByID(ctx context.Context, col *mongo.Collection, id string, set bson.D) error {
	res, err := col.UpdateOne(ctx, bson.D{{Key: "_id", Value: id}}, bson.D{{Key: "$set", Value: set}})
	if err != nil {
		return wrapError(err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// EnsureIndexes creates the indexes every collection depends on: the unique
// email constraint, the single-outstanding-code constraint on verifications,
// and the TTL index that garbage-collects expired codes.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	type idx struct {
		col    string
		keys   bson.D
		unique bool
		ttl    bool
	}

	indexes := []idx{
		{col: ColUsers, keys: bson.D{{Key: "email", Value: 1}}, unique: true},
		{col: ColUsers, keys: bson.D{{Key: "created_at", Value: -1}}},
		{col: ColGroups, keys: bson.D{{Key: "name", Value: 1}}, unique: true},
		{col: ColVerifications, keys: bson.D{{Key: "expires_at", Value: 1}}, ttl: true},
	}

	for _, i := range indexes {
		model := mongo.IndexModel{Keys: i.keys}
		if i.unique {
			model.Options = options.Index().SetUnique(true)
		}
		if i.ttl {
			model.Options = options.Index().SetExpireAfterSeconds(0)
		}
		if _, err := db.Collection(i.col).Indexes().CreateOne(ctx, model); err != nil {
			return fmt.Errorf("create index on %s: %w", i.col, err)
		}
	}
	return nil
}
