// Package store holds the errors and Mongo helpers shared by the
// per-collection stores below it.
package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// ErrNotFound is returned when no document matches.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateSlug is returned when a content slug is already taken in its collection.
	ErrDuplicateSlug = errors.New("slug already in use")
)

// Now returns the current time at the precision BSON stores, so a value
// written and read back compares equal.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

// NewestFirst sorts by created_at desc with _id as the tiebreaker.
// limit <= 0 means no limit.
func NewestFirst(limit int64) *options.FindOptions {
	opts := options.Find().SetSort(bson.D{
		{Key: "created_at", Value: -1},
		{Key: "_id", Value: -1},
	})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	return opts
}

// FindOne decodes a single document, mapping no-documents to ErrNotFound.
func FindOne[T any](ctx context.Context, c *mongo.Collection, filter any) (T, error) {
	var out T
	err := c.FindOne(ctx, filter).Decode(&out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return out, ErrNotFound
	}
	return out, err
}

// FindMany decodes every match. The result is never nil so it encodes as [].
func FindMany[T any](ctx context.Context, c *mongo.Collection, filter any, opts ...*options.FindOptions) ([]T, error) {
	cur, err := c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []T{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SetReturning applies $set to one document and returns it as updated.
func SetReturning[T any](ctx context.Context, c *mongo.Collection, id primitive.ObjectID, set bson.M) (T, error) {
	var out T
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return out, ErrNotFound
	}
	return out, err
}

// DeleteByID removes one document. A missing document is ErrNotFound.
func DeleteByID(ctx context.Context, c *mongo.Collection, id primitive.ObjectID) error {
	res, err := c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ActiveFilter matches publicly visible documents.
func ActiveFilter() bson.M {
	return bson.M{"is_active": true}
}
