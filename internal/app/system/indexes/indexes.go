// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dalemusser/vastusite/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

/*
EnsureAll is called at startup. Each ensure* function is idempotent.
We aggregate errors so any problem is visible and startup can fail fast.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	if err := ensureUsers(ctx, db); err != nil {
		problems = append(problems, models.CollectionUsers+": "+err.Error())
	}
	for _, kind := range models.ContentKinds {
		if err := ensureContent(ctx, db, kind); err != nil {
			problems = append(problems, kind.Collection()+": "+err.Error())
		}
	}
	for _, coll := range []string{models.CollectionProducts, models.CollectionTestimonials, models.CollectionGallery} {
		if err := ensureListed(ctx, db, coll); err != nil {
			problems = append(problems, coll+": "+err.Error())
		}
	}
	if err := ensureGalleryCategory(ctx, db); err != nil {
		problems = append(problems, models.CollectionGallery+": "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

/* -------------------------------------------------------------------------- */
/* Core helper: reconcile a set of desired indexes for one collection         */
/* -------------------------------------------------------------------------- */

type existingIndex struct {
	Name   string `bson:"name"`
	Key    bson.D `bson:"key"`
	Unique *bool  `bson:"unique,omitempty"`
}

func keySig(keys bson.D) string {
	parts := make([]string, 0, len(keys))
	for _, kv := range keys {
		parts = append(parts, fmt.Sprintf("%s:%v", kv.Key, kv.Value))
	}
	return strings.Join(parts, ", ")
}

func sameBoolPtr(a, b *bool) bool {
	av := a != nil && *a
	bv := b != nil && *b
	return av == bv
}

// IsDuplicateKeyErr is a best-effort E11000 detector.
func IsDuplicateKeyErr(err error) bool {
	if err == nil {
		return false
	}
	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			if e.Code == 11000 {
				return true
			}
		}
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && ce.Code == 11000 {
		return true
	}
	s := err.Error()
	return strings.Contains(s, "E11000") || strings.Contains(strings.ToLower(s), "duplicate key")
}

// Mongo/DocDB sometimes returns IndexOptionsConflict when an index with the
// same keys already exists under a different name (or options differ).
func isOptionsConflictErr(err error) bool {
	return err != nil && strings.Contains(err.Error(), "IndexOptionsConflict")
}

func listExisting(ctx context.Context, coll *mongo.Collection) map[string]existingIndex {
	existing := map[string]existingIndex{} // sig -> index
	cur, err := coll.Indexes().List(ctx)
	if err != nil {
		return existing
	}
	defer cur.Close(ctx)
	for cur.Next(ctx) {
		var idx existingIndex
		if err := cur.Decode(&idx); err != nil {
			zap.L().Warn("failed to decode existing index",
				zap.String("collection", coll.Name()),
				zap.Error(err))
			continue
		}
		existing[keySig(idx.Key)] = idx
	}
	return existing
}

// recreate drops ex and creates m in its place.
func recreate(ctx context.Context, coll *mongo.Collection, ex existingIndex, m mongo.IndexModel, name string, unique bool) error {
	if _, err := coll.Indexes().DropOne(ctx, ex.Name); err != nil {
		return fmt.Errorf("%s(%s): drop failed: %w", coll.Name(), name, err)
	}
	if _, err := coll.Indexes().CreateOne(ctx, m); err != nil {
		if IsDuplicateKeyErr(err) && unique {
			return fmt.Errorf("%s(%s): cannot create unique index (duplicates present)%s", coll.Name(), name, dupHelper(coll.Name(), m))
		}
		return fmt.Errorf("%s(%s): %w", coll.Name(), name, err)
	}
	return nil
}

// dupHelper returns an aggregation an operator can paste to find duplicates.
func dupHelper(collName string, m mongo.IndexModel) string {
	keys := m.Keys.(bson.D)
	if len(keys) != 1 {
		return ""
	}
	field := keys[0].Key
	return fmt.Sprintf(" — example finder:\ndb.%s.aggregate([{ $group: { _id: \"$%s\", n: { $sum: 1 } } }, { $match: { n: { $gt: 1 } } }])", collName, field)
}

func ensureIndexSet(ctx context.Context, coll *mongo.Collection, set []mongo.IndexModel) error {
	var errs []string

	for _, m := range set {
		var desiredName string
		var desiredUnique *bool
		if m.Options != nil {
			if m.Options.Name != nil {
				desiredName = *m.Options.Name
			}
			desiredUnique = m.Options.Unique
		}
		unique := desiredUnique != nil && *desiredUnique
		desiredSig := keySig(m.Keys.(bson.D))

		start := time.Now()
		log := zap.L().With(
			zap.String("collection", coll.Name()),
			zap.String("name", desiredName),
			zap.String("keys", desiredSig),
			zap.Bool("unique", unique))

		ex, ok := listExisting(ctx, coll)[desiredSig]
		switch {
		case ok && sameBoolPtr(desiredUnique, ex.Unique) && (desiredName == "" || ex.Name == desiredName):
			log.Info("reusing existing index", zap.Duration("took", time.Since(start)))

		case ok:
			// Same keys but different name or uniqueness: drop and recreate.
			if err := recreate(ctx, coll, ex, m, desiredName, unique); err != nil {
				log.Warn("index recreate failed", zap.Error(err))
				errs = append(errs, err.Error())
				continue
			}
			log.Info("index dropped and recreated",
				zap.String("from", ex.Name),
				zap.Duration("took", time.Since(start)))

		default:
			created, err := coll.Indexes().CreateOne(ctx, m)
			if err == nil {
				log.Info("index ensured",
					zap.String("created_name", created),
					zap.Duration("took", time.Since(start)))
				continue
			}
			if isOptionsConflictErr(err) {
				if match, found := listExisting(ctx, coll)[desiredSig]; found {
					rerr := recreate(ctx, coll, match, m, desiredName, unique)
					if rerr == nil {
						log.Info("index dropped and recreated (post-conflict)", zap.Duration("took", time.Since(start)))
						continue
					}
					errs = append(errs, rerr.Error())
					continue
				}
			}
			if IsDuplicateKeyErr(err) && unique {
				err = fmt.Errorf("cannot create unique index (duplicates present)%s", dupHelper(coll.Name(), m))
			}
			log.Warn("index ensure failed", zap.Duration("took", time.Since(start)), zap.Error(err))
			errs = append(errs, fmt.Sprintf("%s(%s): %v", coll.Name(), desiredName, err))
		}
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

/* -------------------------------------------------------------------------- */
/* Collection-specific index sets                                              */
/* -------------------------------------------------------------------------- */

func ensureUsers(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection(models.CollectionUsers), []mongo.IndexModel{
		// Email is the sign-in identifier (stored folded).
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_users_email"),
		},
	})
}

// ensureContent covers one slugged content collection.
func ensureContent(ctx context.Context, db *mongo.Database, kind models.ContentKind) error {
	name := kind.Collection()
	return ensureIndexSet(ctx, db.Collection(name), []mongo.IndexModel{
		// Public lookup by slug; one slug per kind.
		{
			Keys:    bson.D{{Key: "slug", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_" + name + "_slug"),
		},
		listIndex(name),
	})
}

// ensureListed covers the collections that are only listed and fetched by id.
func ensureListed(ctx context.Context, db *mongo.Database, name string) error {
	return ensureIndexSet(ctx, db.Collection(name), []mongo.IndexModel{listIndex(name)})
}

func ensureGalleryCategory(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection(models.CollectionGallery), []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "category", Value: 1},
				{Key: "is_active", Value: 1},
				{Key: "created_at", Value: -1},
			},
			Options: options.Index().SetName("idx_gallery_category_active_created"),
		},
	})
}

// listIndex serves "active items, newest first" with _id as the tiebreaker.
func listIndex(coll string) mongo.IndexModel {
	return mongo.IndexModel{
		Keys: bson.D{
			{Key: "is_active", Value: 1},
			{Key: "created_at", Value: -1},
			{Key: "_id", Value: -1},
		},
		Options: options.Index().SetName("idx_" + coll + "_active_created_id"),
	}
}
