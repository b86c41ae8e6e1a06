package mongo

import (
	"context"
	"errors"
	"fmt"

	"github.com/AnshRaj112/threads-backend/internal/models"
	"github.com/AnshRaj112/threads-backend/internal/storage"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// A thread is top-level when parentId is missing, null or "". A nil inside
// $in matches both missing and null.
var (
	topLevelFilter = bson.M{"$in": bson.A{nil, ""}}
	replyFilter    = bson.M{"$exists": true, "$nin": bson.A{nil, ""}}
)

func (m *Mongo) ThreadByID(ctx context.Context, id primitive.ObjectID) (*models.Thread, error) {
	const op = "storage/mongo/ThreadByID"

	col, err := m.collection(ctx, threadsCollection)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var t models.Thread
	if err := col.FindOne(ctx, bson.M{"_id": id}).Decode(&t); err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &t, nil
}

func (m *Mongo) ThreadsByAuthor(ctx context.Context, author primitive.ObjectID, kind models.ThreadKind) ([]models.Thread, error) {
	const op = "storage/mongo/ThreadsByAuthor"

	filter := bson.M{"author": author, "parentId": topLevelFilter}
	if kind == models.Replies {
		filter["parentId"] = replyFilter
	}
	return m.findThreads(ctx, op, filter, options.Find().SetSort(newestFirst()))
}

func (m *Mongo) ThreadsByIDs(ctx context.Context, ids []primitive.ObjectID, excludeAuthor primitive.ObjectID) ([]models.Thread, error) {
	const op = "storage/mongo/ThreadsByIDs"

	if len(ids) == 0 {
		return nil, nil
	}
	filter := idsFilter(ids)
	if !excludeAuthor.IsZero() {
		filter["author"] = bson.M{"$ne": excludeAuthor}
	}
	return m.findThreads(ctx, op, filter, options.Find().SetSort(newestFirst()))
}

func (m *Mongo) ReplyIDsByParents(ctx context.Context, parentIDs []string, excludeAuthor primitive.ObjectID) ([]primitive.ObjectID, error) {
	const op = "storage/mongo/ReplyIDsByParents"

	if len(parentIDs) == 0 {
		return nil, nil
	}
	col, err := m.collection(ctx, threadsCollection)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	filter := bson.M{"parentId": bson.M{"$in": parentIDs}}
	if !excludeAuthor.IsZero() {
		filter["author"] = bson.M{"$ne": excludeAuthor}
	}
	cur, err := col.Find(ctx, filter, options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer cur.Close(ctx)

	var ids []primitive.ObjectID
	for cur.Next(ctx) {
		var row struct {
			ID primitive.ObjectID `bson:"_id"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, fmt.Errorf("%s: decode: %w", op, err)
		}
		ids = append(ids, row.ID)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return ids, nil
}

func (m *Mongo) TopLevelThreads(ctx context.Context, skip, limit int64) ([]models.Thread, error) {
	const op = "storage/mongo/TopLevelThreads"

	opts := options.Find().
		SetSort(newestFirst()).
		SetSkip(skip).
		SetLimit(limit)
	return m.findThreads(ctx, op, bson.M{"parentId": topLevelFilter}, opts)
}

func (m *Mongo) CountTopLevelThreads(ctx context.Context) (int64, error) {
	const op = "storage/mongo/CountTopLevelThreads"

	col, err := m.collection(ctx, threadsCollection)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	n, err := col.CountDocuments(ctx, bson.M{"parentId": topLevelFilter})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}

func (m *Mongo) findThreads(ctx context.Context, op string, filter bson.M, opts *options.FindOptions) ([]models.Thread, error) {
	col, err := m.collection(ctx, threadsCollection)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	cur, err := col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	var out []models.Thread
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("%s: decode: %w", op, err)
	}
	return out, nil
}
