package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/AnshRaj112/threads-backend/internal/models"
	"github.com/AnshRaj112/threads-backend/internal/storage"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (m *Mongo) UserByExternalID(ctx context.Context, externalID string) (*models.User, error) {
	const op = "storage/mongo/UserByExternalID"
	return m.findUser(ctx, op, bson.M{"id": externalID})
}

func (m *Mongo) findUser(ctx context.Context, op string, filter bson.M) (*models.User, error) {
	col, err := m.collection(ctx, usersCollection)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var u models.User
	if err := col.FindOne(ctx, filter).Decode(&u); err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &u, nil
}

func (m *Mongo) UsersByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	const op = "storage/mongo/UsersByIDs"

	if len(ids) == 0 {
		return nil, nil
	}
	col, err := m.collection(ctx, usersCollection)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	cur, err := col.Find(ctx, idsFilter(ids))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	var out []models.User
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("%s: decode: %w", op, err)
	}
	return out, nil
}

func (m *Mongo) UpsertProfile(ctx context.Context, upd models.ProfileUpdate) error {
	const op = "storage/mongo/UpsertProfile"

	col, err := m.collection(ctx, usersCollection)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	update := bson.M{
		"$set": bson.M{
			"username":  upd.Username,
			"name":      upd.Name,
			"bio":       upd.Bio,
			"image":     upd.Image,
			"onboarded": true,
		},
		"$setOnInsert": bson.M{
			"createdAt": time.Now().UTC().Truncate(time.Millisecond),
		},
	}
	_, err = col.UpdateOne(ctx, bson.M{"id": upd.ExternalID}, update, options.Update().SetUpsert(true))
	if mongodriver.IsDuplicateKeyError(err) {
		return fmt.Errorf("%s: username %q: %w", op, upd.Username, storage.ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (m *Mongo) SearchUsers(ctx context.Context, q models.UserQuery) ([]models.User, error) {
	const op = "storage/mongo/SearchUsers"

	col, err := m.collection(ctx, usersCollection)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	dir := 1
	if q.SortDesc {
		dir = -1
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: dir}, {Key: "_id", Value: dir}}).
		SetSkip(q.Skip).
		SetLimit(q.Limit)

	cur, err := col.Find(ctx, userQueryFilter(q), opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	var out []models.User
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("%s: decode: %w", op, err)
	}
	return out, nil
}

func (m *Mongo) CountUsers(ctx context.Context, q models.UserQuery) (int64, error) {
	const op = "storage/mongo/CountUsers"

	col, err := m.collection(ctx, usersCollection)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	n, err := col.CountDocuments(ctx, userQueryFilter(q))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}

// userQueryFilter excludes the caller and, when a search term is present,
// matches it case-insensitively as a literal substring of username or name.
func userQueryFilter(q models.UserQuery) bson.M {
	filter := bson.M{"id": bson.M{"$ne": q.ExcludeExternalID}}

	term := strings.TrimSpace(q.Search)
	if term != "" {
		re := primitive.Regex{Pattern: regexp.QuoteMeta(term), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"username": re},
			bson.M{"name": re},
		}
	}
	return filter
}
