package mongo

import (
	"context"
	"fmt"

	"github.com/AnshRaj112/threads-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (m *Mongo) CommunitiesByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Community, error) {
	const op = "storage/mongo/CommunitiesByIDs"

	if len(ids) == 0 {
		return nil, nil
	}
	col, err := m.collection(ctx, communitiesCollection)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	// Members can be large and are never rendered.
	opts := options.Find().SetProjection(bson.M{"members": 0})
	cur, err := col.Find(ctx, idsFilter(ids), opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	var out []models.Community
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("%s: decode: %w", op, err)
	}
	return out, nil
}
