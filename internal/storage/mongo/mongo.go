package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	usersCollection       = "users"
	threadsCollection     = "threads"
	communitiesCollection = "communities"
)

// Connector hands out the live database, connecting on first use.
type Connector interface {
	Connect(ctx context.Context) (*mongodriver.Database, error)
}

// Mongo implements the storage contracts over a lazily connected database.
// Every operation goes through Connect, so a dropped connection is retried on
// the next call.
type Mongo struct {
	conn Connector
}

func New(conn Connector) *Mongo {
	return &Mongo{conn: conn}
}

func (m *Mongo) collection(ctx context.Context, name string) (*mongodriver.Collection, error) {
	db, err := m.conn.Connect(ctx)
	if err != nil {
		return nil, err
	}
	return db.Collection(name), nil
}

// EnsureIndexes creates the indexes the read paths rely on:
//   - users: id (unique), username (unique), createdAt
//   - threads: author + parentId + createdAt(desc) for profile tabs,
//     parentId for the reply scan, createdAt(desc) for the home feed
func (m *Mongo) EnsureIndexes(ctx context.Context) error {
	const op = "storage/mongo/EnsureIndexes"

	users, err := m.collection(ctx, usersCollection)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	_, err = users.Indexes().CreateMany(ctx, []mongodriver.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetName("idx_external_id").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().
				SetName("idx_username").
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"username": bson.M{"$type": "string"}}),
		},
		{
			Keys:    bson.D{{Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("idx_created_desc"),
		},
	})
	if err != nil {
		return fmt.Errorf("%s: users: %w", op, err)
	}

	threads, err := m.collection(ctx, threadsCollection)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	_, err = threads.Indexes().CreateMany(ctx, []mongodriver.IndexModel{
		{
			Keys:    bson.D{{Key: "author", Value: 1}, {Key: "parentId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("idx_author_parent_created"),
		},
		{
			Keys:    bson.D{{Key: "parentId", Value: 1}},
			Options: options.Index().SetName("idx_parent"),
		},
		{
			Keys:    bson.D{{Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("idx_created_desc"),
		},
	})
	if err != nil {
		return fmt.Errorf("%s: threads: %w", op, err)
	}
	return nil
}

// newestFirst is the listing order shared by every thread read.
func newestFirst() bson.D {
	return bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}
}

func idsFilter(ids []primitive.ObjectID) bson.M {
	return bson.M{"_id": bson.M{"$in": ids}}
}
