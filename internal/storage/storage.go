package storage

import (
	"context"
	"errors"

	"github.com/AnshRaj112/threads-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	// ErrNotFound is returned by single-document lookups when nothing matches.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned by writes that would break a unique constraint.
	ErrConflict = errors.New("conflict")
)

// UserStorage reads and writes user documents.
type UserStorage interface {
	// UserByExternalID looks a user up by identity provider subject.
	// Returns ErrNotFound when absent.
	UserByExternalID(ctx context.Context, externalID string) (*models.User, error)

	// UsersByIDs batch-loads users. Missing ids are skipped; order is unspecified.
	UsersByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error)

	// UpsertProfile inserts or updates the profile keyed by ExternalID and marks
	// it onboarded. Username must already be normalised. Returns ErrConflict
	// when another user holds the username.
	UpsertProfile(ctx context.Context, upd models.ProfileUpdate) error

	// SearchUsers returns one page of the directory.
	SearchUsers(ctx context.Context, q models.UserQuery) ([]models.User, error)

	// CountUsers counts every directory match, ignoring Skip and Limit.
	CountUsers(ctx context.Context, q models.UserQuery) (int64, error)
}

// ThreadStorage reads thread documents. Listings are ordered by createdAt
// descending with _id descending as tie-break.
type ThreadStorage interface {
	// ThreadByID returns ErrNotFound when absent.
	ThreadByID(ctx context.Context, id primitive.ObjectID) (*models.Thread, error)

	// ThreadsByAuthor lists the author's top-level threads or replies.
	ThreadsByAuthor(ctx context.Context, author primitive.ObjectID, kind models.ThreadKind) ([]models.Thread, error)

	// ThreadsByIDs batch-loads threads. A non-zero excludeAuthor drops threads
	// written by that user.
	ThreadsByIDs(ctx context.Context, ids []primitive.ObjectID, excludeAuthor primitive.ObjectID) ([]models.Thread, error)

	// ReplyIDsByParents scans for threads whose parentId string equals one of
	// parentIDs. A non-zero excludeAuthor drops replies written by that user.
	ReplyIDsByParents(ctx context.Context, parentIDs []string, excludeAuthor primitive.ObjectID) ([]primitive.ObjectID, error)

	// TopLevelThreads returns one page of the global feed.
	TopLevelThreads(ctx context.Context, skip, limit int64) ([]models.Thread, error)

	// CountTopLevelThreads counts every top-level thread.
	CountTopLevelThreads(ctx context.Context) (int64, error)
}

// CommunityStorage reads community documents.
type CommunityStorage interface {
	CommunitiesByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Community, error)
}
