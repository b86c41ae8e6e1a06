package handlers

import (
	"context"

	"github.com/AnshRaj112/threads-backend/internal/models"
	"github.com/AnshRaj112/threads-backend/internal/services"

	"go.uber.org/zap"
)

// UserReader is the user repository as seen by the HTTP layer.
type UserReader interface {
	FetchUser(ctx context.Context, externalID string) *models.UserProfile
	UpdateUser(ctx context.Context, in services.UpdateUserInput) error
	FetchUsers(ctx context.Context, in services.FetchUsersInput) (*models.UsersPage, error)
}

// ThreadReader is the thread repository as seen by the HTTP layer.
type ThreadReader interface {
	FetchUserPosts(ctx context.Context, externalID string) (*models.ProfileThreads, error)
	FetchUserReplies(ctx context.Context, externalID string) (*models.ProfileThreads, error)
	FetchUserTagged(ctx context.Context, externalID string) (*models.ProfileThreads, error)
	FetchPosts(ctx context.Context, pageNumber, pageSize int64) models.PostsPage
	FetchThreadByID(ctx context.Context, threadID string) (*models.ThreadDetail, error)
}

// ActivityReader resolves replies to a user's threads.
type ActivityReader interface {
	GetActivity(ctx context.Context, userID string) []models.ActivityItem
}

// PageStore caches rendered page payloads by path.
type PageStore interface {
	Get(ctx context.Context, path string, dest any) (bool, error)
	Set(ctx context.Context, path string, value any) error
}

// Deps wires a Handler. Pages and Uploader may be nil.
type Deps struct {
	Users    UserReader
	Threads  ThreadReader
	Activity ActivityReader
	Pages    PageStore
	Uploader services.ImageUploader
	// FeedSize is the home feed page size when the request names none.
	FeedSize int64
	Log      *zap.Logger
}

type Handler struct {
	users    UserReader
	threads  ThreadReader
	activity ActivityReader
	pages    PageStore
	uploader services.ImageUploader
	feedSize int64
	log      *zap.Logger
}

func New(d Deps) *Handler {
	log := d.Log
	if log == nil {
		log = zap.NewNop()
	}
	feedSize := d.FeedSize
	if feedSize <= 0 {
		feedSize = 30
	}
	return &Handler{
		users:    d.Users,
		threads:  d.Threads,
		activity: d.Activity,
		pages:    d.Pages,
		uploader: d.Uploader,
		feedSize: feedSize,
		log:      log.Named("handlers"),
	}
}
