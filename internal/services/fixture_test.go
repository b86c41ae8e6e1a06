package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/AnshRaj112/threads-backend/internal/metrics"
	"github.com/AnshRaj112/threads-backend/internal/models"
	"github.com/AnshRaj112/threads-backend/mocks"

	"github.com/golang/mock/gomock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Storage mocks are generated with:
//   mockgen -source=./internal/storage/storage.go -destination=./mocks/storage.go -package=mocks

type fixture struct {
	users       *mocks.MockUserStorage
	threads     *mocks.MockThreadStorage
	communities *mocks.MockCommunityStorage
	stores      Stores
	metrics     *metrics.Metrics
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := &fixture{
		users:       mocks.NewMockUserStorage(ctrl),
		threads:     mocks.NewMockThreadStorage(ctrl),
		communities: mocks.NewMockCommunityStorage(ctrl),
		metrics:     metrics.New(),
	}
	f.stores = Stores{Users: f.users, Threads: f.threads, Communities: f.communities}
	return f
}

var testLimits = PageLimits{Default: 20, Max: 100}

// base is a fixed clock so createdAt ordering is deterministic.
var base = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func user(name, externalID string) models.User {
	return models.User{
		ID:         primitive.NewObjectID(),
		ExternalID: externalID,
		Username:   name,
		Name:       name,
		Image:      "https://img.example.com/" + name + ".png",
		Onboarded:  true,
	}
}

func thread(author primitive.ObjectID, text string, minutes int) models.Thread {
	return models.Thread{
		ID:        primitive.NewObjectID(),
		Text:      text,
		Author:    author,
		CreatedAt: base.Add(time.Duration(minutes) * time.Minute),
	}
}

func replyTo(parent models.Thread, author primitive.ObjectID, text string, minutes int) models.Thread {
	r := thread(author, text, minutes)
	r.ParentID = parent.ID.Hex()
	return r
}

// threadsByIDs and usersByIDs serve batch lookups from a fixed set.
func threadsByIDs(all ...models.Thread) func(context.Context, []primitive.ObjectID, primitive.ObjectID) ([]models.Thread, error) {
	return func(_ context.Context, ids []primitive.ObjectID, exclude primitive.ObjectID) ([]models.Thread, error) {
		want := make(map[primitive.ObjectID]bool, len(ids))
		for _, id := range ids {
			want[id] = true
		}
		var out []models.Thread
		for _, t := range all {
			if want[t.ID] && (exclude.IsZero() || t.Author != exclude) {
				out = append(out, t)
			}
		}
		return out, nil
	}
}

func usersByIDs(all ...models.User) func(context.Context, []primitive.ObjectID) ([]models.User, error) {
	return func(_ context.Context, ids []primitive.ObjectID) ([]models.User, error) {
		want := make(map[primitive.ObjectID]bool, len(ids))
		for _, id := range ids {
			want[id] = true
		}
		var out []models.User
		for _, u := range all {
			if want[u.ID] {
				out = append(out, u)
			}
		}
		return out, nil
	}
}

type recordingRevalidator struct {
	mu    sync.Mutex
	paths []string
	err   error
}

func (r *recordingRevalidator) Revalidate(_ context.Context, paths ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paths = append(r.paths, paths...)
	return r.err
}
