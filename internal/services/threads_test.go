package services

import (
	"context"
	"errors"
	"testing"

	"github.com/AnshRaj112/threads-backend/internal/metrics"
	"github.com/AnshRaj112/threads-backend/internal/models"
	"github.com/AnshRaj112/threads-backend/internal/storage"

	"github.com/golang/mock/gomock"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newThreads(f *fixture) *ThreadService {
	return NewThreadService(f.stores, PageLimits{Default: 30, Max: 100}, f.metrics, nil)
}

func TestFetchUserPosts_AbsentUser(t *testing.T) {
	f := newFixture(t)
	f.users.EXPECT().UserByExternalID(gomock.Any(), "ext_missing").Return(nil, storage.ErrNotFound)

	got, err := newThreads(f).FetchUserPosts(context.Background(), "ext_missing")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestFetchUserPosts_LookupFailurePropagates(t *testing.T) {
	f := newFixture(t)
	f.users.EXPECT().UserByExternalID(gomock.Any(), "ext_a").Return(nil, errors.New("connection reset"))

	got, err := newThreads(f).FetchUserPosts(context.Background(), "ext_a")
	require.ErrorIs(t, err, ErrInternal)
	assert.Nil(t, got)
}

// A thread with no replies yields one card with an empty children summary.
func TestFetchUserPosts_SingleThreadNoReplies(t *testing.T) {
	f := newFixture(t)
	a := user("alice", "ext_a")
	t1 := thread(a.ID, "T1", 0)

	f.users.EXPECT().UserByExternalID(gomock.Any(), "ext_a").Return(&a, nil)
	f.threads.EXPECT().ThreadsByAuthor(gomock.Any(), a.ID, models.TopLevel).Return([]models.Thread{t1}, nil)
	f.threads.EXPECT().ThreadsByIDs(gomock.Any(), gomock.Len(0), primitive.NilObjectID).Return(nil, nil)
	f.users.EXPECT().UsersByIDs(gomock.Any(), []primitive.ObjectID{a.ID}).DoAndReturn(usersByIDs(a))
	f.communities.EXPECT().CommunitiesByIDs(gomock.Any(), gomock.Len(0)).Return(nil, nil)

	got, err := newThreads(f).FetchUserPosts(context.Background(), "ext_a")
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, a.Name, got.Name)
	assert.Equal(t, a.Image, got.Image)
	assert.Equal(t, "ext_a", got.ID)
	require.Len(t, got.Threads, 1)
	card := got.Threads[0]
	assert.Equal(t, t1.ID.Hex(), card.ID)
	assert.Nil(t, card.ParentID)
	assert.Nil(t, card.Community)
	assert.NotNil(t, card.Children)
	assert.Empty(t, card.Children)
	assert.Equal(t, t1.CreatedAt, card.CreatedAt)
}

func TestFetchUserPosts_ExpandsAndFallsBackToOwner(t *testing.T) {
	f := newFixture(t)
	a, b := user("alice", "ext_a"), user("bob", "ext_b")
	community := models.Community{ID: primitive.NewObjectID(), ExternalID: "org_1", Name: "Gophers", Image: "g.png"}

	t1 := thread(a.ID, "T1", 0)
	t1.Community = &community.ID
	r := replyTo(t1, b.ID, "reply", 5)
	stale := primitive.NewObjectID() // listed in children but deleted
	t1.Children = []primitive.ObjectID{r.ID, stale}

	f.users.EXPECT().UserByExternalID(gomock.Any(), "ext_a").Return(&a, nil)
	f.threads.EXPECT().ThreadsByAuthor(gomock.Any(), a.ID, models.TopLevel).Return([]models.Thread{t1}, nil)
	f.threads.EXPECT().ThreadsByIDs(gomock.Any(), []primitive.ObjectID{r.ID, stale}, primitive.NilObjectID).DoAndReturn(threadsByIDs(r))
	// The author's own record is missing: the card falls back to the owner's profile.
	f.users.EXPECT().UsersByIDs(gomock.Any(), []primitive.ObjectID{a.ID, b.ID}).DoAndReturn(usersByIDs(b))
	f.communities.EXPECT().CommunitiesByIDs(gomock.Any(), []primitive.ObjectID{community.ID}).Return([]models.Community{community}, nil)

	got, err := newThreads(f).FetchUserPosts(context.Background(), "ext_a")
	require.NoError(t, err)
	require.Len(t, got.Threads, 1)
	card := got.Threads[0]

	assert.Equal(t, models.AuthorCard{Name: a.Name, Image: a.Image, ID: a.ExternalID}, card.Author)
	assert.Equal(t, &models.CommunityCard{ID: "org_1", Name: "Gophers", Image: "g.png"}, card.Community)
	require.Len(t, card.Children, 1)
	assert.Equal(t, b.Image, card.Children[0].Author.Image)
}

func TestFetchUserReplies_UsesReplyFilter(t *testing.T) {
	f := newFixture(t)
	a, b := user("alice", "ext_a"), user("bob", "ext_b")
	parent := thread(b.ID, "root", 0)
	r := replyTo(parent, a.ID, "my reply", 1)

	f.users.EXPECT().UserByExternalID(gomock.Any(), "ext_a").Return(&a, nil)
	f.threads.EXPECT().ThreadsByAuthor(gomock.Any(), a.ID, models.Replies).Return([]models.Thread{r}, nil)
	f.threads.EXPECT().ThreadsByIDs(gomock.Any(), gomock.Len(0), primitive.NilObjectID).Return(nil, nil)
	f.users.EXPECT().UsersByIDs(gomock.Any(), gomock.Any()).DoAndReturn(usersByIDs(a))
	f.communities.EXPECT().CommunitiesByIDs(gomock.Any(), gomock.Any()).Return(nil, nil)

	got, err := newThreads(f).FetchUserReplies(context.Background(), "ext_a")
	require.NoError(t, err)
	require.Len(t, got.Threads, 1)
	require.NotNil(t, got.Threads[0].ParentID)
	assert.Equal(t, parent.ID.Hex(), *got.Threads[0].ParentID)
}

func TestFetchUserTagged_AlwaysEmpty(t *testing.T) {
	f := newFixture(t)
	a := user("alice", "ext_a")
	f.users.EXPECT().UserByExternalID(gomock.Any(), "ext_a").Return(&a, nil)

	got, err := newThreads(f).FetchUserTagged(context.Background(), "ext_a")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "ext_a", got.ID)
	assert.NotNil(t, got.Threads)
	assert.Empty(t, got.Threads)
}

func TestFetchUserTagged_AbsentUser(t *testing.T) {
	f := newFixture(t)
	f.users.EXPECT().UserByExternalID(gomock.Any(), "ext_missing").Return(nil, storage.ErrNotFound)

	got, err := newThreads(f).FetchUserTagged(context.Background(), "ext_missing")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestFetchPosts_PageAndHasNext(t *testing.T) {
	f := newFixture(t)
	a := user("alice", "ext_a")
	t1, t2 := thread(a.ID, "newer", 2), thread(a.ID, "older", 1)

	f.threads.EXPECT().CountTopLevelThreads(gomock.Any()).Return(int64(3), nil)
	f.threads.EXPECT().TopLevelThreads(gomock.Any(), int64(0), int64(2)).Return([]models.Thread{t1, t2}, nil)
	f.threads.EXPECT().ThreadsByIDs(gomock.Any(), gomock.Any(), primitive.NilObjectID).Return(nil, nil)
	f.users.EXPECT().UsersByIDs(gomock.Any(), gomock.Any()).DoAndReturn(usersByIDs(a))
	f.communities.EXPECT().CommunitiesByIDs(gomock.Any(), gomock.Any()).Return(nil, nil)

	got := newThreads(f).FetchPosts(context.Background(), 1, 2)
	require.Len(t, got.Posts, 2)
	assert.Equal(t, "newer", got.Posts[0].Text)
	assert.Equal(t, a.Name, got.Posts[0].Author.Name)
	assert.True(t, got.HasNext)
}

func TestFetchPosts_FailureDegradesToEmpty(t *testing.T) {
	f := newFixture(t)
	f.threads.EXPECT().CountTopLevelThreads(gomock.Any()).Return(int64(0), errors.New("timeout")).AnyTimes()
	f.threads.EXPECT().TopLevelThreads(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()

	got := newThreads(f).FetchPosts(context.Background(), 1, 30)
	require.NotNil(t, got.Posts)
	assert.Empty(t, got.Posts)
	assert.False(t, got.HasNext)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.EmptyReads().WithLabelValues("fetchPosts", metrics.OutcomeDegraded)))
}

func TestFetchThreadByID_MalformedAndMissing(t *testing.T) {
	f := newFixture(t)
	id := primitive.NewObjectID()
	f.threads.EXPECT().ThreadByID(gomock.Any(), id).Return(nil, storage.ErrNotFound)

	svc := newThreads(f)
	got, err := svc.FetchThreadByID(context.Background(), "zzz")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = svc.FetchThreadByID(context.Background(), id.Hex())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestFetchThreadByID_UnionsBothReplyLinks(t *testing.T) {
	f := newFixture(t)
	a, b, c := user("alice", "ext_a"), user("bob", "ext_b"), user("carol", "ext_c")

	root := thread(a.ID, "root", 0)
	viaChildren := thread(b.ID, "children only", 1)
	viaParent := replyTo(root, c.ID, "parentId only", 2)
	root.Children = []primitive.ObjectID{viaChildren.ID}

	f.threads.EXPECT().ThreadByID(gomock.Any(), root.ID).Return(&root, nil)
	f.threads.EXPECT().ReplyIDsByParents(gomock.Any(), []string{root.ID.Hex()}, primitive.NilObjectID).
		Return([]primitive.ObjectID{viaParent.ID}, nil)
	f.threads.EXPECT().ThreadsByIDs(gomock.Any(), []primitive.ObjectID{viaChildren.ID, viaParent.ID}, primitive.NilObjectID).
		Return([]models.Thread{viaParent, viaChildren}, nil)
	// Card expansion of root + replies: root's children are loaded once more.
	f.threads.EXPECT().ThreadsByIDs(gomock.Any(), []primitive.ObjectID{viaChildren.ID}, primitive.NilObjectID).
		DoAndReturn(threadsByIDs(viaChildren))
	f.users.EXPECT().UsersByIDs(gomock.Any(), gomock.Any()).DoAndReturn(usersByIDs(a, b, c))
	f.communities.EXPECT().CommunitiesByIDs(gomock.Any(), gomock.Any()).Return(nil, nil)

	got, err := newThreads(f).FetchThreadByID(context.Background(), root.ID.Hex())
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "root", got.Text)
	require.Len(t, got.Children, 1)
	assert.Equal(t, b.Image, got.Children[0].Author.Image)

	require.Len(t, got.Replies, 2)
	assert.Equal(t, "parentId only", got.Replies[0].Text)
	assert.Equal(t, c.Name, got.Replies[0].Author.Name)
	assert.Equal(t, "children only", got.Replies[1].Text)
}
