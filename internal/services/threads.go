package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/AnshRaj112/threads-backend/internal/metrics"
	"github.com/AnshRaj112/threads-backend/internal/models"
	"github.com/AnshRaj112/threads-backend/internal/storage"

	"github.com/samber/lo"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type ThreadService struct {
	stores  Stores
	cards   cardBuilder
	limits  PageLimits
	metrics *metrics.Metrics
	log     *zap.Logger
}

func NewThreadService(stores Stores, limits PageLimits, m *metrics.Metrics, log *zap.Logger) *ThreadService {
	if log == nil {
		log = zap.NewNop()
	}
	return &ThreadService{
		stores:  stores,
		cards:   newCardBuilder(stores),
		limits:  limits,
		metrics: m,
		log:     log.Named("threads"),
	}
}

// FetchUserPosts lists the user's top-level threads. It returns nil without
// error when the user does not exist.
func (s *ThreadService) FetchUserPosts(ctx context.Context, externalID string) (*models.ProfileThreads, error) {
	return s.profileTab(ctx, "fetchUserPosts", externalID, models.TopLevel)
}

// FetchUserReplies lists the replies the user wrote.
func (s *ThreadService) FetchUserReplies(ctx context.Context, externalID string) (*models.ProfileThreads, error) {
	return s.profileTab(ctx, "fetchUserReplies", externalID, models.Replies)
}

// FetchUserTagged always lists no threads: there is no mention system.
func (s *ThreadService) FetchUserTagged(ctx context.Context, externalID string) (*models.ProfileThreads, error) {
	const op = "fetchUserTagged"

	owner, err := s.owner(ctx, op, externalID)
	if owner == nil || err != nil {
		return nil, err
	}
	return profileEnvelope(owner, []models.ThreadCard{}), nil
}

func (s *ThreadService) profileTab(ctx context.Context, op, externalID string, kind models.ThreadKind) (*models.ProfileThreads, error) {
	owner, err := s.owner(ctx, op, externalID)
	if owner == nil || err != nil {
		return nil, err
	}
	log := s.log.With(zap.String("op", op), zap.String("external_id", externalID))

	threads, err := s.stores.Threads.ThreadsByAuthor(ctx, owner.ID, kind)
	if err != nil {
		log.Error("thread listing failed", zap.Error(err))
		return nil, fmt.Errorf("%s: %w: %w", op, ErrInternal, err)
	}
	cards, err := s.cards.build(ctx, threads, owner)
	if err != nil {
		log.Error("thread expansion failed", zap.Error(err))
		return nil, fmt.Errorf("%s: %w: %w", op, ErrInternal, err)
	}
	return profileEnvelope(owner, cards), nil
}

// owner resolves the profile owner; (nil, nil) means absent.
func (s *ThreadService) owner(ctx context.Context, op, externalID string) (*models.User, error) {
	log := s.log.With(zap.String("op", op), zap.String("external_id", externalID))

	if strings.TrimSpace(externalID) == "" {
		s.metrics.Absent(op)
		return nil, nil
	}
	u, err := s.stores.Users.UserByExternalID(ctx, externalID)
	if errors.Is(err, storage.ErrNotFound) {
		log.Debug("user not found")
		s.metrics.Absent(op)
		return nil, nil
	}
	if err != nil {
		log.Error("user lookup failed", zap.Error(err))
		return nil, fmt.Errorf("%s: %w: %w", op, ErrInternal, err)
	}
	return u, nil
}

func profileEnvelope(owner *models.User, cards []models.ThreadCard) *models.ProfileThreads {
	return &models.ProfileThreads{
		Name:    owner.Name,
		Image:   owner.Image,
		ID:      owner.ExternalID,
		Threads: cards,
	}
}

// FetchPosts returns one page of the global feed of top-level threads. It
// feeds the home page, so failures degrade to an empty page.
func (s *ThreadService) FetchPosts(ctx context.Context, pageNumber, pageSize int64) models.PostsPage {
	const op = "fetchPosts"
	log := s.log.With(zap.String("op", op), zap.Int64("page", pageNumber))
	empty := models.PostsPage{Posts: []models.ThreadCard{}}

	_, size, skip := s.limits.clamp(pageNumber, pageSize)

	var (
		total   int64
		threads []models.Thread
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		total, err = s.stores.Threads.CountTopLevelThreads(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		threads, err = s.stores.Threads.TopLevelThreads(gctx, skip, size)
		return err
	})
	if err := g.Wait(); err != nil {
		log.Error("feed query failed, returning empty page", zap.Error(err))
		s.metrics.Degraded(op)
		return empty
	}

	cards, err := s.cards.build(ctx, threads, nil)
	if err != nil {
		log.Error("feed expansion failed, returning empty page", zap.Error(err))
		s.metrics.Degraded(op)
		return empty
	}
	return models.PostsPage{
		Posts:   cards,
		HasNext: total > skip+int64(len(cards)),
	}
}

// FetchThreadByID returns a thread and its direct replies. Replies are found
// through the parent's children array and through their parentId, so a reply
// missing from either side is still listed. Returns nil when the id is
// malformed or unknown.
func (s *ThreadService) FetchThreadByID(ctx context.Context, threadID string) (*models.ThreadDetail, error) {
	const op = "fetchThreadById"
	log := s.log.With(zap.String("op", op), zap.String("thread_id", threadID))

	id, err := primitive.ObjectIDFromHex(strings.TrimSpace(threadID))
	if err != nil {
		s.metrics.Absent(op)
		return nil, nil
	}

	thread, err := s.stores.Threads.ThreadByID(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		log.Debug("thread not found")
		s.metrics.Absent(op)
		return nil, nil
	}
	if err != nil {
		log.Error("thread lookup failed", zap.Error(err))
		return nil, fmt.Errorf("%s: %w: %w", op, ErrInternal, err)
	}

	linked, err := s.stores.Threads.ReplyIDsByParents(ctx, []string{id.Hex()}, primitive.NilObjectID)
	if err != nil {
		log.Error("reply scan failed", zap.Error(err))
		return nil, fmt.Errorf("%s: %w: %w", op, ErrInternal, err)
	}
	replyIDs := lo.Uniq(append(append([]primitive.ObjectID{}, thread.Children...), linked...))
	replies, err := s.stores.Threads.ThreadsByIDs(ctx, replyIDs, primitive.NilObjectID)
	if err != nil {
		log.Error("reply load failed", zap.Error(err))
		return nil, fmt.Errorf("%s: %w: %w", op, ErrInternal, err)
	}

	cards, err := s.cards.build(ctx, append([]models.Thread{*thread}, replies...), nil)
	if err != nil {
		log.Error("thread expansion failed", zap.Error(err))
		return nil, fmt.Errorf("%s: %w: %w", op, ErrInternal, err)
	}
	return &models.ThreadDetail{
		ThreadCard: cards[0],
		Replies:    cards[1:],
	}, nil
}
