package services

import (
	"context"
	"sort"
	"strings"

	"github.com/AnshRaj112/threads-backend/internal/metrics"
	"github.com/AnshRaj112/threads-backend/internal/models"

	"github.com/samber/lo"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Placeholders for reply authors whose profile is missing or incomplete.
const (
	UnknownAuthorName  = "Unknown"
	UnknownAuthorImage = "/assets/user.svg"
)

// ActivityService answers which replies by other users are linked to a
// user's own top-level threads.
type ActivityService struct {
	stores  Stores
	metrics *metrics.Metrics
	log     *zap.Logger
}

func NewActivityService(stores Stores, m *metrics.Metrics, log *zap.Logger) *ActivityService {
	if log == nil {
		log = zap.NewNop()
	}
	return &ActivityService{stores: stores, metrics: m, log: log.Named("activity")}
}

// GetActivity takes the internal user key (hex). Replies are collected from
// the children arrays of the user's threads and from a parentId scan, so a
// reply linked on only one side is still found. The result is newest first
// and never includes the user's own replies. Failures yield an empty list.
func (s *ActivityService) GetActivity(ctx context.Context, userID string) []models.ActivityItem {
	const op = "getActivity"
	log := s.log.With(zap.String("op", op), zap.String("user_id", userID))
	empty := []models.ActivityItem{}

	uid, err := primitive.ObjectIDFromHex(strings.TrimSpace(userID))
	if err != nil {
		log.Debug("malformed user key")
		s.metrics.Absent(op)
		return empty
	}

	own, err := s.stores.Threads.ThreadsByAuthor(ctx, uid, models.TopLevel)
	if err != nil {
		log.Error("own thread lookup failed, returning empty", zap.Error(err))
		s.metrics.Degraded(op)
		return empty
	}
	if len(own) == 0 {
		log.Debug("user has no threads")
		s.metrics.Absent(op)
		return empty
	}

	fromChildren := lo.FlatMap(own, func(t models.Thread, _ int) []primitive.ObjectID {
		return t.Children
	})
	parentIDs := lo.Map(own, func(t models.Thread, _ int) string { return t.ID.Hex() })
	fromScan, err := s.stores.Threads.ReplyIDsByParents(ctx, parentIDs, uid)
	if err != nil {
		log.Error("reply scan failed, returning empty", zap.Error(err))
		s.metrics.Degraded(op)
		return empty
	}

	replyIDs := lo.Uniq(append(fromChildren, fromScan...))
	if len(replyIDs) == 0 {
		s.metrics.Absent(op)
		return empty
	}

	replies, err := s.stores.Threads.ThreadsByIDs(ctx, replyIDs, uid)
	if err != nil {
		log.Error("reply load failed, returning empty", zap.Error(err))
		s.metrics.Degraded(op)
		return empty
	}
	replies = lo.Filter(replies, func(t models.Thread, _ int) bool { return t.Author != uid })
	if len(replies) == 0 {
		s.metrics.Absent(op)
		return empty
	}

	authorIDs := lo.Uniq(lo.Map(replies, func(t models.Thread, _ int) primitive.ObjectID { return t.Author }))
	authors, err := s.stores.Users.UsersByIDs(ctx, authorIDs)
	if err != nil {
		log.Error("author load failed, returning empty", zap.Error(err))
		s.metrics.Degraded(op)
		return empty
	}
	authorByID := lo.KeyBy(authors, func(u models.User) primitive.ObjectID { return u.ID })

	sort.SliceStable(replies, func(i, j int) bool {
		if !replies[i].CreatedAt.Equal(replies[j].CreatedAt) {
			return replies[i].CreatedAt.After(replies[j].CreatedAt)
		}
		return replies[i].ID.Hex() > replies[j].ID.Hex()
	})

	log.Debug("activity resolved",
		zap.Int("from_children", len(fromChildren)),
		zap.Int("from_scan", len(fromScan)),
		zap.Int("replies", len(replies)),
	)
	return lo.Map(replies, func(t models.Thread, _ int) models.ActivityItem {
		return models.ActivityItem{
			ID:        t.ID.Hex(),
			ParentID:  parentRef(t.ParentID),
			Text:      t.Text,
			Author:    activityAuthor(authorByID[t.Author]),
			CreatedAt: t.CreatedAt,
		}
	})
}

func activityAuthor(u models.User) models.ActivityAuthor {
	a := models.ActivityAuthor{
		Name:       lo.Ternary(u.Name != "", u.Name, UnknownAuthorName),
		Image:      lo.Ternary(u.Image != "", u.Image, UnknownAuthorImage),
		ExternalID: u.ExternalID,
	}
	if !u.ID.IsZero() {
		a.ID = u.ID.Hex()
	}
	return a
}
