package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/AnshRaj112/threads-backend/internal/metrics"
	"github.com/AnshRaj112/threads-backend/internal/models"
	"github.com/AnshRaj112/threads-backend/internal/storage"
	"github.com/AnshRaj112/threads-backend/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ProfileEditPath is the page that edits an existing profile. Saves from any
// other page complete onboarding.
const ProfileEditPath = "/profile/edit"

// UpdateUserInput is a profile save. Path names the page the save came from.
type UpdateUserInput struct {
	ExternalID string `json:"-" validate:"required"`
	Username   string `json:"username" validate:"required,min=3,max=30"`
	Name       string `json:"name" validate:"required,min=1,max=30"`
	Bio        string `json:"bio" validate:"max=1000"`
	Image      string `json:"image" validate:"omitempty,url"`
	Path       string `json:"path"`
}

// SortOrder orders the user directory by creation time.
type SortOrder string

const (
	SortDesc SortOrder = "desc"
	SortAsc  SortOrder = "asc"
)

// FetchUsersInput selects one page of the user directory. UserID is the
// caller's external id and is never part of the result.
type FetchUsersInput struct {
	UserID     string
	Search     string
	PageNumber int64
	PageSize   int64
	SortBy     SortOrder
}

type UserService struct {
	stores   Stores
	cards    cardBuilder
	pages    PageRevalidator
	limits   PageLimits
	validate *validator.Validate
	metrics  *metrics.Metrics
	log      *zap.Logger
}

func NewUserService(stores Stores, pages PageRevalidator, limits PageLimits, m *metrics.Metrics, log *zap.Logger) *UserService {
	if log == nil {
		log = zap.NewNop()
	}
	return &UserService{
		stores:   stores,
		cards:    newCardBuilder(stores),
		pages:    pages,
		limits:   limits,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		metrics:  m,
		log:      log.Named("users"),
	}
}

// FetchUser returns the profile with communities and threads expanded, or nil
// when the user does not exist. Failures are logged and also yield nil.
func (s *UserService) FetchUser(ctx context.Context, externalID string) *models.UserProfile {
	const op = "fetchUser"
	log := s.log.With(zap.String("op", op), zap.String("external_id", externalID))

	externalID = strings.TrimSpace(externalID)
	if externalID == "" {
		s.metrics.Absent(op)
		return nil
	}

	u, err := s.stores.Users.UserByExternalID(ctx, externalID)
	if errors.Is(err, storage.ErrNotFound) {
		log.Debug("user not found")
		s.metrics.Absent(op)
		return nil
	}
	if err != nil {
		log.Error("user lookup failed, returning empty", zap.Error(err))
		s.metrics.Degraded(op)
		return nil
	}

	profile, err := s.expandProfile(ctx, u)
	if err != nil {
		log.Error("profile expansion failed, returning empty", zap.Error(err))
		s.metrics.Degraded(op)
		return nil
	}
	return profile
}

func (s *UserService) expandProfile(ctx context.Context, u *models.User) (*models.UserProfile, error) {
	communities, err := s.stores.Communities.CommunitiesByIDs(ctx, u.Communities)
	if err != nil {
		return nil, fmt.Errorf("load communities: %w", err)
	}
	threads, err := s.stores.Threads.ThreadsByIDs(ctx, u.Threads, primitive.NilObjectID)
	if err != nil {
		return nil, fmt.Errorf("load threads: %w", err)
	}
	cards, err := s.cards.build(ctx, threads, nil)
	if err != nil {
		return nil, err
	}

	return &models.UserProfile{
		ID:         u.ID.Hex(),
		ExternalID: u.ExternalID,
		Username:   u.Username,
		Name:       u.Name,
		Bio:        u.Bio,
		Image:      u.Image,
		Onboarded:  u.Onboarded,
		CreatedAt:  u.CreatedAt,
		Communities: lo.Map(communities, func(c models.Community, _ int) models.CommunityCard {
			return models.CommunityCard{ID: c.ExternalID, Name: c.Name, Image: c.Image}
		}),
		Threads: cards,
	}, nil
}

// UpdateUser saves the profile keyed by external id, creating it on first
// save, and marks it onboarded. Cached pages affected by the save are
// revalidated afterwards.
func (s *UserService) UpdateUser(ctx context.Context, in UpdateUserInput) error {
	const op = "updateUser"

	in.ExternalID = strings.TrimSpace(in.ExternalID)
	in.Username = utils.NormalizeUsername(in.Username)
	in.Name = strings.TrimSpace(in.Name)
	in.Bio = strings.TrimSpace(in.Bio)
	in.Image = strings.TrimSpace(in.Image)

	log := s.log.With(zap.String("op", op), zap.String("external_id", in.ExternalID))

	if err := s.validate.StructCtx(ctx, in); err != nil {
		log.Debug("rejected profile", zap.Error(err))
		return fmt.Errorf("%s: %w: %s", op, ErrInvalidArgument, describeValidation(err))
	}

	err := s.stores.Users.UpsertProfile(ctx, models.ProfileUpdate{
		ExternalID: in.ExternalID,
		Username:   in.Username,
		Name:       in.Name,
		Bio:        in.Bio,
		Image:      in.Image,
	})
	if errors.Is(err, storage.ErrConflict) {
		log.Info("username already taken", zap.String("username", in.Username))
		return fmt.Errorf("%s: %w", op, ErrUsernameTaken)
	}
	if err != nil {
		log.Error("profile save failed", zap.Error(err))
		return fmt.Errorf("%s: %w: %w", op, ErrWriteFailed, err)
	}
	log.Info("profile saved", zap.String("username", in.Username))

	if s.pages != nil {
		paths := revalidationPaths(in.Path, in.ExternalID)
		if err := s.pages.Revalidate(ctx, paths...); err != nil {
			log.Warn("page revalidation failed", zap.Strings("paths", paths), zap.Error(err))
		}
	}
	return nil
}

// revalidationPaths picks the pages to evict after a profile save. The public
// profile page is always evicted.
func revalidationPaths(path, externalID string) []string {
	var paths []string
	if path == ProfileEditPath {
		paths = []string{path}
	} else {
		paths = []string{"/onboarding", "/"}
	}
	return append(paths, ProfilePath(externalID))
}

// ProfilePath is the cache path of a user's public profile.
func ProfilePath(externalID string) string {
	return "/profile/" + externalID
}

// FetchUsers returns one page of users other than the caller, optionally
// filtered by a case-insensitive substring of username or name. The total and
// the page are read with two independent queries.
func (s *UserService) FetchUsers(ctx context.Context, in FetchUsersInput) (*models.UsersPage, error) {
	const op = "fetchUsers"
	log := s.log.With(zap.String("op", op), zap.String("external_id", in.UserID))

	_, size, skip := s.limits.clamp(in.PageNumber, in.PageSize)
	q := models.UserQuery{
		ExcludeExternalID: in.UserID,
		Search:            strings.TrimSpace(in.Search),
		Skip:              skip,
		Limit:             size,
		SortDesc:          in.SortBy != SortAsc,
	}

	var (
		total int64
		users []models.User
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		total, err = s.stores.Users.CountUsers(gctx, q)
		return err
	})
	g.Go(func() error {
		var err error
		users, err = s.stores.Users.SearchUsers(gctx, q)
		return err
	})
	if err := g.Wait(); err != nil {
		log.Error("user listing failed", zap.Error(err))
		return nil, fmt.Errorf("%s: %w: %w", op, ErrInternal, err)
	}

	return &models.UsersPage{
		Users: lo.Map(users, func(u models.User, _ int) models.UserSummary {
			return models.UserSummary{
				ID:         u.ID.Hex(),
				ExternalID: u.ExternalID,
				Username:   u.Username,
				Name:       u.Name,
				Image:      u.Image,
				Bio:        u.Bio,
			}
		}),
		HasNext: total > skip+int64(len(users)),
	}, nil
}

func describeValidation(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	return strings.Join(lo.Map(verrs, func(fe validator.FieldError, _ int) string {
		return strings.ToLower(fe.Field()) + " failed " + fe.Tag()
	}), ", ")
}
