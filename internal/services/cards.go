package services

import (
	"context"
	"fmt"
	"time"

	"github.com/AnshRaj112/threads-backend/internal/models"
	"github.com/samber/lo"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// cardBuilder expands the references of a batch of threads (authors,
// communities and one level of children) with one query per collection.
type cardBuilder struct {
	stores Stores
	now    func() time.Time
}

func newCardBuilder(stores Stores) cardBuilder {
	return cardBuilder{stores: stores, now: time.Now}
}

// build renders threads in the given order. When owner is set, missing author
// fields fall back to the owner's live profile.
func (b cardBuilder) build(ctx context.Context, threads []models.Thread, owner *models.User) ([]models.ThreadCard, error) {
	if len(threads) == 0 {
		return []models.ThreadCard{}, nil
	}

	childIDs := lo.Uniq(lo.FlatMap(threads, func(t models.Thread, _ int) []primitive.ObjectID {
		return t.Children
	}))
	children, err := b.stores.Threads.ThreadsByIDs(ctx, childIDs, primitive.NilObjectID)
	if err != nil {
		return nil, fmt.Errorf("load children: %w", err)
	}
	childByID := lo.KeyBy(children, func(t models.Thread) primitive.ObjectID { return t.ID })

	authorIDs := lo.Uniq(append(
		lo.Map(threads, func(t models.Thread, _ int) primitive.ObjectID { return t.Author }),
		lo.Map(children, func(t models.Thread, _ int) primitive.ObjectID { return t.Author })...,
	))
	authors, err := b.stores.Users.UsersByIDs(ctx, authorIDs)
	if err != nil {
		return nil, fmt.Errorf("load authors: %w", err)
	}
	authorByID := lo.KeyBy(authors, func(u models.User) primitive.ObjectID { return u.ID })

	communityIDs := lo.Uniq(lo.FilterMap(threads, func(t models.Thread, _ int) (primitive.ObjectID, bool) {
		if t.Community == nil {
			return primitive.NilObjectID, false
		}
		return *t.Community, true
	}))
	communities, err := b.stores.Communities.CommunitiesByIDs(ctx, communityIDs)
	if err != nil {
		return nil, fmt.Errorf("load communities: %w", err)
	}
	communityByID := lo.KeyBy(communities, func(c models.Community) primitive.ObjectID { return c.ID })

	return lo.Map(threads, func(t models.Thread, _ int) models.ThreadCard {
		card := models.ThreadCard{
			ID:        t.ID.Hex(),
			Text:      t.Text,
			ParentID:  parentRef(t.ParentID),
			Author:    authorCard(authorByID[t.Author], owner),
			CreatedAt: t.CreatedAt,
			Children:  []models.ChildCard{},
		}
		if card.CreatedAt.IsZero() {
			card.CreatedAt = b.now().UTC()
		}
		if t.Community != nil {
			if c, ok := communityByID[*t.Community]; ok {
				card.Community = &models.CommunityCard{ID: c.ExternalID, Name: c.Name, Image: c.Image}
			}
		}
		for _, id := range t.Children {
			child, ok := childByID[id]
			if !ok {
				continue
			}
			var cc models.ChildCard
			cc.Author.Image = authorByID[child.Author].Image
			card.Children = append(card.Children, cc)
		}
		return card
	}), nil
}

func authorCard(author models.User, owner *models.User) models.AuthorCard {
	card := models.AuthorCard{Name: author.Name, Image: author.Image, ID: author.ExternalID}
	if owner != nil {
		card.Name = lo.Ternary(card.Name != "", card.Name, owner.Name)
		card.Image = lo.Ternary(card.Image != "", card.Image, owner.Image)
		card.ID = lo.Ternary(card.ID != "", card.ID, owner.ExternalID)
	}
	return card
}

// parentRef renders an empty parentId as null.
func parentRef(parentID string) *string {
	if parentID == "" {
		return nil
	}
	return &parentID
}
