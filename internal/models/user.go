package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is the profile document. ExternalID is the subject id issued by the
// identity provider and is stored under "id"; ID is the internal key.
type User struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	ExternalID string             `bson:"id" json:"id"`
	CreatedAt  time.Time          `bson:"createdAt,omitempty" json:"createdAt"`

	Username string `bson:"username" json:"username"`
	Name     string `bson:"name" json:"name"`
	Bio      string `bson:"bio,omitempty" json:"bio"`
	Image    string `bson:"image,omitempty" json:"image"`

	Onboarded bool `bson:"onboarded" json:"onboarded"`

	// Index only; the user does not own thread lifecycle.
	Threads     []primitive.ObjectID `bson:"threads,omitempty" json:"threads"`
	Communities []primitive.ObjectID `bson:"communities,omitempty" json:"communities"`
}

// ProfileUpdate is the onboarding / profile edit payload keyed by ExternalID.
type ProfileUpdate struct {
	ExternalID string
	Username   string
	Name       string
	Bio        string
	Image      string
}

// UserQuery drives the paginated, searchable user listing.
type UserQuery struct {
	ExcludeExternalID string
	Search            string
	Skip              int64
	Limit             int64
	// SortDesc orders by creation time, newest first.
	SortDesc bool
}
