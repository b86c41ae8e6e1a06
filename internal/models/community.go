package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Community is referenced by users and threads. Only read here.
type Community struct {
	ID         primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	ExternalID string               `bson:"id" json:"id"`
	Username   string               `bson:"username" json:"username"`
	Name       string               `bson:"name" json:"name"`
	Image      string               `bson:"image,omitempty" json:"image"`
	Bio        string               `bson:"bio,omitempty" json:"bio"`
	Members    []primitive.ObjectID `bson:"members,omitempty" json:"members"`
}
