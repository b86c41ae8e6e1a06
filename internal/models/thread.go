package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Thread is a post or a reply. ParentID holds the hex string of the parent's
// _id and is empty for top-level threads. Children is a denormalised copy of
// the replies' ids and may lag behind ParentID.
type Thread struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	Text      string               `bson:"text" json:"text"`
	Author    primitive.ObjectID   `bson:"author" json:"author"`
	Community *primitive.ObjectID  `bson:"community,omitempty" json:"community,omitempty"`
	CreatedAt time.Time            `bson:"createdAt" json:"createdAt"`
	ParentID  string               `bson:"parentId,omitempty" json:"parentId,omitempty"`
	Children  []primitive.ObjectID `bson:"children,omitempty" json:"children"`
}

// IsTopLevel reports whether the thread has no parent.
func (t Thread) IsTopLevel() bool { return t.ParentID == "" }

// ThreadKind selects top-level threads or replies in author listings.
type ThreadKind int

const (
	TopLevel ThreadKind = iota
	Replies
)
