package models

import "time"

// Response shapes handed to callers. They never carry driver types; object
// ids are rendered as hex strings.

// AuthorCard is the minimal public view of a thread author.
type AuthorCard struct {
	Name  string `json:"name"`
	Image string `json:"image"`
	ID    string `json:"id"`
}

// CommunityCard is the minimal public view of a community.
type CommunityCard struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image"`
}

// ChildCard is a reply summary: only its author's image is exposed.
type ChildCard struct {
	Author struct {
		Image string `json:"image"`
	} `json:"author"`
}

// ThreadCard is one entry of a profile tab or the home feed.
type ThreadCard struct {
	ID        string         `json:"_id"`
	Text      string         `json:"text"`
	ParentID  *string        `json:"parentId"`
	Author    AuthorCard     `json:"author"`
	Community *CommunityCard `json:"community"`
	CreatedAt time.Time      `json:"createdAt"`
	Children  []ChildCard    `json:"children"`
}

// ProfileThreads is the envelope returned by the profile tab reads.
type ProfileThreads struct {
	Name    string       `json:"name"`
	Image   string       `json:"image"`
	ID      string       `json:"id"`
	Threads []ThreadCard `json:"threads"`
}

// UserProfile is a user with its community and thread references expanded.
type UserProfile struct {
	ID          string          `json:"_id"`
	ExternalID  string          `json:"id"`
	Username    string          `json:"username"`
	Name        string          `json:"name"`
	Bio         string          `json:"bio"`
	Image       string          `json:"image"`
	Onboarded   bool            `json:"onboarded"`
	CreatedAt   time.Time       `json:"createdAt"`
	Communities []CommunityCard `json:"communities"`
	Threads     []ThreadCard    `json:"threads"`
}

// UserSummary is one row of the user directory.
type UserSummary struct {
	ID         string `json:"_id"`
	ExternalID string `json:"id"`
	Username   string `json:"username"`
	Name       string `json:"name"`
	Image      string `json:"image"`
	Bio        string `json:"bio"`
}

// UsersPage is a page of the user directory.
type UsersPage struct {
	Users   []UserSummary `json:"users"`
	HasNext bool          `json:"isNext"`
}

// PostsPage is a page of the home feed.
type PostsPage struct {
	Posts   []ThreadCard `json:"posts"`
	HasNext bool         `json:"isNext"`
}

// ThreadDetail is a single thread with one level of expanded replies.
type ThreadDetail struct {
	ThreadCard
	Replies []ThreadCard `json:"replies"`
}

// ActivityAuthor carries both identities of a reply author.
type ActivityAuthor struct {
	ID         string `json:"_id"`
	Name       string `json:"name"`
	Image      string `json:"image"`
	ExternalID string `json:"id"`
}

// ActivityItem is a reply by someone else to one of the user's threads.
type ActivityItem struct {
	ID        string         `json:"_id"`
	ParentID  *string        `json:"parentId"`
	Text      string         `json:"text"`
	Author    ActivityAuthor `json:"author"`
	CreatedAt time.Time      `json:"createdAt"`
}
