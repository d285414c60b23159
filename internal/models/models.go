package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Visibility controls who may read a post.
type Visibility string

const (
	VisibilityPublic    Visibility = "public"
	VisibilityPrivate   Visibility = "private"
	VisibilityFollowers Visibility = "followers"
)

// Valid reports whether v is one of the three known visibility levels.
func (v Visibility) Valid() bool {
	switch v {
	case VisibilityPublic, VisibilityPrivate, VisibilityFollowers:
		return true
	}
	return false
}

// FollowStatus is the lifecycle state of a follow request.
type FollowStatus string

const (
	FollowStatusPending  FollowStatus = "pending"
	FollowStatusAccepted FollowStatus = "accepted"
	FollowStatusRejected FollowStatus = "rejected"
)

// NotificationType is the closed set of events that produce a notification.
type NotificationType string

const (
	NotificationFollowRequest NotificationType = "follow_request"
	NotificationNewPost       NotificationType = "new_post"
	NotificationPostLike      NotificationType = "post_like"
	NotificationComment       NotificationType = "comment"
)

// Profile is a registered author. Profiles are never hard-deleted.
type Profile struct {
	ID           string    `gorm:"primarykey" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	Username     string    `gorm:"uniqueIndex;not null" json:"username"`
	FullName     string    `json:"full_name"`
	AvatarURL    string    `json:"avatar_url,omitempty"`
	Bio          string    `json:"bio,omitempty"`
	PasswordHash string    `gorm:"not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// Post is a markdown blog post. Slug is derived from the title at creation
// time, is globally unique, and never changes afterwards.
type Post struct {
	ID         string                      `gorm:"primarykey" json:"id"`
	Title      string                      `gorm:"not null" json:"title"`
	Content    string                      `gorm:"type:text;not null" json:"content"`
	Summary    string                      `json:"summary,omitempty"`
	Visibility Visibility                  `gorm:"type:varchar(20);default:'public';index" json:"visibility"`
	AuthorID   string                      `gorm:"index;not null" json:"author_id"`
	Published  bool                        `gorm:"not null;default:false;index" json:"published"`
	Tags       datatypes.JSONSlice[string] `json:"tags"`
	Slug       string                      `gorm:"uniqueIndex;not null" json:"slug"`
	CreatedAt  time.Time                   `json:"created_at"`
	UpdatedAt  time.Time                   `json:"updated_at"`
	Author     Profile                     `gorm:"foreignKey:AuthorID" json:"author,omitzero"`
}

func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// Follow is a directed follower -> followee edge. At most one row exists per
// (follower, followee) pair; only accepted rows grant followers-visibility.
type Follow struct {
	ID         string       `gorm:"primarykey" json:"id"`
	FollowerID string       `gorm:"index;uniqueIndex:idx_follower_followee;not null" json:"follower_id"`
	FolloweeID string       `gorm:"index;uniqueIndex:idx_follower_followee;not null" json:"followee_id"`
	Status     FollowStatus `gorm:"type:varchar(20);default:'pending'" json:"status"`
	CreatedAt  time.Time    `json:"created_at"`
	Follower   Profile      `gorm:"foreignKey:FollowerID" json:"-"`
	Followee   Profile      `gorm:"foreignKey:FolloweeID" json:"-"`
}

func (f *Follow) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}

// Notification is a message delivered to a single recipient. Only the
// recipient may mark it read; the system creates them, never the recipient.
type Notification struct {
	ID          string           `gorm:"primarykey" json:"id"`
	RecipientID string           `gorm:"index;not null" json:"recipient_id"`
	Type        NotificationType `gorm:"type:varchar(30);not null" json:"type"`
	Message     string           `gorm:"not null" json:"message"`
	Read        bool             `gorm:"not null;default:false" json:"read"`
	RelatedID   string           `json:"related_id,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	return nil
}
