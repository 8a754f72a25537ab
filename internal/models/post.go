package models

import (
	"time"
)

// MaxPostContentLen is the maximum post length in characters.
const MaxPostContentLen = 1000

// Post represents a feed post.
type Post struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	UserID  uint   `gorm:"not null;index" json:"-"`
	User    User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Content string `gorm:"type:text;not null" json:"content"`
	// LikesCount is the denormalized like counter. Mutated only by the
	// toggle engine, inside the same transaction as the edge.
	LikesCount int       `gorm:"not null;default:0" json:"likes"`
	CreatedAt  time.Time `gorm:"index" json:"createdAt"`

	// Computed at query time, not persisted.
	HasLiked     bool `gorm:"->;-:migration" json:"hasLiked"`
	CommentCount int  `gorm:"->;-:migration" json:"commentCount"`

	Author   PublicUser `gorm:"-" json:"author"`
	Comments []*Comment `gorm:"foreignKey:PostID" json:"comments"`
}
