package models

import (
	"time"
)

// MaxCommentContentLen is the maximum comment length in characters.
const MaxCommentContentLen = 500

// Comment represents a threaded reply on a post. ParentID is nil for
// top-level comments and is fixed at creation; reply trees never leave
// the parent post.
type Comment struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	PostID     uint      `gorm:"not null;index:idx_comments_post_created" json:"postId"`
	Post       Post      `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
	UserID     uint      `gorm:"not null;index" json:"-"`
	User       User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	ParentID   *uint     `gorm:"index" json:"parentId"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	LikesCount int       `gorm:"not null;default:0" json:"likes"`
	CreatedAt  time.Time `gorm:"index:idx_comments_post_created" json:"createdAt"`

	HasLiked bool `gorm:"->;-:migration" json:"hasLiked"`

	Author PublicUser `gorm:"-" json:"author"`
}
