package models

import (
	"time"

	"gorm.io/gorm"
)

// LikeTarget discriminates what kind of content a like edge points at.
type LikeTarget string

const (
	LikeTargetPost    LikeTarget = "POST"
	LikeTargetComment LikeTarget = "COMMENT"
)

// Valid reports whether the target type is one of the known kinds.
func (t LikeTarget) Valid() bool {
	return t == LikeTargetPost || t == LikeTargetComment
}

// Like is a (user, target) edge. One edge table serves both target kinds
// through the TargetType discriminant; the unique index scopes uniqueness
// per target kind, so a user may like post 3 and comment 3 independently
// but never the same target twice. Edges are hard-deleted on toggle-off.
type Like struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	UserID     uint       `gorm:"not null;uniqueIndex:idx_likes_user_target" json:"user_id"`
	TargetType LikeTarget `gorm:"size:10;not null;uniqueIndex:idx_likes_user_target" json:"target_type"`
	TargetID   uint       `gorm:"not null;uniqueIndex:idx_likes_user_target" json:"target_id"`
	CreatedAt  time.Time  `json:"created_at"`
}

// BeforeSave enforces the tagged-variant invariant at write time.
func (l *Like) BeforeSave(*gorm.DB) error {
	if !l.TargetType.Valid() {
		return NewValidationError("like target type must be POST or COMMENT")
	}
	if l.TargetID == 0 {
		return NewValidationError("like target id is required")
	}
	return nil
}
