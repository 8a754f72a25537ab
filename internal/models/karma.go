package models

import (
	"time"
)

// Karma awarded to an author per like, by content kind.
const (
	KarmaPostLike    = 5
	KarmaCommentLike = 1
)

// KarmaTransaction is one append-only ledger entry. Rows are never updated
// or deleted; a reversal is a new row with a negated amount. UserID
// deliberately carries no foreign-key constraint so the ledger survives
// account deletion as a historical record.
type KarmaTransaction struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	UserID     uint       `gorm:"not null;index" json:"user_id"`
	Amount     int        `gorm:"not null" json:"amount"`
	SourceType LikeTarget `gorm:"size:10;not null" json:"source_type"`
	SourceID   uint       `gorm:"not null" json:"source_id"`
	CreatedAt  time.Time  `gorm:"index" json:"created_at"`
}
