package repository

import (
	"context"
	"time"

	"playto/internal/models"

	"gorm.io/gorm"
)

// UserScore is one aggregated leaderboard row.
type UserScore struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	Score    int    `json:"score"`
}

// KarmaRepository reads the append-only karma ledger. Writes happen inside
// the toggle engine's transaction, never through this interface.
type KarmaRepository interface {
	// TopSince sums ledger amounts per user over entries created at or
	// after the cutoff, ordered by score descending with user id
	// ascending as the deterministic tie-break.
	TopSince(ctx context.Context, since time.Time, limit int) ([]UserScore, error)
	// SumForSource totals a user's ledger entries attributable to one
	// piece of content.
	SumForSource(ctx context.Context, userID uint, sourceType models.LikeTarget, sourceID uint) (int, error)
}

type karmaRepository struct {
	db *gorm.DB
}

// NewKarmaRepository creates a new KarmaRepository
func NewKarmaRepository(db *gorm.DB) KarmaRepository {
	return &karmaRepository{db: db}
}

func (r *karmaRepository) TopSince(ctx context.Context, since time.Time, limit int) ([]UserScore, error) {
	var scores []UserScore
	err := r.db.WithContext(ctx).
		Model(&models.KarmaTransaction{}).
		Select("users.id as user_id, users.username, SUM(karma_transactions.amount) as score").
		Joins("JOIN users ON users.id = karma_transactions.user_id").
		Where("karma_transactions.created_at >= ?", since).
		Group("users.id, users.username").
		Order("score DESC, user_id ASC").
		Limit(limit).
		Scan(&scores).Error
	return scores, err
}

func (r *karmaRepository) SumForSource(ctx context.Context, userID uint, sourceType models.LikeTarget, sourceID uint) (int, error) {
	var total *int
	err := r.db.WithContext(ctx).
		Model(&models.KarmaTransaction{}).
		Select("SUM(amount)").
		Where("user_id = ? AND source_type = ? AND source_id = ?", userID, sourceType, sourceID).
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	if total == nil {
		return 0, nil
	}
	return *total, nil
}
