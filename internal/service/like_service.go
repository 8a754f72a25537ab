package service

import (
	"context"
	"errors"
	"strings"

	"playto/internal/middleware"
	"playto/internal/models"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Toggle result states.
const (
	StateLiked   = "liked"
	StateUnliked = "unliked"
)

// ToggleResult reports the outcome of a like toggle. NewLikes is re-read
// from the row after the mutation, so it reflects the committed counter
// rather than a client-side computation.
type ToggleResult struct {
	State    string `json:"status"`
	NewLikes int    `json:"newLikes"`
}

// LikeService is the toggle-like engine. Each toggle runs as one database
// transaction covering the target row lock, the edge mutation, the counter
// adjustment and the ledger append: no observer ever sees one without the
// others.
type LikeService struct {
	db *gorm.DB
}

// NewLikeService creates a new LikeService on the given database handle.
func NewLikeService(db *gorm.DB) *LikeService {
	return &LikeService{db: db}
}

// targetRow is the locked projection of a post or comment row.
type targetRow struct {
	ID         uint
	UserID     uint
	LikesCount int
}

// Toggle flips the like state of (actor, target). karmaValue is the policy
// amount credited to the target's author on like and debited on unlike;
// the policy lives at the call site.
//
// Concurrent toggles on the same target serialize on the row lock;
// toggles on different targets proceed independently. A lost race on the
// edge's unique index surfaces as CONFLICT and is never retried here.
func (s *LikeService) Toggle(ctx context.Context, actorID uint, target models.LikeTarget, targetID uint, karmaValue int) (*ToggleResult, error) {
	if !target.Valid() {
		return nil, models.NewValidationError("like target type must be POST or COMMENT")
	}
	if karmaValue <= 0 {
		return nil, models.NewValidationError("karma value must be positive")
	}

	table := "posts"
	resource := "Post"
	if target == models.LikeTargetComment {
		table = "comments"
		resource = "Comment"
	}

	var result ToggleResult
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Lock the target row so concurrent toggles on it serialize.
		var row targetRow
		q := tx.Table(table).Select("id, user_id, likes_count").Where("id = ?", targetID)
		if tx.Dialector.Name() != "sqlite" {
			// SQLite has no FOR UPDATE; its single writer serializes anyway.
			q = q.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		if err := q.Take(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError(resource, targetID)
			}
			return err
		}

		if row.UserID == actorID {
			return models.NewSelfVoteError()
		}

		var edge models.Like
		err := tx.Where("user_id = ? AND target_type = ? AND target_id = ?",
			actorID, target, targetID).Take(&edge).Error

		switch {
		case err == nil:
			// Toggle off: destroy the edge, decrement, debit the author.
			if err := tx.Delete(&edge).Error; err != nil {
				return err
			}
			if err := s.adjustCount(tx, table, targetID, -1); err != nil {
				return err
			}
			if err := s.appendLedger(tx, row.UserID, -karmaValue, target, targetID); err != nil {
				return err
			}
			result.State = StateUnliked

		case errors.Is(err, gorm.ErrRecordNotFound):
			// Toggle on: create the edge, increment, credit the author.
			createErr := tx.Create(&models.Like{
				UserID:     actorID,
				TargetType: target,
				TargetID:   targetID,
			}).Error
			if createErr != nil {
				if isUniqueViolation(createErr) {
					return models.NewConflictError()
				}
				return createErr
			}
			if err := s.adjustCount(tx, table, targetID, 1); err != nil {
				return err
			}
			if err := s.appendLedger(tx, row.UserID, karmaValue, target, targetID); err != nil {
				return err
			}
			result.State = StateLiked

		default:
			return err
		}

		// Re-read the committed counter instead of computing it here.
		return tx.Table(table).Select("likes_count").Where("id = ?", targetID).
			Scan(&result.NewLikes).Error
	})

	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		middleware.Logger.ErrorContext(ctx, "like toggle failed",
			"target", string(target), "target_id", targetID, "error", err.Error())
		return nil, models.NewInternalError(err)
	}

	middleware.LikeToggles.WithLabelValues(string(target), result.State).Inc()
	return &result, nil
}

func (s *LikeService) adjustCount(tx *gorm.DB, table string, targetID uint, delta int) error {
	return tx.Table(table).Where("id = ?", targetID).
		UpdateColumn("likes_count", gorm.Expr("likes_count + ?", delta)).Error
}

func (s *LikeService) appendLedger(tx *gorm.DB, recipient uint, amount int, sourceType models.LikeTarget, sourceID uint) error {
	return tx.Create(&models.KarmaTransaction{
		UserID:     recipient,
		Amount:     amount,
		SourceType: sourceType,
		SourceID:   sourceID,
	}).Error
}

// isUniqueViolation reports whether err is a unique-constraint failure on
// any of the supported drivers.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
