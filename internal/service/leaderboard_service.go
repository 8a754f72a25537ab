package service

import (
	"context"
	"fmt"
	"time"

	"playto/internal/cache"
	"playto/internal/middleware"
	"playto/internal/models"
	"playto/internal/repository"
)

const (
	// LeaderboardWindow is the trailing span of ledger entries counted.
	LeaderboardWindow = 24 * time.Hour
	// LeaderboardSize caps the number of ranked entries.
	LeaderboardSize = 5
)

// LeaderboardEntry is one ranked row of the rolling leaderboard.
// PreviousRank is a placeholder; no historical rank tracking exists.
type LeaderboardEntry struct {
	User         models.PublicUser `json:"user"`
	Score        int               `json:"score"`
	Rank         int               `json:"rank"`
	PreviousRank int               `json:"previousRank"`
}

// LeaderboardService aggregates the karma ledger over a rolling window.
// It is stateless; the computed board lives behind a single shared cache
// key with a short TTL.
type LeaderboardService struct {
	karmaRepo repository.KarmaRepository
}

// NewLeaderboardService creates a new LeaderboardService.
func NewLeaderboardService(karmaRepo repository.KarmaRepository) *LeaderboardService {
	return &LeaderboardService{karmaRepo: karmaRepo}
}

// GetLeaderboard returns the top scorers of the window ending at now.
// The board is best-effort: any failure is logged and an empty board is
// returned instead of an error.
func (s *LeaderboardService) GetLeaderboard(ctx context.Context, now time.Time) []LeaderboardEntry {
	entries := []LeaderboardEntry{}

	err := cache.Aside(ctx, cache.LeaderboardKey, &entries, cache.LeaderboardTTL, func() error {
		scores, err := s.karmaRepo.TopSince(ctx, now.Add(-LeaderboardWindow), LeaderboardSize)
		if err != nil {
			return err
		}
		entries = make([]LeaderboardEntry, 0, len(scores))
		for i, sc := range scores {
			entries = append(entries, LeaderboardEntry{
				User: models.PublicUser{
					ID:        sc.UserID,
					Username:  sc.Username,
					AvatarURL: fmt.Sprintf("https://picsum.photos/seed/%d/200", sc.UserID),
				},
				Score: sc.Score,
				Rank:  i + 1,
			})
		}
		return nil
	})
	if err != nil {
		middleware.Logger.ErrorContext(ctx, "leaderboard computation failed", "error", err.Error())
		return []LeaderboardEntry{}
	}

	return entries
}
