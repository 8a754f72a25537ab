package cache

import (
	"time"
)

const (
	// LeaderboardKey is the single global cache key for the rolling
	// leaderboard; there is one board, not one per viewer.
	LeaderboardKey = "leaderboard:v1"
)

const (
	// LeaderboardTTL bounds leaderboard staleness.
	LeaderboardTTL = 60 * time.Second
)
