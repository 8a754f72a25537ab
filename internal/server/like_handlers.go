package server

import (
	"time"

	"playto/internal/models"

	"github.com/gofiber/fiber/v2"
)

// LikePost handles POST /api/posts/:id/like
func (s *Server) LikePost(c *fiber.Ctx) error {
	return s.toggleLike(c, models.LikeTargetPost, models.KarmaPostLike)
}

// LikeComment handles POST /api/comments/:id/like
func (s *Server) LikeComment(c *fiber.Ctx) error {
	return s.toggleLike(c, models.LikeTargetComment, models.KarmaCommentLike)
}

func (s *Server) toggleLike(c *fiber.Ctx, target models.LikeTarget, karmaValue int) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	result, err := s.likeService.Toggle(c.Context(), actorID(c), target, id, karmaValue)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(result)
}

// GetLeaderboard handles GET /api/leaderboard
func (s *Server) GetLeaderboard(c *fiber.Ctx) error {
	return c.JSON(s.leaderboardService.GetLeaderboard(c.Context(), time.Now()))
}
