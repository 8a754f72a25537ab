// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development only.
package seed

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"playto/internal/models"
	"playto/internal/service"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options controls how much data the seeder generates.
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
}

// Seeder builds domain entities and persists them to the database.
type Seeder struct {
	db    *gorm.DB
	likes *service.LikeService
	rand  *rand.Rand
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	//nolint:gosec // weak randomness is fine for demo data
	return &Seeder{
		db:    db,
		likes: service.NewLikeService(db),
		rand:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Run populates the database with users, posts, threaded comments and
// likes. Likes go through the toggle engine so counters and the karma
// ledger stay consistent with what the API would have produced.
func (s *Seeder) Run(opts Options) error {
	log.Printf("Seeding %d users and %d posts...", opts.NumUsers, opts.NumPosts)

	if opts.ShouldClean {
		if err := s.ClearAll(); err != nil {
			log.Printf("warning: could not clear existing data: %v", err)
		}
	}

	users, err := s.createUsers(opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("created %d users", len(users))

	posts, err := s.createPosts(users, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("created %d posts", len(posts))

	comments, err := s.createComments(users, posts)
	if err != nil {
		return fmt.Errorf("failed to create comments: %w", err)
	}
	log.Printf("created %d comments", len(comments))

	if err := s.createLikes(users, posts, comments); err != nil {
		return fmt.Errorf("failed to create likes: %w", err)
	}

	log.Println("Seeding completed.")
	return nil
}

// ClearAll removes all seedable data. Postgres only.
func (s *Seeder) ClearAll() error {
	log.Println("Clearing existing data...")
	sql := `TRUNCATE TABLE karma_transactions, likes, comments, posts, users RESTART IDENTITY CASCADE;`
	return s.db.Exec(sql).Error
}

func (s *Seeder) createUsers(n int) ([]*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	users := make([]*models.User, 0, n)
	for i := 0; i < n; i++ {
		user := &models.User{
			Username: fmt.Sprintf("%s%d", gofakeit.Username(), gofakeit.Number(100, 999)),
			Password: string(hashed),
		}
		if err := s.db.Create(user).Error; err != nil {
			// username collision from gofakeit, just skip it
			continue
		}
		users = append(users, user)
	}
	if len(users) == 0 {
		return nil, fmt.Errorf("no users created")
	}
	return users, nil
}

func (s *Seeder) createPosts(users []*models.User, n int) ([]*models.Post, error) {
	posts := make([]*models.Post, 0, n)
	for i := 0; i < n; i++ {
		author := users[s.rand.Intn(len(users))]
		post := &models.Post{
			UserID:  author.ID,
			Content: gofakeit.Paragraph(1, 3, 8, " "),
			// spread posts over the last two days so part of the
			// activity lands inside the leaderboard window
			CreatedAt: time.Now().Add(-time.Duration(s.rand.Intn(48)) * time.Hour),
		}
		if err := s.db.Create(post).Error; err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, nil
}

func (s *Seeder) createComments(users []*models.User, posts []*models.Post) ([]*models.Comment, error) {
	var comments []*models.Comment
	for _, post := range posts {
		var topLevel []*models.Comment
		for i := 0; i < s.rand.Intn(5); i++ {
			c := &models.Comment{
				PostID:    post.ID,
				UserID:    users[s.rand.Intn(len(users))].ID,
				Content:   gofakeit.Sentence(12),
				CreatedAt: post.CreatedAt.Add(time.Duration(s.rand.Intn(120)) * time.Minute),
			}
			if err := s.db.Create(c).Error; err != nil {
				return nil, err
			}
			topLevel = append(topLevel, c)
			comments = append(comments, c)
		}
		// replies to roughly a third of the top-level comments
		for _, parent := range topLevel {
			if s.rand.Intn(3) != 0 {
				continue
			}
			parentID := parent.ID
			reply := &models.Comment{
				PostID:    post.ID,
				UserID:    users[s.rand.Intn(len(users))].ID,
				ParentID:  &parentID,
				Content:   gofakeit.Sentence(10),
				CreatedAt: parent.CreatedAt.Add(time.Duration(s.rand.Intn(60)) * time.Minute),
			}
			if err := s.db.Create(reply).Error; err != nil {
				return nil, err
			}
			comments = append(comments, reply)
		}
	}
	return comments, nil
}

func (s *Seeder) createLikes(users []*models.User, posts []*models.Post, comments []*models.Comment) error {
	ctx := context.Background()
	likes := 0
	for _, post := range posts {
		for _, user := range users {
			if user.ID == post.UserID || s.rand.Intn(4) != 0 {
				continue
			}
			if _, err := s.likes.Toggle(ctx, user.ID, models.LikeTargetPost, post.ID, models.KarmaPostLike); err != nil {
				return err
			}
			likes++
		}
	}
	for _, comment := range comments {
		for _, user := range users {
			if user.ID == comment.UserID || s.rand.Intn(8) != 0 {
				continue
			}
			if _, err := s.likes.Toggle(ctx, user.ID, models.LikeTargetComment, comment.ID, models.KarmaCommentLike); err != nil {
				return err
			}
			likes++
		}
	}
	log.Printf("created %d likes", likes)
	return nil
}
