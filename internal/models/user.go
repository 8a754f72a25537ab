package models

import (
	"fmt"
	"strings"
	"time"
)

// GuestPrefix marks usernames minted by the session identity resolver.
// Guest accounts cannot log in with credentials.
const GuestPrefix = "Guest_"

// User represents a registered account or a session guest.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"uniqueIndex;size:150;not null" json:"username"`
	Password  string    `gorm:"size:255" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsGuest reports whether the account was minted for an anonymous session.
func (u *User) IsGuest() bool {
	return strings.HasPrefix(u.Username, GuestPrefix)
}

// AvatarURL derives a stable placeholder avatar from the user id.
func (u *User) AvatarURL() string {
	return fmt.Sprintf("https://picsum.photos/seed/%d/200", u.ID)
}

// PublicUser is the externally visible projection of a user.
type PublicUser struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatarUrl"`
}

// Public returns the user's public projection.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Username:  u.Username,
		AvatarURL: u.AvatarURL(),
	}
}
