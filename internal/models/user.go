// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// Auth providers for a user account.
const (
	ProviderLocal  = "local"
	ProviderGoogle = "google"
)

// User represents an author account. Local accounts carry a bcrypt password
// hash; Google accounts carry a GoogleID and no hash.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"size:100;uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash *string   `gorm:"size:255" json:"-"`
	FullName     *string   `gorm:"size:255" json:"full_name,omitempty"`
	AvatarURL    *string   `gorm:"size:500" json:"avatar_url,omitempty"`
	GoogleID     *string   `gorm:"size:255;uniqueIndex" json:"-"`
	Provider     string    `gorm:"size:20;not null;default:'local'" json:"provider"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Posts        []Post    `gorm:"foreignKey:AuthorID" json:"posts,omitempty"`
}

// AuthorSummary is the flattened author shape embedded in post projections.
type AuthorSummary struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Summary returns the flattened projection of the user.
func (u *User) Summary() AuthorSummary {
	return AuthorSummary{ID: u.ID, Username: u.Username, Email: u.Email}
}

// AuthResponse is returned by register, login and the OAuth callback exchange.
// The user's password hash is excluded by its json tag.
type AuthResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	User         *User  `json:"user"`
}
