package models

import (
	"time"
)

// CommentStatus is the moderation state of a comment.
type CommentStatus string

const (
	CommentStatusPending  CommentStatus = "pending"
	CommentStatusApproved CommentStatus = "approved"
	CommentStatusSpam     CommentStatus = "spam"
)

// ValidCommentStatus reports whether s is one of the known comment statuses.
func ValidCommentStatus(s CommentStatus) bool {
	switch s {
	case CommentStatusPending, CommentStatusApproved, CommentStatusSpam:
		return true
	}
	return false
}

// Comment is an anonymous visitor comment on a post. Comments are not linked
// to user accounts. Deleting a post deletes its comments; deleting a parent
// deletes its replies.
type Comment struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	Content       string        `gorm:"type:text;not null" json:"content"`
	AuthorName    string        `gorm:"size:100;not null" json:"author_name"`
	AuthorEmail   string        `gorm:"size:100;not null" json:"author_email"`
	AuthorWebsite *string       `gorm:"size:255" json:"author_website,omitempty"`
	Status        CommentStatus `gorm:"size:20;not null;default:'pending';index" json:"status"`
	PostID        uint          `gorm:"not null;index" json:"post_id"`
	Post          *Post         `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
	ParentID      *uint         `gorm:"index" json:"parent_id,omitempty"`
	Parent        *Comment      `gorm:"foreignKey:ParentID;constraint:OnDelete:CASCADE" json:"-"`
	Replies       []Comment     `gorm:"foreignKey:ParentID" json:"replies,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
}
