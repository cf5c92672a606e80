package models

import (
	"time"
)

// Category groups posts. Name and slug are unique; removing a category keeps
// its posts and clears their category reference.
type Category struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Slug        string    `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	Description *string   `gorm:"type:text" json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	Posts       []Post    `gorm:"foreignKey:CategoryID" json:"posts,omitempty"`
}

// CategorySummary is the flattened category shape embedded in post projections.
type CategorySummary struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Summary returns the flattened projection of the category.
func (c *Category) Summary() CategorySummary {
	return CategorySummary{ID: c.ID, Name: c.Name, Slug: c.Slug}
}
