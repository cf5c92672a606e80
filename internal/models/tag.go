package models

// Tag labels posts through the post_tags join table. Deleting a post removes
// its join rows; deleting a tag never deletes posts.
type Tag struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Name  string `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Slug  string `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	Posts []Post `gorm:"many2many:post_tags" json:"posts,omitempty"`
}

// TagSummary is the flattened tag shape embedded in post projections.
type TagSummary struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Summary returns the flattened projection of the tag.
func (t *Tag) Summary() TagSummary {
	return TagSummary{ID: t.ID, Name: t.Name, Slug: t.Slug}
}
