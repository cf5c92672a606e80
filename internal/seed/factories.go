// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"quill/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db *gorm.DB
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{db: db}
}

// CreateUser persists a user with a hashed demo password.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("Password123!"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	hash := string(hashed)
	fullName := gofakeit.Name()

	user := &models.User{
		Username:     strings.ToLower(gofakeit.Username()),
		Email:        gofakeit.Email(),
		PasswordHash: &hash,
		FullName:     &fullName,
		Provider:     models.ProviderLocal,
	}
	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateCategory persists a category with a slug derived from its name.
func (f *Factory) CreateCategory(name string) (*models.Category, error) {
	description := gofakeit.Sentence(8)
	category := &models.Category{
		Name:        name,
		Slug:        slugify(name),
		Description: &description,
	}
	if err := f.db.Create(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

// CreateTag persists a tag with a slug derived from its name.
func (f *Factory) CreateTag(name string) (*models.Tag, error) {
	tag := &models.Tag{
		Name: name,
		Slug: slugify(name),
	}
	if err := f.db.Create(tag).Error; err != nil {
		return nil, err
	}
	return tag, nil
}

// BuildPost constructs a post without persisting it. Roughly two thirds of
// generated posts are published with a realistic publication date spread.
func (f *Factory) BuildPost(author *models.User, category *models.Category, tags []models.Tag) *models.Post {
	title := strings.TrimSuffix(gofakeit.Sentence(6), ".")
	excerpt := gofakeit.Sentence(15)
	image := fmt.Sprintf("https://picsum.photos/seed/%s/1200/630", gofakeit.UUID())

	post := &models.Post{
		Title:         title,
		Slug:          slugify(title) + "-" + gofakeit.LetterN(4),
		Content:       gofakeit.Paragraph(3, 5, 12, "\n\n"),
		Excerpt:       &excerpt,
		FeaturedImage: &image,
		Status:        models.PostStatusDraft,
		AuthorID:      author.ID,
		Tags:          tags,
	}
	if category != nil {
		post.CategoryID = &category.ID
	}

	createdAt := time.Now().Add(-time.Duration(rand.Intn(90*24)) * time.Hour)
	post.CreatedAt = createdAt

	if rand.Intn(3) != 0 {
		post.Status = models.PostStatusPublished
		publishedAt := createdAt.Add(time.Duration(rand.Intn(48)) * time.Hour)
		post.PublishedAt = &publishedAt
		post.ViewsCount = rand.Intn(2000)
	}

	return post
}

// CreateComment persists an anonymous comment on the given post. Most seeded
// comments are approved so listings have content.
func (f *Factory) CreateComment(post *models.Post, parent *models.Comment) (*models.Comment, error) {
	status := models.CommentStatusApproved
	if rand.Intn(5) == 0 {
		status = models.CommentStatusPending
	}

	comment := &models.Comment{
		Content:     gofakeit.Sentence(12),
		AuthorName:  gofakeit.Name(),
		AuthorEmail: gofakeit.Email(),
		Status:      status,
		PostID:      post.ID,
	}
	if parent != nil {
		comment.ParentID = &parent.ID
	}

	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// slugify lowercases a title and joins its words with hyphens.
func slugify(s string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}
