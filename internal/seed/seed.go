package seed

import (
	"fmt"
	"log"
	"math/rand"

	"quill/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
}

var categoryNames = []string{
	"Technology", "Programming", "Design", "Productivity", "Career",
	"Open Source", "Databases", "DevOps", "Security",
}

var tagNames = []string{
	"go", "postgres", "redis", "docker", "kubernetes", "testing",
	"performance", "tutorial", "opinion", "release-notes", "api",
	"frontend", "backend", "tooling",
}

// Seed populates the database with demo users, taxonomy, posts and comments.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("Seeding database with %d users and %d posts...", opts.NumUsers, opts.NumPosts)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("Warning: could not clear all existing data, continuing anyway...")
		}
	}

	factory := NewFactory(db)

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user, err := factory.CreateUser()
		if err != nil {
			return fmt.Errorf("failed to create users: %w", err)
		}
		users = append(users, user)
	}
	log.Printf("%d users created", len(users))

	categories := make([]*models.Category, 0, len(categoryNames))
	for _, name := range categoryNames {
		category, err := factory.CreateCategory(name)
		if err != nil {
			return fmt.Errorf("failed to create categories: %w", err)
		}
		categories = append(categories, category)
	}

	tags := make([]models.Tag, 0, len(tagNames))
	for _, name := range tagNames {
		tag, err := factory.CreateTag(name)
		if err != nil {
			return fmt.Errorf("failed to create tags: %w", err)
		}
		tags = append(tags, *tag)
	}
	log.Printf("%d categories and %d tags created", len(categories), len(tags))

	posts := make([]*models.Post, 0, opts.NumPosts)
	for i := 0; i < opts.NumPosts; i++ {
		author := users[rand.Intn(len(users))]

		var category *models.Category
		if rand.Intn(4) != 0 {
			category = categories[rand.Intn(len(categories))]
		}

		postTags := pickTags(tags, rand.Intn(4))
		post := factory.BuildPost(author, category, postTags)
		if err := db.Create(post).Error; err != nil {
			return fmt.Errorf("failed to create posts: %w", err)
		}
		posts = append(posts, post)
	}
	log.Printf("%d posts created", len(posts))

	comments := 0
	for _, post := range posts {
		if post.Status != models.PostStatusPublished {
			continue
		}
		n := rand.Intn(6)
		for i := 0; i < n; i++ {
			comment, err := factory.CreateComment(post, nil)
			if err != nil {
				return fmt.Errorf("failed to create comments: %w", err)
			}
			comments++
			if rand.Intn(3) == 0 {
				if _, err := factory.CreateComment(post, comment); err != nil {
					return fmt.Errorf("failed to create comments: %w", err)
				}
				comments++
			}
		}
	}
	log.Printf("%d comments created", comments)

	log.Println("Seeding complete")
	return nil
}

func pickTags(tags []models.Tag, n int) []models.Tag {
	if n == 0 || len(tags) == 0 {
		return nil
	}
	picked := make([]models.Tag, 0, n)
	for _, i := range rand.Perm(len(tags))[:n] {
		picked = append(picked, tags[i])
	}
	return picked
}

// clearData removes all seedable rows, children first.
func clearData(db *gorm.DB) error {
	tables := []string{"comments", "post_tags", "posts", "tags", "categories", "users"}
	for _, table := range tables {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return err
		}
	}
	return nil
}
