// Package seed provides helpers to create demo data for the application
// database. Intended for development and testing only.
package seed

import (
	"fmt"
	"log"

	"quill/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options controls how much demo data Run creates.
type Options struct {
	Admins       int
	Readers      int
	PostsPerUser int
	// Password is assigned to every seeded account so developers can log in.
	Password string
}

// DefaultOptions returns a small demo data set.
func DefaultOptions() Options {
	return Options{
		Admins:       2,
		Readers:      5,
		PostsPerUser: 3,
		Password:     "quill-demo",
	}
}

// Run populates the database with demo users and posts. Admins get posts;
// readers do not, matching the role model where only admins author content.
func Run(db *gorm.DB, opts Options) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(opts.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash seed password: %w", err)
	}

	for i := 0; i < opts.Admins; i++ {
		admin := &models.User{
			Email:    gofakeit.Email(),
			Password: string(hash),
			Role:     models.RoleAdmin,
		}
		if err := db.Create(admin).Error; err != nil {
			return fmt.Errorf("failed to seed admin: %w", err)
		}

		for j := 0; j < opts.PostsPerUser; j++ {
			post := &models.Post{
				Title:    gofakeit.Sentence(5),
				Content:  gofakeit.Paragraph(1, 3, 5, "\n"),
				AuthorID: admin.ID,
			}
			if err := db.Create(post).Error; err != nil {
				return fmt.Errorf("failed to seed post: %w", err)
			}
		}
		log.Printf("Seeded admin %s with %d posts", admin.Email, opts.PostsPerUser)
	}

	for i := 0; i < opts.Readers; i++ {
		reader := &models.User{
			Email:    gofakeit.Email(),
			Password: string(hash),
			Role:     models.RoleUser,
		}
		if err := db.Create(reader).Error; err != nil {
			return fmt.Errorf("failed to seed reader: %w", err)
		}
	}

	log.Printf("Seeding complete: %d admins, %d readers", opts.Admins, opts.Readers)
	return nil
}
