// Package bootstrap wires up runtime dependencies shared by the server and
// auxiliary commands.
package bootstrap

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"quill/internal/cache"
	"quill/internal/config"
	"quill/internal/database"
	"quill/internal/models"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// InitRuntime connects to the database and Redis and, in development,
// optionally ensures a root admin account exists. The Redis client may be nil
// when the server is unreachable; the app degrades gracefully.
func InitRuntime(cfg *config.Config) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)

	if err := ensureDevAdmin(cfg, db); err != nil {
		return nil, nil, fmt.Errorf("failed to bootstrap development admin: %w", err)
	}

	return db, cache.GetClient(), nil
}

// ensureDevAdmin creates (or promotes) the configured development admin
// account. Only active in development with DEV_BOOTSTRAP_ADMIN enabled, so a
// fresh checkout has a working admin login without a manual registration step.
func ensureDevAdmin(cfg *config.Config, db *gorm.DB) error {
	if cfg == nil || db == nil {
		return nil
	}
	if !strings.EqualFold(cfg.Env, "development") || !cfg.DevBootstrapAdmin {
		return nil
	}

	email := strings.TrimSpace(strings.ToLower(cfg.DevAdminEmail))
	if email == "" {
		email = "admin@quill.local"
	}
	if cfg.DevAdminPassword == "" {
		return fmt.Errorf("DEV_ADMIN_PASSWORD must be set when DEV_BOOTSTRAP_ADMIN is enabled")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(cfg.DevAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	if err := db.Transaction(func(tx *gorm.DB) error {
		var admin models.User
		findErr := tx.Where("email = ?", email).First(&admin).Error
		switch {
		case errors.Is(findErr, gorm.ErrRecordNotFound):
			admin = models.User{
				Email:    email,
				Password: string(hashedPassword),
				Role:     models.RoleAdmin,
			}
			return tx.Create(&admin).Error
		case findErr != nil:
			return findErr
		default:
			// Account exists: make sure it is an admin, leave the password alone.
			return tx.Model(&models.User{}).
				Where("id = ?", admin.ID).
				Update("role", models.RoleAdmin).Error
		}
	}); err != nil {
		return err
	}

	log.Printf("development admin bootstrap ensured for %s", email)
	return nil
}
