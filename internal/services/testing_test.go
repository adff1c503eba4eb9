package services

import (
	"context"
	"testing"
	"time"

	"github.com/postboard/api/internal/config"
	"github.com/postboard/api/internal/models"
	"github.com/postboard/api/internal/utils"
	"gorm.io/gorm"
)

// setupTestDB creates a migrated in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := models.Open(&config.DatabaseConfig{Driver: "sqlite", DSN: ":memory:"}, false)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { _ = models.Close(db) })

	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func testJWTConfig() *config.JWTConfig {
	return &config.JWTConfig{
		AccessSecret:     "access-secret",
		AccessExpire:     time.Minute,
		RefreshSecret:    "refresh-secret",
		RefreshExpire:    time.Hour,
		Issuer:           "postboard-test",
		RevokeAllOnReuse: true,
	}
}

func newTestTokenService(db *gorm.DB, cfg *config.JWTConfig) *TokenService {
	return NewTokenService(db, utils.NewSigner(cfg), cfg)
}

func createUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	hash, err := utils.HashPassword("password-" + username)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := &models.User{Username: username, Email: username + "@example.com", PasswordHash: hash}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return user
}

var ctx = context.Background()
