package service

import (
	"testing"

	"github.com/relearn-next/internal/config"
	"github.com/relearn-next/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Course{},
		&models.Article{},
		&models.CartItem{},
		&models.ContactMessage{},
		&models.PaymentVoucher{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return db
}

func newTestConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			SecretKey:           "test-secret-key",
			Issuer:              "relearn-test",
			AccessExpireMinutes: 15,
			RefreshExpireHours:  24,
		},
		Security: config.SecurityConfig{
			FrontendBaseURL:  "https://example.com",
			ResetExpireHours: 24,
			PasswordPolicy: config.PasswordPolicyConfig{
				MinLength:     8,
				RequireNumber: true,
			},
		},
	}
}
