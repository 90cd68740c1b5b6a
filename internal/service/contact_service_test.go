package service

import (
	"errors"
	"testing"

	"github.com/relearn-next/internal/config"
	"github.com/relearn-next/internal/models"
	"github.com/relearn-next/internal/repository"

	"gorm.io/gorm"
)

func newContactService(t *testing.T, operatorEmail string) (*ContactService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	cfg := newTestConfig()
	cfg.Notify = config.NotifyConfig{OperatorEmail: operatorEmail}
	svc := NewContactService(cfg, repository.NewContactRepository(db), NewEmailService(&config.EmailConfig{}))
	return svc, db
}

func TestContactSubmitValidatesInput(t *testing.T) {
	svc, _ := newContactService(t, "ops@example.com")

	if _, err := svc.Submit(ContactInput{Name: "", Email: "a@b.com", Message: "hi"}); !errors.Is(err, ErrInvalidContactMessage) {
		t.Fatalf("expected invalid contact message, got %v", err)
	}
	if _, err := svc.Submit(ContactInput{Name: "A", Email: "not-an-email", Message: "hi"}); !errors.Is(err, ErrInvalidEmail) {
		t.Fatalf("expected invalid email, got %v", err)
	}
	if _, err := svc.Submit(ContactInput{Name: "A", Email: "a@b.com", Message: "  "}); !errors.Is(err, ErrInvalidContactMessage) {
		t.Fatalf("expected invalid contact message for blank body, got %v", err)
	}
}

func TestContactSubmitKeepsRecordWhenMailFails(t *testing.T) {
	svc, db := newContactService(t, "ops@example.com")

	record, err := svc.Submit(ContactInput{Name: "Visitor", Email: "visitor@example.com", Message: "please call me"})
	if !errors.Is(err, ErrEmailServiceNotConfigured) {
		t.Fatalf("expected mail failure to surface, got %v", err)
	}
	if record == nil || record.ID == 0 {
		t.Fatalf("expected record to be persisted despite mail failure")
	}

	var count int64
	if err := db.Model(&models.ContactMessage{}).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 persisted message, got %d", count)
	}
}
