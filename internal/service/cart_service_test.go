package service

import (
	"errors"
	"testing"

	"github.com/relearn-next/internal/models"
	"github.com/relearn-next/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func newCartService(t *testing.T) (*CartService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	return NewCartService(repository.NewCartRepository(db), repository.NewCourseRepository(db)), db
}

func seedCourse(t *testing.T, db *gorm.DB, slug string, price string, active bool) *models.Course {
	t.Helper()
	course := &models.Course{
		Slug:        slug,
		Title:       slug,
		Instructor:  "Jane",
		PriceAmount: models.NewMoneyFromDecimal(decimal.RequireFromString(price)),
		IsActive:    active,
	}
	if err := db.Create(course).Error; err != nil {
		t.Fatalf("seed course failed: %v", err)
	}
	return course
}

func TestCartAddItemMergesQuantity(t *testing.T) {
	svc, db := newCartService(t)
	course := seedCourse(t, db, "go-basics", "10.00", true)
	owner := repository.CartOwner{UserID: 7}

	if _, err := svc.AddItem(owner, course.ID, 2); err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	item, err := svc.AddItem(owner, course.ID, 3)
	if err != nil {
		t.Fatalf("second add failed: %v", err)
	}
	if item.Quantity != 5 {
		t.Fatalf("expected merged quantity 5, got %d", item.Quantity)
	}

	var count int64
	if err := db.Model(&models.CartItem{}).Where("user_id = ?", owner.UserID).Count(&count).Error; err != nil {
		t.Fatalf("count cart rows failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected a single cart row, got %d", count)
	}
}

func TestCartIdentitiesAreIsolated(t *testing.T) {
	svc, db := newCartService(t)
	course := seedCourse(t, db, "sql-course", "20.00", true)

	userOwner := repository.CartOwner{UserID: 1}
	anonOwner := repository.CartOwner{SessionKey: "cart_0123456789abcdef"}

	if _, err := svc.AddItem(userOwner, course.ID, 1); err != nil {
		t.Fatalf("user add failed: %v", err)
	}
	if _, err := svc.AddItem(anonOwner, course.ID, 2); err != nil {
		t.Fatalf("anonymous add failed: %v", err)
	}

	userView, err := svc.View(userOwner)
	if err != nil {
		t.Fatalf("user view failed: %v", err)
	}
	anonView, err := svc.View(anonOwner)
	if err != nil {
		t.Fatalf("anonymous view failed: %v", err)
	}
	if len(userView.CartItems) != 1 || userView.CartItems[0].Quantity != 1 {
		t.Fatalf("unexpected user cart: %+v", userView.CartItems)
	}
	if len(anonView.CartItems) != 1 || anonView.CartItems[0].Quantity != 2 {
		t.Fatalf("unexpected anonymous cart: %+v", anonView.CartItems)
	}
}

func TestCartViewGrandTotal(t *testing.T) {
	svc, db := newCartService(t)
	first := seedCourse(t, db, "course-a", "10.00", true)
	second := seedCourse(t, db, "course-b", "5.00", true)
	owner := repository.CartOwner{SessionKey: "cart_feedfacecafebeef"}

	if _, err := svc.AddItem(owner, first.ID, 2); err != nil {
		t.Fatalf("add first course failed: %v", err)
	}
	if _, err := svc.AddItem(owner, second.ID, 1); err != nil {
		t.Fatalf("add second course failed: %v", err)
	}

	view, err := svc.View(owner)
	if err != nil {
		t.Fatalf("view failed: %v", err)
	}
	if got := view.GrandTotal.String(); got != "25.00" {
		t.Fatalf("expected grand total 25.00, got %s", got)
	}
	if len(view.AvailableCourses) != 2 {
		t.Fatalf("expected 2 available courses, got %d", len(view.AvailableCourses))
	}
}

func TestCartRejectsInvalidOwnerAndCourse(t *testing.T) {
	svc, db := newCartService(t)
	course := seedCourse(t, db, "inactive-course", "15.00", false)

	if _, err := svc.AddItem(repository.CartOwner{}, course.ID, 1); !errors.Is(err, ErrCartOwnerInvalid) {
		t.Fatalf("expected cart owner invalid, got %v", err)
	}
	both := repository.CartOwner{UserID: 1, SessionKey: "cart_aaaa"}
	if _, err := svc.AddItem(both, course.ID, 1); !errors.Is(err, ErrCartOwnerInvalid) {
		t.Fatalf("expected cart owner invalid for dual identity, got %v", err)
	}

	owner := repository.CartOwner{UserID: 3}
	if _, err := svc.AddItem(owner, course.ID, 1); !errors.Is(err, ErrCourseNotAvailable) {
		t.Fatalf("expected course not available, got %v", err)
	}
	if _, err := svc.AddItem(owner, 9999, 1); !errors.Is(err, ErrCourseNotAvailable) {
		t.Fatalf("expected course not available for unknown id, got %v", err)
	}
	if _, err := svc.AddItem(owner, course.ID, 0); !errors.Is(err, ErrInvalidCartItem) {
		t.Fatalf("expected invalid cart item for zero quantity, got %v", err)
	}
}

func TestCartRemoveItem(t *testing.T) {
	svc, db := newCartService(t)
	course := seedCourse(t, db, "remove-me", "9.99", true)
	owner := repository.CartOwner{UserID: 11}

	if _, err := svc.AddItem(owner, course.ID, 1); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := svc.RemoveItem(owner, course.ID); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if err := svc.RemoveItem(owner, course.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found on second remove, got %v", err)
	}
}
