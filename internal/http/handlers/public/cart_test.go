package public

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/relearn-next/internal/models"
	"github.com/relearn-next/internal/provider"
	"github.com/relearn-next/internal/repository"
	"github.com/relearn-next/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func newCartTestHandler(t *testing.T) (*Handler, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Course{}, &models.CartItem{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	return New(&provider.Container{
		CartService: service.NewCartService(
			repository.NewCartRepository(db),
			repository.NewCourseRepository(db),
		),
	}), db
}

func postCartAdd(t *testing.T, h *Handler, body string) *httptest.ResponseRecorder {
	t.Helper()

	r := gin.New()
	r.POST("/api/v1/cart", h.CartAdd)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestCartAddUnknownCourseRespondsNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h, _ := newCartTestHandler(t)
	w := postCartAdd(t, h, `{"course_id":9999,"quantity":1}`)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status want 404 got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"status_code":404`) {
		t.Fatalf("business code want 404, body: %s", w.Body.String())
	}
}

func TestCartAddArchivedCourseRespondsNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h, db := newCartTestHandler(t)
	course := &models.Course{Slug: "archived-course", Title: "Archived", IsActive: false}
	if err := db.Create(course).Error; err != nil {
		t.Fatalf("seed course failed: %v", err)
	}

	w := postCartAdd(t, h, `{"course_id":1,"quantity":1}`)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status want 404 got %d", w.Code)
	}
}
