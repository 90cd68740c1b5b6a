//go:build integration
// +build integration

package repository

import (
	"os"
	"strings"
	"testing"

	"github.com/relearn-next/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// setupPostgresIntegrationDB 初始化 PostgreSQL 集成测试数据库。
func setupPostgresIntegrationDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := strings.TrimSpace(os.Getenv("TEST_POSTGRES_DSN"))
	if dsn == "" {
		t.Skip("skip postgres integration test: TEST_POSTGRES_DSN is empty")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open postgres failed: %v", err)
	}

	cleanupModels := []interface{}{
		&models.CartItem{},
		&models.Article{},
		&models.Course{},
	}
	_ = db.Migrator().DropTable(cleanupModels...)

	if err := db.AutoMigrate(
		&models.Course{},
		&models.Article{},
		&models.CartItem{},
	); err != nil {
		t.Fatalf("migrate postgres models failed: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Migrator().DropTable(cleanupModels...)
		sqlDB, err := db.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})

	return db
}

func TestPostgresCatalogSearchRepositories(t *testing.T) {
	db := setupPostgresIntegrationDB(t)

	courseRepo := NewCourseRepository(db)
	course := &models.Course{
		Slug:        "pg-course-rocket",
		Title:       "Rocket Science Fundamentals",
		Description: "orbital mechanics crash course",
		Instructor:  "Sana Khalid",
		PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(99)),
		IsActive:    true,
	}
	if err := courseRepo.Create(course); err != nil {
		t.Fatalf("create course failed: %v", err)
	}
	archived := &models.Course{
		Slug:        "pg-course-archived",
		Title:       "Archived Rocket Course",
		PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(10)),
		IsActive:    false,
	}
	if err := courseRepo.Create(archived); err != nil {
		t.Fatalf("create archived course failed: %v", err)
	}

	rows, total, err := courseRepo.List(CourseListFilter{Page: 1, PageSize: 10, Search: "Rocket", OnlyActive: true})
	if err != nil {
		t.Fatalf("course list search failed: %v", err)
	}
	if total != 1 || len(rows) != 1 {
		t.Fatalf("course list search want 1 got total=%d len=%d", total, len(rows))
	}
	if rows[0].Slug != "pg-course-rocket" {
		t.Fatalf("course search slug want pg-course-rocket got %s", rows[0].Slug)
	}

	articleRepo := NewArticleRepository(db)
	article := &models.Article{
		Slug:    "pg-article-release",
		Title:   "Release Notes",
		Content: "what changed this week",
	}
	if err := articleRepo.Create(article); err != nil {
		t.Fatalf("create article failed: %v", err)
	}

	articleRows, articleTotal, err := articleRepo.List(ArticleListFilter{Page: 1, PageSize: 10, Search: "Release"})
	if err != nil {
		t.Fatalf("article list search failed: %v", err)
	}
	if articleTotal != 1 || len(articleRows) != 1 {
		t.Fatalf("article list search want 1 got total=%d len=%d", articleTotal, len(articleRows))
	}
}

func TestPostgresCartAddQuantityUpsert(t *testing.T) {
	db := setupPostgresIntegrationDB(t)

	courseRepo := NewCourseRepository(db)
	course := &models.Course{
		Slug:        "pg-cart-course",
		Title:       "Cart Course",
		PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(49)),
		IsActive:    true,
	}
	if err := courseRepo.Create(course); err != nil {
		t.Fatalf("create course failed: %v", err)
	}

	cartRepo := NewCartRepository(db)
	owner := CartOwner{SessionKey: "cart_pg0123456789ab"}

	if _, err := cartRepo.AddQuantity(owner, course.ID, 2); err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	item, err := cartRepo.AddQuantity(owner, course.ID, 3)
	if err != nil {
		t.Fatalf("second add failed: %v", err)
	}
	if item.Quantity != 5 {
		t.Fatalf("quantity want 5 got %d", item.Quantity)
	}

	items, err := cartRepo.ListByOwner(owner)
	if err != nil {
		t.Fatalf("list cart failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("repeat add should keep single row, got %d", len(items))
	}
}
