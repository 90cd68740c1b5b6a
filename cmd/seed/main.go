package main

import (
	"fmt"

	"github.com/relearn-next/internal/config"
	"github.com/relearn-next/internal/logger"
	"github.com/relearn-next/internal/models"

	"github.com/shopspring/decimal"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 添加课程
	courses := []models.Course{
		{
			Slug:        "python-for-beginners",
			Title:       "Python for Beginners",
			Description: "从零开始学习 Python：语法、数据结构与小项目实战。",
			Instructor:  "Sana Khalid",
			PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromFloat(49.00)),
			Image:       "https://images.unsplash.com/photo-1526379095098-d400fd0bf935?w=800",
			IsActive:    true,
			SortOrder:   300,
		},
		{
			Slug:        "django-web-development",
			Title:       "Django Web Development",
			Description: "使用 Django 构建真实可上线的 Web 应用，涵盖 ORM、认证与部署。",
			Instructor:  "Omar Farooq",
			PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromFloat(79.00)),
			Image:       "https://images.unsplash.com/photo-1555066931-4365d14bab8c?w=800",
			IsActive:    true,
			SortOrder:   280,
		},
		{
			Slug:        "data-analysis-with-pandas",
			Title:       "Data Analysis with Pandas",
			Description: "掌握 Pandas 数据清洗、聚合与可视化的完整流程。",
			Instructor:  "Sana Khalid",
			PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromFloat(59.00)),
			Image:       "https://images.unsplash.com/photo-1551288049-bebda4e38f71?w=800",
			IsActive:    true,
			SortOrder:   260,
		},
		{
			Slug:        "javascript-essentials",
			Title:       "JavaScript Essentials",
			Description: "现代 JavaScript 核心：ES6+、异步编程与 DOM 操作。",
			Instructor:  "Bilal Ahmed",
			PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromFloat(39.00)),
			Image:       "https://images.unsplash.com/photo-1579468118864-1b9ea3c0db4a?w=800",
			IsActive:    true,
			SortOrder:   240,
		},
		{
			Slug:        "legacy-archived-course",
			Title:       "Legacy Archived Course",
			Description: "已下架课程，用于验证前台只展示上架课程。",
			Instructor:  "Bilal Ahmed",
			PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromFloat(19.00)),
			IsActive:    false,
			SortOrder:   0,
		},
	}

	for _, course := range courses {
		var existing models.Course
		if err := models.DB.Where("slug = ?", course.Slug).First(&existing).Error; err != nil {
			if err := models.DB.Create(&course).Error; err != nil {
				stdLog.Printf("Failed to create course %s: %v", course.Slug, err)
			} else {
				stdLog.Printf("Created course: %s", course.Slug)
			}
		} else {
			existing.Title = course.Title
			existing.Description = course.Description
			existing.Instructor = course.Instructor
			existing.PriceAmount = course.PriceAmount
			existing.Image = course.Image
			existing.IsActive = course.IsActive
			existing.SortOrder = course.SortOrder
			if err := models.DB.Save(&existing).Error; err != nil {
				stdLog.Printf("Failed to update course %s: %v", course.Slug, err)
			} else {
				stdLog.Printf("Updated course: %s", course.Slug)
			}
		}
	}

	// 添加博客文章
	articles := []models.Article{
		{
			Slug:    "welcome-to-relearn",
			Title:   "Welcome to ReLearn",
			Content: "ReLearn 致力于为自学者提供高质量的编程课程。\n\n平台上的每门课程都由一线工程师打磨，配套练习与答疑。\n\n欢迎通过留言板联系我们！",
		},
		{
			Slug:    "how-to-pay-with-jazzcash",
			Title:   "How to Pay with JazzCash",
			Content: "我们支持 JazzCash 移动钱包付款。\n\n下单后按页面提示在手机上确认扣款即可；如使用凭证支付，请在付款后上传截图，运营会在 24 小时内核对。",
		},
		{
			Slug:    "study-tips-for-self-learners",
			Title:   "Study Tips for Self Learners",
			Content: "自学编程最重要的三件事：\n\n1. 每天固定时间练习\n2. 动手写项目而不是只看视频\n3. 遇到问题先自己排查 30 分钟再求助",
		},
	}

	for _, article := range articles {
		var existing models.Article
		if err := models.DB.Where("slug = ?", article.Slug).First(&existing).Error; err != nil {
			if err := models.DB.Create(&article).Error; err != nil {
				stdLog.Printf("Failed to create article %s: %v", article.Slug, err)
			} else {
				stdLog.Printf("Created article: %s", article.Slug)
			}
		} else {
			stdLog.Printf("Article already exists: %s", article.Slug)
		}
	}

	fmt.Println("\n✅ Seed data created successfully!")
	fmt.Println("Summary:")
	fmt.Println("- 5 Courses (4 active + 1 archived)")
	fmt.Println("- 3 Articles")
}
