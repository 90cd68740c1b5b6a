package router

import (
	"fmt"
	"strings"

	"github.com/relearn-next/internal/cache"
	"github.com/relearn-next/internal/config"
	"github.com/relearn-next/internal/constants"
	publichandlers "github.com/relearn-next/internal/http/handlers/public"
	"github.com/relearn-next/internal/logger"
	"github.com/relearn-next/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	publicHandler := publichandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = constants.RedisPrefixDefault
	}
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
	}
	registerRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:register", redisPrefix),
		WindowSeconds: cfg.Security.RegisterRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.RegisterRateLimit.MaxAttempts,
	}
	contactRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:contact", redisPrefix),
		WindowSeconds: cfg.Security.ContactRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.ContactRateLimit.MaxAttempts,
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// 静态文件服务（上传的凭证图片等）
	uploadDir := strings.TrimSpace(cfg.Upload.Dir)
	if uploadDir == "" {
		uploadDir = "./uploads"
	}
	r.Static("/uploads", uploadDir)

	apiV1 := r.Group("/api/v1")
	{
		// 公开只读接口
		apiV1.GET("/courses", publicHandler.CourseList)
		apiV1.GET("/courses/:slug", publicHandler.CourseDetail)
		apiV1.GET("/articles", publicHandler.ArticleList)
		apiV1.GET("/articles/:slug", publicHandler.ArticleDetail)

		// 联系留言（匿名可用，按 IP 限流）
		apiV1.POST("/contact", RateLimitMiddleware(redisClient, contactRule, KeyByIP), publicHandler.ContactSubmit)

		// 用户认证接口
		auth := apiV1.Group("/auth")
		{
			auth.GET("/captcha", publicHandler.CaptchaChallenge)
			auth.POST("/register", RateLimitMiddleware(redisClient, registerRule, KeyByIP), publicHandler.UserRegister)
			auth.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("name")), publicHandler.UserLogin)
			auth.POST("/refresh", publicHandler.UserRefresh)
			auth.POST("/password-reset", publicHandler.UserPasswordReset)
			auth.POST("/password-reset-confirm", publicHandler.UserPasswordResetConfirm)
		}

		// 购物车：登录用户与匿名会话共用一组路由
		cart := apiV1.Group("/cart")
		cart.Use(OptionalUserJWTMiddleware(cfg.JWT.SecretKey, c.UserRepo))
		{
			cart.GET("", publicHandler.CartView)
			cart.POST("", publicHandler.CartAdd)
			cart.DELETE("", publicHandler.CartClear)
			cart.DELETE("/:course_id", publicHandler.CartRemove)
		}

		// 支付下单（匿名可用）
		apiV1.POST("/payments/jazzcash", publicHandler.JazzCashCheckout)

		// 用户接口（需鉴权）
		user := apiV1.Group("")
		user.Use(UserJWTAuthMiddleware(cfg.JWT.SecretKey, c.UserRepo))
		{
			user.GET("/me", publicHandler.UserProfile)
			user.PUT("/me/password", publicHandler.UserChangePassword)
			user.POST("/payments/voucher", publicHandler.VoucherUpload)
			user.GET("/payments/vouchers", publicHandler.VoucherList)
		}

		// 文章写操作（需内容管理能力）；读接口保持公开
		articleWrite := []gin.HandlerFunc{
			UserJWTAuthMiddleware(cfg.JWT.SecretKey, c.UserRepo),
			CapabilityMiddleware(constants.CapabilityArticleWrite),
		}
		apiV1.POST("/articles", append(articleWrite, publicHandler.ArticleCreate)...)
		apiV1.PUT("/articles/:slug", append(articleWrite, publicHandler.ArticleUpdate)...)
		apiV1.DELETE("/articles/:slug", append(articleWrite, publicHandler.ArticleDelete)...)
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
