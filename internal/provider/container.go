package provider

import (
	"github.com/relearn-next/internal/cache"
	"github.com/relearn-next/internal/config"
	"github.com/relearn-next/internal/logger"
	"github.com/relearn-next/internal/models"
	"github.com/relearn-next/internal/queue"
	"github.com/relearn-next/internal/repository"
	"github.com/relearn-next/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	UserRepo         repository.UserRepository
	RefreshTokenRepo repository.RefreshTokenRepository
	CourseRepo       repository.CourseRepository
	ArticleRepo      repository.ArticleRepository
	CartRepo         repository.CartRepository
	ContactRepo      repository.ContactRepository
	VoucherRepo      repository.VoucherRepository

	// Services
	UserAuthService *service.UserAuthService
	EmailService    *service.EmailService
	CaptchaService  *service.CaptchaService
	UploadService   *service.UploadService
	CourseService   *service.CourseService
	ArticleService  *service.ArticleService
	CartService     *service.CartService
	ContactService  *service.ContactService
	VoucherService  *service.VoucherService
	CheckoutService *service.CheckoutService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	c.initRepositories()
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.UserRepo = repository.NewUserRepository(db)
	c.RefreshTokenRepo = repository.NewRefreshTokenRepository(db)
	c.CourseRepo = repository.NewCourseRepository(db)
	c.ArticleRepo = repository.NewArticleRepository(db)
	c.CartRepo = repository.NewCartRepository(db)
	c.ContactRepo = repository.NewContactRepository(db)
	c.VoucherRepo = repository.NewVoucherRepository(db)
}

func (c *Container) initServices() {
	c.EmailService = service.NewEmailService(&c.Config.Email)
	c.CaptchaService = service.NewCaptchaService(c.Config.Captcha)
	c.UploadService = service.NewUploadService(c.Config)
	c.UserAuthService = service.NewUserAuthService(c.Config, c.UserRepo, c.RefreshTokenRepo, c.EmailService)
	c.CourseService = service.NewCourseService(c.CourseRepo)
	c.ArticleService = service.NewArticleService(c.ArticleRepo)
	c.CartService = service.NewCartService(c.CartRepo, c.CourseRepo)
	c.ContactService = service.NewContactService(c.Config, c.ContactRepo, c.EmailService)
	c.VoucherService = service.NewVoucherService(c.Config, c.VoucherRepo, c.UserRepo, c.UploadService, c.EmailService, c.QueueClient)
	c.CheckoutService = service.NewCheckoutService(c.Config, c.CourseRepo)
}
