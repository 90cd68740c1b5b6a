package service

import (
	"strings"

	"github.com/relearn-next/internal/config"
	"github.com/relearn-next/internal/logger"
	"github.com/relearn-next/internal/payment/jazzcash"
	"github.com/relearn-next/internal/repository"
)

// CheckoutService 支付下单服务（JazzCash 托管收银台）
type CheckoutService struct {
	cfg        *config.Config
	courseRepo repository.CourseRepository
}

// NewCheckoutService 创建支付下单服务
func NewCheckoutService(cfg *config.Config, courseRepo repository.CourseRepository) *CheckoutService {
	return &CheckoutService{
		cfg:        cfg,
		courseRepo: courseRepo,
	}
}

// CheckoutInput 下单输入
type CheckoutInput struct {
	CourseSlug string
	Quantity   int64
}

// BuildJazzCashRequest 为指定课程构建签名后的收银台表单
func (s *CheckoutService) BuildJazzCashRequest(input CheckoutInput) (*jazzcash.BuildResult, error) {
	slug := strings.TrimSpace(input.CourseSlug)
	if slug == "" {
		return nil, ErrNotFound
	}
	// 数量缺省为 1；负数交给构建器按非法输入拒绝
	quantity := input.Quantity
	if quantity == 0 {
		quantity = 1
	}

	course, err := s.courseRepo.GetBySlug(slug, true)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, ErrCourseNotAvailable
	}

	result, err := jazzcash.BuildRequest(s.jazzcashConfig(), jazzcash.BuildInput{
		UnitPrice:     course.PriceAmount.Decimal,
		Quantity:      quantity,
		BillReference: course.Slug,
		Description:   course.Title,
	})
	if err != nil {
		return nil, err
	}

	logger.Infow("jazzcash_request_built", "course_id", course.ID, "txn_ref_no", result.TxnRefNo)
	return result, nil
}

func (s *CheckoutService) jazzcashConfig() *jazzcash.Config {
	cfg := s.cfg.JazzCash
	return &jazzcash.Config{
		GatewayURL:    cfg.GatewayURL,
		MerchantID:    cfg.MerchantID,
		Password:      cfg.Password,
		IntegritySalt: cfg.IntegritySalt,
		ReturnURL:     cfg.ReturnURL,
		TxnRefPrefix:  cfg.TxnRefPrefix,
		Currency:      cfg.Currency,
		Language:      cfg.Language,
		Version:       cfg.Version,
		ExpiryHours:   cfg.ExpiryHours,
	}
}
