package service

import (
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"github.com/relearn-next/internal/config"
	"github.com/relearn-next/internal/constants"
	"github.com/relearn-next/internal/logger"
	"github.com/relearn-next/internal/models"
	"github.com/relearn-next/internal/queue"
	"github.com/relearn-next/internal/repository"
)

// VoucherService 支付凭证服务
type VoucherService struct {
	cfg           *config.Config
	voucherRepo   repository.VoucherRepository
	userRepo      repository.UserRepository
	uploadService *UploadService
	emailService  *EmailService
	queueClient   *queue.Client
}

// NewVoucherService 创建支付凭证服务
func NewVoucherService(
	cfg *config.Config,
	voucherRepo repository.VoucherRepository,
	userRepo repository.UserRepository,
	uploadService *UploadService,
	emailService *EmailService,
	queueClient *queue.Client,
) *VoucherService {
	return &VoucherService{
		cfg:           cfg,
		voucherRepo:   voucherRepo,
		userRepo:      userRepo,
		uploadService: uploadService,
		emailService:  emailService,
		queueClient:   queueClient,
	}
}

// VoucherUploadResult 凭证上传结果
// NotifyWarning 非空表示凭证已保存但运营通知未送达
type VoucherUploadResult struct {
	Voucher       *models.PaymentVoucher `json:"voucher"`
	NotifyWarning string                 `json:"notify_warning,omitempty"`
}

// Upload 保存支付凭证并在落库后通知运营
// 通知失败只产生告警，凭证记录永不回滚
func (s *VoucherService) Upload(userID uint, file *multipart.FileHeader) (*VoucherUploadResult, error) {
	if userID == 0 {
		return nil, ErrNotFound
	}

	imagePath, err := s.uploadService.SaveFile(file, constants.UploadSceneVoucher)
	if err != nil {
		return nil, err
	}

	voucher := &models.PaymentVoucher{
		UserID:    userID,
		ImagePath: imagePath,
		CreatedAt: time.Now(),
	}
	if err := s.voucherRepo.Create(voucher); err != nil {
		return nil, err
	}
	logger.Infow("voucher_uploaded", "voucher_id", voucher.ID, "user_id", userID)

	result := &VoucherUploadResult{Voucher: voucher}

	if s.queueClient.Enabled() {
		err = s.queueClient.EnqueueVoucherNotifyMail(queue.VoucherNotifyMailPayload{VoucherID: voucher.ID})
	} else {
		err = s.NotifyOperator(voucher.ID)
	}
	if err != nil {
		logger.Warnw("voucher_notify_failed", "voucher_id", voucher.ID, "error", err)
		result.NotifyWarning = fmt.Sprintf("voucher saved but operator notification failed: %v", err)
	}

	return result, nil
}

// NotifyOperator 向运营邮箱发送凭证通知，附带凭证图片
// 同步上传路径与队列 worker 共用
func (s *VoucherService) NotifyOperator(voucherID uint) error {
	operator := strings.TrimSpace(s.cfg.Notify.OperatorEmail)
	if operator == "" || s.emailService == nil || !s.emailService.Enabled() {
		return ErrEmailServiceNotConfigured
	}

	voucher, err := s.voucherRepo.GetByID(voucherID)
	if err != nil {
		return err
	}
	if voucher == nil {
		return ErrNotFound
	}

	user, err := s.userRepo.GetByID(voucher.UserID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrNotFound
	}

	imageBytes, err := s.uploadService.ReadFile(voucher.ImagePath)
	if err != nil {
		logger.Warnw("voucher_image_read_failed", "voucher_id", voucher.ID, "error", err)
		imageBytes = nil
	}

	return s.emailService.SendVoucherNotification(operator, VoucherNotificationInput{
		UserName:   user.Name,
		UserEmail:  user.Email,
		VoucherID:  voucher.ID,
		ImagePath:  voucher.ImagePath,
		ImageBytes: imageBytes,
	})
}
