package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/relearn-next/internal/config"
	"github.com/relearn-next/internal/logger"
	"github.com/relearn-next/internal/models"
	"github.com/relearn-next/internal/repository"
)

// ContactService 联系留言服务
type ContactService struct {
	cfg          *config.Config
	contactRepo  repository.ContactRepository
	emailService *EmailService
}

// NewContactService 创建联系留言服务
func NewContactService(cfg *config.Config, contactRepo repository.ContactRepository, emailService *EmailService) *ContactService {
	return &ContactService{
		cfg:          cfg,
		contactRepo:  contactRepo,
		emailService: emailService,
	}
}

// ContactInput 留言输入
type ContactInput struct {
	Name    string
	Email   string
	Message string
}

// Submit 保存留言并同步通知运营邮箱
// 邮件发送失败时返回错误，留言记录保留
func (s *ContactService) Submit(input ContactInput) (*models.ContactMessage, error) {
	name := strings.TrimSpace(input.Name)
	message := strings.TrimSpace(input.Message)
	if name == "" || message == "" {
		return nil, ErrInvalidContactMessage
	}
	email, err := normalizeEmail(input.Email)
	if err != nil {
		return nil, err
	}

	record := &models.ContactMessage{
		Name:      name,
		Email:     email,
		Message:   message,
		CreatedAt: time.Now(),
	}
	if err := s.contactRepo.Create(record); err != nil {
		return nil, err
	}

	operator := strings.TrimSpace(s.cfg.Notify.OperatorEmail)
	if operator == "" || s.emailService == nil || !s.emailService.Enabled() {
		logger.Errorw("contact_notify_unconfigured", "contact_id", record.ID)
		return record, ErrEmailServiceNotConfigured
	}

	if err := s.emailService.SendContactNotification(operator, ContactNotificationInput{
		Name:    name,
		Email:   email,
		Message: message,
	}); err != nil {
		logger.Errorw("contact_notify_failed", "contact_id", record.ID, "error", err)
		return record, fmt.Errorf("%w: %v", ErrEmailSendFailed, err)
	}

	logger.Infow("contact_message_received", "contact_id", record.ID)
	return record, nil
}
