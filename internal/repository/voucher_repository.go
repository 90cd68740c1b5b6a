package repository

import (
	"errors"

	"github.com/relearn-next/internal/models"

	"gorm.io/gorm"
)

// VoucherRepository 支付凭证数据访问接口
type VoucherRepository interface {
	Create(voucher *models.PaymentVoucher) error
	GetByID(id uint) (*models.PaymentVoucher, error)
	ListByUser(userID uint) ([]models.PaymentVoucher, error)
}

// GormVoucherRepository GORM 实现
type GormVoucherRepository struct {
	db *gorm.DB
}

// NewVoucherRepository 创建凭证仓库
func NewVoucherRepository(db *gorm.DB) *GormVoucherRepository {
	return &GormVoucherRepository{db: db}
}

// Create 创建凭证记录
func (r *GormVoucherRepository) Create(voucher *models.PaymentVoucher) error {
	return r.db.Create(voucher).Error
}

// GetByID 根据 ID 获取凭证
func (r *GormVoucherRepository) GetByID(id uint) (*models.PaymentVoucher, error) {
	var voucher models.PaymentVoucher
	if err := r.db.First(&voucher, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &voucher, nil
}

// ListByUser 获取用户提交的凭证
func (r *GormVoucherRepository) ListByUser(userID uint) ([]models.PaymentVoucher, error) {
	var vouchers []models.PaymentVoucher
	if err := r.db.Where("user_id = ?", userID).Order("id DESC").Find(&vouchers).Error; err != nil {
		return nil, err
	}
	return vouchers, nil
}
