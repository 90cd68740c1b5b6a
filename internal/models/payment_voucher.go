package models

import (
	"time"
)

// PaymentVoucher 支付凭证表
// 创建后不可变更
type PaymentVoucher struct {
	ID        uint      `gorm:"primarykey" json:"id"`      // 主键
	UserID    uint      `gorm:"not null;index" json:"user_id"` // 提交用户ID
	ImagePath string    `gorm:"not null" json:"image_path"`    // 凭证图片路径
	CreatedAt time.Time `gorm:"index" json:"created_at"`       // 提交时间
}

// TableName 指定表名
func (PaymentVoucher) TableName() string {
	return "payment_vouchers"
}
