package repository

import (
	"errors"
	"time"

	"github.com/relearn-next/internal/models"

	"gorm.io/gorm"
)

// RefreshTokenRepository 刷新令牌数据访问接口
type RefreshTokenRepository interface {
	Create(token *models.RefreshToken) error
	GetByTokenID(tokenID string) (*models.RefreshToken, error)
	Revoke(tokenID string, at time.Time) error
	RevokeAllByUser(userID uint, at time.Time) error
	DeleteExpiredBefore(cutoff time.Time) (int64, error)
}

// GormRefreshTokenRepository GORM 实现
type GormRefreshTokenRepository struct {
	db *gorm.DB
}

// NewRefreshTokenRepository 创建刷新令牌仓库
func NewRefreshTokenRepository(db *gorm.DB) *GormRefreshTokenRepository {
	return &GormRefreshTokenRepository{db: db}
}

// Create 记录签发的刷新令牌
func (r *GormRefreshTokenRepository) Create(token *models.RefreshToken) error {
	return r.db.Create(token).Error
}

// GetByTokenID 根据 jti 获取刷新令牌
func (r *GormRefreshTokenRepository) GetByTokenID(tokenID string) (*models.RefreshToken, error) {
	var token models.RefreshToken
	if err := r.db.Where("token_id = ?", tokenID).First(&token).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &token, nil
}

// Revoke 拉黑单个刷新令牌
func (r *GormRefreshTokenRepository) Revoke(tokenID string, at time.Time) error {
	return r.db.Model(&models.RefreshToken{}).
		Where("token_id = ? AND revoked_at IS NULL", tokenID).
		UpdateColumn("revoked_at", at).Error
}

// RevokeAllByUser 拉黑用户的全部刷新令牌（修改密码时调用）
func (r *GormRefreshTokenRepository) RevokeAllByUser(userID uint, at time.Time) error {
	return r.db.Model(&models.RefreshToken{}).
		Where("user_id = ? AND revoked_at IS NULL", userID).
		UpdateColumn("revoked_at", at).Error
}

// DeleteExpiredBefore 清理早于 cutoff 过期的令牌记录
func (r *GormRefreshTokenRepository) DeleteExpiredBefore(cutoff time.Time) (int64, error) {
	res := r.db.Where("expires_at < ?", cutoff).Delete(&models.RefreshToken{})
	return res.RowsAffected, res.Error
}
