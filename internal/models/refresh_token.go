package models

import (
	"time"
)

// RefreshToken 刷新令牌表
// 每次刷新轮换一条记录，旧记录进入黑名单（RevokedAt 非空）
type RefreshToken struct {
	ID        uint       `gorm:"primarykey" json:"id"`                // 主键
	TokenID   string     `gorm:"uniqueIndex;not null" json:"token_id"` // JWT ID（jti）
	UserID    uint       `gorm:"not null;index" json:"user_id"`        // 用户ID
	ExpiresAt time.Time  `gorm:"not null;index" json:"expires_at"`     // 过期时间
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`              // 拉黑时间（轮换或重置密码时写入）
	CreatedAt time.Time  `json:"created_at"`                           // 签发时间
}

// TableName 指定表名
func (RefreshToken) TableName() string {
	return "refresh_tokens"
}
