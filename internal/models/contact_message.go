package models

import (
	"time"
)

// ContactMessage 联系留言表
type ContactMessage struct {
	ID        uint      `gorm:"primarykey" json:"id"`    // 主键
	Name      string    `gorm:"not null" json:"name"`    // 留言人
	Email     string    `gorm:"not null" json:"email"`   // 联系邮箱
	Message   string    `gorm:"type:text" json:"message"` // 留言内容
	CreatedAt time.Time `gorm:"index" json:"created_at"` // 创建时间
}

// TableName 指定表名
func (ContactMessage) TableName() string {
	return "contact_messages"
}
