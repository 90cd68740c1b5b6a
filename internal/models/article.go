package models

import (
	"time"

	"gorm.io/gorm"
)

// Article 博客文章表
type Article struct {
	ID        uint           `gorm:"primarykey" json:"id"`             // 主键
	Slug      string         `gorm:"uniqueIndex;not null" json:"slug"` // 唯一标识（由标题派生）
	Title     string         `gorm:"not null" json:"title"`            // 标题
	Content   string         `gorm:"type:text" json:"content"`         // 内容
	AuthorID  uint           `gorm:"index" json:"author_id"`           // 作者用户ID
	CreatedAt time.Time      `gorm:"index" json:"created_at"`          // 创建时间
	UpdatedAt time.Time      `json:"updated_at"`                       // 更新时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                   // 软删除时间
}

// TableName 指定表名
func (Article) TableName() string {
	return "articles"
}
