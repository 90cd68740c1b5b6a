package models

import (
	"time"
)

// CartItem 购物车项
// 归属者为登录用户或匿名会话 key，二者必居其一
// 同一归属者同一课程至多一行，重复加购累加数量
type CartItem struct {
	ID         uint      `gorm:"primarykey" json:"id"`                                                        // 主键
	UserID     uint      `gorm:"not null;default:0;uniqueIndex:idx_cart_owner_course" json:"user_id"`         // 用户ID（匿名为 0）
	SessionKey string    `gorm:"type:varchar(64);not null;default:'';uniqueIndex:idx_cart_owner_course" json:"session_key"` // 匿名会话 key（登录用户为空）
	CourseID   uint      `gorm:"not null;uniqueIndex:idx_cart_owner_course" json:"course_id"`                 // 课程ID
	Quantity   int       `gorm:"not null" json:"quantity"`                                                    // 数量
	CreatedAt  time.Time `gorm:"index" json:"created_at"`                                                     // 创建时间
	UpdatedAt  time.Time `gorm:"index" json:"updated_at"`                                                     // 更新时间

	Course *Course `gorm:"foreignKey:CourseID" json:"course,omitempty"` // 关联课程
}

// TableName 指定表名
func (CartItem) TableName() string {
	return "cart_items"
}
