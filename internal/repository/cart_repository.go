package repository

import (
	"time"

	"github.com/relearn-next/internal/models"

	"gorm.io/gorm"
)

// CartRepository 购物车数据访问接口
type CartRepository interface {
	ListByOwner(owner CartOwner) ([]models.CartItem, error)
	AddQuantity(owner CartOwner, courseID uint, quantity int) (*models.CartItem, error)
	DeleteByOwnerAndCourse(owner CartOwner, courseID uint) (int64, error)
	ClearByOwner(owner CartOwner) error
}

// GormCartRepository GORM 实现
type GormCartRepository struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓库
func NewCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

func ownerScope(query *gorm.DB, owner CartOwner) *gorm.DB {
	return query.Where("user_id = ? AND session_key = ?", owner.UserID, owner.SessionKey)
}

// ListByOwner 获取归属者的购物车项
func (r *GormCartRepository) ListByOwner(owner CartOwner) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := ownerScope(r.db.Preload("Course"), owner).Order("updated_at desc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// AddQuantity 加购：首次创建行，重复加购在事务内原子累加数量
func (r *GormCartRepository) AddQuantity(owner CartOwner, courseID uint, quantity int) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := r.incrementOrCreate(tx, owner, courseID, quantity); err != nil {
			return err
		}
		return ownerScope(tx, owner).Where("course_id = ?", courseID).First(&item).Error
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *GormCartRepository) incrementOrCreate(tx *gorm.DB, owner CartOwner, courseID uint, quantity int) error {
	increment := func() (int64, error) {
		res := ownerScope(tx.Model(&models.CartItem{}), owner).
			Where("course_id = ?", courseID).
			UpdateColumns(map[string]interface{}{
				"quantity":   gorm.Expr("quantity + ?", quantity),
				"updated_at": time.Now(),
			})
		return res.RowsAffected, res.Error
	}

	affected, err := increment()
	if err != nil {
		return err
	}
	if affected > 0 {
		return nil
	}

	created := models.CartItem{
		UserID:     owner.UserID,
		SessionKey: owner.SessionKey,
		CourseID:   courseID,
		Quantity:   quantity,
	}
	createErr := tx.Create(&created).Error
	if createErr == nil {
		return nil
	}

	// 并发首次加购可能撞唯一索引，回退为累加
	affected, err = increment()
	if err != nil {
		return err
	}
	if affected == 0 {
		return createErr
	}
	return nil
}

// DeleteByOwnerAndCourse 删除购物车项
func (r *GormCartRepository) DeleteByOwnerAndCourse(owner CartOwner, courseID uint) (int64, error) {
	res := ownerScope(r.db, owner).Where("course_id = ?", courseID).Delete(&models.CartItem{})
	return res.RowsAffected, res.Error
}

// ClearByOwner 清空购物车
func (r *GormCartRepository) ClearByOwner(owner CartOwner) error {
	return ownerScope(r.db, owner).Delete(&models.CartItem{}).Error
}
