package service

import (
	"github.com/relearn-next/internal/models"
	"github.com/relearn-next/internal/repository"

	"github.com/shopspring/decimal"
)

// CartItemDetail 购物车项详情（用于响应）
type CartItemDetail struct {
	CourseID  uint           `json:"course_id"`
	Quantity  int            `json:"quantity"`
	UnitPrice models.Money   `json:"unit_price"`
	LineTotal models.Money   `json:"line_total"`
	Course    *models.Course `json:"course"`
}

// CartView 购物车视图：条目、总价与可加购课程
type CartView struct {
	CartItems        []CartItemDetail `json:"cart_items"`
	GrandTotal       models.Money     `json:"grand_total"`
	AvailableCourses []models.Course  `json:"available_courses"`
}

// CartService 购物车服务，同时支持登录用户与匿名会话
type CartService struct {
	cartRepo   repository.CartRepository
	courseRepo repository.CourseRepository
}

// NewCartService 创建购物车服务
func NewCartService(cartRepo repository.CartRepository, courseRepo repository.CourseRepository) *CartService {
	return &CartService{
		cartRepo:   cartRepo,
		courseRepo: courseRepo,
	}
}

// View 获取购物车视图
func (s *CartService) View(owner repository.CartOwner) (*CartView, error) {
	if !owner.IsValid() {
		return nil, ErrCartOwnerInvalid
	}

	items, err := s.cartRepo.ListByOwner(owner)
	if err != nil {
		return nil, err
	}

	details := make([]CartItemDetail, 0, len(items))
	grandTotal := decimal.Zero
	for _, item := range items {
		unitPrice := decimal.Zero
		if item.Course != nil {
			unitPrice = item.Course.PriceAmount.Decimal
		}
		lineTotal := unitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		grandTotal = grandTotal.Add(lineTotal)
		details = append(details, CartItemDetail{
			CourseID:  item.CourseID,
			Quantity:  item.Quantity,
			UnitPrice: models.NewMoneyFromDecimal(unitPrice),
			LineTotal: models.NewMoneyFromDecimal(lineTotal),
			Course:    item.Course,
		})
	}

	available, _, err := s.courseRepo.List(repository.CourseListFilter{OnlyActive: true})
	if err != nil {
		return nil, err
	}

	return &CartView{
		CartItems:        details,
		GrandTotal:       models.NewMoneyFromDecimal(grandTotal),
		AvailableCourses: available,
	}, nil
}

// AddItem 加购课程；同一课程重复加购时数量原子累加
func (s *CartService) AddItem(owner repository.CartOwner, courseID uint, quantity int) (*models.CartItem, error) {
	if !owner.IsValid() {
		return nil, ErrCartOwnerInvalid
	}
	if courseID == 0 || quantity < 1 {
		return nil, ErrInvalidCartItem
	}

	course, err := s.courseRepo.GetByID(courseID)
	if err != nil {
		return nil, err
	}
	if course == nil || !course.IsActive {
		return nil, ErrCourseNotAvailable
	}

	return s.cartRepo.AddQuantity(owner, courseID, quantity)
}

// RemoveItem 从购物车移除课程
func (s *CartService) RemoveItem(owner repository.CartOwner, courseID uint) error {
	if !owner.IsValid() {
		return ErrCartOwnerInvalid
	}
	if courseID == 0 {
		return ErrInvalidCartItem
	}

	affected, err := s.cartRepo.DeleteByOwnerAndCourse(owner, courseID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Clear 清空购物车
func (s *CartService) Clear(owner repository.CartOwner) error {
	if !owner.IsValid() {
		return ErrCartOwnerInvalid
	}
	return s.cartRepo.ClearByOwner(owner)
}
