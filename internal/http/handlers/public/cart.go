package public

import (
	"errors"
	"strconv"

	"github.com/relearn-next/internal/http/response"
	"github.com/relearn-next/internal/service"

	"github.com/gin-gonic/gin"
)

// CartAddRequest 加购请求
type CartAddRequest struct {
	CourseID uint `json:"course_id" binding:"required"`
	Quantity int  `json:"quantity"`
}

// CartView 购物车视图：条目、总价与可加购课程
func (h *Handler) CartView(c *gin.Context) {
	view, err := h.CartService.View(cartOwner(c))
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, view)
}

// CartAdd 加购课程，重复加购数量累加
func (h *Handler) CartAdd(c *gin.Context) {
	var req CartAddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}

	item, err := h.CartService.AddItem(cartOwner(c), req.CourseID, quantity)
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, item)
}

// CartRemove 移除购物车中的课程
func (h *Handler) CartRemove(c *gin.Context) {
	courseID, err := strconv.ParseUint(c.Param("course_id"), 10, 64)
	if err != nil || courseID == 0 {
		respondError(c, response.CodeBadRequest, "invalid course id", nil)
		return
	}

	if err := h.CartService.RemoveItem(cartOwner(c), uint(courseID)); err != nil {
		respondCartError(c, err)
		return
	}
	response.SuccessWithMsg(c, "Item removed", nil)
}

// CartClear 清空购物车
func (h *Handler) CartClear(c *gin.Context) {
	if err := h.CartService.Clear(cartOwner(c)); err != nil {
		respondCartError(c, err)
		return
	}
	response.SuccessWithMsg(c, "Cart cleared", nil)
}

func respondCartError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCartOwnerInvalid):
		respondError(c, response.CodeBadRequest, "cart identity invalid", nil)
	case errors.Is(err, service.ErrInvalidCartItem):
		respondError(c, response.CodeBadRequest, "invalid cart item", nil)
	case errors.Is(err, service.ErrCourseNotAvailable):
		respondError(c, response.CodeNotFound, "course not found", nil)
	case errors.Is(err, service.ErrNotFound):
		respondError(c, response.CodeNotFound, "cart item not found", nil)
	default:
		respondError(c, response.CodeInternal, "cart operation failed", err)
	}
}
