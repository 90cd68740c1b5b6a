package public

import (
	"errors"

	"github.com/relearn-next/internal/http/response"
	"github.com/relearn-next/internal/payment/jazzcash"
	"github.com/relearn-next/internal/service"

	"github.com/gin-gonic/gin"
)

// JazzCashCheckoutRequest JazzCash 下单请求
type JazzCashCheckoutRequest struct {
	CourseSlug string `json:"course_slug" binding:"required"`
	Quantity   int64  `json:"quantity"`
}

// JazzCashCheckout 构建签名后的收银台表单
func (h *Handler) JazzCashCheckout(c *gin.Context) {
	var req JazzCashCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	result, err := h.CheckoutService.BuildJazzCashRequest(service.CheckoutInput{
		CourseSlug: req.CourseSlug,
		Quantity:   req.Quantity,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound), errors.Is(err, service.ErrCourseNotAvailable):
			respondError(c, response.CodeNotFound, "course not found", nil)
		case errors.Is(err, jazzcash.ErrInputInvalid):
			respondError(c, response.CodeBadRequest, "invalid checkout input", err)
		case errors.Is(err, jazzcash.ErrConfigInvalid):
			respondError(c, response.CodeInternal, "payment gateway not configured", err)
		default:
			respondError(c, response.CodeInternal, "checkout failed", err)
		}
		return
	}

	response.Success(c, result)
}
