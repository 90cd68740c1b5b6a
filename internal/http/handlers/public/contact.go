package public

import (
	"errors"

	"github.com/relearn-next/internal/http/response"
	"github.com/relearn-next/internal/service"

	"github.com/gin-gonic/gin"
)

// ContactRequest 联系留言请求
type ContactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required"`
	Message string `json:"message" binding:"required"`
}

// ContactSubmit 提交联系留言并通知运营
func (h *Handler) ContactSubmit(c *gin.Context) {
	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	record, err := h.ContactService.Submit(service.ContactInput{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidContactMessage):
			respondError(c, response.CodeBadRequest, "name and message are required", nil)
		case errors.Is(err, service.ErrInvalidEmail):
			respondError(c, response.CodeBadRequest, "invalid email", nil)
		case errors.Is(err, service.ErrEmailServiceNotConfigured),
			errors.Is(err, service.ErrEmailSendFailed):
			// 留言已入库，通知失败按上游错误返回
			respondError(c, response.CodeInternal, err.Error(), err)
		default:
			respondError(c, response.CodeInternal, "submit message failed", err)
		}
		return
	}

	response.SuccessWithMsg(c, "Message received", gin.H{"id": record.ID})
}
