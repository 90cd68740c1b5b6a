package public

import (
	"errors"

	"github.com/relearn-next/internal/http/response"
	"github.com/relearn-next/internal/service"

	"github.com/gin-gonic/gin"
)

// VoucherUpload 上传支付凭证（multipart 表单，需登录）
func (h *Handler) VoucherUpload(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	file, err := c.FormFile("voucher")
	if err != nil {
		respondError(c, response.CodeBadRequest, "voucher file is required", err)
		return
	}

	result, err := h.VoucherService.Upload(userID, file)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUploadFileMissing):
			respondError(c, response.CodeBadRequest, "voucher file is required", nil)
		case errors.Is(err, service.ErrUploadFileTooLarge),
			errors.Is(err, service.ErrUploadFileType):
			respondError(c, response.CodeBadRequest, err.Error(), nil)
		default:
			respondError(c, response.CodeInternal, "voucher upload failed", err)
		}
		return
	}

	if result.NotifyWarning != "" {
		// 凭证已保存，仅通知失败：按部分成功返回
		response.SuccessWithMsg(c, result.NotifyWarning, result)
		return
	}
	response.Created(c, "Voucher uploaded", result)
}

// VoucherList 当前用户提交的凭证记录
func (h *Handler) VoucherList(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	vouchers, err := h.VoucherRepo.ListByUser(userID)
	if err != nil {
		respondError(c, response.CodeInternal, "list vouchers failed", err)
		return
	}
	response.Success(c, vouchers)
}
