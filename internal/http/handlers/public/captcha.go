package public

import (
	"github.com/relearn-next/internal/constants"
	"github.com/relearn-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// CaptchaChallenge 下发图片验证码
func (h *Handler) CaptchaChallenge(c *gin.Context) {
	if !h.CaptchaService.Enabled() {
		response.Success(c, gin.H{"enabled": false})
		return
	}

	challenge, err := h.CaptchaService.GenerateImageChallenge()
	if err != nil {
		respondError(c, response.CodeInternal, "captcha generation failed", err)
		return
	}

	response.Success(c, gin.H{
		"enabled": true,
		"scenes": gin.H{
			"login":    h.CaptchaService.SceneEnabled(constants.CaptchaSceneLogin),
			"register": h.CaptchaService.SceneEnabled(constants.CaptchaSceneRegister),
		},
		"challenge": challenge,
	})
}
