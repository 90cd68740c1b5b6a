package public

import (
	"crypto/rand"
	"encoding/hex"
	"strings"

	"github.com/relearn-next/internal/constants"
	handlershared "github.com/relearn-next/internal/http/handlers/shared"
	"github.com/relearn-next/internal/repository"

	"github.com/gin-gonic/gin"
)

func getUserID(c *gin.Context) (uint, bool) {
	return handlershared.GetContextUint(c, "user_id")
}

// optionalUserID 读取已登录用户 ID，未登录时返回 0 且不写错误响应
func optionalUserID(c *gin.Context) uint {
	value, exists := c.Get("user_id")
	if !exists {
		return 0
	}
	if id, ok := value.(uint); ok {
		return id
	}
	return 0
}

// cartOwner 解析购物车归属：登录用户优先，匿名请求使用会话键
// 匿名请求缺少会话键时现场签发，并通过响应头回传
func cartOwner(c *gin.Context) repository.CartOwner {
	if userID := optionalUserID(c); userID != 0 {
		return repository.CartOwner{UserID: userID}
	}

	sessionKey := strings.TrimSpace(c.GetHeader(constants.CartSessionHeader))
	if sessionKey == "" || !strings.HasPrefix(sessionKey, constants.CartSessionKeyPrefix) || len(sessionKey) > 64 {
		sessionKey = mintSessionKey()
	}
	c.Header(constants.CartSessionHeader, sessionKey)
	return repository.CartOwner{SessionKey: sessionKey}
}

func mintSessionKey() string {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand 失败时进程已不可信，直接 panic
		panic(err)
	}
	return constants.CartSessionKeyPrefix + hex.EncodeToString(buf)
}
