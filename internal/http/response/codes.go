package response

const (
	CodeOK              = 0
	CodeBadRequest      = 400
	CodeUnauthorized    = 401
	CodeForbidden       = 403
	CodeNotFound        = 404
	CodeTooManyRequests = 429
	CodeInternal        = 500
)

// httpStatusFor 业务码到 HTTP 状态码的映射
// 错误响应的 HTTP 状态与业务码保持一致
func httpStatusFor(code int) int {
	switch code {
	case CodeBadRequest, CodeUnauthorized, CodeForbidden, CodeNotFound, CodeTooManyRequests, CodeInternal:
		return code
	default:
		return 500
	}
}
