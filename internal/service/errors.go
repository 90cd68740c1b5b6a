package service

import "errors"

// 业务错误定义，handler 层通过 errors.Is 映射为响应码
var (
	ErrNotFound           = errors.New("record not found")
	ErrInvalidEmail       = errors.New("invalid email")
	ErrInvalidName        = errors.New("invalid name")
	ErrNameExists         = errors.New("name already taken")
	ErrEmailExists        = errors.New("email already registered")
	ErrWeakPassword       = errors.New("password too weak")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserDisabled       = errors.New("user disabled")

	ErrRefreshTokenInvalid = errors.New("refresh token invalid")
	ErrResetTokenInvalid   = errors.New("reset token invalid")

	ErrCourseNotAvailable = errors.New("course not available")
	ErrInvalidCartItem    = errors.New("invalid cart item")
	ErrCartOwnerInvalid   = errors.New("cart owner invalid")

	ErrSlugExists  = errors.New("slug already exists")
	ErrSlugInvalid = errors.New("slug invalid")

	ErrInvalidContactMessage = errors.New("invalid contact message")

	ErrEmailServiceNotConfigured = errors.New("email service not configured")
	ErrEmailSendFailed           = errors.New("email send failed")

	ErrCaptchaRequired = errors.New("captcha required")
	ErrCaptchaInvalid  = errors.New("captcha invalid")

	ErrUploadFileMissing  = errors.New("upload file missing")
	ErrUploadFileTooLarge = errors.New("upload file too large")
	ErrUploadFileType     = errors.New("upload file type not allowed")
)
