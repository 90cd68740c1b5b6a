package constants

// 上传场景常量
const (
	UploadSceneVoucher = "voucher"
	UploadSceneCourse  = "course"
	UploadSceneArticle = "article"
)

// 购物车身份常量
const (
	CartSessionHeader    = "X-Session-Key"
	CartSessionKeyPrefix = "cart_"
)

// JazzCash 请求常量
const (
	JazzCashTxnTypeWallet   = "MWALLET"
	JazzCashDateTimeLayout  = "20060102150405"
	JazzCashSecureHashField = "pp_SecureHash"
)

// 队列常量
const (
	QueueDefault          = "default"
	QueueCritical         = "critical"
	TaskVoucherNotifyMail = "voucher:notify_mail"
)

// 缓存默认配置常量
const (
	RedisPrefixDefault = "rl"
)

// 员工能力常量
const (
	CapabilityArticleWrite = "article:write"
)

// 验证码场景常量
const (
	CaptchaSceneLogin    = "login"
	CaptchaSceneRegister = "register"
)
