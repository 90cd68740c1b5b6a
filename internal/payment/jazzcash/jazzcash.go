package jazzcash

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/relearn-next/internal/constants"

	"github.com/shopspring/decimal"
)

var (
	ErrConfigInvalid = errors.New("jazzcash config invalid")
	ErrInputInvalid  = errors.New("jazzcash input invalid")
)

// Config JazzCash 托管收银台配置
type Config struct {
	GatewayURL    string `json:"gateway_url"`    // 收银台地址
	MerchantID    string `json:"merchant_id"`    // 商户号
	Password      string `json:"password"`       // 商户密码
	IntegritySalt string `json:"integrity_salt"` // 签名盐
	ReturnURL     string `json:"return_url"`     // 同步跳转地址
	TxnRefPrefix  string `json:"txn_ref_prefix"` // 交易号前缀
	Currency      string `json:"currency"`       // 币种
	Language      string `json:"language"`       // 语言
	Version       string `json:"version"`        // 接口版本
	ExpiryHours   int    `json:"expiry_hours"`   // 交易有效期（小时）
}

// BuildInput 构建支付请求的输入
type BuildInput struct {
	UnitPrice     decimal.Decimal // 单价（主币种单位）
	Quantity      int64
	BillReference string
	Description   string
	Now           time.Time // 为零值时取当前时间
}

// BuildResult 构建支付请求的结果
type BuildResult struct {
	GatewayURL string            `json:"gateway_url"`
	TxnRefNo   string            `json:"txn_ref_no"`
	Fields     map[string]string `json:"fields"` // 含 pp_SecureHash，按表单提交
}

func (c *Config) normalize() {
	c.TxnRefPrefix = strings.TrimSpace(c.TxnRefPrefix)
	if c.TxnRefPrefix == "" {
		c.TxnRefPrefix = "T"
	}
	if strings.TrimSpace(c.Currency) == "" {
		c.Currency = "PKR"
	}
	if strings.TrimSpace(c.Language) == "" {
		c.Language = "EN"
	}
	if strings.TrimSpace(c.Version) == "" {
		c.Version = "1.1"
	}
	if c.ExpiryHours <= 0 {
		c.ExpiryHours = 1
	}
}

// ValidateConfig 校验配置完整性
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("%w: config is nil", ErrConfigInvalid)
	}
	if strings.TrimSpace(cfg.GatewayURL) == "" {
		return fmt.Errorf("%w: gateway_url is required", ErrConfigInvalid)
	}
	if strings.TrimSpace(cfg.MerchantID) == "" {
		return fmt.Errorf("%w: merchant_id is required", ErrConfigInvalid)
	}
	if strings.TrimSpace(cfg.Password) == "" {
		return fmt.Errorf("%w: password is required", ErrConfigInvalid)
	}
	if strings.TrimSpace(cfg.IntegritySalt) == "" {
		return fmt.Errorf("%w: integrity_salt is required", ErrConfigInvalid)
	}
	return nil
}

// BuildRequest 构建签名后的收银台表单请求
// 金额按最小币种单位提交（decimal 精确计算，单价×数量后移两位小数）
func BuildRequest(cfg *Config, input BuildInput) (*BuildResult, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	cfg.normalize()
	if input.Quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be >= 1", ErrInputInvalid)
	}
	if input.UnitPrice.IsNegative() || input.UnitPrice.IsZero() {
		return nil, fmt.Errorf("%w: unit price must be positive", ErrInputInvalid)
	}

	now := input.Now
	if now.IsZero() {
		now = time.Now()
	}
	expiry := now.Add(time.Duration(cfg.ExpiryHours) * time.Hour)

	txnRefNo := cfg.TxnRefPrefix + now.Format(constants.JazzCashDateTimeLayout)
	amountMinor := minorUnits(input.UnitPrice, input.Quantity)

	fields := map[string]string{
		"pp_Version":           cfg.Version,
		"pp_TxnType":           constants.JazzCashTxnTypeWallet,
		"pp_Language":          cfg.Language,
		"pp_MerchantID":        cfg.MerchantID,
		"pp_SubMerchantID":     "",
		"pp_Password":          cfg.Password,
		"pp_TxnRefNo":          txnRefNo,
		"pp_Amount":            amountMinor,
		"pp_TxnCurrency":       cfg.Currency,
		"pp_TxnDateTime":       now.Format(constants.JazzCashDateTimeLayout),
		"pp_TxnExpiryDateTime": expiry.Format(constants.JazzCashDateTimeLayout),
		"pp_BillReference":     strings.TrimSpace(input.BillReference),
		"pp_Description":       strings.TrimSpace(input.Description),
		"pp_ReturnURL":         cfg.ReturnURL,
	}
	fields[constants.JazzCashSecureHashField] = signHMAC(buildSignContent(fields), cfg.IntegritySalt)

	return &BuildResult{
		GatewayURL: strings.TrimSpace(cfg.GatewayURL),
		TxnRefNo:   txnRefNo,
		Fields:     fields,
	}, nil
}

// buildSignContent 签名串：键升序、剔除空值与签名字段本身，key=value 以 & 连接
// 网关按字节比对该格式，任何偏差都会被拒绝
func buildSignContent(fields map[string]string) string {
	var keys []string
	for k, v := range fields {
		if v == "" {
			continue
		}
		if k == constants.JazzCashSecureHashField {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, fmt.Sprintf("%s=%s", k, fields[k]))
	}
	return strings.Join(pairs, "&")
}

func signHMAC(content, salt string) string {
	mac := hmac.New(sha256.New, []byte(salt))
	mac.Write([]byte(content))
	return strings.ToUpper(hex.EncodeToString(mac.Sum(nil)))
}

// minorUnits 单价×数量后转为最小币种单位的整数串
func minorUnits(unitPrice decimal.Decimal, quantity int64) string {
	total := unitPrice.Mul(decimal.NewFromInt(quantity)).Shift(2)
	return total.Round(0).String()
}

// VerifyCallback 验证网关回调签名
func VerifyCallback(cfg *Config, form map[string][]string) error {
	if err := ValidateConfig(cfg); err != nil {
		return err
	}
	received := ""
	fields := make(map[string]string, len(form))
	for key, values := range form {
		if len(values) == 0 {
			continue
		}
		if key == constants.JazzCashSecureHashField {
			received = strings.TrimSpace(values[0])
			continue
		}
		if strings.HasPrefix(key, "pp_") {
			fields[key] = values[0]
		}
	}
	if received == "" {
		return fmt.Errorf("%w: secure hash missing", ErrInputInvalid)
	}
	expected := signHMAC(buildSignContent(fields), cfg.IntegritySalt)
	if !hmac.Equal([]byte(expected), []byte(strings.ToUpper(received))) {
		return fmt.Errorf("%w: secure hash mismatch", ErrInputInvalid)
	}
	return nil
}
