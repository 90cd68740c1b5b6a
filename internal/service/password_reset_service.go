package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/relearn-next/internal/logger"
	"github.com/relearn-next/internal/models"
)

// RequestPasswordReset 发起密码重置
// 邮箱不存在时静默返回，避免账号枚举
func (s *UserAuthService) RequestPasswordReset(email string) error {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return err
	}

	user, err := s.userRepo.GetByEmail(normalized)
	if err != nil {
		return err
	}
	if user == nil || !user.IsActive {
		logger.Infow("password_reset_request_skipped", "email", normalized)
		return nil
	}

	if s.emailService == nil || !s.emailService.Enabled() {
		return ErrEmailServiceNotConfigured
	}

	token := s.makeResetToken(user, time.Now())
	link := fmt.Sprintf("%s/reset/%d/%s",
		strings.TrimRight(s.cfg.Security.FrontendBaseURL, "/"), user.ID, token)

	if err := s.emailService.SendPasswordResetEmail(user.Email, user.Name, link); err != nil {
		return fmt.Errorf("%w: %v", ErrEmailSendFailed, err)
	}

	logger.Infow("password_reset_mail_sent", "user_id", user.ID)
	return nil
}

// ConfirmPasswordReset 校验重置令牌并落盘新密码
// 成功后旧访问令牌与全部刷新令牌立即失效
func (s *UserAuthService) ConfirmPasswordReset(uid, token, newPassword string) error {
	userID, err := strconv.ParseUint(uid, 10, 64)
	if err != nil || userID == 0 {
		return ErrResetTokenInvalid
	}

	user, err := s.userRepo.GetByID(uint(userID))
	if err != nil {
		return err
	}
	if user == nil || !user.IsActive {
		return ErrResetTokenInvalid
	}

	if !s.verifyResetToken(user, token) {
		return ErrResetTokenInvalid
	}

	if err := validatePassword(s.cfg.Security.PasswordPolicy, newPassword); err != nil {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.applyNewPassword(user, string(hashedPassword)); err != nil {
		return err
	}

	logger.Infow("password_reset_confirmed", "user_id", user.ID)
	return nil
}

// makeResetToken 基于当前密码哈希派生一次性令牌
// 密码一旦变更，旧令牌的 HMAC 无法再对上，无需存储即可作废
func (s *UserAuthService) makeResetToken(user *models.User, now time.Time) string {
	ts := now.Unix()
	return strconv.FormatInt(ts, 36) + "-" + s.resetTokenDigest(user, ts)
}

func (s *UserAuthService) verifyResetToken(user *models.User, token string) bool {
	tsPart, digest, ok := strings.Cut(token, "-")
	if !ok || digest == "" {
		return false
	}
	ts, err := strconv.ParseInt(tsPart, 36, 64)
	if err != nil {
		return false
	}

	maxAge := time.Duration(resolveResetExpireHours(s.cfg.Security.ResetExpireHours)) * time.Hour
	issuedAt := time.Unix(ts, 0)
	if issuedAt.After(time.Now()) || time.Since(issuedAt) > maxAge {
		return false
	}

	expected := s.resetTokenDigest(user, ts)
	return subtle.ConstantTimeCompare([]byte(expected), []byte(digest)) == 1
}

func (s *UserAuthService) resetTokenDigest(user *models.User, ts int64) string {
	payload := fmt.Sprintf("%d:%s:%d", user.ID, user.PasswordHash, ts)
	mac := hmac.New(sha256.New, []byte(s.cfg.JWT.SecretKey))
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))[:40]
}

func resolveResetExpireHours(hours int) int {
	if hours <= 0 {
		return 24
	}
	return hours
}
