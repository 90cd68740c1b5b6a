package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/relearn-next/internal/cache"
	"github.com/relearn-next/internal/config"
	"github.com/relearn-next/internal/models"
	"github.com/relearn-next/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// UserAuthService 用户认证服务
type UserAuthService struct {
	cfg          *config.Config
	userRepo     repository.UserRepository
	refreshRepo  repository.RefreshTokenRepository
	emailService *EmailService
}

// NewUserAuthService 创建用户认证服务
func NewUserAuthService(cfg *config.Config, userRepo repository.UserRepository, refreshRepo repository.RefreshTokenRepository, emailService *EmailService) *UserAuthService {
	return &UserAuthService{
		cfg:          cfg,
		userRepo:     userRepo,
		refreshRepo:  refreshRepo,
		emailService: emailService,
	}
}

// UserJWTClaims 访问令牌声明
type UserJWTClaims struct {
	UserID       uint   `json:"user_id"`
	Name         string `json:"name"`
	TokenVersion uint64 `json:"token_version"`
	jwt.RegisteredClaims
}

// RefreshJWTClaims 刷新令牌声明（jti 记录在 RegisteredClaims.ID）
type RefreshJWTClaims struct {
	UserID       uint   `json:"user_id"`
	TokenVersion uint64 `json:"token_version"`
	jwt.RegisteredClaims
}

// TokenPair 一次签发的访问/刷新令牌对
type TokenPair struct {
	AccessToken      string    `json:"access_token"`
	AccessExpiresAt  time.Time `json:"access_expires_at"`
	RefreshToken     string    `json:"refresh_token"`
	RefreshExpiresAt time.Time `json:"refresh_expires_at"`
}

// RegisterInput 注册输入
type RegisterInput struct {
	FirstName string
	LastName  string
	Name      string
	Email     string
	Password  string
}

// GenerateAccessToken 生成访问令牌
func (s *UserAuthService) GenerateAccessToken(user *models.User) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(time.Duration(resolveAccessExpireMinutes(s.cfg.JWT)) * time.Minute)
	claims := UserJWTClaims{
		UserID:       user.ID,
		Name:         user.Name,
		TokenVersion: user.TokenVersion,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.cfg.JWT.Issuer,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.cfg.JWT.SecretKey))
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// ParseAccessToken 解析访问令牌
func (s *UserAuthService) ParseAccessToken(tokenString string) (*UserJWTClaims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	claims := &UserJWTClaims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWT.SecretKey), nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*UserJWTClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}

// IssueTokenPair 签发访问/刷新令牌对，刷新令牌落库用于轮换
func (s *UserAuthService) IssueTokenPair(user *models.User) (*TokenPair, error) {
	accessToken, accessExpiresAt, err := s.GenerateAccessToken(user)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	refreshExpiresAt := now.Add(time.Duration(resolveRefreshExpireHours(s.cfg.JWT)) * time.Hour)
	tokenID := uuid.NewString()
	claims := RefreshJWTClaims{
		UserID:       user.ID,
		TokenVersion: user.TokenVersion,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenID,
			Issuer:    s.cfg.JWT.Issuer,
			ExpiresAt: jwt.NewNumericDate(refreshExpiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	refreshToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWT.SecretKey))
	if err != nil {
		return nil, err
	}

	record := &models.RefreshToken{
		TokenID:   tokenID,
		UserID:    user.ID,
		ExpiresAt: refreshExpiresAt,
		CreatedAt: now,
	}
	if err := s.refreshRepo.Create(record); err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:      accessToken,
		AccessExpiresAt:  accessExpiresAt,
		RefreshToken:     refreshToken,
		RefreshExpiresAt: refreshExpiresAt,
	}, nil
}

func (s *UserAuthService) parseRefreshToken(tokenString string) (*RefreshJWTClaims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	claims := &RefreshJWTClaims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWT.SecretKey), nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*RefreshJWTClaims); ok && token.Valid && claims.ID != "" {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}

// Register 用户注册
func (s *UserAuthService) Register(input RegisterInput) (*models.User, error) {
	name, err := normalizeName(input.Name)
	if err != nil {
		return nil, err
	}
	email, err := normalizeEmail(input.Email)
	if err != nil {
		return nil, err
	}
	if err := validatePassword(s.cfg.Security.PasswordPolicy, input.Password); err != nil {
		return nil, err
	}

	existByName, err := s.userRepo.GetByName(name)
	if err != nil {
		return nil, err
	}
	if existByName != nil {
		return nil, ErrNameExists
	}
	existByEmail, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existByEmail != nil {
		return nil, ErrEmailExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &models.User{
		Name:         name,
		Email:        email,
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		PasswordHash: string(hashedPassword),
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login 用户登录（登录名 + 密码）
func (s *UserAuthService) Login(name, password string) (*models.User, *TokenPair, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, nil, ErrInvalidCredentials
	}
	user, err := s.userRepo.GetByName(trimmed)
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, nil, ErrUserDisabled
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	pair, err := s.IssueTokenPair(user)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now()
	if err := s.userRepo.TouchLastLogin(user.ID, now); err != nil {
		return nil, nil, err
	}
	user.LastLoginAt = &now
	_ = cache.SetUserAuthState(context.Background(), cache.BuildUserAuthState(user))

	return user, pair, nil
}

// Refresh 轮换刷新令牌：旧令牌单次使用，换发后立即拉黑
func (s *UserAuthService) Refresh(refreshToken string) (*models.User, *TokenPair, error) {
	claims, err := s.parseRefreshToken(refreshToken)
	if err != nil {
		return nil, nil, ErrRefreshTokenInvalid
	}

	record, err := s.refreshRepo.GetByTokenID(claims.ID)
	if err != nil {
		return nil, nil, err
	}
	now := time.Now()
	if record == nil || record.RevokedAt != nil || record.ExpiresAt.Before(now) {
		return nil, nil, ErrRefreshTokenInvalid
	}

	user, err := s.userRepo.GetByID(claims.UserID)
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, ErrRefreshTokenInvalid
	}
	if !user.IsActive {
		return nil, nil, ErrUserDisabled
	}
	if user.TokenVersion != claims.TokenVersion {
		return nil, nil, ErrRefreshTokenInvalid
	}
	if user.TokenInvalidBefore != nil && claims.IssuedAt != nil && claims.IssuedAt.Time.Before(*user.TokenInvalidBefore) {
		return nil, nil, ErrRefreshTokenInvalid
	}

	if err := s.refreshRepo.Revoke(claims.ID, now); err != nil {
		return nil, nil, err
	}

	pair, err := s.IssueTokenPair(user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// ChangePassword 登录态修改密码，旧凭证全部失效
func (s *UserAuthService) ChangePassword(userID uint, oldPassword, newPassword string) error {
	if userID == 0 {
		return ErrNotFound
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)); err != nil {
		return ErrInvalidCredentials
	}
	if err := validatePassword(s.cfg.Security.PasswordPolicy, newPassword); err != nil {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.applyNewPassword(user, string(hashedPassword))
}

// applyNewPassword 写入新密码哈希并作废旧的访问/刷新令牌
func (s *UserAuthService) applyNewPassword(user *models.User, passwordHash string) error {
	now := time.Now()
	user.PasswordHash = passwordHash
	user.UpdatedAt = now
	user.TokenVersion++
	user.TokenInvalidBefore = &now
	if err := s.userRepo.Update(user); err != nil {
		return err
	}
	if err := s.refreshRepo.RevokeAllByUser(user.ID, now); err != nil {
		return err
	}
	_ = cache.SetUserAuthState(context.Background(), cache.BuildUserAuthState(user))
	return nil
}

// GetUserByID 获取用户信息
func (s *UserAuthService) GetUserByID(id uint) (*models.User, error) {
	if id == 0 {
		return nil, ErrNotFound
	}
	return s.userRepo.GetByID(id)
}

func normalizeEmail(email string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	if normalized == "" {
		return "", ErrInvalidEmail
	}
	if _, err := mail.ParseAddress(normalized); err != nil {
		return "", ErrInvalidEmail
	}
	return normalized, nil
}

func normalizeName(name string) (string, error) {
	normalized := strings.TrimSpace(name)
	if normalized == "" || len(normalized) > 64 {
		return "", ErrInvalidName
	}
	if strings.ContainsAny(normalized, " \t\n") {
		return "", ErrInvalidName
	}
	return normalized, nil
}

func resolveAccessExpireMinutes(cfg config.JWTConfig) int {
	if cfg.AccessExpireMinutes <= 0 {
		return 15
	}
	return cfg.AccessExpireMinutes
}

func resolveRefreshExpireHours(cfg config.JWTConfig) int {
	if cfg.RefreshExpireHours <= 0 {
		return 24
	}
	return cfg.RefreshExpireHours
}
