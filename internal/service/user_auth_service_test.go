package service

import (
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/relearn-next/internal/repository"

	"gorm.io/gorm"
)

func newAuthService(t *testing.T) (*UserAuthService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	svc := NewUserAuthService(
		newTestConfig(),
		repository.NewUserRepository(db),
		repository.NewRefreshTokenRepository(db),
		nil,
	)
	return svc, db
}

func registerTestUser(t *testing.T, svc *UserAuthService, name, email string) uint {
	t.Helper()
	user, err := svc.Register(RegisterInput{
		FirstName: "Test",
		LastName:  "User",
		Name:      name,
		Email:     email,
		Password:  "Sup3rSecret",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	return user.ID
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	svc, _ := newAuthService(t)
	registerTestUser(t, svc, "alice", "alice@example.com")

	_, err := svc.Register(RegisterInput{Name: "alice", Email: "other@example.com", Password: "Sup3rSecret"})
	if !errors.Is(err, ErrNameExists) {
		t.Fatalf("expected name exists, got %v", err)
	}
	_, err = svc.Register(RegisterInput{Name: "alice2", Email: "alice@example.com", Password: "Sup3rSecret"})
	if !errors.Is(err, ErrEmailExists) {
		t.Fatalf("expected email exists, got %v", err)
	}
}

func TestRegisterRejectsWeakPassword(t *testing.T) {
	svc, _ := newAuthService(t)
	_, err := svc.Register(RegisterInput{Name: "bob", Email: "bob@example.com", Password: "short"})
	if !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected weak password, got %v", err)
	}
}

func TestLoginWrongPasswordIssuesNoToken(t *testing.T) {
	svc, _ := newAuthService(t)
	registerTestUser(t, svc, "carol", "carol@example.com")

	user, pair, err := svc.Login("carol", "WrongPass1")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
	if user != nil || pair != nil {
		t.Fatalf("expected no user and no token pair on failed login")
	}

	_, _, err = svc.Login("nobody", "Sup3rSecret")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials for unknown name, got %v", err)
	}
}

func TestLoginIssuesValidTokenPair(t *testing.T) {
	svc, _ := newAuthService(t)
	userID := registerTestUser(t, svc, "dave", "dave@example.com")

	user, pair, err := svc.Login("dave", "Sup3rSecret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if user.ID != userID {
		t.Fatalf("unexpected user id: %d", user.ID)
	}
	if user.LastLoginAt == nil {
		t.Fatalf("expected last login to be recorded")
	}

	claims, err := svc.ParseAccessToken(pair.AccessToken)
	if err != nil {
		t.Fatalf("parse access token failed: %v", err)
	}
	if claims.UserID != userID || claims.Name != "dave" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestRefreshRotationRejectsReplay(t *testing.T) {
	svc, _ := newAuthService(t)
	registerTestUser(t, svc, "erin", "erin@example.com")

	_, pair, err := svc.Login("erin", "Sup3rSecret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	_, rotated, err := svc.Refresh(pair.RefreshToken)
	if err != nil {
		t.Fatalf("first refresh failed: %v", err)
	}
	if rotated.RefreshToken == pair.RefreshToken {
		t.Fatalf("expected a new refresh token after rotation")
	}

	// 旧令牌单次使用，重放必须被拒绝
	if _, _, err := svc.Refresh(pair.RefreshToken); !errors.Is(err, ErrRefreshTokenInvalid) {
		t.Fatalf("expected replay to be rejected, got %v", err)
	}

	if _, _, err := svc.Refresh(rotated.RefreshToken); err != nil {
		t.Fatalf("rotated token should still work: %v", err)
	}
}

func TestRefreshRejectsGarbageToken(t *testing.T) {
	svc, _ := newAuthService(t)
	if _, _, err := svc.Refresh("not-a-jwt"); !errors.Is(err, ErrRefreshTokenInvalid) {
		t.Fatalf("expected refresh token invalid, got %v", err)
	}
}

func TestChangePasswordInvalidatesRefreshTokens(t *testing.T) {
	svc, _ := newAuthService(t)
	userID := registerTestUser(t, svc, "frank", "frank@example.com")

	_, pair, err := svc.Login("frank", "Sup3rSecret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if err := svc.ChangePassword(userID, "Sup3rSecret", "An0therSecret"); err != nil {
		t.Fatalf("change password failed: %v", err)
	}

	if _, _, err := svc.Refresh(pair.RefreshToken); !errors.Is(err, ErrRefreshTokenInvalid) {
		t.Fatalf("expected old refresh token to be revoked, got %v", err)
	}
	if _, _, err := svc.Login("frank", "An0therSecret"); err != nil {
		t.Fatalf("login with new password failed: %v", err)
	}
}

func TestPasswordResetTokenBoundToCurrentPassword(t *testing.T) {
	svc, _ := newAuthService(t)
	userID := registerTestUser(t, svc, "grace", "grace@example.com")

	user, err := svc.GetUserByID(userID)
	if err != nil || user == nil {
		t.Fatalf("load user failed: %v", err)
	}

	token := svc.makeResetToken(user, time.Now())
	uid := strconv.FormatUint(uint64(userID), 10)

	if err := svc.ConfirmPasswordReset(uid, token, "Fr3shSecret"); err != nil {
		t.Fatalf("confirm reset failed: %v", err)
	}
	if _, _, err := svc.Login("grace", "Fr3shSecret"); err != nil {
		t.Fatalf("login with reset password failed: %v", err)
	}

	// 令牌与旧密码哈希绑定，重置成功后同一令牌必须失效
	if err := svc.ConfirmPasswordReset(uid, token, "Yet4notherOne"); !errors.Is(err, ErrResetTokenInvalid) {
		t.Fatalf("expected stale reset token to be rejected, got %v", err)
	}
}

func TestPasswordResetRejectsExpiredAndMalformedTokens(t *testing.T) {
	svc, _ := newAuthService(t)
	userID := registerTestUser(t, svc, "henry", "henry@example.com")

	user, err := svc.GetUserByID(userID)
	if err != nil || user == nil {
		t.Fatalf("load user failed: %v", err)
	}

	expired := svc.makeResetToken(user, time.Now().Add(-48*time.Hour))
	if err := svc.ConfirmPasswordReset("1", expired, "Fr3shSecret"); !errors.Is(err, ErrResetTokenInvalid) {
		t.Fatalf("expected expired token to be rejected, got %v", err)
	}
	if err := svc.ConfirmPasswordReset("1", "garbage", "Fr3shSecret"); !errors.Is(err, ErrResetTokenInvalid) {
		t.Fatalf("expected malformed token to be rejected, got %v", err)
	}
	if err := svc.ConfirmPasswordReset("not-a-number", expired, "Fr3shSecret"); !errors.Is(err, ErrResetTokenInvalid) {
		t.Fatalf("expected bad uid to be rejected, got %v", err)
	}
}
