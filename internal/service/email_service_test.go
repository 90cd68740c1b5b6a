package service

import (
	"strings"
	"testing"

	"github.com/relearn-next/internal/config"
)

func TestEmailServiceEnabled(t *testing.T) {
	svc := NewEmailService(&config.EmailConfig{})
	if svc.Enabled() {
		t.Fatalf("empty config should not be enabled")
	}

	svc = NewEmailService(&config.EmailConfig{
		Enabled: true,
		Host:    "smtp.example.com",
		Port:    587,
		From:    "noreply@example.com",
	})
	if !svc.Enabled() {
		t.Fatalf("configured service should be enabled")
	}
}

func TestBuildEmailMessageHeaders(t *testing.T) {
	msg := buildEmailMessage("noreply@example.com", "user@example.com", "Reset your password", "click the link")
	for _, expected := range []string{
		"From: noreply@example.com",
		"To: user@example.com",
		"Subject: Reset your password",
		"Content-Type: text/plain; charset=UTF-8",
		"click the link",
	} {
		if !strings.Contains(msg, expected) {
			t.Fatalf("message missing %q:\n%s", expected, msg)
		}
	}
}

func TestBuildMultipartMessageAttachment(t *testing.T) {
	attachment := []byte{0xFF, 0xD8, 0xFF, 0xE0}
	msg := string(buildMultipartMessage(
		"noreply@example.com",
		"ops@example.com",
		"New payment voucher",
		"voucher uploaded",
		"voucher.jpg",
		attachment,
	))

	for _, expected := range []string{
		"MIME-Version: 1.0",
		"Content-Type: multipart/mixed",
		"voucher uploaded",
		`filename="voucher.jpg"`,
		"Content-Transfer-Encoding: base64",
	} {
		if !strings.Contains(msg, expected) {
			t.Fatalf("multipart message missing %q:\n%s", expected, msg)
		}
	}
	// JPEG 魔数的 base64 前缀
	if !strings.Contains(msg, "/9j/") {
		t.Fatalf("attachment body should be base64 encoded:\n%s", msg)
	}
}
