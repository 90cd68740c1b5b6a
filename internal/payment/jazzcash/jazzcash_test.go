package jazzcash

import (
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func testConfig() *Config {
	return &Config{
		GatewayURL:    "https://sandbox.jazzcash.com.pk/CustomerPortal/transactionmanagement/merchantform/",
		MerchantID:    "MC10001",
		Password:      "secret",
		IntegritySalt: "salt123",
		ReturnURL:     "https://example.com/payment/return",
		TxnRefPrefix:  "T",
	}
}

func TestBuildRequestDeterministicSignature(t *testing.T) {
	now := time.Date(2025, 3, 14, 15, 9, 26, 0, time.UTC)
	input := BuildInput{
		UnitPrice:     decimal.RequireFromString("10.00"),
		Quantity:      2,
		BillReference: "course-go-basics",
		Description:   "Go Basics",
		Now:           now,
	}

	first, err := BuildRequest(testConfig(), input)
	if err != nil {
		t.Fatalf("build request failed: %v", err)
	}
	second, err := BuildRequest(testConfig(), input)
	if err != nil {
		t.Fatalf("rebuild request failed: %v", err)
	}
	if first.Fields["pp_SecureHash"] != second.Fields["pp_SecureHash"] {
		t.Fatalf("signature not deterministic: %s vs %s",
			first.Fields["pp_SecureHash"], second.Fields["pp_SecureHash"])
	}

	input.Description = "Go Basics v2"
	changed, err := BuildRequest(testConfig(), input)
	if err != nil {
		t.Fatalf("build changed request failed: %v", err)
	}
	if changed.Fields["pp_SecureHash"] == first.Fields["pp_SecureHash"] {
		t.Fatalf("signature should change when a field changes")
	}
}

func TestBuildRequestFields(t *testing.T) {
	now := time.Date(2025, 3, 14, 15, 9, 26, 0, time.UTC)
	result, err := BuildRequest(testConfig(), BuildInput{
		UnitPrice:     decimal.RequireFromString("10.50"),
		Quantity:      3,
		BillReference: "course-go-basics",
		Description:   "Go Basics",
		Now:           now,
	})
	if err != nil {
		t.Fatalf("build request failed: %v", err)
	}

	if result.TxnRefNo != "T20250314150926" {
		t.Fatalf("unexpected txn ref: %s", result.TxnRefNo)
	}
	if got := result.Fields["pp_TxnDateTime"]; got != "20250314150926" {
		t.Fatalf("unexpected txn datetime: %s", got)
	}
	if got := result.Fields["pp_TxnExpiryDateTime"]; got != "20250314160926" {
		t.Fatalf("expected expiry one hour later, got %s", got)
	}
	// 10.50 × 3 = 31.50 → 3150 最小单位，小数部分不丢失
	if got := result.Fields["pp_Amount"]; got != "3150" {
		t.Fatalf("unexpected minor-unit amount: %s", got)
	}
	if got := result.Fields["pp_TxnType"]; got != "MWALLET" {
		t.Fatalf("unexpected txn type: %s", got)
	}
}

func TestBuildSignContentSortsAndSkipsEmpty(t *testing.T) {
	content := buildSignContent(map[string]string{
		"pp_Version":       "1.1",
		"pp_Amount":        "1000",
		"pp_SubMerchantID": "",
		"pp_SecureHash":    "SHOULD-BE-EXCLUDED",
		"pp_MerchantID":    "MC10001",
	})
	expected := "pp_Amount=1000&pp_MerchantID=MC10001&pp_Version=1.1"
	if content != expected {
		t.Fatalf("unexpected sign content:\n got=%s\nwant=%s", content, expected)
	}
}

func TestBuildRequestRejectsBadInput(t *testing.T) {
	_, err := BuildRequest(testConfig(), BuildInput{
		UnitPrice: decimal.RequireFromString("10.00"),
		Quantity:  0,
	})
	if !errors.Is(err, ErrInputInvalid) {
		t.Fatalf("expected input invalid error, got %v", err)
	}

	cfg := testConfig()
	cfg.IntegritySalt = ""
	_, err = BuildRequest(cfg, BuildInput{
		UnitPrice: decimal.RequireFromString("10.00"),
		Quantity:  1,
	})
	if !errors.Is(err, ErrConfigInvalid) {
		t.Fatalf("expected config invalid error, got %v", err)
	}
}

func TestVerifyCallbackRoundTrip(t *testing.T) {
	now := time.Date(2025, 3, 14, 15, 9, 26, 0, time.UTC)
	result, err := BuildRequest(testConfig(), BuildInput{
		UnitPrice:     decimal.RequireFromString("25.00"),
		Quantity:      1,
		BillReference: "course-sql",
		Description:   "SQL Course",
		Now:           now,
	})
	if err != nil {
		t.Fatalf("build request failed: %v", err)
	}

	form := url.Values{}
	for k, v := range result.Fields {
		form.Set(k, v)
	}
	if err := VerifyCallback(testConfig(), form); err != nil {
		t.Fatalf("expected callback signature to verify: %v", err)
	}

	form.Set("pp_Amount", "9999")
	if err := VerifyCallback(testConfig(), form); err == nil {
		t.Fatalf("expected tampered callback to fail verification")
	}
}
