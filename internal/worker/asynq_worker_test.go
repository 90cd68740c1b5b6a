package worker

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/relearn-next/internal/provider"
	"github.com/relearn-next/internal/queue"

	"github.com/hibiken/asynq"
)

func TestHandleVoucherNotifyMailRejectsBadPayload(t *testing.T) {
	c := NewConsumer(&provider.Container{})
	task := asynq.NewTask(queue.TaskVoucherNotifyMail, []byte("not-json"))
	if err := c.handleVoucherNotifyMail(context.Background(), task); err == nil {
		t.Fatalf("expected error for malformed payload")
	}
}

func TestHandleVoucherNotifyMailSkipsZeroVoucherID(t *testing.T) {
	c := NewConsumer(&provider.Container{})
	payload, err := json.Marshal(queue.VoucherNotifyMailPayload{VoucherID: 0})
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	task := asynq.NewTask(queue.TaskVoucherNotifyMail, payload)
	if err := c.handleVoucherNotifyMail(context.Background(), task); err != nil {
		t.Fatalf("expected nil for zero voucher id, got %v", err)
	}
}

func TestHandleVoucherNotifyMailSkipsWhenServiceMissing(t *testing.T) {
	c := NewConsumer(&provider.Container{})
	task, err := queue.NewVoucherNotifyMailTask(queue.VoucherNotifyMailPayload{VoucherID: 42})
	if err != nil {
		t.Fatalf("build task: %v", err)
	}
	if err := c.handleVoucherNotifyMail(context.Background(), task); err != nil {
		t.Fatalf("expected nil when voucher service missing, got %v", err)
	}
}
