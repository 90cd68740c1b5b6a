package worker

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/relearn-next/internal/logger"
	"github.com/relearn-next/internal/provider"
	"github.com/relearn-next/internal/queue"
	"github.com/relearn-next/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskVoucherNotifyMail, c.handleVoucherNotifyMail)
}

func (c *Consumer) handleVoucherNotifyMail(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_voucher_notify_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.VoucherNotifyMailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_voucher_notify_unmarshal_failed", "error", err)
		return err
	}
	if payload.VoucherID == 0 {
		logger.Debugw("worker_voucher_notify_skip_invalid_payload", "voucher_id", payload.VoucherID)
		return nil
	}
	if c.VoucherService == nil {
		logger.Warnw("worker_voucher_notify_skip_service_nil", "voucher_id", payload.VoucherID)
		return nil
	}

	if err := c.VoucherService.NotifyOperator(payload.VoucherID); err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			logger.Debugw("worker_voucher_notify_skip_not_found", "voucher_id", payload.VoucherID)
			return nil
		case errors.Is(err, service.ErrEmailServiceNotConfigured):
			// 配置问题重试无意义
			logger.Warnw("worker_voucher_notify_skip_unconfigured", "voucher_id", payload.VoucherID)
			return nil
		default:
			logger.Warnw("worker_voucher_notify_failed", "voucher_id", payload.VoucherID, "error", err)
			return err
		}
	}
	return nil
}
