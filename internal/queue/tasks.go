package queue

import (
	"encoding/json"

	"github.com/relearn-next/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskVoucherNotifyMail 支付凭证运营通知任务
	TaskVoucherNotifyMail = constants.TaskVoucherNotifyMail
)

// VoucherNotifyMailPayload 凭证通知任务载荷
type VoucherNotifyMailPayload struct {
	VoucherID uint `json:"voucher_id"`
}

// NewVoucherNotifyMailTask 创建凭证通知任务
func NewVoucherNotifyMailTask(payload VoucherNotifyMailPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskVoucherNotifyMail, body), nil
}
