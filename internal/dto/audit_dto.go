package dto

import "time"

// PaymentEventAudit 支付事件审计载荷
type PaymentEventAudit struct {
	Event     PaymentEvent
	Result    ProcessResult
	Attempts  int
	StartTime time.Time
	CreatedAt time.Time
}
