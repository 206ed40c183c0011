package mainmodel

import "time"

// PaymentEventLog 支付事件处理审计日志，按月 + CRC32 分表：p_payment_event_log_YYYYMM_pN
type PaymentEventLog struct {
	ID                    uint64    `gorm:"column:id;primaryKey;autoIncrement:false" json:"id"`
	OrderID               string    `gorm:"column:order_id;size:36;index" json:"orderId"`
	EventType             string    `gorm:"column:event_type;size:40" json:"eventType"`
	AffiliateID           string    `gorm:"column:affiliate_id;size:36" json:"affiliateId"`
	Success               bool      `gorm:"column:success" json:"success"`
	CommissionsCalculated bool      `gorm:"column:commissions_calculated" json:"commissionsCalculated"`
	TotalCents            int64     `gorm:"column:total_cents" json:"totalCents"`
	ErrorMsg              string    `gorm:"column:error_msg;size:500" json:"errorMsg"`
	Attempts              int       `gorm:"column:attempts" json:"attempts"`
	LatencyMs             int64     `gorm:"column:latency_ms" json:"latencyMs"`
	CreatedAt             time.Time `gorm:"column:created_at" json:"createdAt"`
}
