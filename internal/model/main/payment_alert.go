package mainmodel

import "time"

// PaymentAlert 支付侧异常告警记录（分账取消、分账差异冻结、分佣校验失败等）
type PaymentAlert struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement:false" json:"id"`
	OrderID   string    `gorm:"column:order_id;size:36;index" json:"orderId"`
	EventType string    `gorm:"column:event_type;size:40;not null" json:"eventType"`
	Level     string    `gorm:"column:level;size:10;not null" json:"level"`
	Message   string    `gorm:"column:message;size:500" json:"message"`
	CreatedAt time.Time `gorm:"column:created_at" json:"createdAt"`
}

func (PaymentAlert) TableName() string {
	return "payment_alerts"
}
