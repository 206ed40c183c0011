package mainmodel

import "time"

// Order 订单；AffiliateID 为成交归属推广员，只允许写入一次
type Order struct {
	ID            string    `gorm:"column:id;primaryKey;size:36" json:"id"`
	ValueCents    int64     `gorm:"column:value_cents;not null" json:"valueCents"`
	AffiliateID   *string   `gorm:"column:affiliate_id;size:36;index" json:"affiliateId,omitempty"`
	PaymentStatus string    `gorm:"column:payment_status;size:20" json:"paymentStatus"`
	CreatedAt     time.Time `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt     time.Time `gorm:"column:updated_at" json:"updatedAt"`
}

func (Order) TableName() string {
	return "orders"
}
