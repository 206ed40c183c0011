package mainmodel

import (
	"time"

	"github.com/shopspring/decimal"
)

// Commission 单个受益方在单笔订单上的佣金记录
// (order_id, level) 唯一：每个订单每个受益角色最多一条
type Commission struct {
	ID          uint64          `gorm:"column:id;primaryKey;autoIncrement:false" json:"id"`
	OrderID     string          `gorm:"column:order_id;size:36;not null;uniqueIndex:uk_commission_order_level,priority:1" json:"orderId"`
	AffiliateID *string         `gorm:"column:affiliate_id;size:36;index" json:"affiliateId,omitempty"` // 平台受益方为空
	Level       int8            `gorm:"column:level;not null;uniqueIndex:uk_commission_order_level,priority:2" json:"level"`
	Percentage  decimal.Decimal `gorm:"column:percentage;type:decimal(7,4);not null" json:"percentage"`
	ValueCents  int64           `gorm:"column:value_cents;not null" json:"valueCents"`
	Status      string          `gorm:"column:status;size:16;not null;default:pending;index" json:"status"`
	CreatedAt   time.Time       `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt   time.Time       `gorm:"column:updated_at" json:"updatedAt"`
}

func (Commission) TableName() string {
	return "commissions"
}
