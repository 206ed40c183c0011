package mainmodel

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CommissionSplit 订单分佣汇总，一单一条；存在即代表该订单已处理（幂等标记）
type CommissionSplit struct {
	ID                    uint64          `gorm:"column:id;primaryKey;autoIncrement:false" json:"id"`
	OrderID               string          `gorm:"column:order_id;size:36;not null;uniqueIndex" json:"orderId"`
	OrderValueCents       int64           `gorm:"column:order_value_cents;not null" json:"orderValueCents"`
	N1AffiliateID         string          `gorm:"column:n1_affiliate_id;size:36;not null" json:"n1AffiliateId"`
	N1Percentage          decimal.Decimal `gorm:"column:n1_percentage;type:decimal(7,4);not null" json:"n1Percentage"`
	N1ValueCents          int64           `gorm:"column:n1_value_cents;not null" json:"n1ValueCents"`
	N2AffiliateID         *string         `gorm:"column:n2_affiliate_id;size:36" json:"n2AffiliateId,omitempty"`
	N2Percentage          decimal.Decimal `gorm:"column:n2_percentage;type:decimal(7,4);not null" json:"n2Percentage"`
	N2ValueCents          int64           `gorm:"column:n2_value_cents;not null" json:"n2ValueCents"`
	N3AffiliateID         *string         `gorm:"column:n3_affiliate_id;size:36" json:"n3AffiliateId,omitempty"`
	N3Percentage          decimal.Decimal `gorm:"column:n3_percentage;type:decimal(7,4);not null" json:"n3Percentage"`
	N3ValueCents          int64           `gorm:"column:n3_value_cents;not null" json:"n3ValueCents"`
	HouseAPercentage      decimal.Decimal `gorm:"column:house_a_percentage;type:decimal(7,4);not null" json:"houseAPercentage"`
	HouseAValueCents      int64           `gorm:"column:house_a_value_cents;not null" json:"houseAValueCents"`
	HouseBPercentage      decimal.Decimal `gorm:"column:house_b_percentage;type:decimal(7,4);not null" json:"houseBPercentage"`
	HouseBValueCents      int64           `gorm:"column:house_b_value_cents;not null" json:"houseBValueCents"`
	TotalValueCents       int64           `gorm:"column:total_value_cents;not null" json:"totalValueCents"`
	RedistributionApplied bool            `gorm:"column:redistribution_applied;not null;default:false" json:"redistributionApplied"`
	CreatedAt             time.Time       `gorm:"column:created_at" json:"createdAt"`
	DeletedAt             gorm.DeletedAt  `gorm:"column:deleted_at;index" json:"-"`
}

func (CommissionSplit) TableName() string {
	return "commission_splits"
}
