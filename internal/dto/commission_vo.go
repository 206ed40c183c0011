package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CommissionVO 佣金明细
type CommissionVO struct {
	ID          uint64          `json:"id,string"`
	AffiliateID *string         `json:"affiliateId,omitempty"`
	Level       int8            `json:"level"`
	Percentage  decimal.Decimal `json:"percentage"`
	ValueCents  int64           `json:"valueCents"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// CommissionSplitVO 订单分佣汇总
type CommissionSplitVO struct {
	OrderID               string          `json:"orderId"`
	OrderValueCents       int64           `json:"orderValueCents"`
	N1AffiliateID         string          `json:"n1AffiliateId"`
	N1ValueCents          int64           `json:"n1ValueCents"`
	N2AffiliateID         *string         `json:"n2AffiliateId,omitempty"`
	N2ValueCents          int64           `json:"n2ValueCents"`
	N3AffiliateID         *string         `json:"n3AffiliateId,omitempty"`
	N3ValueCents          int64           `json:"n3ValueCents"`
	HouseAPercentage      decimal.Decimal `json:"houseAPercentage"`
	HouseAValueCents      int64           `json:"houseAValueCents"`
	HouseBPercentage      decimal.Decimal `json:"houseBPercentage"`
	HouseBValueCents      int64           `json:"houseBValueCents"`
	TotalValueCents       int64           `json:"totalValueCents"`
	RedistributionApplied bool            `json:"redistributionApplied"`
}

// OrderCommissionsVO 订单佣金查询返回
type OrderCommissionsVO struct {
	Split       *CommissionSplitVO `json:"split"`
	Commissions []CommissionVO     `json:"commissions"`
}
