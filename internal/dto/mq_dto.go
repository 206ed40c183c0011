package dto

import "time"

// CommissionSettledMessage 分佣落库后发布的消息（报表、提现审核订阅）
type CommissionSettledMessage struct {
	OrderID               string    `json:"orderId"`
	SellerAffiliateID     string    `json:"sellerAffiliateId"`
	OrderValueCents       int64     `json:"orderValueCents"`
	TotalCents            int64     `json:"totalCents"`
	RedistributionApplied bool      `json:"redistributionApplied"`
	SettledAt             time.Time `json:"settledAt"`
}
