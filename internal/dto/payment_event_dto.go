package dto

// PaymentEvent 经 Ingress 鉴权、解析、归一化后的支付事件
type PaymentEvent struct {
	EventType            string  `json:"eventType"`
	OrderID              string  `json:"orderId"`
	OrderValueMinorUnits int64   `json:"orderValueMinorUnits"`
	SellerAffiliateID    *string `json:"sellerAffiliateId"`
}

// ProcessResult 事件处理结果，返回给调用方（webhook 响应 / MQ 消费者）
type ProcessResult struct {
	Success                   bool    `json:"success"`
	OrderID                   string  `json:"orderId"`
	AffiliateID               *string `json:"affiliateId,omitempty"`
	CommissionsCalculated     bool    `json:"commissionsCalculated"`
	TotalCommissionMinorUnits *int64  `json:"totalCommissionMinorUnits,omitempty"`
	Error                     string  `json:"error,omitempty"`
}
