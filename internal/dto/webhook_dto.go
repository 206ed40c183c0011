package dto

// ProviderWebhookPayload 支付服务商 webhook 原始报文（仅解析用到的字段）
type ProviderWebhookPayload struct {
	Event   string                 `json:"event" binding:"required"`
	Payment ProviderWebhookPayment `json:"payment"`
}

type ProviderWebhookPayment struct {
	ID                string  `json:"id"`
	ExternalReference string  `json:"externalReference"` // 平台订单号
	Value             float64 `json:"value"`
	Status            string  `json:"status"`
}
