package handler

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes 注册业务路由；webhookAuth 只作用于 webhook 分组
func RegisterRoutes(r *gin.Engine, webhook *WebhookHandler, commissions *CommissionHandler, webhookAuth gin.HandlerFunc) {
	v1 := r.Group("/api/v1")
	{
		hooks := v1.Group("/webhooks", webhookAuth)
		hooks.POST("/payment", webhook.PaymentWebhook)

		v1.GET("/orders/:id/commissions", commissions.OrderCommissions)
	}
	r.GET("/healthz", func(c *gin.Context) { c.String(200, "ok") })
}
