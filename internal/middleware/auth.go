package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"aff-commission-api/internal/constant"
	"aff-commission-api/internal/utils"
)

const WebhookTokenHeader = "X-Webhook-Token"

// WebhookToken 校验支付服务商 webhook 令牌；未配置令牌时拒绝全部请求
func WebhookToken(expected string) gin.HandlerFunc {
	return func(c *gin.Context) {
		got := c.GetHeader(WebhookTokenHeader)
		if got == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.ErrorWithTrace(constant.CodeUnauthorized, c.GetString(TraceIDKey)))
			return
		}
		if expected == "" || subtle.ConstantTimeCompare([]byte(got), []byte(expected)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.ErrorWithTrace(constant.CodeSignatureError, c.GetString(TraceIDKey)))
			return
		}
		c.Next()
	}
}
