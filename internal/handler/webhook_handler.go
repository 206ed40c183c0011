package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"aff-commission-api/internal/constant"
	"aff-commission-api/internal/dto"
	"aff-commission-api/internal/middleware"
	mainmodel "aff-commission-api/internal/model/main"
	"aff-commission-api/internal/utils"
)

// OrderReader 订单查询；不存在返回 nil, nil
type OrderReader interface {
	GetOrder(ctx context.Context, id string) (*mainmodel.Order, error)
}

// EventProcessor 支付事件处理器
type EventProcessor interface {
	Process(ctx context.Context, ev dto.PaymentEvent) dto.ProcessResult
}

// WebhookHandler 支付服务商 webhook 入口：解析、归一化后交给处理器。
// 鉴权通过后一律返回 200，失败原因放在响应体里，避免服务商无意义重推。
type WebhookHandler struct {
	orders    OrderReader
	processor EventProcessor
	log       *logrus.Logger
}

func NewWebhookHandler(orders OrderReader, processor EventProcessor, log *logrus.Logger) *WebhookHandler {
	return &WebhookHandler{orders: orders, processor: processor, log: log}
}

// PaymentWebhook POST /api/v1/webhooks/payment
func (h *WebhookHandler) PaymentWebhook(c *gin.Context) {
	traceID := c.GetString(middleware.TraceIDKey)

	var payload dto.ProviderWebhookPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.log.WithError(err).WithField("trace_id", traceID).Warn("[WEBHOOK] invalid payload")
		c.JSON(http.StatusOK, utils.ErrorWithTrace(constant.CodeInvalidParams, traceID))
		return
	}
	orderID := payload.Payment.ExternalReference
	if orderID == "" {
		c.JSON(http.StatusOK, utils.ErrorWithTrace(constant.CodeMissingParams, traceID))
		return
	}

	fields := logrus.Fields{"trace_id": traceID, "order_id": orderID, "event": payload.Event, "payment_id": payload.Payment.ID}
	order, err := h.orders.GetOrder(c.Request.Context(), orderID)
	if err != nil {
		h.log.WithFields(fields).WithError(err).Error("[WEBHOOK] load order failed")
		c.JSON(http.StatusOK, utils.FromError(err))
		return
	}
	if order == nil {
		h.log.WithFields(fields).Warn("[WEBHOOK] order not found")
		c.JSON(http.StatusOK, utils.ErrorWithData(constant.CodeOrderNotFound, dto.ProcessResult{
			Success: false,
			OrderID: orderID,
			Error:   "order not found",
		}))
		return
	}

	// 金额以订单为准，服务商金额不一致只记录
	if pv := toMinorUnits(payload.Payment.Value); payload.Payment.Value > 0 && pv != order.ValueCents {
		h.log.WithFields(fields).WithFields(logrus.Fields{"provider_cents": pv, "order_cents": order.ValueCents}).
			Warn("[WEBHOOK] provider value differs from order value")
	}

	res := h.processor.Process(c.Request.Context(), dto.PaymentEvent{
		EventType:            payload.Event,
		OrderID:              order.ID,
		OrderValueMinorUnits: order.ValueCents,
		SellerAffiliateID:    order.AffiliateID,
	})
	if !res.Success {
		c.JSON(http.StatusOK, utils.ErrorWithData(constant.CodeSystemError, res))
		return
	}
	c.JSON(http.StatusOK, utils.Success(res))
}

func toMinorUnits(v float64) int64 {
	return decimal.NewFromFloat(v).Shift(2).Round(0).IntPart()
}
