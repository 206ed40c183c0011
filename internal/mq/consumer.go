package mq

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/streadway/amqp"

	"aff-commission-api/internal/config"
	"aff-commission-api/internal/dal"
	"aff-commission-api/internal/dto"
)

// EventProcessor 支付事件处理器
type EventProcessor interface {
	Process(ctx context.Context, ev dto.PaymentEvent) dto.ProcessResult
}

// acknowledger 便于测试替换 amqp.Delivery
type acknowledger interface {
	Ack(multiple bool) error
	Nack(multiple, requeue bool) error
}

// StartPaymentEventConsumer 消费 payment_events 队列，通道断开后自动重新订阅，ctx 取消时退出
func StartPaymentEventConsumer(ctx context.Context, processor EventProcessor, log *logrus.Logger) {
	queue := config.C.RabbitMQ.Queue
	for {
		if err := consumeOnce(ctx, queue, processor, log); err != nil {
			log.WithError(err).WithField("queue", queue).Warn("⚠️ [MQ] consumer stopped, resubscribing")
		}
		select {
		case <-ctx.Done():
			log.WithField("queue", queue).Info("[MQ] consumer exit")
			return
		case <-time.After(3 * time.Second):
		}
	}
}

func consumeOnce(ctx context.Context, queue string, processor EventProcessor, log *logrus.Logger) error {
	ch := dal.GetChannel()
	if ch == nil {
		return errors.New("rabbitmq channel not available")
	}
	msgs, err := ch.Consume(queue, "", false, false, false, false, nil)
	if err != nil {
		return err
	}
	log.WithField("queue", queue).Info("✅ [MQ] consuming payment events")
	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				return errors.New("delivery channel closed")
			}
			handleDelivery(ctx, d.Body, &d, processor, log)
		}
	}
}

// handleDelivery 成功 ack；解析失败或处理失败 nack 且不重新入队（处理器内部已重试）
func handleDelivery(ctx context.Context, body []byte, ack acknowledger, processor EventProcessor, log *logrus.Logger) {
	var ev dto.PaymentEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		log.WithError(err).Error("❌ [MQ] unmarshal payment event failed")
		_ = ack.Nack(false, false)
		return
	}

	res := processor.Process(ctx, ev)
	if !res.Success {
		log.WithFields(logrus.Fields{"order_id": ev.OrderID, "event": ev.EventType, "error": res.Error}).Error("❌ [MQ] payment event failed")
		_ = ack.Nack(false, false)
		return
	}
	_ = ack.Ack(false)
}

var _ acknowledger = (*amqp.Delivery)(nil)
