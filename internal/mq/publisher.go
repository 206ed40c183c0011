package mq

import (
	"encoding/json"
	"errors"

	"github.com/sirupsen/logrus"
	"github.com/streadway/amqp"

	"aff-commission-api/internal/config"
	"aff-commission-api/internal/dal"
)

// Publisher 基于 topic 交换机的消息发布，实现 event.Publisher
type Publisher struct {
	exchange string
	log      *logrus.Logger
}

func NewPublisher(log *logrus.Logger) *Publisher {
	return &Publisher{exchange: config.C.RabbitMQ.Exchange, log: log}
}

// Publish topic 即 routing key
func (p *Publisher) Publish(topic string, msg any) error {
	ch := dal.GetChannel()
	if ch == nil {
		return errors.New("rabbitmq channel not available")
	}
	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	err = ch.Publish(p.exchange, topic, false, false, amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		ContentType:  "application/json",
		Body:         body,
	})
	if err != nil {
		p.log.WithError(err).WithField("topic", topic).Error("❌ [MQ] publish failed")
		return err
	}
	p.log.WithField("topic", topic).Debug("[MQ] published")
	return nil
}
