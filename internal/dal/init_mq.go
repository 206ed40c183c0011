package dal

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/streadway/amqp"

	"aff-commission-api/internal/config"
)

var (
	mqConn    *amqp.Connection
	mqChannel *amqp.Channel

	mu sync.Mutex

	// 用 NotifyClose 事件判断是否已关闭
	connClosedCh chan *amqp.Error
	chClosedCh   chan *amqp.Error

	reconnecting bool
)

// InitRabbitMQ 初始化（首次连接）
func InitRabbitMQ() error {
	return connect()
}

func connect() error {
	mu.Lock()
	defer mu.Unlock()

	if isConnAlive() && isChanAlive() {
		return nil
	}

	c := config.C.RabbitMQ
	log.Printf("[RabbitMQ] 🌀 connecting exchange=%s queue=%s", c.Exchange, c.Queue)

	conn, err := amqp.Dial(c.URL)
	if err != nil {
		return fmt.Errorf("dial failed: %w", err)
	}
	mqConn = conn
	connClosedCh = conn.NotifyClose(make(chan *amqp.Error, 1))

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		mqConn = nil
		connClosedCh = nil
		return fmt.Errorf("open channel failed: %w", err)
	}
	mqChannel = ch
	chClosedCh = ch.NotifyClose(make(chan *amqp.Error, 1))

	if pc := c.PrefetchCount; pc > 0 {
		if err := ch.Qos(pc, 0, false); err != nil {
			log.Printf("[RabbitMQ] ⚠️ set QoS failed: %v", err)
		}
	}

	if err := declareTopology(ch); err != nil {
		return err
	}

	log.Printf("[RabbitMQ] ✅ connected")

	// 后台监听关闭事件
	go watchClose()

	return nil
}

// declareTopology 声明分佣交换机与支付事件队列
func declareTopology(ch *amqp.Channel) error {
	c := config.C.RabbitMQ
	if err := ch.ExchangeDeclare(c.Exchange, "topic", true, false, false, false, nil); err != nil {
		return fmt.Errorf("exchange declare failed: %w", err)
	}
	if _, err := ch.QueueDeclare(c.Queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare %s failed: %w", c.Queue, err)
	}
	if err := ch.QueueBind(c.Queue, "payment.#", c.Exchange, false, nil); err != nil {
		return fmt.Errorf("queue bind %s failed: %w", c.Queue, err)
	}
	return nil
}

func watchClose() {
	for {
		select {
		case err, ok := <-connClosedCh:
			if ok {
				log.Printf("[RabbitMQ] ⚠️ connection closed: %v", err)
				reconnect()
				return
			}
		case err, ok := <-chClosedCh:
			if ok {
				log.Printf("[RabbitMQ] ⚠️ channel closed: %v", err)
				reconnect()
				return
			}
		}
	}
}

// 自愈重连（阻塞重试直至成功）
func reconnect() {
	mu.Lock()
	if reconnecting {
		mu.Unlock()
		return
	}
	reconnecting = true
	mu.Unlock()

	defer func() {
		mu.Lock()
		reconnecting = false
		mu.Unlock()
	}()

	for {
		log.Println("[RabbitMQ] 🔄 reconnecting...")
		if err := connect(); err == nil {
			log.Println("[RabbitMQ] ✅ reconnected")
			return
		}
		time.Sleep(5 * time.Second)
	}
}

func isConnAlive() bool {
	if mqConn == nil || connClosedCh == nil {
		return false
	}
	select {
	case <-connClosedCh:
		return false
	default:
		return true
	}
}

func isChanAlive() bool {
	if mqChannel == nil || chClosedCh == nil {
		return false
	}
	select {
	case <-chClosedCh:
		return false
	default:
		return true
	}
}

// GetChannel 获取可用通道，断开时先重连
func GetChannel() *amqp.Channel {
	if !isChanAlive() {
		reconnect()
	}
	return mqChannel
}
