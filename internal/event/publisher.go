package event

// 消息主题
const (
	TopicCommissionSettled = "commission.settled"
)

type Publisher interface {
	Publish(topic string, msg any) error
}
