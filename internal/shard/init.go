package shard

var PaymentEventLogShard *ShardEngine

// InitShardEngines 初始化所有分片引擎
func InitShardEngines() {
	PaymentEventLogShard = NewShardEngine("p_payment_event_log", 4)
}
