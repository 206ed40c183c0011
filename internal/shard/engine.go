package shard

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// ShardEngine 分表路由器
type ShardEngine struct {
	BaseTable  string
	ShardCount uint32
	Strategy   ShardStrategy
}

// NewShardEngine 创建分片引擎
func NewShardEngine(base string, count uint32) *ShardEngine {
	s := NewCRC32Strategy(count)
	return &ShardEngine{
		BaseTable:  base,
		ShardCount: s.ShardCount,
		Strategy:   s,
	}
}

// GetTable 根据业务键（订单号）和时间获取分表名
func (e *ShardEngine) GetTable(key string, t time.Time) string {
	if t.IsZero() || t.Year() < 2000 {
		logrus.Warnf("[ShardEngine] invalid time %v, fallback to now", t)
		t = time.Now()
	}
	month := t.Format("200601")
	return fmt.Sprintf("%s_%s_p%d", e.BaseTable, month, e.Strategy.GetShard(key))
}

// MonthTables 返回某月全部分表名
func (e *ShardEngine) MonthTables(t time.Time) []string {
	month := t.Format("200601")
	out := make([]string, 0, e.ShardCount)
	for i := uint32(0); i < e.ShardCount; i++ {
		out = append(out, fmt.Sprintf("%s_%s_p%d", e.BaseTable, month, i))
	}
	return out
}
