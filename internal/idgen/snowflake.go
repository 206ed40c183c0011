package idgen

import (
	"fmt"
	"log"
	"sync"

	"github.com/bwmarrin/snowflake"
)

const defaultNode = "default"

var (
	nodeMap     sync.Map // map[string]*snowflake.Node
	defaultOnce sync.Once
)

// InitNode 初始化指定名称的 Snowflake 节点
func InitNode(name string, nodeID int64) error {
	n, err := snowflake.NewNode(nodeID)
	if err != nil {
		return fmt.Errorf("InitNode failed: %w", err)
	}
	nodeMap.Store(name, n)
	return nil
}

// NewFrom 生成指定节点的 ID
func NewFrom(name string) uint64 {
	val, ok := nodeMap.Load(name)
	if !ok {
		panic(fmt.Sprintf("Snowflake node not initialized: %s", name))
	}
	return uint64(val.(*snowflake.Node).Generate().Int64())
}

// New 默认节点生成器；未显式初始化时使用节点 0（单实例 / 测试）
func New() uint64 {
	if _, ok := nodeMap.Load(defaultNode); !ok {
		defaultOnce.Do(func() {
			if _, loaded := nodeMap.Load(defaultNode); loaded {
				return
			}
			if err := InitNode(defaultNode, 0); err != nil {
				log.Fatalf("[IDGen] init fallback node failed: %v", err)
			}
		})
	}
	return NewFrom(defaultNode)
}
