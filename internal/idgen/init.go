package idgen

import "log"

// Init 初始化默认节点（多实例部署时每个实例配置不同 nodeId）
func Init(nodeID int64) {
	if err := InitNode(defaultNode, nodeID); err != nil {
		log.Fatalf("[IDGen] InitNode failed: %v", err)
	}
	log.Printf("[IDGen] Snowflake node initialized: nodeID=%d", nodeID)
}
