package idgen

import (
	"log"
	"os"
	"strconv"
)

// Init 初始化默认节点（支持多实例部署，SNOWFLAKE_NODE_ID 可选）
func Init(defaultNodeID int64) {
	nodeID := defaultNodeID
	if s := os.Getenv("SNOWFLAKE_NODE_ID"); s != "" {
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil || v < 0 || v > 1023 {
			log.Fatalf("[IDGen] Invalid SNOWFLAKE_NODE_ID: %v", s)
		}
		nodeID = v
	}
	if err := InitNode("default", nodeID); err != nil {
		log.Fatalf("[IDGen] InitNode failed: %v", err)
	}
	log.Printf("[IDGen] Snowflake node initialized: nodeID=%d", nodeID)
}
