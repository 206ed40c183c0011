package shard

import (
	"strings"
	"testing"
	"time"
)

func TestCRC32ShardStrategy(t *testing.T) {
	strategy := NewCRC32Strategy(4)
	orderID := "6f1c2a9e-3d4b-4c55-9a77-0e2b1f3c4d5e"
	shard := strategy.GetShard(orderID)
	if shard < 0 || shard >= 4 {
		t.Errorf("Shard out of range: %d", shard)
	}
	if again := strategy.GetShard(orderID); again != shard {
		t.Errorf("Shard not stable: %d vs %d", shard, again)
	}
}

func TestShardEngine_GetTable(t *testing.T) {
	engine := NewShardEngine("p_payment_event_log", 4)
	timestamp := time.Date(2025, 9, 12, 12, 0, 0, 0, time.Local)
	table := engine.GetTable("order-1", timestamp)

	expectedPrefix := "p_payment_event_log_202509_p"
	if !strings.HasPrefix(table, expectedPrefix) {
		t.Errorf("Unexpected table name: %s", table)
	}
}

func TestShardEngine_MonthTables(t *testing.T) {
	engine := NewShardEngine("p_payment_event_log", 4)
	tables := engine.MonthTables(time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC))
	if len(tables) != 4 || tables[0] != "p_payment_event_log_202501_p0" || tables[3] != "p_payment_event_log_202501_p3" {
		t.Errorf("Unexpected tables: %v", tables)
	}
}

func TestShardEngine_ZeroCount(t *testing.T) {
	engine := NewShardEngine("p_x", 0)
	if got := engine.GetTable("k", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)); got != "p_x_202501_p0" {
		t.Errorf("Unexpected table: %s", got)
	}
}
