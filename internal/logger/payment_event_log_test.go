package logger

import (
	"context"
	"testing"
	"time"

	"aff-commission-api/internal/constant"
	"aff-commission-api/internal/dto"
	mainmodel "aff-commission-api/internal/model/main"
	"aff-commission-api/internal/shard"
	"aff-commission-api/internal/testutil"
)

func TestPaymentEventLogger_Write(t *testing.T) {
	db := testutil.NewTestDB(t)
	engine := shard.NewShardEngine("p_payment_event_log", 4)
	l := NewPaymentEventLogger(db, engine, Discard())

	now := time.Now()
	total := int64(3000)
	seller := "aff-seller"
	audit := dto.PaymentEventAudit{
		Event: dto.PaymentEvent{
			EventType:            constant.EventPaymentConfirmed,
			OrderID:              "order-1",
			OrderValueMinorUnits: 10000,
			SellerAffiliateID:    &seller,
		},
		Result:    dto.ProcessResult{Success: true, OrderID: "order-1", CommissionsCalculated: true, TotalCommissionMinorUnits: &total},
		Attempts:  1,
		StartTime: now.Add(-20 * time.Millisecond),
		CreatedAt: now,
	}
	l.Write(context.Background(), audit)
	l.Write(context.Background(), audit)

	var rows []mainmodel.PaymentEventLog
	table := engine.GetTable("order-1", now)
	if err := db.Table(table).Find(&rows).Error; err != nil {
		t.Fatalf("read %s: %v", table, err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	r := rows[0]
	if r.AffiliateID != seller || r.TotalCents != 3000 || !r.Success || r.LatencyMs < 20 {
		t.Errorf("unexpected row: %+v", r)
	}
}

func TestPaymentEventLogger_SkipsEmptyOrder(t *testing.T) {
	db := testutil.NewTestDB(t)
	engine := shard.NewShardEngine("p_payment_event_log", 4)
	l := NewPaymentEventLogger(db, engine, Discard())

	l.Write(context.Background(), dto.PaymentEventAudit{})

	for _, table := range engine.MonthTables(time.Now()) {
		if db.Migrator().HasTable(table) {
			t.Errorf("table %s created for empty event", table)
		}
	}
}
