package logger

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"aff-commission-api/internal/dto"
	"aff-commission-api/internal/idgen"
	mainmodel "aff-commission-api/internal/model/main"
	"aff-commission-api/internal/shard"
)

// PaymentEventLogger 支付事件审计日志，按月分表写入
type PaymentEventLogger struct {
	db       *gorm.DB
	engine   *shard.ShardEngine
	log      *logrus.Logger
	migrated sync.Map // table -> struct{}
}

func NewPaymentEventLogger(db *gorm.DB, engine *shard.ShardEngine, log *logrus.Logger) *PaymentEventLogger {
	return &PaymentEventLogger{db: db, engine: engine, log: log}
}

// Write 写入一条事件处理记录；失败只记日志，不影响事件处理结果
func (l *PaymentEventLogger) Write(ctx context.Context, audit dto.PaymentEventAudit) {
	if audit.Event.OrderID == "" {
		l.log.Warn("[AuditLogger] empty order id, skip")
		return
	}
	if audit.CreatedAt.IsZero() {
		audit.CreatedAt = time.Now()
	}
	table := l.engine.GetTable(audit.Event.OrderID, audit.CreatedAt)

	entry := mainmodel.PaymentEventLog{
		ID:                    idgen.New(),
		OrderID:               audit.Event.OrderID,
		EventType:             audit.Event.EventType,
		Success:               audit.Result.Success,
		CommissionsCalculated: audit.Result.CommissionsCalculated,
		ErrorMsg:              truncate(audit.Result.Error, 500),
		Attempts:              audit.Attempts,
		CreatedAt:             audit.CreatedAt,
	}
	if audit.Event.SellerAffiliateID != nil {
		entry.AffiliateID = *audit.Event.SellerAffiliateID
	}
	if audit.Result.TotalCommissionMinorUnits != nil {
		entry.TotalCents = *audit.Result.TotalCommissionMinorUnits
	}
	if !audit.StartTime.IsZero() {
		entry.LatencyMs = audit.CreatedAt.Sub(audit.StartTime).Milliseconds()
	}

	if err := l.ensureTable(ctx, table); err != nil {
		l.log.WithError(err).WithField("table", table).Error("[AuditLogger] migrate table failed")
		return
	}
	if err := l.db.WithContext(ctx).Table(table).Create(&entry).Error; err != nil {
		l.log.WithError(err).WithFields(logrus.Fields{"table": table, "order_id": entry.OrderID}).Error("[AuditLogger] write failed")
	}
}

// ensureTable 每个分表在进程内只建表一次
func (l *PaymentEventLogger) ensureTable(ctx context.Context, table string) error {
	if _, ok := l.migrated.Load(table); ok {
		return nil
	}
	if err := l.db.WithContext(ctx).Table(table).AutoMigrate(&mainmodel.PaymentEventLog{}); err != nil {
		return err
	}
	l.migrated.Store(table, struct{}{})
	return nil
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
