// Package testutil 提供测试用的内存数据库与数据构造
package testutil

import (
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"aff-commission-api/internal/constant"
	"aff-commission-api/internal/dal"
	mainmodel "aff-commission-api/internal/model/main"
)

var dbSeq int64

// NewTestDB 打开独立的内存 SQLite 并同步表结构
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, atomic.AddInt64(&dbSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := dal.AutoMigrate(db); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

// SeedAffiliate 写入推广员；referredBy 为空表示无上级
func SeedAffiliate(t *testing.T, db *gorm.DB, id, code string, referredBy *string) *mainmodel.Affiliate {
	t.Helper()
	a := &mainmodel.Affiliate{
		ID:           id,
		ReferralCode: code,
		Name:         id,
		Status:       constant.AffiliateStatusActive,
		ReferredBy:   referredBy,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	if err := db.Create(a).Error; err != nil {
		t.Fatalf("seed affiliate %s: %v", id, err)
	}
	return a
}

// SeedOrder 写入订单
func SeedOrder(t *testing.T, db *gorm.DB, id string, valueCents int64, sellerID *string) *mainmodel.Order {
	t.Helper()
	o := &mainmodel.Order{
		ID:          id,
		ValueCents:  valueCents,
		AffiliateID: sellerID,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if err := db.Create(o).Error; err != nil {
		t.Fatalf("seed order %s: %v", id, err)
	}
	return o
}

// SeedChain 写入 seller -> n2 -> n3 -> n4 的推荐链，返回各自 ID
func SeedChain(t *testing.T, db *gorm.DB, depth int) []string {
	t.Helper()
	ids := []string{"aff-n4", "aff-n3", "aff-n2", "aff-seller"}
	codes := []string{"CODE04", "CODE03", "CODE02", "CODE01"}
	ids = ids[len(ids)-depth:]
	codes = codes[len(codes)-depth:]

	var parent *string
	for i := range ids {
		SeedAffiliate(t, db, ids[i], codes[i], parent)
		id := ids[i]
		parent = &id
	}
	// seller 在前
	out := make([]string, len(ids))
	for i := range ids {
		out[i] = ids[len(ids)-1-i]
	}
	return out
}

func StrPtr(s string) *string { return &s }
