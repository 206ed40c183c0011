package settlement

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"

	"aff-commission-api/internal/constant"
	"aff-commission-api/internal/dao"
	mainmodel "aff-commission-api/internal/model/main"
	"aff-commission-api/internal/testutil"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newTestSettlement(t *testing.T) (*Settlement, *dao.CommissionDao, func(depth int) []string) {
	t.Helper()
	db := testutil.NewTestDB(t)
	cd := dao.NewCommissionDao(db)
	s := NewSettlement(NewChainResolver(dao.NewAffiliateDao(db)), NewCalculator(), cd, quietLogger())
	return s, cd, func(depth int) []string { return testutil.SeedChain(t, db, depth) }
}

func TestChainResolver_TruncatesAtDepthThree(t *testing.T) {
	db := testutil.NewTestDB(t)
	ids := testutil.SeedChain(t, db, 4)

	chain, err := NewChainResolver(dao.NewAffiliateDao(db)).Resolve(context.Background(), ids[0])
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if chain.N1.ID != ids[0] || chain.N2.ID != ids[1] || chain.N3.ID != ids[2] {
		t.Errorf("chain = %s/%s/%s", chain.N1.ID, chain.N2.ID, chain.N3.ID)
	}
}

func TestChainResolver_StopsAtDeletedAncestor(t *testing.T) {
	db := testutil.NewTestDB(t)
	ids := testutil.SeedChain(t, db, 3)
	if err := db.Delete(&mainmodel.Affiliate{}, "id = ?", ids[1]).Error; err != nil {
		t.Fatalf("soft delete: %v", err)
	}

	chain, err := NewChainResolver(dao.NewAffiliateDao(db)).Resolve(context.Background(), ids[0])
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	// N3 仍存在，但链在已删除的 N2 处截断
	if chain.N1 == nil || chain.N2 != nil || chain.N3 != nil {
		t.Errorf("chain = %+v, want seller only", chain)
	}
}

func TestChainResolver_UnknownSeller(t *testing.T) {
	db := testutil.NewTestDB(t)
	_, err := NewChainResolver(dao.NewAffiliateDao(db)).Resolve(context.Background(), "nobody")
	var cErr constant.Error
	if !errors.As(err, &cErr) || cErr.Code() != constant.CodeAffiliateNotFound {
		t.Fatalf("err = %v, want affiliate not found", err)
	}
}

func TestDoSettlement_PersistsSplit(t *testing.T) {
	s, cd, seed := newTestSettlement(t)
	ids := seed(2)
	ctx := context.Background()

	out, err := s.DoSettlement(ctx, "order-1", 10000, ids[0])
	if err != nil {
		t.Fatalf("DoSettlement: %v", err)
	}
	if out.AlreadyProcessed || out.Split == nil || out.TotalCents != 3000 {
		t.Fatalf("unexpected outcome: %+v", out)
	}
	rows, _ := cd.ListCommissions(ctx, "order-1")
	if len(rows) != 4 {
		t.Errorf("got %d commission rows, want 4", len(rows))
	}
}

func TestDoSettlement_Idempotent(t *testing.T) {
	s, cd, seed := newTestSettlement(t)
	ids := seed(3)
	ctx := context.Background()

	if _, err := s.DoSettlement(ctx, "order-1", 10000, ids[0]); err != nil {
		t.Fatalf("first DoSettlement: %v", err)
	}
	out, err := s.DoSettlement(ctx, "order-1", 10000, ids[0])
	if err != nil {
		t.Fatalf("second DoSettlement: %v", err)
	}
	if !out.AlreadyProcessed || out.Split != nil || out.TotalCents != 3000 {
		t.Errorf("unexpected outcome: %+v", out)
	}
	rows, _ := cd.ListCommissions(ctx, "order-1")
	if len(rows) != 5 {
		t.Errorf("got %d commission rows, want 5", len(rows))
	}
}

func TestDoSettlement_UnknownSellerWritesNothing(t *testing.T) {
	s, cd, _ := newTestSettlement(t)
	ctx := context.Background()

	if _, err := s.DoSettlement(ctx, "order-1", 10000, "nobody"); err == nil {
		t.Fatal("expected error for unknown seller")
	}
	if has, _ := cd.HasSplit(ctx, "order-1"); has {
		t.Error("split written for unknown seller")
	}
}

func TestDoSettlement_InvariantFailureWritesNothing(t *testing.T) {
	db := testutil.NewTestDB(t)
	ids := testutil.SeedChain(t, db, 1)
	cd := dao.NewCommissionDao(db)

	broken := DefaultRates
	broken.HouseA = broken.HouseA.Add(broken.HouseA)
	s := NewSettlement(NewChainResolver(dao.NewAffiliateDao(db)), NewCalculatorWithRates(broken), cd, quietLogger())

	_, err := s.DoSettlement(context.Background(), "order-1", 10000, ids[0])
	var cErr constant.Error
	if !errors.As(err, &cErr) || cErr.Code() != constant.CodeCommissionInvariant {
		t.Fatalf("err = %v, want invariant violation", err)
	}
	if has, _ := cd.HasSplit(context.Background(), "order-1"); has {
		t.Error("split written despite invariant violation")
	}
}
