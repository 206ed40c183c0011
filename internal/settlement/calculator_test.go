package settlement

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"aff-commission-api/internal/constant"
	"aff-commission-api/internal/dto"
	mainmodel "aff-commission-api/internal/model/main"
)

func chainOf(depth int) dto.ReferralChain {
	ids := []string{"seller", "n2", "n3"}
	var c dto.ReferralChain
	for i := 0; i < depth; i++ {
		a := &mainmodel.Affiliate{ID: ids[i], Status: constant.AffiliateStatusActive}
		switch i {
		case 0:
			c.N1 = a
		case 1:
			c.N2 = a
		case 2:
			c.N3 = a
		}
	}
	return c
}

func TestCalculate_Scenarios(t *testing.T) {
	tests := []struct {
		name                               string
		depth                              int
		n1, n2, n3, houseA, houseB, total int64
		redistributed                      bool
	}{
		{"seller only", 1, 1500, 0, 0, 750, 750, 3000, true},
		{"seller and n2", 2, 1500, 300, 0, 600, 600, 3000, true},
		{"full chain", 3, 1500, 300, 200, 500, 500, 3000, false},
	}

	calc := NewCalculator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := calc.Calculate(10000, chainOf(tt.depth))
			if err != nil {
				t.Fatalf("Calculate: %v", err)
			}
			got := []int64{res.N1.ValueCents, res.N2.ValueCents, res.N3.ValueCents, res.HouseA.ValueCents, res.HouseB.ValueCents, res.TotalCents}
			want := []int64{tt.n1, tt.n2, tt.n3, tt.houseA, tt.houseB, tt.total}
			for i := range got {
				if got[i] != want[i] {
					t.Errorf("slot %d = %d, want %d", i, got[i], want[i])
				}
			}
			if res.RedistributionApplied != tt.redistributed {
				t.Errorf("RedistributionApplied = %v, want %v", res.RedistributionApplied, tt.redistributed)
			}
		})
	}
}

func TestCalculate_RedistributionBreakdown(t *testing.T) {
	res, err := NewCalculator().Calculate(10000, chainOf(1))
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	rd := res.Redistribution
	if !rd.UnusedPercentage.Equal(decimal.RequireFromString("0.05")) {
		t.Errorf("unused = %s, want 0.05", rd.UnusedPercentage)
	}
	if !rd.ToHouseA.Equal(decimal.RequireFromString("0.025")) || !rd.ToHouseB.Equal(decimal.RequireFromString("0.025")) {
		t.Errorf("house shares = %s / %s, want 0.025 each", rd.ToHouseA, rd.ToHouseB)
	}
	if len(rd.MissingLevels) != 2 || rd.MissingLevels[0] != constant.LevelN2 || rd.MissingLevels[1] != constant.LevelN3 {
		t.Errorf("missing levels = %v", rd.MissingLevels)
	}
	if !res.HouseA.Percentage.Equal(decimal.RequireFromString("0.075")) {
		t.Errorf("house A percentage = %s", res.HouseA.Percentage)
	}
	if res.HouseA.BeneficiaryID != nil || res.HouseB.BeneficiaryID != nil {
		t.Errorf("house slots must not carry a beneficiary id")
	}
	if res.N1.BeneficiaryID == nil || *res.N1.BeneficiaryID != "seller" {
		t.Errorf("n1 beneficiary = %v", res.N1.BeneficiaryID)
	}
}

func TestCalculate_TotalWithinTolerance(t *testing.T) {
	calc := NewCalculator()
	for depth := 1; depth <= 3; depth++ {
		for v := int64(1); v <= 20000; v++ {
			res, err := calc.Calculate(v, chainOf(depth))
			if err != nil {
				t.Fatalf("depth %d value %d: %v", depth, v, err)
			}
			diff := res.SumCents() - res.ExpectedTotalCents
			if diff < -1 || diff > 1 {
				t.Fatalf("depth %d value %d: total %d expected %d", depth, v, res.SumCents(), res.ExpectedTotalCents)
			}
			if res.HouseB.ValueCents < 0 {
				t.Fatalf("depth %d value %d: negative house B value", depth, v)
			}
		}
	}
}

func TestCalculate_PercentagesSumToTotal(t *testing.T) {
	calc := NewCalculator()
	for depth := 1; depth <= 3; depth++ {
		res, err := calc.Calculate(12345, chainOf(depth))
		if err != nil {
			t.Fatalf("Calculate: %v", err)
		}
		sum := decimal.Zero
		for _, s := range res.PersistableSlots() {
			sum = sum.Add(s.Percentage)
		}
		if !sum.Equal(DefaultRates.Total) {
			t.Errorf("depth %d: persisted percentages sum to %s", depth, sum)
		}
	}
}

func TestCalculate_RoundingResidueAbsorbedByHouseB(t *testing.T) {
	// 8 + 2 + 1 + 3 + 3 = 17，期望 15
	res, err := NewCalculator().Calculate(50, chainOf(3))
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if res.RoundingAdjustmentCents != -2 {
		t.Errorf("adjustment = %d, want -2", res.RoundingAdjustmentCents)
	}
	if res.HouseB.ValueCents != 1 || res.TotalCents != 15 {
		t.Errorf("house B = %d total = %d, want 1 / 15", res.HouseB.ValueCents, res.TotalCents)
	}
}

func TestCalculate_InvariantViolation(t *testing.T) {
	broken := DefaultRates
	broken.Seller = decimal.RequireFromString("0.20")

	_, err := NewCalculatorWithRates(broken).Calculate(10000, chainOf(3))
	if err == nil {
		t.Fatal("expected invariant violation")
	}
	var cErr constant.Error
	if !errors.As(err, &cErr) || cErr.Code() != constant.CodeCommissionInvariant {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCalculate_RejectsBadInput(t *testing.T) {
	calc := NewCalculator()
	tests := []struct {
		name  string
		value int64
		chain dto.ReferralChain
		code  int
	}{
		{"zero value", 0, chainOf(1), constant.CodeOrderAmountInvalid},
		{"negative value", -100, chainOf(1), constant.CodeOrderAmountInvalid},
		{"no seller", 10000, dto.ReferralChain{}, constant.CodeSellerMissing},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := calc.Calculate(tt.value, tt.chain)
			var cErr constant.Error
			if !errors.As(err, &cErr) || cErr.Code() != tt.code {
				t.Errorf("err = %v, want code %d", err, tt.code)
			}
		})
	}
}
