package dto

import (
	"github.com/shopspring/decimal"

	mainmodel "aff-commission-api/internal/model/main"
)

// ReferralChain 分佣链：N1 为成交推广员本人，N2/N3 可能为空
type ReferralChain struct {
	N1 *mainmodel.Affiliate
	N2 *mainmodel.Affiliate
	N3 *mainmodel.Affiliate
}

// Members 按层级顺序返回存在的推广员
func (c ReferralChain) Members() []*mainmodel.Affiliate {
	out := make([]*mainmodel.Affiliate, 0, 3)
	for _, a := range []*mainmodel.Affiliate{c.N1, c.N2, c.N3} {
		if a != nil {
			out = append(out, a)
		}
	}
	return out
}

// SplitSlot 单个受益位
type SplitSlot struct {
	Level         int8            `json:"level"`
	BeneficiaryID *string         `json:"beneficiaryId,omitempty"` // 平台受益方为空
	Percentage    decimal.Decimal `json:"percentage"`
	ValueCents    int64           `json:"valueCents"`
	Present       bool            `json:"present"`
}

// Redistribution 未被占用的层级比例如何分配给平台受益方
type Redistribution struct {
	UnusedPercentage decimal.Decimal `json:"unusedPercentage"`
	ToHouseA         decimal.Decimal `json:"toHouseA"`
	ToHouseB         decimal.Decimal `json:"toHouseB"`
	MissingLevels    []int8          `json:"missingLevels,omitempty"`
}

// SplitResult 分佣计算结果
type SplitResult struct {
	OrderValueCents       int64          `json:"orderValueCents"`
	N1                    SplitSlot      `json:"n1"`
	N2                    SplitSlot      `json:"n2"`
	N3                    SplitSlot      `json:"n3"`
	HouseA                SplitSlot      `json:"houseA"`
	HouseB                SplitSlot      `json:"houseB"`
	RedistributionApplied bool           `json:"redistributionApplied"`
	Redistribution        Redistribution `json:"redistribution"`
	TotalCents            int64          `json:"totalCents"`
	ExpectedTotalCents    int64          `json:"expectedTotalCents"`
	// RoundingAdjustmentCents 舍入残差（已并入 HouseB）
	RoundingAdjustmentCents int64 `json:"roundingAdjustmentCents,omitempty"`
}

// SumCents 五个受益位金额合计
func (r SplitResult) SumCents() int64 {
	return r.N1.ValueCents + r.N2.ValueCents + r.N3.ValueCents + r.HouseA.ValueCents + r.HouseB.ValueCents
}

// PersistableSlots 需要落库的受益位：存在的推广员层级 + 两个平台受益方
func (r SplitResult) PersistableSlots() []SplitSlot {
	out := make([]SplitSlot, 0, 5)
	for _, s := range []SplitSlot{r.N1, r.N2, r.N3, r.HouseA, r.HouseB} {
		if s.Present {
			out = append(out, s)
		}
	}
	return out
}
