package settlement

import (
	"fmt"

	"github.com/shopspring/decimal"

	"aff-commission-api/internal/constant"
	"aff-commission-api/internal/dto"
	mainmodel "aff-commission-api/internal/model/main"
)

// Rates 分佣费率表；Seller + N2 + N3 + HouseA + HouseB 必须等于 Total
type Rates struct {
	Seller decimal.Decimal
	N2     decimal.Decimal
	N3     decimal.Decimal
	HouseA decimal.Decimal
	HouseB decimal.Decimal
	Total  decimal.Decimal
}

// DefaultRates 15% + 3% + 2% + 5% + 5% = 30%
var DefaultRates = Rates{
	Seller: decimal.RequireFromString("0.15"),
	N2:     decimal.RequireFromString("0.03"),
	N3:     decimal.RequireFromString("0.02"),
	HouseA: decimal.RequireFromString("0.05"),
	HouseB: decimal.RequireFromString("0.05"),
	Total:  decimal.RequireFromString("0.30"),
}

const (
	// roundingTolerance 各受益位独立四舍五入后与总额允许的偏差（分）
	roundingTolerance = 1
	// maxRoundingResidue 五个受益位各自舍入可能累积的最大偏差，超出部分只可能来自费率表或计算缺陷
	maxRoundingResidue = 2
)

var two = decimal.NewFromInt(2)

// Calculator 分佣计算（纯函数，无 I/O）
type Calculator struct {
	rates Rates
}

func NewCalculator() *Calculator {
	return &Calculator{rates: DefaultRates}
}

func NewCalculatorWithRates(r Rates) *Calculator {
	return &Calculator{rates: r}
}

func (c *Calculator) Rates() Rates {
	return c.rates
}

// Calculate 根据订单金额与分佣链计算各受益位金额。
// 缺失的 N2/N3 比例平均分给两个平台受益方，总比例保持不变。
func (c *Calculator) Calculate(valueCents int64, chain dto.ReferralChain) (dto.SplitResult, error) {
	var res dto.SplitResult
	if valueCents <= 0 {
		return res, constant.NewError(constant.CodeOrderAmountInvalid).
			WithData(map[string]interface{}{"valueCents": valueCents})
	}
	if chain.N1 == nil {
		return res, constant.NewError(constant.CodeSellerMissing)
	}

	r := c.rates
	res.OrderValueCents = valueCents

	sellerID := chain.N1.ID
	res.N1 = dto.SplitSlot{
		Level:         constant.LevelSeller,
		BeneficiaryID: &sellerID,
		Percentage:    r.Seller,
		ValueCents:    applyRate(valueCents, r.Seller),
		Present:       true,
	}

	unused := decimal.Zero
	res.N2, unused = c.ascendantSlot(constant.LevelN2, chain.N2, r.N2, valueCents, unused, &res.Redistribution)
	res.N3, unused = c.ascendantSlot(constant.LevelN3, chain.N3, r.N3, valueCents, unused, &res.Redistribution)

	half := unused.Div(two)
	houseA := r.HouseA.Add(half)
	houseB := r.HouseB.Add(half)
	res.HouseA = dto.SplitSlot{
		Level:      constant.LevelHouseA,
		Percentage: houseA,
		ValueCents: applyRate(valueCents, houseA),
		Present:    true,
	}
	res.HouseB = dto.SplitSlot{
		Level:      constant.LevelHouseB,
		Percentage: houseB,
		ValueCents: applyRate(valueCents, houseB),
		Present:    true,
	}

	res.Redistribution.UnusedPercentage = unused
	res.Redistribution.ToHouseA = half
	res.Redistribution.ToHouseB = half
	res.RedistributionApplied = unused.IsPositive()

	res.ExpectedTotalCents = applyRate(valueCents, r.Total)
	res.TotalCents = res.SumCents()

	if sum := r.Seller.Add(r.N2).Add(r.N3).Add(r.HouseA).Add(r.HouseB); !sum.Equal(r.Total) {
		return res, invariantError(res, fmt.Errorf("rate table sums to %s, want %s", sum, r.Total))
	}

	// 满链时独立舍入可能偏离 2 分（如 V=50），由平台受益方 B 吸收
	residue := res.ExpectedTotalCents - res.TotalCents
	if abs(residue) > roundingTolerance && abs(residue) <= maxRoundingResidue {
		res.HouseB.ValueCents += residue
		res.RoundingAdjustmentCents = residue
		res.TotalCents = res.SumCents()
	}

	if diff := res.TotalCents - res.ExpectedTotalCents; abs(diff) > roundingTolerance {
		return res, invariantError(res, fmt.Errorf("split total %d deviates from expected %d by %d", res.TotalCents, res.ExpectedTotalCents, diff))
	}
	return res, nil
}

func invariantError(res dto.SplitResult, cause error) error {
	return constant.NewError(constant.CodeCommissionInvariant).Wrap(cause).WithData(res)
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

// ascendantSlot 上级层级：存在则按费率分佣，否则其比例累加到待重分配池
func (c *Calculator) ascendantSlot(level int8, aff *mainmodel.Affiliate, rate decimal.Decimal, valueCents int64, unused decimal.Decimal, rd *dto.Redistribution) (dto.SplitSlot, decimal.Decimal) {
	if aff == nil {
		rd.MissingLevels = append(rd.MissingLevels, level)
		return dto.SplitSlot{Level: level, Percentage: decimal.Zero}, unused.Add(rate)
	}
	id := aff.ID
	return dto.SplitSlot{
		Level:         level,
		BeneficiaryID: &id,
		Percentage:    rate,
		ValueCents:    applyRate(valueCents, rate),
		Present:       true,
	}, unused
}

func applyRate(valueCents int64, rate decimal.Decimal) int64 {
	return decimal.NewFromInt(valueCents).Mul(rate).Round(0).IntPart()
}
