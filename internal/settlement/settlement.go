package settlement

import (
	"context"

	"github.com/sirupsen/logrus"

	"aff-commission-api/internal/dto"
	mainmodel "aff-commission-api/internal/model/main"
)

// SplitStore 分佣汇总的幂等检查与落库
type SplitStore interface {
	HasSplit(ctx context.Context, orderID string) (bool, error)
	GetSplit(ctx context.Context, orderID string) (*mainmodel.CommissionSplit, error)
	CreateSplit(ctx context.Context, orderID string, res dto.SplitResult) (bool, error)
}

// Outcome 一次结算的结果
type Outcome struct {
	Chain            dto.ReferralChain
	Split            *dto.SplitResult // 本次新计算的结果；幂等短路时为空
	AlreadyProcessed bool
	TotalCents       int64
}

type Settlement struct {
	resolver *ChainResolver
	calc     *Calculator
	store    SplitStore
	log      *logrus.Logger
}

func NewSettlement(resolver *ChainResolver, calc *Calculator, store SplitStore, log *logrus.Logger) *Settlement {
	return &Settlement{resolver: resolver, calc: calc, store: store, log: log}
}

// DoSettlement 处理已确认支付订单的分佣：幂等检查 -> 解析分佣链 -> 计算 -> 再次幂等检查 -> 落库
func (s *Settlement) DoSettlement(ctx context.Context, orderID string, valueCents int64, sellerID string) (Outcome, error) {
	fields := logrus.Fields{"order_id": orderID, "seller_id": sellerID, "value_cents": valueCents}

	if out, done, err := s.checkProcessed(ctx, orderID); err != nil || done {
		if done {
			s.log.WithFields(fields).Info("[SETTLEMENT] split already exists, skip")
		}
		return out, err
	}

	chain, err := s.resolver.Resolve(ctx, sellerID)
	if err != nil {
		return Outcome{}, err
	}

	res, err := s.calc.Calculate(valueCents, chain)
	if err != nil {
		return Outcome{Chain: chain}, err
	}

	// 落库前再检查一次，缩小并发重复投递的竞争窗口
	if out, done, err := s.checkProcessed(ctx, orderID); err != nil || done {
		if done {
			out.Chain = chain
			s.log.WithFields(fields).Info("[SETTLEMENT] split written concurrently, skip")
		}
		return out, err
	}

	created, err := s.store.CreateSplit(ctx, orderID, res)
	if err != nil {
		return Outcome{Chain: chain}, err
	}
	if !created {
		s.log.WithFields(fields).Warn("[SETTLEMENT] lost split insert race, treated as processed")
		return Outcome{Chain: chain, AlreadyProcessed: true, TotalCents: res.TotalCents}, nil
	}

	s.log.WithFields(fields).WithFields(logrus.Fields{
		"total_cents":     res.TotalCents,
		"redistributed":   res.RedistributionApplied,
		"rounding_adjust": res.RoundingAdjustmentCents,
	}).Info("[SETTLEMENT] ✅ commission split committed")
	return Outcome{Chain: chain, Split: &res, TotalCents: res.TotalCents}, nil
}

func (s *Settlement) checkProcessed(ctx context.Context, orderID string) (Outcome, bool, error) {
	has, err := s.store.HasSplit(ctx, orderID)
	if err != nil || !has {
		return Outcome{}, false, err
	}
	split, err := s.store.GetSplit(ctx, orderID)
	if err != nil {
		return Outcome{}, false, err
	}
	out := Outcome{AlreadyProcessed: true}
	if split != nil {
		out.TotalCents = split.TotalValueCents
	}
	return out, true, nil
}
