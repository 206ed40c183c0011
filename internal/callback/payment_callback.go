package callback

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"aff-commission-api/internal/constant"
	"aff-commission-api/internal/dto"
	"aff-commission-api/internal/event"
	"aff-commission-api/internal/notify"
	"aff-commission-api/internal/settlement"
	"aff-commission-api/internal/utils"
)

// DefaultRetryDelays 第 i 次尝试前的等待时间，总耗时约 4 秒
var DefaultRetryDelays = []time.Duration{0, 1000 * time.Millisecond, 3000 * time.Millisecond}

// Settler 已确认支付的分佣结算
type Settler interface {
	DoSettlement(ctx context.Context, orderID string, valueCents int64, sellerID string) (settlement.Outcome, error)
}

// CommissionCanceller 退款时取消订单佣金
type CommissionCanceller interface {
	CancelOrderCommissions(ctx context.Context, orderID string) (int64, error)
}

// OrderAnnotator 订单支付状态标注
type OrderAnnotator interface {
	MarkPaymentStatus(ctx context.Context, id, status string) (bool, error)
}

// AlertRecorder 告警落库
type AlertRecorder interface {
	CreateAlert(ctx context.Context, orderID, eventType, level, message string) error
}

// WalletChecker 钱包可用性校验
type WalletChecker interface {
	IsActive(ctx context.Context, walletID string) (bool, error)
}

// AuditWriter 事件处理审计
type AuditWriter interface {
	Write(ctx context.Context, audit dto.PaymentEventAudit)
}

// PaymentCallbackDeps 处理器依赖；Wallets / Publisher / Audit 可为空
type PaymentCallbackDeps struct {
	Settler      Settler
	Commissions  CommissionCanceller
	Orders       OrderAnnotator
	Alerts       AlertRecorder
	Wallets      WalletChecker
	Publisher    event.Publisher
	Audit        AuditWriter
	HouseWallets []string
	AlertChatID  string
	Log          *logrus.Logger
}

// PaymentCallback 支付事件处理器：事件类型 -> 分佣动作，外层带重试
type PaymentCallback struct {
	PaymentCallbackDeps
	retryDelays []time.Duration
}

func NewPaymentCallback(deps PaymentCallbackDeps) *PaymentCallback {
	return &PaymentCallback{PaymentCallbackDeps: deps, retryDelays: DefaultRetryDelays}
}

// WithRetryDelays 替换重试间隔（测试用）
func (c *PaymentCallback) WithRetryDelays(delays []time.Duration) *PaymentCallback {
	c.retryDelays = delays
	return c
}

// Process 处理一条归一化后的支付事件，不会 panic，失败以 success=false 返回
func (c *PaymentCallback) Process(ctx context.Context, ev dto.PaymentEvent) dto.ProcessResult {
	start := time.Now()
	fields := logrus.Fields{"order_id": ev.OrderID, "event": ev.EventType}
	c.Log.WithFields(fields).Info("📨 [CALLBACK-PAYMENT] received payment event")

	var (
		result  dto.ProcessResult
		outcome settlement.Outcome
	)
	attempts, err := utils.DoWithRetryDelays(ctx, c.retryDelays, IsRetryable, func(attempt int) error {
		var hErr error
		result, outcome, hErr = c.handle(ctx, ev)
		if hErr != nil && IsRetryable(hErr) {
			c.Log.WithFields(fields).WithError(hErr).Warnf("⚠️ [CALLBACK-PAYMENT] attempt %d failed", attempt)
		}
		return hErr
	})

	if err != nil {
		result = dto.ProcessResult{
			Success:     false,
			OrderID:     ev.OrderID,
			AffiliateID: ev.SellerAffiliateID,
			Error:       err.Error(),
		}
		c.Log.WithFields(fields).WithError(err).WithField("attempts", attempts).Error("❌ [CALLBACK-PAYMENT] event failed")
		if isCode(err, constant.CodeCommissionInvariant) {
			c.raiseAlert(ctx, ev, constant.AlertLevelCritical, "分佣不变量校验失败", err.Error(), errorData(err))
		}
	} else {
		c.Log.WithFields(fields).WithField("attempts", attempts).Info("✅ [CALLBACK-PAYMENT] event processed")
		if outcome.Split != nil {
			c.afterCommit(ctx, ev, outcome)
		}
	}

	if c.Audit != nil {
		c.Audit.Write(ctx, dto.PaymentEventAudit{
			Event:     ev,
			Result:    result,
			Attempts:  attempts,
			StartTime: start,
			CreatedAt: time.Now(),
		})
	}
	return result
}

// handle 单次尝试
func (c *PaymentCallback) handle(ctx context.Context, ev dto.PaymentEvent) (dto.ProcessResult, settlement.Outcome, error) {
	res := dto.ProcessResult{Success: true, OrderID: ev.OrderID, AffiliateID: ev.SellerAffiliateID}
	if ev.OrderID == "" {
		return res, settlement.Outcome{}, constant.NewError(constant.CodePaymentEventInvalid).
			WithData(map[string]string{"eventType": ev.EventType})
	}

	switch ev.EventType {
	case constant.EventPaymentConfirmed, constant.EventPaymentReceived:
		if ev.SellerAffiliateID == nil || *ev.SellerAffiliateID == "" {
			return res, settlement.Outcome{}, constant.NewError(constant.CodeSellerMissing).
				WithData(map[string]string{"orderId": ev.OrderID})
		}
		out, err := c.Settler.DoSettlement(ctx, ev.OrderID, ev.OrderValueMinorUnits, *ev.SellerAffiliateID)
		if err != nil {
			return res, out, err
		}
		total := out.TotalCents
		res.CommissionsCalculated = true
		res.TotalCommissionMinorUnits = &total
		return res, out, nil

	case constant.EventPaymentRefunded:
		n, err := c.Commissions.CancelOrderCommissions(ctx, ev.OrderID)
		if err != nil {
			return res, settlement.Outcome{}, err
		}
		c.Log.WithFields(logrus.Fields{"order_id": ev.OrderID, "cancelled": n}).Info("[CALLBACK-PAYMENT] commissions cancelled by refund")
		return res, settlement.Outcome{}, nil

	case constant.EventPaymentSplitCancelled, constant.EventPaymentSplitDivergenceBlock:
		msg := fmt.Sprintf("payment provider reported %s for order %s", ev.EventType, ev.OrderID)
		if err := c.Alerts.CreateAlert(ctx, ev.OrderID, ev.EventType, constant.AlertLevelCritical, msg); err != nil {
			return res, settlement.Outcome{}, err
		}
		notify.NotifyCommissionAlert(c.AlertChatID, notify.CommissionAlert{
			Level:     constant.AlertLevelCritical,
			Title:     "支付分账异常",
			OrderID:   ev.OrderID,
			EventType: ev.EventType,
			Message:   msg,
		})
		return res, settlement.Outcome{}, nil

	case constant.EventPaymentOverdue:
		ok, err := c.Orders.MarkPaymentStatus(ctx, ev.OrderID, constant.OrderPaymentOverdue)
		if err != nil {
			return res, settlement.Outcome{}, err
		}
		if !ok {
			c.Log.WithField("order_id", ev.OrderID).Warn("[CALLBACK-PAYMENT] overdue event for unknown order")
		}
		return res, settlement.Outcome{}, nil

	default:
		c.Log.WithFields(logrus.Fields{"order_id": ev.OrderID, "event": ev.EventType}).Info("[CALLBACK-PAYMENT] unsupported event, ignored")
		return res, settlement.Outcome{}, nil
	}
}

// afterCommit 分佣落库后的旁路动作：钱包校验与消息发布，失败不影响结果
func (c *PaymentCallback) afterCommit(ctx context.Context, ev dto.PaymentEvent, out settlement.Outcome) {
	c.checkWallets(ctx, ev, out.Chain)

	if c.Publisher == nil {
		return
	}
	msg := &dto.CommissionSettledMessage{
		OrderID:               ev.OrderID,
		OrderValueCents:       out.Split.OrderValueCents,
		TotalCents:            out.Split.TotalCents,
		RedistributionApplied: out.Split.RedistributionApplied,
		SettledAt:             time.Now(),
	}
	if out.Split.N1.BeneficiaryID != nil {
		msg.SellerAffiliateID = *out.Split.N1.BeneficiaryID
	}
	if err := c.Publisher.Publish(event.TopicCommissionSettled, msg); err != nil {
		c.Log.WithError(err).WithField("order_id", ev.OrderID).Warn("⚠️ [CALLBACK-PAYMENT] publish commission.settled failed")
	}
}

// checkWallets 受益方钱包不可用时只告警，分佣金额与钱包状态无关
func (c *PaymentCallback) checkWallets(ctx context.Context, ev dto.PaymentEvent, chain dto.ReferralChain) {
	if c.Wallets == nil {
		return
	}
	type target struct{ owner, walletID string }
	var targets []target
	for _, aff := range chain.Members() {
		if aff.WalletID == nil || *aff.WalletID == "" {
			c.raiseAlert(ctx, ev, constant.AlertLevelWarn, "推广员未配置钱包", "affiliate "+aff.ID+" has no wallet", nil)
			continue
		}
		targets = append(targets, target{owner: "affiliate " + aff.ID, walletID: *aff.WalletID})
	}
	for i, w := range c.HouseWallets {
		if w != "" {
			targets = append(targets, target{owner: fmt.Sprintf("house %c", 'A'+i), walletID: w})
		}
	}

	for _, t := range targets {
		active, err := c.Wallets.IsActive(ctx, t.walletID)
		if err != nil {
			c.Log.WithError(err).WithFields(logrus.Fields{"order_id": ev.OrderID, "wallet_id": t.walletID}).Warn("⚠️ [CALLBACK-PAYMENT] wallet check failed")
			continue
		}
		if !active {
			c.raiseAlert(ctx, ev, constant.AlertLevelWarn, "受益方钱包不可用",
				fmt.Sprintf("%s wallet %s is not active", t.owner, t.walletID), nil)
		}
	}
}

// raiseAlert 告警落库 + Telegram 推送；落库失败只记日志
func (c *PaymentCallback) raiseAlert(ctx context.Context, ev dto.PaymentEvent, level, title, message string, data interface{}) {
	if c.Alerts != nil {
		if err := c.Alerts.CreateAlert(ctx, ev.OrderID, ev.EventType, level, message); err != nil {
			c.Log.WithError(err).WithField("order_id", ev.OrderID).Error("[CALLBACK-PAYMENT] persist alert failed")
		}
	}
	notify.NotifyCommissionAlert(c.AlertChatID, notify.CommissionAlert{
		Level:     level,
		Title:     title,
		OrderID:   ev.OrderID,
		EventType: ev.EventType,
		Message:   message,
		Data:      data,
	})
}

// IsRetryable 终态业务错误与上下文取消不重试，其余（数据库、网络）视为瞬时错误
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var cErr constant.Error
	if errors.As(err, &cErr) {
		return !constant.IsTerminalCode(cErr.Code())
	}
	return true
}

func isCode(err error, code int) bool {
	var cErr constant.Error
	return errors.As(err, &cErr) && cErr.Code() == code
}

func errorData(err error) interface{} {
	var cErr constant.Error
	if errors.As(err, &cErr) {
		if d, ok := cErr.(interface{ Data() interface{} }); ok {
			return d.Data()
		}
	}
	return nil
}
