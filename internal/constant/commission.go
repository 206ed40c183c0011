package constant

// 支付服务商事件类型（经 Ingress 归一化后）
const (
	EventPaymentReceived             = "PAYMENT_RECEIVED"
	EventPaymentConfirmed            = "PAYMENT_CONFIRMED"
	EventPaymentSplitCancelled       = "PAYMENT_SPLIT_CANCELLED"
	EventPaymentSplitDivergenceBlock = "PAYMENT_SPLIT_DIVERGENCE_BLOCK"
	EventPaymentOverdue              = "PAYMENT_OVERDUE"
	EventPaymentRefunded             = "PAYMENT_REFUNDED"
)

// 分佣层级；平台受益方使用哨兵层级
const (
	LevelSeller int8 = 1
	LevelN2     int8 = 2
	LevelN3     int8 = 3
	LevelHouseA int8 = 90
	LevelHouseB int8 = 91
)

// 佣金状态
const (
	CommissionStatusPending   = "pending"
	CommissionStatusPaid      = "paid"
	CommissionStatusCancelled = "cancelled"
)

// 推广员状态
const (
	AffiliateStatusPending   = "pending"
	AffiliateStatusActive    = "active"
	AffiliateStatusInactive  = "inactive"
	AffiliateStatusSuspended = "suspended"
	AffiliateStatusRejected  = "rejected"
)

// 订单支付状态标注
const (
	OrderPaymentOverdue = "overdue"
)

// 告警级别
const (
	AlertLevelWarn     = "warn"
	AlertLevelCritical = "critical"
)
