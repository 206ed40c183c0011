package constant

// 业务级错误码 (2xxx)

// 订单相关错误码
const (
	CodeOrderNotFound      = 2100 // 订单不存在
	CodeOrderAmountInvalid = 2103 // 订单金额无效（必须为正整数分）
)

// 推广/佣金相关错误码
const (
	CodeAffiliateNotFound    = 2300 // 推广员不存在或已删除
	CodeSellerMissing        = 2301 // 订单未归属任何推广员
	CodeCommissionInvariant  = 2302 // 分佣合计与固定总比例不符（费率表或计算缺陷）
	CodeCommissionPersist    = 2303 // 分佣写入失败
	CodePaymentEventInvalid  = 2304 // 支付事件格式不合法
	CodeWalletProviderFailed = 2305 // 钱包服务商接口异常
)

// terminalCodes 不可重试的错误码：重试只会得到同样的结果
var terminalCodes = map[int]struct{}{
	CodeInvalidParams:       {},
	CodeMissingParams:       {},
	CodeOrderNotFound:       {},
	CodeOrderAmountInvalid:  {},
	CodeAffiliateNotFound:   {},
	CodeSellerMissing:       {},
	CodeCommissionInvariant: {},
	CodePaymentEventInvalid: {},
}

// IsTerminalCode 判断错误码是否为终态错误
func IsTerminalCode(code int) bool {
	_, ok := terminalCodes[code]
	return ok
}
