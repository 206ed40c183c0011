package constant

// ErrorInfo 错误信息结构
type ErrorInfo struct {
	CN string `json:"cn"` // 中文错误信息
	EN string `json:"en"` // 英文错误信息
}

// ErrorMessages 错误信息映射
var ErrorMessages = map[int]ErrorInfo{
	// 系统错误
	CodeSuccess:            {"操作成功", "Success"},
	CodeSystemError:        {"系统错误", "System error"},
	CodeDatabaseError:      {"数据库错误", "Database error"},
	CodeRedisError:         {"缓存服务错误", "Redis error"},
	CodeServiceUnavailable: {"服务暂时不可用", "Service unavailable"},
	CodeTimeout:            {"请求超时", "Request timeout"},

	// 参数错误
	CodeInvalidParams: {"参数格式错误", "Invalid parameters"},
	CodeMissingParams: {"缺少必要参数", "Missing parameters"},

	// 认证错误
	CodeUnauthorized:   {"未授权访问", "Unauthorized"},
	CodeSignatureError: {"令牌校验失败", "Token verification failed"},

	// 订单相关错误
	CodeOrderNotFound:      {"订单不存在", "Order not found"},
	CodeOrderAmountInvalid: {"订单金额无效", "Order amount invalid"},

	// 推广/佣金相关错误
	CodeAffiliateNotFound:    {"推广员不存在", "Affiliate not found"},
	CodeSellerMissing:        {"订单未归属推广员", "Order has no seller affiliate"},
	CodeCommissionInvariant:  {"分佣合计校验失败", "Commission split invariant violated"},
	CodeCommissionPersist:    {"分佣写入失败", "Commission persistence failed"},
	CodePaymentEventInvalid:  {"支付事件不合法", "Payment event invalid"},
	CodeWalletProviderFailed: {"钱包服务商接口异常", "Wallet provider request failed"},
}
