package constant

// 系统级错误码 (1xxx)

const (
	CodeSuccess            = 0    // 操作成功
	CodeSystemError        = 1000 // 系统内部错误
	CodeDatabaseError      = 1001 // 数据库操作失败（连接、查询、事务）
	CodeRedisError         = 1002 // Redis 缓存服务错误
	CodeServiceUnavailable = 1004 // 服务暂时不可用
	CodeTimeout            = 1005 // 请求处理超时
)

// 参数错误码
const (
	CodeInvalidParams = 1100 // 参数格式错误
	CodeMissingParams = 1101 // 缺少必要参数
)

// 认证授权错误码
const (
	CodeUnauthorized   = 1200 // 未授权访问
	CodeSignatureError = 1203 // 签名/令牌校验失败
)
