package constant

// 系统级错误码 (1xxx)

const (
	CodeSuccess            = 0    // 操作成功
	CodeSystemError        = 1000 // 系统内部错误
	CodeDatabaseError      = 1001 // 数据库操作失败
	CodeRedisError         = 1002 // Redis缓存服务错误
	CodeInternalError      = 1003 // 内部服务错误
	CodeServiceUnavailable = 1004 // 服务暂时不可用
	CodeTimeout            = 1005 // 请求处理超时
	CodeLockConflict       = 1006 // 分布式锁冲突，同一订单正在处理中
)

// 参数错误码
const (
	CodeInvalidParams     = 1100 // 参数格式错误
	CodeMissingParams     = 1101 // 缺少必要参数
	CodeParamsFormatError = 1102 // 参数格式错误（日期、数字格式等）
	CodeParamsRangeError  = 1104 // 参数范围错误
	CodeTimestampExpired  = 1105 // 请求时间戳超出有效窗口
)

// 认证授权错误码
const (
	CodeUnauthorized     = 1200 // 未授权访问
	CodeSignatureError   = 1203 // 签名验证失败
	CodeIPNotWhitelisted = 1205 // IP不在白名单内
	CodeMerchantDisabled = 1206 // 商户账号已被禁用
)
