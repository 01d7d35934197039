package consts

// CtxKey 自定义 Context Key 类型，避免与其他包冲突
type CtxKey string

// BaseURL 请求推导出的对外基础地址，用于 HATEOAS 链接生成
const BaseURL CtxKey = "base_url"

// UserIDKey 鉴权中间件注入的当前用户 ID
const UserIDKey CtxKey = "user_id"
