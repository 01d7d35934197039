package consts

const (
	// TokenBlacklistKey 已注销 token 签名黑名单前缀
	TokenBlacklistKey = "auth:blacklist:"

	// RateLimitKey 固定窗口限流计数前缀
	RateLimitKey = "ratelimit:"

	// PostDirtyKey 计数调整失败待校准的帖子 ID 集合
	PostDirtyKey = "counter:dirty:post"

	// CommentDirtyKey 计数调整失败待校准的评论 ID 集合
	CommentDirtyKey = "counter:dirty:comment"
)
