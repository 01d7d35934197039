package dto

// ReactionDTO 表态响应
type ReactionDTO struct {
	ID         string `json:"id"`
	UserID     string `json:"user_id"`
	TargetID   string `json:"target_id"`
	TargetType string `json:"target_type"`
	ReactType  string `json:"react_type"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}

// UpsertReactionDTO 表态 - 新增或覆盖
type UpsertReactionDTO struct {
	ReactType string `json:"react_type" binding:"required,oneof=like love haha wow sad angry"`
}

// UpsertReactionResultDTO 表态 upsert 结果，is_new 区分新增与覆盖
type UpsertReactionResultDTO struct {
	Reaction *ReactionDTO `json:"reaction"`
	IsNew    bool         `json:"is_new"`
}

// ReactionListQuery 表态列表查询参数，target 取自路径
type ReactionListQuery struct {
	ReactType string `form:"react_type" binding:"omitempty,oneof=like love haha wow sad angry"`
	Limit     string `form:"limit"`
	Offset    string `form:"offset"`
	Cursor    string `form:"cursor"`
}
