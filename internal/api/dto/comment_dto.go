package dto

// CommentDTO 评论响应
type CommentDTO struct {
	ID           string   `json:"id"`
	UserID       string   `json:"user_id"`
	PostID       string   `json:"post_id"`
	ParentID     *string  `json:"parent_id"`
	Content      string   `json:"content"`
	MediaIDs     []string `json:"media_ids"`
	Tags         []string `json:"tags"`
	LikesCount   int64    `json:"likes_count"`
	RepliesCount int64    `json:"replies_count"`
	CreatedAt    string   `json:"created_at"`
	UpdatedAt    string   `json:"updated_at"`
}

// CreateCommentDTO 评论 - 新增，parent_id 非空表示回复
type CreateCommentDTO struct {
	Content  string   `json:"content" binding:"required,max=2000"`
	MediaIDs []string `json:"media_ids"`
	Tags     []string `json:"tags"`
	ParentID *string  `json:"parent_id"`
}

// UpdateCommentDTO 评论 - 部分更新
type UpdateCommentDTO struct {
	Content  *string   `json:"content" binding:"omitempty,max=2000"`
	MediaIDs *[]string `json:"media_ids"`
	Tags     *[]string `json:"tags"`
}

// CommentListQuery 评论列表查询参数，post_id 取自路径
type CommentListQuery struct {
	UserID string `form:"user_id"`
	SortBy string `form:"sort_by"`
	Order  string `form:"order" binding:"omitempty,oneof=asc desc"`
	Limit  string `form:"limit"`
	Offset string `form:"offset"`
	Cursor string `form:"cursor"`
}
