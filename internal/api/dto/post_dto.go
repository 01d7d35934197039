package dto

// PostDTO 帖子响应
type PostDTO struct {
	ID            string   `json:"id"`
	UserID        string   `json:"user_id"`
	Content       string   `json:"content"`
	MediaIDs      []string `json:"media_ids"`
	Tags          []string `json:"tags"`
	PostShareID   *string  `json:"post_share_id"`
	GroupID       *string  `json:"group_id"`
	Visibility    string   `json:"visibility"`
	LikesCount    int64    `json:"likes_count"`
	CommentsCount int64    `json:"comments_count"`
	SharesCount   int64    `json:"shares_count"`
	IsModerated   bool     `json:"is_moderated"`
	CreatedAt     string   `json:"created_at"`
	UpdatedAt     string   `json:"updated_at"`
}

// CreatePostDTO 帖子 - 新增
type CreatePostDTO struct {
	Content     string   `json:"content" binding:"required,max=10000"`
	MediaIDs    []string `json:"media_ids"`
	Tags        []string `json:"tags"`
	PostShareID *string  `json:"post_share_id"`
	GroupID     *string  `json:"group_id"`
	Visibility  string   `json:"visibility" binding:"omitempty,oneof=public friends private"`
}

// UpdatePostDTO 帖子 - 部分更新，nil 字段不参与 $set
type UpdatePostDTO struct {
	Content    *string   `json:"content" binding:"omitempty,max=10000"`
	MediaIDs   *[]string `json:"media_ids"`
	Tags       *[]string `json:"tags"`
	Visibility *string   `json:"visibility" binding:"omitempty,oneof=public friends private"`
}

// PostListQuery 帖子列表查询参数
// limit/offset/cursor 保持字符串，由分页解析器容错处理
type PostListQuery struct {
	Q      string   `form:"q"`
	UserID string   `form:"user_id"`
	Status string   `form:"status" binding:"omitempty,oneof=true false"`
	Tags   []string `form:"tag"`
	SortBy string   `form:"sort_by"`
	Order  string   `form:"order" binding:"omitempty,oneof=asc desc"`
	Limit  string   `form:"limit"`
	Offset string   `form:"offset"`
	Cursor string   `form:"cursor"`
}
