package dto

// Link HATEOAS 链接：绝对地址 + HTTP 方法
type Link struct {
	Href   string `json:"href"`
	Method string `json:"method"`
}

// Links 链接集合，键为关系名（self / update / delete / ...）
type Links map[string]Link

// Pagination 分页元数据，游标分页时 TotalItems 缺省
type Pagination struct {
	Limit      int64  `json:"limit"`
	Offset     int64  `json:"offset"`
	TotalItems *int64 `json:"total_items,omitempty"`
}

// Metadata 响应附加元数据
type Metadata struct {
	Pagination *Pagination `json:"pagination,omitempty"`
}

// SuccessResponse 成功响应封装
type SuccessResponse struct {
	Status   string      `json:"status"`
	Message  string      `json:"message,omitempty"`
	Data     interface{} `json:"data"`
	Links    Links       `json:"_links,omitempty"`
	Metadata *Metadata   `json:"metadata,omitempty"`
}

// ErrorDetail 字段级错误明细
type ErrorDetail struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// ErrorResponse 失败响应封装
type ErrorResponse struct {
	Status  string        `json:"status"`
	Code    string        `json:"code"`
	Message string        `json:"message"`
	Details []ErrorDetail `json:"details,omitempty"`
}
