package pagination

import (
	"strconv"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Window 归一化后的分页窗口
// Cursor 非空时按游标翻页（_id 大于游标），Offset 被忽略且不返回总数
type Window struct {
	Limit  int64
	Offset int64
	Cursor string
}

// Resolve 解析原始查询参数
// 这是面向用户的读路径：数字写坏了就回退默认值，绝不报错
func Resolve(limitRaw, offsetRaw, cursorRaw string) Window {
	limit, err := strconv.ParseInt(limitRaw, 10, 64)
	if err != nil {
		limit = DefaultLimit
	}
	if limit < 1 {
		limit = 1
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	offset, err := strconv.ParseInt(offsetRaw, 10, 64)
	if err != nil || offset < 0 {
		offset = 0
	}

	return Window{
		Limit:  limit,
		Offset: offset,
		Cursor: cursorRaw,
	}
}

// HasCursor 是否走游标分页
func (w Window) HasCursor() bool {
	return w.Cursor != ""
}

// CursorID 解析游标为 ObjectID，游标格式错误由调用方映射为 INVALID_ID
func (w Window) CursorID() (primitive.ObjectID, error) {
	return primitive.ObjectIDFromHex(w.Cursor)
}

// postSortFields Post 列表允许的排序字段白名单
var postSortFields = map[string]struct{}{
	"created_at":     {},
	"updated_at":     {},
	"likes_count":    {},
	"comments_count": {},
	"shares_count":   {},
}

// ResolveSort 归一化排序参数，未知字段回退 created_at，默认倒序
// 附加 _id 同向排序保证翻页顺序稳定
func ResolveSort(sortBy, order string) bson.D {
	if _, ok := postSortFields[sortBy]; !ok {
		sortBy = "created_at"
	}
	direction := -1
	if order == "asc" {
		direction = 1
	}
	return bson.D{{Key: sortBy, Value: direction}, {Key: "_id", Value: direction}}
}
