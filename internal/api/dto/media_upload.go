package dto

// MediaUploadResultDTO 上传结果，media_id 可直接引用到帖子或评论
type MediaUploadResultDTO struct {
	MediaID string `json:"media_id"`
	URL     string `json:"url"`
}
