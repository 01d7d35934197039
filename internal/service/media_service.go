package service

import (
	"Keystone/internal/api/dto"
	"Keystone/internal/pkg/minio"
	"context"
	"fmt"
	"io"
	"path"

	"github.com/google/uuid"
)

type MediaService interface {
	Upload(ctx context.Context, userID, filename, contentType string, reader io.Reader, size int64) (*dto.MediaUploadResultDTO, error)
}

type mediaServiceImpl struct{}

func NewMediaService() MediaService {
	return &mediaServiceImpl{}
}

// Upload 以随机对象键存储媒体文件，键中保留原始扩展名
func (s *mediaServiceImpl) Upload(ctx context.Context, userID, filename, contentType string, reader io.Reader, size int64) (*dto.MediaUploadResultDTO, error) {
	objectName := fmt.Sprintf("%s/%s%s", userID, uuid.NewString(), path.Ext(filename))
	key, err := minio.UploadFile(ctx, objectName, reader, size, contentType)
	if err != nil {
		return nil, err
	}
	return &dto.MediaUploadResultDTO{
		MediaID: key,
		URL:     minio.GetPublicURL(key),
	}, nil
}
