package storage

import (
	"context"
	"io"

	"tuiter-client/config"
)

// Uploader 二进制对象上传接口，返回可访问的URL
type Uploader interface {
	Upload(ctx context.Context, r io.Reader, size int64, contentType, path string) (string, error)
}

// New 根据配置选择存储后端
func New(cfg config.Config) (Uploader, error) {
	switch cfg.StorageBackend {
	case "s3":
		return NewS3Client(cfg.S3Region, cfg.S3Bucket)
	case "gcs":
		return NewGCSClient(cfg.GCSProjectID, cfg.GCSBucketName, cfg.GCSCredentialsFile)
	default:
		return NewLocalStorage(cfg.LocalStoragePath)
	}
}
