package cmd

import (
	"fmt"

	"github.com/rs/zerolog"

	"galleroon/azureclient"
	"galleroon/config"
	"galleroon/s3client"
	"galleroon/storage"
	"galleroon/supabase"
)

// openBucket 根据配置的后端创建 storage.Bucket
func openBucket(cfg *config.GalleryConfig, log zerolog.Logger) (storage.Bucket, error) {
	switch cfg.Backend {
	case config.BackendSupabase:
		client, err := supabase.NewClient(cfg.Supabase.URL, cfg.Bucket, cfg.Supabase.Key,
			supabase.WithRetries(cfg.HTTPRetries),
			supabase.WithLogger(log),
		)
		if err != nil {
			return nil, fmt.Errorf("创建 Supabase 客户端失败: %w", err)
		}
		return client, nil
	case config.BackendS3:
		client, err := s3client.NewS3Client(cfg.Bucket, cfg.S3, log)
		if err != nil {
			return nil, fmt.Errorf("创建 S3 客户端失败: %w", err)
		}
		return client, nil
	case config.BackendAzure:
		client, err := azureclient.NewClient(cfg.Azure, cfg.HTTPRetries, log)
		if err != nil {
			return nil, fmt.Errorf("创建 Azure 客户端失败: %w", err)
		}
		return client, nil
	default:
		return nil, fmt.Errorf("未知的存储后端 %q", cfg.Backend)
	}
}
