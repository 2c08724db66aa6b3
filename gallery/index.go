// Package gallery 根据存储桶中的分类目录构建首页的文件夹索引。
package gallery

import (
	"context"

	"github.com/rs/zerolog"

	"galleroon/storage"
)

// 列举上限
const (
	FolderListLimit = 100 // 分类下最多列出的子文件夹或图片数
	probeListLimit  = 1   // 每个子文件夹只取第一张图片
)

// FolderEntry 是首页上的一张卡片：文件夹名和它的代表图片
type FolderEntry struct {
	Folder     string `json:"folder" yaml:"folder"`
	FirstImage string `json:"firstImage,omitempty" yaml:"firstImage,omitempty"` // 为空表示没有图片
}

// HasImage 判断是否有代表图片
func (e FolderEntry) HasImage() bool { return e.FirstImage != "" }

// BuildFolderIndex 列出 category 下的子文件夹，并为每个子文件夹取第一张图片的公开 URL。
//
// 分类下没有任何条目时按平铺目录处理：再列举一次 category，每个文件生成一个以
// category 为文件夹名的条目。单个子文件夹列举失败只记录日志并跳过，不影响其它子文件夹。
// 结果顺序与存储返回的顺序一致。
func BuildFolderIndex(ctx context.Context, bucket storage.Bucket, category string, log zerolog.Logger) ([]FolderEntry, error) {
	folders, err := bucket.List(ctx, category, FolderListLimit)
	if err != nil {
		log.Error().Err(err).Str("path", category).Msg("列举文件夹失败")
		return nil, &storage.ListingError{Path: category, Subject: "folders", Err: err}
	}

	if len(folders) == 0 {
		return buildFlatIndex(ctx, bucket, category, log)
	}

	entries := make([]FolderEntry, 0, len(folders))
	for _, folder := range folders {
		folderPath := storage.Join(category, folder.Name)
		images, err := bucket.List(ctx, folderPath, probeListLimit)
		if err != nil {
			log.Warn().Err(err).Str("path", folderPath).Msg("列举子文件夹失败，已跳过")
			continue
		}

		entry := FolderEntry{Folder: folder.Name}
		if len(images) > 0 {
			entry.FirstImage = bucket.PublicURL(storage.Join(folderPath, images[0].Name))
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// buildFlatIndex 处理没有子文件夹的分类
func buildFlatIndex(ctx context.Context, bucket storage.Bucket, category string, log zerolog.Logger) ([]FolderEntry, error) {
	images, err := bucket.List(ctx, category, FolderListLimit)
	if err != nil {
		log.Error().Err(err).Str("path", category).Msg("列举图片失败")
		return nil, &storage.ListingError{Path: category, Subject: "images", Err: err}
	}

	entries := make([]FolderEntry, 0, len(images))
	for _, image := range images {
		entries = append(entries, FolderEntry{
			Folder:     category,
			FirstImage: bucket.PublicURL(storage.Join(category, image.Name)),
		})
	}
	return entries, nil
}
