package slideshow

import (
	"context"
	"fmt"
	"net/url"

	"github.com/rs/zerolog"

	"galleroon/storage"
)

// ImageListLimit 是一个文件夹最多加载的图片数
const ImageListLimit = 100

// LinkPath 是幻灯片页面的导航路径
const LinkPath = "/slideshow"

// LoadSequence 列出 category/folder 下的图片并解析为公开 URL，保持存储返回的顺序。
// 列举失败返回 *storage.ListingError，结果为空返回 *storage.EmptyResultError。
func LoadSequence(ctx context.Context, bucket storage.Bucket, category, folder string, log zerolog.Logger) ([]string, error) {
	folderPath := storage.Join(category, folder)
	files, err := bucket.List(ctx, folderPath, ImageListLimit)
	if err != nil {
		log.Error().Err(err).Str("path", folderPath).Msg("列举图片失败")
		return nil, &storage.ListingError{Path: folderPath, Subject: "images", Err: err}
	}
	if len(files) == 0 {
		return nil, &storage.EmptyResultError{Path: folderPath}
	}

	urls := make([]string, 0, len(files))
	for _, f := range files {
		urls = append(urls, bucket.PublicURL(storage.Join(folderPath, f.Name)))
	}
	return urls, nil
}

// Link 生成打开某个文件夹幻灯片的导航地址
func Link(category, folder string) string {
	q := url.Values{}
	q.Set("category", category)
	q.Set("folder", folder)
	return LinkPath + "?" + q.Encode()
}

// ParseLink 从导航地址中原样读回分类和文件夹
func ParseLink(link string) (category, folder string, err error) {
	u, err := url.Parse(link)
	if err != nil {
		return "", "", fmt.Errorf("解析导航地址失败: %w", err)
	}
	if u.Path != LinkPath {
		return "", "", fmt.Errorf("不是幻灯片地址: %q", link)
	}
	q := u.Query()
	category, folder = q.Get("category"), q.Get("folder")
	if category == "" || folder == "" {
		return category, folder, ErrMissingSelection
	}
	return category, folder, nil
}
