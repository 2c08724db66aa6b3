// Package azureclient 通过 Azure Blob 容器实现 storage.Bucket。
package azureclient

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/runtime"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/container"
	"github.com/rs/zerolog"

	appConfig "galleroon/config"
	"galleroon/storage"
)

// hierarchyPager 抽象了分页器，便于测试
type hierarchyPager interface {
	More() bool
	NextPage(ctx context.Context) (container.ListBlobsHierarchyResponse, error)
}

// Client 封装一个 Azure Blob 容器，只读
type Client struct {
	newPager      func(prefix string, max int32) hierarchyPager
	publicBaseURL string
	log           zerolog.Logger
}

// NewClient 根据容器地址创建客户端。地址可以带 SAS 查询串，也可以是公开容器。
func NewClient(cfg appConfig.AzureConfig, retries int, log zerolog.Logger) (*Client, error) {
	if cfg.ContainerURL == "" {
		return nil, fmt.Errorf("容器地址不能为空")
	}
	base, err := stripQuery(cfg.ContainerURL)
	if err != nil {
		return nil, fmt.Errorf("无效的容器地址: %w", err)
	}

	cc, err := container.NewClientWithNoCredential(cfg.ContainerURL, &container.ClientOptions{
		ClientOptions: azcore.ClientOptions{
			Retry: policy.RetryOptions{MaxRetries: int32(retries)},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("创建 Azure 客户端失败: %w", err)
	}

	if cfg.PublicBaseURL != "" {
		base = strings.TrimRight(cfg.PublicBaseURL, "/")
	}

	return &Client{
		newPager: func(prefix string, max int32) hierarchyPager {
			return cc.NewListBlobsHierarchyPager("/", &container.ListBlobsHierarchyOptions{
				Prefix:     &prefix,
				MaxResults: &max,
			})
		},
		publicBaseURL: base,
		log:           log,
	}, nil
}

// List 列出 path 下的直接子项，虚拟目录 (BlobPrefixes) 在前，文件在后
func (c *Client) List(ctx context.Context, path string, limit int) ([]storage.Entry, error) {
	prefix := storage.Join(path)
	if prefix != "" {
		prefix += "/"
	}
	// 多取一个，为被过滤掉的目录占位 Blob 留出位置
	max := int32(5000)
	if limit > 0 && limit < 5000 {
		max = int32(limit + 1)
	}

	c.log.Debug().Str("path", path).Int("limit", limit).Msg("azure list")

	var folders, files []storage.Entry
	pager := c.newPager(prefix, max)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("列出 Blob 失败: %w", err)
		}
		if page.Segment == nil {
			break
		}
		for _, p := range page.Segment.BlobPrefixes {
			if p == nil || p.Name == nil {
				continue
			}
			name := strings.TrimSuffix(strings.TrimPrefix(*p.Name, prefix), "/")
			if name != "" {
				folders = append(folders, storage.Entry{Name: name})
			}
		}
		for _, b := range page.Segment.BlobItems {
			if b == nil || b.Name == nil || *b.Name == prefix {
				continue
			}
			e := storage.Entry{Name: strings.TrimPrefix(*b.Name, prefix)}
			if b.Properties != nil {
				if b.Properties.ContentLength != nil {
					e.Size = *b.Properties.ContentLength
				}
				if b.Properties.LastModified != nil {
					e.LastModified = *b.Properties.LastModified
				}
			}
			files = append(files, e)
		}
		if limit > 0 && len(folders)+len(files) >= limit {
			break
		}
	}

	entries := append(folders, files...)
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

// PublicURL 返回 Blob 的公开访问地址（不带 SAS）
func (c *Client) PublicURL(path string) string {
	segments := strings.Split(storage.Join(path), "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return c.publicBaseURL + "/" + strings.Join(segments, "/")
}

func stripQuery(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("缺少协议或主机: %q", raw)
	}
	u.RawQuery = ""
	u.Fragment = ""
	return strings.TrimRight(u.String(), "/"), nil
}

var _ hierarchyPager = (*runtime.Pager[container.ListBlobsHierarchyResponse])(nil)
