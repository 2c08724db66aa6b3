// Package supabase 通过 Supabase Storage 的 REST 接口实现 storage.Bucket。
package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog"

	"galleroon/logging"
	"galleroon/storage"
)

// placeholderName 是 Supabase 为空文件夹生成的占位对象
const placeholderName = ".emptyFolderPlaceholder"

// Client 是 Supabase Storage 中单个存储桶的客户端
type Client struct {
	baseURL string
	bucket  string
	apiKey  string
	http    *retryablehttp.Client
	log     zerolog.Logger
}

// Option 调整 Client 的行为
type Option func(*Client)

// WithRetries 设置传输层的最大重试次数
func WithRetries(n int) Option {
	return func(c *Client) { c.http.RetryMax = n }
}

// WithLogger 设置日志器
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) {
		c.log = l
		c.http.Logger = logging.NewRetryLogger(l)
	}
}

// WithHTTPClient 替换底层的 http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http.HTTPClient = hc }
}

// NewClient 创建客户端，baseURL 形如 "https://xyz.supabase.co"
func NewClient(baseURL, bucket, apiKey string, opts ...Option) (*Client, error) {
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("无效的 Supabase 地址 %q: %w", baseURL, err)
	}
	if bucket == "" {
		return nil, fmt.Errorf("存储桶名称不能为空")
	}

	rc := retryablehttp.NewClient()
	rc.RetryWaitMin = 500 * time.Millisecond
	rc.RetryWaitMax = 5 * time.Second
	rc.Logger = nil
	// 重试耗尽后仍返回最后一次响应，以便读取服务端的错误信息
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		bucket:  bucket,
		apiKey:  apiKey,
		http:    rc,
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type listRequest struct {
	Prefix string `json:"prefix"`
	Limit  int    `json:"limit"`
	Offset int    `json:"offset"`
	SortBy sortBy `json:"sortBy"`
}

type sortBy struct {
	Column string `json:"column"`
	Order  string `json:"order"`
}

type listedObject struct {
	Name      string          `json:"name"`
	ID        *string         `json:"id"`
	UpdatedAt *time.Time      `json:"updated_at"`
	Metadata  *objectMetadata `json:"metadata"`
}

type objectMetadata struct {
	Size int64 `json:"size"`
}

type apiError struct {
	StatusCode string `json:"statusCode"`
	Error      string `json:"error"`
	Message    string `json:"message"`
}

// List 列出 path 下的直接子项（文件和子文件夹），最多 limit 个
func (c *Client) List(ctx context.Context, path string, limit int) ([]storage.Entry, error) {
	// 占位对象排在真实文件前面，多取一个，过滤后再截断
	fetch := limit
	if limit > 0 {
		fetch = limit + 1
	}
	body, err := json.Marshal(listRequest{
		Prefix: storage.Join(path),
		Limit:  fetch,
		SortBy: sortBy{Column: "name", Order: "asc"},
	})
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/storage/v1/object/list/%s", c.baseURL, url.PathEscape(c.bucket))
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("创建列举请求失败: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	c.log.Debug().Str("path", path).Int("limit", limit).Msg("supabase list")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("列举对象失败: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("读取列举响应失败: %w", err)
	}
	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("列举对象失败: %s", describeError(resp.StatusCode, data))
	}

	var objects []listedObject
	if err := json.Unmarshal(data, &objects); err != nil {
		return nil, fmt.Errorf("解析列举响应失败: %w", err)
	}

	entries := make([]storage.Entry, 0, len(objects))
	for _, o := range objects {
		if o.Name == "" || o.Name == placeholderName {
			continue
		}
		e := storage.Entry{Name: o.Name}
		if o.Metadata != nil {
			e.Size = o.Metadata.Size
		}
		if o.UpdatedAt != nil {
			e.LastModified = *o.UpdatedAt
		}
		entries = append(entries, e)
	}
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

// PublicURL 返回公开存储桶中对象的访问地址
func (c *Client) PublicURL(path string) string {
	segments := strings.Split(storage.Join(path), "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", c.baseURL, url.PathEscape(c.bucket), strings.Join(segments, "/"))
}

func describeError(status int, body []byte) string {
	var e apiError
	if err := json.Unmarshal(body, &e); err == nil && (e.Message != "" || e.Error != "") {
		if e.Message != "" {
			return fmt.Sprintf("%d %s", status, e.Message)
		}
		return fmt.Sprintf("%d %s", status, e.Error)
	}
	text := strings.TrimSpace(string(body))
	if len(text) > 200 {
		text = text[:200]
	}
	if text == "" {
		text = http.StatusText(status)
	}
	return fmt.Sprintf("%d %s", status, text)
}
