// Package thumbnail 下载图库图片并生成缩略图，结果缓存在内存中。
package thumbnail

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"  // 注册 gif 解码器
	_ "image/jpeg" // 注册 jpeg 解码器
	_ "image/png"  // 注册 png 解码器
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/golang/groupcache/lru"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/nfnt/resize"
	"github.com/rs/zerolog"
	_ "golang.org/x/image/webp" // 注册 webp 解码器
	"golang.org/x/sync/singleflight"

	"galleroon/logging"
)

// DefaultCacheSize 是默认缓存的缩略图数量
const DefaultCacheSize = 256

// maxImageBytes 限制单张图片的下载大小
const maxImageBytes = 32 << 20

// Fetcher 下载图片并按最长边缩放
type Fetcher struct {
	http  *retryablehttp.Client
	log   zerolog.Logger
	group singleflight.Group

	mu    sync.Mutex
	cache *lru.Cache
}

// Option 调整 Fetcher 的行为
type Option func(*Fetcher)

// WithRetries 设置下载失败时的最大重试次数
func WithRetries(n int) Option {
	return func(f *Fetcher) { f.http.RetryMax = n }
}

// WithLogger 设置日志器
func WithLogger(l zerolog.Logger) Option {
	return func(f *Fetcher) {
		f.log = l.With().Str("component", "thumbnail").Logger()
		f.http.Logger = logging.NewRetryLogger(l)
	}
}

// WithHTTPClient 替换底层的 http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(f *Fetcher) { f.http.HTTPClient = hc }
}

// WithCacheSize 设置缓存容量
func WithCacheSize(n int) Option {
	return func(f *Fetcher) { f.cache = lru.New(n) }
}

// NewFetcher 创建缩略图下载器
func NewFetcher(opts ...Option) *Fetcher {
	rc := retryablehttp.NewClient()
	rc.RetryWaitMin = 200 * time.Millisecond
	rc.RetryWaitMax = 2 * time.Second
	rc.Logger = nil

	f := &Fetcher{
		http:  rc,
		log:   zerolog.Nop(),
		cache: lru.New(DefaultCacheSize),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

type cacheKey struct {
	url     string
	maxEdge uint
}

// Fetch 返回 url 指向图片的缩略图，最长边不超过 maxEdge，小图不放大。
// maxEdge 为 0 时返回原图。
func (f *Fetcher) Fetch(ctx context.Context, url string, maxEdge uint) (image.Image, error) {
	key := cacheKey{url: url, maxEdge: maxEdge}
	if img, ok := f.cached(key); ok {
		return img, nil
	}

	v, err, _ := f.group.Do(url+"#"+strconv.FormatUint(uint64(maxEdge), 10), func() (interface{}, error) {
		// 上一次下载可能刚好在检查缓存之后完成
		if img, ok := f.cached(key); ok {
			return img, nil
		}
		img, err := f.download(ctx, url)
		if err != nil {
			return nil, err
		}
		if maxEdge > 0 {
			img = Scale(img, maxEdge)
		}
		f.store(key, img)
		return img, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(image.Image), nil
}

// Scale 按比例缩小 img 使最长边不超过 maxEdge
func Scale(img image.Image, maxEdge uint) image.Image {
	b := img.Bounds()
	if uint(b.Dx()) <= maxEdge && uint(b.Dy()) <= maxEdge {
		return img
	}
	return resize.Thumbnail(maxEdge, maxEdge, img, resize.Lanczos3)
}

// Len 返回当前缓存的缩略图数量
func (f *Fetcher) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cache.Len()
}

func (f *Fetcher) cached(key cacheKey) (image.Image, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.cache.Get(key)
	if !ok {
		return nil, false
	}
	return v.(image.Image), true
}

func (f *Fetcher) store(key cacheKey, img image.Image) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cache.Add(key, img)
}

func (f *Fetcher) download(ctx context.Context, url string) (image.Image, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("创建图片请求失败: %w", err)
	}
	resp, err := f.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("下载图片失败 %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("下载图片失败 %s: HTTP %d", url, resp.StatusCode)
	}

	img, format, err := image.Decode(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return nil, fmt.Errorf("解码图片失败 %s: %w", url, err)
	}
	f.log.Debug().Str("url", url).Str("format", format).
		Int("width", img.Bounds().Dx()).Int("height", img.Bounds().Dy()).Msg("图片已下载")
	return img, nil
}
