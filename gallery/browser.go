package gallery

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"galleroon/config"
	"galleroon/state"
	"galleroon/storage"
)

// ErrUnknownCategory 表示请求的分类不在配置的分类集合中
var ErrUnknownCategory = errors.New("unknown category")

// View 是首页在某一时刻的快照
type View struct {
	Category string
	Entries  []FolderEntry
	Loading  bool
	Err      error
	Message  string // 加载失败或为空时展示的文案
}

// Empty 判断加载完成且没有任何卡片
func (v View) Empty() bool {
	return !v.Loading && v.Err == nil && len(v.Entries) == 0
}

// Browser 驱动首页：选择分类后异步构建文件夹索引，并通过 Store 发布快照
type Browser struct {
	bucket     storage.Bucket
	categories config.Categories
	log        zerolog.Logger
	store      *state.Store[View]

	mu         sync.Mutex
	generation uint64
	wg         sync.WaitGroup
}

// NewBrowser 创建首页控制器
func NewBrowser(bucket storage.Bucket, categories config.Categories, log zerolog.Logger) *Browser {
	return &Browser{
		bucket:     bucket,
		categories: categories,
		log:        log.With().Str("component", "gallery").Logger(),
		store:      state.New(View{}),
	}
}

// Store 返回首页状态
func (b *Browser) Store() *state.Store[View] { return b.store }

// Categories 返回分类集合
func (b *Browser) Categories() config.Categories { return b.categories }

// Start 选择第一个分类
func (b *Browser) Start() error {
	first, ok := b.categories.First()
	if !ok {
		return ErrUnknownCategory
	}
	return b.Select(first)
}

// Select 开始一次新的加载。较早发起、较晚返回的加载结果会被丢弃。
// 订阅者在通知回调中不能同步调用 Select。
func (b *Browser) Select(category string) error {
	if !b.categories.Contains(category) {
		return ErrUnknownCategory
	}

	b.mu.Lock()
	b.generation++
	gen := b.generation
	b.store.Set(View{Category: category, Loading: true})
	b.mu.Unlock()

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		entries, err := BuildFolderIndex(context.Background(), b.bucket, category, b.log)
		b.finish(gen, category, entries, err)
	}()
	return nil
}

// Wait 阻塞直到所有已发起的加载结束
func (b *Browser) Wait() { b.wg.Wait() }

func (b *Browser) finish(gen uint64, category string, entries []FolderEntry, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if gen != b.generation {
		b.log.Debug().Str("category", category).Msg("丢弃过期的加载结果")
		return
	}

	v := View{Category: category, Entries: entries}
	switch {
	case err != nil:
		v.Entries = nil
		v.Err = err
		v.Message = storage.UserMessage(err)
	case len(entries) == 0:
		v.Message = storage.NoImagesMessage
	}
	b.store.Set(v)
}
