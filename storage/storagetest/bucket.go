// Package storagetest 提供内存中的 storage.Bucket 实现，供其它包的测试使用。
package storagetest

import (
	"context"
	"sync"

	"galleroon/storage"
)

// BaseURL 是内存存储桶生成公开 URL 时使用的前缀
const BaseURL = "https://cdn.test/gallery/"

// Call 记录一次 List 调用
type Call struct {
	Path  string
	Limit int
}

// Bucket 是按路径预置列举结果的内存存储桶
type Bucket struct {
	mu       sync.Mutex
	listings map[string][]storage.Entry
	failures map[string]error
	calls    []Call
}

// NewBucket 创建一个空的内存存储桶
func NewBucket() *Bucket {
	return &Bucket{
		listings: make(map[string][]storage.Entry),
		failures: make(map[string]error),
	}
}

// Set 设置 path 的列举结果，names 的顺序即返回顺序
func (b *Bucket) Set(path string, names ...string) *Bucket {
	b.mu.Lock()
	defer b.mu.Unlock()
	entries := make([]storage.Entry, 0, len(names))
	for _, n := range names {
		entries = append(entries, storage.Entry{Name: n})
	}
	b.listings[storage.Join(path)] = entries
	return b
}

// Fail 让 path 的列举返回 err
func (b *Bucket) Fail(path string, err error) *Bucket {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures[storage.Join(path)] = err
	return b
}

// List 实现 storage.Bucket
func (b *Bucket) List(ctx context.Context, path string, limit int) ([]storage.Entry, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	key := storage.Join(path)
	b.calls = append(b.calls, Call{Path: key, Limit: limit})

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err, ok := b.failures[key]; ok {
		return nil, err
	}
	entries := b.listings[key]
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return append([]storage.Entry(nil), entries...), nil
}

// PublicURL 实现 storage.Bucket
func (b *Bucket) PublicURL(path string) string {
	return BaseURL + storage.Join(path)
}

// Calls 返回到目前为止的 List 调用记录
func (b *Bucket) Calls() []Call {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Call(nil), b.calls...)
}

// Gate 包装一个 Bucket，在指定路径上阻塞直到 Release 被调用，用于测试过期响应。
type Gate struct {
	storage.Bucket
	mu      sync.Mutex
	waiting map[string]chan struct{}
}

// NewGate 创建一个在 paths 上阻塞的包装
func NewGate(inner storage.Bucket, paths ...string) *Gate {
	g := &Gate{Bucket: inner, waiting: make(map[string]chan struct{})}
	for _, p := range paths {
		g.waiting[storage.Join(p)] = make(chan struct{})
	}
	return g
}

// List 在被阻塞的路径上等待放行
func (g *Gate) List(ctx context.Context, path string, limit int) ([]storage.Entry, error) {
	g.mu.Lock()
	ch, ok := g.waiting[storage.Join(path)]
	g.mu.Unlock()
	if ok {
		select {
		case <-ch:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return g.Bucket.List(ctx, path, limit)
}

// Release 放行 path 上的等待者
func (g *Gate) Release(path string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	key := storage.Join(path)
	if ch, ok := g.waiting[key]; ok {
		close(ch)
		delete(g.waiting, key)
	}
}
