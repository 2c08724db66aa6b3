// Package state 提供带订阅/通知的通用状态容器，视图通过订阅来重绘。
package state

import "sync"

// Store 保存一个 T 类型的快照。每次 Set/Update 后按订阅顺序通知所有订阅者。
//
// 通知在锁外进行，订阅者可以在回调里再次读取或修改 Store。快照按写入顺序排队，
// 同一时刻只有一个 goroutine 在投递，所以订阅者收到的顺序与写入顺序一致，
// 最后一次通知总是等于 Get()。另一个 goroutine 正在投递时，Set 只入队并立即返回。
type Store[T any] struct {
	mu         sync.RWMutex
	value      T
	nextID     int
	subs       []subscriber[T]
	pending    []T
	delivering bool
}

type subscriber[T any] struct {
	id int
	fn func(T)
}

// New 创建一个以 initial 为初始值的 Store
func New[T any](initial T) *Store[T] {
	return &Store[T]{value: initial}
}

// Get 返回当前快照
func (s *Store[T]) Get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Set 替换快照并通知订阅者
func (s *Store[T]) Set(v T) {
	s.mu.Lock()
	s.value = v
	s.pending = append(s.pending, v)
	s.deliverLocked()
}

// Update 在锁内基于当前快照计算新快照，然后通知订阅者
func (s *Store[T]) Update(fn func(T) T) T {
	s.mu.Lock()
	s.value = fn(s.value)
	v := s.value
	s.pending = append(s.pending, v)
	s.deliverLocked()
	return v
}

// Subscribe 注册 fn，返回取消订阅的函数。重复调用取消函数是安全的。
func (s *Store[T]) Subscribe(fn func(T)) (cancel func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs = append(s.subs, subscriber[T]{id: id, fn: fn})
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			for i, sub := range s.subs {
				if sub.id == id {
					s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
					return
				}
			}
		})
	}
}

func (s *Store[T]) snapshot() []subscriber[T] {
	return append([]subscriber[T](nil), s.subs...)
}

// deliverLocked 在持有 mu 时调用，返回前释放 mu。
// 已有 goroutine 在投递时直接返回，排队的快照由它继续投递。
func (s *Store[T]) deliverLocked() {
	if s.delivering {
		s.mu.Unlock()
		return
	}
	s.delivering = true
	defer func() {
		s.delivering = false
		s.mu.Unlock()
	}()

	for len(s.pending) > 0 {
		v := s.pending[0]
		var zero T
		s.pending[0] = zero
		s.pending = s.pending[1:]
		subs := s.snapshot()

		s.mu.Unlock()
		func() {
			defer s.mu.Lock()
			notify(subs, v)
		}()
	}
}

func notify[T any](subs []subscriber[T], v T) {
	for _, sub := range subs {
		sub.fn(v)
	}
}
