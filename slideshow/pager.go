// Package slideshow 实现幻灯片的翻页状态、输入映射和图片序列加载。
package slideshow

// Direction 记录最近一次翻页的方向，只用于选择切换动画
type Direction int

const (
	Backward Direction = -1
	None     Direction = 0
	Forward  Direction = 1
)

// Pager 保存一个无界的页计数器。显示的下标是 page 对序列长度取欧几里得模。
// 零值即初始状态 (page 0, 无方向)。
type Pager struct {
	page      int
	direction Direction
}

// Page 返回原始页计数
func (p Pager) Page() int { return p.page }

// Direction 返回最近一次翻页的方向
func (p Pager) Direction() Direction { return p.direction }

// Advance 前进 step 页（负数为后退），方向取 step 的符号
func (p Pager) Advance(step int) Pager {
	return Pager{page: p.page + step, direction: sign(step)}
}

// JumpTo 直接跳到 index，不带方向
func (p Pager) JumpTo(index int) Pager {
	return Pager{page: index, direction: None}
}

// Index 返回长度为 n 的序列中当前显示的下标；n <= 0 时返回 false
func (p Pager) Index(n int) (int, bool) {
	if n <= 0 {
		return 0, false
	}
	return Wrap(p.page, n), true
}

// Wrap 把任意整数 page 映射到 [0, n)，n 必须大于 0
func Wrap(page, n int) int {
	return ((page % n) + n) % n
}

func sign(step int) Direction {
	switch {
	case step > 0:
		return Forward
	case step < 0:
		return Backward
	default:
		return None
	}
}
