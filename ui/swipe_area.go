package ui

import (
	"image/color"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
)

// swipeTracker 累计一次拖动的水平位移并在释放时给出位移和平均速度（像素/秒）
type swipeTracker struct {
	active bool
	offset float32
	start  time.Time
}

func (t *swipeTracker) drag(dx float32, now time.Time) {
	if !t.active {
		t.active = true
		t.offset = 0
		t.start = now
	}
	t.offset += dx
}

func (t *swipeTracker) release(now time.Time) (offset, velocity float64) {
	if !t.active {
		return 0, 0
	}
	t.active = false
	offset = float64(t.offset)
	elapsed := now.Sub(t.start).Seconds()
	if elapsed <= 0 {
		return offset, 0
	}
	return offset, offset / elapsed
}

// SwipeArea 是覆盖在幻灯片图片上的透明拖动区域
type SwipeArea struct {
	widget.BaseWidget

	tracker swipeTracker
	now     func() time.Time

	// OnDrag 在拖动过程中以累计位移调用
	OnDrag func(offset float32)
	// OnRelease 在松开时以位移和速度调用
	OnRelease func(offset, velocity float64)
}

// NewSwipeArea 创建拖动区域
func NewSwipeArea() *SwipeArea {
	s := &SwipeArea{now: time.Now}
	s.ExtendBaseWidget(s)
	return s
}

// CreateRenderer 实现 fyne.Widget
func (s *SwipeArea) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(canvas.NewRectangle(color.Transparent))
}

// Dragged 实现 fyne.Draggable
func (s *SwipeArea) Dragged(ev *fyne.DragEvent) {
	s.tracker.drag(ev.Dragged.DX, s.now())
	if s.OnDrag != nil {
		s.OnDrag(s.tracker.offset)
	}
}

// DragEnd 实现 fyne.Draggable
func (s *SwipeArea) DragEnd() {
	offset, velocity := s.tracker.release(s.now())
	if s.OnRelease != nil {
		s.OnRelease(offset, velocity)
	}
}
