package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

var trackColor = color.NRGBA{R: 200, G: 200, B: 200, A: 100}

// StyledProgressBar 显示幻灯片当前位置：轨道被均分为 total 段，高亮第 index 段
type StyledProgressBar struct {
	widget.BaseWidget

	index int
	total int

	indicator  *canvas.Rectangle
	background *canvas.Rectangle
}

// NewStyledProgressBar 创建位置条
func NewStyledProgressBar() *StyledProgressBar {
	p := &StyledProgressBar{
		background: canvas.NewRectangle(trackColor),
		indicator:  canvas.NewRectangle(theme.Color(theme.ColorNamePrimary)),
	}
	p.background.CornerRadius = 3
	p.indicator.CornerRadius = 3
	p.ExtendBaseWidget(p)
	return p
}

// SetPosition 设置当前下标和总数，total 为 0 时不显示高亮段
func (p *StyledProgressBar) SetPosition(index, total int) {
	if index == p.index && total == p.total {
		return
	}
	p.index, p.total = index, total
	p.Refresh()
}

// CreateRenderer 创建渲染器
func (p *StyledProgressBar) CreateRenderer() fyne.WidgetRenderer {
	return &styledProgressBarRenderer{
		progress: p,
		objects:  []fyne.CanvasObject{p.background, p.indicator},
	}
}

// MinSize 返回最小尺寸
func (p *StyledProgressBar) MinSize() fyne.Size {
	return fyne.NewSize(100, 6)
}

// segment 返回高亮段在宽度 width 的轨道上的起点和长度
func segment(index, total int, width float32) (x, w float32) {
	if total <= 0 || index < 0 || index >= total {
		return 0, 0
	}
	w = width / float32(total)
	return w * float32(index), w
}

type styledProgressBarRenderer struct {
	progress *StyledProgressBar
	objects  []fyne.CanvasObject
}

func (r *styledProgressBarRenderer) Destroy() {}

func (r *styledProgressBarRenderer) Layout(size fyne.Size) {
	r.progress.background.Resize(size)

	x, w := segment(r.progress.index, r.progress.total, size.Width)
	r.progress.indicator.Resize(fyne.NewSize(w, size.Height))
	r.progress.indicator.Move(fyne.NewPos(x, 0))
}

func (r *styledProgressBarRenderer) MinSize() fyne.Size {
	return r.progress.MinSize()
}

func (r *styledProgressBarRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

func (r *styledProgressBarRenderer) Refresh() {
	r.progress.background.FillColor = trackColor
	r.progress.indicator.FillColor = theme.Color(theme.ColorNamePrimary)

	r.progress.background.Refresh()
	r.progress.indicator.Refresh()

	r.Layout(r.progress.Size())
}
