package ui

import (
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// ThinProgressBar 是图库加载时显示在标题下方的细长不确定进度条
type ThinProgressBar struct {
	widget.BaseWidget

	line *canvas.Rectangle
	anim *fyne.Animation
}

// NewThinProgressBar 创建一个默认隐藏的细进度条
func NewThinProgressBar() *ThinProgressBar {
	p := &ThinProgressBar{}
	p.ExtendBaseWidget(p)
	p.line = canvas.NewRectangle(theme.Color(theme.ColorNamePrimary))
	p.Hide()
	return p
}

// SetLoading 根据加载状态显示或隐藏进度条
func (p *ThinProgressBar) SetLoading(loading bool) {
	if loading == p.Visible() {
		return
	}
	if loading {
		p.Show()
	} else {
		p.Hide()
	}
}

// CreateRenderer 实现 fyne.Widget
func (p *ThinProgressBar) CreateRenderer() fyne.WidgetRenderer {
	return &thinProgressBarRenderer{
		progress: p,
		objects:  []fyne.CanvasObject{p.line},
	}
}

// MinSize 高度固定为 2 像素
func (p *ThinProgressBar) MinSize() fyne.Size {
	return fyne.NewSize(20, 2)
}

// Show 显示进度条并启动动画
func (p *ThinProgressBar) Show() {
	p.BaseWidget.Show()

	if p.anim == nil {
		p.anim = fyne.NewAnimation(time.Second, func(val float32) {
			width := p.Size().Width
			if width == 0 {
				return
			}
			barWidth := width / 4 // 移动的色块占总宽度的 1/4
			offset := val*(width+barWidth) - barWidth

			p.line.Move(fyne.NewPos(offset, 0))
			p.line.Resize(fyne.NewSize(barWidth, p.MinSize().Height))
		})
		p.anim.RepeatCount = fyne.AnimationRepeatForever
	}
	p.anim.Start()
}

// Hide 隐藏进度条并停止动画
func (p *ThinProgressBar) Hide() {
	if p.anim != nil {
		p.anim.Stop()
	}
	p.BaseWidget.Hide()
}

type thinProgressBarRenderer struct {
	progress *ThinProgressBar
	objects  []fyne.CanvasObject
}

func (r *thinProgressBarRenderer) Destroy() {}

// Layout 由动画负责摆放色块
func (r *thinProgressBarRenderer) Layout(fyne.Size) {}

func (r *thinProgressBarRenderer) MinSize() fyne.Size {
	return r.progress.MinSize()
}

func (r *thinProgressBarRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

func (r *thinProgressBarRenderer) Refresh() {
	if r.progress.Visible() {
		r.progress.line.FillColor = theme.Color(theme.ColorNamePrimary)
		r.progress.line.Show()
	} else {
		r.progress.line.Hide()
	}
	r.progress.line.Refresh()
}
