package components

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

// TappableContainer 把任意内容包装成可点击的区域，鼠标悬停时显示手形光标。
type TappableContainer struct {
	widget.BaseWidget
	Content  fyne.CanvasObject
	OnTapped func()
}

// NewTappableContainer 创建一个新的 TappableContainer。
func NewTappableContainer(content fyne.CanvasObject, onTapped func()) *TappableContainer {
	c := &TappableContainer{
		Content:  content,
		OnTapped: onTapped,
	}
	c.ExtendBaseWidget(c)
	return c
}

// CreateRenderer 实现了 Widget 接口。
func (c *TappableContainer) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(c.Content)
}

// Tapped 在容器被点击时调用。
func (c *TappableContainer) Tapped(_ *fyne.PointEvent) {
	if c.OnTapped != nil {
		c.OnTapped()
	}
}

// Cursor 实现 desktop.Cursorable
func (c *TappableContainer) Cursor() desktop.Cursor {
	if c.OnTapped == nil {
		return desktop.DefaultCursor
	}
	return desktop.PointerCursor
}
