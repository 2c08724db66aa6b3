package components

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// CardSize 是文件夹卡片的固定尺寸
var CardSize = fyne.NewSize(180, 200)

// FolderCard 显示一个文件夹的缩略图和名称
type FolderCard struct {
	TappableContainer

	// Key 标识卡片当前绑定的图片，异步加载完成时用来判断卡片是否已被复用
	Key string

	image       *canvas.Image
	placeholder *widget.Icon
	label       *widget.Label
	background  *canvas.Rectangle
}

// NewFolderCard 创建一张空白卡片
func NewFolderCard() *FolderCard {
	c := &FolderCard{
		image:       canvas.NewImageFromImage(nil),
		placeholder: widget.NewIcon(theme.FolderIcon()),
		label:       widget.NewLabel(""),
		background:  canvas.NewRectangle(theme.Color(theme.ColorNameInputBackground)),
	}
	c.image.FillMode = canvas.ImageFillContain
	c.image.ScaleMode = canvas.ImageScaleSmooth
	c.image.SetMinSize(fyne.NewSize(CardSize.Width, CardSize.Height-40))
	c.label.Alignment = fyne.TextAlignCenter
	c.label.Truncation = fyne.TextTruncateEllipsis
	c.background.CornerRadius = 8

	preview := container.NewStack(c.placeholder, c.image)
	c.Content = container.NewStack(
		c.background,
		container.NewBorder(nil, c.label, nil, nil, preview),
	)
	c.ExtendBaseWidget(c)
	return c
}

// Bind 设置卡片的标题和点击行为，并清空之前的图片
func (c *FolderCard) Bind(key, title string, onTapped func()) {
	c.Key = key
	c.OnTapped = onTapped
	c.label.SetText(title)
	c.ResetPlaceholder()
	c.SetImage(nil)
}

// SetImage 显示缩略图，img 为 nil 时显示占位图标
func (c *FolderCard) SetImage(img image.Image) {
	c.image.Image = img
	if img == nil {
		c.image.Hide()
		c.placeholder.Show()
	} else {
		c.placeholder.Hide()
		c.image.Show()
	}
	c.image.Refresh()
}

// SetBroken 在缩略图无法加载时显示损坏图标
func (c *FolderCard) SetBroken() {
	c.SetImage(nil)
	c.placeholder.SetResource(theme.BrokenImageIcon())
}

// ResetPlaceholder 恢复默认的文件夹图标
func (c *FolderCard) ResetPlaceholder() {
	c.placeholder.SetResource(theme.FolderIcon())
}

// MinSize 卡片使用固定尺寸
func (c *FolderCard) MinSize() fyne.Size {
	return CardSize
}

// MouseIn 实现 desktop.Hoverable
func (c *FolderCard) MouseIn(*desktop.MouseEvent) { c.highlight(true) }

// MouseMoved 实现 desktop.Hoverable
func (c *FolderCard) MouseMoved(*desktop.MouseEvent) {}

// MouseOut 实现 desktop.Hoverable
func (c *FolderCard) MouseOut() { c.highlight(false) }

func (c *FolderCard) highlight(on bool) {
	if on {
		c.background.FillColor = theme.Color(theme.ColorNameHover)
	} else {
		c.background.FillColor = theme.Color(theme.ColorNameInputBackground)
	}
	c.background.Refresh()
}
