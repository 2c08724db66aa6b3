package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/rs/zerolog"

	"galleroon/gallery"
)

// categoryListEntry 是分类列表的自定义列表项
type categoryListEntry struct {
	widget.BaseWidget
	label    *widget.Label
	id       widget.ListItemID
	cv       *CategoriesView
	selected bool
}

func (e *categoryListEntry) Tapped(_ *fyne.PointEvent) {
	e.cv.handleCategoryTapped(e.id)
}

func (e *categoryListEntry) CreateRenderer() fyne.WidgetRenderer {
	bg := canvas.NewRectangle(color.Transparent)
	return &categoryListEntryRenderer{
		entry:      e,
		background: bg,
		content:    container.NewStack(bg, e.label),
	}
}

// categoryListEntryRenderer 根据选中状态绘制背景
type categoryListEntryRenderer struct {
	entry      *categoryListEntry
	background *canvas.Rectangle
	content    *fyne.Container
}

func (r *categoryListEntryRenderer) Destroy() {}
func (r *categoryListEntryRenderer) Layout(s fyne.Size) {
	r.content.Resize(s)
}
func (r *categoryListEntryRenderer) MinSize() fyne.Size {
	return r.content.MinSize()
}
func (r *categoryListEntryRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.content}
}
func (r *categoryListEntryRenderer) Refresh() {
	if r.entry.selected {
		r.background.FillColor = theme.Color(theme.ColorNameSelection)
	} else {
		r.background.FillColor = color.Transparent
	}
	r.background.Refresh()
}

// CategoriesView 管理左侧的分类列表。选中状态跟随图库状态中的当前分类。
type CategoriesView struct {
	window     fyne.Window
	browser    *gallery.Browser
	categories []string
	current    string
	list       *widget.List
	log        zerolog.Logger
}

// NewCategoriesView 创建分类列表并订阅图库状态
func NewCategoriesView(w fyne.Window, browser *gallery.Browser, log zerolog.Logger) *CategoriesView {
	cv := &CategoriesView{
		window:     w,
		browser:    browser,
		categories: browser.Categories().All(),
		log:        log,
	}
	cv.list = widget.NewList(
		func() int {
			return len(cv.categories)
		},
		func() fyne.CanvasObject {
			entry := &categoryListEntry{
				label: widget.NewLabel("分类"),
				cv:    cv,
			}
			entry.ExtendBaseWidget(entry)
			return entry
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			entry := obj.(*categoryListEntry)
			entry.id = id
			entry.label.SetText(cv.categories[id])
			entry.selected = cv.categories[id] == cv.current
			entry.Refresh()
		},
	)

	browser.Store().Subscribe(func(v gallery.View) {
		fyne.Do(func() { cv.setCurrent(v.Category) })
	})
	return cv
}

func (cv *CategoriesView) handleCategoryTapped(id widget.ListItemID) {
	if id < 0 || id >= len(cv.categories) {
		return
	}
	// 再次点击当前分类也会重新加载
	if err := cv.browser.Select(cv.categories[id]); err != nil {
		cv.log.Error().Err(err).Str("category", cv.categories[id]).Msg("切换分类失败")
		dialog.ShowError(err, cv.window)
	}
}

func (cv *CategoriesView) setCurrent(category string) {
	if cv.current == category {
		return
	}
	cv.current = category
	cv.list.Refresh()
}

// GetContent 返回分类列表的 Fyne UI 内容
func (cv *CategoriesView) GetContent() fyne.CanvasObject {
	header := widget.NewLabelWithStyle("分类", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	return container.NewBorder(container.NewVBox(header, widget.NewSeparator()), nil, nil, nil, cv.list)
}
