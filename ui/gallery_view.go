package ui

import (
	"context"
	"image/color"
	"slices"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/rs/zerolog"

	"galleroon/common"
	"galleroon/gallery"
	"galleroon/slideshow"
	"galleroon/thumbnail"
	"galleroon/ui/components"
)

// cardLabelLength 是卡片标题的最大显示字符数
const cardLabelLength = 22

// GalleryView 显示当前分类下的文件夹卡片网格
type GalleryView struct {
	window           fyne.Window
	fetcher          *thumbnail.Fetcher
	animationManager *AnimationManager
	thumbEdge        uint
	log              zerolog.Logger

	view gallery.View

	header           *widget.Label
	loadingIndicator *ThinProgressBar
	message          *widget.Label
	grid             *widget.GridWrap
	gridContainer    *fyne.Container

	// OnFolderSelected 在点击卡片时以幻灯片地址调用
	OnFolderSelected func(link string)
}

// NewGalleryView 创建图库视图并订阅图库状态
func NewGalleryView(w fyne.Window, browser *gallery.Browser, fetcher *thumbnail.Fetcher, am *AnimationManager, thumbEdge uint, log zerolog.Logger) *GalleryView {
	gv := &GalleryView{
		window:           w,
		fetcher:          fetcher,
		animationManager: am,
		thumbEdge:        thumbEdge,
		log:              log.With().Str("component", "gallery-view").Logger(),
		header:           widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		loadingIndicator: NewThinProgressBar(),
		message:          widget.NewLabel(""),
	}
	gv.message.Alignment = fyne.TextAlignCenter
	gv.message.Hide()

	gv.grid = widget.NewGridWrap(
		func() int {
			return len(gv.view.Entries)
		},
		func() fyne.CanvasObject {
			return components.NewFolderCard()
		},
		func(id widget.GridWrapItemID, obj fyne.CanvasObject) {
			if id < 0 || id >= len(gv.view.Entries) {
				return
			}
			gv.bindCard(obj.(*components.FolderCard), gv.view.Category, gv.view.Entries[id])
		},
	)
	gv.gridContainer = container.NewStack(gv.grid)

	browser.Store().Subscribe(func(v gallery.View) {
		fyne.Do(func() { gv.render(v) })
	})
	return gv
}

// bindCard 把文件夹条目绑定到卡片上，有图片时异步加载缩略图
func (gv *GalleryView) bindCard(card *components.FolderCard, category string, entry gallery.FolderEntry) {
	link := slideshow.Link(category, entry.Folder)
	card.Bind(entry.FirstImage, common.FormatFolderLabel(entry.Folder, cardLabelLength), func() {
		if gv.OnFolderSelected != nil {
			gv.OnFolderSelected(link)
		}
	})
	if !entry.HasImage() || !common.IsImageFile(entry.FirstImage) {
		return
	}

	url := entry.FirstImage
	go func() {
		img, err := gv.fetcher.Fetch(context.Background(), url, gv.thumbEdge)
		fyne.Do(func() {
			// 卡片已被复用到其它条目
			if card.Key != url {
				return
			}
			if err != nil {
				gv.log.Warn().Err(err).Str("url", url).Msg("加载缩略图失败")
				card.SetBroken()
				return
			}
			card.SetImage(img)
		})
	}()
}

// render 把图库状态同步到界面，只在 UI 线程调用
func (gv *GalleryView) render(v gallery.View) {
	changed := v.Category != gv.view.Category || !slices.Equal(v.Entries, gv.view.Entries)
	gv.view = v

	gv.header.SetText(v.Category)
	gv.loadingIndicator.SetLoading(v.Loading)

	if v.Message != "" && !v.Loading {
		gv.message.SetText(v.Message)
		gv.message.Show()
	} else {
		gv.message.Hide()
	}

	if changed {
		gv.grid.ScrollToTop()
		gv.refreshGrid()
	}
}

// refreshGrid 刷新卡片网格，并用淡出的遮罩让新内容逐渐显现
func (gv *GalleryView) refreshGrid() {
	gv.grid.Refresh()

	if gv.animationManager == nil || len(gv.view.Entries) == 0 {
		return
	}
	fadeOverlay := canvas.NewRectangle(color.NRGBA{R: 200, G: 200, B: 200, A: 150})
	fadeOverlay.Resize(gv.gridContainer.Size())
	gv.gridContainer.Add(fadeOverlay)

	gv.animationManager.AnimateFade(fadeOverlay, fadeDuration, 1.0, 0.0, func() {
		gv.gridContainer.Remove(fadeOverlay)
	})
}

// GetContent 返回图库视图的 Fyne UI 内容
func (gv *GalleryView) GetContent() fyne.CanvasObject {
	top := container.NewVBox(gv.header, gv.loadingIndicator, widget.NewSeparator())
	return container.NewBorder(top, nil, nil, nil, container.NewStack(gv.gridContainer, container.NewCenter(gv.message)))
}
