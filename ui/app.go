// Package ui 实现 galleroon 的 fyne 桌面界面：分类列表、文件夹卡片网格和幻灯片。
package ui

import (
	"errors"
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/rs/zerolog"

	"galleroon/config"
	"galleroon/gallery"
	"galleroon/slideshow"
	"galleroon/storage"
	"galleroon/thumbnail"
)

// appID 是 fyne 应用的唯一标识
const appID = "link.galleroon.app"

// Options 是启动桌面界面所需的依赖
type Options struct {
	Config *config.GalleryConfig
	Bucket storage.Bucket
	Log    zerolog.Logger
	// Link 不为空时启动后直接打开这个幻灯片地址
	Link string
}

// Run 创建窗口并阻塞直到窗口关闭
func Run(opts Options) error {
	cfg := opts.Config
	log := opts.Log
	categories := cfg.CategorySet()
	if categories.Len() == 0 {
		return errors.New("没有可用的分类")
	}

	a := app.NewWithID(appID)
	a.Settings().SetTheme(newCustomTheme(cfg.FontPath, log))

	w := a.NewWindow("Galleroon")
	w.SetMainMenu(fyne.NewMainMenu(
		fyne.NewMenu("帮助", fyne.NewMenuItem("使用说明", func() { showHelpDialog(w) })),
		fyne.NewMenu("关于", fyne.NewMenuItem("关于 Galleroon", func() { showAboutDialog(w, cfg) })),
	))

	animationManager := NewAnimationManager(w)
	fetcher := thumbnail.NewFetcher(
		thumbnail.WithRetries(cfg.HTTPRetries),
		thumbnail.WithLogger(log),
	)
	browser := gallery.NewBrowser(opts.Bucket, categories, log)
	viewer := slideshow.NewViewer(opts.Bucket, log)

	categoriesView := NewCategoriesView(w, browser, log)
	galleryView := NewGalleryView(w, browser, fetcher, animationManager, uint(cfg.ThumbnailEdge), log)
	slideshowView := NewSlideshowView(w, viewer, fetcher, animationManager, uint(cfg.SlideImageEdge), log)

	// 分类(左) | 文件夹网格(右)
	galleryPage := container.NewHSplit(categoriesView.GetContent(), galleryView.GetContent())
	galleryPage.Offset = 0.15

	nav := &navigator{
		window:        w,
		viewer:        viewer,
		galleryPage:   galleryPage,
		slideshowPage: slideshowView.GetContent(),
		slideshowView: slideshowView,
		log:           log,
	}
	galleryView.OnFolderSelected = nav.openLink
	slideshowView.OnBack = nav.showGallery

	nav.showGallery()

	// 窗口启动后再开始加载，状态通知需要 UI 线程已经运行
	a.Lifecycle().SetOnStarted(func() {
		if err := browser.Start(); err != nil {
			log.Error().Err(err).Msg("加载分类失败")
			dialog.ShowError(err, w)
		}
		if opts.Link != "" {
			nav.openLink(opts.Link)
		}
	})

	w.Resize(fyne.NewSize(1280, 720))
	w.ShowAndRun()
	return nil
}

// navigator 在图库页和幻灯片页之间切换
type navigator struct {
	window        fyne.Window
	viewer        *slideshow.Viewer
	galleryPage   fyne.CanvasObject
	slideshowPage fyne.CanvasObject
	slideshowView *SlideshowView
	log           zerolog.Logger
}

// openLink 打开幻灯片地址。缺少分类或文件夹时仍进入幻灯片页，由页面显示提示。
func (n *navigator) openLink(link string) {
	n.log.Debug().Str("link", link).Msg("打开幻灯片")
	if err := n.viewer.OpenLink(link); err != nil && !errors.Is(err, slideshow.ErrMissingSelection) {
		n.log.Error().Err(err).Str("link", link).Msg("无法打开幻灯片地址")
		dialog.ShowError(err, n.window)
		return
	}
	n.window.SetContent(n.slideshowPage)
	n.slideshowView.Activate()
}

func (n *navigator) showGallery() {
	n.slideshowView.Deactivate()
	n.window.SetContent(n.galleryPage)
}

// showHelpDialog 显示帮助说明对话框
func showHelpDialog(w fyne.Window) {
	helpText := `Galleroon 使用说明:

1. 浏览分类:
   - 左侧列表选择一个分类，右侧显示该分类下的文件夹卡片。
   - 卡片显示文件夹中的第一张图片，没有图片的文件夹显示文件夹图标。
   - 分类下没有子文件夹时，每张图片单独显示为一张卡片。

2. 幻灯片:
   - 点击卡片打开该文件夹的幻灯片。
   - 左右按钮、方向键（→ ↑ 下一张，← ↓ 上一张）或左右拖动图片翻页。
   - 翻到最后一张后继续前进会回到第一张。
   - 点击底部缩略图直接跳到对应图片。
   - "复制链接" 把当前幻灯片地址复制到剪贴板，可用 --link 参数直接打开。
   - Esc 或 "返回" 回到图库。
`
	content := widget.NewMultiLineEntry()
	content.SetText(helpText)
	content.Wrapping = fyne.TextWrapWord
	content.Disable()

	d := dialog.NewCustom("使用说明", "关闭", container.NewScroll(content), w)
	d.Resize(fyne.NewSize(500, 400))
	d.Show()
}

// showAboutDialog 显示关于对话框
func showAboutDialog(w fyne.Window, cfg *config.GalleryConfig) {
	aboutContent := container.NewVBox(
		widget.NewLabel("Galleroon"),
		widget.NewLabel("按分类浏览图片文件夹的桌面图库。"),
		widget.NewLabel(fmt.Sprintf("存储后端: %s", cfg.Backend)),
		widget.NewLabel(fmt.Sprintf("存储桶: %s", cfg.Bucket)),
	)
	dialog.ShowCustom("关于 Galleroon", "关闭", aboutContent, w)
}
