package ui

import (
	"context"
	"fmt"
	"slices"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/rs/zerolog"

	"galleroon/slideshow"
	"galleroon/thumbnail"
	"galleroon/ui/components"
)

// 缩略图条的参数
const (
	stripThumbEdge    = 96
	stripThumbSize    = 64
	inactiveThumbFade = 0.5 // 非当前缩略图的透明度
)

// stageLayout 让子对象铺满舞台，但不改变位置，位置由拖动和动画控制
type stageLayout struct{}

func (stageLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	for _, o := range objects {
		o.Resize(size)
	}
}

func (stageLayout) MinSize([]fyne.CanvasObject) fyne.Size {
	return fyne.NewSize(320, 240)
}

// thumbCell 是缩略图条中的一格
type thumbCell struct {
	tap   *components.TappableContainer
	image *canvas.Image
	url   string
}

// SlideshowView 显示一个文件夹的图片幻灯片
type SlideshowView struct {
	window           fyne.Window
	viewer           *slideshow.Viewer
	fetcher          *thumbnail.Fetcher
	animationManager *AnimationManager
	imageEdge        uint
	log              zerolog.Logger

	view       slideshow.View
	currentURL string

	title            *widget.Label
	counter          *widget.Label
	message          *widget.Label
	loadingIndicator *ThinProgressBar
	image            *canvas.Image
	stage            *fyne.Container
	swipe            *SwipeArea
	position         *StyledProgressBar
	strip            *fyne.Container
	stripScroll      *container.Scroll
	thumbs           []*thumbCell
	prevButton       *widget.Button
	nextButton       *widget.Button
	copyButton       *widget.Button

	// OnBack 在点击返回或按 Esc 时调用
	OnBack func()
}

// NewSlideshowView 创建幻灯片视图并订阅幻灯片状态
func NewSlideshowView(w fyne.Window, viewer *slideshow.Viewer, fetcher *thumbnail.Fetcher, am *AnimationManager, imageEdge uint, log zerolog.Logger) *SlideshowView {
	sv := &SlideshowView{
		window:           w,
		viewer:           viewer,
		fetcher:          fetcher,
		animationManager: am,
		imageEdge:        imageEdge,
		log:              log.With().Str("component", "slideshow-view").Logger(),
		title:            widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		counter:          widget.NewLabel(""),
		message:          widget.NewLabel(""),
		loadingIndicator: NewThinProgressBar(),
		image:            canvas.NewImageFromImage(nil),
		swipe:            NewSwipeArea(),
		position:         NewStyledProgressBar(),
		strip:            container.NewHBox(),
	}
	sv.image.FillMode = canvas.ImageFillContain
	sv.image.ScaleMode = canvas.ImageScaleSmooth
	sv.stage = container.New(stageLayout{}, sv.image)
	sv.stripScroll = container.NewHScroll(sv.strip)
	sv.stripScroll.SetMinSize(fyne.NewSize(stripThumbSize, stripThumbSize+theme.Padding()*2))
	sv.message.Alignment = fyne.TextAlignCenter
	sv.message.Hide()

	sv.prevButton = widget.NewButtonWithIcon("", theme.NavigateBackIcon(), func() { sv.viewer.Prev() })
	sv.nextButton = widget.NewButtonWithIcon("", theme.NavigateNextIcon(), func() { sv.viewer.Next() })
	sv.copyButton = widget.NewButtonWithIcon("复制链接", theme.ContentCopyIcon(), sv.copyLink)

	sv.swipe.OnDrag = func(offset float32) {
		sv.image.Move(fyne.NewPos(offset, 0))
	}
	sv.swipe.OnRelease = func(offset, velocity float64) {
		if sv.viewer.HandleSwipe(offset, velocity) {
			sv.image.Move(fyne.NewPos(0, 0))
			return
		}
		// 力度不足，弹回原位
		sv.animationManager.SnapBack(sv.image)
	}

	viewer.Store().Subscribe(func(v slideshow.View) {
		fyne.Do(func() { sv.render(v) })
	})
	return sv
}

// Activate 在幻灯片显示时接管键盘输入
func (sv *SlideshowView) Activate() {
	sv.window.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		if ev.Name == fyne.KeyEscape {
			sv.back()
			return
		}
		sv.viewer.HandleKey(string(ev.Name))
	})
}

// Deactivate 释放键盘输入
func (sv *SlideshowView) Deactivate() {
	sv.window.Canvas().SetOnTypedKey(nil)
}

func (sv *SlideshowView) back() {
	if sv.OnBack != nil {
		sv.OnBack()
	}
}

func (sv *SlideshowView) copyLink() {
	if sv.view.Category == "" || sv.view.Folder == "" {
		return
	}
	sv.window.Clipboard().SetContent(slideshow.Link(sv.view.Category, sv.view.Folder))
	ShowToast(sv.window, "已复制幻灯片链接")
}

// render 把幻灯片状态同步到界面，只在 UI 线程调用
func (sv *SlideshowView) render(v slideshow.View) {
	imagesChanged := !slices.Equal(v.Images, sv.view.Images)
	sv.view = v

	sv.title.SetText(titleFor(v))
	sv.loadingIndicator.SetLoading(v.Loading)
	if v.Message != "" && !v.Loading {
		sv.message.SetText(v.Message)
		sv.message.Show()
	} else {
		sv.message.Hide()
	}

	if imagesChanged {
		sv.rebuildStrip(v)
	}

	index, ok := v.Index()
	if !ok {
		sv.currentURL = ""
		sv.image.Image = nil
		sv.image.Refresh()
		sv.counter.SetText("")
		sv.position.SetPosition(0, 0)
		sv.setNavigationEnabled(false)
		return
	}

	sv.counter.SetText(fmt.Sprintf("%d / %d", index+1, len(v.Images)))
	sv.position.SetPosition(index, len(v.Images))
	sv.setNavigationEnabled(true)
	sv.updateStrip(v)

	if url := v.Images[index]; url != sv.currentURL {
		sv.currentURL = url
		sv.showImage(url, v.Pager.Direction())
	}
}

func (sv *SlideshowView) setNavigationEnabled(enabled bool) {
	for _, b := range []*widget.Button{sv.prevButton, sv.nextButton, sv.copyButton} {
		if enabled {
			b.Enable()
		} else {
			b.Disable()
		}
	}
}

// showImage 异步加载图片，加载完成时若仍是当前图片则按方向滑入
func (sv *SlideshowView) showImage(url string, dir slideshow.Direction) {
	go func() {
		img, err := sv.fetcher.Fetch(context.Background(), url, sv.imageEdge)
		fyne.Do(func() {
			if sv.currentURL != url {
				return
			}
			if err != nil {
				sv.log.Warn().Err(err).Str("url", url).Msg("加载图片失败")
				sv.image.Image = nil
				sv.image.Refresh()
				ShowToast(sv.window, "图片加载失败")
				return
			}
			sv.image.Image = img
			sv.image.Refresh()
			sv.animationManager.SlideIn(sv.image, dir, sv.stage.Size().Width)
		})
	}()
}

// rebuildStrip 为新的图片序列重建缩略图条
func (sv *SlideshowView) rebuildStrip(v slideshow.View) {
	sv.strip.RemoveAll()
	sv.thumbs = sv.thumbs[:0]

	for _, th := range v.Thumbnails() {
		index := th.Index
		img := canvas.NewImageFromImage(nil)
		img.FillMode = canvas.ImageFillContain
		img.SetMinSize(fyne.NewSize(stripThumbSize, stripThumbSize))

		cell := &thumbCell{
			tap:   components.NewTappableContainer(img, func() { sv.viewer.JumpTo(index) }),
			image: img,
			url:   th.URL,
		}
		sv.thumbs = append(sv.thumbs, cell)
		sv.strip.Add(cell.tap)
		sv.loadThumb(cell)
	}
	sv.strip.Refresh()
	sv.stripScroll.ScrollToOffset(fyne.NewPos(0, 0))
}

func (sv *SlideshowView) loadThumb(cell *thumbCell) {
	go func() {
		img, err := sv.fetcher.Fetch(context.Background(), cell.url, stripThumbEdge)
		if err != nil {
			sv.log.Debug().Err(err).Str("url", cell.url).Msg("加载缩略图失败")
			return
		}
		fyne.Do(func() {
			cell.image.Image = img
			cell.image.Refresh()
		})
	}()
}

// updateStrip 当前缩略图不透明，其余半透明
func (sv *SlideshowView) updateStrip(v slideshow.View) {
	for i, th := range v.Thumbnails() {
		if i >= len(sv.thumbs) {
			break
		}
		cell := sv.thumbs[i]
		cell.image.Translucency = thumbTranslucency(th.Active)
		cell.image.Refresh()
		if th.Active {
			sv.scrollStripTo(i)
		}
	}
}

func (sv *SlideshowView) scrollStripTo(i int) {
	cellWidth := stripThumbSize + theme.Padding()
	x := float32(i)*cellWidth - (sv.stripScroll.Size().Width-cellWidth)/2
	if x < 0 {
		x = 0
	}
	sv.stripScroll.ScrollToOffset(fyne.NewPos(x, 0))
}

func thumbTranslucency(active bool) float64 {
	if active {
		return 0
	}
	return inactiveThumbFade
}

func titleFor(v slideshow.View) string {
	switch {
	case v.Category == "" && v.Folder == "":
		return ""
	case v.Folder == "":
		return v.Category
	default:
		return v.Category + " / " + v.Folder
	}
}

// GetContent 返回幻灯片视图的 Fyne UI 内容
func (sv *SlideshowView) GetContent() fyne.CanvasObject {
	backButton := widget.NewButtonWithIcon("返回", theme.NavigateBackIcon(), sv.back)
	toolbar := container.NewHBox(backButton, sv.title, layout.NewSpacer(), sv.counter, sv.copyButton)
	top := container.NewVBox(toolbar, sv.loadingIndicator)

	stage := container.NewStack(sv.stage, sv.swipe, container.NewCenter(sv.message))
	main := container.NewBorder(nil, nil,
		container.NewCenter(sv.prevButton),
		container.NewCenter(sv.nextButton),
		stage,
	)
	bottom := container.NewVBox(container.NewPadded(sv.position), sv.stripScroll)

	return container.NewBorder(top, bottom, nil, nil, main)
}
