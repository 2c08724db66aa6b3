package ui

import (
	"image/color"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"

	"galleroon/slideshow"
)

// 幻灯片切换的动画参数
const (
	slideDuration  = 300 * time.Millisecond
	fadeDuration   = 500 * time.Millisecond
	snapDuration   = 150 * time.Millisecond
	slideEnterFrac = 0.35 // 新图片从舞台宽度的这个比例处滑入
)

// AnimationManager 管理UI动画效果
type AnimationManager struct {
	window fyne.Window
}

// NewAnimationManager 创建新的动画管理器
func NewAnimationManager(window fyne.Window) *AnimationManager {
	return &AnimationManager{
		window: window,
	}
}

// AnimateFade 执行淡入淡出动画，支持矩形的填充色和图片的透明度
func (am *AnimationManager) AnimateFade(obj fyne.CanvasObject, duration time.Duration, from, to float32, callback func()) {
	animation := &fyne.Animation{
		Duration: duration,
		Curve:    fyne.AnimationEaseInOut,
		Tick: func(done float32) {
			alpha := from + (to-from)*done
			switch c := obj.(type) {
			case *canvas.Rectangle:
				// 使用类型断言获取具体的颜色类型并修改Alpha值
				if rgba, ok := c.FillColor.(color.RGBA); ok {
					rgba.A = uint8(alpha * 255)
					c.FillColor = rgba
				} else if nrgba, ok := c.FillColor.(color.NRGBA); ok {
					nrgba.A = uint8(alpha * 255)
					c.FillColor = nrgba
				}
				c.Refresh()
			case *canvas.Image:
				c.Translucency = float64(1 - alpha)
				c.Refresh()
			}
		},
	}
	am.run(animation, duration, callback)
}

// AnimateSlide 执行滑动动画
func (am *AnimationManager) AnimateSlide(obj fyne.CanvasObject, duration time.Duration, from, to fyne.Position, callback func()) {
	animation := &fyne.Animation{
		Duration: duration,
		Curve:    fyne.AnimationEaseOut,
		Tick: func(done float32) {
			x := from.X + (to.X-from.X)*done
			y := from.Y + (to.Y-from.Y)*done
			obj.Move(fyne.NewPos(x, y))
		},
	}
	am.run(animation, duration, callback)
}

// SlideIn 让新图片按翻页方向滑入：前进时从右侧进入，后退时从左侧进入，
// 跳转时原地淡入。
func (am *AnimationManager) SlideIn(img *canvas.Image, dir slideshow.Direction, stageWidth float32) {
	from := slideOrigin(dir, stageWidth)
	if from.X != 0 {
		am.AnimateSlide(img, slideDuration, from, fyne.NewPos(0, 0), nil)
	}
	am.AnimateFade(img, slideDuration, 0, 1, nil)
}

// SnapBack 把拖动中的对象弹回原位
func (am *AnimationManager) SnapBack(obj fyne.CanvasObject) {
	am.AnimateSlide(obj, snapDuration, obj.Position(), fyne.NewPos(0, 0), nil)
}

// slideOrigin 返回滑入动画的起点
func slideOrigin(dir slideshow.Direction, stageWidth float32) fyne.Position {
	return fyne.NewPos(float32(dir)*stageWidth*slideEnterFrac, 0)
}

func (am *AnimationManager) run(animation *fyne.Animation, duration time.Duration, callback func()) {
	animation.Start()
	// 动画结束后在 UI 线程调用回调函数
	if callback != nil {
		time.AfterFunc(duration, func() {
			fyne.Do(callback)
		})
	}
}
