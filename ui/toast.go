package ui

import (
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// toastDuration 是提示消息停留的时间
const toastDuration = 2 * time.Second

// ShowToast 在窗口底部显示一条简短的自动关闭消息。
func ShowToast(window fyne.Window, message string) {
	content := container.NewPadded(widget.NewLabel(message))
	background := canvas.NewRectangle(theme.Color(theme.ColorNameOverlayBackground))
	background.CornerRadius = 5
	toastContainer := container.NewStack(background, content)

	popup := widget.NewPopUp(toastContainer, window.Canvas())

	// 定位在窗口底部中心，离底部 40 像素
	toastContainer.Resize(toastContainer.MinSize())
	canvasSize := window.Canvas().Size()
	popup.Move(fyne.NewPos(
		(canvasSize.Width-toastContainer.Size().Width)/2,
		canvasSize.Height-toastContainer.Size().Height-40,
	))
	popup.Show()

	time.AfterFunc(toastDuration, func() {
		fyne.Do(popup.Hide)
	})
}
