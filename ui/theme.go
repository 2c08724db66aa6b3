package ui

import (
	"image/color"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
	"github.com/rs/zerolog"
)

// customTheme 自定义主题，可以加载外部字体以支持中文分类名
type customTheme struct {
	font fyne.Resource
}

// newCustomTheme 创建主题，fontPath 为空或读取失败时使用默认字体
func newCustomTheme(fontPath string, log zerolog.Logger) *customTheme {
	t := &customTheme{}
	if fontPath == "" {
		return t
	}
	fontData, err := os.ReadFile(fontPath)
	if err != nil {
		log.Warn().Err(err).Str("path", fontPath).Msg("无法加载字体文件，将使用默认字体")
		return t
	}
	t.font = fyne.NewStaticResource(fontPath, fontData)
	return t
}

// Color 返回主题特定颜色
func (t *customTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	return theme.DefaultTheme().Color(name, variant)
}

// Font 返回自定义字体
func (t *customTheme) Font(textStyle fyne.TextStyle) fyne.Resource {
	if t.font == nil || textStyle.Monospace || textStyle.Symbol {
		return theme.DefaultTheme().Font(textStyle)
	}
	return t.font
}

// Icon 返回主题特定图标资源
func (t *customTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

// Size 返回主题尺寸
func (t *customTheme) Size(name fyne.ThemeSizeName) float32 {
	return theme.DefaultTheme().Size(name)
}
