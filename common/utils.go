package common

import (
	"path"
	"strings"
	"unicode/utf8"

	"github.com/gobwas/glob"
)

// imagePattern 匹配可在界面中显示的图片文件名（不区分大小写，调用前先转小写）
var imagePattern = glob.MustCompile("*.{png,jpg,jpeg,gif,webp}")

// IsImageFile 检查文件名是否为可显示的图片
func IsImageFile(name string) bool {
	return imagePattern.Match(strings.ToLower(path.Base(name)))
}

// FormatFolderLabel 格式化文件夹或文件名，确保单行显示，过长则截断并保留后缀。
// 按字符而不是字节计算长度，避免截断多字节字符。
func FormatFolderLabel(name string, maxDisplayLength int) string {
	if maxDisplayLength <= 0 || utf8.RuneCountInString(name) <= maxDisplayLength {
		return name
	}

	ext := path.Ext(name)
	base := []rune(strings.TrimSuffix(name, ext))
	extLen := utf8.RuneCountInString(ext)

	// 计算去除"..."和扩展名后，基本名称的可用长度
	availableBaseLen := maxDisplayLength - 3 - extLen // 3 个字符是 "..."
	if availableBaseLen <= 0 {
		if maxDisplayLength <= 3 {
			return string([]rune(name)[:maxDisplayLength])
		}
		return string([]rune(name)[:maxDisplayLength-3]) + "..."
	}
	return string(base[:availableBaseLen]) + "..." + ext
}
