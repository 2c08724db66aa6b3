// Package storage 定义图库所依赖的对象存储接口以及列举相关的错误类型。
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Entry 表示一次列举返回的单个条目（文件或子文件夹）
type Entry struct {
	Name         string    // 相对于列举路径的名称
	Size         int64     // 文件大小 (字节)，文件夹为 0
	LastModified time.Time // 最后修改时间，未知时为零值
}

// Bucket 是图库唯一需要的存储能力：按路径列举，以及把对象路径解析为公开 URL。
// PublicURL 是纯函数，不做网络请求，也不会失败。
type Bucket interface {
	List(ctx context.Context, path string, limit int) ([]Entry, error)
	PublicURL(path string) string
}

// Join 用 "/" 连接路径片段，并去掉多余的首尾斜杠和空片段
func Join(parts ...string) string {
	cleaned := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.Trim(p, "/")
		if p != "" {
			cleaned = append(cleaned, p)
		}
	}
	return strings.Join(cleaned, "/")
}

// ListingError 表示一次列举调用失败。Subject 是面向用户的对象名称（"folders" 或 "images"）。
type ListingError struct {
	Path    string
	Subject string
	Err     error
}

func (e *ListingError) Error() string {
	return fmt.Sprintf("列举 %q 失败: %v", e.Path, e.Err)
}

func (e *ListingError) Unwrap() error { return e.Err }

// UserMessage 返回可以直接展示给用户的提示
func (e *ListingError) UserMessage() string {
	subject := e.Subject
	if subject == "" {
		subject = "images"
	}
	return "Could not fetch " + subject + "."
}

// EmptyResultError 表示列举成功但没有可用条目，属于软错误
type EmptyResultError struct {
	Path string
}

func (e *EmptyResultError) Error() string {
	return fmt.Sprintf("%q 下没有图片", e.Path)
}

// UserMessage 返回可以直接展示给用户的提示
func (e *EmptyResultError) UserMessage() string {
	return NoImagesMessage
}

// NoImagesMessage 是空结果时展示的文案
const NoImagesMessage = "No images found."

// UserMessage 把任意错误映射为界面上展示的文案
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var m interface{ UserMessage() string }
	if errors.As(err, &m) {
		return m.UserMessage()
	}
	return err.Error()
}

// IsEmpty 判断错误是否为空结果（软错误）
func IsEmpty(err error) bool {
	var e *EmptyResultError
	return errors.As(err, &e)
}
