// Package logging 为命令行和桌面界面提供结构化日志。
package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog"
)

// New 创建一个输出到 w 的控制台日志器，verbose 为 true 时输出 debug 级别
func New(w io.Writer, verbose bool) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: "15:04:05",
	}).Level(level).With().Timestamp().Logger()
}

// Nop 返回丢弃所有输出的日志器
func Nop() zerolog.Logger {
	return zerolog.Nop()
}

// retryLogger 把 retryablehttp 的 LeveledLogger 接口桥接到 zerolog
type retryLogger struct {
	log zerolog.Logger
}

// NewRetryLogger 返回供 retryablehttp.Client.Logger 使用的适配器
func NewRetryLogger(l zerolog.Logger) retryablehttp.LeveledLogger {
	return &retryLogger{log: l.With().Str("component", "http").Logger()}
}

func (l *retryLogger) Error(msg string, keysAndValues ...interface{}) {
	withFields(l.log.Error(), keysAndValues).Msg(msg)
}

func (l *retryLogger) Info(msg string, keysAndValues ...interface{}) {
	// 每次请求都会打一条 Info，降为 debug
	withFields(l.log.Debug(), keysAndValues).Msg(msg)
}

func (l *retryLogger) Debug(msg string, keysAndValues ...interface{}) {
	withFields(l.log.Debug(), keysAndValues).Msg(msg)
}

func (l *retryLogger) Warn(msg string, keysAndValues ...interface{}) {
	withFields(l.log.Warn(), keysAndValues).Msg(msg)
}

func withFields(e *zerolog.Event, kv []interface{}) *zerolog.Event {
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			key = fmt.Sprint(kv[i])
		}
		e = e.Interface(key, kv[i+1])
	}
	return e
}
