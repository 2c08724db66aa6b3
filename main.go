package main

import (
	"context"
	"os"
	"syscall"

	"github.com/charmbracelet/fang"

	"galleroon/cmd"
)

const version = "1.0.0"

// shutdownSignals 触发取消命令上下文的信号
var shutdownSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}

func main() {
	root := cmd.NewRootCmd()

	// fang 提供补全、man page、--version 和信号处理
	if err := fang.Execute(
		context.Background(),
		root,
		fang.WithVersion(version),
		fang.WithNotifySignal(shutdownSignals...),
	); err != nil {
		os.Exit(1)
	}
}
