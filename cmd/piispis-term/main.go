// Package main 在终端中运行粒子演示
//
// Usage:
//
//	go run ./cmd/piispis-term [--config=path] [--seed=N] [--verbose]
//
// 每个字符单元代表 terminal.cellWidth x terminal.cellHeight 像素。
// 鼠标左键松开时生成一次爆发，Esc / Ctrl+C / q 退出。
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/gonewx/piispis/pkg/app"
)

var (
	configFlag = flag.String("config", "", "外部 piispis.yaml / piispis.toml 路径（默认使用内置默认值）")
	seedFlag   = flag.Int64("seed", 0, "随机种子（0 表示使用当前时间）")
	verbose    = flag.Bool("verbose", false, "启用详细日志（会干扰终端画面）")
)

func main() {
	flag.Parse()

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize screen: %v\n", err)
		os.Exit(1)
	}
	screen.EnableMouse()

	termApp, err := app.NewTermApp(screen, app.Config{
		Verbose:    *verbose,
		ConfigPath: *configFlag,
		Seed:       *seedFlag,
	})
	if err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}

	runErr := termApp.Run()
	screen.Fini()
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "%v\n", runErr)
		os.Exit(1)
	}
}
