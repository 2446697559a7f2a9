package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/gonewx/piispis/pkg/app"
	"github.com/gonewx/piispis/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	// 初始化嵌入资源
	// dataFS 在 embed.go 中声明
	embedded.Init(dataFS)

	os.Exit(run(os.Args[1:], os.Stderr))
}

// runGame 打开窗口运行游戏；测试中替换
var runGame = func(g *app.App) error {
	width, height := g.WindowSize()
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowTitle("Piispis")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(g.TPS())

	// 点击窗口生成粒子，Esc 退出
	return ebiten.RunGame(g)
}

// run 解析参数并运行游戏，返回进程退出码。
// 错误总是写到 stderr，与 --verbose 无关。
func run(args []string, stderr io.Writer) int {
	fs := flag.NewFlagSet("piispis", flag.ContinueOnError)
	fs.SetOutput(stderr)
	verbose := fs.Bool("verbose", false, "Enable verbose logging (default off)")
	configPath := fs.String("config", "", "Path to an external piispis.yaml (default: embedded data/piispis.yaml)")
	seed := fs.Int64("seed", 0, "Random seed for particle velocities (0 = time based)")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	gameApp, err := app.NewApp(app.Config{
		Verbose:    *verbose,
		ConfigPath: *configPath,
		Seed:       *seed,
	})
	if err != nil {
		fmt.Fprintf(stderr, "初始化失败: %v\n", err)
		return 1
	}

	if err := runGame(gameApp); err != nil {
		fmt.Fprintf(stderr, "运行失败: %v\n", err)
		return 1
	}
	return 0
}
