// Package app 提供粒子演示应用的核心包装器
//
// 该包把初始化逻辑从 main 包提取出来：加载配置、创建渲染端与时钟、
// 组装 World。App 实现 ebiten.Game 接口，TermApp 在 tcell 终端中运行同一套逻辑。
package app

import (
	"errors"
	"fmt"
	"image/color"
	"log"

	"github.com/gonewx/piispis/pkg/clock"
	"github.com/gonewx/piispis/pkg/render"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ConfigPath 外部配置文件路径（.yaml 或 .toml），为空则使用内嵌的 data/piispis.yaml
	ConfigPath string
	// Seed 随机种子，0 表示使用当前时间
	Seed int64
}

// App 是应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	*engine

	sink    *render.EbitenSink
	verbose bool
}

// NewApp 创建并初始化应用
//
// 使用内嵌配置时，调用此函数前应先调用 embedded.Init()，否则使用默认配置。
func NewApp(cfg Config) (*App, error) {
	setupLogging(cfg.Verbose)

	piispisConfig, err := loadConfig(cfg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("配置加载失败: %w", err)
	}

	// 渲染根（竞技场画布）
	sink := render.NewEbitenSink(
		float64(piispisConfig.Arena.Width), float64(piispisConfig.Arena.Height),
		piispisConfig.Piispis.Width, piispisConfig.Piispis.Height,
		piispisConfig.FillColor(),
	)
	if path := piispisConfig.Render.SpritePath; path != "" {
		if err := sink.LoadSprite(path); err != nil {
			log.Printf("[App] Warning: %v (falling back)", err)
		}
	}
	// 关闭 generatedSprite 且无贴图时，sink 直接填充纯色矩形
	if !sink.HasImage() && piispisConfig.Render.GeneratedSprite {
		sink.UseImage(render.SpriteImage(
			piispisConfig.Piispis.Width, piispisConfig.Piispis.Height,
			piispisConfig.FillColor(), piispisConfig.Render.CornerRadius,
		))
	}

	e, err := newEngine(piispisConfig, sink, cfg.Seed, true)
	if err != nil {
		return nil, err
	}

	return &App{
		engine:  e,
		sink:    sink,
		verbose: cfg.Verbose,
	}, nil
}

// Update 更新逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}

	// Esc 拆除帧循环
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		a.Close()
	}

	if err := a.loop.Step(); err != nil {
		if errors.Is(err, clock.ErrLoopStopped) {
			return ebiten.Termination
		}
		return err
	}
	return nil
}

// Draw 绘制画面
func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 24, G: 24, B: 32, A: 255})
	a.sink.Draw(screen)

	if a.config.Render.ShowStats {
		stats := fmt.Sprintf("%s\nTPS: %.1f", a.stats(), ebiten.ActualTPS())
		ebitenutil.DebugPrintAt(screen, stats, 10, 10)
	}
}

// Layout 逻辑屏幕尺寸与窗口尺寸一致，竞技场随窗口缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	if a.sink.SetViewport(outsideWidth, outsideHeight) && a.resizeRefresh {
		a.arenaSystem.HandleResize()
	}
	return outsideWidth, outsideHeight
}

// WindowSize 配置中的初始窗口尺寸
func (a *App) WindowSize() (int, int) {
	return a.config.Arena.Width, a.config.Arena.Height
}

// TPS 配置中的每秒帧数
func (a *App) TPS() int {
	return a.config.Tick.TPS
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
