package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gonewx/piispis/pkg/clock"
	"github.com/gonewx/piispis/pkg/render"
)

// TermApp 在 tcell 终端中运行粒子演示
//
// 鼠标左键在单元格上松开时生成一次爆发；Esc、Ctrl+C 或 q 退出。
type TermApp struct {
	*engine

	screen tcell.Screen
	sink   *render.TerminalSink

	// 左键按下时所在的单元格，松开时以最后位置触发爆发
	mouseDown          bool
	mouseCol, mouseRow int
}

// NewTermApp 在已 Init 的 screen 上创建终端应用
func NewTermApp(screen tcell.Screen, cfg Config) (*TermApp, error) {
	setupLogging(cfg.Verbose)

	piispisConfig, err := loadConfig(cfg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("配置加载失败: %w", err)
	}

	sink := render.NewTerminalSink(
		screen,
		piispisConfig.Terminal.CellWidth, piispisConfig.Terminal.CellHeight,
		piispisConfig.Piispis.Width, piispisConfig.Piispis.Height,
		piispisConfig.Terminal.Glyph, piispisConfig.FillColor(),
	)

	e, err := newEngine(piispisConfig, sink, cfg.Seed, false)
	if err != nil {
		return nil, err
	}

	return &TermApp{engine: e, screen: screen, sink: sink}, nil
}

// HandleEvent 处理一个终端事件，返回 false 表示应退出
func (t *TermApp) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
			(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
			t.Close()
			return false
		}

	case *tcell.EventResize:
		t.screen.Sync()
		if t.resizeRefresh {
			t.arenaSystem.HandleResize()
		}

	case *tcell.EventMouse:
		if ev.Buttons()&tcell.Button1 != 0 {
			t.mouseDown = true
			t.mouseCol, t.mouseRow = ev.Position()
			return true
		}
		if t.mouseDown {
			t.mouseDown = false
			x, y := t.sink.PixelOf(t.mouseCol, t.mouseRow)
			t.inputSystem.HandleClick(x, y)
		}
	}
	return true
}

// Frame 推进一帧并重绘，帧循环停止后返回 clock.ErrLoopStopped
func (t *TermApp) Frame() error {
	if err := t.loop.Step(); err != nil {
		return err
	}
	t.sink.Draw(t.stats() + "  (click: burst, q: quit)")
	return nil
}

// Run 运行事件循环直到退出
func (t *TermApp) Run() error {
	ticker := time.NewTicker(t.config.FrameDuration())
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	done := make(chan struct{})
	defer close(done)
	go t.pollEvents(events, done)

	for {
		select {
		case ev, ok := <-events:
			if !ok || !t.HandleEvent(ev) {
				return nil
			}

		case <-ticker.C:
			if err := t.Frame(); err != nil {
				if errors.Is(err, clock.ErrLoopStopped) {
					return nil
				}
				return err
			}
		}
	}
}

// pollEvents 把终端事件转发到 events，直到屏幕关闭（PollEvent 返回 nil）或 done 关闭
func (t *TermApp) pollEvents(events chan<- tcell.Event, done <-chan struct{}) {
	defer close(events)
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}
