package app

import (
	"context"
	"fmt"
	"io"
	"log"
	"math/rand"
	"time"

	"github.com/gonewx/piispis/pkg/clock"
	"github.com/gonewx/piispis/pkg/components"
	"github.com/gonewx/piispis/pkg/config"
	"github.com/gonewx/piispis/pkg/ecs"
	"github.com/gonewx/piispis/pkg/embedded"
	"github.com/gonewx/piispis/pkg/render"
	"github.com/gonewx/piispis/pkg/systems"
)

// engine 与前端无关的部分：时钟、竞技场、粒子系统、World 和帧循环
type engine struct {
	config *config.PiispisConfig

	clock         *clock.TickClock
	arena         *components.ArenaComponent
	arenaSystem   *systems.ArenaSystem
	piispisSystem *systems.PiispisSystem
	inputSystem   *systems.InputSystem
	world         *ecs.World
	loop          *clock.FrameLoop
	resizeRefresh bool
}

// setupLogging 非 verbose 模式下丢弃所有日志
func setupLogging(verbose bool) {
	if !verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}
}

// loadConfig 优先加载外部配置文件，其次内嵌配置，都没有时使用默认值
func loadConfig(path string) (*config.PiispisConfig, error) {
	if path != "" {
		log.Printf("[Config] 加载外部配置: %s", path)
		return config.LoadPiispisConfig(path)
	}
	if !embedded.IsInitialized() {
		log.Printf("[Config] 内嵌资源未初始化，使用默认配置")
		return config.DefaultPiispisConfig(), nil
	}
	log.Printf("[Config] 加载内嵌配置: %s", config.DefaultConfigPath)
	return config.LoadEmbeddedPiispisConfig(config.DefaultConfigPath)
}

// newEngine 在给定的渲染根上组装 World
//
// 每帧执行顺序：输入 -> 竞技场（tick 模式）-> 时钟（粒子）。
// pollInput 为 false 时输入系统不进入 World，由前端直接调用 HandleClick。
func newEngine(cfg *config.PiispisConfig, sink render.Sink, seed int64, pollInput bool) (*engine, error) {
	tickClock := clock.NewTickClock()
	arena := &components.ArenaComponent{}
	arenaSystem := systems.NewArenaSystem(sink, arena)
	arenaSystem.Refresh()

	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	piispisSystem, err := systems.NewPiispisSystem(cfg, sink, tickClock, arena, rand.New(rand.NewSource(seed)))
	if err != nil {
		return nil, fmt.Errorf("粒子系统初始化失败: %w", err)
	}

	inputSystem := systems.NewInputSystem(piispisSystem, cfg.Spawn.BurstCount)
	inputSystem.SetRateLimit(cfg.Spawn.MaxBurstsPerSecond)

	world := ecs.NewWorld()
	if pollInput {
		world.AddSystem(inputSystem)
	}
	resizeRefresh := cfg.Arena.Refresh == config.ArenaRefreshResize
	if !resizeRefresh {
		world.AddSystem(arenaSystem)
	}
	world.AddSystem(systems.NewClockSystem(tickClock, cfg.FrameDuration()))

	log.Printf("[App] World ready: %d systems, arena refresh on %s, seed %d",
		len(world.Systems()), cfg.Arena.Refresh, seed)

	return &engine{
		config:        cfg,
		clock:         tickClock,
		arena:         arena,
		arenaSystem:   arenaSystem,
		piispisSystem: piispisSystem,
		inputSystem:   inputSystem,
		world:         world,
		loop:          clock.NewFrameLoop(context.Background(), world),
		resizeRefresh: resizeRefresh,
	}, nil
}

// stats 状态栏文本
func (e *engine) stats() string {
	return fmt.Sprintf("Piispis: %d live / %d spawned  Arena: %.0fx%.0f",
		e.piispisSystem.Live(), e.piispisSystem.Spawned(), e.arena.Width, e.arena.Height)
}

// Close 停止帧循环和粒子时钟并释放所有存活粒子；可重复调用
func (e *engine) Close() {
	e.loop.Stop()
	if !e.clock.Stopped() {
		e.clock.Stop()
		if err := e.piispisSystem.ReleaseAll(); err != nil {
			log.Printf("[App] Failed to release particles: %v", err)
		}
		log.Printf("[App] Frame loop stopped after %d frames", e.loop.Frames())
	}
}
