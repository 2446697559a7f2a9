// Package main 提供无界面的粒子轨迹验证工具
//
// 在 MemorySink 上生成一次爆发，用 TickClock 逐 tick 推进，
// 打印每个粒子的初始速度、存活 tick 数以及（--verbose 时）每次定位。
//
// Usage:
//
//	go run ./cmd/verify_trajectory --x=400 --y=590 --count=5 --seed=1
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"

	"github.com/gonewx/piispis/pkg/clock"
	"github.com/gonewx/piispis/pkg/components"
	"github.com/gonewx/piispis/pkg/config"
	"github.com/gonewx/piispis/pkg/render"
	"github.com/gonewx/piispis/pkg/systems"
)

var (
	xFlag      = flag.Int("x", 400, "生成位置 x（竞技场坐标）")
	yFlag      = flag.Int("y", 300, "生成位置 y（竞技场坐标，向上为正）")
	countFlag  = flag.Int("count", 5, "生成的粒子数量")
	ticksFlag  = flag.Int("ticks", 600, "最多推进的 tick 数")
	seedFlag   = flag.Int64("seed", 1, "随机种子")
	configFlag = flag.String("config", "", "外部 piispis.yaml 路径（默认使用内置默认值）")
	verbose    = flag.Bool("verbose", false, "打印每次定位")
)

type trace struct {
	controller *systems.PiispisController
	handle     render.Handle
	initial    components.PiispisComponent
	deathTick  int
}

func main() {
	flag.Parse()

	if *countFlag < 0 || *ticksFlag < 0 {
		fmt.Fprintf(os.Stderr, "--count 和 --ticks 不能为负数 (count=%d, ticks=%d)\n", *countFlag, *ticksFlag)
		os.Exit(2)
	}

	if !*verbose {
		log.SetOutput(io.Discard)
	}

	cfg := config.DefaultPiispisConfig()
	if *configFlag != "" {
		loaded, err := config.LoadPiispisConfig(*configFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	sink := render.NewMemorySink(float64(cfg.Arena.Width), float64(cfg.Arena.Height))
	tickClock := clock.NewTickClock()
	arena := &components.ArenaComponent{}
	systems.NewArenaSystem(sink, arena).Refresh()

	ps, err := systems.NewPiispisSystem(cfg, sink, tickClock, arena, rand.New(rand.NewSource(*seedFlag)))
	if err != nil {
		fmt.Fprintf(os.Stderr, "创建粒子系统失败: %v\n", err)
		os.Exit(1)
	}

	controllers, err := ps.SpawnBurst(*xFlag, *yFlag, *countFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "爆发部分失败: %v\n", err)
	}

	traces := make([]*trace, 0, len(controllers))
	for _, c := range controllers {
		tr := &trace{controller: c, handle: c.State().Handle, initial: c.State(), deathTick: -1}
		// 出生即越界的粒子在第 0 次更新时已移除
		if !c.Alive() {
			tr.deathTick = 0
		}
		traces = append(traces, tr)
	}

	fmt.Printf("Arena %dx%d, interval %v, spawn (%d, %d), seed %d\n",
		cfg.Arena.Width, cfg.Arena.Height, cfg.Interval(), *xFlag, *yFlag, *seedFlag)

	tick := 0
	for tick < *ticksFlag && ps.Live() > 0 {
		tick++
		tickClock.Advance(cfg.Interval())
		for _, tr := range traces {
			if tr.deathTick < 0 && !tr.controller.Alive() {
				tr.deathTick = tick
			}
		}
	}

	for _, tr := range traces {
		state := tr.controller.State()
		fmt.Printf("piispis #%d: after first update pos=(%d, %d) vel=(%d, %d)\n",
			tr.controller.ID(), tr.initial.Position.X, tr.initial.Position.Y,
			tr.initial.Velocity.X, tr.initial.Velocity.Y)
		if tr.deathTick >= 0 {
			fmt.Printf("  removed at tick %d, final pos=(%d, %d) vel=(%d, %d)\n",
				tr.deathTick, state.Position.X, state.Position.Y, state.Velocity.X, state.Velocity.Y)
		} else {
			fmt.Printf("  still alive after %d ticks at (%d, %d)\n", tick, state.Position.X, state.Position.Y)
		}

		if *verbose {
			for _, call := range sink.CallsFor(tr.handle) {
				if call.Kind == render.CallSetPosition {
					fmt.Printf("    top=%d left=%d\n", call.Top, call.Left)
				}
			}
		}
	}

	fmt.Printf("Spawned %d, live %d, ticks %d\n", ps.Spawned(), ps.Live(), tick)
}
