package systems

import (
	"testing"

	"github.com/gonewx/piispis/pkg/clock"
	"github.com/gonewx/piispis/pkg/components"
	"github.com/gonewx/piispis/pkg/config"
	"github.com/gonewx/piispis/pkg/ecs"
	"github.com/gonewx/piispis/pkg/render"
)

// sequenceSource 按顺序返回预设值（对 n 取模），用完后从头循环
type sequenceSource struct {
	values []int
	next   int
}

func (s *sequenceSource) Intn(n int) int {
	v := s.values[s.next%len(s.values)]
	s.next++
	return v % n
}

// fixedVelocity 每次生成都得到 sign=+1、jitterX=jx、jitterY=jy
func fixedVelocity(jx, jy int) *sequenceSource {
	return &sequenceSource{values: []int{1, jx, jy}}
}

type testRig struct {
	cfg    *config.PiispisConfig
	sink   *render.MemorySink
	clock  *clock.TickClock
	arena  *components.ArenaComponent
	system *PiispisSystem
}

// newTestRig 创建 800x600 视口、默认参数的粒子系统
func newTestRig(t *testing.T, rng VelocitySource) *testRig {
	t.Helper()
	ecs.ResetEntityIDs()
	t.Cleanup(ecs.ResetEntityIDs)

	cfg := config.DefaultPiispisConfig()
	sink := render.NewMemorySink(800, 600)
	clk := clock.NewTickClock()
	arena := &components.ArenaComponent{Width: 800, Height: 600}

	ps, err := NewPiispisSystem(cfg, sink, clk, arena, rng)
	if err != nil {
		t.Fatalf("NewPiispisSystem() error: %v", err)
	}

	return &testRig{
		cfg:    cfg,
		sink:   sink,
		clock:  clk,
		arena:  arena,
		system: ps,
	}
}

// tick 推进时钟一个粒子更新间隔
func (r *testRig) tick() {
	r.clock.Advance(r.cfg.Interval())
}
