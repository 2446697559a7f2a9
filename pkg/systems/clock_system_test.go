package systems

import (
	"testing"
	"time"

	"github.com/gonewx/piispis/pkg/clock"
	"github.com/gonewx/piispis/pkg/ecs"
)

func TestClockSystemAdvancesClock(t *testing.T) {
	clk := clock.NewTickClock()
	system := NewClockSystem(clk, 16*time.Millisecond)

	runs := 0
	clk.Repeat(16*time.Millisecond, func() bool {
		runs++
		return true
	})

	for i := 0; i < 3; i++ {
		system.Process()
	}

	if runs != 3 {
		t.Errorf("Expected 3 runs, got %d", runs)
	}
	if clk.Now() != 48*time.Millisecond {
		t.Errorf("Now: got %v, want 48ms", clk.Now())
	}
}

// TestWorldDrivesParticles World 每帧依次刷新竞技场、推进时钟，粒子随之运动
func TestWorldDrivesParticles(t *testing.T) {
	rig := newTestRig(t, fixedVelocity(0, 0))

	world := ecs.NewWorld()
	world.AddSystem(NewArenaSystem(rig.sink, rig.arena))
	world.AddSystem(NewClockSystem(rig.clock, rig.cfg.Interval()))

	c, _ := rig.system.Spawn(400, 590)
	for i := 0; i < 51; i++ {
		world.Update()
	}

	if c.Alive() {
		t.Error("Particle should have reached the floor after 51 frames")
	}
	if rig.clock.Active() != 0 {
		t.Errorf("Expected no active tasks, got %d", rig.clock.Active())
	}
}
