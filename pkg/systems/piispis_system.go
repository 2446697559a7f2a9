package systems

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/gonewx/piispis/pkg/clock"
	"github.com/gonewx/piispis/pkg/components"
	"github.com/gonewx/piispis/pkg/config"
	"github.com/gonewx/piispis/pkg/ecs"
	"github.com/gonewx/piispis/pkg/render"
)

// VelocitySource supplies the random parts of a particle's initial velocity.
// *rand.Rand satisfies it; tests plug in a fixed sequence.
type VelocitySource interface {
	Intn(n int) int
}

// PiispisSystem spawns piispis particles and owns what their controllers share:
// the render sink, the tick clock, the motion parameters and the tracked arena.
//
// Each particle's kinematic state lives in its own PiispisController and is
// mutated only by that controller. The clock holds one callback per particle.
type PiispisSystem struct {
	config       config.ParticleConfig
	interval     time.Duration
	canvasHeight int

	sink  render.Sink
	clock clock.Clock
	arena *components.ArenaComponent
	rng   VelocitySource

	live    map[ecs.EntityID]*PiispisController
	spawned uint64
}

// NewPiispisSystem creates the particle system.
//
// clk must not be nil: without a clock no particle could ever be animated, so
// the whole spawn pipeline is refused with clock.ErrSchedulerUnavailable.
// arena may be nil, in which case the configured canvas height is used for
// screen placement. rng may be nil, in which case a time-seeded source is used.
func NewPiispisSystem(
	cfg *config.PiispisConfig,
	sink render.Sink,
	clk clock.Clock,
	arena *components.ArenaComponent,
	rng VelocitySource,
) (*PiispisSystem, error) {
	if clk == nil {
		return nil, clock.ErrSchedulerUnavailable
	}
	if sink == nil {
		return nil, fmt.Errorf("piispis system: %w", render.ErrRootUnavailable)
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	return &PiispisSystem{
		config:       cfg.Piispis,
		interval:     cfg.Interval(),
		canvasHeight: cfg.Arena.Height,
		sink:         sink,
		clock:        clk,
		arena:        arena,
		rng:          rng,
		live:         make(map[ecs.EntityID]*PiispisController),
	}, nil
}

// IsValidPosition reports whether a particle centred at (x, y) is still inside
// the arena: its centre must be more than half a particle height above the floor.
// Only the vertical axis is checked; particles may leave sideways.
func IsValidPosition(_ int, y int, height int) bool {
	return y-height/2 > 0
}

// Spawn creates one particle centred at (x, y), with y measured from the floor.
//
// Returns nil, nil when the spawn point is rejected by IsValidPosition.
// Otherwise the particle gets a render element and a random initial velocity,
// is integrated once immediately (so it never flashes at a position it has
// already left) and is registered with the clock. A particle that dies in that
// first step is returned terminated and never registered.
func (s *PiispisSystem) Spawn(x, y int) (*PiispisController, error) {
	if !IsValidPosition(x, y, s.config.Height) {
		return nil, nil
	}

	handle, err := s.sink.CreateHandle()
	if err != nil {
		return nil, fmt.Errorf("failed to create piispis element: %w", err)
	}

	vx, vy := s.initialVelocity()
	c := &PiispisController{
		piispis: components.PiispisComponent{
			ID:       ecs.NextEntityID(),
			Position: components.PositionComponent{X: x, Y: y},
			Velocity: components.VelocityComponent{X: vx, Y: vy},
			Handle:   handle,
		},
		system: s,
	}
	s.live[c.piispis.ID] = c
	s.spawned++

	alive, err := c.Update()
	if err != nil {
		return nil, fmt.Errorf("piispis %d initial update: %w", c.piispis.ID, err)
	}
	if !alive {
		return c, nil
	}

	task, err := s.clock.Repeat(s.interval, c.tick)
	if err != nil {
		if relErr := c.release(); relErr != nil {
			err = errors.Join(err, relErr)
		}
		return nil, fmt.Errorf("failed to schedule piispis %d: %w", c.piispis.ID, err)
	}
	c.task = task

	return c, nil
}

// SpawnBurst calls Spawn count times at the same point.
//
// Every attempt is independent: its own velocity draw and its own error.
// A failed spawn is logged and the remaining attempts still run; the failures
// are returned joined together with the particles that were created.
func (s *PiispisSystem) SpawnBurst(x, y, count int) ([]*PiispisController, error) {
	if count <= 0 {
		return nil, nil
	}

	controllers := make([]*PiispisController, 0, count)
	var errs []error

	for i := 0; i < count; i++ {
		c, err := s.Spawn(x, y)
		if err != nil {
			log.Printf("[PiispisSystem] Error spawning piispis at (%d, %d): %v", x, y, err)
			errs = append(errs, err)
			continue
		}
		if c != nil {
			controllers = append(controllers, c)
		}
	}

	return controllers, errors.Join(errs...)
}

// initialVelocity draws direction first, then the x and y jitter.
func (s *PiispisSystem) initialVelocity() (vx, vy int) {
	direction := 1
	if s.rng.Intn(2) == 0 {
		direction = -1
	}

	vx = direction*s.config.BaseVelocityX + s.rng.Intn(s.config.JitterX)
	vy = s.config.BaseVelocityY + s.rng.Intn(s.config.JitterY)
	return vx, vy
}

// ArenaHeight is the height used to convert floor coordinates to screen
// coordinates: the tracked arena height, or the configured canvas height
// until the arena has been refreshed.
func (s *PiispisSystem) ArenaHeight() int {
	if s.arena != nil && s.arena.Height > 0 {
		return int(s.arena.Height)
	}
	return s.canvasHeight
}

// Live returns the number of particles still holding a render element.
func (s *PiispisSystem) Live() int {
	return len(s.live)
}

// ReleaseAll terminates every live particle: its clock task is cancelled and
// its render element removed. Removal failures are joined; every particle is
// terminated regardless.
func (s *PiispisSystem) ReleaseAll() error {
	var errs []error
	for _, c := range s.live {
		if err := c.release(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Spawned returns the number of particles ever created.
func (s *PiispisSystem) Spawned() uint64 {
	return s.spawned
}

// PiispisController drives one particle from spawn to removal.
type PiispisController struct {
	piispis components.PiispisComponent
	system  *PiispisSystem
	task    *clock.Task
}

// Update advances the particle by one tick.
//
// Gravity is applied to the velocity before the position is integrated. If the
// new position is out of bounds the render element is removed and Update
// returns false; from then on every call returns false without touching the
// sink. A sink failure abandons the particle the same way and is returned.
func (c *PiispisController) Update() (bool, error) {
	p := &c.piispis
	if !p.Alive() {
		return false, nil
	}

	cfg := c.system.config
	p.Velocity.Y += cfg.AccelerationY
	p.Position.X += p.Velocity.X
	p.Position.Y += p.Velocity.Y

	if !IsValidPosition(p.Position.X, p.Position.Y, cfg.Height) {
		if err := c.release(); err != nil {
			return false, err
		}
		return false, nil
	}

	top, left := render.ScreenOffset(c.system.ArenaHeight(), cfg.Width, cfg.Height, p.Position.X, p.Position.Y)
	if err := c.system.sink.SetPosition(p.Handle, top, left); err != nil {
		// 元素已失效，放弃这个粒子
		_ = c.release()
		return false, fmt.Errorf("failed to position piispis %d: %w", p.ID, err)
	}

	return true, nil
}

// tick is the clock callback.
func (c *PiispisController) tick() bool {
	alive, err := c.Update()
	if err != nil {
		log.Printf("[PiispisSystem] Piispis %d dropped: %v", c.piispis.ID, err)
	}
	return alive
}

// release clears the handle, stops the clock task and removes the element.
// The particle is terminated even when the removal fails.
func (c *PiispisController) release() error {
	h := c.piispis.Handle
	c.piispis.Handle = render.NoHandle
	delete(c.system.live, c.piispis.ID)
	if c.task != nil {
		c.task.Cancel()
	}

	if err := c.system.sink.Remove(h); err != nil {
		return fmt.Errorf("failed to remove piispis %d: %w", c.piispis.ID, err)
	}
	return nil
}

// ID returns the particle's entity id.
func (c *PiispisController) ID() ecs.EntityID {
	return c.piispis.ID
}

// Alive reports whether the particle still holds a render element.
func (c *PiispisController) Alive() bool {
	return c.piispis.Alive()
}

// State returns a copy of the particle's kinematic state.
func (c *PiispisController) State() components.PiispisComponent {
	return c.piispis
}

// Task returns the clock task, or nil if the particle was never scheduled.
func (c *PiispisController) Task() *clock.Task {
	return c.task
}
