package systems

import (
	"time"

	"github.com/gonewx/piispis/pkg/clock"
)

// ClockSystem 每帧把 TickClock 推进固定的帧时长，从而驱动所有粒子控制器
type ClockSystem struct {
	clock *clock.TickClock
	frame time.Duration
}

// NewClockSystem 创建时钟系统
//
// 参数:
//   - c: 被推进的时钟
//   - frame: 每帧时长（通常为 1/TPS）
func NewClockSystem(c *clock.TickClock, frame time.Duration) *ClockSystem {
	return &ClockSystem{
		clock: c,
		frame: frame,
	}
}

// Process 实现 ecs.System
func (s *ClockSystem) Process() {
	s.clock.Advance(s.frame)
}
