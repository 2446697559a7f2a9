package systems

import (
	"log"

	"github.com/gonewx/piispis/pkg/utils"
	"golang.org/x/time/rate"
)

// InputSystem 把鼠标点击转换为粒子爆发
type InputSystem struct {
	piispis    *PiispisSystem
	burstCount int
	limiter    *rate.Limiter
	tracker    utils.ReleaseTracker
	released   []utils.Pointer
}

// NewInputSystem 创建输入系统
//
// 参数:
//   - ps: 粒子系统
//   - burstCount: 每次点击生成的粒子数量
func NewInputSystem(ps *PiispisSystem, burstCount int) *InputSystem {
	return &InputSystem{
		piispis:    ps,
		burstCount: burstCount,
		limiter:    rate.NewLimiter(rate.Inf, 0),
	}
}

// SetRateLimit 限制每秒响应的点击次数，perSecond <= 0 取消限制
func (s *InputSystem) SetRateLimit(perSecond float64) {
	if perSecond <= 0 {
		s.limiter = rate.NewLimiter(rate.Inf, 0)
		return
	}
	s.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
}

// Process 实现 ecs.System
// 左键松开时在光标处生成一次爆发，触屏抬起时在最后触点处生成
func (s *InputSystem) Process() {
	s.released = s.tracker.AppendJustReleased(s.released[:0])
	for _, p := range s.released {
		s.HandleClick(p.X, p.Y)
	}
}

// HandleClick 在屏幕坐标 (screenX, screenY) 处生成一次爆发
//
// 屏幕 Y 向下为正，粒子坐标以地面为原点向上为正，因此 y = 竞技场高度 - screenY。
// 超过速率限制的点击被丢弃。返回成功生成的粒子数量。
func (s *InputSystem) HandleClick(screenX, screenY int) int {
	if !s.limiter.Allow() {
		log.Printf("[InputSystem] Click at (%d, %d) dropped by rate limit", screenX, screenY)
		return 0
	}

	y := s.piispis.ArenaHeight() - screenY
	controllers, err := s.piispis.SpawnBurst(screenX, y, s.burstCount)
	if err != nil {
		log.Printf("[InputSystem] Burst at (%d, %d) partially failed: %d/%d spawned",
			screenX, screenY, len(controllers), s.burstCount)
	}
	return len(controllers)
}
