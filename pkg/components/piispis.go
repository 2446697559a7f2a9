package components

import (
	"github.com/gonewx/piispis/pkg/ecs"
	"github.com/gonewx/piispis/pkg/render"
)

// PiispisComponent 单个粒子的完整运动学状态
//
// 状态由唯一的控制器独占，不在多个控制器之间共享。
// Handle 在粒子存活期间非零；粒子第一次越界的那个 tick 被清为 render.NoHandle，
// 之后不会再被更新。
type PiispisComponent struct {
	ID       ecs.EntityID
	Position PositionComponent
	Velocity VelocityComponent
	Handle   render.Handle // render.NoHandle 表示已终止
}

// Alive 粒子是否仍持有渲染句柄
func (p *PiispisComponent) Alive() bool {
	return p.Handle != render.NoHandle
}
