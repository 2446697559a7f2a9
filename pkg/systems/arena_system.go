package systems

import (
	"log"

	"github.com/gonewx/piispis/pkg/components"
	"github.com/gonewx/piispis/pkg/render"
)

// ArenaSystem 跟踪竞技场（视口）尺寸
//
// 同一个 Refresh 操作有两种触发方式：
//   - 作为 World 中的系统，每帧 Process 刷新一次
//   - 作为窗口尺寸变化的回调，由 HandleResize 刷新
type ArenaSystem struct {
	sink  render.Sink
	arena *components.ArenaComponent
}

// NewArenaSystem 创建竞技场系统
//
// 参数:
//   - sink: 提供视口尺寸的渲染端
//   - arena: 被刷新的竞技场组件，与 PiispisSystem 共享
func NewArenaSystem(sink render.Sink, arena *components.ArenaComponent) *ArenaSystem {
	return &ArenaSystem{
		sink:  sink,
		arena: arena,
	}
}

// Refresh 从渲染端读取当前视口尺寸并写入竞技场组件
func (s *ArenaSystem) Refresh() (width, height float64) {
	width, height = s.sink.ViewportExtent()
	if width != s.arena.Width || height != s.arena.Height {
		log.Printf("[ArenaSystem] Arena resized: %.0fx%.0f -> %.0fx%.0f",
			s.arena.Width, s.arena.Height, width, height)
	}
	s.arena.Width = width
	s.arena.Height = height
	return width, height
}

// Process 实现 ecs.System，每帧刷新
func (s *ArenaSystem) Process() {
	s.Refresh()
}

// HandleResize 窗口尺寸变化时刷新
func (s *ArenaSystem) HandleResize() (width, height float64) {
	return s.Refresh()
}

// Arena 返回被跟踪的竞技场组件
func (s *ArenaSystem) Arena() *components.ArenaComponent {
	return s.arena
}
