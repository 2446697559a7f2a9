package ecs

// System 是每帧被推进一次的更新单元
type System interface {
	// Process 执行本系统一帧的工作
	Process()
}

// World 按注册顺序保存所有系统
//
// World 自身不持有时钟，由外部的帧驱动器（clock.FrameLoop）每帧调用 Update。
// 系统的生命周期与进程相同，因此不提供移除接口。
type World struct {
	systems []System
}

// NewWorld 创建一个空的 World
func NewWorld() *World {
	return &World{
		systems: make([]System, 0, 4),
	}
}

// AddSystem 注册系统，注册顺序即每帧的执行顺序
func (w *World) AddSystem(system System) {
	if system == nil {
		return
	}
	w.systems = append(w.systems, system)
}

// Update 按注册顺序对每个系统调用一次 Process
func (w *World) Update() {
	for _, system := range w.systems {
		system.Process()
	}
}

// Systems 返回已注册系统的副本
func (w *World) Systems() []System {
	systems := make([]System, 0, len(w.systems))
	return append(systems, w.systems...)
}
