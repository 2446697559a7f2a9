// Package clock 提供驱动粒子和 World 的调度原语
//
// TickClock 实现固定间隔的重复回调（相当于浏览器的 setInterval），
// FrameLoop 实现每帧一次的驱动（相当于 requestAnimationFrame 自我重排），
// 两者都持有显式的取消手段，可以被确定地拆除。
package clock

import (
	"errors"
	"time"
)

var (
	// ErrSchedulerUnavailable 启动时没有可用的时钟
	ErrSchedulerUnavailable = errors.New("scheduler clock unavailable")
	// ErrClockStopped 时钟已停止，不再接受新任务
	ErrClockStopped = errors.New("clock stopped")
	// ErrInvalidInterval 间隔必须为正
	ErrInvalidInterval = errors.New("interval must be positive")
)

// Clock 固定间隔的重复调度
type Clock interface {
	// Repeat 以固定间隔反复调用 callback，直到 callback 返回 false 或任务被取消
	Repeat(interval time.Duration, callback func() bool) (*Task, error)
}

// Task 一个已注册的重复任务
type Task struct {
	interval  time.Duration
	elapsed   time.Duration
	callback  func() bool
	cancelled bool
	runs      int
}

// Cancel 取消任务；可重复调用
func (t *Task) Cancel() {
	t.cancelled = true
}

// Cancelled 任务是否已取消（包括回调返回 false 的情况）
func (t *Task) Cancelled() bool {
	return t.cancelled
}

// Runs 回调已被调用的次数
func (t *Task) Runs() int {
	return t.runs
}

// TickClock 由外部推进的重复调度时钟
//
// 时间只在 Advance 时前进，因此完全确定，适合在 ebiten 的 Update 中推进，
// 也适合在测试中逐 tick 推进。不是并发安全的：所有调用都应在同一个调度线程上。
type TickClock struct {
	tasks   []*Task
	pending []*Task // Advance 期间新注册的任务
	running bool
	stopped bool
	now     time.Duration
}

// NewTickClock 创建时钟
func NewTickClock() *TickClock {
	return &TickClock{
		tasks: make([]*Task, 0, 16),
	}
}

// Repeat 实现 Clock
//
// 新任务从注册时刻开始计时，第一次回调发生在一个完整间隔之后。
func (c *TickClock) Repeat(interval time.Duration, callback func() bool) (*Task, error) {
	if c.stopped {
		return nil, ErrClockStopped
	}
	if interval <= 0 {
		return nil, ErrInvalidInterval
	}

	task := &Task{
		interval: interval,
		callback: callback,
	}
	if c.running {
		c.pending = append(c.pending, task)
	} else {
		c.tasks = append(c.tasks, task)
	}
	return task, nil
}

// Advance 推进时钟 dt
//
// 每个任务累计经过的时间，只要累计值达到间隔就调用一次回调并扣除一个间隔
// （与 setInterval 一样，帧时长大于间隔时同一帧内会补调多次）。
// 回调返回 false 后任务立即取消，本帧剩余的补调也不再发生。
// 任务按注册顺序执行。
func (c *TickClock) Advance(dt time.Duration) {
	if c.stopped || dt <= 0 {
		return
	}
	c.now += dt
	c.running = true

	for _, task := range c.tasks {
		if task.cancelled {
			continue
		}
		task.elapsed += dt
		for task.elapsed >= task.interval && !task.cancelled {
			task.elapsed -= task.interval
			task.runs++
			if !task.callback() {
				task.cancelled = true
			}
		}
	}

	c.running = false
	c.compact()
}

// compact 清除已取消的任务并合并 Advance 期间注册的新任务
func (c *TickClock) compact() {
	live := c.tasks[:0]
	for _, task := range c.tasks {
		if !task.cancelled {
			live = append(live, task)
		}
	}
	for i := len(live); i < len(c.tasks); i++ {
		c.tasks[i] = nil
	}
	c.tasks = append(live, c.pending...)
	c.pending = c.pending[:0]
}

// Active 当前仍在调度的任务数
func (c *TickClock) Active() int {
	n := 0
	for _, task := range c.tasks {
		if !task.cancelled {
			n++
		}
	}
	return n
}

// Now 时钟累计推进的时间
func (c *TickClock) Now() time.Duration {
	return c.now
}

// Stop 取消所有任务，此后 Repeat 返回 ErrClockStopped，Advance 不再做任何事
func (c *TickClock) Stop() {
	for _, task := range c.tasks {
		task.Cancel()
	}
	for _, task := range c.pending {
		task.Cancel()
	}
	c.tasks = c.tasks[:0]
	c.pending = c.pending[:0]
	c.stopped = true
}

// Stopped 时钟是否已停止
func (c *TickClock) Stopped() bool {
	return c.stopped
}
