package clock

import (
	"context"
	"errors"
)

// ErrLoopStopped 帧循环已被取消
var ErrLoopStopped = errors.New("frame loop stopped")

// Updater 每帧被调用一次的对象（通常是 ecs.World）
type Updater interface {
	Update()
}

// FrameLoop 每帧驱动一次 Updater
//
// 宿主（ebiten.Game.Update）每帧调用 Step。循环持有自己的取消 context，
// Stop 之后 Step 返回 ErrLoopStopped，宿主据此结束主循环。
type FrameLoop struct {
	ctx    context.Context
	cancel context.CancelFunc
	target Updater
	frames uint64
}

// NewFrameLoop 创建帧循环；parent 被取消时循环也随之停止
func NewFrameLoop(parent context.Context, target Updater) *FrameLoop {
	ctx, cancel := context.WithCancel(parent)
	return &FrameLoop{
		ctx:    ctx,
		cancel: cancel,
		target: target,
	}
}

// Step 执行一帧
func (l *FrameLoop) Step() error {
	if err := l.ctx.Err(); err != nil {
		return ErrLoopStopped
	}
	l.target.Update()
	l.frames++
	return nil
}

// Stop 取消循环；可重复调用
func (l *FrameLoop) Stop() {
	l.cancel()
}

// Done 循环停止时关闭
func (l *FrameLoop) Done() <-chan struct{} {
	return l.ctx.Done()
}

// Frames 已执行的帧数
func (l *FrameLoop) Frames() uint64 {
	return l.frames
}
