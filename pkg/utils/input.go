// Package utils 提供通用工具函数
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Pointer 一次指针事件的屏幕坐标（鼠标或触摸）
type Pointer struct {
	X, Y int
	// TouchID 触摸 ID，鼠标事件为 -1
	TouchID ebiten.TouchID
}

// MouseTouchID 鼠标事件使用的 TouchID
const MouseTouchID ebiten.TouchID = -1

// ReleaseTracker 收集本帧刚释放的指针
//
// 同时支持鼠标左键和多点触摸。触摸释放后 ebiten 不再提供当前位置，
// 因此使用上一 tick 的触点位置。
type ReleaseTracker struct {
	touchIDs []ebiten.TouchID
}

// AppendJustReleased 把本帧刚释放的指针追加到 dst 并返回
// 鼠标在前，触摸按 ebiten 返回的顺序排列
func (r *ReleaseTracker) AppendJustReleased(dst []Pointer) []Pointer {
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		dst = append(dst, Pointer{X: x, Y: y, TouchID: MouseTouchID})
	}

	r.touchIDs = inpututil.AppendJustReleasedTouchIDs(r.touchIDs[:0])
	for _, id := range r.touchIDs {
		x, y := inpututil.TouchPositionInPreviousTick(id)
		dst = append(dst, Pointer{X: x, Y: y, TouchID: id})
	}
	return dst
}

// IsMouse 是否为鼠标事件
func (p Pointer) IsMouse() bool {
	return p.TouchID == MouseTouchID
}
