// Package render 定义粒子引擎消费的渲染端能力
//
// 核心只通过 Sink 接口创建/定位/移除可见元素并查询视口尺寸，
// 具体实现有基于 ebiten 的窗口渲染（EbitenSink）和无界面的记录实现（MemorySink）。
package render

import "errors"

// Handle 渲染端分配的不透明元素句柄
type Handle uint64

// NoHandle 表示没有句柄（粒子已终止或尚未创建）
const NoHandle Handle = 0

var (
	// ErrRootUnavailable 渲染根节点不存在（未创建或已被分离）
	ErrRootUnavailable = errors.New("render root unavailable")
	// ErrUnknownHandle 句柄不存在或已被移除
	ErrUnknownHandle = errors.New("unknown render handle")
)

// Sink 渲染端接口
//
// 所有调用都发生在单一调度线程上，实现无需加锁。
type Sink interface {
	// CreateHandle 创建一个新的可见元素
	CreateHandle() (Handle, error)
	// SetPosition 设置元素左上角的屏幕坐标（像素）
	SetPosition(h Handle, top, left int) error
	// Remove 移除元素，之后该句柄失效
	Remove(h Handle) error
	// ViewportExtent 返回当前视口宽高
	ViewportExtent() (width, height float64)
}

// ScreenOffset 把以地面为原点、Y 向上的粒子中心坐标转换为屏幕上的 top/left 偏移
//
// 元素以中心对齐放置：
//
//	top  = arenaHeight - y - height/2
//	left = x - width/2
//
// 除法为整数除法（37/2 = 18）。
func ScreenOffset(arenaHeight, width, height, x, y int) (top, left int) {
	top = arenaHeight - y - height/2
	left = x - width/2
	return top, left
}
