package ecs

import "sync/atomic"

// EntityID 是实体的唯一标识符
// 0 保留为无效ID，分配从 1 开始
type EntityID uint64

// nextEntityID 全进程共享的实体计数器
// 鼠标回调可能与帧更新交错触发，所以必须原子递增
var nextEntityID atomic.Uint64

// NextEntityID 分配一个新的实体ID
//
// ID 严格单调递增且永不复用（粒子寿命很短、数量很少，不需要回收）。
// 可以被多个执行上下文并发调用。
func NextEntityID() EntityID {
	return EntityID(nextEntityID.Add(1))
}

// ResetEntityIDs 把计数器归零
//
// 仅供测试使用，用于获得确定的ID序列。运行期间调用会导致ID重复。
func ResetEntityIDs() {
	nextEntityID.Store(0)
}
