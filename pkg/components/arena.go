package components

// ArenaComponent 粒子所在可见区域的尺寸（像素）
// 由 ArenaSystem 从渲染端的视口尺寸刷新，不跨进程保存
type ArenaComponent struct {
	Width  float64
	Height float64
}
