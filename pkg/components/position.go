package components

// PositionComponent 粒子在竞技场像素空间中的位置
// Y 从竞技场底部（地面）起算，向上为正；渲染时才转换为屏幕坐标
type PositionComponent struct {
	X int
	Y int
}
