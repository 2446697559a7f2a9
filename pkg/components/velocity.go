package components

// VelocityComponent 粒子速度（像素/tick）
// Y 轴向上为正，与 PositionComponent 一致
type VelocityComponent struct {
	X int
	Y int
}
