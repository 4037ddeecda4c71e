package types

// Vec3 三维向量（世界坐标、缩放）
// 渲染时只使用 X/Y，Z 保留给层级排序
type Vec3 struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

// Add 返回 v + o
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// Sub 返回 v - o
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

// Lerp 在 v 和 to 之间线性插值
// t 超出 [0,1] 时钳制到端点
func (v Vec3) Lerp(to Vec3, t float64) Vec3 {
	if t <= 0 {
		return v
	}
	if t >= 1 {
		return to
	}
	return Vec3{
		X: v.X + (to.X-v.X)*t,
		Y: v.Y + (to.Y-v.Y)*t,
		Z: v.Z + (to.Z-v.Z)*t,
	}
}

// ScaleXY 返回 X/Y 分量乘以 m 的向量，Z 不变
// 用于按压动画的压扁效果
func (v Vec3) ScaleXY(m float64) Vec3 {
	return Vec3{X: v.X * m, Y: v.Y * m, Z: v.Z}
}

// Uniform 返回三个分量都为 s 的向量
func Uniform(s float64) Vec3 {
	return Vec3{X: s, Y: s, Z: s}
}
