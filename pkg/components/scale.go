package components

// ScaleComponent 存储实体级别的缩放因子
// 提示指针的按压动画通过补间此组件实现压扁效果
//
// 1.0 = 原始大小，0.5 = 50%，2.0 = 200%
// ScaleZ 不参与 2D 渲染，但按压动画要求保持不变
type ScaleComponent struct {
	ScaleX float64
	ScaleY float64
	ScaleZ float64
}
