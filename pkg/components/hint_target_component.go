package components

// HintTargetComponent 标记可被提示指针指向的场景节点
// 演示场景和提示脚本按 Order 排序生成默认目标列表
type HintTargetComponent struct {
	// Order 在默认目标列表中的顺序（升序）
	Order int

	// Radius 绘制目标高亮圈的半径（像素）
	Radius float64
}
