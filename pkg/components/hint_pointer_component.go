package components

// HintPointerComponent 提示指针（手形图标）标记组件
// 由 entities.CreateHintPointer 根据预制体配置创建
type HintPointerComponent struct {
	// PrefabName 创建时使用的预制体名称
	PrefabName string

	// Width, Height 指针图形在缩放 1.0 时的尺寸（像素）
	Width  float64
	Height float64

	// TipOffsetX, TipOffsetY 指尖相对实体位置的偏移（像素）
	// 渲染时让指尖对准目标点
	TipOffsetX float64
	TipOffsetY float64
}
