package components

// NameComponent 实体名称
// 用于配置文件和提示脚本按名称查找场景中的节点（如 "SeedBank"、"HintLayer"）
type NameComponent struct {
	Name string
}
