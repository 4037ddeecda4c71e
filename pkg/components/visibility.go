package components

// VisibilityComponent 控制实体是否参与渲染
type VisibilityComponent struct {
	Visible bool
}
