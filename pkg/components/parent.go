package components

import "github.com/gonewx/hinthand/pkg/ecs"

// ParentComponent 父子层级关系
// Parent 为 0 表示挂在场景根节点下
type ParentComponent struct {
	Parent ecs.EntityID
}
