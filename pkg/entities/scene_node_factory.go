package entities

import (
	"github.com/gonewx/hinthand/pkg/components"
	"github.com/gonewx/hinthand/pkg/ecs"
	"github.com/gonewx/hinthand/pkg/types"
)

// NewSceneNode 创建一个带名称和位置的场景节点
// 用作指针的父容器或普通场景物体
//
// 参数：
//   - em: 实体管理器
//   - name: 节点名称（可为空）
//   - parent: 父节点，0 表示场景根
//   - local: 相对父节点的本地坐标
func NewSceneNode(em *ecs.EntityManager, name string, parent ecs.EntityID, local types.Vec3) ecs.EntityID {
	id := em.CreateEntity()
	em.AddComponent(id, &components.PositionComponent{Vec3: local})
	if name != "" {
		em.AddComponent(id, &components.NameComponent{Name: name})
	}
	if parent != 0 {
		em.AddComponent(id, &components.ParentComponent{Parent: parent})
	}
	return id
}

// NewHintTargetNode 创建可被提示指针指向的场景节点
//
// 参数：
//   - em: 实体管理器
//   - name: 节点名称，提示脚本通过名称引用
//   - world: 世界坐标（挂在场景根下）
//   - order: 默认目标列表中的顺序
//   - radius: 高亮圈半径（像素）
func NewHintTargetNode(em *ecs.EntityManager, name string, world types.Vec3, order int, radius float64) ecs.EntityID {
	id := NewSceneNode(em, name, 0, world)
	em.AddComponent(id, &components.HintTargetComponent{Order: order, Radius: radius})
	em.AddComponent(id, &components.VisibilityComponent{Visible: true})
	return id
}

// FindByName 按名称查找存活的场景节点
// 同名节点有多个时返回ID最小的一个
func FindByName(em *ecs.EntityManager, name string) (ecs.EntityID, bool) {
	if name == "" {
		return 0, false
	}
	for _, id := range ecs.GetEntitiesWith1[*components.NameComponent](em) {
		if n, ok := ecs.GetComponent[*components.NameComponent](em, id); ok && n.Name == name {
			return id, true
		}
	}
	return 0, false
}

// DestroyActor 销毁场景节点
// 子节点不会被级联销毁，它们的父引用失效后视为挂在场景根下
func DestroyActor(em *ecs.EntityManager, id ecs.EntityID) {
	if id == 0 {
		return
	}
	em.DestroyEntity(id)
}
