package entities

import (
	"github.com/gonewx/hinthand/pkg/components"
	"github.com/gonewx/hinthand/pkg/ecs"
	"github.com/gonewx/hinthand/pkg/types"
)

// maxParentDepth 父链遍历上限，防止配置错误导致的环
const maxParentDepth = 32

// GetWorldPosition 获取实体的世界坐标（沿父链累加本地坐标）
//
// 返回：
//   - types.Vec3: 世界坐标
//   - bool: 实体不存活或没有 PositionComponent 时返回 false
func GetWorldPosition(em *ecs.EntityManager, id ecs.EntityID) (types.Vec3, bool) {
	if !em.IsAlive(id) {
		return types.Vec3{}, false
	}
	pos, ok := ecs.GetComponent[*components.PositionComponent](em, id)
	if !ok {
		return types.Vec3{}, false
	}
	return pos.Vec3.Add(parentWorldPosition(em, id)), true
}

// SetWorldPosition 设置实体的世界坐标
// 有父实体时换算为相对父实体的本地坐标
//
// 返回：
//   - bool: 实体不存活或没有 PositionComponent 时返回 false
func SetWorldPosition(em *ecs.EntityManager, id ecs.EntityID, world types.Vec3) bool {
	if !em.IsAlive(id) {
		return false
	}
	pos, ok := ecs.GetComponent[*components.PositionComponent](em, id)
	if !ok {
		return false
	}
	pos.Vec3 = world.Sub(parentWorldPosition(em, id))
	return true
}

// parentWorldPosition 返回父实体的世界坐标，没有父实体时为原点
func parentWorldPosition(em *ecs.EntityManager, id ecs.EntityID) types.Vec3 {
	var sum types.Vec3
	current := id
	for depth := 0; depth < maxParentDepth; depth++ {
		parent, ok := ecs.GetComponent[*components.ParentComponent](em, current)
		if !ok || parent.Parent == 0 || !em.IsAlive(parent.Parent) {
			return sum
		}
		if pos, ok := ecs.GetComponent[*components.PositionComponent](em, parent.Parent); ok {
			sum = sum.Add(pos.Vec3)
		}
		current = parent.Parent
	}
	return sum
}

// SetParent 把实体挂到新的父实体下，保持世界坐标不变
// parent 为 0 表示挂回场景根
func SetParent(em *ecs.EntityManager, id, parent ecs.EntityID) bool {
	if !em.IsAlive(id) || id == parent {
		return false
	}
	if parent != 0 && !em.IsAlive(parent) {
		return false
	}

	world, hasPos := GetWorldPosition(em, id)

	if comp, ok := ecs.GetComponent[*components.ParentComponent](em, id); ok {
		comp.Parent = parent
	} else {
		ecs.AddComponent(em, id, &components.ParentComponent{Parent: parent})
	}

	if hasPos {
		SetWorldPosition(em, id, world)
	}
	return true
}

// GetScale 获取实体缩放
func GetScale(em *ecs.EntityManager, id ecs.EntityID) (types.Vec3, bool) {
	if !em.IsAlive(id) {
		return types.Vec3{}, false
	}
	scale, ok := ecs.GetComponent[*components.ScaleComponent](em, id)
	if !ok {
		return types.Vec3{}, false
	}
	return types.Vec3{X: scale.ScaleX, Y: scale.ScaleY, Z: scale.ScaleZ}, true
}

// SetScale 设置实体缩放，没有 ScaleComponent 时自动添加
func SetScale(em *ecs.EntityManager, id ecs.EntityID, s types.Vec3) bool {
	if !em.IsAlive(id) {
		return false
	}
	if scale, ok := ecs.GetComponent[*components.ScaleComponent](em, id); ok {
		scale.ScaleX, scale.ScaleY, scale.ScaleZ = s.X, s.Y, s.Z
		return true
	}
	ecs.AddComponent(em, id, &components.ScaleComponent{ScaleX: s.X, ScaleY: s.Y, ScaleZ: s.Z})
	return true
}

// SetVisible 设置实体可见性，没有 VisibilityComponent 时自动添加
func SetVisible(em *ecs.EntityManager, id ecs.EntityID, visible bool) bool {
	if !em.IsAlive(id) {
		return false
	}
	if vis, ok := ecs.GetComponent[*components.VisibilityComponent](em, id); ok {
		vis.Visible = visible
		return true
	}
	ecs.AddComponent(em, id, &components.VisibilityComponent{Visible: visible})
	return true
}

// IsVisible 返回实体是否可见
// 没有 VisibilityComponent 的存活实体默认可见
func IsVisible(em *ecs.EntityManager, id ecs.EntityID) bool {
	if !em.IsAlive(id) {
		return false
	}
	if vis, ok := ecs.GetComponent[*components.VisibilityComponent](em, id); ok {
		return vis.Visible
	}
	return true
}
