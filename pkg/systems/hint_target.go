package systems

import (
	"sort"

	"github.com/gonewx/hinthand/pkg/components"
	"github.com/gonewx/hinthand/pkg/ecs"
	"github.com/gonewx/hinthand/pkg/entities"
	"github.com/gonewx/hinthand/pkg/types"
)

// HintTarget 提示指针要指向的目标
//
// 目标的有效性可能在提示播放过程中变化（例如目标节点被销毁），
// 序列器在轮到该目标时才检查 IsValid 并采样 WorldPosition
type HintTarget interface {
	// IsValid 目标当前是否可用
	IsValid() bool

	// WorldPosition 目标当前的世界坐标，不可用时返回 false
	WorldPosition() (types.Vec3, bool)
}

// ActorTarget 指向场景节点的目标
// 只持有实体ID（弱引用），不拥有也不会销毁该节点
type ActorTarget struct {
	entityManager *ecs.EntityManager
	Entity        ecs.EntityID
}

// NewActorTarget 创建指向场景节点的目标
func NewActorTarget(em *ecs.EntityManager, id ecs.EntityID) ActorTarget {
	return ActorTarget{entityManager: em, Entity: id}
}

// IsValid 节点存活且有位置时有效
func (t ActorTarget) IsValid() bool {
	if t.entityManager == nil {
		return false
	}
	return t.entityManager.IsAlive(t.Entity) &&
		ecs.HasComponent[*components.PositionComponent](t.entityManager, t.Entity)
}

// WorldPosition 返回节点当前的世界坐标
func (t ActorTarget) WorldPosition() (types.Vec3, bool) {
	if t.entityManager == nil {
		return types.Vec3{}, false
	}
	return entities.GetWorldPosition(t.entityManager, t.Entity)
}

// PointTarget 固定的世界坐标点，始终有效
type PointTarget struct {
	Position types.Vec3
}

// IsValid 始终返回 true
func (t PointTarget) IsValid() bool {
	return true
}

// WorldPosition 返回固定坐标
func (t PointTarget) WorldPosition() (types.Vec3, bool) {
	return t.Position, true
}

// SceneHintTargets 返回场景中所有带 HintTargetComponent 的节点
// 按 Order 升序（相同 Order 按实体ID）排列，用作默认目标列表
func SceneHintTargets(em *ecs.EntityManager) []HintTarget {
	ids := ecs.GetEntitiesWith2[*components.HintTargetComponent, *components.PositionComponent](em)

	type ordered struct {
		id    ecs.EntityID
		order int
	}
	list := make([]ordered, 0, len(ids))
	for _, id := range ids {
		comp, _ := ecs.GetComponent[*components.HintTargetComponent](em, id)
		list = append(list, ordered{id: id, order: comp.Order})
	}

	// ids 已按实体ID升序，稳定排序保证同 Order 时按ID排列
	sort.SliceStable(list, func(i, j int) bool { return list[i].order < list[j].order })

	targets := make([]HintTarget, 0, len(list))
	for _, o := range list {
		targets = append(targets, NewActorTarget(em, o.id))
	}
	return targets
}
