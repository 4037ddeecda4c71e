package entities

import (
	"testing"

	"github.com/gonewx/hinthand/pkg/components"
	"github.com/gonewx/hinthand/pkg/ecs"
	"github.com/gonewx/hinthand/pkg/types"
)

// TestWorldPosition_ParentChain 测试世界坐标沿父链累加
func TestWorldPosition_ParentChain(t *testing.T) {
	em := ecs.NewEntityManager()
	root := NewSceneNode(em, "UIRoot", 0, types.Vec3{X: 100, Y: 50})
	layer := NewSceneNode(em, "HintLayer", root, types.Vec3{X: 10, Y: 10})
	child := NewSceneNode(em, "Child", layer, types.Vec3{X: 1, Y: 2, Z: 3})

	got, ok := GetWorldPosition(em, child)
	if !ok {
		t.Fatal("Expected world position for live child")
	}
	want := types.Vec3{X: 111, Y: 62, Z: 3}
	if got != want {
		t.Errorf("World position = %+v, want %+v", got, want)
	}
}

// TestSetWorldPosition_ConvertsToLocal 测试设置世界坐标会换算成本地坐标
func TestSetWorldPosition_ConvertsToLocal(t *testing.T) {
	em := ecs.NewEntityManager()
	layer := NewSceneNode(em, "HintLayer", 0, types.Vec3{X: 20, Y: 30})
	node := NewSceneNode(em, "Pointer", layer, types.Vec3{})

	if !SetWorldPosition(em, node, types.Vec3{X: 25, Y: 35, Z: 1}) {
		t.Fatal("SetWorldPosition failed")
	}

	pos, _ := ecs.GetComponent[*components.PositionComponent](em, node)
	if pos.Vec3 != (types.Vec3{X: 5, Y: 5, Z: 1}) {
		t.Errorf("Local position = %+v, want (5,5,1)", pos.Vec3)
	}

	world, _ := GetWorldPosition(em, node)
	if world != (types.Vec3{X: 25, Y: 35, Z: 1}) {
		t.Errorf("World position = %+v, want (25,35,1)", world)
	}
}

// TestSetParent_KeepsWorldPosition 测试改变父节点时世界坐标不变
func TestSetParent_KeepsWorldPosition(t *testing.T) {
	em := ecs.NewEntityManager()
	a := NewSceneNode(em, "A", 0, types.Vec3{X: 10})
	b := NewSceneNode(em, "B", 0, types.Vec3{Y: 40})
	node := NewSceneNode(em, "Node", a, types.Vec3{X: 5})

	if !SetParent(em, node, b) {
		t.Fatal("SetParent failed")
	}

	world, _ := GetWorldPosition(em, node)
	if world != (types.Vec3{X: 15}) {
		t.Errorf("World position after reparent = %+v, want (15,0,0)", world)
	}

	if SetParent(em, node, node) {
		t.Error("Entity must not become its own parent")
	}

	em.DestroyEntity(a)
	if SetParent(em, node, a) {
		t.Error("SetParent to a destroyed parent should fail")
	}
}

// TestWorldPosition_DestroyedEntity 测试已销毁实体没有世界坐标
func TestWorldPosition_DestroyedEntity(t *testing.T) {
	em := ecs.NewEntityManager()
	node := NewHintTargetNode(em, "Sun", types.Vec3{X: 1}, 0, 20)

	DestroyActor(em, node)

	if _, ok := GetWorldPosition(em, node); ok {
		t.Error("Destroyed entity should not report a world position")
	}
	if SetWorldPosition(em, node, types.Vec3{}) {
		t.Error("SetWorldPosition on destroyed entity should fail")
	}
}

// TestScaleAndVisibility 测试缩放和可见性访问
func TestScaleAndVisibility(t *testing.T) {
	em := ecs.NewEntityManager()
	node := NewSceneNode(em, "", 0, types.Vec3{})

	if !IsVisible(em, node) {
		t.Error("Node without VisibilityComponent should be visible")
	}

	SetVisible(em, node, false)
	if IsVisible(em, node) {
		t.Error("Node should be hidden after SetVisible(false)")
	}

	SetScale(em, node, types.Vec3{X: 2, Y: 3, Z: 1})
	scale, ok := GetScale(em, node)
	if !ok || scale != (types.Vec3{X: 2, Y: 3, Z: 1}) {
		t.Errorf("GetScale = %+v (%v), want (2,3,1)", scale, ok)
	}
}

// TestFindByName 测试按名称查找节点
func TestFindByName(t *testing.T) {
	em := ecs.NewEntityManager()
	first := NewSceneNode(em, "SeedBank", 0, types.Vec3{})
	NewSceneNode(em, "SeedBank", 0, types.Vec3{})

	id, ok := FindByName(em, "SeedBank")
	if !ok || id != first {
		t.Errorf("FindByName = %d (%v), want %d", id, ok, first)
	}

	if _, ok := FindByName(em, "Shovel"); ok {
		t.Error("Unknown name should not be found")
	}
	if _, ok := FindByName(em, ""); ok {
		t.Error("Empty name should not be found")
	}
}
