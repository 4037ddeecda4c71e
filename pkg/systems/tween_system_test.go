package systems

import (
	"errors"
	"testing"

	"github.com/gonewx/hinthand/pkg/components"
	"github.com/gonewx/hinthand/pkg/ecs"
	"github.com/gonewx/hinthand/pkg/entities"
	"github.com/gonewx/hinthand/pkg/types"
	"github.com/gonewx/hinthand/pkg/utils"
)

// TestTweenSystem_Position 测试世界坐标补间
func TestTweenSystem_Position(t *testing.T) {
	em := ecs.NewEntityManager()
	tw := NewTweenSystem(em)
	node := entities.NewSceneNode(em, "node", 0, types.Vec3{})

	done := 0
	var doneErr error
	err := tw.TweenPosition(node, types.Vec3{X: 8, Y: 4}, 1.0, func(err error) {
		done++
		doneErr = err
	})
	if err != nil {
		t.Fatalf("TweenPosition() error: %v", err)
	}

	tw.Update(0.5)
	mid, _ := entities.GetWorldPosition(em, node)
	if mid != (types.Vec3{X: 4, Y: 2}) {
		t.Errorf("Halfway position = %+v, want (4,2,0)", mid)
	}
	if done != 0 {
		t.Fatal("Tween completed too early")
	}

	tw.Update(0.5)
	end, _ := entities.GetWorldPosition(em, node)
	if end != (types.Vec3{X: 8, Y: 4}) {
		t.Errorf("Final position = %+v, want (8,4,0)", end)
	}
	if done != 1 || doneErr != nil {
		t.Errorf("Expected one successful completion, got %d (err=%v)", done, doneErr)
	}

	tw.Update(0.5)
	if done != 1 {
		t.Error("Completed tween should not fire again")
	}
}

// TestTweenSystem_StartsFromCurrentValue 测试补间从开始时刻的当前值出发
func TestTweenSystem_StartsFromCurrentValue(t *testing.T) {
	em := ecs.NewEntityManager()
	tw := NewTweenSystem(em)
	node := entities.NewSceneNode(em, "node", 0, types.Vec3{})

	tw.TweenPosition(node, types.Vec3{X: 10}, 1.0, nil)
	// 补间创建后、第一次更新前移动节点
	entities.SetWorldPosition(em, node, types.Vec3{X: 6})

	tw.Update(0.5)
	pos, _ := entities.GetWorldPosition(em, node)
	if pos != (types.Vec3{X: 8}) {
		t.Errorf("Position = %+v, want (8,0,0)", pos)
	}
}

// TestTweenSystem_Scale 测试缩放补间
func TestTweenSystem_Scale(t *testing.T) {
	em := ecs.NewEntityManager()
	tw := NewTweenSystem(em)
	node := entities.NewSceneNode(em, "node", 0, types.Vec3{})
	entities.SetScale(em, node, types.Uniform(1))

	tw.TweenScale(node, types.Vec3{X: 0.5, Y: 0.5, Z: 1}, 0.25, nil)
	tw.Update(0.25)

	scale, _ := entities.GetScale(em, node)
	if scale != (types.Vec3{X: 0.5, Y: 0.5, Z: 1}) {
		t.Errorf("Scale = %+v, want (0.5,0.5,1)", scale)
	}
}

// TestTweenSystem_ZeroDuration 测试零时长补间在下一帧完成
func TestTweenSystem_ZeroDuration(t *testing.T) {
	em := ecs.NewEntityManager()
	tw := NewTweenSystem(em)
	node := entities.NewSceneNode(em, "node", 0, types.Vec3{})

	done := false
	tw.Delay(node, 0, func(error) { done = true })
	if done {
		t.Fatal("Delay must not complete synchronously")
	}
	tw.Update(0)
	if !done {
		t.Error("Zero-length delay should complete on the next update")
	}
}

// TestTweenSystem_StopAll 测试取消目标上的所有补间且不调用回调
func TestTweenSystem_StopAll(t *testing.T) {
	em := ecs.NewEntityManager()
	tw := NewTweenSystem(em)
	node := entities.NewSceneNode(em, "node", 0, types.Vec3{})
	other := entities.NewSceneNode(em, "other", 0, types.Vec3{})

	called := false
	tw.TweenPosition(node, types.Vec3{X: 10}, 1.0, func(error) { called = true })
	tw.Delay(node, 1.0, func(error) { called = true })
	tw.Delay(other, 1.0, nil)

	tw.Update(0.5)
	if n := tw.StopAll(node); n != 2 {
		t.Errorf("Expected 2 tweens stopped, got %d", n)
	}

	pos, _ := entities.GetWorldPosition(em, node)
	tw.Update(1.0)
	after, _ := entities.GetWorldPosition(em, node)

	if called {
		t.Error("Stopped tweens must not invoke their callbacks")
	}
	if pos != after {
		t.Errorf("Stopped tween should not move the node: %+v -> %+v", pos, after)
	}
	if tw.ActiveCount(other) != 0 {
		t.Error("Tween on other entity should have completed normally")
	}
}

// TestTweenSystem_TargetLost 测试目标在补间中被销毁时以错误回调
func TestTweenSystem_TargetLost(t *testing.T) {
	em := ecs.NewEntityManager()
	tw := NewTweenSystem(em)
	node := entities.NewSceneNode(em, "node", 0, types.Vec3{})

	var gotErr error
	tw.TweenPosition(node, types.Vec3{X: 10}, 1.0, func(err error) { gotErr = err })
	tw.Update(0.25)

	em.DestroyEntity(node)
	tw.Update(0.25)

	if !errors.Is(gotErr, ErrTweenTargetLost) {
		t.Errorf("Expected ErrTweenTargetLost, got %v", gotErr)
	}
}

// TestTweenSystem_InvalidTarget 测试对不存在的实体创建补间
func TestTweenSystem_InvalidTarget(t *testing.T) {
	em := ecs.NewEntityManager()
	tw := NewTweenSystem(em)

	if err := tw.TweenPosition(42, types.Vec3{}, 1, nil); !errors.Is(err, ErrTweenTargetLost) {
		t.Errorf("Expected ErrTweenTargetLost, got %v", err)
	}

	node := entities.NewSceneNode(em, "node", 0, types.Vec3{})
	if err := tw.Delay(node, -1, nil); err == nil {
		t.Error("Expected error for negative duration")
	}
}

// TestTweenSystem_ChainFromCallback 测试在回调中创建下一段补间
func TestTweenSystem_ChainFromCallback(t *testing.T) {
	em := ecs.NewEntityManager()
	tw := NewTweenSystem(em)
	node := entities.NewSceneNode(em, "node", 0, types.Vec3{})

	steps := 0
	tw.TweenPosition(node, types.Vec3{X: 1}, 0.25, func(error) {
		steps++
		tw.TweenPosition(node, types.Vec3{X: 2}, 0.25, func(error) { steps++ })
	})

	tw.Update(0.25)
	if steps != 1 {
		t.Fatalf("Expected first step only, got %d", steps)
	}
	tw.Update(0.25)
	if steps != 2 {
		t.Fatalf("Expected chained step to complete, got %d", steps)
	}

	pos, _ := entities.GetWorldPosition(em, node)
	if pos != (types.Vec3{X: 2}) {
		t.Errorf("Final position = %+v, want (2,0,0)", pos)
	}
}

// TestTweenSystem_Easing 测试按属性设置缓动曲线
func TestTweenSystem_Easing(t *testing.T) {
	em := ecs.NewEntityManager()
	tw := NewTweenSystem(em)
	node := entities.NewSceneNode(em, "node", 0, types.Vec3{})

	entities.SetScale(em, node, types.Uniform(1))
	tw.SetEasing(components.TweenWorldPosition, utils.EaseOutQuad)
	tw.TweenPosition(node, types.Vec3{X: 8}, 1.0, nil)
	tw.TweenScale(node, types.Uniform(0), 1.0, nil)

	tw.Update(0.5)
	pos, _ := entities.GetWorldPosition(em, node)
	if pos != (types.Vec3{X: 6}) {
		t.Errorf("Eased position = %+v, want (6,0,0)", pos)
	}
	// 缩放补间不受位置缓动影响
	scale, _ := entities.GetScale(em, node)
	if scale != types.Uniform(0.5) {
		t.Errorf("Linear scale = %+v, want 0.5", scale)
	}

	tw.Update(0.5)
	pos, _ = entities.GetWorldPosition(em, node)
	if pos != (types.Vec3{X: 8}) {
		t.Errorf("Final position = %+v, want exact (8,0,0)", pos)
	}

	// nil 恢复线性
	tw.SetEasing(components.TweenWorldPosition, nil)
	tw.TweenPosition(node, types.Vec3{X: 0}, 1.0, nil)
	tw.Update(0.25)
	pos, _ = entities.GetWorldPosition(em, node)
	if pos != (types.Vec3{X: 6}) {
		t.Errorf("Linear position = %+v, want (6,0,0)", pos)
	}
}
