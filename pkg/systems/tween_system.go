package systems

import (
	"errors"
	"fmt"
	"log"

	"github.com/gonewx/hinthand/pkg/components"
	"github.com/gonewx/hinthand/pkg/ecs"
	"github.com/gonewx/hinthand/pkg/entities"
	"github.com/gonewx/hinthand/pkg/types"
	"github.com/gonewx/hinthand/pkg/utils"
)

// ErrTweenTargetLost 补间过程中目标实体失效
var ErrTweenTargetLost = errors.New("tween target no longer exists")

// TweenSystem 补间动画系统
//
// 对实体的世界坐标或缩放做插值（默认线性，可按属性设置缓动），完成时调用回调；
// 延迟补间（TweenDelay）不修改属性，只用于在动画序列中插入停顿，
// 与属性补间一样绑定在目标实体上，可被 StopAll 一并取消
type TweenSystem struct {
	entityManager *ecs.EntityManager
	easing        map[components.TweenProperty]utils.EasingFunc
}

// NewTweenSystem 创建补间系统
func NewTweenSystem(em *ecs.EntityManager) *TweenSystem {
	return &TweenSystem{
		entityManager: em,
		easing:        make(map[components.TweenProperty]utils.EasingFunc),
	}
}

// SetEasing 设置某类属性补间的缓动曲线，nil 恢复线性
// 对正在运行的补间立即生效
func (s *TweenSystem) SetEasing(property components.TweenProperty, ease utils.EasingFunc) {
	if ease == nil {
		delete(s.easing, property)
		return
	}
	s.easing[property] = ease
}

func (s *TweenSystem) ease(property components.TweenProperty, progress float64) float64 {
	if ease, ok := s.easing[property]; ok {
		return ease(progress)
	}
	return progress
}

// TweenPosition 把目标实体的世界坐标从当前值补间到 to
//
// 参数：
//   - target: 目标实体
//   - to: 终点世界坐标
//   - duration: 时长（秒）
//   - onComplete: 完成回调，err 非 nil 表示目标在补间中失效
//
// 返回：
//   - error: 目标不存在或参数非法（此时不会调用 onComplete）
func (s *TweenSystem) TweenPosition(target ecs.EntityID, to types.Vec3, duration float64, onComplete func(error)) error {
	return s.add(target, components.TweenWorldPosition, to, duration, onComplete)
}

// TweenScale 把目标实体的缩放从当前值补间到 to
func (s *TweenSystem) TweenScale(target ecs.EntityID, to types.Vec3, duration float64, onComplete func(error)) error {
	return s.add(target, components.TweenScale, to, duration, onComplete)
}

// Delay 在目标实体上插入一段等待
func (s *TweenSystem) Delay(target ecs.EntityID, duration float64, onComplete func(error)) error {
	return s.add(target, components.TweenDelay, types.Vec3{}, duration, onComplete)
}

func (s *TweenSystem) add(target ecs.EntityID, property components.TweenProperty, to types.Vec3, duration float64, onComplete func(error)) error {
	if !s.entityManager.IsAlive(target) {
		return fmt.Errorf("tween target %d: %w", target, ErrTweenTargetLost)
	}
	if duration < 0 {
		return fmt.Errorf("tween duration cannot be negative, got %v", duration)
	}

	id := s.entityManager.CreateEntity()
	ecs.AddComponent(s.entityManager, id, &components.TweenComponent{
		Target:     target,
		Property:   property,
		To:         to,
		Duration:   duration,
		OnComplete: onComplete,
	})
	return nil
}

// StopAll 立即取消目标实体上的所有补间和延迟，不调用它们的回调
// 属性保持在当前插值位置
//
// 返回：
//   - int: 取消的补间数量
func (s *TweenSystem) StopAll(target ecs.EntityID) int {
	stopped := 0
	for _, id := range ecs.GetEntitiesWith1[*components.TweenComponent](s.entityManager) {
		tween, ok := ecs.GetComponent[*components.TweenComponent](s.entityManager, id)
		if !ok || tween.Target != target {
			continue
		}
		tween.OnComplete = nil
		s.entityManager.DestroyEntity(id)
		stopped++
	}
	if stopped > 0 {
		log.Printf("[TweenSystem] Stopped %d tweens on entity %d", stopped, target)
	}
	return stopped
}

// ActiveCount 返回目标实体上正在运行的补间数量
func (s *TweenSystem) ActiveCount(target ecs.EntityID) int {
	count := 0
	for _, id := range ecs.GetEntitiesWith1[*components.TweenComponent](s.entityManager) {
		if tween, ok := ecs.GetComponent[*components.TweenComponent](s.entityManager, id); ok && tween.Target == target {
			count++
		}
	}
	return count
}

// Update 推进所有补间
//
// 参数：
//   - dt: 时间增量（秒）
func (s *TweenSystem) Update(dt float64) {
	tweens := ecs.GetEntitiesWith1[*components.TweenComponent](s.entityManager)

	for _, id := range tweens {
		// 本帧已被前面的回调取消
		if !s.entityManager.IsAlive(id) {
			continue
		}
		tween, ok := ecs.GetComponent[*components.TweenComponent](s.entityManager, id)
		if !ok {
			continue
		}

		if !s.entityManager.IsAlive(tween.Target) {
			s.finish(id, tween, fmt.Errorf("tween target %d: %w", tween.Target, ErrTweenTargetLost))
			continue
		}

		if !tween.Started {
			tween.From = s.sample(tween)
			tween.Started = true
		}

		tween.Elapsed += dt
		s.apply(tween, tween.From.Lerp(tween.To, s.ease(tween.Property, tween.GetProgress())))

		if tween.GetProgress() >= 1.0 {
			s.finish(id, tween, nil)
		}
	}
}

// sample 采样目标属性的当前值作为起点
func (s *TweenSystem) sample(tween *components.TweenComponent) types.Vec3 {
	switch tween.Property {
	case components.TweenWorldPosition:
		pos, _ := entities.GetWorldPosition(s.entityManager, tween.Target)
		return pos
	case components.TweenScale:
		scale, _ := entities.GetScale(s.entityManager, tween.Target)
		return scale
	default:
		return types.Vec3{}
	}
}

// apply 把插值结果写回目标属性
func (s *TweenSystem) apply(tween *components.TweenComponent, value types.Vec3) {
	switch tween.Property {
	case components.TweenWorldPosition:
		entities.SetWorldPosition(s.entityManager, tween.Target, value)
	case components.TweenScale:
		entities.SetScale(s.entityManager, tween.Target, value)
	}
}

// finish 销毁补间实体后再调用回调，回调中可以安全地创建新补间
func (s *TweenSystem) finish(id ecs.EntityID, tween *components.TweenComponent, err error) {
	s.entityManager.DestroyEntity(id)
	callback := tween.OnComplete
	tween.OnComplete = nil
	if callback != nil {
		callback(err)
	}
}
