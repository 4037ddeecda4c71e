package systems

import (
	"fmt"
	"log"

	"github.com/gonewx/hinthand/pkg/components"
	"github.com/gonewx/hinthand/pkg/ecs"
)

// TimerSystem 驱动 TimerComponent，提供延迟回调和周期回调
//
// 每个计时器是一个独立实体，实体ID即句柄；回调在 Update 中同步执行，
// 与其他系统运行在同一个游戏线程上
type TimerSystem struct {
	entityManager *ecs.EntityManager
}

// NewTimerSystem 创建计时器系统
func NewTimerSystem(em *ecs.EntityManager) *TimerSystem {
	return &TimerSystem{
		entityManager: em,
	}
}

// Schedule 注册周期回调
//
// 参数：
//   - name: 计时器名称（仅用于日志）
//   - interval: 间隔（秒），必须大于 0
//   - callback: 每次到期时调用
//
// 返回：
//   - ecs.EntityID: 句柄，用于 Unschedule
//   - error: 参数非法
func (s *TimerSystem) Schedule(name string, interval float64, callback func()) (ecs.EntityID, error) {
	if interval <= 0 {
		return 0, fmt.Errorf("timer %q: interval must be positive, got %v", name, interval)
	}
	return s.add(name, interval, true, callback)
}

// ScheduleOnce 注册一次性延迟回调
// delay 为 0 时在下一次 Update 触发
func (s *TimerSystem) ScheduleOnce(name string, delay float64, callback func()) (ecs.EntityID, error) {
	if delay < 0 {
		return 0, fmt.Errorf("timer %q: delay cannot be negative, got %v", name, delay)
	}
	return s.add(name, delay, false, callback)
}

func (s *TimerSystem) add(name string, target float64, repeat bool, callback func()) (ecs.EntityID, error) {
	if callback == nil {
		return 0, fmt.Errorf("timer %q: callback cannot be nil", name)
	}
	id := s.entityManager.CreateEntity()
	ecs.AddComponent(s.entityManager, id, &components.TimerComponent{
		Name:       name,
		TargetTime: target,
		Repeat:     repeat,
		Callback:   callback,
	})
	return id, nil
}

// Unschedule 取消计时器，句柄无效时静默忽略
func (s *TimerSystem) Unschedule(handle ecs.EntityID) {
	if !s.IsScheduled(handle) {
		return
	}
	s.entityManager.DestroyEntity(handle)
}

// IsScheduled 检查句柄对应的计时器是否仍在运行
func (s *TimerSystem) IsScheduled(handle ecs.EntityID) bool {
	return s.entityManager.IsAlive(handle) &&
		ecs.HasComponent[*components.TimerComponent](s.entityManager, handle)
}

// Update 推进所有计时器
//
// 参数：
//   - dt: 时间增量（秒）
//
// 按句柄升序处理；回调中新注册的计时器从下一帧开始计时，
// 回调中取消的计时器本帧不再触发
func (s *TimerSystem) Update(dt float64) {
	timers := ecs.GetEntitiesWith1[*components.TimerComponent](s.entityManager)

	for _, id := range timers {
		if !s.entityManager.IsAlive(id) {
			continue
		}
		timer, ok := ecs.GetComponent[*components.TimerComponent](s.entityManager, id)
		if !ok {
			continue
		}

		timer.CurrentTime += dt

		if timer.Repeat {
			// 掉帧时补齐错过的周期，保证"每秒一次"的语义
			for timer.CurrentTime >= timer.TargetTime && s.entityManager.IsAlive(id) {
				timer.CurrentTime -= timer.TargetTime
				timer.Callback()
			}
			continue
		}

		if timer.CurrentTime >= timer.TargetTime && !timer.IsReady {
			timer.IsReady = true
			s.entityManager.DestroyEntity(id)
			timer.Callback()
		}
	}
}

// Cleanup 取消所有计时器
func (s *TimerSystem) Cleanup() {
	timers := ecs.GetEntitiesWith1[*components.TimerComponent](s.entityManager)
	for _, id := range timers {
		s.entityManager.DestroyEntity(id)
	}
	log.Printf("[TimerSystem] Cleanup completed, %d timers cancelled", len(timers))
}
