package systems

import (
	"fmt"
	"log"

	"github.com/gonewx/hinthand/pkg/components"
	"github.com/gonewx/hinthand/pkg/config"
	"github.com/gonewx/hinthand/pkg/event"
)

// startInactivityMonitor 注册每秒一次的空闲计时
// 已有计时器时先取消，保证同一时间只有一个 Tick 在跑
func (s *HintSystem) startInactivityMonitor(comp *components.HintComponent) error {
	if comp.TickTimerID != 0 {
		s.scheduler.Unschedule(comp.TickTimerID)
		comp.TickTimerID = 0
	}

	handle, err := s.scheduler.Schedule("hint-inactivity-tick", config.InactivityTickInterval, s.Tick)
	if err != nil {
		return fmt.Errorf("failed to schedule inactivity tick: %w", err)
	}
	comp.TickTimerID = handle
	comp.InactivityTime = 0
	return nil
}

// Tick 空闲监控的每秒回调
//
// 执行流程：
//  1. 未就绪、提示关闭或已有提示在播放时不计数
//  2. 空闲秒数 +1
//  3. 达到阈值时发出 player-inactive，启动空闲提示，并把计数清零
//
// 计数清零不依赖提示是否真正启动（例如没有目标时也会清零）
func (s *HintSystem) Tick() {
	comp, ok := s.component()
	if !ok || !comp.IsReady || !comp.HintsEnabled || comp.IsActive {
		return
	}

	comp.InactivityTime++
	if comp.InactivityTime < comp.InactivityDelay {
		return
	}

	log.Printf("[HintSystem] Player inactive for %ds, showing inactivity hint", comp.InactivityTime)
	s.events.Emit(event.PlayerInactive())
	s.ShowInactivityHint()
	comp.InactivityTime = 0
}

// ResetInactivityTimer 玩家有操作时调用，空闲计数清零
// 不影响正在播放的提示
func (s *HintSystem) ResetInactivityTimer() {
	if comp, ok := s.component(); ok {
		comp.InactivityTime = 0
	}
}

// SetInactivityDelay 设置空闲阈值（秒）并清零计数
// 非正数被拒绝，阈值保持不变
func (s *HintSystem) SetInactivityDelay(seconds int) {
	comp, ok := s.component()
	if !ok {
		return
	}
	if seconds <= 0 {
		log.Printf("[HintSystem] Warning: invalid inactivity delay %d ignored (current: %d)", seconds, comp.InactivityDelay)
		return
	}
	comp.InactivityDelay = seconds
	comp.InactivityTime = 0
}

// InactivityTime 返回当前空闲秒数
func (s *HintSystem) InactivityTime() int {
	comp, ok := s.component()
	if !ok {
		return 0
	}
	return comp.InactivityTime
}

// InactivityDelay 返回空闲阈值（秒）
func (s *HintSystem) InactivityDelay() int {
	comp, ok := s.component()
	if !ok {
		return 0
	}
	return comp.InactivityDelay
}
