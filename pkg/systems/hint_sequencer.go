package systems

import (
	"fmt"
	"log"

	"github.com/gonewx/hinthand/pkg/components"
	"github.com/gonewx/hinthand/pkg/config"
	"github.com/gonewx/hinthand/pkg/entities"
	"github.com/gonewx/hinthand/pkg/event"
	"github.com/gonewx/hinthand/pkg/types"
)

// hintSession 一次提示的运行状态
// 会话结束（完成、出错、Stop）后被丢弃，旧会话的回调通过指针比较识别并忽略
type hintSession struct {
	id       uint64
	hintType types.HintType
	targets  []HintTarget
	index    int
	state    types.HintState
}

// startSequence Idle → Activating
func (s *HintSystem) startSequence(comp *components.HintComponent, hintType types.HintType, targets []HintTarget) {
	if len(targets) == 0 {
		log.Printf("[HintSystem] Warning: %s hint dropped: %v", hintType, ErrNoTargetsAvailable)
		return
	}
	if len(targets) > config.MaxHintTargets {
		targets = targets[:config.MaxHintTargets]
	}

	s.nextSessionID++
	sess := &hintSession{
		id:       s.nextSessionID,
		hintType: hintType,
		targets:  append([]HintTarget(nil), targets...),
		state:    types.HintStateActivating,
	}
	s.session = sess
	comp.IsActive = true
	entities.SetScale(s.entityManager, comp.PointerEntityID, comp.PointerScale)
	entities.SetVisible(s.entityManager, comp.PointerEntityID, true)

	log.Printf("[HintSystem] Hint %s started (session %d, %d targets)", hintType, sess.id, len(sess.targets))
	s.events.Emit(event.HintStart(hintType))

	s.guard(sess, func() { s.activate(sess) })
}

// activate 把指针直接放到第一个目标上，停留片刻后开始移动
func (s *HintSystem) activate(sess *hintSession) {
	comp, ok := s.component()
	if !ok {
		return
	}
	sess.state = types.HintStateActivating

	pos, valid := targetPosition(sess.targets[0])
	if !valid {
		log.Printf("[HintSystem] First target of %s hint is invalid, completing", sess.hintType)
		s.complete(sess)
		return
	}

	if !entities.SetWorldPosition(s.entityManager, comp.PointerEntityID, pos.Add(comp.PointerOffset)) {
		s.fail(sess, fmt.Errorf("pointer entity %d is gone", comp.PointerEntityID))
		return
	}

	sess.state = types.HintStateSettling
	err := s.tweener.Delay(comp.PointerEntityID, config.HintSettleDelay, s.continuation(sess, func() {
		s.moveTo(sess, 0)
	}))
	if err != nil {
		s.fail(sess, err)
	}
}

// moveTo Moving(i)：移动到第 i 个目标，到达后按压，按压结束后处理下一个
// 失效的目标直接跳过；超出列表时完成
func (s *HintSystem) moveTo(sess *hintSession, index int) {
	comp, ok := s.component()
	if !ok {
		return
	}

	for ; index < len(sess.targets); index++ {
		sess.index = index
		pos, valid := targetPosition(sess.targets[index])
		if !valid {
			log.Printf("[HintSystem] Skipping target %d of %s hint: %v", index, sess.hintType, ErrTargetInvalid)
			continue
		}

		sess.state = types.HintStateMoving
		next := index + 1
		err := s.tweener.TweenPosition(comp.PointerEntityID, pos.Add(comp.PointerOffset), comp.MoveSpeed, s.continuation(sess, func() {
			s.playPressAnimation(sess, func() { s.moveTo(sess, next) })
		}))
		if err != nil {
			s.fail(sess, err)
		}
		return
	}

	sess.index = len(sess.targets)
	s.complete(sess)
}

// playPressAnimation 按压动画
// 原始缩放 → 按压缩放（X/Y 乘倍率，Z 不变）→ 原始缩放 → 停顿，然后调用 done
func (s *HintSystem) playPressAnimation(sess *hintSession, done func()) {
	comp, ok := s.component()
	if !ok {
		return
	}
	sess.state = types.HintStatePressing

	pointer := comp.PointerEntityID
	original := comp.PointerScale
	pressed := original.ScaleXY(comp.PressScale)
	duration := comp.PressDuration

	entities.SetScale(s.entityManager, pointer, original)

	err := s.tweener.TweenScale(pointer, pressed, duration, s.continuation(sess, func() {
		err := s.tweener.TweenScale(pointer, original, duration, s.continuation(sess, func() {
			if err := s.tweener.Delay(pointer, config.HintPressHoldDelay, s.continuation(sess, done)); err != nil {
				s.fail(sess, err)
			}
		}))
		if err != nil {
			s.fail(sess, err)
		}
	}))
	if err != nil {
		s.fail(sess, err)
	}
}

// continuation 把下一步包装成补间完成回调
// 会话已被替换时忽略；协作方报错时中止会话
func (s *HintSystem) continuation(sess *hintSession, next func()) func(error) {
	return func(err error) {
		if s.session != sess {
			return
		}
		if err != nil {
			s.fail(sess, err)
			return
		}
		s.guard(sess, next)
	}
}

// guard 在会话边界执行一步，把 panic 转成会话失败
func (s *HintSystem) guard(sess *hintSession, step func()) {
	if s.session != sess {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			s.fail(sess, fmt.Errorf("panic in hint step: %v", r))
		}
	}()
	step()
}

// fail 出错路径：记录日志，取消指针上的补间并恢复缩放，隐藏指针并发出 hint-end
// 已被取代的会话直接忽略
func (s *HintSystem) fail(sess *hintSession, cause error) {
	if s.session != sess {
		return
	}
	err := fmt.Errorf("%w: %w", ErrAnimationFailure, cause)
	log.Printf("[HintSystem] Error: %s hint (session %d) aborted at target %d: %v", sess.hintType, sess.id, sess.index, err)

	if comp, ok := s.component(); ok {
		s.haltPointer(comp)
	}
	s.complete(sess)
}

// complete → Completed → Idle
// 先清理状态再发事件，监听者在回调里可以立刻请求新的提示
func (s *HintSystem) complete(sess *hintSession) {
	if s.session != sess {
		return
	}
	sess.state = types.HintStateCompleted

	if comp, ok := s.component(); ok {
		entities.SetVisible(s.entityManager, comp.PointerEntityID, false)
		comp.IsActive = false
	}
	s.session = nil

	log.Printf("[HintSystem] Hint %s completed (session %d)", sess.hintType, sess.id)
	s.events.Emit(event.HintEnd(sess.hintType))
}

// targetPosition 检查目标有效性并取世界坐标
func targetPosition(target HintTarget) (types.Vec3, bool) {
	if target == nil || !target.IsValid() {
		return types.Vec3{}, false
	}
	return target.WorldPosition()
}
