package scenes

import (
	"log"
	"math"

	"github.com/gonewx/hinthand/pkg/components"
	"github.com/gonewx/hinthand/pkg/ecs"
	"github.com/gonewx/hinthand/pkg/entities"
	"github.com/gonewx/hinthand/pkg/systems"
	"github.com/gonewx/hinthand/pkg/types"
	"github.com/gonewx/hinthand/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// handleInput 读取本帧输入并分发
// 任何按键或点击都算作玩家操作，会重置空闲计时
func (s *HintDemoScene) handleInput() {
	var keys []ebiten.Key
	keys = inpututil.AppendJustPressedKeys(keys)
	for _, key := range keys {
		s.handleKey(key)
	}

	for _, press := range utils.AppendJustPressedPointers(nil) {
		if press.Secondary {
			s.handleRightClick(float64(press.X), float64(press.Y))
		} else {
			s.handleLeftClick(float64(press.X), float64(press.Y))
		}
	}
}

// handleKey 处理按键
//
//	H - 按默认目标播放自定义提示
//	1 - 播放开局提示
//	I - 立即播放空闲提示
//	S - 停止当前提示
//	T - 开关提示（保存到玩家设置）
//	M - 开关提示音效（保存到玩家设置）
func (s *HintDemoScene) handleKey(key ebiten.Key) {
	systems.NotifyPlayerInteraction()

	switch key {
	case ebiten.KeyH:
		s.hintSystem.ShowCustomHint()
	case ebiten.Key1:
		s.hintSystem.ShowStartGameHint()
	case ebiten.KeyI:
		s.hintSystem.ShowInactivityHint()
	case ebiten.KeyS:
		s.hintSystem.Stop()
	case ebiten.KeyT:
		s.toggleHints()
	case ebiten.KeyM:
		s.toggleSound()
	}
}

// handleLeftClick 让指针指向点击位置（触摸同样处理）
// 点在目标上时指向该目标节点（目标移动或销毁时指针随之处理）
func (s *HintDemoScene) handleLeftClick(x, y float64) {
	systems.NotifyPlayerInteraction()

	if id, ok := s.targetAt(x, y); ok {
		s.hintSystem.ShowCustomHint(systems.NewActorTarget(s.entityManager, id))
		return
	}
	s.hintSystem.ShowCustomHint(systems.PointTarget{Position: types.Vec3{X: x, Y: y}})
}

// handleRightClick 销毁点击位置的目标
func (s *HintDemoScene) handleRightClick(x, y float64) {
	systems.NotifyPlayerInteraction()

	id, ok := s.targetAt(x, y)
	if !ok {
		return
	}
	name := ""
	if n, found := ecs.GetComponent[*components.NameComponent](s.entityManager, id); found {
		name = n.Name
	}
	entities.DestroyActor(s.entityManager, id)
	log.Printf("[HintDemoScene] Target '%s' (%d) destroyed", name, id)
}

// targetAt 返回覆盖 (x, y) 的目标节点
// 多个目标重叠时返回 Order 最小的一个
func (s *HintDemoScene) targetAt(x, y float64) (ecs.EntityID, bool) {
	for _, target := range systems.SceneHintTargets(s.entityManager) {
		actor, ok := target.(systems.ActorTarget)
		if !ok {
			continue
		}
		pos, ok := actor.WorldPosition()
		if !ok {
			continue
		}
		comp, ok := ecs.GetComponent[*components.HintTargetComponent](s.entityManager, actor.Entity)
		if !ok {
			continue
		}
		if math.Hypot(x-pos.X, y-pos.Y) <= comp.Radius {
			return actor.Entity, true
		}
	}
	return 0, false
}

// toggleHints 切换提示开关并保存
func (s *HintDemoScene) toggleHints() {
	enabled := !s.hintSystem.HintsEnabled()
	s.hintSystem.SetHintsEnabled(enabled)
	log.Printf("[HintDemoScene] Hints enabled: %v", enabled)

	if s.settings == nil {
		return
	}
	s.settings.SetHintsEnabled(enabled)
	if err := s.settings.Save(); err != nil {
		log.Printf("[HintDemoScene] Warning: Failed to save hint settings: %v", err)
	}
}

// toggleSound 切换提示音效并保存
func (s *HintDemoScene) toggleSound() {
	if s.settings == nil {
		return
	}
	enabled := !s.settings.GetSettings().SoundEnabled
	s.settings.SetSoundEnabled(enabled)
	if err := s.settings.Save(); err != nil {
		log.Printf("[HintDemoScene] Warning: Failed to save hint settings: %v", err)
	}
}
