package scenes

import (
	"fmt"
	"log"

	"github.com/gonewx/hinthand/pkg/components"
	"github.com/gonewx/hinthand/pkg/config"
	"github.com/gonewx/hinthand/pkg/ecs"
	"github.com/gonewx/hinthand/pkg/entities"
	"github.com/gonewx/hinthand/pkg/event"
	"github.com/gonewx/hinthand/pkg/game"
	"github.com/gonewx/hinthand/pkg/systems"
	"github.com/gonewx/hinthand/pkg/types"
	"github.com/gonewx/hinthand/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

var (
	_ Scene         = (*HintDemoScene)(nil)
	_ game.Saveable = (*HintDemoScene)(nil)
)

// HintDemoScene 提示指针演示场景
//
// 场景中放置若干可被指向的目标节点，玩家可以：
//   - 按键手动触发各类提示、停止提示、开关提示
//   - 左键点击空白处，让指针指向点击位置
//   - 右键点击目标销毁它（用于观察序列跳过失效目标）
//
// 长时间不操作时，HintSystem 会自动播放空闲提示
type HintDemoScene struct {
	entityManager *ecs.EntityManager
	timerSystem   *systems.TimerSystem
	tweenSystem   *systems.TweenSystem
	hintSystem    *systems.HintSystem
	renderSystem  *systems.RenderSystem

	settings *game.HintSettingsManager // 可为 nil
	audio    *game.AudioManager        // 可为 nil

	// hintLayer 指针父容器
	hintLayer ecs.EntityID

	// delayOverride 命令行指定的空闲阈值，>0 时优先于玩家设置和配置文件
	delayOverride int

	// lastEvent 最近一次提示事件（显示在状态栏）
	lastEvent string

	statusFace  text.Face
	unsubscribe func()
}

// NewHintDemoScene 创建演示场景
//
// 参数：
//   - cfg: 提示配置，nil 使用默认配置
//   - settings: 玩家提示设置，可为 nil
//   - audio: 音效管理器，可为 nil（静音）
//
// 返回：
//   - *HintDemoScene: 场景实例
//   - error: HintSystem 创建或初始化失败
func NewHintDemoScene(cfg *config.HintConfig, settings *game.HintSettingsManager, audio *game.AudioManager) (*HintDemoScene, error) {
	if cfg == nil {
		cfg = config.DefaultHintConfig()
	}

	em := ecs.NewEntityManager()
	scene := &HintDemoScene{
		entityManager: em,
		timerSystem:   systems.NewTimerSystem(em),
		tweenSystem:   systems.NewTweenSystem(em),
		settings:      settings,
		audio:         audio,
		lastEvent:     "-",
	}

	scene.applyEasing(cfg)
	scene.hintLayer = entities.NewSceneNode(em, config.HintLayerName, 0, types.Vec3{})
	scene.spawnTargets()

	face := text.NewGoXFace(basicfont.Face7x13)
	scene.statusFace = face
	scene.renderSystem = systems.NewRenderSystem(em, face)

	hs, err := systems.NewHintSystem(em, scene.tweenSystem, scene.timerSystem, event.NewBus(), scene.effectiveConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to create hint system: %w", err)
	}
	scene.hintSystem = hs
	scene.unsubscribe = hs.Events().Subscribe(scene.onHintEvent)

	if err := hs.Setup(); err != nil {
		scene.Close()
		return nil, fmt.Errorf("failed to setup hint system: %w", err)
	}

	hs.SetDefaultTargetsResolver(scene.sceneTargets)
	if settings != nil {
		hs.SetHintsEnabled(settings.GetSettings().HintsEnabled)
	}

	log.Printf("[HintDemoScene] Created with %d targets", len(config.DemoTargets))
	scene.playStartGameHint()
	return scene, nil
}

// spawnTargets 按布局配置创建目标节点
func (s *HintDemoScene) spawnTargets() {
	for _, t := range config.DemoTargets {
		entities.NewHintTargetNode(s.entityManager, t.Name, types.Vec3{X: t.X, Y: t.Y}, t.Order, t.Radius)
	}
}

// sceneTargets 默认目标解析器：场景中的全部目标节点
func (s *HintDemoScene) sceneTargets(types.HintType) []systems.HintTarget {
	return systems.SceneHintTargets(s.entityManager)
}

// playStartGameHint 开局提示每个存档只播放一次
func (s *HintDemoScene) playStartGameHint() {
	if s.settings != nil && s.settings.GetSettings().StartGameHintSeen {
		return
	}

	s.hintSystem.ShowStartGameHint()
	if !s.hintSystem.IsHintActive() || s.settings == nil {
		return
	}

	s.settings.MarkStartGameHintSeen()
	if err := s.settings.Save(); err != nil {
		log.Printf("[HintDemoScene] Warning: Failed to save hint settings: %v", err)
	}
}

// effectiveConfig 合并命令行和玩家设置中的空闲阈值
// 返回副本，不修改传入的配置
func (s *HintDemoScene) effectiveConfig(cfg *config.HintConfig) *config.HintConfig {
	merged := *cfg
	switch {
	case s.delayOverride > 0:
		merged.InactivityDelay = s.delayOverride
	case s.settings != nil:
		merged.InactivityDelay = s.settings.ResolveInactivityDelay(cfg.InactivityDelay)
	}
	return &merged
}

// ApplyConfig 应用重新加载的提示配置
func (s *HintDemoScene) ApplyConfig(cfg *config.HintConfig) {
	if cfg == nil {
		return
	}
	s.applyEasing(cfg)
	s.hintSystem.ApplyConfig(s.effectiveConfig(cfg))
}

// applyEasing 设置指针移动的缓动曲线
// 按压动画保持线性，使按下和弹起时长一致
func (s *HintDemoScene) applyEasing(cfg *config.HintConfig) {
	ease, err := utils.EasingByName(cfg.MoveEasing)
	if err != nil {
		log.Printf("[HintDemoScene] Warning: %v (using linear)", err)
		ease = nil
	}
	s.tweenSystem.SetEasing(components.TweenWorldPosition, ease)
}

// SetDelayOverride 设置命令行空闲阈值（秒），<=0 表示不覆盖
func (s *HintDemoScene) SetDelayOverride(seconds int) {
	if seconds < 0 {
		seconds = 0
	}
	s.delayOverride = seconds
	if seconds > 0 {
		s.hintSystem.SetInactivityDelay(seconds)
	}
}

// SetTargetResolver 替换默认目标解析器，nil 恢复为场景目标
func (s *HintDemoScene) SetTargetResolver(resolver systems.DefaultTargetsResolver) {
	if resolver == nil {
		resolver = s.sceneTargets
	}
	s.hintSystem.SetDefaultTargetsResolver(resolver)
}

// HintSystem 返回场景的提示系统
func (s *HintDemoScene) HintSystem() *systems.HintSystem {
	return s.hintSystem
}

// EntityManager 返回场景的实体管理器
// 目标脚本通过它按名称查找节点
func (s *HintDemoScene) EntityManager() *ecs.EntityManager {
	return s.entityManager
}

// onHintEvent 记录事件并播放音效
func (s *HintDemoScene) onHintEvent(e event.HintEvent) {
	s.lastEvent = e.Type.String()
	if e.HasHintType {
		s.lastEvent += " (" + e.HintType.String() + ")"
	}

	if s.audio == nil {
		return
	}
	switch e.Type {
	case event.EventHintStart:
		s.audio.PlayCue(game.CueHintStart)
	case event.EventHintEnd:
		s.audio.PlayCue(game.CueHintEnd)
	}
}

// Update 更新场景
// 顺序：输入 → 计时器 → 补间 → 清理已销毁实体
func (s *HintDemoScene) Update(deltaTime float64) {
	s.handleInput()
	s.updateSystems(deltaTime)
}

func (s *HintDemoScene) updateSystems(deltaTime float64) {
	s.timerSystem.Update(deltaTime)
	s.tweenSystem.Update(deltaTime)
	s.entityManager.RemoveMarkedEntities()
}

// SaveOnExit 实现 game.Saveable，退出时保存玩家设置
func (s *HintDemoScene) SaveOnExit() bool {
	if s.settings == nil {
		return true
	}
	if err := s.settings.Save(); err != nil {
		log.Printf("[HintDemoScene] Warning: Failed to save hint settings: %v", err)
		return false
	}
	return true
}

// Close 销毁提示系统，取消事件订阅和剩余的计时器
// 可重复调用
func (s *HintDemoScene) Close() {
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
	if s.hintSystem != nil {
		s.hintSystem.Destroy()
	}
	s.timerSystem.Cleanup()
}
