package systems

import (
	"fmt"
	"log"

	"github.com/gonewx/hinthand/pkg/components"
	"github.com/gonewx/hinthand/pkg/config"
	"github.com/gonewx/hinthand/pkg/ecs"
	"github.com/gonewx/hinthand/pkg/entities"
	"github.com/gonewx/hinthand/pkg/event"
	"github.com/gonewx/hinthand/pkg/types"
)

// Tweener 补间协作方
// 由 TweenSystem 实现；所有补间都绑定在目标实体上，StopAll 可一次性取消
type Tweener interface {
	TweenPosition(target ecs.EntityID, to types.Vec3, duration float64, onComplete func(error)) error
	TweenScale(target ecs.EntityID, to types.Vec3, duration float64, onComplete func(error)) error
	Delay(target ecs.EntityID, duration float64, onComplete func(error)) error
	StopAll(target ecs.EntityID) int
}

// Scheduler 计时协作方
// 由 TimerSystem 实现
type Scheduler interface {
	Schedule(name string, interval float64, callback func()) (ecs.EntityID, error)
	ScheduleOnce(name string, delay float64, callback func()) (ecs.EntityID, error)
	Unschedule(handle ecs.EntityID)
}

// DefaultTargetsResolver 未显式传入目标时，用于解析默认目标列表
// 由游戏代码提供（例如按关卡返回种子卡槽、阳光位置）
type DefaultTargetsResolver func(hintType types.HintType) []HintTarget

// hintSystemInstance 当前存活的 HintSystem
// 同一时间只允许存在一个实例
var hintSystemInstance *HintSystem

// HintSystemInstance 返回当前的 HintSystem 实例，没有时返回 nil
func HintSystemInstance() *HintSystem {
	return hintSystemInstance
}

// NotifyPlayerInteraction 通知提示系统玩家有操作
// 供 InputSystem 等其他系统调用，没有实例时静默忽略
func NotifyPlayerInteraction() {
	if hintSystemInstance != nil {
		hintSystemInstance.ResetInactivityTimer()
	}
}

// HintSystem 提示指针系统
//
// 此系统负责教学提示手形指针的完整生命周期：
//   - 空闲监控：每秒累计空闲时间，超过阈值自动触发空闲提示
//   - 提示序列：显示指针，依次移动到最多 3 个目标并播放按压动画，最后隐藏
//   - 对外事件：hint-start / hint-end / player-inactive
//
// 同一时间只有一个提示会话；会话进行中的新请求被丢弃而不是排队。
// 任何动画失败都在会话边界被捕获并记录日志，不会传播给调用方。
type HintSystem struct {
	entityManager *ecs.EntityManager
	tweener       Tweener
	scheduler     Scheduler
	events        *event.Bus

	// hintEntity 提示系统单例实体ID（挂载 HintComponent）
	hintEntity ecs.EntityID

	// prefab 指针预制体
	prefab config.PointerPrefab

	// pointerParentName 指针父容器名称，Setup 时解析
	pointerParentName string

	// resolveDefaultTargets 默认目标解析器，可为 nil
	resolveDefaultTargets DefaultTargetsResolver

	// session 当前提示会话，nil 表示空闲
	session *hintSession

	// nextSessionID 会话ID计数器，用于识别过期的回调
	nextSessionID uint64
}

// NewHintSystem 创建提示指针系统
//
// 参数：
//   - em: 实体管理器
//   - tweener: 补间协作方（通常是 TweenSystem）
//   - scheduler: 计时协作方（通常是 TimerSystem）
//   - bus: 事件总线，为 nil 时自动创建
//   - cfg: 提示配置，为 nil 时使用默认配置
//
// 返回：
//   - *HintSystem: 系统实例
//   - error: 已存在实例（ErrHintSystemExists）或参数非法
//
// 创建后需要调用 Setup 才会创建指针并启动空闲监控
func NewHintSystem(em *ecs.EntityManager, tweener Tweener, scheduler Scheduler, bus *event.Bus, cfg *config.HintConfig) (*HintSystem, error) {
	if hintSystemInstance != nil {
		log.Printf("[HintSystem] Warning: instance already exists (Entity ID: %d), rejecting new instance", hintSystemInstance.hintEntity)
		return nil, ErrHintSystemExists
	}
	if em == nil || tweener == nil || scheduler == nil {
		return nil, fmt.Errorf("hint system requires entity manager, tweener and scheduler")
	}
	if bus == nil {
		bus = event.NewBus()
	}
	if cfg == nil {
		cfg = config.DefaultHintConfig()
	}

	system := &HintSystem{
		entityManager:     em,
		tweener:           tweener,
		scheduler:         scheduler,
		events:            bus,
		prefab:            cfg.Pointer,
		pointerParentName: cfg.PointerParent,
	}

	system.hintEntity = em.CreateEntity()
	em.AddComponent(system.hintEntity, &components.HintComponent{
		IsReady:         false,
		IsActive:        false,
		HintsEnabled:    true,
		InactivityTime:  0,
		InactivityDelay: cfg.InactivityDelay,
		PointerScale:    cfg.PointerScale,
		PointerOffset:   cfg.PointerOffset,
		PressScale:      cfg.PressScale,
		PressDuration:   cfg.PressDuration,
		MoveSpeed:       cfg.MoveSpeed,
	})

	hintSystemInstance = system
	log.Printf("[HintSystem] Initialized (Entity ID: %d)", system.hintEntity)

	return system, nil
}

// Setup 创建指针实体并（重新）启动空闲监控
// 可重复调用：指针只创建一次，旧的空闲计时器会先被取消
func (s *HintSystem) Setup() error {
	comp, ok := s.component()
	if !ok {
		return fmt.Errorf("hint system has been destroyed")
	}

	if comp.PointerEntityID == 0 || !s.entityManager.IsAlive(comp.PointerEntityID) {
		if s.pointerParentName != "" {
			if parent, found := entities.FindByName(s.entityManager, s.pointerParentName); found {
				comp.PointerParent = parent
			} else {
				log.Printf("[HintSystem] Warning: pointer parent '%s' not found, using scene root", s.pointerParentName)
			}
		}

		pointer, err := entities.CreateHintPointer(s.entityManager, s.prefab, comp.PointerParent, comp.PointerScale)
		if err != nil {
			return fmt.Errorf("failed to create hint pointer: %w", err)
		}
		comp.PointerEntityID = pointer
	}

	if err := s.startInactivityMonitor(comp); err != nil {
		return err
	}

	comp.IsReady = true
	log.Printf("[HintSystem] Setup completed (pointer: %d)", comp.PointerEntityID)
	return nil
}

// Destroy 停止当前提示，取消空闲监控，销毁指针，释放单例
func (s *HintSystem) Destroy() {
	if comp, ok := s.component(); ok {
		s.Stop()
		if comp.TickTimerID != 0 {
			s.scheduler.Unschedule(comp.TickTimerID)
			comp.TickTimerID = 0
		}
		if comp.PointerEntityID != 0 {
			s.tweener.StopAll(comp.PointerEntityID)
			entities.DestroyActor(s.entityManager, comp.PointerEntityID)
			comp.PointerEntityID = 0
		}
		comp.IsReady = false
		s.entityManager.DestroyEntity(s.hintEntity)
	}

	if hintSystemInstance == s {
		hintSystemInstance = nil
	}
	log.Printf("[HintSystem] Destroyed")
}

// Events 返回事件总线，外部通过 Subscribe 监听提示事件
func (s *HintSystem) Events() *event.Bus {
	return s.events
}

// component 获取提示组件，系统销毁后返回 false
func (s *HintSystem) component() (*components.HintComponent, bool) {
	if !s.entityManager.IsAlive(s.hintEntity) {
		return nil, false
	}
	return ecs.GetComponent[*components.HintComponent](s.entityManager, s.hintEntity)
}

// ========== 公开提示 API ==========

// ShowHint 按提示类型显示提示
//
// 参数：
//   - hintType: 提示类型
//   - targets: 目标列表（可选），为空时使用默认目标解析器
//
// 请求在以下情况被丢弃（只记录日志）：已有提示在播放、系统未就绪、
// 提示被关闭、没有任何可用目标
func (s *HintSystem) ShowHint(hintType types.HintType, targets ...HintTarget) {
	switch hintType {
	case types.HintStartGame:
		s.ShowStartGameHint(targets...)
	case types.HintInactivity:
		s.ShowInactivityHint(targets...)
	case types.HintCustom:
		s.ShowCustomHint(targets...)
	default:
		log.Printf("[HintSystem] Warning: unknown hint type %d, request ignored", int(hintType))
	}
}

// ShowStartGameHint 显示游戏开始提示
func (s *HintSystem) ShowStartGameHint(targets ...HintTarget) {
	s.requestHint(types.HintStartGame, targets)
}

// ShowInactivityHint 显示空闲提示
func (s *HintSystem) ShowInactivityHint(targets ...HintTarget) {
	s.requestHint(types.HintInactivity, targets)
}

// ShowCustomHint 显示自定义提示
func (s *HintSystem) ShowCustomHint(targets ...HintTarget) {
	s.requestHint(types.HintCustom, targets)
}

// requestHint 三种提示流程的公共入口：检查互斥，解析目标，启动序列
func (s *HintSystem) requestHint(hintType types.HintType, targets []HintTarget) {
	comp, ok := s.component()
	if !ok {
		return
	}
	if comp.IsActive {
		log.Printf("[HintSystem] Hint %s already active, %s request dropped", s.session.hintType, hintType)
		return
	}
	if !comp.IsReady {
		log.Printf("[HintSystem] Warning: not ready, %s request dropped", hintType)
		return
	}
	if !comp.HintsEnabled {
		log.Printf("[HintSystem] Hints disabled, %s request dropped", hintType)
		return
	}

	if len(targets) == 0 {
		targets = s.defaultTargets(hintType)
	}

	s.startSequence(comp, hintType, targets)
}

// defaultTargets 调用默认目标解析器
func (s *HintSystem) defaultTargets(hintType types.HintType) (targets []HintTarget) {
	if s.resolveDefaultTargets == nil {
		log.Printf("[HintSystem] Warning: default targets resolver not set, no targets for %s", hintType)
		return nil
	}

	defer func() {
		if r := recover(); r != nil {
			log.Printf("[HintSystem] Error: default targets resolver panicked: %v", r)
			targets = nil
		}
	}()
	return s.resolveDefaultTargets(hintType)
}

// Stop 立即中止当前提示
// 取消指针上的所有补间，隐藏指针，发出不带类型的 hint-end；
// 没有提示在播放时什么都不做
func (s *HintSystem) Stop() {
	comp, ok := s.component()
	if !ok || !comp.IsActive {
		return
	}

	stopped := s.session
	s.haltPointer(comp)
	entities.SetVisible(s.entityManager, comp.PointerEntityID, false)
	s.session = nil
	comp.IsActive = false

	if stopped != nil {
		log.Printf("[HintSystem] Hint %s stopped at target %d/%d", stopped.hintType, stopped.index+1, len(stopped.targets))
	}
	s.events.Emit(event.HintEndUntyped())
}

// haltPointer 取消指针上的补间，并把按压中途的缩放恢复为配置值
func (s *HintSystem) haltPointer(comp *components.HintComponent) {
	s.tweener.StopAll(comp.PointerEntityID)
	entities.SetScale(s.entityManager, comp.PointerEntityID, comp.PointerScale)
}

// SetDefaultTargetsResolver 设置默认目标解析器
func (s *HintSystem) SetDefaultTargetsResolver(resolver DefaultTargetsResolver) {
	s.resolveDefaultTargets = resolver
}

// ========== 查询 ==========

// IsHintActive 返回是否有提示正在播放
func (s *HintSystem) IsHintActive() bool {
	comp, ok := s.component()
	return ok && comp.IsActive
}

// IsReady 返回是否已完成 Setup
func (s *HintSystem) IsReady() bool {
	comp, ok := s.component()
	return ok && comp.IsReady
}

// CurrentHintType 返回正在播放的提示类型
func (s *HintSystem) CurrentHintType() (types.HintType, bool) {
	if s.session == nil {
		return 0, false
	}
	return s.session.hintType, true
}

// State 返回提示序列的当前状态
func (s *HintSystem) State() types.HintState {
	if s.session == nil {
		return types.HintStateIdle
	}
	return s.session.state
}

// PointerEntity 返回指针实体ID，未 Setup 时为 0
func (s *HintSystem) PointerEntity() ecs.EntityID {
	comp, ok := s.component()
	if !ok {
		return 0
	}
	return comp.PointerEntityID
}

// ========== 配置 ==========
// 修改在下一个动画步骤生效，不影响正在播放的补间

// SetPointerScale 设置指针缩放
// 空闲时立即作用到指针；播放中从下一次按压开始生效
func (s *HintSystem) SetPointerScale(scale types.Vec3) {
	comp, ok := s.component()
	if !ok {
		return
	}
	comp.PointerScale = scale
	if !comp.IsActive && comp.PointerEntityID != 0 {
		entities.SetScale(s.entityManager, comp.PointerEntityID, scale)
	}
}

// SetPointerScaleUniform 设置统一缩放
func (s *HintSystem) SetPointerScaleUniform(scale float64) {
	s.SetPointerScale(types.Uniform(scale))
}

// PointerScale 返回配置的指针缩放
func (s *HintSystem) PointerScale() types.Vec3 {
	comp, ok := s.component()
	if !ok {
		return types.Vec3{}
	}
	return comp.PointerScale
}

// SetPointerOffset 设置指针相对目标的世界偏移
func (s *HintSystem) SetPointerOffset(offset types.Vec3) {
	if comp, ok := s.component(); ok {
		comp.PointerOffset = offset
	}
}

// SetPointerOffsetXY 只设置偏移的 X/Y，保留 Z
func (s *HintSystem) SetPointerOffsetXY(x, y float64) {
	if comp, ok := s.component(); ok {
		comp.PointerOffset.X = x
		comp.PointerOffset.Y = y
	}
}

// PointerOffset 返回配置的指针偏移
func (s *HintSystem) PointerOffset() types.Vec3 {
	comp, ok := s.component()
	if !ok {
		return types.Vec3{}
	}
	return comp.PointerOffset
}

// SetPressScale 设置按压缩放倍率，必须大于 0
func (s *HintSystem) SetPressScale(multiplier float64) {
	comp, ok := s.component()
	if !ok {
		return
	}
	if multiplier <= 0 {
		log.Printf("[HintSystem] Warning: invalid press scale %v ignored", multiplier)
		return
	}
	comp.PressScale = multiplier
}

// SetPressDuration 设置按压单程时长（秒），不能为负
func (s *HintSystem) SetPressDuration(seconds float64) {
	comp, ok := s.component()
	if !ok {
		return
	}
	if seconds < 0 {
		log.Printf("[HintSystem] Warning: invalid press duration %v ignored", seconds)
		return
	}
	comp.PressDuration = seconds
}

// SetMoveSpeed 设置指针移动到一个目标的时长（秒），不能为负
func (s *HintSystem) SetMoveSpeed(seconds float64) {
	comp, ok := s.component()
	if !ok {
		return
	}
	if seconds < 0 {
		log.Printf("[HintSystem] Warning: invalid move speed %v ignored", seconds)
		return
	}
	comp.MoveSpeed = seconds
}

// SetPointerParent 把指针挂到新的父容器下（0 为场景根），世界坐标不变
func (s *HintSystem) SetPointerParent(parent ecs.EntityID) {
	comp, ok := s.component()
	if !ok {
		return
	}
	if parent != 0 && !s.entityManager.IsAlive(parent) {
		log.Printf("[HintSystem] Warning: pointer parent %d does not exist", parent)
		return
	}
	comp.PointerParent = parent
	if comp.PointerEntityID != 0 {
		entities.SetParent(s.entityManager, comp.PointerEntityID, parent)
	}
}

// SetHintsEnabled 打开或关闭提示
// 关闭时正在播放的提示会被中止，空闲计时暂停
func (s *HintSystem) SetHintsEnabled(enabled bool) {
	comp, ok := s.component()
	if !ok {
		return
	}
	comp.HintsEnabled = enabled
	if !enabled {
		s.Stop()
	}
	log.Printf("[HintSystem] Hints enabled: %v", enabled)
}

// HintsEnabled 返回提示开关
func (s *HintSystem) HintsEnabled() bool {
	comp, ok := s.component()
	return ok && comp.HintsEnabled
}

// ApplyConfig 应用一份完整配置（配置热重载时调用）
// 空闲阈值只在变化时更新，避免重载清零空闲计时
func (s *HintSystem) ApplyConfig(cfg *config.HintConfig) {
	comp, ok := s.component()
	if !ok || cfg == nil {
		return
	}

	if cfg.InactivityDelay != comp.InactivityDelay {
		s.SetInactivityDelay(cfg.InactivityDelay)
	}
	s.SetPointerScale(cfg.PointerScale)
	s.SetPointerOffset(cfg.PointerOffset)
	s.SetPressScale(cfg.PressScale)
	s.SetPressDuration(cfg.PressDuration)
	s.SetMoveSpeed(cfg.MoveSpeed)

	s.prefab = cfg.Pointer
	if comp.PointerEntityID != 0 {
		entities.ApplyPointerPrefab(s.entityManager, comp.PointerEntityID, cfg.Pointer)
	}

	s.pointerParentName = cfg.PointerParent
	if cfg.PointerParent == "" {
		s.SetPointerParent(0)
	} else if parent, found := entities.FindByName(s.entityManager, cfg.PointerParent); found {
		s.SetPointerParent(parent)
	} else {
		log.Printf("[HintSystem] Warning: pointer parent '%s' not found on reload, keeping current parent", cfg.PointerParent)
	}

	log.Printf("[HintSystem] Config applied: delay=%ds move=%.2fs press=%.2fx/%.2fs",
		comp.InactivityDelay, comp.MoveSpeed, comp.PressScale, comp.PressDuration)
}
