package scenes

import (
	"strings"
	"testing"

	"github.com/gonewx/hinthand/pkg/config"
	"github.com/gonewx/hinthand/pkg/entities"
	"github.com/gonewx/hinthand/pkg/game"
	"github.com/gonewx/hinthand/pkg/systems"
	"github.com/gonewx/hinthand/pkg/types"
	"github.com/hajimehoshi/ebiten/v2"
)

const testFrame = 1.0 / 60.0

// newTestScene 创建演示场景，测试结束时自动关闭
// seen 为 true 时跳过开局提示
func newTestScene(t *testing.T, seen bool) (*HintDemoScene, *game.HintSettingsManager) {
	t.Helper()
	settings := game.NewHintSettingsManager(nil)
	if seen {
		settings.MarkStartGameHintSeen()
	}

	scene, err := NewHintDemoScene(nil, settings, game.NewAudioManager(nil, settings))
	if err != nil {
		t.Fatalf("NewHintDemoScene() error: %v", err)
	}
	t.Cleanup(scene.Close)
	return scene, settings
}

// runScene 以固定帧长推进场景（不读取输入）
func runScene(scene *HintDemoScene, seconds float64) {
	for elapsed := 0.0; elapsed < seconds; elapsed += testFrame {
		scene.updateSystems(testFrame)
	}
}

// findTarget 返回指定名称的目标坐标
func findTarget(t *testing.T, name string) config.DemoTarget {
	t.Helper()
	for _, target := range config.DemoTargets {
		if target.Name == name {
			return target
		}
	}
	t.Fatalf("Demo target %q not found", name)
	return config.DemoTarget{}
}

// TestHintDemoScene_StartGameHintOnce 测试开局提示只播放一次
func TestHintDemoScene_StartGameHintOnce(t *testing.T) {
	scene, settings := newTestScene(t, false)

	hintType, ok := scene.HintSystem().CurrentHintType()
	if !ok || hintType != types.HintStartGame {
		t.Fatalf("Expected StartGame hint on creation, got %v (active=%v)", hintType, ok)
	}
	if !settings.GetSettings().StartGameHintSeen {
		t.Error("StartGameHintSeen should be recorded")
	}
	if !strings.HasPrefix(scene.lastEvent, "hint-start") {
		t.Errorf("lastEvent = %q, want hint-start", scene.lastEvent)
	}

	scene.Close()

	again, err := NewHintDemoScene(nil, settings, nil)
	if err != nil {
		t.Fatalf("NewHintDemoScene() error: %v", err)
	}
	defer again.Close()
	if again.HintSystem().IsHintActive() {
		t.Error("StartGame hint should not replay once seen")
	}
}

// TestHintDemoScene_SingleInstance 测试同一时间只能有一个场景持有提示系统
func TestHintDemoScene_SingleInstance(t *testing.T) {
	scene, _ := newTestScene(t, true)

	if _, err := NewHintDemoScene(nil, nil, nil); err == nil {
		t.Fatal("Second scene should fail while the first owns the hint system")
	}

	scene.Close()
	if systems.HintSystemInstance() != nil {
		t.Error("Close() should release the hint system")
	}
}

// TestHintDemoScene_TargetsAndLayer 测试场景节点
func TestHintDemoScene_TargetsAndLayer(t *testing.T) {
	scene, _ := newTestScene(t, true)
	em := scene.EntityManager()

	if got := len(systems.SceneHintTargets(em)); got != len(config.DemoTargets) {
		t.Errorf("Expected %d targets, got %d", len(config.DemoTargets), got)
	}
	if _, ok := entities.FindByName(em, config.HintLayerName); !ok {
		t.Error("Hint layer node missing")
	}
	if scene.HintSystem().PointerEntity() == 0 {
		t.Error("Pointer should be created by Setup")
	}
}

// TestHintDemoScene_CustomHintRunsToEnd 测试 H 键提示完整播放
func TestHintDemoScene_CustomHintRunsToEnd(t *testing.T) {
	scene, _ := newTestScene(t, true)

	scene.handleKey(ebiten.KeyH)
	if !scene.HintSystem().IsHintActive() {
		t.Fatal("H should start a custom hint")
	}

	runScene(scene, 5)

	if scene.HintSystem().IsHintActive() {
		t.Error("Hint should have finished")
	}
	if scene.lastEvent != "hint-end (Custom)" {
		t.Errorf("lastEvent = %q, want %q", scene.lastEvent, "hint-end (Custom)")
	}
}

// TestHintDemoScene_StopKey 测试 S 键中止提示
func TestHintDemoScene_StopKey(t *testing.T) {
	scene, _ := newTestScene(t, true)

	scene.handleKey(ebiten.KeyI)
	if hintType, ok := scene.HintSystem().CurrentHintType(); !ok || hintType != types.HintInactivity {
		t.Fatalf("I should start an inactivity hint, got %v", hintType)
	}

	scene.handleKey(ebiten.KeyS)
	if scene.HintSystem().IsHintActive() {
		t.Error("S should stop the hint")
	}
	if scene.lastEvent != "hint-end" {
		t.Errorf("Stop should emit untyped hint-end, got %q", scene.lastEvent)
	}
}

// TestHintDemoScene_ToggleHints 测试 T 键开关提示并写入设置
func TestHintDemoScene_ToggleHints(t *testing.T) {
	scene, settings := newTestScene(t, true)

	scene.handleKey(ebiten.KeyT)
	if scene.HintSystem().HintsEnabled() || settings.GetSettings().HintsEnabled {
		t.Fatal("T should disable hints in both system and settings")
	}

	scene.handleKey(ebiten.KeyH)
	if scene.HintSystem().IsHintActive() {
		t.Error("Disabled hints should ignore requests")
	}

	scene.handleKey(ebiten.KeyT)
	if !scene.HintSystem().HintsEnabled() || !settings.GetSettings().HintsEnabled {
		t.Error("Second T should enable hints again")
	}
}

// TestHintDemoScene_ToggleSound 测试 M 键开关音效
func TestHintDemoScene_ToggleSound(t *testing.T) {
	scene, settings := newTestScene(t, true)

	scene.handleKey(ebiten.KeyM)
	if settings.GetSettings().SoundEnabled {
		t.Error("M should disable sound")
	}
}

// TestHintDemoScene_InputResetsInactivity 测试输入重置空闲计时
func TestHintDemoScene_InputResetsInactivity(t *testing.T) {
	scene, _ := newTestScene(t, true)

	runScene(scene, 3.5)
	if got := scene.HintSystem().InactivityTime(); got != 3 {
		t.Fatalf("InactivityTime = %d, want 3", got)
	}

	scene.handleKey(ebiten.KeyA)
	if got := scene.HintSystem().InactivityTime(); got != 0 {
		t.Errorf("Any key should reset inactivity, got %d", got)
	}
}

// TestHintDemoScene_LeftClick 测试左键点击目标和空白处
func TestHintDemoScene_LeftClick(t *testing.T) {
	scene, _ := newTestScene(t, true)
	sun := findTarget(t, "Sun")

	scene.handleLeftClick(sun.X+2, sun.Y-2)
	if !scene.HintSystem().IsHintActive() {
		t.Fatal("Click should start a custom hint")
	}

	// 结算停顿和一次移动后指针应停在目标上
	runScene(scene, 1.2)
	pos, ok := entities.GetWorldPosition(scene.EntityManager(), scene.HintSystem().PointerEntity())
	if !ok || pos.X != sun.X || pos.Y != sun.Y {
		t.Errorf("Pointer at %+v, want target center (%v, %v)", pos, sun.X, sun.Y)
	}

	runScene(scene, 3)
	scene.handleLeftClick(10, 10)
	runScene(scene, 1.2)
	pos, _ = entities.GetWorldPosition(scene.EntityManager(), scene.HintSystem().PointerEntity())
	if pos.X != 10 || pos.Y != 10 {
		t.Errorf("Pointer at %+v, want click point (10, 10)", pos)
	}
}

// TestHintDemoScene_RightClickDestroysTarget 测试右键销毁目标
func TestHintDemoScene_RightClickDestroysTarget(t *testing.T) {
	scene, _ := newTestScene(t, true)
	lawn := findTarget(t, "Lawn")

	scene.handleRightClick(lawn.X, lawn.Y)
	scene.updateSystems(testFrame)

	if _, ok := entities.FindByName(scene.EntityManager(), "Lawn"); ok {
		t.Error("Lawn should be destroyed")
	}
	if got := len(systems.SceneHintTargets(scene.EntityManager())); got != len(config.DemoTargets)-1 {
		t.Errorf("Expected %d targets left, got %d", len(config.DemoTargets)-1, got)
	}

	// 空白处右键不销毁任何节点
	scene.handleRightClick(5, 5)
	scene.updateSystems(testFrame)
	if got := len(systems.SceneHintTargets(scene.EntityManager())); got != len(config.DemoTargets)-1 {
		t.Errorf("Right click on empty space should not destroy, got %d targets", got)
	}
}

// TestHintDemoScene_TargetDestroyedMidHint 测试提示进行中目标被销毁
func TestHintDemoScene_TargetDestroyedMidHint(t *testing.T) {
	scene, _ := newTestScene(t, true)
	lawn := findTarget(t, "Lawn")

	scene.handleKey(ebiten.KeyH)
	runScene(scene, 0.2)
	scene.handleRightClick(lawn.X, lawn.Y)

	runScene(scene, 5)
	if scene.HintSystem().IsHintActive() {
		t.Error("Hint should finish after skipping the destroyed target")
	}
	if scene.lastEvent != "hint-end (Custom)" {
		t.Errorf("lastEvent = %q, want hint-end (Custom)", scene.lastEvent)
	}
}

// TestHintDemoScene_DelayOverride 测试命令行阈值优先于设置和配置
func TestHintDemoScene_DelayOverride(t *testing.T) {
	scene, settings := newTestScene(t, true)
	hs := scene.HintSystem()

	if hs.InactivityDelay() != config.DefaultInactivityDelay {
		t.Fatalf("InactivityDelay = %d, want default %d", hs.InactivityDelay(), config.DefaultInactivityDelay)
	}

	settings.SetInactivityDelay(9)
	scene.ApplyConfig(config.DefaultHintConfig())
	if hs.InactivityDelay() != 9 {
		t.Errorf("Player setting should win over config, got %d", hs.InactivityDelay())
	}

	scene.SetDelayOverride(4)
	scene.ApplyConfig(config.DefaultHintConfig())
	if hs.InactivityDelay() != 4 {
		t.Errorf("Override should survive config reload, got %d", hs.InactivityDelay())
	}
}

// TestHintDemoScene_SetTargetResolver 测试替换和恢复目标解析器
func TestHintDemoScene_SetTargetResolver(t *testing.T) {
	scene, _ := newTestScene(t, true)
	called := 0

	scene.SetTargetResolver(func(types.HintType) []systems.HintTarget {
		called++
		return []systems.HintTarget{systems.PointTarget{Position: types.Vec3{X: 1, Y: 2}}}
	})
	scene.handleKey(ebiten.KeyH)
	if called != 1 || !scene.HintSystem().IsHintActive() {
		t.Fatalf("Custom resolver should be used, called=%d", called)
	}
	scene.handleKey(ebiten.KeyS)

	scene.SetTargetResolver(nil)
	scene.handleKey(ebiten.KeyH)
	if called != 1 || !scene.HintSystem().IsHintActive() {
		t.Error("nil resolver should restore scene targets")
	}
}

// TestHintDemoScene_StatusLines 测试状态栏内容
func TestHintDemoScene_StatusLines(t *testing.T) {
	scene, _ := newTestScene(t, true)
	scene.handleKey(ebiten.KeyH)

	lines := scene.statusLines()
	if len(lines) == 0 || !strings.Contains(lines[0], "Type: Custom") {
		t.Errorf("Status should show current hint type, got %v", lines)
	}
	if float64(len(lines))*config.StatusLineHeight > config.StatusBarHeight {
		t.Error("Status lines overflow the status bar")
	}
}

// TestHintDemoScene_SaveOnExit 测试退出保存
func TestHintDemoScene_SaveOnExit(t *testing.T) {
	scene, _ := newTestScene(t, true)
	if !scene.SaveOnExit() {
		t.Error("SaveOnExit() in memory mode should succeed")
	}

	sm := game.NewSceneManager()
	sm.SwitchTo(scene)
	if !sm.SaveCurrentScene() {
		t.Error("SceneManager should save through the Saveable interface")
	}
}

// TestHintDemoScene_CloseCancelsTimers 测试关闭场景后计时器不再触发
func TestHintDemoScene_CloseCancelsTimers(t *testing.T) {
	scene, _ := newTestScene(t, true)

	fired := false
	handle, err := scene.timerSystem.ScheduleOnce("close-test", 0.1, func() { fired = true })
	if err != nil {
		t.Fatalf("ScheduleOnce() error: %v", err)
	}

	scene.Close()
	if scene.timerSystem.IsScheduled(handle) {
		t.Error("Close should cancel pending timers")
	}

	runScene(scene, 0.5)
	if fired {
		t.Error("Timer callback should not fire after Close")
	}
}

// TestHintDemoScene_MoveEasing 测试配置中的移动缓动作用到补间系统
func TestHintDemoScene_MoveEasing(t *testing.T) {
	scene, _ := newTestScene(t, true)
	em := scene.EntityManager()

	cfg := config.DefaultHintConfig()
	cfg.MoveEasing = "outQuad"
	scene.ApplyConfig(cfg)

	node := entities.NewSceneNode(em, "probe", 0, types.Vec3{})
	if err := scene.tweenSystem.TweenPosition(node, types.Vec3{X: 8}, 1.0, nil); err != nil {
		t.Fatalf("TweenPosition() error: %v", err)
	}
	scene.tweenSystem.Update(0.5)
	if pos, _ := entities.GetWorldPosition(em, node); pos.X != 6 {
		t.Errorf("outQuad halfway X = %v, want 6", pos.X)
	}

	scene.tweenSystem.Update(0.5)

	// 未知名称回退为线性
	cfg.MoveEasing = "bounce"
	scene.ApplyConfig(cfg)
	scene.tweenSystem.TweenPosition(node, types.Vec3{X: 0}, 1.0, nil)
	scene.tweenSystem.Update(0.5)
	if pos, _ := entities.GetWorldPosition(em, node); pos.X != 4 {
		t.Errorf("Linear halfway X = %v, want 4", pos.X)
	}
}
