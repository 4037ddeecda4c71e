// Package app 提供提示演示程序的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来：加载配置、打开玩家设置、
// 创建音频和场景，并在游戏循环中处理配置文件热重载。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"
	"path/filepath"

	"github.com/gonewx/hinthand/pkg/config"
	"github.com/gonewx/hinthand/pkg/game"
	"github.com/gonewx/hinthand/pkg/scenes"
	"github.com/gonewx/hinthand/pkg/script"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// AppName gdata 存储使用的应用名
const AppName = "hinthand"

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ConfigPath 提示配置文件路径，文件不存在时使用默认配置
	ConfigPath string
	// ScriptPath 目标脚本路径，为空时使用配置文件中的 targetScript
	ScriptPath string
	// Delay 空闲阈值（秒），>0 时覆盖配置文件和玩家设置
	Delay int
	// Watch 监听配置文件和脚本变化并热重载
	Watch bool
}

// App 是演示程序的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager *game.SceneManager
	scene        *scenes.HintDemoScene
	targetScript *script.TargetScript // 可为 nil
	watcher      *config.HintConfigWatcher
	configPath   string
}

// NewApp 创建并初始化应用
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	hintConfig := loadHintConfig(cfg.ConfigPath)

	settings := game.OpenHintSettings(AppName)
	audioManager := game.NewAudioManager(audio.NewContext(game.AudioSampleRate), settings)
	log.Printf("[App] AudioManager initialized")

	scene, err := scenes.NewHintDemoScene(hintConfig, settings, audioManager)
	if err != nil {
		return nil, fmt.Errorf("场景创建失败: %w", err)
	}
	if cfg.Delay > 0 {
		scene.SetDelayOverride(cfg.Delay)
	}

	a := &App{
		sceneManager: game.NewSceneManager(),
		scene:        scene,
		configPath:   cfg.ConfigPath,
	}
	a.sceneManager.SwitchTo(scene)

	scriptPath := cfg.ScriptPath
	if scriptPath == "" {
		scriptPath = hintConfig.TargetScript
	}
	if scriptPath != "" {
		ts, err := script.LoadTargetScript(scriptPath, scene.EntityManager())
		if err != nil {
			scene.Close()
			return nil, fmt.Errorf("目标脚本加载失败: %w", err)
		}
		a.targetScript = ts
		scene.SetTargetResolver(ts.Resolver())
		log.Printf("[App] Target script loaded: %s", scriptPath)
	}

	if cfg.Watch {
		watcher, err := config.NewHintConfigWatcher(cfg.ConfigPath, scriptPath)
		if err != nil {
			// 热重载不可用不影响运行
			log.Printf("[App] Warning: Config watcher unavailable: %v", err)
		} else {
			a.watcher = watcher
		}
	}

	return a, nil
}

// loadHintConfig 加载提示配置，失败时使用默认配置
func loadHintConfig(path string) *config.HintConfig {
	if path == "" {
		return config.DefaultHintConfig()
	}
	cfg, err := config.LoadHintConfig(path)
	if err != nil {
		log.Printf("[App] Warning: %v (using defaults)", err)
		return config.DefaultHintConfig()
	}
	log.Printf("[Config] 加载提示配置: %s", path)
	return cfg
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（每秒 GameTPS 次）
func (a *App) Update() error {
	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}

	a.pollWatcher()

	deltaTime := 1.0 / float64(config.GameTPS)
	a.sceneManager.Update(deltaTime)
	return nil
}

// pollWatcher 处理本帧之前发生的文件变化
func (a *App) pollWatcher() {
	if a.watcher == nil {
		return
	}

	select {
	case err := <-a.watcher.Errors:
		log.Printf("[App] Warning: Config watcher error: %v", err)
	default:
	}

	for _, changed := range a.watcher.Poll() {
		a.reload(changed)
	}
}

// reload 重新加载变化的文件
// 失败时保留当前配置或脚本
func (a *App) reload(changed string) {
	if a.configPath != "" && samePath(changed, a.configPath) {
		cfg, err := config.LoadHintConfig(a.configPath)
		if err != nil {
			log.Printf("[App] Warning: Config reload failed: %v (keeping current config)", err)
			return
		}
		a.scene.ApplyConfig(cfg)
		log.Printf("[App] Config reloaded: %s", a.configPath)
		return
	}

	if a.targetScript != nil && samePath(changed, a.targetScript.Path()) {
		if err := a.targetScript.Reload(); err != nil {
			log.Printf("[App] Warning: Script reload failed: %v (keeping current script)", err)
		}
	}
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	return errA == nil && errB == nil && absA == absB
}

// Draw 绘制游戏画面
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回游戏的逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.GameWindowWidth, config.GameWindowHeight
}

// Close 保存设置，停止监听并释放提示系统
// 窗口关闭后调用
func (a *App) Close() {
	if !a.sceneManager.SaveCurrentScene() {
		log.Printf("[App] Warning: Failed to save on exit")
	}
	if a.watcher != nil {
		_ = a.watcher.Close()
	}
	a.scene.Close()
}
