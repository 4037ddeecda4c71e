package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gonewx/hinthand/pkg/app"
	"github.com/gonewx/hinthand/pkg/config"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	configPath = flag.String("config", "data/hint_config.yaml", "提示配置文件路径")
	scriptPath = flag.String("script", "", "目标脚本路径（默认使用配置文件中的 targetScript）")
	delay      = flag.Int("delay", 0, "空闲提示阈值（秒），覆盖配置文件和玩家设置")
	watch      = flag.Bool("watch", true, "监听配置文件和脚本变化并热重载")
	verbose    = flag.Bool("verbose", false, "显示详细日志")
)

func main() {
	flag.Parse()

	a, err := app.NewApp(app.Config{
		Verbose:    *verbose,
		ConfigPath: *configPath,
		ScriptPath: *scriptPath,
		Delay:      *delay,
		Watch:      *watch,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化失败: %v\n", err)
		os.Exit(1)
	}

	ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
	ebiten.SetWindowTitle("Hint Hand Demo")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(config.GameTPS)

	runErr := ebiten.RunGame(a)
	a.Close()
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "运行失败: %v\n", runErr)
		os.Exit(1)
	}
}
