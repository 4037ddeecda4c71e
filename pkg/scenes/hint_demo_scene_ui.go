package scenes

import (
	"fmt"
	"image/color"

	"github.com/gonewx/hinthand/pkg/config"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	demoBackgroundColor = color.RGBA{R: 144, G: 200, B: 110, A: 255}
	statusBarColor      = color.RGBA{R: 20, G: 30, B: 20, A: 200}
	statusTextColor     = color.RGBA{R: 240, G: 240, B: 220, A: 255}
)

// Draw 绘制场景：背景 → 目标和指针 → 状态栏
func (s *HintDemoScene) Draw(screen *ebiten.Image) {
	screen.Fill(demoBackgroundColor)
	s.renderSystem.Draw(screen)
	s.drawStatus(screen)
}

// drawStatus 在屏幕底部绘制提示系统状态和按键说明
func (s *HintDemoScene) drawStatus(screen *ebiten.Image) {
	top := float32(config.GameWindowHeight - config.StatusBarHeight)
	vector.DrawFilledRect(screen, 0, top, config.GameWindowWidth, config.StatusBarHeight, statusBarColor, false)

	for i, line := range s.statusLines() {
		op := &text.DrawOptions{}
		op.GeoM.Translate(config.StatusTextMarginX, float64(top)+float64(i*config.StatusLineHeight)+4)
		op.ColorScale.ScaleWithColor(statusTextColor)
		text.Draw(screen, line, s.statusFace, op)
	}
}

// statusLines 状态栏文本
func (s *HintDemoScene) statusLines() []string {
	hs := s.hintSystem

	hintType := "-"
	if t, ok := hs.CurrentHintType(); ok {
		hintType = t.String()
	}

	sound := "n/a"
	if s.settings != nil {
		sound = fmt.Sprintf("%v", s.settings.GetSettings().SoundEnabled)
	}

	return []string{
		fmt.Sprintf("State: %s  Type: %s  Idle: %d/%ds  Hints: %v  Sound: %s",
			hs.State(), hintType, hs.InactivityTime(), hs.InactivityDelay(), hs.HintsEnabled(), sound),
		fmt.Sprintf("Last event: %s", s.lastEvent),
		"[H] hint  [1] start hint  [I] idle hint  [S] stop  [T] toggle hints  [M] toggle sound",
		"[LMB] point here  [RMB] destroy target",
	}
}
