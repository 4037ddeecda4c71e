// Package utils 提供通用工具函数
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// PointerPress 本帧刚发生的一次点击或触摸
type PointerPress struct {
	X, Y int
	// Secondary 鼠标右键（触摸没有右键，始终为 false）
	Secondary bool
}

// AppendJustPressedPointers 追加本帧刚按下的指针
// 同时支持鼠标和触摸：每个新触摸点和鼠标左键算主按键，鼠标右键算次按键
func AppendJustPressedPointers(presses []PointerPress) []PointerPress {
	for _, id := range inpututil.AppendJustPressedTouchIDs(nil) {
		x, y := ebiten.TouchPosition(id)
		presses = append(presses, PointerPress{X: x, Y: y})
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		presses = append(presses, PointerPress{X: x, Y: y})
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		x, y := ebiten.CursorPosition()
		presses = append(presses, PointerPress{X: x, Y: y, Secondary: true})
	}
	return presses
}
