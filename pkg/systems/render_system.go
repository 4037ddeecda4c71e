package systems

import (
	"image/color"
	"math"

	"github.com/gonewx/hinthand/pkg/components"
	"github.com/gonewx/hinthand/pkg/ecs"
	"github.com/gonewx/hinthand/pkg/entities"
	"github.com/gonewx/hinthand/pkg/types"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// 渲染颜色
var (
	targetFillColor   = color.RGBA{R: 250, G: 210, B: 60, A: 255}
	targetRingColor   = color.RGBA{R: 90, G: 60, B: 20, A: 255}
	targetLabelColor  = color.RGBA{R: 30, G: 30, B: 30, A: 255}
	pointerFillColor  = color.RGBA{R: 255, G: 236, B: 210, A: 255}
	pointerEdgeColor  = color.RGBA{R: 60, G: 40, B: 30, A: 255}
	pointerShadowTint = color.RGBA{R: 0, G: 0, B: 0, A: 60}
)

// 指针图形比例（相对指针尺寸）
const (
	pointerFingerWidthRatio = 0.28 // 食指宽度
	pointerFingerLenRatio   = 0.55 // 食指长度
	pointerPalmTopRatio     = 0.45 // 手掌上沿
)

// RenderSystem 绘制提示演示场景
//
// 渲染顺序（从底到顶）：提示目标 → 指针
// 场景里没有贴图资源，目标和指针都用矢量图形绘制
type RenderSystem struct {
	entityManager *ecs.EntityManager
	labelFace     text.Face // 目标名称字体，可为 nil（不绘制名称）
}

// NewRenderSystem 创建渲染系统
func NewRenderSystem(em *ecs.EntityManager, labelFace text.Face) *RenderSystem {
	return &RenderSystem{
		entityManager: em,
		labelFace:     labelFace,
	}
}

// Draw 绘制所有可见的提示目标和指针
func (s *RenderSystem) Draw(screen *ebiten.Image) {
	s.DrawTargets(screen)
	s.DrawPointers(screen)
}

// DrawTargets 绘制带 HintTargetComponent 的节点（按 Order 排序）
func (s *RenderSystem) DrawTargets(screen *ebiten.Image) {
	for _, target := range SceneHintTargets(s.entityManager) {
		actor, ok := target.(ActorTarget)
		if !ok || !entities.IsVisible(s.entityManager, actor.Entity) {
			continue
		}
		pos, ok := actor.WorldPosition()
		if !ok {
			continue
		}
		comp, _ := ecs.GetComponent[*components.HintTargetComponent](s.entityManager, actor.Entity)

		x, y, r := float32(pos.X), float32(pos.Y), float32(comp.Radius)
		vector.DrawFilledCircle(screen, x, y, r, targetFillColor, true)
		vector.StrokeCircle(screen, x, y, r, 2, targetRingColor, true)

		if s.labelFace == nil {
			continue
		}
		if name, ok := ecs.GetComponent[*components.NameComponent](s.entityManager, actor.Entity); ok {
			width, _ := text.Measure(name.Name, s.labelFace, 0)
			op := &text.DrawOptions{}
			op.GeoM.Translate(pos.X-width/2, pos.Y+comp.Radius+4)
			op.ColorScale.ScaleWithColor(targetLabelColor)
			text.Draw(screen, name.Name, s.labelFace, op)
		}
	}
}

// DrawPointers 绘制可见的提示指针
func (s *RenderSystem) DrawPointers(screen *ebiten.Image) {
	for _, b := range s.pointerRects() {
		s.drawHand(screen, b)
	}
}

// pointerRects 计算所有可见指针的屏幕矩形
// 指针实体都带有位置和可见性组件
func (s *RenderSystem) pointerRects() []Rect {
	ids := ecs.GetEntitiesWith3[*components.HintPointerComponent, *components.PositionComponent, *components.VisibilityComponent](s.entityManager)
	rects := make([]Rect, 0, len(ids))
	for _, id := range ids {
		if !entities.IsVisible(s.entityManager, id) {
			continue
		}
		pos, ok := entities.GetWorldPosition(s.entityManager, id)
		if !ok {
			continue
		}
		scale, ok := entities.GetScale(s.entityManager, id)
		if !ok {
			scale = types.Uniform(1)
		}
		pointer, _ := ecs.GetComponent[*components.HintPointerComponent](s.entityManager, id)
		rects = append(rects, PointerBounds(pos, scale, pointer))
	}
	return rects
}

// drawHand 在给定区域内画一只伸出食指的手
func (s *RenderSystem) drawHand(screen *ebiten.Image, b Rect) {
	fingerW := b.W * pointerFingerWidthRatio
	fingerH := b.H * pointerFingerLenRatio
	palmY := b.Y + b.H*pointerPalmTopRatio

	// 阴影
	vector.DrawFilledRect(screen, float32(b.X+3), float32(palmY+3), float32(b.W), float32(b.Y+b.H-palmY), pointerShadowTint, true)

	// 食指
	vector.DrawFilledRect(screen, float32(b.X), float32(b.Y), float32(fingerW), float32(fingerH), pointerFillColor, true)
	vector.StrokeRect(screen, float32(b.X), float32(b.Y), float32(fingerW), float32(fingerH), 1.5, pointerEdgeColor, true)

	// 手掌
	vector.DrawFilledRect(screen, float32(b.X), float32(palmY), float32(b.W), float32(b.Y+b.H-palmY), pointerFillColor, true)
	vector.StrokeRect(screen, float32(b.X), float32(palmY), float32(b.W), float32(b.Y+b.H-palmY), 1.5, pointerEdgeColor, true)
}

// Rect 屏幕矩形
type Rect struct {
	X, Y, W, H float64
}

// PointerBounds 计算指针图形在屏幕上的矩形
// 实体位置就是指尖位置，图形左上角 = 位置 - 指尖偏移 × 缩放；
// 缩放为负时按绝对值处理
func PointerBounds(pos, scale types.Vec3, pointer *components.HintPointerComponent) Rect {
	sx, sy := math.Abs(scale.X), math.Abs(scale.Y)
	return Rect{
		X: pos.X - pointer.TipOffsetX*sx,
		Y: pos.Y - pointer.TipOffsetY*sy,
		W: pointer.Width * sx,
		H: pointer.Height * sy,
	}
}

