package components

import (
	"github.com/gonewx/hinthand/pkg/ecs"
	"github.com/gonewx/hinthand/pkg/types"
)

// TweenProperty 补间作用的属性
type TweenProperty int

const (
	// TweenWorldPosition 补间目标实体的世界坐标
	TweenWorldPosition TweenProperty = iota
	// TweenScale 补间目标实体的缩放
	TweenScale
	// TweenDelay 不修改任何属性，只等待 Duration 后回调
	TweenDelay
)

// TweenComponent 补间动画组件
// 每个补间是一个独立实体，Target 指向被动画的实体
// 与 SunCollectionAnimationComponent 类似，TweenSystem 每帧推进 Elapsed
//
// 工作流程：
//  1. TweenSystem.TweenXxx 创建补间实体，记录终点和时长
//  2. 首次更新时从目标实体采样起点（"从当前值开始"）
//  3. Elapsed 达到 Duration 时写入终点，销毁补间实体并调用 OnComplete
//  4. 目标实体在补间过程中失效时，以错误调用 OnComplete
type TweenComponent struct {
	// Target 被动画的实体
	Target ecs.EntityID

	// Property 补间作用的属性
	Property TweenProperty

	// From 起点值，Started 为 false 时尚未采样
	From types.Vec3

	// To 终点值
	To types.Vec3

	// Duration 总时长（秒），0 表示下一帧立即完成
	Duration float64

	// Elapsed 已播放时间（秒）
	Elapsed float64

	// Started 是否已采样起点
	Started bool

	// OnComplete 完成回调；err 非 nil 表示补间被异常中止
	// 通过 StopAll 取消的补间不会调用此回调
	OnComplete func(err error)
}

// GetProgress 获取补间进度（0.0 到 1.0）
func (t *TweenComponent) GetProgress() float64 {
	if t.Duration <= 0 {
		return 1.0
	}
	progress := t.Elapsed / t.Duration
	if progress < 0 {
		return 0.0
	}
	if progress > 1.0 {
		return 1.0
	}
	return progress
}
