package components

import (
	"github.com/gonewx/hinthand/pkg/ecs"
	"github.com/gonewx/hinthand/pkg/types"
)

// HintComponent 提示指针组件
//
// 作为单例组件挂载到 HintSystem 创建的专用实体上，保存：
//   - 空闲监控状态（InactivityTime / InactivityDelay）
//   - 指针外观与动画参数（运行时可通过 HintSystem 的 Setter 修改）
//   - 互斥标志 IsActive
//
// 参数修改在下一个动画步骤生效，不会影响正在播放的补间
type HintComponent struct {
	// IsReady 系统是否已完成 Setup（指针已创建、空闲计时已启动）
	// 未就绪时 Tick 不做任何事
	IsReady bool

	// IsActive 是否有提示会话正在播放
	// 进入 Activating 时置 true，只在 Completed/出错/Stop 时置 false
	IsActive bool

	// HintsEnabled 提示总开关（玩家设置）
	// false 时 ShowHint 和空闲触发都直接忽略
	HintsEnabled bool

	// InactivityTime 距离上次重置经过的整秒数
	InactivityTime int

	// InactivityDelay 空闲阈值（秒），达到后触发空闲提示
	InactivityDelay int

	// PointerScale 指针的基础缩放
	PointerScale types.Vec3

	// PointerOffset 加到每个目标世界坐标上的偏移
	PointerOffset types.Vec3

	// PressScale 按压动画的缩放倍率（只作用于 X/Y）
	PressScale float64

	// PressDuration 按压动画单程时长（秒）
	PressDuration float64

	// MoveSpeed 指针移动到一个目标所用的时长（秒）
	// 名称沿用历史叫法，实际是时长而非速度
	MoveSpeed float64

	// PointerEntityID 指针实体ID，0 表示尚未创建
	PointerEntityID ecs.EntityID

	// PointerParent 指针的父容器实体，0 表示场景根
	PointerParent ecs.EntityID

	// TickTimerID 空闲计时器句柄，0 表示未启动
	TickTimerID ecs.EntityID
}
