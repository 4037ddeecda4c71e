// Package types 定义共享的基础类型
// 这个包不依赖任何其他业务包，用于解决循环引用问题
package types

import "fmt"

// HintType 定义提示的触发类型
type HintType int

const (
	// HintStartGame 游戏开始时的提示
	HintStartGame HintType = iota
	// HintInactivity 玩家长时间无操作触发的提示
	HintInactivity
	// HintCustom 由游戏代码主动请求的提示
	HintCustom
)

// String 返回提示类型的字符串表示
func (h HintType) String() string {
	switch h {
	case HintStartGame:
		return "StartGame"
	case HintInactivity:
		return "Inactivity"
	case HintCustom:
		return "Custom"
	default:
		return "Unknown"
	}
}

// ParseHintType 将字符串解析为提示类型
// 接受 String() 的输出，脚本和配置文件使用此格式
func ParseHintType(s string) (HintType, error) {
	switch s {
	case "StartGame":
		return HintStartGame, nil
	case "Inactivity":
		return HintInactivity, nil
	case "Custom":
		return HintCustom, nil
	default:
		return 0, fmt.Errorf("unknown hint type %q", s)
	}
}

// HintState 提示序列的状态
type HintState int

const (
	// HintStateIdle 空闲，可以接受新的提示请求
	HintStateIdle HintState = iota
	// HintStateActivating 指针已显示，正在定位到第一个目标
	HintStateActivating
	// HintStateSettling 第一次移动前的固定停顿
	HintStateSettling
	// HintStateMoving 指针正在移向当前目标
	HintStateMoving
	// HintStatePressing 指针正在播放按压动画
	HintStatePressing
	// HintStateCompleted 序列结束，正在清理
	HintStateCompleted
)

// String 返回状态名
func (s HintState) String() string {
	switch s {
	case HintStateIdle:
		return "Idle"
	case HintStateActivating:
		return "Activating"
	case HintStateSettling:
		return "Settling"
	case HintStateMoving:
		return "Moving"
	case HintStatePressing:
		return "Pressing"
	case HintStateCompleted:
		return "Completed"
	default:
		return "Unknown"
	}
}
