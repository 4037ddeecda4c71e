// Package event 提供提示系统对外发布的事件
//
// 事件在游戏线程上同步派发，监听者不应在回调中阻塞
package event

import "github.com/gonewx/hinthand/pkg/types"

// EventType 事件类型
type EventType int

const (
	// EventHintStart 提示开始播放，携带提示类型
	EventHintStart EventType = iota + 1
	// EventHintEnd 提示结束，正常结束时携带提示类型；Stop 中止时不携带
	EventHintEnd
	// EventPlayerInactive 玩家空闲时间达到阈值
	EventPlayerInactive
)

// String 返回事件名称（与外部监听约定的名称一致）
func (e EventType) String() string {
	switch e {
	case EventHintStart:
		return "hint-start"
	case EventHintEnd:
		return "hint-end"
	case EventPlayerInactive:
		return "player-inactive"
	default:
		return "unknown"
	}
}

// HintEvent 提示事件
type HintEvent struct {
	Type EventType

	// HintType 提示类型，仅当 HasHintType 为 true 时有效
	HintType types.HintType

	// HasHintType 事件是否携带提示类型
	// player-inactive 和被 Stop 中止的 hint-end 不携带
	HasHintType bool
}

// HintStart 构造 hint-start 事件
func HintStart(h types.HintType) HintEvent {
	return HintEvent{Type: EventHintStart, HintType: h, HasHintType: true}
}

// HintEnd 构造带类型的 hint-end 事件
func HintEnd(h types.HintType) HintEvent {
	return HintEvent{Type: EventHintEnd, HintType: h, HasHintType: true}
}

// HintEndUntyped 构造不带类型的 hint-end 事件（Stop 中止）
func HintEndUntyped() HintEvent {
	return HintEvent{Type: EventHintEnd}
}

// PlayerInactive 构造 player-inactive 事件
func PlayerInactive() HintEvent {
	return HintEvent{Type: EventPlayerInactive}
}
