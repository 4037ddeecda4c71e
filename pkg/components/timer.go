package components

// TimerComponent 通用计时器组件
// 由 TimerSystem 驱动，用于一次性延迟回调和固定间隔的周期回调
// 每个计时器是一个独立实体，实体ID即取消用的句柄
type TimerComponent struct {
	Name        string  // 计时器名称，如 "hint_inactivity_tick"（仅用于日志）
	TargetTime  float64 // 目标时间/间隔（秒）
	CurrentTime float64 // 当前已过时间（秒）
	IsReady     bool    // 一次性计时器是否已触发
	Repeat      bool    // true: 每隔 TargetTime 触发一次，直到被取消
	Callback    func()  // 到期回调
}
