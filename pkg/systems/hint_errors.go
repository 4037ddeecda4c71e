package systems

import "errors"

// 提示系统的错误类型
// 这些错误只出现在日志里，不会通过公开 API 返回给调用方（ErrHintSystemExists 除外）
var (
	// ErrNoTargetsAvailable 请求时没有任何可用目标，请求被丢弃
	ErrNoTargetsAvailable = errors.New("no hint targets available")

	// ErrTargetInvalid 目标在轮到它时已失效，跳过该目标
	ErrTargetInvalid = errors.New("hint target is no longer valid")

	// ErrAnimationFailure 补间或计时协作方报告失败，会话被中止并清理
	ErrAnimationFailure = errors.New("hint animation failed")

	// ErrHintSystemExists 已存在一个 HintSystem 实例
	ErrHintSystemExists = errors.New("hint system instance already exists")
)
