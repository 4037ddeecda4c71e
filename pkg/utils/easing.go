package utils

import (
	"fmt"
	"math"
)

// Easing Functions (缓动函数)
//
// 缓动函数用于控制补间的速度曲线，使指针移动看起来更自然。
// 所有函数接受一个进度值 t ∈ [0, 1]，返回缓动后的值，且 f(0)=0、f(1)=1。
//
// 参考：https://easings.net/

// EasingFunc 缓动函数
type EasingFunc func(t float64) float64

// EaseLinear 线性缓动（无缓动）
func EaseLinear(t float64) float64 {
	return t
}

// EaseInQuad 二次方缓入
// 公式：f(t) = t²
func EaseInQuad(t float64) float64 {
	return t * t
}

// EaseOutQuad 二次方缓出
// 特点：开始较快，结束慢（适合按压回弹）
// 公式：f(t) = 1 - (1-t)²
func EaseOutQuad(t float64) float64 {
	return 1 - (1-t)*(1-t)
}

// EaseOutCubic 三次方缓出
// 特点：开始快，结束慢
// 公式：f(t) = 1 - (1-t)³
func EaseOutCubic(t float64) float64 {
	return 1 - math.Pow(1-t, 3)
}

// EaseInOutCubic 三次方缓入缓出
// 特点：开始慢，中间快，结束慢（适合指针在目标间移动）
//
//	t < 0.5: f(t) = 4t³
//	t >= 0.5: f(t) = 1 - (-2t + 2)³ / 2
func EaseInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

// easingByName 配置文件中可用的缓动名称
var easingByName = map[string]EasingFunc{
	"linear":     EaseLinear,
	"inQuad":     EaseInQuad,
	"outQuad":    EaseOutQuad,
	"outCubic":   EaseOutCubic,
	"inOutCubic": EaseInOutCubic,
}

// EasingByName 按名称查找缓动函数，空字符串返回线性缓动
func EasingByName(name string) (EasingFunc, error) {
	if name == "" {
		return EaseLinear, nil
	}
	ease, ok := easingByName[name]
	if !ok {
		return nil, fmt.Errorf("unknown easing %q", name)
	}
	return ease, nil
}
