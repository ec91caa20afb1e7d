package utils

import (
	"fmt"
	"math"
	"strings"
)

// Easing Functions (缓动函数)
//
// 用于控制时间缩放过渡的速度曲线。
// 所有函数接受一个进度值 t ∈ [0, 1]，返回缓动后的值 ∈ [0, 1]，
// 满足 f(0)=0、f(1)=1 且单调不减，因此过渡过程始终单调逼近目标值。
//
// 参考：https://easings.net/

// EasingFunc 缓动函数签名
type EasingFunc func(t float64) float64

// EaseLinear 线性缓动（无缓动）
func EaseLinear(t float64) float64 {
	return t
}

// EaseOutCubic 三次方缓出
// 公式：f(t) = 1 - (1-t)³
func EaseOutCubic(t float64) float64 {
	return 1 - math.Pow(1-t, 3)
}

// EaseInCubic 三次方缓入
// 公式：f(t) = t³
func EaseInCubic(t float64) float64 {
	return t * t * t
}

// EaseInOutCubic 三次方缓入缓出
//
//	t < 0.5: f(t) = 4t³
//	t >= 0.5: f(t) = 1 - (-2t + 2)³ / 2
func EaseInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

// EaseOutQuad 二次方缓出
// 公式：f(t) = 1 - (1-t)²
func EaseOutQuad(t float64) float64 {
	return 1 - (1-t)*(1-t)
}

// EaseInQuad 二次方缓入
// 公式：f(t) = t²
func EaseInQuad(t float64) float64 {
	return t * t
}

// easingByName 配置文件中可用的缓动名称
var easingByName = map[string]EasingFunc{
	"linear":         EaseLinear,
	"easeinquad":     EaseInQuad,
	"easeoutquad":    EaseOutQuad,
	"easeincubic":    EaseInCubic,
	"easeoutcubic":   EaseOutCubic,
	"easeinoutcubic": EaseInOutCubic,
}

// EasingByName 根据名称查找缓动函数（不区分大小写）
//
// 参数：
//   - name: 缓动名称，如 "linear"、"easeOutCubic"；空字符串视为 "linear"
//
// 返回：
//   - EasingFunc: 对应的缓动函数
//   - error: 名称无法识别时返回错误
func EasingByName(name string) (EasingFunc, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return EaseLinear, nil
	}
	if fn, ok := easingByName[key]; ok {
		return fn, nil
	}
	return nil, fmt.Errorf("unknown easing: %q", name)
}

// Lerp 线性插值
// t=0 返回 a，t=1 返回 b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// IsFinite 是否为有限值（非 NaN、非 ±Inf）
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// ClampNonNegative 负值与非有限值（NaN、±Inf）一律返回 0
func ClampNonNegative(v float64) float64 {
	if !IsFinite(v) || v < 0 {
		return 0
	}
	return v
}

// Clamp01 将值限制在 [0, 1] 范围内
func Clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
