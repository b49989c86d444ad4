// Package utils 提供通用数学工具：插值与缓动
package utils

import "math"

// Clamp01 把 t 限制在 [0, 1]
func Clamp01(t float64) float64 {
	return math.Max(0, math.Min(1, t))
}

// Lerp 线性插值，t=0 返回 a，t=1 返回 b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Approach 以每秒 rate 的比例让 current 靠近 target
// rate*dt ≥ 1 时直接到达
func Approach(current, target, rate, dt float64) float64 {
	return Lerp(current, target, Clamp01(rate*dt))
}

// EaseInOutCubic 三次方缓入缓出：两端慢、中间快（转场遮罩）
//
//	t < 0.5:  4t³
//	t >= 0.5: 1 - (2 - 2t)³ / 2
func EaseInOutCubic(t float64) float64 {
	t = Clamp01(t)
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(2-2*t, 3)/2
}

// EaseOutQuad 二次方缓出：开始快、结束慢（特效淡出）
func EaseOutQuad(t float64) float64 {
	t = Clamp01(t)
	return 1 - (1-t)*(1-t)
}
