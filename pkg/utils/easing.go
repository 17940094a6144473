package utils

import "math"

// Easing Functions (缓动函数)
//
// 所有函数接受一个进度值 t，返回缓动后的值。
// 颜色过渡统一使用 S 形 (logistic) 缓动。

// SigmoidSteepness logistic 缓动的陡峭度
const SigmoidSteepness = 12.0

// EaseSigmoid logistic S 形缓动
// 特点：两端平缓，中间最快，在 t=0.5 处关于 (0.5, 0.5) 中心对称
// 公式：f(t) = 1 / (1 + e^(-12(t-0.5)))
//
// 注意：f(0) ≈ 0.0025，f(1) ≈ 0.9975，并不精确等于 0/1；
// 超出 [0, 1] 的输入会自然饱和，无需显式截断。
func EaseSigmoid(t float64) float64 {
	return 1 / (1 + math.Exp(-SigmoidSteepness*(t-0.5)))
}

// EaseInOutSine 正弦缓入缓出（查看器的呼吸缩放使用）
// 公式：f(t) = -(cos(πt) - 1) / 2
func EaseInOutSine(t float64) float64 {
	return -(math.Cos(math.Pi*t) - 1) / 2
}

// Lerp 线性插值
// 在 a 和 b 之间根据 t 插值（呼吸缩放在最小/最大比例之间插值）
// t=0 返回 a，t=1 返回 b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Clamp 将 v 限制在 [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
