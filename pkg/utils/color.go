package utils

import (
	"github.com/gonewx/lungfx/pkg/types"
	"github.com/lucasb-eyer/go-colorful"
)

// InterpolateColor 按 S 形缓动在 start 和 end 之间插值
//
// 每个分量：start + (end - start) * EaseSigmoid(progress)
// 纯函数，每帧对每个网格调用一次。
//
// 参数：
//   - start: 过渡起始颜色
//   - end: 过渡目标颜色
//   - progress: 过渡进度，调用方应截断到 [0, 1]
func InterpolateColor(start, end types.RGB, progress float64) types.RGB {
	eased := EaseSigmoid(progress)
	return types.RGB{
		R: start.R + (end.R-start.R)*eased,
		G: start.G + (end.G-start.G)*eased,
		B: start.B + (end.B-start.B)*eased,
	}
}

// JitterColor 为每个分量加入 ±amplitude 的均匀随机偏移
//
// 只截断上限 1.0（与材质颜色的处理方式保持一致），下限不做处理。
func JitterColor(rng RandSource, c types.RGB, amplitude float64) types.RGB {
	return types.RGB{
		R: minFloat(1.0, c.R+Jitter(rng, amplitude)),
		G: minFloat(1.0, c.G+Jitter(rng, amplitude)),
		B: minFloat(1.0, c.B+Jitter(rng, amplitude)),
	}
}

// EnsureMinLightness 在 HSL 空间中把亮度提升到至少 minL
//
// 用于剂量颜色，防止深色药物把肺部染成接近黑色。
// 亮度已满足要求的颜色原样返回，避免 HSL 往返带来的误差。
func EnsureMinLightness(c types.RGB, minL float64) types.RGB {
	h, s, l := colorful.Color{R: c.R, G: c.G, B: c.B}.Hsl()
	if l >= minL {
		return c
	}
	adjusted := colorful.Hsl(h, s, minL)
	return types.RGB{R: adjusted.R, G: adjusted.G, B: adjusted.B}
}

// Lightness 返回颜色的 HSL 亮度
func Lightness(c types.RGB) float64 {
	_, _, l := colorful.Color{R: c.R, G: c.G, B: c.B}.Hsl()
	return l
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
