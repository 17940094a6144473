package types

import (
	"fmt"
	"image/color"
	"math"
)

// RGB 网格材质颜色
//
// 分量为 [0, 1] 范围内的浮点数，与渲染器材质颜色的表示方式一致。
// 抖动后的颜色分量可能略微越界，转换为 color.RGBA 时再截断。
type RGB struct {
	R float64 `yaml:"r"`
	G float64 `yaml:"g"`
	B float64 `yaml:"b"`
}

// NewRGB 由三个分量构造颜色
func NewRGB(r, g, b float64) RGB {
	return RGB{R: r, G: g, B: b}
}

// RGBFromSlice 由 [r, g, b] 切片构造颜色（YAML 配置中的颜色写法）
func RGBFromSlice(values []float64) (RGB, error) {
	if len(values) != 3 {
		return RGB{}, fmt.Errorf("color must have 3 components, got %d", len(values))
	}
	return RGB{R: values[0], G: values[1], B: values[2]}, nil
}

// ApproxEqual 判断两个颜色在每个分量上的差值都不超过 eps
func (c RGB) ApproxEqual(other RGB, eps float64) bool {
	return math.Abs(c.R-other.R) <= eps &&
		math.Abs(c.G-other.G) <= eps &&
		math.Abs(c.B-other.B) <= eps
}

// MaxDistance 返回各分量差值的最大绝对值
func (c RGB) MaxDistance(other RGB) float64 {
	return math.Max(math.Abs(c.R-other.R), math.Max(math.Abs(c.G-other.G), math.Abs(c.B-other.B)))
}

// ToRGBA 转换为 8 位颜色（越界分量截断到 [0, 1]）
func (c RGB) ToRGBA() color.RGBA {
	return color.RGBA{
		R: channelToByte(c.R),
		G: channelToByte(c.G),
		B: channelToByte(c.B),
		A: 255,
	}
}

// String 便于日志输出
func (c RGB) String() string {
	return fmt.Sprintf("(%.3f, %.3f, %.3f)", c.R, c.G, c.B)
}

func channelToByte(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(math.Round(v * 255))
}
