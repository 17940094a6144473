package utils

import (
	"math/rand"
	"time"
)

// RandSource 传播算法使用的均匀随机数来源
//
// *rand.Rand 满足该接口；测试中可替换为固定值实现以获得确定的传播路径。
type RandSource interface {
	// Float64 返回 [0, 1) 内的均匀随机数
	Float64() float64
	// Intn 返回 [0, n) 内的均匀随机整数，n 必须大于 0
	Intn(n int) int
}

// NewRandSource 创建随机数来源
// seed 为 0 时使用当前时间作为种子
func NewRandSource(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// Jitter 返回 [-amplitude, amplitude) 内的均匀随机偏移
func Jitter(rng RandSource, amplitude float64) float64 {
	return (rng.Float64() - 0.5) * 2 * amplitude
}

// RandomRange 返回 [min, min+span) 内的均匀随机数
func RandomRange(rng RandSource, min, span float64) float64 {
	return min + rng.Float64()*span
}

// PickDistinct 从 [0, n) 中均匀随机选出 k 个互不相同的下标
//
// 使用部分 Fisher-Yates 洗牌；k 大于 n 时按 n 处理。
// 返回顺序即抽取顺序。
func PickDistinct(rng RandSource, n, k int) []int {
	if n <= 0 || k <= 0 {
		return nil
	}
	if k > n {
		k = n
	}
	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	for i := 0; i < k; i++ {
		j := i + rng.Intn(n-i)
		indices[i], indices[j] = indices[j], indices[i]
	}
	return indices[:k]
}
