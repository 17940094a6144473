package assets

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gonewx/lungfx/pkg/types"
)

// LungOptions 程序化肺部模型参数
type LungOptions struct {
	// Seed 随机种子，相同种子生成相同模型
	Seed int64
	// Depth 支气管分叉层数
	Depth int
	// SegmentLength 相邻网格间距（归一化前），小于邻接阈值才能连通
	SegmentLength float64
	// ClusterSize 每个末端的肺泡网格数
	ClusterSize int
}

// DefaultLungOptions 返回默认参数
func DefaultLungOptions() LungOptions {
	return LungOptions{
		Seed:          1,
		Depth:         4,
		SegmentLength: 0.45,
		ClusterSize:   3,
	}
}

var (
	tracheaColor  = types.NewRGB(0.95, 0.80, 0.78)
	bronchusColor = types.NewRGB(0.93, 0.62, 0.66)
	alveolusColor = types.NewRGB(0.90, 0.52, 0.58)
)

// lungBuilder 沿支气管树逐段放置网格
type lungBuilder struct {
	rng    *rand.Rand
	opts   LungOptions
	meshes []MeshData
}

// GenerateLung 生成一棵左右对称分叉的支气管树
//
// 气管自上而下，末端分为左右主支气管，之后每层二分叉，
// 最末端放置一小簇肺泡网格。网格颜色带少量随机差异。
func GenerateLung(opts LungOptions) []MeshData {
	if opts.SegmentLength <= 0 {
		opts.SegmentLength = DefaultLungOptions().SegmentLength
	}
	b := &lungBuilder{
		rng:  rand.New(rand.NewSource(opts.Seed)),
		opts: opts,
	}

	top := mgl32.Vec3{0, 3.0, 0}
	carina := b.segment("trachea", top, mgl32.Vec3{0, -1, 0}, 4, tracheaColor)

	b.branch("bronchus_L", carina, mgl32.Vec3{-1, -1, 0}.Normalize(), opts.Depth)
	b.branch("bronchus_R", carina, mgl32.Vec3{1, -1, 0}.Normalize(), opts.Depth)

	return b.meshes
}

// segment 从 start 沿 dir 放置 count 个网格，返回最后一个网格的位置
func (b *lungBuilder) segment(prefix string, start, dir mgl32.Vec3, count int, base types.RGB) mgl32.Vec3 {
	step := float32(b.opts.SegmentLength)
	p := start
	for i := 0; i < count; i++ {
		p = p.Add(dir.Mul(step))
		b.add(fmt.Sprintf("%s_%d", prefix, i), p, base, 0.03)
	}
	return p
}

// branch 递归生成分叉
func (b *lungBuilder) branch(prefix string, start, dir mgl32.Vec3, depth int) {
	count := 2 + depth/2
	end := b.segment(prefix, start, dir, count, bronchusColor)

	if depth <= 0 {
		b.cluster(prefix+"_alveoli", end)
		return
	}

	spread := float32(math.Pi/5 + b.rng.Float64()*math.Pi/12)
	tilt := float32((b.rng.Float64() - 0.5) * math.Pi / 3)

	left := mgl32.Rotate3DX(tilt).Mul3x1(mgl32.Rotate3DZ(spread).Mul3x1(dir)).Normalize()
	right := mgl32.Rotate3DX(-tilt).Mul3x1(mgl32.Rotate3DZ(-spread).Mul3x1(dir)).Normalize()

	b.branch(prefix+"a", end, left, depth-1)
	b.branch(prefix+"b", end, right, depth-1)
}

// cluster 在 center 周围放置肺泡网格
func (b *lungBuilder) cluster(prefix string, center mgl32.Vec3) {
	radius := b.opts.SegmentLength * 0.8
	for i := 0; i < b.opts.ClusterSize; i++ {
		angle := 2 * math.Pi * float64(i) / float64(b.opts.ClusterSize)
		offset := mgl32.Vec3{
			float32(math.Cos(angle) * radius),
			float32((b.rng.Float64() - 0.5) * radius),
			float32(math.Sin(angle) * radius),
		}
		b.add(fmt.Sprintf("%s_%d", prefix, i), center.Add(offset), alveolusColor, 0.04)
	}
}

func (b *lungBuilder) add(id string, p mgl32.Vec3, base types.RGB, variance float64) {
	c := types.NewRGB(
		math.Min(1, base.R+(b.rng.Float64()-0.5)*2*variance),
		math.Min(1, base.G+(b.rng.Float64()-0.5)*2*variance),
		math.Min(1, base.B+(b.rng.Float64()-0.5)*2*variance),
	)
	b.meshes = append(b.meshes, MeshData{ID: id, WorldPosition: p, Color: &c})
}
