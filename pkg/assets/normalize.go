package assets

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	// DefaultModelSize 归一化后模型最长边的长度（世界单位）
	DefaultModelSize = 6.0

	// DefaultModelYOffset 归一化后模型整体下移量，为上方信息面板留出空间
	DefaultModelYOffset = -1.5
)

// Bounds 轴对齐包围盒
type Bounds struct {
	Min, Max mgl32.Vec3
}

// Center 包围盒中心
func (b Bounds) Center() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Size 包围盒尺寸
func (b Bounds) Size() mgl32.Vec3 {
	return b.Max.Sub(b.Min)
}

// ComputeBounds 计算所有网格位置的包围盒
// 空列表返回零值
func ComputeBounds(meshes []MeshData) Bounds {
	if len(meshes) == 0 {
		return Bounds{}
	}
	b := Bounds{Min: meshes[0].WorldPosition, Max: meshes[0].WorldPosition}
	for _, m := range meshes[1:] {
		p := m.WorldPosition
		for axis := 0; axis < 3; axis++ {
			b.Min[axis] = float32(math.Min(float64(b.Min[axis]), float64(p[axis])))
			b.Max[axis] = float32(math.Max(float64(b.Max[axis]), float64(p[axis])))
		}
	}
	return b
}

// NormalizeModel 将模型居中并缩放到最长边为 size，再整体下移 yOffset
//
// 邻接关系基于归一化后的世界坐标计算，因此距离阈值 1.0 对任意来源的模型含义一致。
// 所有网格重合（最长边为 0）时只做平移。
func NormalizeModel(meshes []MeshData, size, yOffset float64) {
	if len(meshes) == 0 {
		return
	}

	bounds := ComputeBounds(meshes)
	center := bounds.Center()
	dims := bounds.Size()
	maxDim := math.Max(float64(dims[0]), math.Max(float64(dims[1]), float64(dims[2])))

	scale := float32(1.0)
	if maxDim > 0 {
		scale = float32(size / maxDim)
	}
	offset := mgl32.Vec3{0, float32(yOffset), 0}

	for i := range meshes {
		meshes[i].WorldPosition = meshes[i].WorldPosition.Sub(center).Mul(scale).Add(offset)
	}
}
