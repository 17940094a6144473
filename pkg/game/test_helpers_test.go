package game

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/gonewx/lungfx/pkg/assets"
	"github.com/gonewx/lungfx/pkg/types"
)

// constRand 总是返回同一个值的随机源
type constRand struct {
	v float64
}

func (r constRand) Float64() float64 { return r.v }

func (r constRand) Intn(n int) int {
	i := int(r.v * float64(n))
	if i >= n {
		i = n - 1
	}
	return i
}

// lineMeshes 沿 X 轴等距排列 n 个网格
func lineMeshes(n int, spacing float32, c types.RGB) []assets.MeshData {
	meshes := make([]assets.MeshData, n)
	for i := range meshes {
		color := c
		meshes[i] = assets.MeshData{
			ID:            string(rune('a' + i)),
			WorldPosition: mgl32.Vec3{float32(i) * spacing, 0, 0},
			Color:         &color,
		}
	}
	return meshes
}
