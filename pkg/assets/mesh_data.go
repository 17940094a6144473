// Package assets 提供模型加载：网格描述文件解析、程序化肺部模型生成
// 以及加载完成后的异步通知（ModelFuture）。
//
// 加载得到的 []MeshData 交给 game.SceneContext.RegisterMeshes 注册。
package assets

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/gonewx/lungfx/internal/meshfile"
	"github.com/gonewx/lungfx/pkg/types"
)

// MeshData 加载器输出的网格快照
type MeshData struct {
	// ID 网格标识
	ID string
	// WorldPosition 归一化后的世界坐标
	WorldPosition mgl32.Vec3
	// Color 材质颜色；nil 表示网格没有材质颜色（注册时跳过）
	Color *types.RGB
}

// FromMeshFile 将描述文件转换为 MeshData 列表
// 调用前文件应已通过 Validate 校验
func FromMeshFile(file *meshfile.MeshFile) []MeshData {
	meshes := make([]MeshData, 0, len(file.Meshes))
	for _, entry := range file.Meshes {
		m := MeshData{
			ID: entry.ID,
			WorldPosition: mgl32.Vec3{
				float32(entry.Position[0]),
				float32(entry.Position[1]),
				float32(entry.Position[2]),
			},
		}
		if entry.Color != nil {
			c := (*entry.Color)
			rgb := types.NewRGB(c[0], c[1], c[2])
			m.Color = &rgb
		}
		meshes = append(meshes, m)
	}
	return meshes
}
