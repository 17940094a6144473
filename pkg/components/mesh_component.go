package components

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/gonewx/lungfx/pkg/types"
)

// MeshComponent 网格组件
// 代表模型中的一个可渲染表面，是颜色变化的最小单位
//
// 网格本身由外部场景图持有，引擎只保存注册时的快照和当前颜色。
type MeshComponent struct {
	// Name 网格在模型中的标识
	Name string

	// WorldPosition 网格世界坐标（用于计算邻接关系和绘制）
	WorldPosition mgl32.Vec3

	// BaseColor 加载时的材质颜色
	BaseColor types.RGB

	// CurrentColor 当前显示颜色，由传播/恢复系统每帧修改
	CurrentColor types.RGB
}
