package meshfile

// MeshFile 网格模型描述文件
//
// 文件为 YAML 格式，描述模型中每个网格的标识、世界坐标和材质颜色：
//
//	name: demo-bronchi
//	meshes:
//	  - id: trachea_0
//	    position: [0, 2.5, 0]
//	    color: [0.92, 0.62, 0.66]
//	  - id: glass_shell
//	    position: [0, 0, 0]   # 无 color 字段表示网格没有材质颜色
type MeshFile struct {
	Name   string      `yaml:"name"`
	Meshes []MeshEntry `yaml:"meshes"`
}

// MeshEntry 单个网格条目
type MeshEntry struct {
	ID       string     `yaml:"id"`
	Position []float64  `yaml:"position"`
	Color    *[]float64 `yaml:"color,omitempty"`
}
