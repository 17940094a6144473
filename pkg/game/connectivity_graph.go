package game

import (
	"github.com/gonewx/lungfx/pkg/components"
	"github.com/gonewx/lungfx/pkg/ecs"
)

// DefaultConnectivityThreshold 默认邻接距离阈值（世界单位）
const DefaultConnectivityThreshold = 1.0

// ConnectivityGraph 网格邻接表
//
// 按有向边保存：A 的邻居列表中有 B 并不保证 B 的列表中有 A。
// 每个方向独立计算距离，不做对称化处理。
// 邻居列表按网格注册顺序排列。
type ConnectivityGraph map[ecs.EntityID][]ecs.EntityID

// Neighbors 返回 id 的邻居（不存在时返回 nil）
func (g ConnectivityGraph) Neighbors(id ecs.EntityID) []ecs.EntityID {
	return g[id]
}

// HasEdge 检查是否存在有向边 from -> to
func (g ConnectivityGraph) HasEdge(from, to ecs.EntityID) bool {
	for _, n := range g[from] {
		if n == to {
			return true
		}
	}
	return false
}

// EdgeCount 有向边总数
func (g ConnectivityGraph) EdgeCount() int {
	total := 0
	for _, ns := range g {
		total += len(ns)
	}
	return total
}

// BuildConnectivityGraph 根据网格世界坐标构建邻接表
//
// 对每个有序对 (i, j)，i != j，若 distance(i, j) < threshold 则把 j 加入 i 的邻居。
// 复杂度 O(n²)。没有网格时返回空图。
//
// 参数：
//   - em: 实体管理器
//   - meshes: 参与计算的网格实体（按注册顺序）
//   - threshold: 距离阈值
func BuildConnectivityGraph(em *ecs.EntityManager, meshes []ecs.EntityID, threshold float64) ConnectivityGraph {
	graph := make(ConnectivityGraph, len(meshes))

	positions := make([]*components.MeshComponent, len(meshes))
	for i, id := range meshes {
		mesh, ok := ecs.GetComponent[*components.MeshComponent](em, id)
		if !ok {
			continue
		}
		positions[i] = mesh
	}

	for i, a := range meshes {
		if positions[i] == nil {
			continue
		}
		neighbors := make([]ecs.EntityID, 0)
		for j, b := range meshes {
			if i == j || positions[j] == nil {
				continue
			}
			d := positions[i].WorldPosition.Sub(positions[j].WorldPosition).Len()
			if float64(d) < threshold {
				neighbors = append(neighbors, b)
			}
		}
		graph[a] = neighbors
	}

	return graph
}
