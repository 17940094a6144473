package game

import (
	"log"

	"github.com/gonewx/lungfx/pkg/assets"
	"github.com/gonewx/lungfx/pkg/components"
	"github.com/gonewx/lungfx/pkg/ecs"
	"github.com/gonewx/lungfx/pkg/utils"
)

// 网格注册时的随机抖动范围
const (
	// MaxTransitionDelay 过渡延迟抖动上限（秒），范围 [0, 4)
	MaxTransitionDelay = 4.0
	// MinTransitionSpeed 速度系数下限
	MinTransitionSpeed = 0.6
	// TransitionSpeedSpan 速度系数范围宽度，范围 [0.6, 0.9)
	TransitionSpeedSpan = 0.3
)

// SceneContext 引擎运行所需的场景状态
//
// 持有网格实体、邻接图、呼吸动画播放器和随机源。
// 所有系统通过同一个 SceneContext 协作，不使用包级全局变量。
// 只能在渲染循环所在的 goroutine 中访问。
type SceneContext struct {
	EntityManager *ecs.EntityManager
	Graph         ConnectivityGraph
	// Mixer 呼吸动画播放器，可为 nil（模型没有动画）
	Mixer *AnimationMixer
	Rand  utils.RandSource

	// ConnectivityThreshold 邻接距离阈值
	ConnectivityThreshold float64

	// meshes 已注册的网格实体（注册顺序）
	meshes []ecs.EntityID
}

// TransitionStats 过渡状态统计（用于界面显示和追踪工具）
type TransitionStats struct {
	Total             int
	Infected          int
	InfectionComplete int
	RevertActive      int
	RevertComplete    int
}

// NewSceneContext 创建场景上下文
//
// 参数：
//   - rng: 随机源，不能为 nil
//   - threshold: 邻接距离阈值，<= 0 时使用 DefaultConnectivityThreshold
func NewSceneContext(rng utils.RandSource, threshold float64) *SceneContext {
	if rng == nil {
		panic("game: NewSceneContext requires a random source")
	}
	if threshold <= 0 {
		threshold = DefaultConnectivityThreshold
	}
	return &SceneContext{
		EntityManager:         ecs.NewEntityManager(),
		Graph:                 ConnectivityGraph{},
		Rand:                  rng,
		ConnectivityThreshold: threshold,
	}
}

// RegisterMeshes 注册新加载的模型网格
//
// 之前注册的网格和邻接图会被整体丢弃，不做增量更新。
// 没有材质颜色的网格被跳过。每个网格捕获原始颜色并生成随机的延迟/速度抖动。
//
// 返回：
//   - int: 实际注册的网格数量
func (sc *SceneContext) RegisterMeshes(meshes []assets.MeshData) int {
	for _, id := range sc.meshes {
		sc.EntityManager.DestroyEntity(id)
	}
	sc.EntityManager.RemoveMarkedEntities()
	sc.meshes = make([]ecs.EntityID, 0, len(meshes))

	skipped := 0
	for _, m := range meshes {
		if m.Color == nil {
			skipped++
			continue
		}

		id := sc.EntityManager.CreateEntity()
		ecs.AddComponent(sc.EntityManager, id, &components.MeshComponent{
			Name:          m.ID,
			WorldPosition: m.WorldPosition,
			BaseColor:     *m.Color,
			CurrentColor:  *m.Color,
		})
		ecs.AddComponent(sc.EntityManager, id, &components.TransitionComponent{
			OriginalColor:     *m.Color,
			TransitionDelay:   sc.Rand.Float64() * MaxTransitionDelay,
			TransitionSpeed:   utils.RandomRange(sc.Rand, MinTransitionSpeed, TransitionSpeedSpan),
			RevertDelayJitter: sc.Rand.Float64() * MaxTransitionDelay,
		})
		sc.meshes = append(sc.meshes, id)
	}

	sc.Graph = BuildConnectivityGraph(sc.EntityManager, sc.meshes, sc.ConnectivityThreshold)

	if skipped > 0 {
		log.Printf("[SceneContext] Skipped %d meshes without material color", skipped)
	}
	log.Printf("[SceneContext] Registered %d meshes, %d directed edges", len(sc.meshes), sc.Graph.EdgeCount())
	return len(sc.meshes)
}

// Meshes 返回已注册的网格实体（注册顺序，调用方不应修改）
func (sc *SceneContext) Meshes() []ecs.EntityID {
	return sc.meshes
}

// MeshCount 已注册的网格数量
func (sc *SceneContext) MeshCount() int {
	return len(sc.meshes)
}

// Mesh 获取网格组件，不存在时返回 nil
func (sc *SceneContext) Mesh(id ecs.EntityID) *components.MeshComponent {
	mesh, _ := ecs.GetComponent[*components.MeshComponent](sc.EntityManager, id)
	return mesh
}

// Transition 获取过渡组件，不存在时返回 nil
func (sc *SceneContext) Transition(id ecs.EntityID) *components.TransitionComponent {
	tc, _ := ecs.GetComponent[*components.TransitionComponent](sc.EntityManager, id)
	return tc
}

// ResetTransientState 清除所有网格的感染/恢复标志和进度（保留当前颜色）
func (sc *SceneContext) ResetTransientState() {
	for _, id := range sc.meshes {
		tc := sc.Transition(id)
		if tc == nil {
			continue
		}
		clearTransient(tc)
	}
}

// RestoreOriginalColors 把所有网格颜色精确恢复为原始颜色，并清除过渡状态
func (sc *SceneContext) RestoreOriginalColors() {
	for _, id := range sc.meshes {
		mesh := sc.Mesh(id)
		tc := sc.Transition(id)
		if mesh == nil || tc == nil {
			continue
		}
		mesh.CurrentColor = tc.OriginalColor
		clearTransient(tc)
	}
}

// TimeScale 当前呼吸播放速度，没有播放器时为 1.0
func (sc *SceneContext) TimeScale() float64 {
	if sc.Mixer == nil {
		return 1.0
	}
	return sc.Mixer.TimeScale
}

// SetTimeScale 设置呼吸播放速度（没有播放器时忽略）
func (sc *SceneContext) SetTimeScale(scale float64) {
	if sc.Mixer == nil {
		return
	}
	sc.Mixer.TimeScale = scale
}

// Stats 统计当前过渡状态
func (sc *SceneContext) Stats() TransitionStats {
	stats := TransitionStats{Total: len(sc.meshes)}
	for _, id := range sc.meshes {
		tc := sc.Transition(id)
		if tc == nil {
			continue
		}
		if tc.Infected {
			stats.Infected++
		}
		if tc.InfectionComplete {
			stats.InfectionComplete++
		}
		if tc.RevertActive {
			stats.RevertActive++
		}
		if tc.RevertComplete {
			stats.RevertComplete++
		}
	}
	return stats
}

// clearTransient 清除感染与恢复相关字段（原始颜色和抖动保持不变）
func clearTransient(tc *components.TransitionComponent) {
	tc.Infected = false
	tc.InfectionProgress = 0
	tc.InfectionComplete = false
	tc.TransitionStartColor = tc.OriginalColor
	tc.TransitionEndColor = tc.OriginalColor

	tc.RevertActive = false
	tc.RevertProgress = 0
	tc.RevertComplete = false
	tc.RevertDelay = 0
	tc.RevertSpeed = 0
	tc.RevertStartColor = tc.OriginalColor
	tc.RevertEndColor = tc.OriginalColor
}
