package systems

import (
	"log"

	"github.com/gonewx/lungfx/pkg/ecs"
	"github.com/gonewx/lungfx/pkg/game"
	"github.com/gonewx/lungfx/pkg/types"
	"github.com/gonewx/lungfx/pkg/utils"
)

// 扩散参数
const (
	// MaxSeeds 每次扩散的种子数量上限，实际数量在 [1, MaxSeeds] 中均匀选取
	MaxSeeds = 3
	// SeedColorVariance 种子目标颜色的每分量抖动幅度
	SeedColorVariance = 0.04
	// InheritColorVariance 邻居继承颜色的每分量抖动幅度
	InheritColorVariance = 0.05
	// InfectionChance 网格完成后感染每个未感染邻居的概率
	InfectionChance = 0.8
)

// SpreadState 扩散运行状态
type SpreadState int

const (
	SpreadIdle SpreadState = iota
	SpreadSeeding
	SpreadPropagating
	SpreadComplete
)

func (s SpreadState) String() string {
	switch s {
	case SpreadIdle:
		return "Idle"
	case SpreadSeeding:
		return "Seeding"
	case SpreadPropagating:
		return "Propagating"
	case SpreadComplete:
		return "Complete"
	}
	return "Unknown"
}

// SpreadSystem 感染式颜色扩散
//
// 从少量随机种子网格开始，每个网格按 S 形曲线过渡到目标颜色；
// 过渡完成时以一定概率感染邻接图中的未感染邻居。
type SpreadSystem struct {
	scene    *game.SceneContext
	state    SpreadState
	duration float64
	targets  []types.RGB

	// 当前帧开始时正在过渡的网格（复用以减少分配）
	animating []ecs.EntityID
}

// NewSpreadSystem 创建扩散系统
func NewSpreadSystem(scene *game.SceneContext) *SpreadSystem {
	if scene == nil {
		panic("systems: NewSpreadSystem requires a scene")
	}
	return &SpreadSystem{scene: scene}
}

// State 当前状态
func (s *SpreadSystem) State() SpreadState {
	return s.state
}

// IsPropagating 是否正在扩散
func (s *SpreadSystem) IsPropagating() bool {
	return s.state == SpreadPropagating
}

// Start 开始一次扩散
//
// 之前未完成的扩散被直接丢弃。没有注册网格时不做任何事。
//
// 参数：
//   - targets: 目标颜色，多于一个时每个种子随机选取一个（斑块效果）
//   - duration: 过渡基准时长（秒）
func (s *SpreadSystem) Start(targets []types.RGB, duration float64) {
	meshes := s.scene.Meshes()
	if len(meshes) == 0 || len(targets) == 0 || duration <= 0 {
		s.state = SpreadIdle
		return
	}

	s.state = SpreadSeeding
	s.duration = duration
	s.targets = append(s.targets[:0], targets...)

	for _, id := range meshes {
		tc := s.scene.Transition(id)
		mesh := s.scene.Mesh(id)
		tc.Infected = false
		tc.InfectionProgress = 0
		tc.InfectionComplete = false
		tc.TransitionStartColor = mesh.CurrentColor
		tc.TransitionEndColor = mesh.CurrentColor
	}

	rng := s.scene.Rand
	seedCount := 1 + rng.Intn(MaxSeeds)
	for _, idx := range utils.PickDistinct(rng, len(meshes), seedCount) {
		id := meshes[idx]
		tc := s.scene.Transition(id)
		tc.Infected = true
		tc.InfectionProgress = 0
		tc.TransitionStartColor = s.scene.Mesh(id).CurrentColor
		tc.TransitionEndColor = utils.JitterColor(rng, s.pickTarget(), SeedColorVariance)
	}

	s.state = SpreadPropagating
	log.Printf("[SpreadSystem] Started: %d seeds, %d targets, duration %.1fs",
		min(seedCount, len(meshes)), len(s.targets), duration)
}

func (s *SpreadSystem) pickTarget() types.RGB {
	if len(s.targets) == 1 {
		return s.targets[0]
	}
	return s.targets[s.scene.Rand.Intn(len(s.targets))]
}

// Update 推进一帧
func (s *SpreadSystem) Update(deltaTime float64) {
	if s.state != SpreadPropagating {
		return
	}

	// 本帧新感染的网格不在快照中，下一帧才开始过渡
	s.animating = s.animating[:0]
	for _, id := range s.scene.Meshes() {
		tc := s.scene.Transition(id)
		if tc.Infected && !tc.InfectionComplete {
			s.animating = append(s.animating, id)
		}
	}

	newInfections := 0
	for _, id := range s.animating {
		tc := s.scene.Transition(id)
		tc.InfectionProgress += deltaTime / s.duration * tc.TransitionSpeed * 2
		if tc.InfectionProgress > 1.0 {
			tc.InfectionProgress = 1.0
		}
		s.scene.Mesh(id).CurrentColor = utils.InterpolateColor(tc.TransitionStartColor, tc.TransitionEndColor, tc.InfectionProgress)

		if tc.InfectionProgress >= 1.0 {
			tc.InfectionComplete = true
			newInfections += s.infectNeighbors(id)
		}
	}

	if newInfections == 0 && !s.anyMidInfection() {
		s.state = SpreadComplete
		stats := s.scene.Stats()
		log.Printf("[SpreadSystem] Complete: %d/%d meshes infected", stats.Infected, stats.Total)
	}
}

// infectNeighbors 以 InfectionChance 的概率感染 id 的每个未感染邻居
func (s *SpreadSystem) infectNeighbors(id ecs.EntityID) int {
	rng := s.scene.Rand
	infected := 0
	for _, nb := range s.scene.Graph.Neighbors(id) {
		ntc := s.scene.Transition(nb)
		if ntc.Infected {
			continue
		}
		if rng.Float64() >= InfectionChance {
			continue
		}

		source := s.colorSource(nb, id)
		ntc.Infected = true
		ntc.InfectionProgress = 0
		ntc.InfectionComplete = false
		ntc.TransitionStartColor = s.scene.Mesh(nb).CurrentColor
		ntc.TransitionEndColor = utils.JitterColor(rng, s.scene.Transition(source).TransitionEndColor, InheritColorVariance)
		infected++
	}
	return infected
}

// colorSource 从 id 的已感染邻居中均匀随机选一个作为颜色来源
// 没有已感染邻居时（有向图中可能出现）使用 fallback
func (s *SpreadSystem) colorSource(id, fallback ecs.EntityID) ecs.EntityID {
	var candidates []ecs.EntityID
	for _, nb := range s.scene.Graph.Neighbors(id) {
		if s.scene.Transition(nb).Infected {
			candidates = append(candidates, nb)
		}
	}
	switch len(candidates) {
	case 0:
		return fallback
	case 1:
		return candidates[0]
	}
	return candidates[s.scene.Rand.Intn(len(candidates))]
}

func (s *SpreadSystem) anyMidInfection() bool {
	for _, id := range s.scene.Meshes() {
		tc := s.scene.Transition(id)
		if tc.Infected && !tc.InfectionComplete {
			return true
		}
	}
	return false
}

// Stop 放弃当前扩散，网格颜色保持不变
func (s *SpreadSystem) Stop() {
	if s.state == SpreadPropagating {
		log.Printf("[SpreadSystem] Stopped while propagating")
	}
	s.state = SpreadIdle
}
