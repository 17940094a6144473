package systems

import (
	"log"
	"math"

	"github.com/gonewx/lungfx/pkg/ecs"
	"github.com/gonewx/lungfx/pkg/game"
	"github.com/gonewx/lungfx/pkg/utils"
)

// 恢复参数
const (
	// MaxImmediateReverts 恢复开始时立即启动的网格数量上限
	MaxImmediateReverts = 3
	// NeighborDelayMin 邻居加速后的最短剩余延迟
	NeighborDelayMin = 0.2
	// NeighborDelaySpan 邻居加速延迟的随机范围宽度
	NeighborDelaySpan = 0.5

	// BaseTimeScale 呼吸播放速度的恢复目标
	BaseTimeScale = 1.0
	// TimeScaleDecayRate 播放速度每秒向目标靠近的比例
	TimeScaleDecayRate = 0.5
	// TimeScaleSnapEpsilon 播放速度距目标小于该值时直接对齐
	TimeScaleSnapEpsilon = 0.01
)

// RevertState 恢复运行状态
type RevertState int

const (
	RevertIdle RevertState = iota
	RevertActive
	RevertComplete
)

func (s RevertState) String() string {
	switch s {
	case RevertIdle:
		return "Idle"
	case RevertActive:
		return "Active"
	case RevertComplete:
		return "Complete"
	}
	return "Unknown"
}

// RevertSystem 把网格颜色扩散式地恢复为原始颜色
//
// 与扩散不同，每个网格都有自己的启动延迟；网格启动时会缩短邻居的剩余延迟，
// 使恢复沿邻接图传播。同时把呼吸播放速度逐渐拉回 1.0。
type RevertSystem struct {
	scene    *game.SceneContext
	spread   *SpreadSystem
	state    RevertState
	duration float64

	// activated 本帧（或 Start 时）启动的网格，帧末对其邻居做延迟加速
	activated []ecs.EntityID
}

// NewRevertSystem 创建恢复系统
// spread 用于判断扩散优先级，不能为 nil
func NewRevertSystem(scene *game.SceneContext, spread *SpreadSystem) *RevertSystem {
	if scene == nil || spread == nil {
		panic("systems: NewRevertSystem requires a scene and a spread system")
	}
	return &RevertSystem{scene: scene, spread: spread}
}

// State 当前状态
func (s *RevertSystem) State() RevertState {
	return s.state
}

// IsActive 是否正在恢复
func (s *RevertSystem) IsActive() bool {
	return s.state == RevertActive
}

// Start 开始恢复
//
// 扩散仍在进行时拒绝启动，状态不做任何修改。
//
// 返回：
//   - bool: 是否成功启动
func (s *RevertSystem) Start(duration float64) bool {
	if s.spread.IsPropagating() {
		log.Printf("[RevertSystem] Refused: spread still propagating")
		return false
	}
	if duration <= 0 {
		log.Printf("[RevertSystem] Refused: invalid duration %.2f", duration)
		return false
	}

	s.duration = duration
	s.activated = s.activated[:0]

	meshes := s.scene.Meshes()
	for _, id := range meshes {
		tc := s.scene.Transition(id)
		tc.RevertDelay = tc.RevertDelayJitter
		tc.RevertSpeed = tc.TransitionSpeed
		tc.RevertStartColor = s.scene.Mesh(id).CurrentColor
		tc.RevertEndColor = tc.OriginalColor
		tc.RevertProgress = 0
		tc.RevertActive = false
		tc.RevertComplete = false
	}

	for _, idx := range utils.PickDistinct(s.scene.Rand, len(meshes), MaxImmediateReverts) {
		id := meshes[idx]
		tc := s.scene.Transition(id)
		tc.RevertDelay = 0
		tc.RevertActive = true
		s.activated = append(s.activated, id)
	}

	s.state = RevertActive
	log.Printf("[RevertSystem] Started: %d meshes, %d immediate, duration %.1fs",
		len(meshes), len(s.activated), duration)
	return true
}

// Update 推进一帧
func (s *RevertSystem) Update(deltaTime float64) {
	if s.state != RevertActive {
		return
	}

	allComplete := true
	for _, id := range s.scene.Meshes() {
		tc := s.scene.Transition(id)
		if tc.RevertComplete {
			continue
		}

		if !tc.RevertActive {
			tc.RevertDelay -= deltaTime
			if tc.RevertDelay <= 0 {
				tc.RevertActive = true
				s.activated = append(s.activated, id)
			}
		}

		if tc.RevertActive {
			tc.RevertProgress += deltaTime / s.duration * tc.RevertSpeed * 2
			if tc.RevertProgress > 1.0 {
				tc.RevertProgress = 1.0
			}
			s.scene.Mesh(id).CurrentColor = utils.InterpolateColor(tc.RevertStartColor, tc.RevertEndColor, tc.RevertProgress)
			if tc.RevertProgress >= 1.0 {
				tc.RevertComplete = true
			}
		}

		if !tc.RevertComplete {
			allComplete = false
		}
	}

	s.accelerateNeighbors()
	speedSettled := s.decayTimeScale(deltaTime)

	if allComplete && speedSettled {
		s.scene.RestoreOriginalColors()
		s.state = RevertComplete
		log.Printf("[RevertSystem] Complete: original colors restored")
	}
}

// accelerateNeighbors 缩短刚启动网格的邻居的剩余延迟
// 只是加速，邻居仍需等自己的延迟耗尽才会启动
func (s *RevertSystem) accelerateNeighbors() {
	for _, id := range s.activated {
		for _, nb := range s.scene.Graph.Neighbors(id) {
			ntc := s.scene.Transition(nb)
			if ntc.RevertActive || ntc.RevertComplete {
				continue
			}
			ntc.RevertDelay = math.Min(ntc.RevertDelay, utils.RandomRange(s.scene.Rand, NeighborDelayMin, NeighborDelaySpan))
		}
	}
	s.activated = s.activated[:0]
}

// decayTimeScale 让播放速度向 1.0 指数靠近
//
// 返回：
//   - bool: 播放速度是否已回到 1.0
func (s *RevertSystem) decayTimeScale(deltaTime float64) bool {
	current := s.scene.TimeScale()
	if current == BaseTimeScale {
		return true
	}

	current += (BaseTimeScale - current) * deltaTime * TimeScaleDecayRate
	if math.Abs(BaseTimeScale-current) < TimeScaleSnapEpsilon {
		current = BaseTimeScale
	}
	s.scene.SetTimeScale(current)
	return current == BaseTimeScale
}

// Stop 中止恢复，网格颜色保持当前值
func (s *RevertSystem) Stop() {
	if s.state == RevertActive {
		log.Printf("[RevertSystem] Stopped while active")
	}
	s.state = RevertIdle
	s.activated = s.activated[:0]
}
