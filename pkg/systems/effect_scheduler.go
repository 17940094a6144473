package systems

import (
	"fmt"
	"log"

	"github.com/gonewx/lungfx/pkg/config"
	"github.com/gonewx/lungfx/pkg/ecs"
	"github.com/gonewx/lungfx/pkg/game"
	"github.com/gonewx/lungfx/pkg/utils"
)

// 呼吸播放速度范围
const (
	MinTimeScale = 0.2
	MaxTimeScale = 2.0
)

// EffectPhase 效果调度阶段
type EffectPhase int

const (
	// PhaseIdle 没有效果
	PhaseIdle EffectPhase = iota
	// PhasePending 等待应用延迟
	PhasePending
	// PhaseActive 效果已应用，等待恢复计时器
	PhaseActive
	// PhaseReverting 正在恢复
	PhaseReverting
)

func (p EffectPhase) String() string {
	switch p {
	case PhaseIdle:
		return "Idle"
	case PhasePending:
		return "Pending"
	case PhaseActive:
		return "Active"
	case PhaseReverting:
		return "Reverting"
	}
	return "Unknown"
}

// EffectDurationEvent 效果总时长（用于进度条）
type EffectDurationEvent struct {
	DrugKey string
	TotalMs int64
}

// EffectScheduler 药物效果的时间编排
//
// 渲染循环每帧调用一次 Update，由它推进计时器并分派给扩散或恢复系统。
// 新的请求总是先取消所有未触发的计时器并停止恢复，保证同一时间只有一个恢复在运行。
type EffectScheduler struct {
	scene  *game.SceneContext
	table  *config.DrugTable
	timing config.EffectTimingConfig

	timers *TimerSystem
	spread *SpreadSystem
	revert *RevertSystem

	phase       EffectPhase
	currentDrug string

	applyTimer    ecs.EntityID
	revertTimer   ecs.EntityID
	followUpTimer ecs.EntityID

	// revertPending 恢复计时器到期时扩散尚未结束，等扩散完成后再开始恢复
	revertPending bool

	listeners []func(EffectDurationEvent)
}

// NewEffectScheduler 创建调度器
//
// 参数：
//   - scene: 场景上下文，不能为 nil
//   - table: 药物表，只有 ApplyDrug/QueueDrug 需要，可为 nil
//   - timing: 阶段时间
func NewEffectScheduler(scene *game.SceneContext, table *config.DrugTable, timing config.EffectTimingConfig) *EffectScheduler {
	if scene == nil {
		panic("systems: NewEffectScheduler requires a scene")
	}
	spread := NewSpreadSystem(scene)
	return &EffectScheduler{
		scene:  scene,
		table:  table,
		timing: timing,
		timers: NewTimerSystem(scene.EntityManager),
		spread: spread,
		revert: NewRevertSystem(scene, spread),
	}
}

// Subscribe 注册效果时长事件监听
func (s *EffectScheduler) Subscribe(fn func(EffectDurationEvent)) {
	s.listeners = append(s.listeners, fn)
}

// Phase 当前阶段
func (s *EffectScheduler) Phase() EffectPhase {
	return s.phase
}

// CurrentDrug 最近一次应用的药物
func (s *EffectScheduler) CurrentDrug() string {
	return s.currentDrug
}

// RevertPending 恢复是否在等待扩散结束
func (s *EffectScheduler) RevertPending() bool {
	return s.revertPending
}

// Timing 阶段时间配置
func (s *EffectScheduler) Timing() config.EffectTimingConfig {
	return s.timing
}

// Spread 扩散系统
func (s *EffectScheduler) Spread() *SpreadSystem {
	return s.spread
}

// Revert 恢复系统
func (s *EffectScheduler) Revert() *RevertSystem {
	return s.revert
}

// Timers 计时器系统
func (s *EffectScheduler) Timers() *TimerSystem {
	return s.timers
}

// RequestEffect 立即应用一个效果
//
// 取消所有未触发的计时器、停止正在进行的恢复、清除过渡标志（颜色保留），
// 设置呼吸速度并开始扩散，然后为恢复设置计时器。
func (s *EffectScheduler) RequestEffect(req config.EffectRequest) error {
	if err := req.Validate(); err != nil {
		return fmt.Errorf("request effect: %w", err)
	}

	s.cancelTimers()
	s.revert.Stop()
	s.revertPending = false
	s.scene.ResetTransientState()

	s.scene.SetTimeScale(utils.Clamp(req.BreathingSpeed, MinTimeScale, MaxTimeScale))
	s.spread.Start(req.TargetColors, req.Duration)

	s.revertTimer = s.timers.Schedule(TimerEffectRevert, s.timing.ActiveDuration, s.onRevertTimer)
	if req.FollowUp != nil {
		speed := utils.Clamp(req.FollowUp.Speed, MinTimeScale, MaxTimeScale)
		s.followUpTimer = s.timers.Schedule(TimerBreathingFollowUp, req.FollowUp.Delay, func() {
			s.followUpTimer = 0
			s.scene.SetTimeScale(speed)
			log.Printf("[EffectScheduler] Breathing speed follow-up: %.2f", speed)
		})
	}

	s.phase = PhaseActive
	s.currentDrug = req.DrugKey
	log.Printf("[EffectScheduler] Effect %q applied: dosage %.2f, %d colors, duration %.1fs, speed %.2f",
		req.DrugKey, req.Dosage, len(req.TargetColors), req.Duration, s.scene.TimeScale())

	s.emit(EffectDurationEvent{DrugKey: req.DrugKey, TotalMs: s.timing.TotalMs()})
	return nil
}

// ApplyDrug 查表并立即应用药物效果
//
// 药物不存在时恢复原始外观并返回包装了 config.ErrUnknownDrug 的错误。
func (s *EffectScheduler) ApplyDrug(drugKey string, dosage float64) error {
	req, err := s.lookup(drugKey, dosage)
	if err != nil {
		return err
	}
	return s.RequestEffect(req)
}

// QueueDrug 恢复原始外观，ApplyDelay 秒后再应用药物效果
// 与重新加载模型配合使用
func (s *EffectScheduler) QueueDrug(drugKey string, dosage float64) error {
	if _, err := s.lookup(drugKey, dosage); err != nil {
		return err
	}

	s.ResetToOriginal()
	s.phase = PhasePending
	s.applyTimer = s.timers.Schedule(TimerEffectApply, s.timing.ApplyDelay, func() {
		s.applyTimer = 0
		if err := s.ApplyDrug(drugKey, dosage); err != nil {
			log.Printf("[EffectScheduler] Queued effect %q failed: %v", drugKey, err)
		}
	})
	log.Printf("[EffectScheduler] Effect %q queued, applying in %.2fs", drugKey, s.timing.ApplyDelay)
	return nil
}

func (s *EffectScheduler) lookup(drugKey string, dosage float64) (config.EffectRequest, error) {
	if s.table == nil {
		s.ResetToOriginal()
		return config.EffectRequest{}, fmt.Errorf("%w: %q (no drug table loaded)", config.ErrUnknownDrug, drugKey)
	}
	req, err := s.table.Lookup(drugKey, dosage)
	if err != nil {
		log.Printf("[EffectScheduler] %v, resetting to original", err)
		s.ResetToOriginal()
		return config.EffectRequest{}, err
	}
	return req, nil
}

// ResetToOriginal 取消所有效果并立即恢复原始颜色和呼吸速度
// 可以重复调用
func (s *EffectScheduler) ResetToOriginal() {
	s.cancelTimers()
	s.revert.Stop()
	s.spread.Stop()
	s.revertPending = false
	s.scene.RestoreOriginalColors()
	s.scene.SetTimeScale(BaseTimeScale)
	s.phase = PhaseIdle
}

// Update 每帧调用一次
func (s *EffectScheduler) Update(deltaTime float64) {
	s.timers.Update(deltaTime)

	s.spread.Update(deltaTime)

	if s.revertPending && !s.spread.IsPropagating() {
		s.revertPending = false
		s.startRevert()
	}

	if s.revert.IsActive() {
		s.revert.Update(deltaTime)
		if s.revert.State() == RevertComplete {
			s.phase = PhaseIdle
			log.Printf("[EffectScheduler] Effect %q finished", s.currentDrug)
		}
	}
}

func (s *EffectScheduler) onRevertTimer() {
	s.revertTimer = 0
	// 二次速度变化晚于恢复时不再生效
	s.timers.Cancel(s.followUpTimer)
	s.followUpTimer = 0
	s.startRevert()
}

func (s *EffectScheduler) startRevert() {
	if s.revert.Start(s.timing.RevertDuration) {
		s.phase = PhaseReverting
		return
	}
	if s.spread.IsPropagating() {
		s.revertPending = true
		log.Printf("[EffectScheduler] Revert deferred until spread completes")
	}
}

func (s *EffectScheduler) cancelTimers() {
	s.timers.Cancel(s.applyTimer)
	s.timers.Cancel(s.revertTimer)
	s.timers.Cancel(s.followUpTimer)
	s.applyTimer, s.revertTimer, s.followUpTimer = 0, 0, 0
}

func (s *EffectScheduler) emit(event EffectDurationEvent) {
	for _, fn := range s.listeners {
		fn(event)
	}
}
