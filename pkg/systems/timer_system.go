package systems

import (
	"log"

	"github.com/gonewx/lungfx/pkg/components"
	"github.com/gonewx/lungfx/pkg/ecs"
)

// 计时器名称
const (
	TimerEffectApply       = "effect_apply"
	TimerEffectRevert      = "effect_revert"
	TimerBreathingFollowUp = "breathing_followup"
)

// TimerSystem 一次性计时器
//
// 计时器是带 TimerComponent 的实体。到期后回调在本帧所有计时器推进完毕后
// 依次执行，回调中可以安全地创建或取消其他计时器。
type TimerSystem struct {
	entityManager *ecs.EntityManager
}

// NewTimerSystem 创建计时器系统
func NewTimerSystem(em *ecs.EntityManager) *TimerSystem {
	return &TimerSystem{entityManager: em}
}

// Schedule 创建一个 delay 秒后触发的计时器
//
// 返回：
//   - ecs.EntityID: 计时器句柄，用于 Cancel
func (s *TimerSystem) Schedule(name string, delay float64, onFire func()) ecs.EntityID {
	id := s.entityManager.CreateEntity()
	ecs.AddComponent(s.entityManager, id, &components.TimerComponent{
		Name:       name,
		TargetTime: delay,
		OnFire:     onFire,
	})
	return id
}

// Cancel 取消计时器
// 对已触发、已取消或不存在的句柄调用是安全的
func (s *TimerSystem) Cancel(id ecs.EntityID) {
	if id == 0 {
		return
	}
	timer, ok := ecs.GetComponent[*components.TimerComponent](s.entityManager, id)
	if !ok {
		return
	}
	// 已到期但回调尚未执行的计时器也不再触发
	timer.OnFire = nil
	if !timer.IsReady {
		timer.IsReady = true
		s.entityManager.DestroyEntity(id)
	}
}

// Update 推进所有计时器并执行到期回调
func (s *TimerSystem) Update(deltaTime float64) {
	s.entityManager.RemoveMarkedEntities()

	var fired []*components.TimerComponent
	for _, id := range ecs.GetEntitiesWith1[*components.TimerComponent](s.entityManager) {
		timer, ok := ecs.GetComponent[*components.TimerComponent](s.entityManager, id)
		if !ok || timer.IsReady {
			continue
		}

		timer.CurrentTime += deltaTime
		if timer.CurrentTime >= timer.TargetTime {
			timer.IsReady = true
			fired = append(fired, timer)
			s.entityManager.DestroyEntity(id)
		}
	}

	for _, timer := range fired {
		// 同一帧内先执行的回调可能已经取消了它
		if timer.OnFire == nil {
			continue
		}
		fn := timer.OnFire
		timer.OnFire = nil
		log.Printf("[TimerSystem] Timer %q fired after %.2fs", timer.Name, timer.CurrentTime)
		fn()
	}
}

// Pending 返回指定名称的未触发计时器数量
func (s *TimerSystem) Pending(name string) int {
	count := 0
	for _, id := range ecs.GetEntitiesWith1[*components.TimerComponent](s.entityManager) {
		timer, ok := ecs.GetComponent[*components.TimerComponent](s.entityManager, id)
		if ok && !timer.IsReady && timer.Name == name {
			count++
		}
	}
	return count
}
