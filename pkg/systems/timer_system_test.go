package systems

import (
	"testing"

	"github.com/gonewx/lungfx/pkg/ecs"
)

func TestTimerFiresAfterDelay(t *testing.T) {
	em := ecs.NewEntityManager()
	system := NewTimerSystem(em)

	fired := 0
	system.Schedule("test", 1.0, func() { fired++ })

	system.Update(0.5)
	if fired != 0 {
		t.Fatal("Timer should not fire before its delay")
	}
	if system.Pending("test") != 1 {
		t.Errorf("Pending = %d, want 1", system.Pending("test"))
	}

	system.Update(0.5)
	if fired != 1 {
		t.Fatalf("Timer should fire exactly once at its delay, fired %d", fired)
	}
	if system.Pending("test") != 0 {
		t.Errorf("Pending after firing = %d, want 0", system.Pending("test"))
	}

	// 一次性计时器不会再次触发
	system.Update(5.0)
	if fired != 1 {
		t.Errorf("One-shot timer fired %d times", fired)
	}
}

func TestTimerCancelIsIdempotent(t *testing.T) {
	em := ecs.NewEntityManager()
	system := NewTimerSystem(em)

	fired := false
	id := system.Schedule("test", 0.5, func() { fired = true })

	system.Cancel(id)
	system.Cancel(id)
	system.Cancel(0)
	system.Update(1.0)
	system.Cancel(id)

	if fired {
		t.Error("Cancelled timer should not fire")
	}
	if em.Exists(id) {
		t.Error("Cancelled timer entity should be removed")
	}
}

func TestTimerCallbackCanScheduleAndCancel(t *testing.T) {
	em := ecs.NewEntityManager()
	system := NewTimerSystem(em)

	var order []string
	var sibling ecs.EntityID
	system.Schedule("first", 0.1, func() {
		order = append(order, "first")
		// 同一帧到期的兄弟计时器被取消后不再执行
		system.Cancel(sibling)
		system.Schedule("chained", 0.5, func() { order = append(order, "chained") })
	})
	sibling = system.Schedule("sibling", 0.1, func() { order = append(order, "sibling") })

	system.Update(0.2)
	if len(order) != 1 || order[0] != "first" {
		t.Fatalf("order after first tick = %v, want [first]", order)
	}

	// 回调中创建的计时器从下一帧开始计时
	if system.Pending("chained") != 1 {
		t.Fatalf("Chained timer should be pending")
	}
	system.Update(0.5)
	if len(order) != 2 || order[1] != "chained" {
		t.Errorf("order = %v, want [first chained]", order)
	}
}
