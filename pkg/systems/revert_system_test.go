package systems

import (
	"math"
	"testing"

	"github.com/gonewx/lungfx/pkg/types"
)

func TestRevertRefusedWhileSpreading(t *testing.T) {
	sc := newLineScene(t, fixedRand{0.5}, 5, 0.5)
	spread := NewSpreadSystem(sc)
	revert := NewRevertSystem(sc, spread)

	spread.Start([]types.RGB{testRed}, 8)
	runTicks(spread, 5, 0.1)

	if revert.Start(5) {
		t.Fatal("Revert must be refused while spread is propagating")
	}
	if revert.State() != RevertIdle {
		t.Errorf("state = %v, want Idle", revert.State())
	}
	for _, id := range sc.Meshes() {
		tc := sc.Transition(id)
		if tc.RevertActive || tc.RevertDelay != 0 || tc.RevertSpeed != 0 {
			t.Errorf("refused revert changed mesh state: %+v", tc)
		}
	}
}

func TestRevertStartInitializesMeshes(t *testing.T) {
	sc := newLineScene(t, fixedRand{0.5}, 5, 0.5)
	revert := NewRevertSystem(sc, NewSpreadSystem(sc))

	for _, id := range sc.Meshes() {
		sc.Mesh(id).CurrentColor = testRed
	}
	if !revert.Start(5) {
		t.Fatal("Revert should start when spread is idle")
	}

	// fixedRand 0.5 选中下标 2、3、1 立即开始
	ids := sc.Meshes()
	immediate := map[int]bool{1: true, 2: true, 3: true}
	for i, id := range ids {
		tc := sc.Transition(id)
		if tc.RevertStartColor != testRed || tc.RevertEndColor != testOriginal {
			t.Errorf("mesh %d: start/end colors not set", i)
		}
		if tc.RevertSpeed != tc.TransitionSpeed {
			t.Errorf("mesh %d: RevertSpeed = %v, want %v", i, tc.RevertSpeed, tc.TransitionSpeed)
		}
		if immediate[i] {
			if !tc.RevertActive || tc.RevertDelay != 0 {
				t.Errorf("mesh %d should start immediately", i)
			}
		} else if tc.RevertActive || tc.RevertDelay != tc.RevertDelayJitter {
			t.Errorf("mesh %d: delay = %v, want jitter %v", i, tc.RevertDelay, tc.RevertDelayJitter)
		}
	}
}

func TestRevertImmediateStartersCapped(t *testing.T) {
	sc := newLineScene(t, fixedRand{0.5}, 2, 0.5)
	revert := NewRevertSystem(sc, NewSpreadSystem(sc))
	revert.Start(5)

	for _, id := range sc.Meshes() {
		if !sc.Transition(id).RevertActive {
			t.Error("with fewer than 3 meshes all should start immediately")
		}
	}
}

func TestRevertAcceleratesNeighbors(t *testing.T) {
	sc := newLineScene(t, fixedRand{0.5}, 5, 0.5)
	revert := NewRevertSystem(sc, NewSpreadSystem(sc))
	revert.Start(5)

	revert.Update(0.1)

	// mesh 0 与 mesh 4 是立即启动网格的邻居：min(2.0-0.1, 0.2+0.5*0.5)
	ids := sc.Meshes()
	for _, i := range []int{0, 4} {
		if d := sc.Transition(ids[i]).RevertDelay; math.Abs(d-0.45) > 1e-9 {
			t.Errorf("mesh %d delay = %v, want 0.45", i, d)
		}
	}

	// 邻居仍需等待自己的延迟耗尽，启动当帧即开始推进
	runTicks(revert, 4, 0.1)
	if sc.Transition(ids[0]).RevertActive {
		t.Fatal("mesh 0 started before its delay expired")
	}
	revert.Update(0.1)
	tc := sc.Transition(ids[0])
	if !tc.RevertActive {
		t.Fatal("mesh 0 should activate once its delay expires")
	}
	if math.Abs(tc.RevertProgress-0.03) > 1e-9 {
		t.Errorf("progress on activation tick = %v, want 0.03", tc.RevertProgress)
	}
}

func TestRevertTimeScaleDecay(t *testing.T) {
	sc := newLineScene(t, fixedRand{0.5}, 3, 0.5)
	revert := NewRevertSystem(sc, NewSpreadSystem(sc))

	sc.SetTimeScale(1.8)
	revert.Start(5)
	revert.Update(0.1)

	if got := sc.TimeScale(); math.Abs(got-1.76) > 1e-9 {
		t.Errorf("TimeScale = %v, want 1.76", got)
	}

	// 距离 1.0 小于 0.01 时直接对齐
	sc.SetTimeScale(1.005)
	revert.Update(0.1)
	if sc.TimeScale() != 1.0 {
		t.Errorf("TimeScale = %v, want snap to 1.0", sc.TimeScale())
	}

	// 减速方向同样收敛
	sc.SetTimeScale(0.5)
	revert.Update(0.1)
	if got := sc.TimeScale(); math.Abs(got-0.525) > 1e-9 {
		t.Errorf("TimeScale = %v, want 0.525", got)
	}
}

func TestRevertCompletionRestoresExactly(t *testing.T) {
	sc := newLineScene(t, fixedRand{0.5}, 5, 0.5)
	revert := NewRevertSystem(sc, NewSpreadSystem(sc))

	for _, id := range sc.Meshes() {
		sc.Mesh(id).CurrentColor = testBlue
	}
	sc.SetTimeScale(0.4)
	revert.Start(5)

	for i := 0; i < 1000 && revert.IsActive(); i++ {
		revert.Update(0.1)
	}

	if revert.State() != RevertComplete {
		t.Fatalf("state = %v, want Complete", revert.State())
	}
	for _, id := range sc.Meshes() {
		if sc.Mesh(id).CurrentColor != testOriginal {
			t.Errorf("color = %v, want exactly %v", sc.Mesh(id).CurrentColor, testOriginal)
		}
		if sc.Transition(id).RevertActive {
			t.Error("transient revert flags should be cleared")
		}
	}
	if sc.TimeScale() != 1.0 {
		t.Errorf("TimeScale = %v, want 1.0", sc.TimeScale())
	}
}

func TestRevertWaitsForTimeScale(t *testing.T) {
	sc := newLineScene(t, fixedRand{0.5}, 1, 0.5)
	revert := NewRevertSystem(sc, NewSpreadSystem(sc))

	sc.SetTimeScale(2.0)
	revert.Start(0.1)

	// 单个网格一帧完成，但播放速度还远未回到 1.0
	revert.Update(0.1)
	if !sc.Transition(sc.Meshes()[0]).RevertComplete {
		t.Fatal("mesh should complete in one tick")
	}
	if revert.State() != RevertActive {
		t.Errorf("revert should stay active until time scale settles, state %v", revert.State())
	}
}
