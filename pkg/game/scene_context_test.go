package game

import (
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gonewx/lungfx/pkg/assets"
	"github.com/gonewx/lungfx/pkg/types"
)

func TestRegisterMeshesSkipsMissingColor(t *testing.T) {
	sc := NewSceneContext(rand.New(rand.NewSource(1)), 0)

	red := types.NewRGB(1, 0, 0)
	meshes := []assets.MeshData{
		{ID: "a", WorldPosition: mgl32.Vec3{0, 0, 0}, Color: &red},
		{ID: "shell", WorldPosition: mgl32.Vec3{0.2, 0, 0}},
		{ID: "b", WorldPosition: mgl32.Vec3{0.5, 0, 0}, Color: &red},
	}

	if n := sc.RegisterMeshes(meshes); n != 2 {
		t.Fatalf("RegisterMeshes = %d, want 2", n)
	}
	if sc.MeshCount() != 2 {
		t.Errorf("MeshCount = %d, want 2", sc.MeshCount())
	}
	if name := sc.Mesh(sc.Meshes()[1]).Name; name != "b" {
		t.Errorf("Second mesh name = %q, want b", name)
	}
}

func TestRegisterMeshesJitterRanges(t *testing.T) {
	sc := NewSceneContext(rand.New(rand.NewSource(42)), 0)
	sc.RegisterMeshes(lineMeshes(20, 0.3, types.NewRGB(0.9, 0.6, 0.6)))

	for _, id := range sc.Meshes() {
		tc := sc.Transition(id)
		mesh := sc.Mesh(id)
		if tc.OriginalColor != mesh.BaseColor || mesh.CurrentColor != mesh.BaseColor {
			t.Errorf("Original color not captured for mesh %s", mesh.Name)
		}
		if tc.TransitionDelay < 0 || tc.TransitionDelay >= MaxTransitionDelay {
			t.Errorf("TransitionDelay %v out of [0, 4)", tc.TransitionDelay)
		}
		if tc.RevertDelayJitter < 0 || tc.RevertDelayJitter >= MaxTransitionDelay {
			t.Errorf("RevertDelayJitter %v out of [0, 4)", tc.RevertDelayJitter)
		}
		if tc.TransitionSpeed < 0.6 || tc.TransitionSpeed >= 0.9 {
			t.Errorf("TransitionSpeed %v out of [0.6, 0.9)", tc.TransitionSpeed)
		}
		if tc.Infected || tc.RevertActive {
			t.Error("Freshly registered mesh should have no active transition")
		}
	}
}

func TestRegisterMeshesRebuildsState(t *testing.T) {
	sc := NewSceneContext(rand.New(rand.NewSource(3)), 0)
	sc.RegisterMeshes(lineMeshes(5, 0.5, types.NewRGB(1, 1, 1)))
	first := append([]uint64(nil), idsAsUint(sc)...)

	// 修改颜色后重新注册：旧实体被销毁，原始颜色重新捕获
	sc.Mesh(sc.Meshes()[0]).CurrentColor = types.NewRGB(0, 0, 0)
	sc.RegisterMeshes(lineMeshes(3, 0.5, types.NewRGB(0.5, 0.5, 0.5)))

	if sc.MeshCount() != 3 {
		t.Fatalf("MeshCount after reload = %d, want 3", sc.MeshCount())
	}
	if sc.EntityManager.EntityCount() != 3 {
		t.Errorf("Old mesh entities should be destroyed, have %d entities", sc.EntityManager.EntityCount())
	}
	for _, old := range first {
		for _, id := range idsAsUint(sc) {
			if old == id {
				t.Errorf("Entity %d reused after reload", id)
			}
		}
	}
	for _, id := range sc.Meshes() {
		if sc.Transition(id).OriginalColor != types.NewRGB(0.5, 0.5, 0.5) {
			t.Error("Original color should come from new model")
		}
	}
	if len(sc.Graph) != 3 {
		t.Errorf("Graph should be rebuilt for 3 meshes, has %d", len(sc.Graph))
	}
}

func TestRestoreOriginalColors(t *testing.T) {
	sc := NewSceneContext(constRand{0.5}, 0)
	sc.RegisterMeshes(lineMeshes(3, 0.5, types.NewRGB(0.8, 0.5, 0.5)))

	for _, id := range sc.Meshes() {
		sc.Mesh(id).CurrentColor = types.NewRGB(0, 0, 1)
		tc := sc.Transition(id)
		tc.Infected = true
		tc.InfectionProgress = 0.4
		tc.RevertActive = true
		tc.RevertDelay = 1.2
	}

	sc.RestoreOriginalColors()

	for _, id := range sc.Meshes() {
		if sc.Mesh(id).CurrentColor != types.NewRGB(0.8, 0.5, 0.5) {
			t.Errorf("Color not restored: %v", sc.Mesh(id).CurrentColor)
		}
		tc := sc.Transition(id)
		if tc.Infected || tc.InfectionProgress != 0 || tc.RevertActive || tc.RevertDelay != 0 {
			t.Errorf("Transient state not cleared: %+v", tc)
		}
	}
}

func TestResetTransientStateKeepsColors(t *testing.T) {
	sc := NewSceneContext(constRand{0.5}, 0)
	sc.RegisterMeshes(lineMeshes(2, 0.5, types.NewRGB(1, 1, 1)))

	id := sc.Meshes()[0]
	sc.Mesh(id).CurrentColor = types.NewRGB(1, 0, 0)
	sc.Transition(id).Infected = true

	sc.ResetTransientState()

	if sc.Mesh(id).CurrentColor != types.NewRGB(1, 0, 0) {
		t.Error("ResetTransientState must not touch colors")
	}
	if sc.Transition(id).Infected {
		t.Error("Infected flag should be cleared")
	}
}

func TestStatsAndTimeScale(t *testing.T) {
	sc := NewSceneContext(constRand{0.5}, 0)
	sc.RegisterMeshes(lineMeshes(4, 0.5, types.NewRGB(1, 1, 1)))

	ids := sc.Meshes()
	sc.Transition(ids[0]).Infected = true
	sc.Transition(ids[0]).InfectionComplete = true
	sc.Transition(ids[1]).Infected = true
	sc.Transition(ids[2]).RevertComplete = true

	stats := sc.Stats()
	if stats.Total != 4 || stats.Infected != 2 || stats.InfectionComplete != 1 || stats.RevertComplete != 1 {
		t.Errorf("Unexpected stats: %+v", stats)
	}

	// 没有播放器时速度恒为 1.0
	sc.SetTimeScale(1.8)
	if sc.TimeScale() != 1.0 {
		t.Errorf("TimeScale without mixer = %v, want 1.0", sc.TimeScale())
	}

	sc.Mixer = NewAnimationMixer(0)
	sc.SetTimeScale(1.8)
	if sc.TimeScale() != 1.8 {
		t.Errorf("TimeScale = %v, want 1.8", sc.TimeScale())
	}
}

func TestNewSceneContextNilRandPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("NewSceneContext(nil) should panic")
		}
	}()
	NewSceneContext(nil, 1.0)
}

func idsAsUint(sc *SceneContext) []uint64 {
	out := make([]uint64, 0, sc.MeshCount())
	for _, id := range sc.Meshes() {
		out = append(out, uint64(id))
	}
	return out
}
