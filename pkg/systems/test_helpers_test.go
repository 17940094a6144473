package systems

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gonewx/lungfx/pkg/assets"
	"github.com/gonewx/lungfx/pkg/config"
	"github.com/gonewx/lungfx/pkg/game"
	"github.com/gonewx/lungfx/pkg/types"
	"github.com/gonewx/lungfx/pkg/utils"
)

// fixedRand 总是返回同一个值的随机源
//
// 取 0.5 时：种子数 2，抖动为 0，感染概率判定总是通过，
// 注册时每个网格的延迟为 2.0、速度系数为 0.75。
type fixedRand struct {
	v float64
}

func (r fixedRand) Float64() float64 { return r.v }

func (r fixedRand) Intn(n int) int {
	i := int(r.v * float64(n))
	if i >= n {
		i = n - 1
	}
	return i
}

var (
	testOriginal = types.NewRGB(0.9, 0.6, 0.6)
	testRed      = types.NewRGB(1, 0, 0)
	testBlue     = types.NewRGB(0, 0, 1)
)

// newLineScene 沿 X 轴等距排列 n 个网格，并附带呼吸动画播放器
func newLineScene(t *testing.T, rng utils.RandSource, n int, spacing float32) *game.SceneContext {
	t.Helper()
	sc := game.NewSceneContext(rng, game.DefaultConnectivityThreshold)
	sc.Mixer = game.NewAnimationMixer(0)

	meshes := make([]assets.MeshData, n)
	for i := range meshes {
		c := testOriginal
		meshes[i] = assets.MeshData{
			ID:            string(rune('a' + i)),
			WorldPosition: mgl32.Vec3{float32(i) * spacing, 0, 0},
			Color:         &c,
		}
	}
	if got := sc.RegisterMeshes(meshes); got != n {
		t.Fatalf("RegisterMeshes = %d, want %d", got, n)
	}
	return sc
}

// runTicks 以固定步长调用 n 次 Update
func runTicks(u interface{ Update(float64) }, n int, dt float64) {
	for i := 0; i < n; i++ {
		u.Update(dt)
	}
}

func countInfected(sc *game.SceneContext) int {
	n := 0
	for _, id := range sc.Meshes() {
		if sc.Transition(id).Infected {
			n++
		}
	}
	return n
}

func redRequest(duration float64) config.EffectRequest {
	return config.EffectRequest{
		DrugKey:        "test-red",
		Dosage:         1.0,
		TargetColors:   []types.RGB{testRed},
		Duration:       duration,
		BreathingSpeed: 1.5,
	}
}
