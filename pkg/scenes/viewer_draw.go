package scenes

import (
	"fmt"
	"image/color"
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gonewx/lungfx/pkg/config"
	"github.com/gonewx/lungfx/pkg/ecs"
	"github.com/gonewx/lungfx/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	backgroundColor = color.RGBA{R: 240, G: 240, B: 240, A: 255}
	panelColor      = color.RGBA{R: 36, G: 40, B: 48, A: 255}
	edgeColor       = color.RGBA{R: 120, G: 120, B: 140, A: 90}
	progressBack    = color.RGBA{R: 70, G: 70, B: 80, A: 255}
	progressFill    = color.RGBA{R: 90, G: 180, B: 120, A: 255}
)

// BreathAmplitude 呼吸动画的最大缩放幅度
const BreathAmplitude = 0.04

// projectedMesh 一个网格的屏幕投影
type projectedMesh struct {
	id     ecs.EntityID
	x, y   float32
	depth  float32
	radius float32
}

// breathScale 根据呼吸相位计算模型缩放
// 相位 0 为呼气末（最小），0.5 为吸气末（最大），两段都做正弦缓入缓出
func breathScale(phase float64) float32 {
	phase -= math.Floor(phase)
	inhale := 1 - math.Abs(2*phase-1)
	return float32(utils.Lerp(1-BreathAmplitude, 1+BreathAmplitude, utils.EaseInOutSine(inhale)))
}

// projectMeshes 投影所有网格并按深度从远到近排序
func (v *ViewerScene) projectMeshes() []projectedMesh {
	scale := float32(1)
	if v.scene.Mixer != nil {
		scale = breathScale(v.scene.Mixer.Phase())
	}
	mvp := v.camera.ViewProjection().Mul4(mgl32.Scale3D(scale, scale, scale))

	out := make([]projectedMesh, 0, v.scene.MeshCount())
	for _, id := range v.scene.Meshes() {
		mesh := v.scene.Mesh(id)
		x, y, depth, ok := v.camera.Project(mvp, mesh.WorldPosition)
		if !ok {
			continue
		}
		r := float32(config.MeshBaseRadius) / depth
		if r < config.MeshMinRadius {
			r = config.MeshMinRadius
		}
		out = append(out, projectedMesh{id: id, x: x, y: y, depth: depth, radius: r})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].depth > out[j].depth })
	return out
}

func (v *ViewerScene) drawViewport(screen *ebiten.Image) {
	vector.DrawFilledRect(screen, 0, 0, config.ViewportWidth, config.ViewportHeight, backgroundColor, false)

	projected := v.projectMeshes()

	if v.showGraph {
		pos := make(map[ecs.EntityID]projectedMesh, len(projected))
		for _, p := range projected {
			pos[p.id] = p
		}
		for _, p := range projected {
			for _, nb := range v.scene.Graph.Neighbors(p.id) {
				// 有向边成对出现，只画一次
				if nb < p.id {
					continue
				}
				q, ok := pos[nb]
				if !ok {
					continue
				}
				vector.StrokeLine(screen, p.x, p.y, q.x, q.y, 1, edgeColor, true)
			}
		}
	}

	for _, p := range projected {
		c := v.scene.Mesh(p.id).CurrentColor.ToRGBA()
		vector.DrawFilledCircle(screen, p.x, p.y, p.radius, c, true)
	}

	if v.loading {
		ebitenutil.DebugPrintAt(screen, "Loading model...", 12, 12)
	}
}

func (v *ViewerScene) drawPanel(screen *ebiten.Image) {
	vector.DrawFilledRect(screen, config.ViewportWidth, 0,
		config.WindowWidth-config.ViewportWidth, config.ViewportHeight, panelColor, false)

	lines := []string{"Drugs (1-0):"}
	for i, key := range v.table.Order {
		marker := "  "
		if i == v.drugIndex {
			marker = "> "
		}
		lines = append(lines, fmt.Sprintf("%s%d %s", marker, (i+1)%10, v.table.Drugs[key].Name))
	}
	lines = append(lines, "")

	if drug := v.currentDrug(); drug != nil {
		dosage := v.currentDosage()
		lines = append(lines,
			drug.Name,
			"Type: "+drug.Type,
			"Dosage: "+drug.DosageLabel(dosage)+fmt.Sprintf(" (%s)", config.BandForDosage(dosage)),
			"Lung: "+drug.LungEffect,
			"Breathing: "+drug.BreathingEffect,
			"Overdose: "+drug.Overdose,
			"",
		)
	}

	stats := v.scene.Stats()
	lines = append(lines,
		fmt.Sprintf("Phase: %s", v.scheduler.Phase()),
		fmt.Sprintf("Spread: %s  Revert: %s", v.scheduler.Spread().State(), v.scheduler.Revert().State()),
		fmt.Sprintf("Infected: %d/%d", stats.Infected, stats.Total),
		fmt.Sprintf("Reverted: %d/%d", stats.RevertComplete, stats.Total),
		fmt.Sprintf("Breathing: %.2fx", v.scene.TimeScale()),
		fmt.Sprintf("Edges: %d", v.scene.Graph.EdgeCount()),
		"",
		"Up/Down dosage  Space replay",
		"R reset  G graph  A rotate",
	)
	if v.status != "" {
		lines = append(lines, "", v.status)
	}

	for i, line := range lines {
		ebitenutil.DebugPrintAt(screen, line, config.PanelX, config.PanelPadding+i*config.PanelLineHeight)
	}
}

func (v *ViewerScene) drawProgress(screen *ebiten.Image) {
	x, y, w, h := config.ProgressBarRect()
	vector.DrawFilledRect(screen, 0, config.ViewportHeight,
		config.WindowWidth, config.ProgressAreaHeight, panelColor, false)
	vector.DrawFilledRect(screen, x, y, w, h, progressBack, false)

	p := v.Progress()
	if p > 0 {
		vector.DrawFilledRect(screen, x, y, w*float32(p), h, progressFill, false)
		remaining := v.effectTotal - v.effectElapsed
		if remaining < 0 {
			remaining = 0
		}
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%.1fs", remaining), int(x+w)-40, int(y)-18)
	}
}
