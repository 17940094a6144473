package scenes

import (
	"fmt"
	"log"

	"github.com/gonewx/lungfx/pkg/assets"
	"github.com/gonewx/lungfx/pkg/config"
	"github.com/gonewx/lungfx/pkg/game"
	"github.com/gonewx/lungfx/pkg/systems"
	"github.com/hajimehoshi/ebiten/v2"
)

// ViewerConfig 查看器依赖
type ViewerConfig struct {
	Scene     *game.SceneContext
	Scheduler *systems.EffectScheduler
	Table     *config.DrugTable
	Loader    *assets.Loader
	// Settings 可为 nil（不保存选择）
	Settings *game.SettingsManager

	ModelSource string

	// InitialDrug 启动后立即应用的药物，为空时不应用
	InitialDrug   string
	InitialDosage float64
}

// ViewerScene 肺部药物效果查看器
//
// 左侧绘制模型网格（按当前颜色着色），右侧显示药物信息，底部显示效果进度。
// 切换药物时重新加载模型，加载完成后经过应用延迟再开始扩散。
type ViewerScene struct {
	scene     *game.SceneContext
	scheduler *systems.EffectScheduler
	table     *config.DrugTable
	loader    *assets.Loader
	settings  *game.SettingsManager
	camera    *Camera
	posts     PostQueue

	modelSource string
	loading     bool
	status      string

	// loadGen 最近一次模型加载的序号，旧加载的回调被丢弃
	loadGen uint64
	// pendingApply 模型加载完成后要执行的操作（排队应用药物），Reset 会清除
	pendingApply func()

	drugIndex   int // -1 表示未选择
	dosageIndex int

	showGraph  bool
	autoRotate bool

	// 效果进度（由时长事件驱动）
	effectElapsed float64
	effectTotal   float64
}

// NewViewerScene 创建查看器并开始加载模型
func NewViewerScene(cfg ViewerConfig) *ViewerScene {
	if cfg.Scene == nil || cfg.Scheduler == nil || cfg.Table == nil || cfg.Loader == nil {
		panic("scenes: NewViewerScene requires scene, scheduler, drug table and loader")
	}

	v := &ViewerScene{
		scene:       cfg.Scene,
		scheduler:   cfg.Scheduler,
		table:       cfg.Table,
		loader:      cfg.Loader,
		settings:    cfg.Settings,
		camera:      NewCamera(config.ViewportWidth, config.ViewportHeight),
		modelSource: cfg.ModelSource,
		drugIndex:   -1,
		autoRotate:  true,
	}

	if v.settings != nil {
		s := v.settings.GetSettings()
		v.showGraph = s.ShowGraph
		v.autoRotate = s.AutoRotate
		v.drugIndex = v.indexOf(s.LastDrug)
		v.dosageIndex = s.LastDosageIndex
	}

	v.scheduler.Subscribe(v.onEffectDuration)

	if cfg.InitialDrug != "" {
		idx := v.indexOf(cfg.InitialDrug)
		if idx < 0 {
			v.loadModel(nil)
			v.status = fmt.Sprintf("unknown drug %q", cfg.InitialDrug)
			return v
		}
		v.drugIndex = idx
		v.dosageIndex = v.dosageIndexFor(idx, cfg.InitialDosage)
		v.applySelection()
		return v
	}

	v.loadModel(nil)
	return v
}

// Post 投递到渲染循环执行的任务（可在任意 goroutine 调用）
func (v *ViewerScene) Post(fn func()) {
	v.posts.Post(fn)
}

// Update 处理输入并推进模拟
func (v *ViewerScene) Update(deltaTime float64) {
	v.handleInput()
	v.step(deltaTime)
}

// step 推进一帧模拟（不读取输入）
func (v *ViewerScene) step(deltaTime float64) {
	v.posts.Drain()

	v.scheduler.Update(deltaTime)
	if v.scene.Mixer != nil {
		v.scene.Mixer.Update(deltaTime)
	}
	if v.autoRotate {
		v.camera.Rotate(deltaTime)
	}

	if v.effectTotal > 0 && v.effectElapsed < v.effectTotal {
		v.effectElapsed += deltaTime
	}
	if v.scheduler.Phase() == systems.PhaseIdle && v.effectElapsed >= v.effectTotal {
		v.effectTotal = 0
		v.effectElapsed = 0
	}
}

// Draw 绘制画面
func (v *ViewerScene) Draw(screen *ebiten.Image) {
	v.drawViewport(screen)
	v.drawPanel(screen)
	v.drawProgress(screen)
}

// SelectDrug 选择药物（按药物表顺序），剂量重置为第一档
func (v *ViewerScene) SelectDrug(index int) {
	if index < 0 || index >= len(v.table.Order) {
		return
	}
	v.drugIndex = index
	v.dosageIndex = 0
	v.applySelection()
}

// ChangeDosage 切换剂量档位并重新应用
func (v *ViewerScene) ChangeDosage(delta int) {
	drug := v.currentDrug()
	if drug == nil {
		return
	}
	next := v.dosageIndex + delta
	if next < 0 || next >= len(drug.DosageLevels) {
		return
	}
	v.dosageIndex = next
	v.applySelection()
}

// Replay 重新应用当前选择
func (v *ViewerScene) Replay() {
	if v.currentDrug() != nil {
		v.applySelection()
	}
}

// Reset 立即恢复原始外观
func (v *ViewerScene) Reset() {
	// 正在加载的模型仍会注册，但不再应用药物
	v.pendingApply = nil
	v.scheduler.ResetToOriginal()
	v.effectElapsed, v.effectTotal = 0, 0
	v.status = "reset"
}

// ToggleGraph 切换邻接边显示
func (v *ViewerScene) ToggleGraph() {
	v.showGraph = !v.showGraph
	if v.settings != nil {
		v.settings.SetShowGraph(v.showGraph)
	}
}

// ToggleAutoRotate 切换自动旋转
func (v *ViewerScene) ToggleAutoRotate() {
	v.autoRotate = !v.autoRotate
	if v.settings != nil {
		v.settings.SetAutoRotate(v.autoRotate)
	}
}

// SaveOnExit 实现 game.Saveable
func (v *ViewerScene) SaveOnExit() bool {
	if v.settings == nil {
		return true
	}
	if err := v.settings.Save(); err != nil {
		log.Printf("[ViewerScene] Failed to save settings: %v", err)
		return false
	}
	return true
}

// applySelection 重新加载模型，完成后排队应用当前药物
func (v *ViewerScene) applySelection() {
	drugKey := v.table.Order[v.drugIndex]
	dosage := v.currentDosage()
	if v.settings != nil {
		v.settings.SetLastSelection(drugKey, v.dosageIndex)
	}

	v.effectElapsed, v.effectTotal = 0, 0
	v.loadModel(func() {
		if err := v.scheduler.QueueDrug(drugKey, dosage); err != nil {
			v.status = err.Error()
			return
		}
		v.status = fmt.Sprintf("%s queued", drugKey)
	})
}

// loadModel 后台加载模型，完成后在渲染循环中注册网格并执行 then
//
// 新的加载会取代之前未完成的加载：只有最近一次加载的结果会被注册，
// then 也只在该次加载完成时执行。
func (v *ViewerScene) loadModel(then func()) {
	v.loadGen++
	gen := v.loadGen
	v.pendingApply = then
	v.loading = true
	v.status = "loading model"

	future := v.loader.LoadAsync(v.modelSource)
	future.Then(func(meshes []assets.MeshData, err error) {
		v.Post(func() {
			v.onModelLoaded(gen, meshes, err)
		})
	})
}

func (v *ViewerScene) onModelLoaded(gen uint64, meshes []assets.MeshData, err error) {
	if gen != v.loadGen {
		log.Printf("[ViewerScene] Discarding stale model load #%d (latest #%d)", gen, v.loadGen)
		return
	}
	v.loading = false
	then := v.pendingApply
	v.pendingApply = nil
	if err != nil {
		v.status = fmt.Sprintf("model error: %v", err)
		return
	}

	v.scheduler.ResetToOriginal()
	v.scene.RegisterMeshes(meshes)
	v.scene.Mixer = game.NewAnimationMixer(game.DefaultBreathCycle)
	v.status = fmt.Sprintf("%d meshes", v.scene.MeshCount())

	if then != nil {
		then()
	}
}

func (v *ViewerScene) onEffectDuration(e systems.EffectDurationEvent) {
	v.effectTotal = float64(e.TotalMs) / 1000
	// 事件在应用延迟结束后发出
	v.effectElapsed = v.scheduler.Timing().ApplyDelay
}

func (v *ViewerScene) indexOf(drugKey string) int {
	for i, key := range v.table.Order {
		if key == drugKey {
			return i
		}
	}
	return -1
}

// dosageIndexFor 返回与 dosage 相等的档位下标，找不到时返回 0
func (v *ViewerScene) dosageIndexFor(drugIndex int, dosage float64) int {
	drug := v.table.Drugs[v.table.Order[drugIndex]]
	for i, level := range drug.DosageLevels {
		if level.Value == dosage {
			return i
		}
	}
	return 0
}

func (v *ViewerScene) currentDrug() *config.DrugEffectConfig {
	if v.drugIndex < 0 || v.drugIndex >= len(v.table.Order) {
		return nil
	}
	return v.table.Drugs[v.table.Order[v.drugIndex]]
}

func (v *ViewerScene) currentDosage() float64 {
	drug := v.currentDrug()
	if drug == nil || len(drug.DosageLevels) == 0 {
		return 1.0
	}
	if v.dosageIndex < 0 || v.dosageIndex >= len(drug.DosageLevels) {
		v.dosageIndex = 0
	}
	return drug.DosageLevels[v.dosageIndex].Value
}

// Progress 效果进度 [0, 1]，没有效果时为 0
func (v *ViewerScene) Progress() float64 {
	if v.effectTotal <= 0 {
		return 0
	}
	p := v.effectElapsed / v.effectTotal
	if p > 1 {
		p = 1
	}
	return p
}
