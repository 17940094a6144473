// Package app 提供查看器应用的核心包装器
//
// 该包把初始化逻辑从 main 包提取出来：加载药物表和模拟参数、
// 创建场景上下文与效果调度器，并把查看器画面交给场景管理器驱动。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/gonewx/lungfx/pkg/assets"
	"github.com/gonewx/lungfx/pkg/config"
	"github.com/gonewx/lungfx/pkg/embedded"
	"github.com/gonewx/lungfx/pkg/game"
	"github.com/gonewx/lungfx/pkg/scenes"
	"github.com/gonewx/lungfx/pkg/systems"
	"github.com/gonewx/lungfx/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// 嵌入数据路径
const (
	DrugTablePath        = "data/drug_effects.yaml"
	SimulationConfigPath = "data/simulation.yaml"
	// SettingsAppName gdata 存储目录名
	SettingsAppName = "lungfx"
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Drug 启动后立即应用的药物（如 "albuterol"），为空则只显示模型
	Drug string
	// Dosage 剂量值，需与药物的某个剂量档位相等
	Dosage float64
	// Model 模型来源，为空时使用模拟参数中的设置
	Model string
	// Seed 随机种子，0 时使用模拟参数中的设置
	Seed int64
	// ConfigPath 模拟参数文件，为空时使用嵌入的 data/simulation.yaml
	ConfigPath string
}

// App 查看器应用，实现 ebiten.Game 接口
type App struct {
	sceneManager             *game.SceneManager
	verbose                  bool
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化查看器应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入数据。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	table, err := loadDrugTable()
	if err != nil {
		return nil, fmt.Errorf("药物表加载失败: %w", err)
	}
	log.Printf("[App] Loaded %d drugs", len(table.Order))

	sim, err := loadSimulationConfig(cfg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("模拟参数加载失败: %w", err)
	}
	if cfg.Model != "" {
		sim.Model = cfg.Model
	}
	if cfg.Seed != 0 {
		sim.Seed = cfg.Seed
	}

	scene := game.NewSceneContext(utils.NewRandSource(sim.Seed), sim.ConnectivityThreshold)
	scheduler := systems.NewEffectScheduler(scene, table, sim.Timing)

	settings, err := game.NewSettingsManager(game.OpenGdataManager(SettingsAppName))
	if err != nil {
		log.Printf("[App] Settings unavailable: %v", err)
		settings = nil
	}

	viewer := scenes.NewViewerScene(scenes.ViewerConfig{
		Scene:         scene,
		Scheduler:     scheduler,
		Table:         table,
		Loader:        assets.NewLoader(embedded.ReadFileOrDisk),
		Settings:      settings,
		ModelSource:   sim.Model,
		InitialDrug:   cfg.Drug,
		InitialDosage: cfg.Dosage,
	})

	sceneManager := game.NewSceneManager()
	sceneManager.SwitchTo(viewer)
	log.Printf("[App] Viewer started with model %s", sim.Model)

	return &App{
		sceneManager: sceneManager,
		verbose:      cfg.Verbose,
	}, nil
}

func loadDrugTable() (*config.DrugTable, error) {
	data, err := embedded.ReadFileOrDisk(DrugTablePath)
	if err != nil {
		return nil, err
	}
	return config.LoadDrugTableData(data)
}

func loadSimulationConfig(path string) (*config.SimulationConfig, error) {
	if path == "" {
		path = SimulationConfigPath
	}
	data, err := embedded.ReadFileOrDisk(path)
	if err != nil {
		return nil, err
	}
	return config.LoadSimulationConfigData(data)
}

// Update 更新模拟
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.WindowWidth, config.WindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
		} else {
			ebiten.SetFullscreen(true)
		}
	}

	a.sceneManager.Update(1.0 / float64(ebiten.TPS()))
	return nil
}

// Draw 绘制画面
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.WindowWidth, config.WindowHeight
}

// GetSceneManager 返回场景管理器
// 用于在窗口关闭时保存设置
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
