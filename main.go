package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/gonewx/lungfx/pkg/app"
	"github.com/gonewx/lungfx/pkg/config"
	"github.com/gonewx/lungfx/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	verbose    = flag.Bool("verbose", false, "显示详细调试信息")
	drug       = flag.String("drug", "", "启动后立即应用的药物（如 albuterol）")
	dosage     = flag.Float64("dosage", 1.0, "剂量值（需与药物的剂量档位一致）")
	model      = flag.String("model", "", "模型来源：YAML 文件路径或 procedural:lung[:seed]")
	seed       = flag.Int64("seed", 0, "随机种子，0 表示使用配置文件中的设置")
	configPath = flag.String("config", "", "模拟参数文件，默认使用内置 data/simulation.yaml")
)

func main() {
	flag.Parse()

	embedded.Init(dataFS)

	gameApp, err := app.NewApp(app.Config{
		Verbose:    *verbose,
		Drug:       *drug,
		Dosage:     *dosage,
		Model:      *model,
		Seed:       *seed,
		ConfigPath: *configPath,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化失败: %v\n", err)
		os.Exit(1)
	}

	ebiten.SetWindowSize(config.WindowWidth, config.WindowHeight)
	ebiten.SetWindowTitle("Lung Drug Effect Viewer")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowClosingHandled(true)

	err = ebiten.RunGame(&closingGame{App: gameApp})
	gameApp.GetSceneManager().SaveCurrent()
	if err != nil && !errors.Is(err, ebiten.Termination) {
		fmt.Fprintf(os.Stderr, "运行错误: %v\n", err)
		os.Exit(1)
	}
}

// closingGame 在窗口关闭请求时结束循环，以便退出前保存设置
type closingGame struct {
	*app.App
}

func (g *closingGame) Update() error {
	if ebiten.IsWindowBeingClosed() {
		return ebiten.Termination
	}
	return g.App.Update()
}
