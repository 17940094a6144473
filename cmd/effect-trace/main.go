// effect-trace 离屏运行药物效果，输出覆盖率和呼吸速度曲线
//
// 用法：
//
//	go run ./cmd/effect-trace -drug albuterol -dosage 1.5 -seed 42
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/gonewx/lungfx/pkg/assets"
	"github.com/gonewx/lungfx/pkg/config"
	"github.com/guptarohit/asciigraph"
)

var (
	drug    = flag.String("drug", "albuterol", "药物")
	dosage  = flag.Float64("dosage", 1.0, "剂量值")
	seed    = flag.Int64("seed", 42, "随机种子，0 表示使用配置文件中的设置")
	seconds = flag.Float64("seconds", 30, "模拟时长（秒）")
	dt      = flag.Float64("dt", 1.0/60.0, "每帧时间步长（秒）")
	model   = flag.String("model", "", "模型来源，为空时使用配置文件中的设置")
	dataDir = flag.String("data", "data", "数据目录（drug_effects.yaml, simulation.yaml）")
	width   = flag.Int("width", 70, "曲线宽度")
	verbose = flag.Bool("verbose", false, "显示详细调试信息")
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(16)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	boxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 2)
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
)

func main() {
	flag.Parse()
	if !*verbose {
		log.SetOutput(io.Discard)
	}

	table, err := config.LoadDrugTable(filepath.Join(*dataDir, "drug_effects.yaml"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		os.Exit(1)
	}
	sim, err := config.LoadSimulationConfig(filepath.Join(*dataDir, "simulation.yaml"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		os.Exit(1)
	}

	// 数据目录中的模型路径相对于工作目录解析
	loader := assets.NewLoader(nil)
	result, err := runTrace(table, sim, loader, traceOptions{
		Drug:    *drug,
		Dosage:  *dosage,
		Seed:    *seed,
		Seconds: *seconds,
		DT:      *dt,
		Model:   *model,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(renderSummary(table, result))
	fmt.Println(graphStyle.Render(asciigraph.PlotMany(
		[][]float64{result.Coverage, result.Reverted},
		asciigraph.Height(10),
		asciigraph.Width(*width),
		asciigraph.Precision(2),
		asciigraph.SeriesColors(asciigraph.Red, asciigraph.Green),
		asciigraph.Caption("coverage (red) / reverted (green)"),
	)))
	fmt.Println(graphStyle.Render(asciigraph.Plot(
		result.Speed,
		asciigraph.Height(6),
		asciigraph.Width(*width),
		asciigraph.Precision(2),
		asciigraph.Caption("breathing time scale"),
	)))
}

func renderSummary(table *config.DrugTable, r *traceResult) string {
	name := *drug
	if d, ok := table.Drugs[*drug]; ok {
		name = fmt.Sprintf("%s, %s", d.Name, d.DosageLabel(*dosage))
	}

	row := func(label, value string) string {
		return lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(label), valueStyle.Render(value))
	}
	at := func(t float64) string {
		if t < 0 {
			return "not reached"
		}
		return fmt.Sprintf("%.2fs", t)
	}

	rows := []string{
		headerStyle.Render(name),
		row("Meshes", fmt.Sprintf("%d (%d edges)", r.Meshes, r.Edges)),
		row("Band", string(config.BandForDosage(*dosage))),
		row("Total", fmt.Sprintf("%dms", r.TotalMs)),
		row("Peak coverage", fmt.Sprintf("%.0f%%", r.PeakCoverage*100)),
		row("Spread done", at(r.SpreadDoneAt)),
		row("Effect done", at(r.EffectDoneAt)),
		row("Final speed", fmt.Sprintf("%.2fx", r.FinalTimeScale)),
	}
	return boxStyle.Render(strings.Join(rows, "\n"))
}
