package main

import (
	"fmt"

	"github.com/gonewx/lungfx/pkg/assets"
	"github.com/gonewx/lungfx/pkg/config"
	"github.com/gonewx/lungfx/pkg/game"
	"github.com/gonewx/lungfx/pkg/systems"
	"github.com/gonewx/lungfx/pkg/utils"
)

// traceOptions 一次追踪的输入
type traceOptions struct {
	Drug    string
	Dosage  float64
	Seed    int64
	Seconds float64
	DT      float64
	Model   string
}

// traceResult 每个采样点的覆盖率和呼吸速度
type traceResult struct {
	Meshes   int
	Edges    int
	Coverage []float64 // 已变色网格占比
	Reverted []float64 // 已恢复网格占比
	Speed    []float64 // 呼吸播放速度

	TotalMs        int64
	SpreadDoneAt   float64 // 扩散完成时间（秒），-1 表示未完成
	EffectDoneAt   float64 // 效果结束时间（秒），-1 表示未结束
	PeakCoverage   float64
	FinalTimeScale float64
}

// runTrace 离屏运行一次药物效果并记录时间序列
func runTrace(table *config.DrugTable, sim *config.SimulationConfig, loader *assets.Loader, opts traceOptions) (*traceResult, error) {
	if opts.DT <= 0 || opts.Seconds <= 0 {
		return nil, fmt.Errorf("invalid time range: seconds=%v dt=%v", opts.Seconds, opts.DT)
	}

	model := opts.Model
	if model == "" {
		model = sim.Model
	}
	meshes, err := loader.Load(model)
	if err != nil {
		return nil, err
	}

	seed := opts.Seed
	if seed == 0 {
		seed = sim.Seed
	}
	scene := game.NewSceneContext(utils.NewRandSource(seed), sim.ConnectivityThreshold)
	scene.RegisterMeshes(meshes)
	scene.Mixer = game.NewAnimationMixer(game.DefaultBreathCycle)

	scheduler := systems.NewEffectScheduler(scene, table, sim.Timing)
	result := &traceResult{
		Meshes:       scene.MeshCount(),
		Edges:        scene.Graph.EdgeCount(),
		SpreadDoneAt: -1,
		EffectDoneAt: -1,
	}
	scheduler.Subscribe(func(e systems.EffectDurationEvent) {
		result.TotalMs = e.TotalMs
	})

	if err := scheduler.QueueDrug(opts.Drug, opts.Dosage); err != nil {
		return nil, err
	}

	steps := int(opts.Seconds/opts.DT + 0.5)
	started := false
	for i := 1; i <= steps; i++ {
		scheduler.Update(opts.DT)
		scene.Mixer.Update(opts.DT)
		now := float64(i) * opts.DT

		stats := scene.Stats()
		coverage, reverted := 0.0, 0.0
		if stats.Total > 0 {
			coverage = float64(stats.InfectionComplete) / float64(stats.Total)
			reverted = float64(stats.RevertComplete) / float64(stats.Total)
		}
		result.Coverage = append(result.Coverage, coverage)
		result.Reverted = append(result.Reverted, reverted)
		result.Speed = append(result.Speed, scene.TimeScale())
		if coverage > result.PeakCoverage {
			result.PeakCoverage = coverage
		}

		if scheduler.Phase() == systems.PhaseActive {
			started = true
		}
		if result.SpreadDoneAt < 0 && scheduler.Spread().State() == systems.SpreadComplete {
			result.SpreadDoneAt = now
		}
		if started && result.EffectDoneAt < 0 && scheduler.Phase() == systems.PhaseIdle {
			result.EffectDoneAt = now
		}
	}

	result.FinalTimeScale = scene.TimeScale()
	return result, nil
}
