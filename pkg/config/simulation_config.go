package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// 效果时间默认值（秒）
const (
	DefaultApplyDelay     = 0.5
	DefaultActiveDuration = 15.0
	DefaultRevertDuration = 5.0

	// DefaultModelSource 未指定模型时使用的程序化肺部模型
	DefaultModelSource = "procedural:lung"
)

// EffectTimingConfig 药物效果的阶段时间
type EffectTimingConfig struct {
	ApplyDelay     float64 `yaml:"applyDelay"`     // 模型重新加载到效果应用之间的延迟
	ActiveDuration float64 `yaml:"activeDuration"` // 效果开始到恢复开始之间的时间
	RevertDuration float64 `yaml:"revertDuration"` // 恢复过渡的基准时长
}

// TotalMs 返回效果总时长（毫秒），用于界面进度条
func (t EffectTimingConfig) TotalMs() int64 {
	return int64(math.Round((t.ApplyDelay + t.ActiveDuration + t.RevertDuration) * 1000))
}

// SimulationConfig 模拟参数配置
type SimulationConfig struct {
	Timing                EffectTimingConfig `yaml:"timing"`
	ConnectivityThreshold float64            `yaml:"connectivityThreshold"` // 邻接距离阈值
	Seed                  int64              `yaml:"seed"`                  // 随机种子，0 表示使用当前时间
	Model                 string             `yaml:"model"`                 // 模型来源（YAML 路径或 procedural:lung[:seed]）
}

// DefaultSimulationConfig 返回默认模拟配置
func DefaultSimulationConfig() SimulationConfig {
	return SimulationConfig{
		Timing: EffectTimingConfig{
			ApplyDelay:     DefaultApplyDelay,
			ActiveDuration: DefaultActiveDuration,
			RevertDuration: DefaultRevertDuration,
		},
		ConnectivityThreshold: 1.0,
		Model:                 DefaultModelSource,
	}
}

// LoadSimulationConfig 从文件加载模拟配置
// 文件中缺省的字段保留默认值
func LoadSimulationConfig(path string) (*SimulationConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read simulation config %s: %w", path, err)
	}

	cfg, err := LoadSimulationConfigData(data)
	if err != nil {
		return nil, fmt.Errorf("simulation config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadSimulationConfigData 从 YAML 数据解析模拟配置（用于嵌入资源）
func LoadSimulationConfigData(data []byte) (*SimulationConfig, error) {
	cfg := DefaultSimulationConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse simulation config YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid simulation config: %w", err)
	}
	return &cfg, nil
}

// Validate 校验配置
func (c *SimulationConfig) Validate() error {
	if c.Timing.ApplyDelay < 0 {
		return fmt.Errorf("timing.applyDelay cannot be negative, got %v", c.Timing.ApplyDelay)
	}
	if c.Timing.ActiveDuration <= 0 {
		return fmt.Errorf("timing.activeDuration must be positive, got %v", c.Timing.ActiveDuration)
	}
	if c.Timing.RevertDuration <= 0 {
		return fmt.Errorf("timing.revertDuration must be positive, got %v", c.Timing.RevertDuration)
	}
	if c.ConnectivityThreshold <= 0 {
		return fmt.Errorf("connectivityThreshold must be positive, got %v", c.ConnectivityThreshold)
	}
	if c.Model == "" {
		return fmt.Errorf("model is required")
	}
	return nil
}
