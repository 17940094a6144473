package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/gonewx/lungfx/pkg/types"
	"github.com/gonewx/lungfx/pkg/utils"
	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

// ErrUnknownDrug 药物表中不存在请求的药物
var ErrUnknownDrug = errors.New("unknown drug")

// 剂量分档阈值
const (
	LowDosageMax    = 0.7
	MediumDosageMax = 1.0

	// MinDosageLightness 单色药物目标颜色的最低 HSL 亮度
	MinDosageLightness = 0.5
)

// DosageBand 剂量档位
type DosageBand string

const (
	DosageLow    DosageBand = "low"
	DosageMedium DosageBand = "medium"
	DosageHigh   DosageBand = "high"
)

// BandForDosage 剂量值对应的档位（<=0.7 低，<=1.0 中，其余高）
func BandForDosage(dosage float64) DosageBand {
	switch {
	case dosage <= LowDosageMax:
		return DosageLow
	case dosage <= MediumDosageMax:
		return DosageMedium
	default:
		return DosageHigh
	}
}

// DosageLevel 界面可选的剂量
type DosageLevel struct {
	Label string  `yaml:"label"`
	Value float64 `yaml:"value"`
}

// Palette 颜色列表
//
// YAML 中每个颜色可以写成 [r, g, b] 或 "#rrggbb"；
// 只有一个颜色时可以省略外层列表。
type Palette []types.RGB

// UnmarshalYAML 实现 yaml.Unmarshaler
func (p *Palette) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		c, err := decodeColorNode(node)
		if err != nil {
			return err
		}
		*p = Palette{c}
		return nil

	case yaml.SequenceNode:
		// [r, g, b] 形式的单个颜色
		if len(node.Content) > 0 && node.Content[0].Kind == yaml.ScalarNode && node.Content[0].ShortTag() != "!!str" {
			c, err := decodeColorNode(node)
			if err != nil {
				return err
			}
			*p = Palette{c}
			return nil
		}

		colors := make(Palette, 0, len(node.Content))
		for i, child := range node.Content {
			c, err := decodeColorNode(child)
			if err != nil {
				return fmt.Errorf("color #%d: %w", i, err)
			}
			colors = append(colors, c)
		}
		*p = colors
		return nil
	}
	return fmt.Errorf("line %d: palette must be a color or a list of colors", node.Line)
}

func decodeColorNode(node *yaml.Node) (types.RGB, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		c, err := colorful.Hex(node.Value)
		if err != nil {
			return types.RGB{}, fmt.Errorf("line %d: %w", node.Line, err)
		}
		return types.NewRGB(c.R, c.G, c.B), nil
	case yaml.SequenceNode:
		var values []float64
		if err := node.Decode(&values); err != nil {
			return types.RGB{}, err
		}
		return types.RGBFromSlice(values)
	}
	return types.RGB{}, fmt.Errorf("line %d: unsupported color value", node.Line)
}

// DosagePalettes 三个剂量档位的颜色
type DosagePalettes struct {
	Low    Palette `yaml:"low"`
	Medium Palette `yaml:"medium"`
	High   Palette `yaml:"high"`
}

// ForDosage 返回剂量对应档位的颜色
func (p DosagePalettes) ForDosage(dosage float64) Palette {
	switch BandForDosage(dosage) {
	case DosageLow:
		return p.Low
	case DosageMedium:
		return p.Medium
	default:
		return p.High
	}
}

// SpeedFormula 呼吸速度 = Base + dosage * PerDosage
type SpeedFormula struct {
	Base      float64 `yaml:"base"`
	PerDosage float64 `yaml:"perDosage"`
}

// At 计算给定剂量下的呼吸速度（未截断）
func (f SpeedFormula) At(dosage float64) float64 {
	return f.Base + dosage*f.PerDosage
}

// FollowUpConfig 效果开始一段时间后呼吸速度的二次变化
type FollowUpConfig struct {
	Delay          float64      `yaml:"delay"`
	BreathingSpeed SpeedFormula `yaml:"breathingSpeed"`
}

// DrugEffectConfig 单个药物的效果配置
type DrugEffectConfig struct {
	Name            string        `yaml:"name"`
	Type            string        `yaml:"type"`
	DosageLevels    []DosageLevel `yaml:"dosageLevels"`
	LungEffect      string        `yaml:"lungEffect"`
	BreathingEffect string        `yaml:"breathingEffect"`
	Overdose        string        `yaml:"overdose"`

	// Patchy 为 true 时种子从调色板中随机取色，形成斑块状效果
	Patchy         bool            `yaml:"patchy"`
	Colors         DosagePalettes  `yaml:"colors"`
	Duration       float64         `yaml:"duration"` // 扩散过渡基准时长（秒）
	BreathingSpeed SpeedFormula    `yaml:"breathingSpeed"`
	FollowUp       *FollowUpConfig `yaml:"followUp"`
}

// Validate 校验药物配置
func (c *DrugEffectConfig) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("name is required")
	}
	if c.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %v", c.Duration)
	}
	if len(c.DosageLevels) == 0 {
		return fmt.Errorf("at least one dosage level is required")
	}
	for band, palette := range map[DosageBand]Palette{
		DosageLow:    c.Colors.Low,
		DosageMedium: c.Colors.Medium,
		DosageHigh:   c.Colors.High,
	} {
		if len(palette) == 0 {
			return fmt.Errorf("colors.%s is empty", band)
		}
		if !c.Patchy && len(palette) > 1 {
			return fmt.Errorf("colors.%s has %d colors but drug is not patchy", band, len(palette))
		}
	}
	if c.FollowUp != nil && c.FollowUp.Delay <= 0 {
		return fmt.Errorf("followUp.delay must be positive, got %v", c.FollowUp.Delay)
	}
	return nil
}

// SpeedChange 延迟执行的呼吸速度变化
type SpeedChange struct {
	Delay float64 // 相对效果开始的延迟（秒）
	Speed float64 // 新的呼吸速度（未截断）
}

// EffectRequest 一次药物效果请求
type EffectRequest struct {
	DrugKey string
	Dosage  float64

	// TargetColors 种子可选的目标颜色，单色药物只有一个
	TargetColors   []types.RGB
	Duration       float64
	BreathingSpeed float64
	FollowUp       *SpeedChange
}

// TargetColor 主目标颜色
func (r EffectRequest) TargetColor() types.RGB {
	if len(r.TargetColors) == 0 {
		return types.RGB{}
	}
	return r.TargetColors[0]
}

// Validate 校验请求
func (r EffectRequest) Validate() error {
	if len(r.TargetColors) == 0 {
		return fmt.Errorf("effect %q: no target colors", r.DrugKey)
	}
	if r.Duration <= 0 {
		return fmt.Errorf("effect %q: duration must be positive, got %v", r.DrugKey, r.Duration)
	}
	return nil
}

// DrugTable 药物效果表
type DrugTable struct {
	Drugs map[string]*DrugEffectConfig
	// Order 药物在文件中出现的顺序（界面快捷键按此顺序分配）
	Order []string
}

type drugTableFile struct {
	Drugs yaml.Node `yaml:"drugs"`
}

// LoadDrugTable 从文件加载药物表
func LoadDrugTable(path string) (*DrugTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read drug table %s: %w", path, err)
	}

	table, err := LoadDrugTableData(data)
	if err != nil {
		return nil, fmt.Errorf("drug table %s: %w", path, err)
	}
	return table, nil
}

// LoadDrugTableData 从 YAML 数据解析药物表（用于嵌入资源）
func LoadDrugTableData(data []byte) (*DrugTable, error) {
	var file drugTableFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse drug table YAML: %w", err)
	}
	if file.Drugs.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("'drugs' must be a mapping")
	}

	table := &DrugTable{Drugs: make(map[string]*DrugEffectConfig)}
	// 映射节点的 Content 按 key, value 交替排列，遍历它以保留文件顺序
	for i := 0; i+1 < len(file.Drugs.Content); i += 2 {
		key := file.Drugs.Content[i].Value
		if _, dup := table.Drugs[key]; dup {
			return nil, fmt.Errorf("duplicate drug %q", key)
		}

		cfg := &DrugEffectConfig{}
		if err := file.Drugs.Content[i+1].Decode(cfg); err != nil {
			return nil, fmt.Errorf("drug %q: %w", key, err)
		}
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("drug %q: %w", key, err)
		}

		table.Drugs[key] = cfg
		table.Order = append(table.Order, key)
	}

	if len(table.Order) == 0 {
		return nil, fmt.Errorf("drug table is empty")
	}
	return table, nil
}

// Get 获取药物配置
func (t *DrugTable) Get(drugKey string) (*DrugEffectConfig, bool) {
	cfg, ok := t.Drugs[drugKey]
	return cfg, ok
}

// Lookup 根据药物和剂量生成效果请求
//
// 单色药物的目标颜色在 HSL 空间中提升到最低亮度 0.5；
// 斑块药物的调色板原样使用。
//
// 返回：
//   - 药物不存在时返回包装了 ErrUnknownDrug 的错误
func (t *DrugTable) Lookup(drugKey string, dosage float64) (EffectRequest, error) {
	cfg, ok := t.Get(drugKey)
	if !ok {
		return EffectRequest{}, fmt.Errorf("%w: %q", ErrUnknownDrug, drugKey)
	}

	palette := cfg.Colors.ForDosage(dosage)
	var targets []types.RGB
	if cfg.Patchy {
		targets = append(targets, palette...)
	} else {
		targets = []types.RGB{utils.EnsureMinLightness(palette[0], MinDosageLightness)}
	}

	req := EffectRequest{
		DrugKey:        drugKey,
		Dosage:         dosage,
		TargetColors:   targets,
		Duration:       cfg.Duration,
		BreathingSpeed: cfg.BreathingSpeed.At(dosage),
	}
	if cfg.FollowUp != nil {
		req.FollowUp = &SpeedChange{
			Delay: cfg.FollowUp.Delay,
			Speed: cfg.FollowUp.BreathingSpeed.At(dosage),
		}
	}
	return req, nil
}

// DosageLabel 返回剂量值对应的界面文字，找不到时返回空字符串
func (c *DrugEffectConfig) DosageLabel(dosage float64) string {
	for _, level := range c.DosageLevels {
		if level.Value == dosage {
			return level.Label
		}
	}
	return ""
}
