package components

import "github.com/gonewx/lungfx/pkg/types"

// TransitionComponent 网格颜色过渡状态
// 每个网格一个，注册网格时创建，重新加载模型时整体重建
//
// 注意：遵循 ECS 原则，组件仅存储数据，字段的读写由
// SpreadSystem / RevertSystem 负责。
type TransitionComponent struct {
	// OriginalColor 注册时捕获的原始颜色，之后不再修改
	OriginalColor types.RGB

	// TransitionDelay 注册时随机生成的延迟抖动，范围 [0, 4)
	// 扩散和恢复都不读取该值：扩散没有逐网格延迟，恢复使用 RevertDelayJitter。
	// 保留它只为与网格过渡数据模型一致，并在注册时消耗同样次数的随机数。
	TransitionDelay float64

	// TransitionSpeed 注册时随机生成的速度系数，范围 [0.6, 0.9)
	TransitionSpeed float64

	// RevertDelayJitter 恢复阶段使用的独立延迟抖动，范围 [0, 4)
	// 与 TransitionDelay 分开生成，两个阶段互不影响
	RevertDelayJitter float64

	// ---- 扩散（感染）阶段 ----

	Infected          bool
	InfectionProgress float64 // [0, 1]
	InfectionComplete bool

	// TransitionStartColor 被感染时的当前颜色
	TransitionStartColor types.RGB
	// TransitionEndColor 带抖动的目标颜色
	TransitionEndColor types.RGB

	// ---- 恢复阶段 ----

	RevertActive   bool
	RevertProgress float64 // [0, 1]
	RevertComplete bool
	// RevertDelay 剩余等待时间（秒），<= 0 时开始恢复
	RevertDelay float64
	// RevertSpeed 恢复速度系数
	RevertSpeed float64

	RevertStartColor types.RGB
	RevertEndColor   types.RGB
}
