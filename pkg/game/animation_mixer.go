package game

import "math"

// DefaultBreathCycle 默认呼吸周期（秒）
const DefaultBreathCycle = 4.0

// AnimationMixer 模型呼吸动画的播放器
//
// 只关心播放速度（TimeScale）和播放时间，具体的形变由渲染层根据 Phase 计算。
// 模型没有动画时 SceneContext.Mixer 为 nil，所有速度相关操作都会跳过。
type AnimationMixer struct {
	// TimeScale 播放速度倍率，1.0 为正常呼吸
	TimeScale float64
	// Time 已播放的动画时间（秒）
	Time float64
	// ClipDuration 动画片段长度（秒）
	ClipDuration float64
}

// NewAnimationMixer 创建播放器，clipDuration <= 0 时使用默认呼吸周期
func NewAnimationMixer(clipDuration float64) *AnimationMixer {
	if clipDuration <= 0 {
		clipDuration = DefaultBreathCycle
	}
	return &AnimationMixer{
		TimeScale:    1.0,
		ClipDuration: clipDuration,
	}
}

// Update 推进播放时间
func (m *AnimationMixer) Update(deltaTime float64) {
	m.Time += deltaTime * m.TimeScale
	if m.Time >= m.ClipDuration {
		m.Time = math.Mod(m.Time, m.ClipDuration)
	}
}

// Phase 当前循环内的归一化位置 [0, 1)
func (m *AnimationMixer) Phase() float64 {
	return m.Time / m.ClipDuration
}
