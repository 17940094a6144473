package components

// TimerComponent 一次性计时器组件
// 用于效果的阶段切换（延迟应用、持续时间结束、呼吸速度二次变化）
//
// 计时器以实体形式存在，取消计时器即销毁实体。
type TimerComponent struct {
	Name        string  // 计时器名称，如 "effect_revert"
	TargetTime  float64 // 目标时间（秒）
	CurrentTime float64 // 当前已过时间（秒）
	IsReady     bool    // 计时器是否已触发
	OnFire      func()  // 触发时执行的回调
}
