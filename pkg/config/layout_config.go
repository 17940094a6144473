package config

// 布局配置常量
// 查看器窗口分为左侧 3D 视图和右侧信息面板，底部是效果进度条

const (
	// WindowWidth 逻辑屏幕宽度
	WindowWidth = 1100
	// WindowHeight 逻辑屏幕高度
	WindowHeight = 720

	// ViewportWidth 3D 视图宽度（窗口宽度的 70%）
	ViewportWidth = WindowWidth * 7 / 10
	// ViewportHeight 3D 视图高度（扣除底部进度条区域）
	ViewportHeight = WindowHeight - ProgressAreaHeight

	// PanelX 信息面板左边界
	PanelX = ViewportWidth + PanelPadding
	// PanelPadding 信息面板内边距
	PanelPadding = 16
	// PanelLineHeight 信息面板行高（调试字体高度 16）
	PanelLineHeight = 18

	// ProgressAreaHeight 底部进度条区域高度
	ProgressAreaHeight = 60
	// ProgressBarMargin 进度条左右边距
	ProgressBarMargin = 24
	// ProgressBarHeight 进度条高度
	ProgressBarHeight = 14

	// MeshBaseRadius 距离相机 1 个单位时网格圆点的屏幕半径
	MeshBaseRadius = 110.0
	// MeshMinRadius 网格圆点的最小屏幕半径
	MeshMinRadius = 2.0
)

// ProgressBarRect 返回进度条的屏幕矩形
// 返回值：x, y, width, height
func ProgressBarRect() (float32, float32, float32, float32) {
	x := float32(ProgressBarMargin)
	y := float32(ViewportHeight) + (ProgressAreaHeight-ProgressBarHeight)/2
	return x, y, float32(WindowWidth - 2*ProgressBarMargin), ProgressBarHeight
}
