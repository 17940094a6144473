package scenes

import (
	"github.com/go-gl/mathgl/mgl32"
)

// 相机默认参数
const (
	DefaultCameraFOV      = 75.0 // 垂直视角（度）
	DefaultCameraDistance = 5.0
	CameraNear            = 0.1
	CameraFar             = 1000.0

	// AutoRotateSpeed 自动旋转角速度（弧度/秒）
	AutoRotateSpeed = 0.35
)

// Camera 绕 Y 轴旋转观察模型的透视相机
type Camera struct {
	FOV      float32 // 度
	Distance float32
	Yaw      float32 // 模型绕 Y 轴的旋转（弧度）
	Pitch    float32 // 模型绕 X 轴的旋转（弧度）

	Width, Height int // 视口尺寸（像素）
}

// NewCamera 创建位于 z = Distance 处、看向原点的相机
func NewCamera(width, height int) *Camera {
	return &Camera{
		FOV:      DefaultCameraFOV,
		Distance: DefaultCameraDistance,
		Width:    width,
		Height:   height,
	}
}

// ViewProjection 返回 projection * view * model 矩阵
func (c *Camera) ViewProjection() mgl32.Mat4 {
	aspect := float32(c.Width) / float32(c.Height)
	projection := mgl32.Perspective(mgl32.DegToRad(c.FOV), aspect, CameraNear, CameraFar)
	view := mgl32.LookAtV(mgl32.Vec3{0, 0, c.Distance}, mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 1, 0})
	model := mgl32.HomogRotate3DX(c.Pitch).Mul4(mgl32.HomogRotate3DY(c.Yaw))
	return projection.Mul4(view).Mul4(model)
}

// Project 把世界坐标投影到视口像素坐标
//
// 返回：
//   - x, y: 屏幕坐标（原点在左上角）
//   - depth: 到相机的裁剪空间 w 值，越大越远
//   - ok: 点是否在相机前方
func (c *Camera) Project(mvp mgl32.Mat4, p mgl32.Vec3) (x, y, depth float32, ok bool) {
	clip := mvp.Mul4x1(p.Vec4(1))
	if clip.W() <= CameraNear {
		return 0, 0, 0, false
	}
	ndcX := clip.X() / clip.W()
	ndcY := clip.Y() / clip.W()

	x = (ndcX + 1) * 0.5 * float32(c.Width)
	y = (1 - ndcY) * 0.5 * float32(c.Height)
	return x, y, clip.W(), true
}

// Rotate 按角速度推进自动旋转
func (c *Camera) Rotate(deltaTime float64) {
	c.Yaw += float32(deltaTime * AutoRotateSpeed)
}
