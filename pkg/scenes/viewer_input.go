package scenes

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// drugKeys 数字键 1-9、0 依次对应药物表中的前 10 个药物
var drugKeys = []ebiten.Key{
	ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4, ebiten.Key5,
	ebiten.Key6, ebiten.Key7, ebiten.Key8, ebiten.Key9, ebiten.Key0,
}

// handleInput 键盘操作
//
//	1-0    选择药物
//	↑/↓    调整剂量
//	R      恢复原始外观
//	Space  重新应用
//	G      显示/隐藏邻接边
//	A      自动旋转开关
func (v *ViewerScene) handleInput() {
	for i, key := range drugKeys {
		if inpututil.IsKeyJustPressed(key) {
			v.SelectDrug(i)
			return
		}
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowUp):
		v.ChangeDosage(1)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowDown):
		v.ChangeDosage(-1)
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		v.Reset()
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		v.Replay()
	case inpututil.IsKeyJustPressed(ebiten.KeyG):
		v.ToggleGraph()
	case inpututil.IsKeyJustPressed(ebiten.KeyA):
		v.ToggleAutoRotate()
	}

	// 方向键左右手动旋转
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		v.camera.Yaw -= 0.04
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		v.camera.Yaw += 0.04
	}
}
