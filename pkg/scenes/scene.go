package scenes

import (
	"github.com/gonewx/lungfx/pkg/game"
)

// Scene 是 game.Scene 的别名，scenes 包中的画面都实现它
type Scene = game.Scene

var (
	_ Scene         = (*ViewerScene)(nil)
	_ game.Saveable = (*ViewerScene)(nil)
)
