package game

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// SceneManager 管理当前活动的画面
// 同一时刻只有一个画面的 Update 和 Draw 被调用
type SceneManager struct {
	currentScene Scene
}

// NewSceneManager 创建场景管理器，初始没有活动画面
func NewSceneManager() *SceneManager {
	return &SceneManager{}
}

// SwitchTo 切换活动画面
// 被替换的画面如果实现了 Saveable，会先保存状态
func (sm *SceneManager) SwitchTo(scene Scene) {
	if sm.currentScene != nil && sm.currentScene != scene {
		sm.SaveCurrent()
	}
	sm.currentScene = scene
}

// CurrentScene 返回当前活动画面，没有时返回 nil
func (sm *SceneManager) CurrentScene() Scene {
	return sm.currentScene
}

// SaveCurrent 保存当前画面的状态（窗口关闭时调用）
//
// 返回：
//   - bool: 没有需要保存的画面或保存成功时为 true
func (sm *SceneManager) SaveCurrent() bool {
	saveable, ok := sm.currentScene.(Saveable)
	if !ok {
		return true
	}
	if !saveable.SaveOnExit() {
		log.Printf("[SceneManager] Scene failed to save state")
		return false
	}
	return true
}

// Update 更新当前画面，没有活动画面时什么也不做
func (sm *SceneManager) Update(deltaTime float64) {
	if sm.currentScene != nil {
		sm.currentScene.Update(deltaTime)
	}
}

// Draw 绘制当前画面，没有活动画面时什么也不做
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}
