package app

import (
	"github.com/decker502/timemanager/pkg/config"
)

// scalePresets 触摸模式下循环切换的时间缩放
var scalePresets = []float64{1, 0.5, 0.25, 0, 2}

// touchHelp 触摸模式下的帮助文本
var touchHelp = []string{
	"tap top: pause / resume",
	"tap middle: next time scale",
	"tap bottom: reset timer",
}

// tapAction 根据点击的纵坐标返回对应动作
// 屏幕按高度三等分：上部暂停/恢复，中部切换时间缩放，下部重置
func tapAction(y int) func(a *App) {
	third := config.GameWindowHeight / 3
	switch {
	case y < third:
		return func(a *App) { a.timeManager.TogglePause() }
	case y < 2*third:
		return (*App).nextScalePreset
	default:
		return func(a *App) { a.timeManager.ResetTimer(true) }
	}
}

// nextScalePreset 请求下一个预设时间缩放
func (a *App) nextScalePreset() {
	a.scalePreset = (a.scalePreset + 1) % len(scalePresets)
	a.timeManager.RequestTimeScale(scalePresets[a.scalePreset])
}
