package app

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// limitStep 调整倒计时上限的步长（秒）
const limitStep = 10.0

// keyBinding 单个按键与其动作
type keyBinding struct {
	key         ebiten.Key
	label       string
	description string
	action      func(a *App)
}

// keyBindings 桌面端按键表（顺序即帮助面板的显示顺序）
var keyBindings = []keyBinding{
	{ebiten.KeySpace, "Space", "pause / resume timer", func(a *App) { a.timeManager.TogglePause() }},
	{ebiten.KeyR, "R", "reset timer (paused)", func(a *App) { a.timeManager.ResetTimer(true) }},
	{ebiten.KeyU, "U", "count up", func(a *App) { a.timeManager.SetCountUp(true) }},
	{ebiten.KeyD, "D", "count down from config limit", (*App).countDownFromConfig},
	{ebiten.KeyArrowUp, "Up", "limit +10s", func(a *App) { a.timeManager.AdjustLimit(limitStep) }},
	{ebiten.KeyArrowDown, "Down", "limit -10s", func(a *App) { a.timeManager.AdjustLimit(-limitStep) }},
	{ebiten.KeyDigit0, "0", "freeze (scale 0)", func(a *App) { a.timeManager.RequestTimeScale(0) }},
	{ebiten.KeyDigit1, "1", "slow motion (scale 0.25)", func(a *App) { a.timeManager.RequestTimeScale(0.25) }},
	{ebiten.KeyDigit2, "2", "half speed (scale 0.5)", func(a *App) { a.timeManager.RequestTimeScale(0.5) }},
	{ebiten.KeyDigit3, "3", "normal speed (scale 1)", func(a *App) { a.timeManager.RequestTimeScale(1) }},
	{ebiten.KeyDigit4, "4", "fast forward (scale 2)", func(a *App) { a.timeManager.RequestTimeScale(2) }},
	{ebiten.KeyT, "T", "toggle timer text", func(a *App) { a.timeManager.SetDisplayEnabled(!a.timeManager.DisplayEnabled()) }},
	{ebiten.KeyM, "M", "mute / unmute alarm", func(a *App) { a.audio.SetMuted(!a.audio.IsMuted()) }},
	{ebiten.KeyF11, "F11", "toggle fullscreen", nil},
}

// countDownFromConfig 以配置文件中的上限重新开始倒计时
func (a *App) countDownFromConfig() {
	if err := a.timeManager.SetCountDown(a.settings.Timer.TimeLimit, true); err != nil {
		log.Printf("[App] Warning: %v", err)
	}
}
