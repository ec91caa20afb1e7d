// Package app 提供时间管理器演示程序的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来：加载配置、创建 TimeManager、
// 恢复上次会话，并实现 ebiten.Game 接口作为每帧 tick 的驱动和计时器文本的显示端。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/decker502/timemanager/pkg/config"
	"github.com/decker502/timemanager/pkg/embedded"
	"github.com/decker502/timemanager/pkg/game"
	"github.com/decker502/timemanager/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	ebitenaudio "github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ConfigPath 从磁盘加载的配置文件路径，为空则使用嵌入的默认配置
	ConfigPath string
	// NoSession 禁用会话存档（忽略配置文件中的 session 设置）
	NoSession bool
	// Mute 不创建音频上下文，倒计时结束时不播放提示音
	Mute bool
}

// expiredFlashFrames 倒计时归零后背景闪烁的帧数
const expiredFlashFrames = 60

var (
	backgroundColor = color.RGBA{R: 24, G: 28, B: 36, A: 255}
	expiredColor    = color.RGBA{R: 140, G: 28, B: 28, A: 255}
)

// App 是演示程序的核心包装器，实现 ebiten.Game 接口
type App struct {
	timeManager *game.TimeManager
	speed       *game.SimulationSpeed
	saveManager *game.TimerSaveManager
	audio       *game.AudioManager
	settings    *config.TimeManagerConfig

	timerText   string // 最近一次推送的计时器文本（DisplaySink）
	flashFrames int    // 倒计时归零后剩余的闪烁帧数
	scalePreset int    // 触摸模式下当前的时间缩放预设下标
	touchMode   bool   // 是否使用触摸操作（移动端）
	verbose     bool

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化应用
//
// 使用嵌入配置前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	settings, err := loadSettings(cfg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("配置加载失败: %w", err)
	}

	a := &App{
		speed:     game.NewSimulationSpeed(settings.TimeScale.Initial),
		settings:  settings,
		touchMode: utils.IsMobile(),
		verbose:   cfg.Verbose,
	}

	a.timeManager, err = game.NewTimeManager(settings, a.speed, a)
	if err != nil {
		return nil, fmt.Errorf("时间管理器创建失败: %w", err)
	}

	// 音频上下文全局只能创建一次
	var audioContext *ebitenaudio.Context
	if !cfg.Mute {
		audioContext = ebitenaudio.CurrentContext()
		if audioContext == nil {
			audioContext = ebitenaudio.NewContext(game.AlarmSampleRate)
		}
	}
	a.audio = game.NewAudioManager(audioContext)

	if !cfg.NoSession && (settings.Session.Restore || settings.Session.Save) {
		a.saveManager = openSaveManager(settings.Session.AppName)
		if settings.Session.Restore {
			a.restoreSession()
		}
	}

	log.Printf("[App] Initialized (scale=%.2f, mode=%v)", a.speed.TimeScale(), a.timeManager.TimerMode())
	return a, nil
}

// loadSettings 加载配置：磁盘路径优先，其次嵌入资源，最后默认值
func loadSettings(path string) (*config.TimeManagerConfig, error) {
	if path != "" {
		log.Printf("[Config] 加载配置文件: %s", path)
		return config.LoadTimeManagerConfig(path)
	}

	if embedded.IsInitialized() && embedded.Exists(config.DefaultTimeManagerConfigPath) {
		data, err := embedded.ReadFile(config.DefaultTimeManagerConfigPath)
		if err != nil {
			return nil, err
		}
		log.Printf("[Config] 使用嵌入配置: %s", config.DefaultTimeManagerConfigPath)
		return config.LoadTimeManagerConfigFromBytes(data)
	}

	log.Printf("[Config] 未找到配置，使用默认值")
	return config.DefaultTimeManagerConfig(), nil
}

// openSaveManager 打开会话存储，失败时降级为内存模式
func openSaveManager(appName string) *game.TimerSaveManager {
	if err := utils.EnsureStorageDir(); err != nil {
		log.Printf("[App] Warning: storage dir unavailable: %v", err)
	}

	saveManager, err := game.OpenTimerSaveManager(appName)
	if err != nil {
		log.Printf("[App] Warning: %v (session will not persist)", err)
	}
	return saveManager
}

// restoreSession 恢复上次退出时的计时器状态，失败不影响启动
func (a *App) restoreSession() {
	restored, err := a.saveManager.RestoreInto(a.timeManager)
	if err != nil {
		log.Printf("[App] Warning: failed to restore session: %v (using config)", err)
		return
	}
	if restored {
		log.Printf("[App] Session restored: %v %.2fs", a.timeManager.TimerMode(), a.timeManager.CurrentTimerValue())
	}
}

// SaveSession 保存当前计时器状态
// 用于在窗口关闭后调用；未启用存档时返回 nil
func (a *App) SaveSession() error {
	if a.saveManager == nil || !a.settings.Session.Save {
		return nil
	}
	return a.saveManager.Save(a.timeManager.Snapshot())
}

// SetText 实现 game.DisplaySink，接收计时器文本
func (a *App) SetText(text string) {
	a.timerText = text
}

// Update 更新逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.GameWindowWidth*2, config.GameWindowHeight*2)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
		} else {
			ebiten.SetFullscreen(true)
		}
	}

	// 触摸/点击（移动端）
	if a.touchMode {
		if tapped, _, y := utils.IsJustTouchedOrClicked(); tapped {
			tapAction(y)(a)
		}
	}

	for _, binding := range keyBindings {
		if binding.action != nil && inpututil.IsKeyJustPressed(binding.key) {
			log.Printf("[App] Key %v: %s", binding.key, binding.description)
			binding.action(a)
		}
	}

	a.step(1.0 / float64(ebiten.TPS()))
	return nil
}

// step 以真实时间推进一帧
func (a *App) step(unscaledDelta float64) {
	a.timeManager.Advance(unscaledDelta)

	if a.timeManager.CountdownExpired() {
		a.flashFrames = expiredFlashFrames
		a.audio.PlayExpired()
		log.Printf("[App] Countdown finished")
	} else if a.flashFrames > 0 {
		a.flashFrames--
	}
}

// Draw 绘制画面
func (a *App) Draw(screen *ebiten.Image) {
	if a.flashFrames > 0 && (a.flashFrames/10)%2 == 0 {
		screen.Fill(expiredColor)
	} else {
		screen.Fill(backgroundColor)
	}

	for i, line := range a.statusLines() {
		ebitenutil.DebugPrintAt(screen, line, config.TextMarginX, config.TextMarginY+i*config.TextLineHeight)
	}
}

// statusLines 生成状态面板的文本行
func (a *App) statusLines() []string {
	tm := a.timeManager

	timerText := a.timerText
	if !tm.DisplayEnabled() {
		timerText = "(display off)"
	}

	state := "RUNNING"
	if tm.TimerPaused() {
		state = "PAUSED"
	}

	scaleLine := fmt.Sprintf("Time scale: %.3f", tm.CurrentTimeScale())
	if tm.IsTransitioning() {
		scaleLine += fmt.Sprintf(" -> %.3f", tm.TargetTimeScale())
	}

	lines := []string{
		fmt.Sprintf("Timer: %s", timerText),
		fmt.Sprintf("Mode: %v  Limit: %.1fs  %s", tm.TimerMode(), tm.TimeLimit(), state),
		scaleLine,
		"",
	}
	if a.touchMode {
		return append(lines, touchHelp...)
	}
	for _, binding := range keyBindings {
		lines = append(lines, fmt.Sprintf("%-6s %s", binding.label, binding.description))
	}
	return lines
}

// Layout 返回逻辑屏幕尺寸
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.GameWindowWidth, config.GameWindowHeight
}

// TimeManager 返回时间管理器
func (a *App) TimeManager() *game.TimeManager {
	return a.timeManager
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
