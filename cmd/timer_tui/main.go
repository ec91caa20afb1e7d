// timer_tui 终端版计时器
//
// 用 tcell 绘制计时器，用 clockwork 驱动帧循环，倒计时结束时用 beep 播放提示音。
//
// 用法：
//
//	go run ./cmd/timer_tui --config data/time_manager.yaml --limit 30
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/decker502/timemanager/pkg/audio"
	"github.com/decker502/timemanager/pkg/config"
	"github.com/decker502/timemanager/pkg/game"
	"github.com/decker502/timemanager/pkg/types"
	"github.com/decker502/timemanager/pkg/utils"
	"github.com/gdamore/tcell/v2"
	"github.com/jonboulle/clockwork"
)

const (
	frameInterval = 16 * time.Millisecond // ~60 FPS
	limitStep     = 10.0
)

var (
	// 命令行参数
	verbose    = flag.Bool("verbose", false, "显示详细调试信息（输出到 stderr 会破坏终端画面）")
	configPath = flag.String("config", config.DefaultTimeManagerConfigPath, "配置文件路径，不存在时使用默认值")
	limit      = flag.Float64("limit", -1, "覆盖配置中的倒计时上限（秒）")
	mute       = flag.Bool("mute", false, "不播放提示音")
)

// screenText 计时器文本的 tcell 输出端
type screenText struct {
	text string
}

// SetText 实现 game.DisplaySink
func (s *screenText) SetText(text string) {
	s.text = text
}

// TimerTUI 终端计时器
type TimerTUI struct {
	screen      tcell.Screen
	clock       clockwork.Clock
	frameClock  *utils.FrameClock
	timeManager *game.TimeManager
	display     *screenText
	alarm       *audio.Alarm
	settings    *config.TimeManagerConfig

	expiredAt time.Time // 最近一次倒计时归零的时间，零值表示未归零
}

// NewTimerTUI 创建终端计时器
func NewTimerTUI(settings *config.TimeManagerConfig, clock clockwork.Clock) (*TimerTUI, error) {
	display := &screenText{}
	tm, err := game.NewTimeManager(settings, nil, display)
	if err != nil {
		return nil, err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}

	return &TimerTUI{
		screen:      screen,
		clock:       clock,
		frameClock:  utils.NewFrameClock(clock),
		timeManager: tm,
		display:     display,
		alarm:       audio.NewAlarm(),
		settings:    settings,
	}, nil
}

// handleInput 处理一个终端事件，返回 false 表示退出
func (t *TimerTUI) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyUp:
			t.timeManager.AdjustLimit(limitStep)
		case tcell.KeyDown:
			t.timeManager.AdjustLimit(-limitStep)
		case tcell.KeyRune:
			return t.handleRune(ev.Rune())
		}
	case *tcell.EventResize:
		t.screen.Sync()
	}
	return true
}

func (t *TimerTUI) handleRune(r rune) bool {
	tm := t.timeManager
	switch r {
	case 'q':
		return false
	case ' ':
		tm.TogglePause()
	case 'r':
		tm.ResetTimer(true)
	case 'u':
		tm.SetCountUp(true)
	case 'd':
		if err := tm.SetCountDown(t.settings.Timer.TimeLimit, true); err != nil {
			log.Printf("[TimerTUI] %v", err)
		}
	case '+', '=':
		tm.AdjustLimit(limitStep)
	case '-':
		tm.AdjustLimit(-limitStep)
	case 't':
		tm.SetDisplayEnabled(!tm.DisplayEnabled())
	case 'i':
		tm.SetAllowInterruption(!tm.AllowInterruption())
	case '0':
		tm.RequestTimeScale(0)
	case '1':
		tm.RequestTimeScale(0.25)
	case '2':
		tm.RequestTimeScale(0.5)
	case '3':
		tm.RequestTimeScale(1)
	case '4':
		tm.RequestTimeScale(2)
	}
	return true
}

// update 推进一帧
func (t *TimerTUI) update() {
	t.timeManager.Advance(t.frameClock.Tick())

	if t.timeManager.CountdownExpired() {
		t.expiredAt = t.clock.Now()
		t.alarm.PlayExpired()
	}
}

// drawText 从 (x, y) 开始逐字符绘制一行
func (t *TimerTUI) drawText(x, y int, text string, style tcell.Style) {
	for i, r := range []rune(text) {
		t.screen.SetContent(x+i, y, r, nil, style)
	}
}

func (t *TimerTUI) draw() {
	tm := t.timeManager
	t.screen.Clear()

	timerStyle := tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	if tm.TimerPaused() {
		timerStyle = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	}
	if !t.expiredAt.IsZero() && t.clock.Since(t.expiredAt) < time.Second {
		timerStyle = tcell.StyleDefault.Foreground(tcell.ColorRed).Reverse(true)
	}

	text := t.display.text
	if !tm.DisplayEnabled() {
		text = "(display off)"
	}

	state := "RUNNING"
	if tm.TimerPaused() {
		state = "PAUSED"
	}
	scale := fmt.Sprintf("scale %.3f", tm.CurrentTimeScale())
	if tm.IsTransitioning() {
		scale += fmt.Sprintf(" -> %.3f", tm.TargetTimeScale())
	}

	dim := tcell.StyleDefault.Foreground(tcell.ColorGray)
	t.drawText(2, 1, text, timerStyle)
	t.drawText(2, 3, fmt.Sprintf("%v  limit %.1fs  %s", tm.TimerMode(), tm.TimeLimit(), state), tcell.StyleDefault)
	t.drawText(2, 4, fmt.Sprintf("%s  interrupt=%v", scale, tm.AllowInterruption()), tcell.StyleDefault)
	t.drawText(2, 6, "space pause  r reset  u count up  d count down  +/- limit", dim)
	t.drawText(2, 7, "0-4 scale (0, .25, .5, 1, 2)  t text  i interrupt  q quit", dim)

	t.screen.Show()
}

// pollEvents 在独立 goroutine 中读取终端事件
// poll 返回 nil（屏幕已关闭）或 done 被关闭时退出，并关闭返回的通道
func pollEvents(poll func() tcell.Event, done <-chan struct{}) <-chan tcell.Event {
	events := make(chan tcell.Event, 100)
	go func() {
		defer close(events)
		for {
			ev := poll()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()
	return events
}

// run 主循环：输入事件与帧 tick 在同一个 goroutine 中处理
func (t *TimerTUI) run() {
	ticker := t.clock.NewTicker(frameInterval)
	defer ticker.Stop()

	done := make(chan struct{})
	defer close(done)
	eventChan := pollEvents(t.screen.PollEvent, done)

	for {
		select {
		case ev, ok := <-eventChan:
			if !ok || !t.handleInput(ev) {
				return
			}
		case <-ticker.Chan():
			t.update()
			t.draw()
		}
	}
}

func (t *TimerTUI) cleanup() {
	t.alarm.Cleanup()
	t.screen.Fini()
}

// loadSettings 读取配置，文件不存在时使用默认值并打开文本显示
func loadSettings(path string) (*config.TimeManagerConfig, error) {
	settings, err := config.LoadTimeManagerConfig(path)
	if errors.Is(err, os.ErrNotExist) {
		settings = config.DefaultTimeManagerConfig()
		settings.Display.Enabled = true
		settings.Display.Precision = types.PrecisionMinutes | types.PrecisionSeconds | types.PrecisionMilliseconds
		return settings, nil
	}
	return settings, err
}

func main() {
	flag.Parse()

	if !*verbose {
		log.SetOutput(io.Discard)
	}

	settings, err := loadSettings(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "配置加载失败: %v\n", err)
		os.Exit(1)
	}
	if *limit >= 0 {
		settings.Timer.Mode = types.TimerCountDown
		settings.Timer.TimeLimit = *limit
	}

	tui, err := NewTimerTUI(settings, clockwork.NewRealClock())
	if err != nil {
		fmt.Fprintf(os.Stderr, "终端初始化失败: %v\n", err)
		os.Exit(1)
	}
	defer tui.cleanup()

	if !*mute {
		if err := tui.alarm.Initialize(); err != nil {
			log.Printf("[TimerTUI] Audio unavailable: %v", err)
		}
	}

	tui.run()
}
