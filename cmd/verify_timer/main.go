// verify_timer 无窗口验证工具
//
// 用假时钟按固定步长驱动 TimeManager，逐帧打印计时器和时间缩放，
// 用于检查倒计时归零、时间缩放过渡和显示格式。
//
// 用法：
//
//	go run ./cmd/verify_timer --mode countDown --limit 3 --scale 0.5 --ticks 400 --every 30
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/decker502/timemanager/pkg/config"
	"github.com/decker502/timemanager/pkg/game"
	"github.com/decker502/timemanager/pkg/types"
	"github.com/decker502/timemanager/pkg/utils"
	"github.com/jonboulle/clockwork"
)

var (
	// 命令行参数
	verbose    = flag.Bool("verbose", false, "显示详细调试信息")
	ticks      = flag.Int("ticks", 300, "模拟的帧数")
	dt         = flag.Float64("dt", 1.0/60.0, "每帧真实时间（秒）")
	limit      = flag.Float64("limit", 5, "倒计时上限（秒）")
	mode       = flag.String("mode", "countDown", "计时模式：countUp / countDown")
	scale      = flag.Float64("scale", -1, "第一帧请求的目标时间缩放，负数表示不请求")
	duration   = flag.Float64("duration", 0.5, "时间缩放过渡时长（秒）")
	easing     = flag.String("easing", "linear", "过渡曲线")
	precision  = flag.String("precision", "minutes|seconds|milliseconds", "显示精度，用 | 分隔")
	every      = flag.Int("every", 30, "每隔多少帧打印一次")
	stopOnZero = flag.Bool("stop-on-zero", true, "倒计时归零后停止")
)

// recorder 记录最近一次推送的文本
type recorder struct {
	text   string
	pushes int
}

func (r *recorder) SetText(text string) {
	r.text = text
	r.pushes++
}

func buildConfig() (*config.TimeManagerConfig, error) {
	timerMode, err := types.ParseTimerMode(*mode)
	if err != nil {
		return nil, err
	}
	timerPrecision, err := types.ParseTimerPrecision(strings.Split(*precision, "|"))
	if err != nil {
		return nil, err
	}

	cfg := config.DefaultTimeManagerConfig()
	cfg.TimeScale.TransitionDuration = *duration
	cfg.TimeScale.Easing = *easing
	cfg.Timer.StartPaused = false
	cfg.Timer.Mode = timerMode
	cfg.Timer.TimeLimit = *limit
	cfg.Display.Enabled = true
	cfg.Display.Precision = timerPrecision
	return cfg, cfg.Validate()
}

func main() {
	flag.Parse()

	if *every <= 0 {
		*every = 1
	}
	if !*verbose {
		log.SetOutput(io.Discard)
	}

	cfg, err := buildConfig()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	display := &recorder{}
	tm, err := game.NewTimeManager(cfg, nil, display)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	clock := clockwork.NewFakeClock()
	frameClock := utils.NewFrameClock(clock)
	frameClock.SetMaxDelta(0)
	frameClock.Tick()

	if *scale >= 0 {
		tm.RequestTimeScale(*scale)
	}

	step := time.Duration(*dt * float64(time.Second))
	gameTime := 0.0

	fmt.Printf("%-6s %-10s %-10s %-8s %-8s %s\n", "TICK", "REAL", "GAME", "SCALE", "STATE", "TEXT")
	for i := 1; i <= *ticks; i++ {
		clock.Advance(step)
		gameTime += tm.Advance(frameClock.Tick())

		expired := tm.CountdownExpired()
		if i%*every == 0 || expired || i == *ticks {
			state := "run"
			if tm.TimerPaused() {
				state = "paused"
			}
			if expired {
				state = "EXPIRED"
			}
			fmt.Printf("%-6d %-10.3f %-10.3f %-8.3f %-8s %s\n",
				i, float64(i)*step.Seconds(), gameTime, tm.CurrentTimeScale(), state, display.text)
		}

		if expired && *stopOnZero {
			break
		}
	}

	fmt.Printf("\nmode=%v limit=%.3f current=%.3f pushes=%d\n", tm.TimerMode(), tm.TimeLimit(), tm.CurrentTimerValue(), display.pushes)
}
