// Package audio 提供倒计时结束提示音的合成与播放
package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(48000)

	// chimeDuration 单次提示音长度
	chimeDuration = 600 * time.Millisecond
)

// Alarm 倒计时结束提示音
//
// 未初始化（或初始化失败）时所有播放调用都是空操作，
// 终端环境没有音频设备时计时器照常运行。
type Alarm struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
}

// NewAlarm 创建提示音播放器
func NewAlarm() *Alarm {
	return &Alarm{
		mixer: &beep.Mixer{},
	}
}

// Initialize 初始化扬声器
func (a *Alarm) Initialize() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100)); err != nil {
		return err
	}

	speaker.Play(a.mixer)
	a.initialized = true
	return nil
}

// IsInitialized 是否已初始化
func (a *Alarm) IsInitialized() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.initialized
}

// PlayExpired 播放倒计时结束提示音
func (a *Alarm) PlayExpired() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.initialized {
		return
	}

	speaker.Lock()
	a.mixer.Add(NewChime(sampleRate, chimeDuration))
	speaker.Unlock()
}

// Cleanup 停止播放并关闭扬声器
func (a *Alarm) Cleanup() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.initialized {
		return
	}

	speaker.Clear()
	speaker.Close()
	a.initialized = false
}

// chimeNotes 两音提示（A5 -> E6）
var chimeNotes = [2]float64{880, 1318.5}

// NewChime 创建定长的提示音流
func NewChime(sr beep.SampleRate, d time.Duration) beep.Streamer {
	return beep.Take(sr.N(d), &ChimeGenerator{sr: sr, length: sr.N(d)})
}

// ChimeGenerator 两段正弦波提示音，带线性衰减包络
type ChimeGenerator struct {
	sr     beep.SampleRate
	length int
	pos    int
}

func (g *ChimeGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		// 前半段低音，后半段高音
		freq := chimeNotes[0]
		if g.length > 0 && g.pos >= g.length/2 {
			freq = chimeNotes[1]
		}

		envelope := 1.0
		if g.length > 0 {
			envelope = math.Max(0, 1-float64(g.pos)/float64(g.length))
		}

		sample := 0.25 * math.Sin(2*math.Pi*freq*t) * envelope
		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *ChimeGenerator) Err() error {
	return nil
}
