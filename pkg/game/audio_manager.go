package game

import (
	"log"
	"time"

	"github.com/decker502/timemanager/pkg/audio"
	"github.com/gopxl/beep"
	ebitenaudio "github.com/hajimehoshi/ebiten/v2/audio"
)

// AlarmSampleRate 桌面端提示音采样率
const AlarmSampleRate = 48000

// alarmDuration 倒计时结束提示音长度
const alarmDuration = 600 * time.Millisecond

// AudioManager 音频管理器
// 职责：
//   - 播放倒计时结束提示音
//   - 音量控制与静音
//
// 提示音在创建时合成一次，之后每次播放只需重置播放位置。
type AudioManager struct {
	alarmPlayer *ebitenaudio.Player // 可为 nil（静音或无音频设备）
	volume      float64
	muted       bool
}

// NewAudioManager 创建音频管理器
//
// 参数：
//   - ctx: ebiten 音频上下文，nil 表示静音模式
//
// 返回：
//   - *AudioManager: 音频管理器实例
func NewAudioManager(ctx *ebitenaudio.Context) *AudioManager {
	am := &AudioManager{volume: 1.0}
	if ctx == nil {
		am.muted = true
		return am
	}

	pcm := audio.ChimePCM16(beep.SampleRate(ctx.SampleRate()), alarmDuration)
	am.alarmPlayer = ctx.NewPlayerFromBytes(pcm)
	return am
}

// PlayExpired 播放倒计时结束提示音
//
// 返回：
//   - bool: 是否成功播放
func (am *AudioManager) PlayExpired() bool {
	if am.muted || am.alarmPlayer == nil {
		return false
	}

	am.alarmPlayer.SetVolume(am.volume)
	if err := am.alarmPlayer.Rewind(); err != nil {
		log.Printf("[AudioManager] Warning: Failed to rewind alarm: %v", err)
	}
	am.alarmPlayer.Play()
	return true
}

// SetVolume 设置音量（0.0 - 1.0，超出范围会被钳制）
func (am *AudioManager) SetVolume(volume float64) {
	if volume < 0 {
		volume = 0
	}
	if volume > 1 {
		volume = 1
	}
	am.volume = volume
	if am.alarmPlayer != nil {
		am.alarmPlayer.SetVolume(volume)
	}
}

// Volume 返回当前音量
func (am *AudioManager) Volume() float64 {
	return am.volume
}

// SetMuted 设置静音
func (am *AudioManager) SetMuted(muted bool) {
	am.muted = muted
}

// IsMuted 是否静音
func (am *AudioManager) IsMuted() bool {
	return am.muted
}
