package systems

import (
	"github.com/decker502/timemanager/pkg/types"
	"github.com/decker502/timemanager/pkg/utils"
)

// DisplaySink 计时器文本输出端（如 UI 标签）
// 被动接收格式化结果，不归 TimerTextSystem 所有
type DisplaySink interface {
	SetText(text string)
}

// TimerTextSystem 计时器文本系统
//
// 启用时每帧根据计时器数值重新生成显示文本并推送给 DisplaySink；
// 未启用时文本保持上一次的值不变。没有 DisplaySink 时只计算不显示。
type TimerTextSystem struct {
	enabled   bool
	precision types.TimerPrecision
	sink      DisplaySink
	text      string
}

// NewTimerTextSystem 创建计时器文本系统
//
// 参数：
//   - enabled: 是否启用文本输出
//   - precision: 显示的时间单位
//   - sink: 文本输出端，可为 nil
func NewTimerTextSystem(enabled bool, precision types.TimerPrecision, sink DisplaySink) *TimerTextSystem {
	return &TimerTextSystem{
		enabled:   enabled,
		precision: precision,
		sink:      sink,
	}
}

// Update 刷新显示文本
//
// 参数：
//   - timerValue: 计时器当前值（秒）
func (s *TimerTextSystem) Update(timerValue float64) {
	if !s.enabled {
		return
	}

	s.text = utils.FormatTimerText(timerValue, s.precision)
	if s.sink != nil {
		s.sink.SetText(s.text)
	}
}

// Text 返回最近一次生成的文本
func (s *TimerTextSystem) Text() string {
	return s.text
}

// Enabled 是否启用
func (s *TimerTextSystem) Enabled() bool {
	return s.enabled
}

// SetEnabled 启用或停用文本输出
func (s *TimerTextSystem) SetEnabled(enabled bool) {
	s.enabled = enabled
}

// Precision 返回显示精度
func (s *TimerTextSystem) Precision() types.TimerPrecision {
	return s.precision
}

// SetPrecision 设置显示精度，下一帧生效
func (s *TimerTextSystem) SetPrecision(precision types.TimerPrecision) {
	s.precision = precision
}

// SetSink 替换文本输出端，nil 表示不输出
func (s *TimerTextSystem) SetSink(sink DisplaySink) {
	s.sink = sink
}
