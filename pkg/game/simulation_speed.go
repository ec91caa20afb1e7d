package game

import (
	"math"
	"sync/atomic"
)

// SimulationSpeed 全局模拟速度（时间缩放）
//
// 进程内共享的可变状态：TimeManager 的过渡任务是唯一的写入者，
// 其他子系统（动画、物理、音频）只读取。读取方可能观察到过渡途中的中间值，
// 除"单调逼近目标"外不提供任何一致性保证。
//
// 使用原子操作存储，允许音频回调等其他 goroutine 安全读取。
type SimulationSpeed struct {
	bits atomic.Uint64
}

// NewSimulationSpeed 创建模拟速度，负的初始值按 0 处理
func NewSimulationSpeed(initial float64) *SimulationSpeed {
	s := &SimulationSpeed{}
	s.SetTimeScale(initial)
	return s
}

// TimeScale 返回当前时间缩放
func (s *SimulationSpeed) TimeScale() float64 {
	return math.Float64frombits(s.bits.Load())
}

// SetTimeScale 写入时间缩放，负值与非有限值钳制为 0
func (s *SimulationSpeed) SetTimeScale(scale float64) {
	if scale < 0 || math.IsNaN(scale) || math.IsInf(scale, 0) {
		scale = 0
	}
	s.bits.Store(math.Float64bits(scale))
}

// Scale 将真实时间换算为游戏时间
func (s *SimulationSpeed) Scale(unscaledDelta float64) float64 {
	return unscaledDelta * s.TimeScale()
}
