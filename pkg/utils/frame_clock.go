package utils

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// DefaultMaxFrameDelta 单帧最大真实时间（秒）
// 窗口拖动、断点调试等造成的长帧会被截断，避免计时器一次跳过太多
const DefaultMaxFrameDelta = 0.25

// FrameClock 帧时钟
//
// 测量两次 Tick 之间经过的真实时间（不受时间缩放影响），
// 作为 TimeManager 的 unscaled delta 输入。
// 生产环境使用 clockwork.NewRealClock()，测试中使用 FakeClock。
type FrameClock struct {
	clock    clockwork.Clock
	last     time.Time
	started  bool
	maxDelta float64
}

// NewFrameClock 创建帧时钟
//
// 参数：
//   - clock: 时间源，nil 时使用真实时钟
func NewFrameClock(clock clockwork.Clock) *FrameClock {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &FrameClock{
		clock:    clock,
		maxDelta: DefaultMaxFrameDelta,
	}
}

// SetMaxDelta 设置单帧最大时长（秒），<= 0 表示不截断
func (fc *FrameClock) SetMaxDelta(maxDelta float64) {
	fc.maxDelta = maxDelta
}

// Tick 返回距上一次 Tick 经过的真实秒数
// 第一次调用只记录起点，返回 0
func (fc *FrameClock) Tick() float64 {
	now := fc.clock.Now()
	if !fc.started {
		fc.started = true
		fc.last = now
		return 0
	}

	delta := now.Sub(fc.last).Seconds()
	fc.last = now

	if delta < 0 {
		return 0
	}
	if fc.maxDelta > 0 && delta > fc.maxDelta {
		return fc.maxDelta
	}
	return delta
}

// Reset 丢弃起点，下一次 Tick 重新返回 0
// 用于从暂停菜单或后台恢复时避免一帧巨大的 delta
func (fc *FrameClock) Reset() {
	fc.started = false
}
