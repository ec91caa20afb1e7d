package systems

import (
	"errors"
	"fmt"
	"log"

	"github.com/decker502/timemanager/pkg/components"
	"github.com/decker502/timemanager/pkg/types"
	"github.com/decker502/timemanager/pkg/utils"
)

// ErrInvalidArgument 参数非法（如负的倒计时上限），调用被拒绝且状态不变
var ErrInvalidArgument = errors.New("invalid argument")

// TimerSystem 计时器系统
//
// 状态机：
//
//	Paused ⇄ Running(CountUp)
//	Paused ⇄ Running(CountDown)（倒计时归零时自动进入 Paused）
//
// 职责：
//   - 切换正计时/倒计时模式并重置计数
//   - 动态调整倒计时上限
//   - 每帧按游戏时间（受时间缩放影响）推进计数
type TimerSystem struct {
	timer components.TimerComponent
}

// NewTimerSystem 创建计时器系统
//
// 初始状态为倒计时、上限 0、计数 0。
//
// 参数：
//   - startPaused: 初始是否暂停
func NewTimerSystem(startPaused bool) *TimerSystem {
	return &TimerSystem{
		timer: components.TimerComponent{
			Mode:     types.TimerCountDown,
			IsPaused: startPaused,
		},
	}
}

// SetCountUp 切换到正计时并重置为 0
//
// 参数：
//   - pauseOnReset: 重置后是否暂停（false 时计时器开始运行）
func (s *TimerSystem) SetCountUp(pauseOnReset bool) {
	s.timer.Mode = types.TimerCountUp
	s.timer.Current = 0
	s.timer.IsPaused = pauseOnReset
	s.timer.Expired = false
	log.Printf("[TimerSystem] Mode -> countUp (paused=%v)", pauseOnReset)
}

// SetCountDown 切换到倒计时并以新上限重置
//
// 参数：
//   - newLimit: 倒计时上限（秒），必须是有限的非负数
//   - pauseOnReset: 重置后是否暂停（false 时计时器开始运行）
//
// 返回：
//   - error: newLimit 为负、NaN 或无穷时返回 ErrInvalidArgument，状态保持不变
func (s *TimerSystem) SetCountDown(newLimit float64, pauseOnReset bool) error {
	if !utils.IsFinite(newLimit) || newLimit < 0 {
		log.Printf("[TimerSystem] Rejected countdown limit %.3f", newLimit)
		return fmt.Errorf("countdown limit %.3f must be finite and >= 0: %w", newLimit, ErrInvalidArgument)
	}

	s.timer.Mode = types.TimerCountDown
	s.timer.TimeLimit = newLimit
	s.timer.Current = newLimit
	s.timer.IsPaused = pauseOnReset
	s.timer.Expired = false
	log.Printf("[TimerSystem] Mode -> countDown, limit=%.3f (paused=%v)", newLimit, pauseOnReset)
	return nil
}

// AdjustLimit 增减倒计时上限
//
// 仅在倒计时模式下生效，正计时模式下为空操作。
// 结果会被钳制为 >= 0；当前计数不受影响，下一次 Reset 时生效。
// delta 为 NaN 或无穷时为空操作。
//
// 参数：
//   - delta: 增加（正）或减少（负）的秒数
func (s *TimerSystem) AdjustLimit(delta float64) {
	if s.timer.Mode != types.TimerCountDown || !utils.IsFinite(delta) {
		return
	}

	limit := s.timer.TimeLimit + delta
	if !utils.IsFinite(limit) {
		return
	}
	if limit < 0 {
		limit = 0
	}
	s.timer.TimeLimit = limit
}

// Reset 按当前模式重置计数（正计时为 0，倒计时为上限），不改变模式
//
// 参数：
//   - pauseOnReset: true 时暂停；false 时保持原有暂停状态
func (s *TimerSystem) Reset(pauseOnReset bool) {
	if pauseOnReset {
		s.timer.IsPaused = true
	}
	s.timer.Current = s.resetValue()
	s.timer.Expired = false
}

func (s *TimerSystem) resetValue() float64 {
	if s.timer.Mode == types.TimerCountDown {
		return s.timer.TimeLimit
	}
	return 0
}

// TogglePause 切换暂停状态
func (s *TimerSystem) TogglePause() {
	s.timer.IsPaused = !s.timer.IsPaused
}

// Pause 暂停计时
func (s *TimerSystem) Pause() {
	s.timer.IsPaused = true
}

// Resume 恢复计时
func (s *TimerSystem) Resume() {
	s.timer.IsPaused = false
}

// Update 推进计时器
//
// 暂停时不推进。倒计时减到 <= 0 时钳制为 0、自动暂停，
// 并在本帧置 Expired = true。
//
// 参数：
//   - deltaTime: 游戏时间（已乘以时间缩放，秒），负值与非有限值按 0 处理
//
// 返回：
//   - bool: 本帧倒计时是否刚好归零
func (s *TimerSystem) Update(deltaTime float64) bool {
	s.timer.Expired = false

	if s.timer.IsPaused {
		return false
	}
	deltaTime = utils.ClampNonNegative(deltaTime)

	switch s.timer.Mode {
	case types.TimerCountUp:
		s.timer.Current += deltaTime
	case types.TimerCountDown:
		s.timer.Current -= deltaTime
		if s.timer.Current <= 0 {
			s.timer.Current = 0
			s.timer.IsPaused = true
			s.timer.Expired = true
			log.Printf("[TimerSystem] Countdown finished")
		}
	}

	return s.timer.Expired
}

// Restore 用外部状态覆盖计时器（用于读档）
//
// 返回：
//   - error: 上限或计数非有限、上限为负、倒计时计数为负时返回 ErrInvalidArgument
func (s *TimerSystem) Restore(timer components.TimerComponent) error {
	if !utils.IsFinite(timer.TimeLimit) || timer.TimeLimit < 0 {
		return fmt.Errorf("restored limit %.3f must be finite and >= 0: %w", timer.TimeLimit, ErrInvalidArgument)
	}
	if !utils.IsFinite(timer.Current) {
		return fmt.Errorf("restored timer value %.3f must be finite: %w", timer.Current, ErrInvalidArgument)
	}
	if timer.Mode == types.TimerCountDown && timer.Current < 0 {
		return fmt.Errorf("restored countdown value %.3f must not be negative: %w", timer.Current, ErrInvalidArgument)
	}
	if timer.Mode != types.TimerCountUp && timer.Mode != types.TimerCountDown {
		return fmt.Errorf("restored timer mode %d is unknown: %w", int(timer.Mode), ErrInvalidArgument)
	}

	timer.Expired = false
	s.timer = timer
	return nil
}

// Timer 返回计时器状态的副本
func (s *TimerSystem) Timer() components.TimerComponent {
	return s.timer
}

// Mode 返回当前计时模式
func (s *TimerSystem) Mode() types.TimerMode {
	return s.timer.Mode
}

// IsPaused 是否暂停
func (s *TimerSystem) IsPaused() bool {
	return s.timer.IsPaused
}

// TimeLimit 返回倒计时上限
func (s *TimerSystem) TimeLimit() float64 {
	return s.timer.TimeLimit
}

// Current 返回当前计数（秒）
func (s *TimerSystem) Current() float64 {
	return s.timer.Current
}
