package game

import (
	"fmt"
	"log"
	"time"

	"github.com/decker502/timemanager/pkg/config"
	"github.com/decker502/timemanager/pkg/systems"
	"github.com/decker502/timemanager/pkg/types"
	"github.com/decker502/timemanager/pkg/utils"
)

// ErrInvalidArgument 参数非法，调用被拒绝且状态不变
var ErrInvalidArgument = systems.ErrInvalidArgument

// DisplaySink 计时器文本输出端
type DisplaySink = systems.DisplaySink

// TimeScaleSink 全局时间缩放端口
type TimeScaleSink = systems.TimeScaleSink

// TimeManager 时间管理器
//
// 职责：
//   - 平滑过渡全局时间缩放（慢动作、冻结、加速）
//   - 运行一个正计时/倒计时计时器
//   - 按配置的精度生成计时器显示文本
//
// 架构说明：
//   - 单线程协作式：由外部每帧调用一次 Tick，内部没有任何调度
//   - 全局时间缩放通过 TimeScaleSink 显式注入，不使用隐藏的单例
//   - 一帧的所有效果在下一帧开始前全部生效
type TimeManager struct {
	speed TimeScaleSink

	scaleSystem *systems.TimeScaleSystem
	timerSystem *systems.TimerSystem
	textSystem  *systems.TimerTextSystem

	// countdownExpired 本帧倒计时是否刚好归零
	countdownExpired bool
}

// TimerSnapshot 计时器快照（用于存档/读档）
type TimerSnapshot struct {
	Mode      types.TimerMode `yaml:"mode"`
	Paused    bool            `yaml:"paused"`
	TimeLimit float64         `yaml:"timeLimit"`
	Current   float64         `yaml:"current"`
	TimeScale float64         `yaml:"timeScale"`
	SavedAt   time.Time       `yaml:"savedAt"`
}

// NewTimeManager 创建时间管理器
//
// 参数：
//   - cfg: 配置，nil 时使用默认配置
//   - speed: 全局时间缩放端口，nil 时按 cfg.TimeScale.Initial 新建一个 SimulationSpeed；
//     外部传入时保持其当前值不变
//   - display: 计时器文本输出端，可为 nil
//
// 返回：
//   - *TimeManager: 时间管理器实例
//   - error: 配置无效时返回错误
func NewTimeManager(cfg *config.TimeManagerConfig, speed TimeScaleSink, display DisplaySink) (*TimeManager, error) {
	if cfg == nil {
		cfg = config.DefaultTimeManagerConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid time manager config: %w", err)
	}

	easing, err := utils.EasingByName(cfg.TimeScale.Easing)
	if err != nil {
		return nil, err
	}

	if speed == nil {
		speed = NewSimulationSpeed(cfg.TimeScale.Initial)
	}

	tm := &TimeManager{
		speed:       speed,
		scaleSystem: systems.NewTimeScaleSystem(speed, cfg.TimeScale.TransitionDuration, cfg.TimeScale.AllowInterruption, easing),
		timerSystem: systems.NewTimerSystem(cfg.Timer.StartPaused),
		textSystem:  systems.NewTimerTextSystem(cfg.Display.Enabled, cfg.Display.Precision, display),
	}

	switch cfg.Timer.Mode {
	case types.TimerCountUp:
		tm.timerSystem.SetCountUp(cfg.Timer.StartPaused)
	default:
		if err := tm.timerSystem.SetCountDown(cfg.Timer.TimeLimit, cfg.Timer.StartPaused); err != nil {
			return nil, err
		}
	}

	log.Printf("[TimeManager] Created: mode=%v, limit=%.3f, paused=%v, scale=%.3f, display=%v(%v)",
		tm.TimerMode(), tm.TimeLimit(), tm.TimerPaused(), speed.TimeScale(), cfg.Display.Enabled, cfg.Display.Precision)

	return tm, nil
}

// Tick 推进一帧
//
// 执行顺序：
//  1. 时间缩放过渡（真实时间）
//  2. 计时器（游戏时间）
//  3. 显示文本（启用时）
//
// 参数：
//   - unscaledDelta: 真实时间（秒）
//   - scaledDelta: 游戏时间（秒，已乘以时间缩放）
func (tm *TimeManager) Tick(unscaledDelta, scaledDelta float64) {
	tm.scaleSystem.Update(unscaledDelta)
	tm.countdownExpired = tm.timerSystem.Update(scaledDelta)
	tm.textSystem.Update(tm.timerSystem.Current())
}

// Advance 以真实时间推进一帧
//
// 游戏时间按帧开始时生效的时间缩放换算（与引擎在帧开始时计算 deltaTime 一致）。
//
// 返回：
//   - float64: 本帧使用的游戏时间
func (tm *TimeManager) Advance(unscaledDelta float64) float64 {
	unscaledDelta = utils.ClampNonNegative(unscaledDelta)
	scaledDelta := unscaledDelta * utils.ClampNonNegative(tm.speed.TimeScale())
	tm.Tick(unscaledDelta, scaledDelta)
	return scaledDelta
}

// --- 时间缩放 ---

// RequestTimeScale 请求平滑过渡到目标时间缩放，负值钳制为 0
func (tm *TimeManager) RequestTimeScale(target float64) {
	tm.scaleSystem.RequestTimeScale(target)
}

// SetTimeScaleImmediate 立即设置时间缩放并取消过渡
func (tm *TimeManager) SetTimeScaleImmediate(scale float64) {
	tm.scaleSystem.SetImmediate(scale)
}

// CancelTimeScaleTransition 取消过渡，时间缩放停留在当前值
func (tm *TimeManager) CancelTimeScaleTransition() {
	tm.scaleSystem.Cancel()
}

// IsTransitioning 是否有时间缩放过渡正在进行
func (tm *TimeManager) IsTransitioning() bool {
	return tm.scaleSystem.IsTransitioning()
}

// CurrentTimeScale 返回最近一次应用的时间缩放
func (tm *TimeManager) CurrentTimeScale() float64 {
	return tm.scaleSystem.CurrentTimeScale()
}

// TargetTimeScale 返回过渡目标；没有过渡时返回当前值
func (tm *TimeManager) TargetTimeScale() float64 {
	if tm.scaleSystem.IsTransitioning() {
		return tm.scaleSystem.Transition().TargetScale
	}
	return tm.scaleSystem.CurrentTimeScale()
}

// AllowInterruption 返回是否允许打断过渡
func (tm *TimeManager) AllowInterruption() bool {
	return tm.scaleSystem.AllowInterruption()
}

// SetAllowInterruption 设置是否允许打断过渡
func (tm *TimeManager) SetAllowInterruption(allow bool) {
	tm.scaleSystem.SetAllowInterruption(allow)
}

// TransitionDuration 返回过渡时长（秒）
func (tm *TimeManager) TransitionDuration() float64 {
	return tm.scaleSystem.TransitionDuration()
}

// SetTransitionDuration 设置过渡时长（秒），负值按 0 处理
func (tm *TimeManager) SetTransitionDuration(duration float64) {
	tm.scaleSystem.SetTransitionDuration(duration)
}

// --- 计时器 ---

// SetCountUp 切换到正计时并重置
func (tm *TimeManager) SetCountUp(pauseOnReset bool) {
	tm.timerSystem.SetCountUp(pauseOnReset)
}

// SetCountDown 切换到倒计时并以新上限重置
//
// 返回：
//   - error: newLimit 为负、NaN 或无穷时返回 ErrInvalidArgument，状态保持不变
func (tm *TimeManager) SetCountDown(newLimit float64, pauseOnReset bool) error {
	return tm.timerSystem.SetCountDown(newLimit, pauseOnReset)
}

// AdjustLimit 增减倒计时上限（正计时模式下为空操作，结果钳制为 >= 0）
func (tm *TimeManager) AdjustLimit(delta float64) {
	tm.timerSystem.AdjustLimit(delta)
}

// ResetTimer 按当前模式重置计数
func (tm *TimeManager) ResetTimer(pauseOnReset bool) {
	tm.timerSystem.Reset(pauseOnReset)
}

// TogglePause 切换计时器暂停状态
func (tm *TimeManager) TogglePause() {
	tm.timerSystem.TogglePause()
}

// PauseTimer 暂停计时器
func (tm *TimeManager) PauseTimer() {
	tm.timerSystem.Pause()
}

// ResumeTimer 恢复计时器
func (tm *TimeManager) ResumeTimer() {
	tm.timerSystem.Resume()
}

// TimerPaused 计时器是否暂停
func (tm *TimeManager) TimerPaused() bool {
	return tm.timerSystem.IsPaused()
}

// TimerMode 返回计时模式
func (tm *TimeManager) TimerMode() types.TimerMode {
	return tm.timerSystem.Mode()
}

// TimeLimit 返回倒计时上限
func (tm *TimeManager) TimeLimit() float64 {
	return tm.timerSystem.TimeLimit()
}

// CurrentTimerValue 返回计时器当前值（秒）
func (tm *TimeManager) CurrentTimerValue() float64 {
	return tm.timerSystem.Current()
}

// CountdownExpired 上一次 Tick 中倒计时是否刚好归零
func (tm *TimeManager) CountdownExpired() bool {
	return tm.countdownExpired
}

// --- 显示 ---

// DisplayText 返回最近一次生成的显示文本
func (tm *TimeManager) DisplayText() string {
	return tm.textSystem.Text()
}

// DisplayEnabled 是否启用显示文本
func (tm *TimeManager) DisplayEnabled() bool {
	return tm.textSystem.Enabled()
}

// SetDisplayEnabled 启用或停用显示文本
func (tm *TimeManager) SetDisplayEnabled(enabled bool) {
	tm.textSystem.SetEnabled(enabled)
}

// DisplayPrecision 返回显示精度
func (tm *TimeManager) DisplayPrecision() types.TimerPrecision {
	return tm.textSystem.Precision()
}

// SetDisplayPrecision 设置显示精度
func (tm *TimeManager) SetDisplayPrecision(precision types.TimerPrecision) {
	tm.textSystem.SetPrecision(precision)
}

// SetDisplaySink 替换文本输出端
func (tm *TimeManager) SetDisplaySink(display DisplaySink) {
	tm.textSystem.SetSink(display)
}

// --- 存档 ---

// Snapshot 返回当前计时器与时间缩放的快照
// 过渡中的时间缩放按当前已应用的值记录
func (tm *TimeManager) Snapshot() TimerSnapshot {
	timer := tm.timerSystem.Timer()
	return TimerSnapshot{
		Mode:      timer.Mode,
		Paused:    timer.IsPaused,
		TimeLimit: timer.TimeLimit,
		Current:   timer.Current,
		TimeScale: tm.speed.TimeScale(),
		SavedAt:   time.Now(),
	}
}

// Restore 从快照恢复状态
//
// 返回：
//   - error: 快照数据非法时返回 ErrInvalidArgument，状态保持不变
func (tm *TimeManager) Restore(snapshot TimerSnapshot) error {
	if !utils.IsFinite(snapshot.TimeScale) || snapshot.TimeScale < 0 {
		return fmt.Errorf("snapshot time scale %.3f must be finite and >= 0: %w", snapshot.TimeScale, ErrInvalidArgument)
	}

	timer := tm.timerSystem.Timer()
	timer.Mode = snapshot.Mode
	timer.IsPaused = snapshot.Paused
	timer.TimeLimit = snapshot.TimeLimit
	timer.Current = snapshot.Current
	if err := tm.timerSystem.Restore(timer); err != nil {
		return err
	}

	tm.scaleSystem.SetImmediate(snapshot.TimeScale)
	tm.countdownExpired = false
	tm.textSystem.Update(tm.timerSystem.Current())

	log.Printf("[TimeManager] Restored snapshot: mode=%v, current=%.3f, scale=%.3f", snapshot.Mode, snapshot.Current, snapshot.TimeScale)
	return nil
}
