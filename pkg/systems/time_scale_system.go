package systems

import (
	"log"

	"github.com/decker502/timemanager/pkg/components"
	"github.com/decker502/timemanager/pkg/utils"
)

// TimeScaleSink 全局时间缩放写入端口
//
// 进程内唯一的"模拟速度"变量。TimeScaleSystem 在过渡期间是它唯一的写入者，
// 其他子系统随时可以读取，读到的可能是过渡途中的中间值。
type TimeScaleSink interface {
	// TimeScale 返回当前生效的时间缩放
	TimeScale() float64
	// SetTimeScale 写入新的时间缩放
	SetTimeScale(scale float64)
}

// TimeScaleSystem 时间缩放过渡系统
//
// 职责：
//   - 接收目标时间缩放请求（负值钳制为 0）
//   - 在 transitionDuration 秒（真实时间）内把全局时间缩放平滑过渡到目标值
//   - 每一步都写入 TimeScaleSink 并记录 currentScale 供外部观察
//
// 架构说明：
//   - 过渡任务保存在 TimeScaleTransitionComponent 中，由 Update 推进
//   - 同一时间最多只有一个过渡任务，新请求直接覆盖旧任务
type TimeScaleSystem struct {
	sink       TimeScaleSink
	transition components.TimeScaleTransitionComponent
	easing     utils.EasingFunc

	transitionDuration float64
	allowInterruption  bool

	// currentScale 最近一次由本系统写入的时间缩放
	currentScale float64
}

// NewTimeScaleSystem 创建时间缩放过渡系统
//
// 参数：
//   - sink: 全局时间缩放端口，不能为 nil
//   - transitionDuration: 过渡时长（秒），负值与非有限值按 0 处理
//   - allowInterruption: 是否允许新请求打断正在进行的过渡
//   - easing: 过渡曲线，nil 时使用线性
//
// 返回：
//   - *TimeScaleSystem: 系统实例
func NewTimeScaleSystem(sink TimeScaleSink, transitionDuration float64, allowInterruption bool, easing utils.EasingFunc) *TimeScaleSystem {
	if easing == nil {
		easing = utils.EaseLinear
	}
	return &TimeScaleSystem{
		sink:               sink,
		easing:             easing,
		transitionDuration: utils.ClampNonNegative(transitionDuration),
		allowInterruption:  allowInterruption,
		currentScale:       utils.ClampNonNegative(sink.TimeScale()),
	}
}

// RequestTimeScale 请求把时间缩放过渡到目标值
//
// 负的目标值与 NaN、无穷会被静默钳制为 0，不报错。
// 如果已有过渡在进行，无论 allowInterruption 取值如何，都会取消旧过渡
// 并从当前生效的缩放值重新开始（allowInterruption 只影响日志）。
//
// 参数：
//   - target: 目标时间缩放
func (s *TimeScaleSystem) RequestTimeScale(target float64) {
	target = utils.ClampNonNegative(target)

	if s.transition.IsActive {
		if s.allowInterruption {
			log.Printf("[TimeScaleSystem] Interrupting transition %.3f -> %.3f", s.transition.StartScale, s.transition.TargetScale)
		} else {
			log.Printf("[TimeScaleSystem] Cancelling transition %.3f -> %.3f before restart", s.transition.StartScale, s.transition.TargetScale)
		}
	}

	s.transition = components.TimeScaleTransitionComponent{
		StartScale:  utils.ClampNonNegative(s.sink.TimeScale()),
		TargetScale: target,
		Elapsed:     0,
		Duration:    s.transitionDuration,
		IsActive:    true,
	}

	log.Printf("[TimeScaleSystem] Transition %.3f -> %.3f over %.3fs", s.transition.StartScale, target, s.transitionDuration)
}

// Update 推进过渡任务
//
// 参数：
//   - unscaledDelta: 自上一帧以来的真实时间（秒），负值与非有限值按 0 处理
func (s *TimeScaleSystem) Update(unscaledDelta float64) {
	if !s.transition.IsActive {
		return
	}
	unscaledDelta = utils.ClampNonNegative(unscaledDelta)

	s.transition.Elapsed += unscaledDelta

	if s.transition.Elapsed >= s.transition.Duration {
		// 到达终点，精确对齐目标值
		s.apply(s.transition.TargetScale)
		s.transition.IsActive = false
		log.Printf("[TimeScaleSystem] Transition complete: %.3f", s.currentScale)
		return
	}

	progress := utils.Clamp01(s.transition.Elapsed / s.transition.Duration)
	s.apply(utils.Lerp(s.transition.StartScale, s.transition.TargetScale, s.easing(progress)))
}

// SetImmediate 立即设置时间缩放（负值与非有限值按 0 处理），并取消正在进行的过渡
func (s *TimeScaleSystem) SetImmediate(scale float64) {
	s.transition.IsActive = false
	s.apply(scale)
}

// Cancel 取消正在进行的过渡，时间缩放停留在当前值
func (s *TimeScaleSystem) Cancel() {
	if s.transition.IsActive {
		log.Printf("[TimeScaleSystem] Transition cancelled at %.3f", s.currentScale)
	}
	s.transition.IsActive = false
}

func (s *TimeScaleSystem) apply(scale float64) {
	scale = utils.ClampNonNegative(scale)
	s.sink.SetTimeScale(scale)
	s.currentScale = scale
}

// CurrentTimeScale 返回最近一次写入的时间缩放
func (s *TimeScaleSystem) CurrentTimeScale() float64 {
	return s.currentScale
}

// IsTransitioning 是否有过渡正在进行
func (s *TimeScaleSystem) IsTransitioning() bool {
	return s.transition.IsActive
}

// Transition 返回当前过渡任务的副本
func (s *TimeScaleSystem) Transition() components.TimeScaleTransitionComponent {
	return s.transition
}

// TransitionDuration 返回过渡时长（秒）
func (s *TimeScaleSystem) TransitionDuration() float64 {
	return s.transitionDuration
}

// SetTransitionDuration 设置之后请求使用的过渡时长，负值与非有限值按 0 处理
// 不影响正在进行的过渡
func (s *TimeScaleSystem) SetTransitionDuration(duration float64) {
	s.transitionDuration = utils.ClampNonNegative(duration)
}

// AllowInterruption 返回是否允许打断
func (s *TimeScaleSystem) AllowInterruption() bool {
	return s.allowInterruption
}

// SetAllowInterruption 设置是否允许打断
func (s *TimeScaleSystem) SetAllowInterruption(allow bool) {
	s.allowInterruption = allow
}
