package components

// TimeScaleTransitionComponent 时间缩放过渡组件
//
// 表示一个可恢复的插值任务：每个 tick 由 TimeScaleSystem 推进，
// 取消即用新的任务覆盖旧任务，不需要协程或挂起。
//
// 时间单位：秒（不受时间缩放影响的真实时间）
type TimeScaleTransitionComponent struct {
	StartScale  float64 // 过渡开始时实际生效的时间缩放
	TargetScale float64 // 目标时间缩放（已钳制为 >= 0）
	Elapsed     float64 // 已经过的真实时间
	Duration    float64 // 过渡总时长，0 表示下一帧立即到位

	// IsActive 是否仍在过渡中
	// 完成或被取消后为 false
	IsActive bool
}
