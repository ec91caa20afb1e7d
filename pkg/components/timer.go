package components

import "github.com/decker502/timemanager/pkg/types"

// TimerComponent 通用计时器组件
// 存储正计时/倒计时的运行状态，供 TimerSystem 使用
// 注意：组件仅存储数据，不包含逻辑
type TimerComponent struct {
	Mode      types.TimerMode // 计时模式（正计时/倒计时）
	IsPaused  bool            // 是否暂停，暂停时不推进
	TimeLimit float64         // 倒计时上限（秒），仅倒计时模式有意义，始终 >= 0
	Current   float64         // 当前计数（秒）：正计时为已过时间，倒计时为剩余时间

	// Expired 本帧倒计时是否刚好归零
	// 由 TimerSystem.Update 在归零的那一帧置为 true，下一帧开始时清除
	Expired bool
}
