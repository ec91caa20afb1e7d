package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/decker502/timemanager/pkg/types"
)

// TimerTextSeparator 计时器文本各单位之间的分隔符
const TimerTextSeparator = " : "

const (
	secondsPerDay    = 86400
	secondsPerHour   = 3600
	secondsPerMinute = 60
)

// FormatTimerText 将计时器秒数格式化为显示文本
//
// 按 天 → 时 → 分 → 秒 → 毫秒 的固定顺序输出已启用的单位，用 " : " 连接。
// 较大单位只有在启用时才会从剩余秒数中扣除，
// 例如未启用"天"时，小时数直接由总秒数计算（90061 秒 → "25" 小时）。
//
// 格式规则：
//   - 天：不补零
//   - 时/分/秒：两位补零
//   - 毫秒：三位补零，取小数部分 ×1000 后截断（不四舍五入）
//
// 参数：
//   - value: 计时器当前值（秒）
//   - precision: 需要显示的单位集合
//
// 返回：
//   - string: 格式化后的文本，未启用任何单位时返回空字符串
func FormatTimerText(value float64, precision types.TimerPrecision) string {
	remaining := int(value)
	parts := make([]string, 0, 5)

	if precision.Has(types.PrecisionDays) {
		parts = append(parts, strconv.Itoa(remaining/secondsPerDay))
		remaining %= secondsPerDay
	}
	if precision.Has(types.PrecisionHours) {
		parts = append(parts, fmt.Sprintf("%02d", remaining/secondsPerHour))
		remaining %= secondsPerHour
	}
	if precision.Has(types.PrecisionMinutes) {
		parts = append(parts, fmt.Sprintf("%02d", remaining/secondsPerMinute))
		remaining %= secondsPerMinute
	}
	if precision.Has(types.PrecisionSeconds) {
		parts = append(parts, fmt.Sprintf("%02d", remaining))
	}
	if precision.Has(types.PrecisionMilliseconds) {
		milliseconds := int(math.Mod(value, 1) * 1000)
		parts = append(parts, fmt.Sprintf("%03d", milliseconds))
	}

	return strings.Join(parts, TimerTextSeparator)
}
