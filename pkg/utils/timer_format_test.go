package utils

import (
	"testing"

	"github.com/decker502/timemanager/pkg/types"
)

// TestFormatTimerText 测试计时器文本格式化
func TestFormatTimerText(t *testing.T) {
	hms := types.PrecisionHours | types.PrecisionMinutes | types.PrecisionSeconds

	tests := []struct {
		name      string
		value     float64
		precision types.TimerPrecision
		expected  string
	}{
		{
			name:      "未启用天时小时取自总秒数",
			value:     90061.5,
			precision: hms,
			expected:  "25 : 01 : 01",
		},
		{
			name:      "全部单位",
			value:     90061.5,
			precision: types.PrecisionAll,
			expected:  "1 : 01 : 01 : 01 : 500",
		},
		{
			name:      "仅分秒时分钟不扣除小时",
			value:     3725.25,
			precision: types.PrecisionMinutes | types.PrecisionSeconds,
			expected:  "62 : 05",
		},
		{
			name:      "仅秒时显示总秒数",
			value:     125,
			precision: types.PrecisionSeconds,
			expected:  "125",
		},
		{
			name:      "分秒毫秒补零",
			value:     59.75,
			precision: types.PrecisionMinutes | types.PrecisionSeconds | types.PrecisionMilliseconds,
			expected:  "00 : 59 : 750",
		},
		{
			name:      "毫秒三位补零",
			value:     3.0625,
			precision: types.PrecisionSeconds | types.PrecisionMilliseconds,
			expected:  "03 : 062",
		},
		{
			name:      "天不补零",
			value:     12 * 86400,
			precision: types.PrecisionDays | types.PrecisionHours,
			expected:  "12 : 00",
		},
		{
			name:      "零值",
			value:     0,
			precision: hms,
			expected:  "00 : 00 : 00",
		},
		{
			name:      "未启用任何单位",
			value:     42,
			precision: types.PrecisionNone,
			expected:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatTimerText(tt.value, tt.precision)
			if got != tt.expected {
				t.Errorf("FormatTimerText(%v, %v) = %q, 期望 %q", tt.value, tt.precision, got, tt.expected)
			}
		})
	}
}

// TestFormatTimerText_MillisecondsTruncate 测试毫秒截断而非四舍五入
func TestFormatTimerText_MillisecondsTruncate(t *testing.T) {
	// 0.9999 秒 → 999 毫秒（四舍五入会得到 1000）
	got := FormatTimerText(0.9999, types.PrecisionMilliseconds)
	if got != "999" {
		t.Errorf("expected truncated milliseconds 999, got %q", got)
	}
}
