//go:build !mobile

package utils

import "testing"

// TestIsMobile_Desktop 测试桌面端编译时由环境变量决定是否模拟移动端
func TestIsMobile_Desktop(t *testing.T) {
	tests := []struct {
		name string
		env  string
		want bool
	}{
		{"未设置", "", false},
		{"启用模拟", "1", true},
		{"其他值不启用", "yes", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TIMEMANAGER_MOBILE_EMULATE", tt.env)
			if got := IsMobile(); got != tt.want {
				t.Errorf("IsMobile() = %v, 期望 %v", got, tt.want)
			}
		})
	}
}
