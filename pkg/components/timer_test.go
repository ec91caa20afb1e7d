package components

import (
	"testing"

	"github.com/decker502/timemanager/pkg/types"
)

// TestTimerComponent_ZeroValue 测试零值即为暂停前的倒计时初始状态
func TestTimerComponent_ZeroValue(t *testing.T) {
	timer := &TimerComponent{}

	if timer.Mode != types.TimerCountDown {
		t.Errorf("Expected zero Mode = countDown, got %v", timer.Mode)
	}
	if timer.TimeLimit != 0 || timer.Current != 0 {
		t.Errorf("Expected zero TimeLimit/Current, got %f/%f", timer.TimeLimit, timer.Current)
	}
	if timer.Expired {
		t.Error("Expected Expired = false")
	}
}

// TestTimeScaleTransitionComponent_Inactive 测试零值过渡组件处于非活动状态
func TestTimeScaleTransitionComponent_Inactive(t *testing.T) {
	transition := &TimeScaleTransitionComponent{}

	if transition.IsActive {
		t.Error("Expected zero-value transition to be inactive")
	}
	if transition.Duration != 0 || transition.Elapsed != 0 {
		t.Errorf("Expected zero Duration/Elapsed, got %f/%f", transition.Duration, transition.Elapsed)
	}
}
