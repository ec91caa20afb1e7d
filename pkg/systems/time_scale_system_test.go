package systems

import (
	"math"
	"testing"

	"github.com/decker502/timemanager/pkg/utils"
)

// recordingSink 记录每次写入的时间缩放
type recordingSink struct {
	scale  float64
	writes []float64
}

func newRecordingSink(initial float64) *recordingSink {
	return &recordingSink{scale: initial}
}

func (r *recordingSink) TimeScale() float64 { return r.scale }

func (r *recordingSink) SetTimeScale(scale float64) {
	r.scale = scale
	r.writes = append(r.writes, scale)
}

// tickFor 以固定步长推进直到至少经过 duration 秒（多推进一帧容纳浮点误差）
func tickFor(s *TimeScaleSystem, duration, dt float64) {
	steps := int(math.Ceil(duration/dt)) + 1
	for i := 0; i < steps; i++ {
		s.Update(dt)
	}
}

// TestTimeScaleSystem_ReachesTargetExactly 测试过渡结束后精确等于目标值且单调
func TestTimeScaleSystem_ReachesTargetExactly(t *testing.T) {
	tests := []struct {
		name     string
		start    float64
		target   float64
		duration float64
		dt       float64
	}{
		{"减速", 1.0, 0.25, 0.5, 1.0 / 60},
		{"加速", 1.0, 2.0, 1.0, 1.0 / 30},
		{"冻结", 1.0, 0.0, 0.3, 0.016},
		{"从零恢复", 0.0, 1.0, 2.0, 0.1},
		{"大步长", 1.0, 0.5, 0.5, 5.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sink := newRecordingSink(tt.start)
			s := NewTimeScaleSystem(sink, tt.duration, false, nil)

			s.RequestTimeScale(tt.target)
			tickFor(s, tt.duration, tt.dt)

			if s.IsTransitioning() {
				t.Fatal("transition should be complete")
			}
			if s.CurrentTimeScale() != tt.target {
				t.Errorf("CurrentTimeScale() = %v, want exactly %v", s.CurrentTimeScale(), tt.target)
			}
			if sink.scale != tt.target {
				t.Errorf("sink scale = %v, want exactly %v", sink.scale, tt.target)
			}

			// 单调性：每次写入都不会远离目标
			prev := tt.start
			for i, w := range sink.writes {
				if math.Abs(tt.target-w) > math.Abs(tt.target-prev)+1e-12 {
					t.Fatalf("write %d = %v moved away from target (prev %v)", i, w, prev)
				}
				if w < 0 {
					t.Fatalf("write %d = %v is negative", i, w)
				}
				prev = w
			}
		})
	}
}

// TestTimeScaleSystem_StrictlyApproachesWithPositiveDuration 测试 duration>0 时中间值严格逼近
func TestTimeScaleSystem_StrictlyApproachesWithPositiveDuration(t *testing.T) {
	sink := newRecordingSink(1.0)
	s := NewTimeScaleSystem(sink, 1.0, false, nil)
	s.RequestTimeScale(0.0)

	s.Update(0.25)
	if math.Abs(s.CurrentTimeScale()-0.75) > 1e-9 {
		t.Errorf("after 0.25s scale = %v, want 0.75", s.CurrentTimeScale())
	}
	s.Update(0.25)
	if math.Abs(s.CurrentTimeScale()-0.5) > 1e-9 {
		t.Errorf("after 0.5s scale = %v, want 0.5", s.CurrentTimeScale())
	}
	if !s.IsTransitioning() {
		t.Error("transition should still be active")
	}
}

// TestTimeScaleSystem_ZeroDuration 测试时长为 0 时一帧到位
func TestTimeScaleSystem_ZeroDuration(t *testing.T) {
	sink := newRecordingSink(1.0)
	s := NewTimeScaleSystem(sink, 0, false, nil)

	s.RequestTimeScale(0.3)
	s.Update(1.0 / 60)

	if s.CurrentTimeScale() != 0.3 {
		t.Errorf("CurrentTimeScale() = %v, want 0.3 after a single tick", s.CurrentTimeScale())
	}
	if s.IsTransitioning() {
		t.Error("zero-duration transition should finish in one tick")
	}
}

// TestTimeScaleSystem_InvalidTargetClampsToZero 测试负目标与非有限目标等价于 0
func TestTimeScaleSystem_InvalidTargetClampsToZero(t *testing.T) {
	run := func(target float64) []float64 {
		sink := newRecordingSink(1.0)
		s := NewTimeScaleSystem(sink, 0.5, false, nil)
		s.RequestTimeScale(target)
		for i := 0; i < 40; i++ {
			s.Update(1.0 / 60)
		}
		return sink.writes
	}

	zero := run(0)

	tests := []struct {
		name   string
		target float64
	}{
		{"负值", -5},
		{"NaN", math.NaN()},
		{"正无穷", math.Inf(1)},
		{"负无穷", math.Inf(-1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := run(tt.target)
			if len(got) != len(zero) {
				t.Fatalf("write count differs: %d vs %d", len(got), len(zero))
			}
			for i := range zero {
				if got[i] != zero[i] {
					t.Fatalf("write %d differs: %v vs %v", i, got[i], zero[i])
				}
			}
			if got[len(got)-1] != 0 {
				t.Errorf("final scale = %v, want 0", got[len(got)-1])
			}
		})
	}
}

// TestTimeScaleSystem_NonFiniteInputs 测试立即设置、时长与步长的非有限值
func TestTimeScaleSystem_NonFiniteInputs(t *testing.T) {
	t.Run("立即设置 NaN", func(t *testing.T) {
		sink := newRecordingSink(1.0)
		s := NewTimeScaleSystem(sink, 0.5, false, nil)

		s.SetImmediate(math.NaN())
		if s.CurrentTimeScale() != 0 || sink.scale != 0 {
			t.Errorf("current=%v sink=%v, want 0/0", s.CurrentTimeScale(), sink.scale)
		}

		s.SetImmediate(math.Inf(1))
		if s.CurrentTimeScale() != 0 || sink.scale != 0 {
			t.Errorf("current=%v sink=%v, want 0/0", s.CurrentTimeScale(), sink.scale)
		}
	})

	t.Run("过渡时长 NaN", func(t *testing.T) {
		s := NewTimeScaleSystem(newRecordingSink(1.0), math.NaN(), false, nil)
		if s.TransitionDuration() != 0 {
			t.Errorf("TransitionDuration() = %v, want 0", s.TransitionDuration())
		}
		s.SetTransitionDuration(math.Inf(1))
		if s.TransitionDuration() != 0 {
			t.Errorf("TransitionDuration() = %v, want 0", s.TransitionDuration())
		}
	})

	t.Run("NaN 初始值", func(t *testing.T) {
		s := NewTimeScaleSystem(newRecordingSink(math.NaN()), 0.5, false, nil)
		if s.CurrentTimeScale() != 0 {
			t.Errorf("CurrentTimeScale() = %v, want 0", s.CurrentTimeScale())
		}
	})

	t.Run("NaN 步长不推进", func(t *testing.T) {
		sink := newRecordingSink(1.0)
		s := NewTimeScaleSystem(sink, 1.0, false, nil)
		s.RequestTimeScale(0)
		s.Update(0.5)

		s.Update(math.NaN())
		if math.Abs(s.CurrentTimeScale()-0.5) > 1e-9 || math.IsNaN(sink.scale) {
			t.Errorf("current=%v sink=%v, want 0.5", s.CurrentTimeScale(), sink.scale)
		}
		if !s.IsTransitioning() {
			t.Error("NaN delta must not finish the transition")
		}
	})
}

// TestTimeScaleSystem_NewRequestSupersedes 测试新请求覆盖旧过渡并从当前值出发
func TestTimeScaleSystem_NewRequestSupersedes(t *testing.T) {
	for _, allow := range []bool{true, false} {
		sink := newRecordingSink(1.0)
		s := NewTimeScaleSystem(sink, 1.0, allow, nil)

		s.RequestTimeScale(0.0)
		s.Update(0.5) // 到达 0.5

		s.RequestTimeScale(2.0)
		tr := s.Transition()
		if math.Abs(tr.StartScale-0.5) > 1e-9 {
			t.Errorf("allow=%v: new transition starts at %v, want 0.5", allow, tr.StartScale)
		}
		if tr.Elapsed != 0 || tr.TargetScale != 2.0 {
			t.Errorf("allow=%v: unexpected transition %+v", allow, tr)
		}

		s.Update(0.5)
		if math.Abs(s.CurrentTimeScale()-1.25) > 1e-9 {
			t.Errorf("allow=%v: scale = %v, want 1.25", allow, s.CurrentTimeScale())
		}
		s.Update(0.5)
		if s.CurrentTimeScale() != 2.0 {
			t.Errorf("allow=%v: scale = %v, want 2.0", allow, s.CurrentTimeScale())
		}
	}
}

// TestTimeScaleSystem_CancelAndImmediate 测试取消与立即设置
func TestTimeScaleSystem_CancelAndImmediate(t *testing.T) {
	sink := newRecordingSink(1.0)
	s := NewTimeScaleSystem(sink, 1.0, false, nil)

	s.RequestTimeScale(0.0)
	s.Update(0.5)
	s.Cancel()
	s.Update(0.5)

	if math.Abs(s.CurrentTimeScale()-0.5) > 1e-9 {
		t.Errorf("cancelled scale = %v, want 0.5", s.CurrentTimeScale())
	}

	s.RequestTimeScale(2.0)
	s.SetImmediate(-3)
	if s.IsTransitioning() {
		t.Error("SetImmediate should cancel the transition")
	}
	if s.CurrentTimeScale() != 0 || sink.scale != 0 {
		t.Errorf("SetImmediate(-3) = %v/%v, want 0", s.CurrentTimeScale(), sink.scale)
	}
}

// TestTimeScaleSystem_IdleUpdateDoesNotWrite 测试没有过渡时不写入全局缩放
func TestTimeScaleSystem_IdleUpdateDoesNotWrite(t *testing.T) {
	sink := newRecordingSink(0.8)
	s := NewTimeScaleSystem(sink, 0.5, false, nil)

	for i := 0; i < 10; i++ {
		s.Update(0.1)
	}
	if len(sink.writes) != 0 {
		t.Errorf("expected no writes, got %v", sink.writes)
	}
	if s.CurrentTimeScale() != 0.8 {
		t.Errorf("CurrentTimeScale() = %v, want initial sink value 0.8", s.CurrentTimeScale())
	}
}

// TestTimeScaleSystem_EasedTransition 测试非线性缓动同样精确到位
func TestTimeScaleSystem_EasedTransition(t *testing.T) {
	sink := newRecordingSink(1.0)
	s := NewTimeScaleSystem(sink, 0.5, false, utils.EaseOutCubic)

	s.RequestTimeScale(0.2)
	s.Update(0.25)
	// EaseOutCubic(0.5) = 0.875 → 1.0 + (0.2-1.0)*0.875 = 0.3
	if math.Abs(s.CurrentTimeScale()-0.3) > 1e-9 {
		t.Errorf("eased midpoint = %v, want 0.3", s.CurrentTimeScale())
	}
	tickFor(s, 0.5, 0.1)
	if s.CurrentTimeScale() != 0.2 {
		t.Errorf("final = %v, want 0.2", s.CurrentTimeScale())
	}
}

// TestTimeScaleSystem_DurationSetters 测试时长与打断标志的设置
func TestTimeScaleSystem_DurationSetters(t *testing.T) {
	s := NewTimeScaleSystem(newRecordingSink(1), -1, true, nil)
	if s.TransitionDuration() != 0 {
		t.Errorf("negative duration should clamp to 0, got %v", s.TransitionDuration())
	}

	s.SetTransitionDuration(0.75)
	if s.TransitionDuration() != 0.75 {
		t.Errorf("TransitionDuration() = %v, want 0.75", s.TransitionDuration())
	}
	s.SetTransitionDuration(-2)
	if s.TransitionDuration() != 0 {
		t.Errorf("TransitionDuration() = %v, want 0", s.TransitionDuration())
	}

	if !s.AllowInterruption() {
		t.Error("AllowInterruption() should be true")
	}
	s.SetAllowInterruption(false)
	if s.AllowInterruption() {
		t.Error("AllowInterruption() should be false")
	}
}
