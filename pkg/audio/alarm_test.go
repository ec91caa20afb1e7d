package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"
)

func TestChimeLength(t *testing.T) {
	sr := beep.SampleRate(8000)
	chime := NewChime(sr, 100*time.Millisecond)

	buf := make([][2]float64, 256)
	total := 0
	for {
		n, ok := chime.Stream(buf)
		total += n
		if !ok {
			break
		}
	}

	if want := sr.N(100 * time.Millisecond); total != want {
		t.Errorf("提示音样本数 = %d, 期望 %d", total, want)
	}
}

func TestChimeGenerator_Envelope(t *testing.T) {
	g := &ChimeGenerator{sr: beep.SampleRate(8000), length: 800}
	buf := make([][2]float64, 800)

	n, ok := g.Stream(buf)
	if n != len(buf) || !ok {
		t.Fatalf("Stream = (%d, %v)", n, ok)
	}

	for i, s := range buf {
		if s[0] != s[1] {
			t.Fatalf("样本 %d 左右声道不一致: %v", i, s)
		}
		if math.Abs(s[0]) > 0.25 {
			t.Fatalf("样本 %d 超出振幅: %v", i, s[0])
		}
	}

	// 包络衰减：尾部振幅小于头部
	peak := func(from, to int) float64 {
		m := 0.0
		for _, s := range buf[from:to] {
			m = math.Max(m, math.Abs(s[0]))
		}
		return m
	}
	if peak(700, 800) >= peak(0, 100) {
		t.Error("提示音应逐渐衰减")
	}
}

func TestAlarm_NotInitializedIsNoop(t *testing.T) {
	a := NewAlarm()
	if a.IsInitialized() {
		t.Fatal("新建的 Alarm 不应处于初始化状态")
	}
	a.PlayExpired()
	a.Cleanup()
}

func TestChimePCM16(t *testing.T) {
	sr := beep.SampleRate(8000)
	pcm := ChimePCM16(sr, 50*time.Millisecond)

	// 每帧 2 声道 x 2 字节
	if want := sr.N(50*time.Millisecond) * 4; len(pcm) != want {
		t.Errorf("PCM 长度 = %d, 期望 %d", len(pcm), want)
	}
}

func TestToInt16_Clamps(t *testing.T) {
	tests := []struct {
		in   float64
		want int16
	}{
		{0, 0},
		{1, math.MaxInt16},
		{2, math.MaxInt16},
		{-2, -math.MaxInt16},
	}
	for _, tt := range tests {
		if got := toInt16(tt.in); got != tt.want {
			t.Errorf("toInt16(%v) = %d, 期望 %d", tt.in, got, tt.want)
		}
	}
}
