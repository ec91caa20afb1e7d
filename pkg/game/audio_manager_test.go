package game

import "testing"

func TestAudioManager_NilContextIsMuted(t *testing.T) {
	am := NewAudioManager(nil)

	if !am.IsMuted() {
		t.Error("没有音频上下文时应处于静音模式")
	}
	if am.PlayExpired() {
		t.Error("静音模式下 PlayExpired 应返回 false")
	}

	// 没有播放器时取消静音也不能播放
	am.SetMuted(false)
	if am.PlayExpired() {
		t.Error("没有播放器时 PlayExpired 应返回 false")
	}
}

func TestAudioManager_SetVolumeClamps(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"正常值", 0.4, 0.4},
		{"负值钳制为0", -1, 0},
		{"超出钳制为1", 3, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			am := NewAudioManager(nil)
			am.SetVolume(tt.in)
			if am.Volume() != tt.want {
				t.Errorf("Volume() = %v, 期望 %v", am.Volume(), tt.want)
			}
		})
	}
}
