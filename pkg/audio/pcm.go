package audio

import (
	"encoding/binary"
	"math"
	"time"

	"github.com/gopxl/beep"
)

// ChimePCM16 把提示音渲染为 16 位有符号小端立体声 PCM
// 供 ebiten/audio 这类需要原始字节的播放器使用
func ChimePCM16(sr beep.SampleRate, d time.Duration) []byte {
	return RenderPCM16(NewChime(sr, d))
}

// RenderPCM16 读完一个有限长度的流并转换为 16 位 PCM
func RenderPCM16(streamer beep.Streamer) []byte {
	var out []byte
	buf := make([][2]float64, 512)
	for {
		n, ok := streamer.Stream(buf)
		for _, s := range buf[:n] {
			out = binary.LittleEndian.AppendUint16(out, uint16(toInt16(s[0])))
			out = binary.LittleEndian.AppendUint16(out, uint16(toInt16(s[1])))
		}
		if !ok {
			return out
		}
	}
}

func toInt16(v float64) int16 {
	v = math.Max(-1, math.Min(1, v))
	return int16(v * math.MaxInt16)
}
