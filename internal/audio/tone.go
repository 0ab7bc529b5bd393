package audio

import (
	"fmt"
	"io"
	"math"
	"time"
)

// Waveform 振荡器波形
type Waveform int

const (
	WaveSine Waveform = iota
	WaveTriangle
	WaveSquare
)

// ParseWaveform 解析波形名称，空字符串为 sine
func ParseWaveform(name string) (Waveform, error) {
	switch name {
	case "", "sine":
		return WaveSine, nil
	case "triangle":
		return WaveTriangle, nil
	case "square":
		return WaveSquare, nil
	}
	return WaveSine, fmt.Errorf("unknown waveform %q", name)
}

// Note 一个音符，Freq 为 0 表示休止
type Note struct {
	Freq     float64
	Duration time.Duration
}

// Tone 合成音效的描述
type Tone struct {
	Notes    []Note
	Waveform Waveform
	// Gain 0 ~ 1，避免多个音效叠加时削波
	Gain float64
	// Fade 每个音符开头和结尾的线性淡入淡出时长，消除爆音
	Fade time.Duration
}

// ToneStream 合成后的 PCM 流（16 位有符号小端、双声道）
// 满足 Ebitengine audio.Player 需要的 io.ReadSeeker 和 Length
type ToneStream struct {
	data       []byte
	sampleRate int
	offset     int64
}

const bytesPerFrame = 4 // 2 声道 * 16 位

// Synthesize 按采样率生成音效的完整 PCM 数据
func Synthesize(t Tone, sampleRate int) (*ToneStream, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("invalid sample rate: %d", sampleRate)
	}
	if len(t.Notes) == 0 {
		return nil, fmt.Errorf("tone has no notes")
	}
	gain := t.Gain
	if gain <= 0 || gain > 1 {
		gain = 0.5
	}

	total := 0
	for _, n := range t.Notes {
		if n.Duration <= 0 {
			return nil, fmt.Errorf("note %.1fHz has non-positive duration", n.Freq)
		}
		total += durationFrames(n.Duration, sampleRate)
	}

	data := make([]byte, 0, total*bytesPerFrame)
	fadeFrames := durationFrames(t.Fade, sampleRate)
	for _, n := range t.Notes {
		frames := durationFrames(n.Duration, sampleRate)
		fade := min(fadeFrames, frames/2)
		for i := 0; i < frames; i++ {
			var v float64
			if n.Freq > 0 {
				phase := math.Mod(float64(i)*n.Freq/float64(sampleRate), 1)
				v = oscillate(t.Waveform, phase)
			}
			env := 1.0
			if fade > 0 {
				if i < fade {
					env = float64(i) / float64(fade)
				} else if i >= frames-fade {
					env = float64(frames-1-i) / float64(fade)
				}
			}
			s := int16(v * env * gain * math.MaxInt16)
			lo, hi := byte(s), byte(uint16(s)>>8)
			data = append(data, lo, hi, lo, hi)
		}
	}

	return &ToneStream{data: data, sampleRate: sampleRate}, nil
}

func durationFrames(d time.Duration, sampleRate int) int {
	return int(int64(d) * int64(sampleRate) / int64(time.Second))
}

// oscillate 返回 [-1, 1] 范围内的采样值，phase 为 [0, 1)
func oscillate(w Waveform, phase float64) float64 {
	switch w {
	case WaveTriangle:
		return 1 - 4*math.Abs(phase-0.5)
	case WaveSquare:
		if phase < 0.5 {
			return 1
		}
		return -1
	default:
		return math.Sin(2 * math.Pi * phase)
	}
}

// Read implements io.Reader.
func (s *ToneStream) Read(p []byte) (int, error) {
	if s.offset >= int64(len(s.data)) {
		return 0, io.EOF
	}
	n := copy(p, s.data[s.offset:])
	s.offset += int64(n)
	return n, nil
}

// Seek implements io.Seeker.
func (s *ToneStream) Seek(offset int64, whence int) (int64, error) {
	var newOffset int64
	switch whence {
	case io.SeekStart:
		newOffset = offset
	case io.SeekCurrent:
		newOffset = s.offset + offset
	case io.SeekEnd:
		newOffset = int64(len(s.data)) + offset
	default:
		return 0, fmt.Errorf("invalid whence: %d", whence)
	}
	if newOffset < 0 {
		return 0, fmt.Errorf("negative position: %d", newOffset)
	}
	s.offset = newOffset
	return newOffset, nil
}

// Length 返回 PCM 数据总字节数
func (s *ToneStream) Length() int64 {
	return int64(len(s.data))
}

// Duration 返回音效时长
func (s *ToneStream) Duration() time.Duration {
	frames := len(s.data) / bytesPerFrame
	return time.Duration(frames) * time.Second / time.Duration(s.sampleRate)
}
