package audio

import (
	"encoding/binary"
	"fmt"
	"io"
)

// WriteWAV 把合成的 PCM 写成 RIFF/WAVE 文件（16 位双声道）
// 写出的文件可直接放进外部资源目录替换合成音效
func (s *ToneStream) WriteWAV(w io.Writer) error {
	const (
		channels      = 2
		bitsPerSample = 16
	)
	dataLen := uint32(len(s.data))
	header := struct {
		ChunkID       [4]byte
		ChunkSize     uint32
		Format        [4]byte
		Subchunk1ID   [4]byte
		Subchunk1Size uint32
		AudioFormat   uint16
		NumChannels   uint16
		SampleRate    uint32
		ByteRate      uint32
		BlockAlign    uint16
		BitsPerSample uint16
		Subchunk2ID   [4]byte
		Subchunk2Size uint32
	}{
		ChunkID:       [4]byte{'R', 'I', 'F', 'F'},
		ChunkSize:     36 + dataLen,
		Format:        [4]byte{'W', 'A', 'V', 'E'},
		Subchunk1ID:   [4]byte{'f', 'm', 't', ' '},
		Subchunk1Size: 16,
		AudioFormat:   1, // PCM
		NumChannels:   channels,
		SampleRate:    uint32(s.sampleRate),
		ByteRate:      uint32(s.sampleRate * bytesPerFrame),
		BlockAlign:    bytesPerFrame,
		BitsPerSample: bitsPerSample,
		Subchunk2ID:   [4]byte{'d', 'a', 't', 'a'},
		Subchunk2Size: dataLen,
	}
	if err := binary.Write(w, binary.LittleEndian, header); err != nil {
		return fmt.Errorf("write wav header: %w", err)
	}
	if _, err := w.Write(s.data); err != nil {
		return fmt.Errorf("write wav data: %w", err)
	}
	return nil
}
