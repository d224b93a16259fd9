package audio

import (
	"encoding/binary"
	"io"
)

const (
	// CanonicalSampleRate is the rate every normalized waveform is stored at.
	CanonicalSampleRate = 16000
	// CanonicalChannels is the channel count of a normalized waveform.
	CanonicalChannels = 1
	// CanonicalBitDepth is the sample width of a normalized waveform.
	CanonicalBitDepth = 16

	formatPCM = 1
)

// WAVHeader represents the WAV file header (44 bytes for PCM)
type WAVHeader struct {
	// RIFF Chunk (12 bytes)
	ChunkID   [4]byte
	ChunkSize uint32
	Format    [4]byte

	// fmt Subchunk (16 bytes)
	Subchunk1ID   [4]byte
	Subchunk1Size uint32
	AudioFormat   uint16
	NumChannels   uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16

	// data Subchunk (8 bytes)
	Subchunk2ID   [4]byte
	Subchunk2Size uint32
}

// NewWAVHeader returns a 16-bit PCM header for pcmLen bytes of audio.
func NewWAVHeader(pcmLen uint32, sampleRate uint32, channels uint16) WAVHeader {
	blockAlign := channels * CanonicalBitDepth / 8
	header := WAVHeader{
		ChunkID:       [4]byte{'R', 'I', 'F', 'F'},
		Format:        [4]byte{'W', 'A', 'V', 'E'},
		Subchunk1ID:   [4]byte{'f', 'm', 't', ' '},
		Subchunk1Size: 16,
		AudioFormat:   formatPCM,
		NumChannels:   channels,
		SampleRate:    sampleRate,
		ByteRate:      sampleRate * uint32(blockAlign),
		BlockAlign:    blockAlign,
		BitsPerSample: CanonicalBitDepth,
		Subchunk2ID:   [4]byte{'d', 'a', 't', 'a'},
		Subchunk2Size: pcmLen,
	}

	header.ChunkSize = 36 + header.Subchunk2Size

	return header
}

func (h *WAVHeader) Write(writer io.Writer) error {
	return binary.Write(writer, binary.LittleEndian, h)
}

// ReadWAVHeader reads a canonical 44-byte header. Files carrying extra
// chunks before "data" are not handled here; use Decode for those.
func ReadWAVHeader(r io.Reader) (WAVHeader, error) {
	var h WAVHeader
	err := binary.Read(r, binary.LittleEndian, &h)
	return h, err
}

// IsCanonical reports whether the header describes mono 16 kHz 16-bit PCM.
func (h WAVHeader) IsCanonical() bool {
	return h.AudioFormat == formatPCM &&
		h.NumChannels == CanonicalChannels &&
		h.SampleRate == CanonicalSampleRate &&
		h.BitsPerSample == CanonicalBitDepth
}
