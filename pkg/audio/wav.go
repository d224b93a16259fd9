package audio

import (
	"errors"
	"fmt"
	"math"
	"os"
	"time"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/phonolab/phonolab/pkg/sound"
)

// ErrInvalidWAV is returned when a file cannot be parsed as RIFF/WAVE.
var ErrInvalidWAV = errors.New("not a valid WAV file")

// Info describes a WAV file without loading its samples.
type Info struct {
	SampleRate int
	Channels   int
	BitDepth   int
	Duration   time.Duration
}

// Waveform holds mono samples scaled to [-1, 1].
type Waveform struct {
	Samples    []float32
	SampleRate int
	// Channels is the channel count of the source before down-mixing.
	Channels int
}

// Duration returns the playback length of the waveform.
func (w *Waveform) Duration() time.Duration {
	if w.SampleRate <= 0 {
		return 0
	}
	return time.Duration(float64(len(w.Samples)) / float64(w.SampleRate) * float64(time.Second))
}

// Inspect reads the header of the WAV file at path.
func Inspect(path string) (Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return Info{}, err
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return Info{}, ErrInvalidWAV
	}
	dur, err := dec.Duration()
	if err != nil {
		return Info{}, fmt.Errorf("reading duration: %w", err)
	}
	return Info{
		SampleRate: int(dec.SampleRate),
		Channels:   int(dec.NumChans),
		BitDepth:   int(dec.BitDepth),
		Duration:   dur,
	}, nil
}

// IsWAV reports whether path holds a WAV file go-audio can decode.
func IsWAV(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()
	return wav.NewDecoder(f).IsValidFile()
}

// Decode loads the WAV file at path and down-mixes it to mono.
func Decode(path string) (*Waveform, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, ErrInvalidWAV
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("reading PCM data: %w", err)
	}
	if buf.Format == nil || buf.Format.NumChannels < 1 {
		return nil, fmt.Errorf("%w: missing channel layout", ErrInvalidWAV)
	}

	bitDepth := buf.SourceBitDepth
	if bitDepth == 0 {
		bitDepth = int(dec.BitDepth)
	}
	interleaved := scaleInts(buf.Data, bitDepth)

	return &Waveform{
		Samples:    sound.DownmixFloat32(interleaved, buf.Format.NumChannels),
		SampleRate: buf.Format.SampleRate,
		Channels:   buf.Format.NumChannels,
	}, nil
}

// scaleInts maps integer PCM to [-1, 1]. 8-bit WAV data is unsigned.
func scaleInts(data []int, bitDepth int) []float32 {
	out := make([]float32, len(data))
	if bitDepth <= 0 {
		bitDepth = CanonicalBitDepth
	}
	factor := math.Pow(2, float64(bitDepth-1))
	offset := 0.0
	if bitDepth == 8 {
		offset = factor
	}
	for i, v := range data {
		out[i] = float32((float64(v) - offset) / factor)
	}
	return out
}

// WriteWav writes mono 16-bit PCM samples to path.
func WriteWav(path string, samples []int16, sampleRate int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	enc := wav.NewEncoder(f, sampleRate, CanonicalBitDepth, CanonicalChannels, formatPCM)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{SampleRate: sampleRate, NumChannels: CanonicalChannels},
		SourceBitDepth: CanonicalBitDepth,
		Data:           sound.ConvertInt16ToInt(samples),
	}
	if err := enc.Write(buf); err != nil {
		f.Close()
		return fmt.Errorf("encoding wav: %w", err)
	}
	if err := enc.Close(); err != nil {
		f.Close()
		return fmt.Errorf("finalizing wav: %w", err)
	}
	return f.Close()
}
