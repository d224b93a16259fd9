package utils

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"

	cp "github.com/otiai10/copy"

	laudio "github.com/phonolab/phonolab/pkg/audio"
)

var (
	// ErrFFmpegNotFound is returned when the transcoder binary cannot be resolved.
	ErrFFmpegNotFound = errors.New("ffmpeg not found")
	// ErrConversionFailed is returned when ffmpeg exits with a non-zero status.
	ErrConversionFailed = errors.New("audio conversion failed")
)

// Normalizer turns arbitrary audio into mono 16 kHz s16le WAV using ffmpeg.
type Normalizer struct {
	ffmpegPath string
}

// NewNormalizer returns a normalizer invoking the given ffmpeg binary.
// An empty path means "ffmpeg" resolved from PATH.
func NewNormalizer(ffmpegPath string) *Normalizer {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	return &Normalizer{ffmpegPath: ffmpegPath}
}

// Available reports whether the ffmpeg binary can be resolved.
func (n *Normalizer) Available() bool {
	_, err := exec.LookPath(n.ffmpegPath)
	return err == nil
}

func (n *Normalizer) ffmpegCommand(ctx context.Context, args []string) (string, error) {
	bin, err := exec.LookPath(n.ffmpegPath)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrFFmpegNotFound, n.ffmpegPath)
	}
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Env = []string{}
	out, err := cmd.CombinedOutput()
	return string(out), err
}

// AudioToWav writes a canonical copy of src to dst (16 kHz, mono, s16le).
// WAV files already in the target format are copied as they are;
// everything else is converted via ffmpeg. src is never modified.
func (n *Normalizer) AudioToWav(ctx context.Context, src, dst string) error {
	if isTargetWav(src) {
		return cp.Copy(src, dst)
	}
	return n.convertWithFFmpeg(ctx, src, dst)
}

// Normalize converts src into a new file owned by scope and returns its path.
func (n *Normalizer) Normalize(ctx context.Context, src string, scope *TempScope) (string, error) {
	dst := scope.Path(".wav")
	if err := n.AudioToWav(ctx, src, dst); err != nil {
		return "", err
	}
	return dst, nil
}

// isTargetWav returns true when src is a valid WAV already in the
// target format (16 kHz, mono, 16-bit PCM).
func isTargetWav(src string) bool {
	f, err := os.Open(src)
	if err != nil {
		return false
	}
	defer f.Close()

	hdr, err := laudio.ReadWAVHeader(f)
	if err != nil {
		return false
	}
	return string(hdr.ChunkID[:]) == "RIFF" && string(hdr.Subchunk2ID[:]) == "data" && hdr.IsCanonical()
}

func (n *Normalizer) convertWithFFmpeg(ctx context.Context, src, dst string) error {
	commandArgs := []string{
		"-nostdin", "-loglevel", "error", "-y",
		"-i", src,
		"-ar", strconv.Itoa(laudio.CanonicalSampleRate),
		"-ac", strconv.Itoa(laudio.CanonicalChannels),
		"-c:a", "pcm_s16le",
		"-f", "wav",
		dst,
	}
	out, err := n.ffmpegCommand(ctx, commandArgs)
	if err != nil {
		if errors.Is(err, ErrFFmpegNotFound) {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: %v out: %s", ErrConversionFailed, err, out)
	}
	return nil
}
