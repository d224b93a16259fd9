package tts

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/mudler/xlog"
	"github.com/sashabaranov/go-openai"

	"github.com/phonolab/phonolab/pkg/xio"
)

const (
	DefaultModel = "tts-1"
	DefaultVoice = "alloy"
)

var (
	ErrMissingText   = errors.New("text is required")
	ErrMissingAPIKey = errors.New("api key is required")
)

// Options configures the speech client. Empty fields fall back to the
// OpenAI defaults.
type Options struct {
	BaseURL    string
	Model      string
	Voice      string
	HTTPClient *http.Client
}

// Synthesizer turns text into MP3 audio through the OpenAI speech API.
// The API key is supplied per call.
type Synthesizer struct {
	opts Options
}

func New(opts Options) *Synthesizer {
	if opts.Model == "" {
		opts.Model = DefaultModel
	}
	if opts.Voice == "" {
		opts.Voice = DefaultVoice
	}
	return &Synthesizer{opts: opts}
}

func (s *Synthesizer) Model() string { return s.opts.Model }
func (s *Synthesizer) Voice() string { return s.opts.Voice }

func (s *Synthesizer) client(apiKey string) *openai.Client {
	cfg := openai.DefaultConfig(apiKey)
	if s.opts.BaseURL != "" {
		cfg.BaseURL = s.opts.BaseURL
	}
	if s.opts.HTTPClient != nil {
		cfg.HTTPClient = s.opts.HTTPClient
	}
	return openai.NewClientWithConfig(cfg)
}

// Synthesize streams the MP3 for text into w and returns the number of bytes
// written. Missing text or key fail before any request is made.
func (s *Synthesizer) Synthesize(ctx context.Context, text, apiKey string, w io.Writer) (int64, error) {
	if text == "" {
		return 0, ErrMissingText
	}
	if apiKey == "" {
		return 0, ErrMissingAPIKey
	}

	xlog.Debug("Requesting speech", "model", s.opts.Model, "voice", s.opts.Voice, "chars", len(text))

	resp, err := s.client(apiKey).CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          openai.SpeechModel(s.opts.Model),
		Input:          text,
		Voice:          openai.SpeechVoice(s.opts.Voice),
		ResponseFormat: openai.SpeechResponseFormatMp3,
	})
	if err != nil {
		return 0, fmt.Errorf("speech request failed: %w", err)
	}
	defer resp.Close()

	n, err := xio.Copy(ctx, w, resp)
	if err != nil {
		return n, fmt.Errorf("reading speech response: %w", err)
	}
	return n, nil
}

// SynthesizeToFile writes the MP3 for text to dst. dst is removed on failure.
func (s *Synthesizer) SynthesizeToFile(ctx context.Context, text, apiKey, dst string) error {
	if text == "" {
		return ErrMissingText
	}
	if apiKey == "" {
		return ErrMissingAPIKey
	}
	f, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := s.Synthesize(ctx, text, apiKey, f); err != nil {
		f.Close()
		os.Remove(dst)
		return err
	}
	return f.Close()
}
