package application

import (
	"fmt"
	"os"

	"github.com/mudler/xlog"

	"github.com/phonolab/phonolab/core/config"
	"github.com/phonolab/phonolab/pkg/alignment"
)

// New builds the application, loading the alignment model described by the
// configuration.
func New(opts ...config.AppOption) (*Application, error) {
	options := config.NewApplicationConfig(opts...)

	bundle, err := loadAlignmentBundle(options)
	if err != nil {
		return nil, err
	}
	app, err := start(options, bundle)
	if err != nil && bundle != nil {
		bundle.Close()
	}
	return app, err
}

// NewWithBundle builds the application around an already constructed
// alignment bundle.
func NewWithBundle(bundle *alignment.Bundle, opts ...config.AppOption) (*Application, error) {
	return start(config.NewApplicationConfig(opts...), bundle)
}

func start(options *config.ApplicationConfig, bundle *alignment.Bundle) (*Application, error) {
	xlog.Info("Starting phonolab", "address", options.Address, "tempDir", options.TempDir, "staticDir", options.StaticDir)

	if options.TempDir != "" {
		if err := os.MkdirAll(options.TempDir, 0750); err != nil {
			return nil, fmt.Errorf("unable to create TempDir: %q", err)
		}
	}

	application := newApplication(options, bundle)

	if !application.Normalizer().Available() {
		xlog.Warn("ffmpeg not found, audio conversion will fail", "path", options.FFmpegPath)
	}
	if bundle == nil {
		xlog.Warn("No alignment model configured, forced alignment is disabled")
	}

	return application, nil
}

func loadAlignmentBundle(options *config.ApplicationConfig) (*alignment.Bundle, error) {
	var cfg *alignment.BundleConfig
	switch {
	case options.AlignmentConfigFile != "":
		c, err := alignment.LoadBundleConfig(options.AlignmentConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = c
	case options.AlignmentModel != "":
		cfg = &alignment.BundleConfig{Model: options.AlignmentModel}
	default:
		return nil, nil
	}
	if options.AlignmentModel != "" {
		cfg.Model = options.AlignmentModel
	}
	if options.AlignmentThreads > 0 {
		cfg.Threads = options.AlignmentThreads
	}

	bundle, err := alignment.Load(cfg, options.ONNXRuntimeLibrary)
	if err != nil {
		return nil, fmt.Errorf("loading alignment model: %w", err)
	}
	return bundle, nil
}
