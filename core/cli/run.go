package cli

import (
	"context"
	"errors"
	"fmt"
	nethttp "net/http"
	"time"

	"github.com/mudler/xlog"

	"github.com/phonolab/phonolab/core/application"
	cliContext "github.com/phonolab/phonolab/core/cli/context"
	"github.com/phonolab/phonolab/core/config"
	"github.com/phonolab/phonolab/core/http"
	"github.com/phonolab/phonolab/internal"
	"github.com/phonolab/phonolab/pkg/signals"
)

type RunCMD struct {
	AudioFlags     `embed:""`
	AlignmentFlags `embed:""`
	SpeechFlags    `embed:""`

	Address                string        `env:"PHONOLAB_ADDRESS,ADDRESS" default:":8080" help:"Bind address for the API server" group:"api"`
	StaticDir              string        `env:"PHONOLAB_STATIC_DIR,STATIC_DIR" type:"path" default:"${basepath}/frontend/build" help:"Directory holding the built web app" group:"api"`
	UploadLimit            int           `env:"PHONOLAB_UPLOAD_LIMIT,UPLOAD_LIMIT" default:"50" help:"Default upload-limit in MB" group:"api"`
	MaxAlignmentUpload     int64         `env:"PHONOLAB_MAX_ALIGNMENT_UPLOAD" default:"10485760" help:"Largest audio file accepted for forced alignment, in bytes" group:"api"`
	ShutdownTimeout        time.Duration `env:"PHONOLAB_SHUTDOWN_TIMEOUT" default:"10s" help:"Time allowed for in flight requests on shutdown" group:"api"`
	DisableMetricsEndpoint bool          `env:"PHONOLAB_DISABLE_METRICS_ENDPOINT,DISABLE_METRICS_ENDPOINT" default:"false" help:"Disable the /metrics endpoint" group:"api"`

	Version bool
}

func (r *RunCMD) Run(ctx *cliContext.Context) error {
	if r.Version {
		fmt.Println(internal.PrintableVersion())
		return nil
	}

	opts := []config.AppOption{
		config.WithContext(context.Background()),
		config.WithDebug(ctx.IsDebug()),
		config.WithAddress(r.Address),
		config.WithStaticDir(r.StaticDir),
		config.WithUploadLimitMB(r.UploadLimit),
		config.WithMaxAlignmentUpload(r.MaxAlignmentUpload),
		config.WithShutdownTimeout(r.ShutdownTimeout),
	}
	opts = append(opts, r.AudioFlags.options()...)
	opts = append(opts, r.AlignmentFlags.options()...)
	opts = append(opts, r.SpeechFlags.options()...)

	if r.DisableMetricsEndpoint {
		opts = append(opts, config.DisableMetricsEndpoint)
	}

	app, err := application.New(opts...)
	if err != nil {
		return fmt.Errorf("failed basic startup tasks with error %s", err.Error())
	}

	appHTTP, err := http.API(app)
	if err != nil {
		xlog.Error("error during HTTP App construction", "error", err)
		return err
	}

	signals.RegisterGracefulTerminationHandler(func() {
		if err := app.Close(); err != nil {
			xlog.Error("error while releasing the alignment model", "error", err)
		}
	})
	signals.RegisterGracefulTerminationHandler(func() {
		sctx, cancel := context.WithTimeout(context.Background(), app.ApplicationConfig().ShutdownTimeout)
		defer cancel()
		if err := appHTTP.Shutdown(sctx); err != nil {
			xlog.Error("error while shutting down the HTTP server", "error", err)
		}
	})

	xlog.Info("phonolab API is listening", "address", r.Address)
	if err := appHTTP.Start(r.Address); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
		return err
	}
	return nil
}
