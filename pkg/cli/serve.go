package cli

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/sync/errgroup"

	"github.com/secmon-lab/tierscope/pkg/cli/config"
	httpctrl "github.com/secmon-lab/tierscope/pkg/controller/http"
	"github.com/secmon-lab/tierscope/pkg/repository/memory"
	"github.com/secmon-lab/tierscope/pkg/service/worker"
	"github.com/secmon-lab/tierscope/pkg/usecase"
	"github.com/secmon-lab/tierscope/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

const shutdownTimeout = 10 * time.Second

func cmdServe(sentryCfg *config.Sentry) *cli.Command {
	var addr string
	var maxBodyBytes int
	var assessmentTTL time.Duration
	var expiryInterval time.Duration
	var contentCfg config.Content
	var assessmentCfg config.Assessment

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("TIERSCOPE_ADDR"),
			Destination: &addr,
		},
		&cli.IntFlag{
			Name:        "max-body-bytes",
			Usage:       "Maximum size of a request body",
			Value:       1 << 20,
			Sources:     cli.EnvVars("TIERSCOPE_MAX_BODY_BYTES"),
			Destination: &maxBodyBytes,
		},
		&cli.DurationFlag{
			Name:        "assessment-ttl",
			Usage:       "Delete assessments idle for longer than this (0 keeps them until restart)",
			Value:       24 * time.Hour,
			Sources:     cli.EnvVars("TIERSCOPE_ASSESSMENT_TTL"),
			Destination: &assessmentTTL,
		},
		&cli.DurationFlag{
			Name:        "expiry-interval",
			Usage:       "How often idle assessments are looked for",
			Value:       10 * time.Minute,
			Sources:     cli.EnvVars("TIERSCOPE_EXPIRY_INTERVAL"),
			Destination: &expiryInterval,
		},
	}
	flags = append(flags, contentCfg.Flags()...)
	flags = append(flags, assessmentCfg.Flags(0)...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start the HTTP JSON API",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			catalog, err := contentCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load tier content")
			}

			ucOpts, err := assessmentCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to configure assessments")
			}
			ucOpts = append(ucOpts, usecase.WithContentCatalog(catalog))

			repo := memory.New()
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close repository", "error", err.Error())
				}
			}()

			if assessmentTTL > 0 {
				expiry := worker.NewAssessmentExpiryWorker(repo, assessmentTTL, expiryInterval)
				if err := expiry.Start(ctx); err != nil {
					return goerr.Wrap(err, "failed to start assessment expiry worker")
				}
				defer expiry.Stop()
			}

			uc := usecase.New(repo, ucOpts...)

			var handler http.Handler = httpctrl.New(uc.Assessment, uc.Content, httpctrl.WithMaxBodyBytes(int64(maxBodyBytes)))
			if sentryCfg.Enabled() {
				handler = sentryhttp.New(sentryhttp.Options{}).Handle(handler)
			}

			server := &http.Server{
				Addr:              addr,
				Handler:           handler,
				ReadHeaderTimeout: 30 * time.Second,
				BaseContext:       func(net.Listener) context.Context { return ctx },
			}

			return runServer(ctx, server, contentCfg, assessmentCfg)
		},
	}
}

// runServer serves until ctx is cancelled or SIGINT/SIGTERM arrives, then
// shuts down gracefully
func runServer(ctx context.Context, server *http.Server, contentCfg config.Content, assessmentCfg config.Assessment) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	eg, ctx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		logging.Default().Info("Starting HTTP server",
			"addr", server.Addr,
			"content", contentCfg,
			"assessment", assessmentCfg,
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return goerr.Wrap(err, "failed to start server", goerr.V("addr", server.Addr))
		}
		return nil
	})

	eg.Go(func() error {
		<-ctx.Done()
		logging.Default().Info("Shutting down HTTP server")

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return goerr.Wrap(err, "failed to shutdown server gracefully")
		}

		logging.Default().Info("Server shutdown completed")
		return nil
	})

	return eg.Wait()
}
