package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/vesper-lab/adjutant/pkg/cli/config"
	httpctrl "github.com/vesper-lab/adjutant/pkg/controller/http"
	"github.com/vesper-lab/adjutant/pkg/domain/types"
	"github.com/vesper-lab/adjutant/pkg/service/worker"
	"github.com/vesper-lab/adjutant/pkg/usecase"
	"github.com/vesper-lab/adjutant/pkg/utils/logging"
)

func cmdServe() *cli.Command {
	var addr string
	var enableCalendar bool
	var enableGmail bool
	var contactRefreshInterval time.Duration
	var repoCfg config.Repository
	var geminiCfg config.Gemini
	var googleCfg config.Google
	var sentryCfg config.Sentry
	var assistantCfg config.Assistant

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("ADJUTANT_ADDR"),
			Destination: &addr,
		},
		&cli.BoolFlag{
			Name:        "enable-calendar",
			Usage:       "Enable the Google Calendar provider",
			Sources:     cli.EnvVars("ADJUTANT_ENABLE_CALENDAR"),
			Destination: &enableCalendar,
		},
		&cli.BoolFlag{
			Name:        "enable-gmail",
			Usage:       "Enable the Gmail provider",
			Sources:     cli.EnvVars("ADJUTANT_ENABLE_GMAIL"),
			Destination: &enableGmail,
		},
		&cli.DurationFlag{
			Name:        "contact-refresh-interval",
			Usage:       "How often the contact book is rebuilt from recent inbox senders",
			Value:       30 * time.Minute,
			Sources:     cli.EnvVars("ADJUTANT_CONTACT_REFRESH_INTERVAL"),
			Destination: &contactRefreshInterval,
		},
	}

	// Add shared config flags
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, geminiCfg.Flags()...)
	flags = append(flags, googleCfg.Flags()...)
	flags = append(flags, sentryCfg.Flags()...)
	flags = append(flags, assistantCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			flushSentry, err := sentryCfg.Configure(c.Root().Version)
			if err != nil {
				return goerr.Wrap(err, "failed to configure sentry")
			}
			defer flushSentry()

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close repository", "error", err.Error())
				}
			}()

			ucOpts, err := assistantCfg.Options()
			if err != nil {
				return goerr.Wrap(err, "failed to configure assistant")
			}

			llmClient, err := geminiCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to configure Gemini client")
			}
			if llmClient != nil {
				ucOpts = append(ucOpts, usecase.WithLLMClient(llmClient))
				logging.Default().Info("Gemini command interpretation enabled")
			} else {
				logging.Default().Info("Gemini not configured, command interpretation disabled")
			}

			timezone, err := assistantCfg.Timezone()
			if err != nil {
				return err
			}

			if enableCalendar {
				cal, err := googleCfg.ConfigureCalendar(ctx, timezone)
				if err != nil {
					return goerr.Wrap(err, "failed to configure calendar")
				}
				ucOpts = append(ucOpts, usecase.WithCalendar(cal))
			} else {
				logging.Default().Info("Calendar provider disabled, event actions will be reported as unavailable")
			}

			var contactWorker *worker.ContactRefreshWorker
			httpOpts := []httpctrl.Options{}
			if enableGmail {
				mail, err := googleCfg.ConfigureGmail(ctx)
				if err != nil {
					return goerr.Wrap(err, "failed to configure gmail")
				}
				ucOpts = append(ucOpts, usecase.WithMail(mail))

				// Contact sync only makes sense with a mail provider and a
				// user to attribute the contact book to.
				if fallback := c.String("fallback-user"); fallback != "" {
					contactWorker = worker.NewContactRefreshWorker(repo, mail, types.UserID(fallback), contactRefreshInterval)
					if err := contactWorker.Start(ctx); err != nil {
						return goerr.Wrap(err, "failed to start contact refresh worker")
					}
					httpOpts = append(httpOpts, httpctrl.WithContactRefresher(contactWorker))
				} else {
					logging.Default().Info("No fallback user configured, contact sync disabled")
				}
			} else {
				logging.Default().Info("Gmail provider disabled, email actions will be reported as unavailable")
			}

			uc := usecase.New(repo, ucOpts...)

			server := &http.Server{
				Addr:              addr,
				Handler:           httpctrl.New(uc, httpOpts...),
				ReadHeaderTimeout: 30 * time.Second,
			}

			// Setup signal handling for graceful shutdown
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			errCh := make(chan error, 1)
			go func() {
				logging.Default().Info("Starting HTTP server", "addr", addr)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				logging.Default().Info("Received shutdown signal", "signal", sig)

				if contactWorker != nil {
					contactWorker.Stop()
				}

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}

				logging.Default().Info("Server shutdown completed")
				return nil
			}
		},
	}
}
