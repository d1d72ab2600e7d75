package config

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
	"google.golang.org/api/option"

	"github.com/vesper-lab/adjutant/pkg/service/google"
	"github.com/vesper-lab/adjutant/pkg/utils/logging"
)

// Google holds CLI flags for the Google Calendar and Gmail providers. Both
// providers are optional; calendar and mail actions degrade into log lines
// when the provider is absent.
type Google struct {
	credentialsFile string
	calendarID      string
}

// Flags returns CLI flags for Google provider configuration
func (g *Google) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "google-credentials",
			Usage:       "Path to Google API credentials JSON (omit to use application default credentials)",
			Category:    "Google",
			Sources:     cli.EnvVars("ADJUTANT_GOOGLE_CREDENTIALS"),
			Destination: &g.credentialsFile,
		},
		&cli.StringFlag{
			Name:        "google-calendar-id",
			Usage:       "Calendar ID to operate on",
			Value:       "primary",
			Category:    "Google",
			Sources:     cli.EnvVars("ADJUTANT_GOOGLE_CALENDAR_ID"),
			Destination: &g.calendarID,
		},
	}
}

func (g *Google) clientOptions() []option.ClientOption {
	if g.credentialsFile == "" {
		return nil
	}
	return []option.ClientOption{option.WithCredentialsFile(g.credentialsFile)}
}

// ConfigureCalendar creates the Google Calendar client
func (g *Google) ConfigureCalendar(ctx context.Context, timezone *time.Location) (*google.Calendar, error) {
	cal, err := google.NewCalendar(ctx,
		[]google.CalendarOption{
			google.WithCalendarID(g.calendarID),
			google.WithCalendarTimezone(timezone),
		},
		g.clientOptions()...,
	)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to configure calendar client")
	}
	logging.Default().Info("Google Calendar enabled", "calendar_id", g.calendarID)
	return cal, nil
}

// ConfigureGmail creates the Gmail client
func (g *Google) ConfigureGmail(ctx context.Context) (*google.Gmail, error) {
	mail, err := google.NewGmail(ctx, g.clientOptions()...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to configure gmail client")
	}
	logging.Default().Info("Gmail enabled")
	return mail, nil
}
