package config

import (
	"os"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"
	"github.com/vesper-lab/adjutant/pkg/domain/types"
	"github.com/vesper-lab/adjutant/pkg/usecase"
)

// Assistant holds CLI flags for assistant behavior: the ambient user
// identity, timezone and the planning window. An optional TOML profile file
// can override the flag values.
type Assistant struct {
	profilePath  string
	fallbackUser string
	timezone     string
	workdayStart int
	workdayEnd   int
}

// Profile is the optional TOML assistant profile. Fields left out of the
// file keep their flag values.
type Profile struct {
	FallbackUser string   `toml:"fallback_user"`
	Timezone     string   `toml:"timezone"`
	WorkdayStart *int     `toml:"workday_start"`
	WorkdayEnd   *int     `toml:"workday_end"`
	FocusAreas   []string `toml:"focus_areas"`
}

// Flags returns CLI flags for assistant configuration
func (a *Assistant) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "assistant-profile",
			Usage:       "Path to a TOML assistant profile file",
			Category:    "Assistant",
			Sources:     cli.EnvVars("ADJUTANT_ASSISTANT_PROFILE"),
			Destination: &a.profilePath,
		},
		&cli.StringFlag{
			Name:        "fallback-user",
			Usage:       "User ID attributed to requests that carry no identity",
			Category:    "Assistant",
			Sources:     cli.EnvVars("ADJUTANT_FALLBACK_USER"),
			Destination: &a.fallbackUser,
		},
		&cli.StringFlag{
			Name:        "timezone",
			Usage:       "IANA timezone for date resolution and planning",
			Value:       "UTC",
			Category:    "Assistant",
			Sources:     cli.EnvVars("ADJUTANT_TIMEZONE"),
			Destination: &a.timezone,
		},
		&cli.IntFlag{
			Name:        "workday-start",
			Usage:       "Hour the planning window opens (0-23)",
			Value:       8,
			Category:    "Assistant",
			Sources:     cli.EnvVars("ADJUTANT_WORKDAY_START"),
			Destination: &a.workdayStart,
		},
		&cli.IntFlag{
			Name:        "workday-end",
			Usage:       "Hour the planning window closes (0-23)",
			Value:       18,
			Category:    "Assistant",
			Sources:     cli.EnvVars("ADJUTANT_WORKDAY_END"),
			Destination: &a.workdayEnd,
		},
	}
}

// LoadProfile parses the TOML profile file and folds its values over the
// flag values. Returns nil when no profile path is configured.
func (a *Assistant) LoadProfile() (*Profile, error) {
	if a.profilePath == "" {
		return nil, nil
	}

	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(a.profilePath)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read assistant profile", goerr.V("path", a.profilePath))
	}

	var profile Profile
	if err := toml.Unmarshal(data, &profile); err != nil {
		return nil, goerr.Wrap(err, "failed to parse TOML assistant profile", goerr.V("path", a.profilePath))
	}

	if profile.FallbackUser != "" {
		a.fallbackUser = profile.FallbackUser
	}
	if profile.Timezone != "" {
		a.timezone = profile.Timezone
	}
	if profile.WorkdayStart != nil {
		a.workdayStart = *profile.WorkdayStart
	}
	if profile.WorkdayEnd != nil {
		a.workdayEnd = *profile.WorkdayEnd
	}

	return &profile, nil
}

// Timezone resolves the configured IANA timezone name
func (a *Assistant) Timezone() (*time.Location, error) {
	loc, err := time.LoadLocation(a.timezone)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid timezone", goerr.V("timezone", a.timezone))
	}
	return loc, nil
}

// Options converts the flags (and profile file, when configured) into
// usecase options
func (a *Assistant) Options() ([]usecase.Option, error) {
	if _, err := a.LoadProfile(); err != nil {
		return nil, err
	}

	if a.workdayStart < 0 || a.workdayEnd > 24 || a.workdayStart >= a.workdayEnd {
		return nil, goerr.New("invalid workday window",
			goerr.V("start", a.workdayStart), goerr.V("end", a.workdayEnd))
	}

	loc, err := a.Timezone()
	if err != nil {
		return nil, err
	}

	opts := []usecase.Option{
		usecase.WithTimezone(loc),
		usecase.WithWorkday(a.workdayStart, a.workdayEnd),
	}
	if a.fallbackUser != "" {
		opts = append(opts, usecase.WithFallbackUser(types.UserID(a.fallbackUser)))
	}
	return opts, nil
}
