package config_test

import (
	"context"
	"os"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/vesper-lab/adjutant/pkg/cli/config"
)

func TestLogger_Configure(t *testing.T) {
	t.Run("valid console config", func(t *testing.T) {
		cfg := config.NewLoggerForTest("info", "console", "-")
		closer, err := cfg.Configure()
		gt.NoError(t, err).Required()
		closer()
	})

	t.Run("valid json config", func(t *testing.T) {
		cfg := config.NewLoggerForTest("debug", "json", "-")
		closer, err := cfg.Configure()
		gt.NoError(t, err).Required()
		closer()
	})

	t.Run("invalid level", func(t *testing.T) {
		cfg := config.NewLoggerForTest("verbose", "console", "-")
		_, err := cfg.Configure()
		gt.Value(t, err).NotNil()
	})

	t.Run("invalid format", func(t *testing.T) {
		cfg := config.NewLoggerForTest("info", "xml", "-")
		_, err := cfg.Configure()
		gt.Value(t, err).NotNil()
	})

	t.Run("file output", func(t *testing.T) {
		path := t.TempDir() + "/adjutant.log"
		cfg := config.NewLoggerForTest("info", "json", path)
		closer, err := cfg.Configure()
		gt.NoError(t, err).Required()
		closer()
	})
}

func TestGemini_Configure(t *testing.T) {
	t.Run("returns nil client when project ID is empty", func(t *testing.T) {
		cfg := config.NewGeminiForTest("", "us-central1")
		client, err := cfg.Configure(context.Background())
		gt.NoError(t, err)
		gt.Value(t, client).Nil()
	})

	t.Run("returns flags", func(t *testing.T) {
		cfg := config.NewGeminiForTest("", "")
		flags := cfg.Flags()
		gt.Value(t, len(flags)).Equal(2)
	})
}

func TestRepository_Configure(t *testing.T) {
	ctx := context.Background()

	t.Run("memory backend", func(t *testing.T) {
		cfg := config.NewRepositoryForTest("memory", "", "")
		repo, err := cfg.Configure(ctx)
		gt.NoError(t, err).Required()
		gt.Value(t, repo).NotNil()
		gt.NoError(t, repo.Close())
	})

	t.Run("firestore backend requires project ID", func(t *testing.T) {
		cfg := config.NewRepositoryForTest("firestore", "", "")
		_, err := cfg.Configure(ctx)
		gt.Value(t, err).NotNil()
	})

	t.Run("unknown backend", func(t *testing.T) {
		cfg := config.NewRepositoryForTest("cockroach", "", "")
		_, err := cfg.Configure(ctx)
		gt.Value(t, err).NotNil()
	})
}

func TestAssistant_Options(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg := config.NewAssistantForTest("", "UTC", 8, 18)
		opts, err := cfg.Options()
		gt.NoError(t, err).Required()
		gt.Value(t, len(opts)).Equal(2)
	})

	t.Run("fallback user adds an option", func(t *testing.T) {
		cfg := config.NewAssistantForTest("local", "UTC", 8, 18)
		opts, err := cfg.Options()
		gt.NoError(t, err).Required()
		gt.Value(t, len(opts)).Equal(3)
	})

	t.Run("invalid timezone", func(t *testing.T) {
		cfg := config.NewAssistantForTest("", "Mars/Olympus", 8, 18)
		_, err := cfg.Options()
		gt.Value(t, err).NotNil()
	})

	t.Run("inverted workday window", func(t *testing.T) {
		cfg := config.NewAssistantForTest("", "UTC", 18, 8)
		_, err := cfg.Options()
		gt.Value(t, err).NotNil()
	})
}

func TestAssistant_LoadProfile(t *testing.T) {
	t.Run("profile overrides flag values", func(t *testing.T) {
		path := t.TempDir() + "/profile.toml"
		body := `
fallback_user = "jasper"
timezone = "America/New_York"
workday_start = 9
workday_end = 17
focus_areas = ["business", "personal"]
`
		gt.NoError(t, os.WriteFile(path, []byte(body), 0600)).Required()

		cfg := config.NewAssistantForTest("", "UTC", 8, 18)
		cfg.SetProfilePathForTest(path)

		profile, err := cfg.LoadProfile()
		gt.NoError(t, err).Required()
		gt.Value(t, profile).NotNil().Required()
		gt.Array(t, profile.FocusAreas).Equal([]string{"business", "personal"})

		opts, err := cfg.Options()
		gt.NoError(t, err).Required()
		gt.Value(t, len(opts)).Equal(3) // timezone, workday, fallback user
	})

	t.Run("nil without a path", func(t *testing.T) {
		cfg := config.NewAssistantForTest("", "UTC", 8, 18)
		profile, err := cfg.LoadProfile()
		gt.NoError(t, err)
		gt.Value(t, profile).Nil()
	})

	t.Run("malformed TOML", func(t *testing.T) {
		path := t.TempDir() + "/broken.toml"
		gt.NoError(t, os.WriteFile(path, []byte("workday_start = ["), 0600)).Required()

		cfg := config.NewAssistantForTest("", "UTC", 8, 18)
		cfg.SetProfilePathForTest(path)
		_, err := cfg.LoadProfile()
		gt.Value(t, err).NotNil()
	})
}
