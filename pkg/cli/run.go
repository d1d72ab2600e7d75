package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/vesper-lab/adjutant/pkg/cli/config"
	"github.com/vesper-lab/adjutant/pkg/domain/types"
	"github.com/vesper-lab/adjutant/pkg/usecase"
	"github.com/vesper-lab/adjutant/pkg/utils/logging"
)

var (
	errorLine     = color.New(color.FgRed)
	warnLine      = color.New(color.FgYellow)
	assistantLine = color.New(color.FgCyan)
)

func cmdRun() *cli.Command {
	var userID string
	var source string
	var repoCfg config.Repository
	var geminiCfg config.Gemini
	var assistantCfg config.Assistant

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "user",
			Usage:       "User ID the command is attributed to",
			Value:       "local",
			Sources:     cli.EnvVars("ADJUTANT_USER"),
			Destination: &userID,
		},
		&cli.StringFlag{
			Name:        "source",
			Usage:       "Command source tag (pwa, siri, cli)",
			Value:       "cli",
			Destination: &source,
		},
	}
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, geminiCfg.Flags()...)
	flags = append(flags, assistantCfg.Flags()...)

	return &cli.Command{
		Name:      "run",
		Aliases:   []string{"r"},
		Usage:     "Interpret and execute one command, printing the log",
		ArgsUsage: "<command text>",
		Flags:     flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			text := strings.Join(c.Args().Slice(), " ")
			if strings.TrimSpace(text) == "" {
				return goerr.New("command text is required")
			}

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
			}

			uc := usecase.New(repo, ucOpts...)

			result := uc.RunCommand(ctx, usecase.CommandInput{
				Text:   text,
				Source: source,
				UserID: types.UserID(userID),
			})

			for _, line := range result.LogLines {
				printLogLine(line)
			}
			return nil
		},
	}
}

// printLogLine colorizes one dispatch log line for the terminal
func printLogLine(line string) {
	switch {
	case strings.Contains(line, "[error]"):
		_, _ = errorLine.Println(line)
	case strings.Contains(line, "[warn]"):
		_, _ = warnLine.Println(line)
	case strings.HasPrefix(line, "[assistant]"):
		_, _ = assistantLine.Println(line)
	default:
		fmt.Println(line)
	}
}
