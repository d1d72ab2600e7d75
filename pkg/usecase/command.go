package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/vesper-lab/adjutant/pkg/domain/model"
	"github.com/vesper-lab/adjutant/pkg/domain/types"
	"github.com/vesper-lab/adjutant/pkg/utils/logging"
)

// CommandInput is one free-form user command plus its resolved identity
type CommandInput struct {
	Text      string
	Source    string
	UserID    types.UserID
	UserEmail string
	Timezone  string
}

// RunCommand interprets a user command, normalizes the planner reply and
// dispatches the resulting action batch. It never returns an error for
// planner failures: those degrade into a single-element error log so the
// caller always receives a consistent response shape.
func (uc *UseCases) RunCommand(ctx context.Context, input CommandInput) *model.CommandResult {
	logger := logging.From(ctx)

	text := strings.TrimSpace(input.Text)
	if text == "" {
		return &model.CommandResult{
			Actions:  []model.Action{},
			LogLines: []string{"[error] Empty command."},
		}
	}

	result, err := uc.interpret(ctx, text, input.Source, input.Timezone)
	if err != nil {
		logger.Warn("command interpretation failed", "error", err.Error())
		return &model.CommandResult{
			Actions:  []model.Action{},
			LogLines: []string{fmt.Sprintf("[error] Assistant failed: %s", err.Error())},
		}
	}

	logger.Info("dispatching command",
		"source", input.Source,
		"actions", len(result.Actions),
	)

	execLogs := uc.ExecuteActions(ctx, result.Actions, model.DispatchContext{
		UserID:    input.UserID,
		UserEmail: input.UserEmail,
		Timezone:  input.Timezone,
	})
	result.LogLines = append(result.LogLines, execLogs...)

	return result
}

// SpeechReply flattens a dispatch log into one reply string. For the "siri"
// source it keeps only the last few non-error lines, stripped of console
// prefixes and icons, so the reply reads well aloud.
func SpeechReply(logLines []string, source string) string {
	if len(logLines) == 0 {
		return "Okay, I processed that, but there was nothing to do."
	}

	if source != "siri" {
		return strings.Join(logLines, "\n")
	}

	var cleaned []string
	for _, line := range logLines {
		lower := strings.ToLower(line)
		if strings.Contains(lower, "unsupported action") || strings.Contains(lower, "[error]") {
			continue
		}
		line = strings.TrimPrefix(line, "> ")
		line = strings.TrimPrefix(line, "[assistant]")
		line = strings.TrimPrefix(line, "[warn]")
		line = stripEmojis(line)
		line = strings.TrimSpace(line)
		if line != "" {
			cleaned = append(cleaned, line)
		}
	}
	if len(cleaned) > 3 {
		cleaned = cleaned[len(cleaned)-3:]
	}

	reply := strings.Join(cleaned, ". ")
	if reply == "" {
		return "Got it, I've updated your schedule."
	}
	return reply
}

// stripEmojis removes pictographic symbols so a speech synthesizer does not
// read them out
func stripEmojis(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= 0x1F300 && r <= 0x1FAFF {
			return -1
		}
		switch r {
		case '✅', '✏', '️': // check mark, pencil, variation selector
			return -1
		}
		return r
	}, s)
}
