package usecase

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"text/template"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/vesper-lab/adjutant/pkg/domain/model"
)

//go:embed prompt/command_system.md
var commandPromptTmpl string

var commandPrompt = template.Must(template.New("command_system").Parse(commandPromptTmpl))

type commandPromptData struct {
	Timezone string
	TodayISO string
	NowISO   string
	Source   string
	Command  string
}

// interpret sends the user command to the language model and normalizes
// whatever comes back. The model reply is requested as JSON but never
// trusted to conform; normalization handles every deviation.
func (uc *UseCases) interpret(ctx context.Context, text, source, timezone string) (*model.CommandResult, error) {
	if uc.llmClient == nil {
		return nil, ErrLLMNotConfigured
	}

	if timezone == "" {
		timezone = uc.timezone.String()
	}
	now := uc.now()

	var prompt bytes.Buffer
	if err := commandPrompt.Execute(&prompt, commandPromptData{
		Timezone: timezone,
		TodayISO: now.Format("2006-01-02"),
		NowISO:   now.Format("2006-01-02T15:04:05Z07:00"),
		Source:   source,
		Command:  text,
	}); err != nil {
		return nil, goerr.Wrap(err, "failed to render command prompt")
	}

	session, err := uc.llmClient.NewSession(ctx,
		gollem.WithSessionContentType(gollem.ContentTypeJSON),
	)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create command session")
	}

	resp, err := session.GenerateContent(ctx, gollem.Text(prompt.String()))
	if err != nil {
		return nil, goerr.Wrap(err, "command interpretation failed")
	}
	if len(resp.Texts) == 0 {
		return nil, goerr.New("command interpretation returned no content")
	}

	var raw any
	if err := json.Unmarshal([]byte(resp.Texts[0]), &raw); err != nil {
		return nil, goerr.Wrap(err, "command interpretation returned non-JSON content",
			goerr.V("response", resp.Texts[0]),
		)
	}

	return Normalize(raw), nil
}
