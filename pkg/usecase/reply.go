package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/vesper-lab/adjutant/pkg/domain/model"
)

// handleDraftReply composes a reply to an existing message from the user's
// instructions and sends it on the original thread.
func (uc *UseCases) handleDraftReply(ctx context.Context, action model.Action) ([]string, error) {
	if uc.mail == nil {
		return nil, goerr.New("mail is not configured")
	}
	if uc.llmClient == nil {
		return nil, ErrLLMNotConfigured
	}

	email := action.Email
	if email == nil || email.MessageID == "" {
		return nil, goerr.New("messageId is required")
	}
	instructions := strings.TrimSpace(email.Instructions)
	if instructions == "" {
		return nil, goerr.New("instructions are required")
	}

	original, err := uc.mail.GetMessage(ctx, email.MessageID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load original message", goerr.V("messageID", email.MessageID))
	}

	bodyContext := original.BodyText
	if bodyContext == "" {
		bodyContext = original.Snippet
	}
	if bodyContext == "" {
		bodyContext = "The original message content is unavailable."
	}

	session, err := uc.llmClient.NewSession(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create session for reply draft")
	}

	prompt := fmt.Sprintf(`You write clear and concise professional email replies.
Compose an email reply.

Original email:
%s

User instructions:
%s`, bodyContext, instructions)

	resp, err := session.GenerateContent(ctx, gollem.Text(prompt))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to draft reply")
	}
	draft := strings.TrimSpace(strings.Join(resp.Texts, "\n"))
	if draft == "" {
		return nil, goerr.New("reply draft came back empty")
	}

	if _, err := uc.mail.Reply(ctx, original.ThreadID, original.ID, draft); err != nil {
		return nil, goerr.Wrap(err, "failed to send reply", goerr.V("threadID", original.ThreadID))
	}

	return []string{fmt.Sprintf("✏️ Draft reply:\n%s", draft)}, nil
}
