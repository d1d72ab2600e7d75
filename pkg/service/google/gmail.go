package google

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/vesper-lab/adjutant/pkg/domain/model"
)

// Gmail implements the mail provider boundary on top of the Gmail API. All
// operations run as the authenticated user ("me").
type Gmail struct {
	svc *gmail.Service
}

// NewGmail creates a Gmail client. clientOpts are passed through to the
// Google API client.
func NewGmail(ctx context.Context, clientOpts ...option.ClientOption) (*Gmail, error) {
	svc, err := gmail.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create gmail service")
	}
	return &Gmail{svc: svc}, nil
}

// Send sends a message and returns the provider message ID
func (g *Gmail) Send(ctx context.Context, to, subject, body string) (string, error) {
	raw := buildRawMessage(to, subject, body, nil)
	sent, err := g.svc.Users.Messages.Send("me", &gmail.Message{Raw: raw}).Context(ctx).Do()
	if err != nil {
		return "", goerr.Wrap(err, "failed to send message", goerr.V("to", to))
	}
	return sent.Id, nil
}

// GetMessage retrieves a message by ID
func (g *Gmail) GetMessage(ctx context.Context, id string) (*model.MailMessage, error) {
	msg, err := g.svc.Users.Messages.Get("me", id).Format("full").Context(ctx).Do()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get message", goerr.V("id", id))
	}

	out := &model.MailMessage{
		ID:       msg.Id,
		ThreadID: msg.ThreadId,
		Snippet:  msg.Snippet,
	}
	if msg.Payload != nil {
		for _, h := range msg.Payload.Headers {
			switch strings.ToLower(h.Name) {
			case "from":
				out.From = h.Value
			case "to":
				out.To = h.Value
			case "subject":
				out.Subject = h.Value
			}
		}
		out.BodyText = extractPlainText(msg.Payload)
	}
	return out, nil
}

// Reply sends a reply on the given thread. The In-Reply-To and References
// headers carry the original message ID so providers thread it correctly.
func (g *Gmail) Reply(ctx context.Context, threadID, messageID, body string) (string, error) {
	original, err := g.GetMessage(ctx, messageID)
	if err != nil {
		return "", err
	}

	subject := original.Subject
	if !strings.HasPrefix(strings.ToLower(subject), "re:") {
		subject = "Re: " + subject
	}

	headers := map[string]string{
		"In-Reply-To": fmt.Sprintf("<%s>", messageID),
		"References":  fmt.Sprintf("<%s>", messageID),
	}
	raw := buildRawMessage(original.From, subject, body, headers)

	sent, err := g.svc.Users.Messages.Send("me", &gmail.Message{
		Raw:      raw,
		ThreadId: threadID,
	}).Context(ctx).Do()
	if err != nil {
		return "", goerr.Wrap(err, "failed to send reply", goerr.V("thread_id", threadID))
	}
	return sent.Id, nil
}

// ListRecentSenders extracts (name, address) pairs from the most recent
// inbox messages, newest first, up to max entries. Duplicate addresses are
// collapsed keeping the newest occurrence.
func (g *Gmail) ListRecentSenders(ctx context.Context, max int) ([]*model.Sender, error) {
	resp, err := g.svc.Users.Messages.List("me").
		LabelIds("INBOX").
		MaxResults(int64(max)).
		Context(ctx).Do()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list inbox messages")
	}

	seen := make(map[string]bool)
	var senders []*model.Sender
	for _, ref := range resp.Messages {
		msg, err := g.svc.Users.Messages.Get("me", ref.Id).
			Format("metadata").
			MetadataHeaders("From").
			Context(ctx).Do()
		if err != nil {
			return nil, goerr.Wrap(err, "failed to get message headers", goerr.V("id", ref.Id))
		}
		if msg.Payload == nil {
			continue
		}
		for _, h := range msg.Payload.Headers {
			if !strings.EqualFold(h.Name, "From") {
				continue
			}
			sender := parseSender(h.Value)
			if sender == nil || seen[strings.ToLower(sender.Email)] {
				continue
			}
			seen[strings.ToLower(sender.Email)] = true
			senders = append(senders, sender)
		}
		if len(senders) >= max {
			break
		}
	}
	return senders, nil
}

// parseSender splits an RFC 5322 From header value into name and address.
// Accepts both `Name <addr>` and bare `addr` forms.
func parseSender(from string) *model.Sender {
	from = strings.TrimSpace(from)
	if from == "" {
		return nil
	}

	if open := strings.LastIndex(from, "<"); open >= 0 {
		end := strings.LastIndex(from, ">")
		if end <= open {
			return nil
		}
		email := strings.TrimSpace(from[open+1 : end])
		if email == "" {
			return nil
		}
		name := strings.TrimSpace(from[:open])
		name = strings.Trim(name, `"`)
		if name == "" {
			name = email
		}
		return &model.Sender{Name: name, Email: email}
	}

	if !strings.Contains(from, "@") {
		return nil
	}
	return &model.Sender{Name: from, Email: from}
}

func buildRawMessage(to, subject, body string, extraHeaders map[string]string) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("To: %s\r\n", to))
	sb.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	for name, value := range extraHeaders {
		sb.WriteString(fmt.Sprintf("%s: %s\r\n", name, value))
	}
	sb.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	sb.WriteString("\r\n")
	sb.WriteString(body)
	return base64.URLEncoding.EncodeToString([]byte(sb.String()))
}

// extractPlainText walks the MIME tree and returns the first text/plain
// part
func extractPlainText(part *gmail.MessagePart) string {
	if part == nil {
		return ""
	}
	if part.MimeType == "text/plain" && part.Body != nil && part.Body.Data != "" {
		data, err := base64.URLEncoding.DecodeString(part.Body.Data)
		if err != nil {
			return ""
		}
		return string(data)
	}
	for _, child := range part.Parts {
		if text := extractPlainText(child); text != "" {
			return text
		}
	}
	return ""
}
