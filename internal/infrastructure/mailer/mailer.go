package mailer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-resty/resty/v2"
)

type Mailer interface {
	SendMagicLink(ctx context.Context, to, link string) error
}

type message struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
	HTML    string `json:"html"`
}

// APIMailer sends transactional mail through an HTTP mail API.
type APIMailer struct {
	client *resty.Client
	url    string
	from   string
}

func NewAPIMailer(url, apiKey, from string) *APIMailer {
	client := resty.New().
		SetTimeout(10 * time.Second).
		SetHeader("Content-Type", "application/json")
	if apiKey != "" {
		client.SetAuthToken(apiKey)
	}
	return &APIMailer{client: client, url: url, from: from}
}

func (m *APIMailer) SendMagicLink(ctx context.Context, to, link string) error {
	msg := message{
		From:    m.from,
		To:      to,
		Subject: "Je inloglink",
		Text:    fmt.Sprintf("Klik op de link om in te loggen: %s\n\nDe link is eenmalig te gebruiken.", link),
		HTML:    fmt.Sprintf(`<p>Klik op de link om in te loggen:</p><p><a href="%s">Inloggen</a></p><p>De link is eenmalig te gebruiken.</p>`, link),
	}

	resp, err := m.client.R().
		SetContext(ctx).
		SetBody(msg).
		Post(m.url)
	if err != nil {
		slog.Error("failed to send mail", "to", to, "error", err)
		return fmt.Errorf("failed to send mail: %w", err)
	}
	if resp.IsError() {
		slog.Error("mail API rejected message", "to", to, "status", resp.StatusCode(), "body", resp.String())
		return fmt.Errorf("mail API status: %d", resp.StatusCode())
	}

	slog.Info("magic link sent", "to", to)
	return nil
}
