package digest

import (
	"context"
	"fmt"
	"time"

	"github.com/drewk/recruiting-copilot/internal/config"
	"github.com/drewk/recruiting-copilot/internal/logger"
	"github.com/go-resty/resty/v2"
)

const resendBaseURL = "https://api.resend.com"

// sendRequest is the Resend email payload.
type sendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Text    string   `json:"text"`
	HTML    string   `json:"html"`
}

// sendResponse is the Resend email response.
type sendResponse struct {
	ID string `json:"id"`
}

// Sender delivers digest emails through the Resend API.
type Sender struct {
	client *resty.Client
	from   string
	to     string
}

// NewSender creates a Resend email sender.
// Parameters:
//   - cfg: email configuration with API key and addresses.
// Returns:
//   - *Sender: initialized sender.
func NewSender(cfg config.EmailConfig) *Sender {
	client := resty.New().
		SetBaseURL(resendBaseURL).
		SetAuthToken(cfg.ResendAPIKey).
		SetHeader("Content-Type", "application/json").
		SetTimeout(30 * time.Second)

	return &Sender{
		client: client,
		from:   cfg.From,
		to:     cfg.To,
	}
}

// Send delivers one email with both text and HTML bodies.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - subject: email subject line.
//   - text: plain-text body.
//   - htmlBody: HTML body.
// Returns:
//   - string: provider message ID.
//   - error: non-nil if the request fails or the provider rejects it.
func (s *Sender) Send(ctx context.Context, subject, text, htmlBody string) (string, error) {
	start := time.Now()

	var result sendResponse
	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(sendRequest{
			From:    s.from,
			To:      []string{s.to},
			Subject: subject,
			Text:    text,
			HTML:    htmlBody,
		}).
		SetResult(&result).
		Post("/emails")
	if err != nil {
		return "", fmt.Errorf("failed to send email: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("email provider returned status %d: %s", resp.StatusCode(), resp.String())
	}

	logger.With(logger.Fields{
		logger.FieldDurationMs: time.Since(start).Milliseconds(),
		logger.FieldStatus:     resp.StatusCode(),
	}).Info(ctx, "Digest email sent")

	return result.ID, nil
}
