package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"farewatch/internal/pkg/config"
	"farewatch/internal/pkg/errs"
)

type sendPayload struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Subject   string `json:"subject"`
	HTML      string `json:"html"`
	Reference string `json:"reference"`
}

// HTTPMailer posts messages to an email-sending provider's JSON API.
type HTTPMailer struct {
	cfg    config.MailConfig
	client *http.Client
}

func NewHTTPMailer(cfg config.MailConfig) *HTTPMailer {
	return &HTTPMailer{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.CallTimeout},
	}
}

func (m *HTTPMailer) Send(ctx context.Context, msg Message) error {
	ctx, cancel := context.WithTimeout(ctx, m.cfg.CallTimeout)
	defer cancel()

	body, err := json.Marshal(sendPayload{
		From:      m.cfg.FromAddress,
		To:        msg.To,
		Subject:   msg.Subject,
		HTML:      msg.HTMLBody,
		Reference: msg.Reference,
	})
	if err != nil {
		return errs.Mark(err, ErrPermanent)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.cfg.BaseURL+"/v1/messages", bytes.NewReader(body))
	if err != nil {
		return errs.Mark(err, ErrPermanent)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+m.cfg.APIKey)

	resp, err := m.client.Do(req)
	if err != nil {
		// Transport errors are transient; the dispatcher decides on retry.
		return errs.Wrap(err, "mail provider request failed")
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusTooManyRequests:
		return errs.New("mail provider rate limited")
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return errs.Mark(fmt.Errorf("mail provider rejected message: status %d", resp.StatusCode), ErrPermanent)
	default:
		return errs.New(fmt.Sprintf("mail provider returned status %d", resp.StatusCode))
	}
}
