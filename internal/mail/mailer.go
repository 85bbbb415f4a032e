package mail

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Xenn-00/vorgang-meister/internal/config"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
)

const senderName = "Vorgang Meister"

// VorgangNotification ist der Inhalt einer Benachrichtigungs-E-Mail zu einem Vorgang.
type VorgangNotification struct {
	To            string
	RecipientName string
	VorgangLabel  string
	Message       string
	CreatedAt     time.Time
}

type Mailer interface {
	SendVorgangNotification(ctx context.Context, n VorgangNotification) error
}

type MailService struct {
	DomainSender string
	MailtrapUrl  string
	MailAPI      string
	client       *http.Client
}

func NewMailer(cfg *config.AppConfig) Mailer {
	client := &http.Client{Timeout: 10 * time.Second}
	if cfg.APP.State == "prod" {
		return &MailService{
			DomainSender: cfg.MAILTRAP.API.MailtrapDomain,
			MailtrapUrl:  cfg.MAILTRAP.API.MailtrapURL,
			MailAPI:      cfg.MAILTRAP.API.MailtrapTokenAPI,
			client:       client,
		}
	}
	return &MailService{
		DomainSender: cfg.MAILTRAP.Sandbox.SandboxDomain,
		MailtrapUrl:  cfg.MAILTRAP.Sandbox.SandboxURL,
		MailAPI:      cfg.MAILTRAP.Sandbox.SandboxAPI,
		client:       client,
	}
}

func (m *MailService) SendVorgangNotification(ctx context.Context, n VorgangNotification) error {
	greeting := "Hallo"
	if n.RecipientName != "" {
		greeting = "Hallo " + n.RecipientName
	}

	payload := map[string]any{
		"from": map[string]string{
			"email": m.DomainSender,
			"name":  senderName,
		},
		"to": []map[string]string{
			{
				"email": n.To,
			},
		},
		"subject": fmt.Sprintf("Vorgang %s", n.VorgangLabel),
		"text": fmt.Sprintf("%s,\n\n%s\n\nVorgang: %s\nZeitpunkt: %s\n\nDiese Nachricht finden Sie auch in Ihrem Posteingang.\n\n%s",
			greeting,
			n.Message,
			n.VorgangLabel,
			n.CreatedAt.Format("02.01.2006 15:04 MST"),
			senderName,
		),
		"category": "Vorgang Benachrichtigung",
	}

	return m.send(ctx, payload)
}

func (m *MailService) send(ctx context.Context, payload map[string]any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.MailtrapUrl, bytes.NewReader(body))
	if err != nil {
		return err
	}

	req.Header.Set("Authorization", "Bearer "+m.MailAPI)
	req.Header.Set("Content-Type", "application/json")

	client := m.client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		log.Error().Err(err).Str("url", m.MailtrapUrl).Msg("Mailer: Mailtrap nicht erreichbar")
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return fmt.Errorf("mailtrap send failed: status=%d body=%s",
			resp.StatusCode,
			string(respBody))
	}

	return nil
}
