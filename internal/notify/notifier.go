// Package notify relays derived schedules and completion events to the
// property manager's channels: WhatsApp, email, and a Google Sheet.
// Channel failures are reported as result strings, never as errors that
// would abort the digest: one broken channel must not block the others.
package notify

import (
	"context"
	"fmt"
	"log"

	"github.com/cleanerboard/backend/internal/config"
)

// Notifier fans a digest out to every configured channel.
type Notifier struct {
	whatsapp *WhatsAppSender
	email    *EmailSender
	sheets   *SheetsExporter
}

// New builds a notifier with only the channels the config enables.
// A sheets client that fails to initialize disables that channel.
func New(ctx context.Context, cfg *config.Config) *Notifier {
	n := &Notifier{}

	if cfg.WhatsApp.Enabled() {
		n.whatsapp = NewWhatsAppSender(cfg.WhatsApp)
	}
	if cfg.Email.Enabled() {
		n.email = NewEmailSender(cfg.Email)
	}
	if cfg.Sheets.Enabled() {
		exporter, err := NewSheetsExporter(ctx, cfg.Sheets)
		if err != nil {
			log.Printf("Sheets export disabled: %v", err)
		} else {
			n.sheets = exporter
		}
	}

	return n
}

// Channels lists the enabled channel names.
func (n *Notifier) Channels() []string {
	var channels []string
	if n.sheets != nil {
		channels = append(channels, "sheets")
	}
	if n.whatsapp != nil {
		channels = append(channels, "whatsapp")
	}
	if n.email != nil {
		channels = append(channels, "email")
	}
	return channels
}

// SendDigest pushes the digest to every enabled channel and returns one
// human-readable result line per channel.
func (n *Notifier) SendDigest(ctx context.Context, text string, rows [][]string, pdf []byte, pdfName string) []string {
	var results []string

	if n.sheets != nil {
		if err := n.sheets.Push(ctx, rows); err != nil {
			log.Printf("Sheet push failed: %v", err)
			results = append(results, fmt.Sprintf("Sheet update failed: %v", err))
		} else {
			results = append(results, "Sheet updated")
		}
	}

	if n.whatsapp != nil {
		if sid, err := n.whatsapp.Send(text); err != nil {
			log.Printf("WhatsApp send failed: %v", err)
			results = append(results, fmt.Sprintf("WhatsApp send failed: %v", err))
		} else {
			results = append(results, "WhatsApp sent: "+sid)
		}
	}

	if n.email != nil {
		if err := n.email.Send("Cleaner Schedule", text, pdf, pdfName); err != nil {
			log.Printf("Email send failed: %v", err)
			results = append(results, fmt.Sprintf("Email send failed: %v", err))
		} else {
			results = append(results, "Email sent")
		}
	}

	return results
}

// RelayReport forwards a completion report line over WhatsApp, best
// effort. No-op when the channel is not configured.
func (n *Notifier) RelayReport(line string) {
	if n.whatsapp == nil {
		return
	}
	if _, err := n.whatsapp.Send(line); err != nil {
		log.Printf("Report relay failed: %v", err)
	}
}
