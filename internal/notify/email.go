package notify

import (
	"fmt"
	"io"

	"gopkg.in/gomail.v2"

	"github.com/cleanerboard/backend/internal/config"
)

// EmailSender delivers the schedule digest over SMTP, optionally with
// the rendered PDF attached.
type EmailSender struct {
	cfg config.EmailConfig
}

// NewEmailSender creates a sender from the configured SMTP settings.
func NewEmailSender(cfg config.EmailConfig) *EmailSender {
	return &EmailSender{cfg: cfg}
}

// Send delivers the digest. pdf may be nil for a text-only message.
func (s *EmailSender) Send(subject, body string, pdf []byte, pdfName string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", s.cfg.To)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if len(pdf) > 0 {
		if pdfName == "" {
			pdfName = "schedule.pdf"
		}
		m.Attach(pdfName, gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(pdf)
			return err
		}))
	}

	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.Username, s.cfg.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("sending digest email: %w", err)
	}
	return nil
}
