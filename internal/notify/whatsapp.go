package notify

import (
	"fmt"

	"github.com/twilio/twilio-go"
	twilioapi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/cleanerboard/backend/internal/config"
)

// WhatsAppSender relays schedule digests and completion reports to the
// property manager over Twilio's WhatsApp API.
type WhatsAppSender struct {
	client *twilio.RestClient
	from   string
	to     string
}

// NewWhatsAppSender creates a sender from the configured credentials.
func NewWhatsAppSender(cfg config.WhatsAppConfig) *WhatsAppSender {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.AccountSID,
		Password: cfg.AuthToken,
	})
	return &WhatsAppSender{client: client, from: cfg.From, to: cfg.To}
}

// Send delivers a message body and returns the provider message SID.
func (s *WhatsAppSender) Send(body string) (string, error) {
	params := &twilioapi.CreateMessageParams{}
	params.SetTo(s.to)
	params.SetFrom(s.from)
	params.SetBody(body)

	msg, err := s.client.Api.CreateMessage(params)
	if err != nil {
		return "", fmt.Errorf("sending WhatsApp message: %w", err)
	}

	sid := ""
	if msg.Sid != nil {
		sid = *msg.Sid
	}
	return sid, nil
}
