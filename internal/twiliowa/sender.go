// Package twiliowa is the hosted transport: inbound messages arrive as
// Twilio webhook callbacks and replies go out through the Twilio REST API.
package twiliowa

import (
	"context"
	"fmt"
	"strings"

	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

type Sender struct {
	client *twilio.RestClient
	from   string
}

func NewSender(accountSID, authToken, from string) *Sender {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return &Sender{client: client, from: from}
}

func (s *Sender) Send(_ context.Context, to, text string) error {
	params := &openapi.CreateMessageParams{}
	params.SetFrom(whatsappAddr(s.from))
	params.SetTo(whatsappAddr(to))
	params.SetBody(text)

	if _, err := s.client.Api.CreateMessage(params); err != nil {
		return fmt.Errorf("twilio send to %s: %w", to, err)
	}
	return nil
}

// Ready is always true: the hosted API holds the session, not us.
func (s *Sender) Ready() bool { return true }

func whatsappAddr(addr string) string {
	if strings.HasPrefix(addr, "whatsapp:") {
		return addr
	}
	return "whatsapp:" + addr
}
