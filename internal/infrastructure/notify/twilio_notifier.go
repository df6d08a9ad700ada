// Package notify sends text messages through Twilio.
package notify

import (
	"context"
	"errors"
	"log"
	"strings"

	"instala_control/internal/usecase/interfaces"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

var ErrMissingRecipient = errors.New("recipient phone is required")

// MessageAPI is the part of the Twilio REST client the notifier needs.
type MessageAPI interface {
	CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error)
}

// TwilioNotifier sends SMS, or WhatsApp when a WhatsApp sender is configured
// and the recipient is in E.164 form.
type TwilioNotifier struct {
	api      MessageAPI
	from     string
	whatsapp string
}

var _ interfaces.INotifier = (*TwilioNotifier)(nil)

func NewTwilioNotifier(accountSID, authToken, from, whatsappFrom string) *TwilioNotifier {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return NewNotifierWithAPI(client.Api, from, whatsappFrom)
}

func NewNotifierWithAPI(api MessageAPI, from, whatsappFrom string) *TwilioNotifier {
	return &TwilioNotifier{api: api, from: from, whatsapp: whatsappFrom}
}

func (n *TwilioNotifier) Send(_ context.Context, to, body string) error {
	to = strings.TrimSpace(to)
	if to == "" {
		return ErrMissingRecipient
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetBody(body)
	if n.whatsapp != "" && strings.HasPrefix(to, "+") {
		params.SetTo("whatsapp:" + to)
		params.SetFrom("whatsapp:" + n.whatsapp)
	} else {
		params.SetTo(to)
		params.SetFrom(n.from)
	}

	resp, err := n.api.CreateMessage(params)
	if err != nil {
		log.Printf("[notify][twilio] send failed to=%s err=%v", to, err)
		return err
	}
	if resp != nil && resp.Sid != nil {
		log.Printf("[notify][twilio] sent to=%s sid=%s", to, *resp.Sid)
	}
	return nil
}
