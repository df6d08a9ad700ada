package notify

import (
	"context"
	"errors"
	"testing"

	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

type fakeAPI struct {
	got *twilioApi.CreateMessageParams
	err error
}

func (f *fakeAPI) CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error) {
	f.got = params
	sid := "SM1"
	return &twilioApi.ApiV2010Message{Sid: &sid}, f.err
}

func TestTwilioNotifier_Send(t *testing.T) {
	t.Run("sms", func(t *testing.T) {
		api := &fakeAPI{}
		n := NewNotifierWithAPI(api, "+15550001", "")
		if err := n.Send(context.Background(), " +5511999990000 ", "oi"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if *api.got.To != "+5511999990000" || *api.got.From != "+15550001" || *api.got.Body != "oi" {
			t.Fatalf("unexpected params: to=%s from=%s", *api.got.To, *api.got.From)
		}
	})

	t.Run("whatsapp", func(t *testing.T) {
		api := &fakeAPI{}
		n := NewNotifierWithAPI(api, "+15550001", "+15550002")
		if err := n.Send(context.Background(), "+5511999990000", "oi"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if *api.got.To != "whatsapp:+5511999990000" || *api.got.From != "whatsapp:+15550002" {
			t.Fatalf("unexpected params: to=%s from=%s", *api.got.To, *api.got.From)
		}
	})

	t.Run("errors", func(t *testing.T) {
		n := NewNotifierWithAPI(&fakeAPI{err: errors.New("twilio")}, "+1", "")
		if err := n.Send(context.Background(), "", "oi"); !errors.Is(err, ErrMissingRecipient) {
			t.Fatalf("expected ErrMissingRecipient, got %v", err)
		}
		if err := n.Send(context.Background(), "+55", "oi"); err == nil {
			t.Fatalf("expected api error")
		}
	})
}
