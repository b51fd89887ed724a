package notifier

import (
	"context"
	"fmt"
	"net/http"

	"github.com/twilio/twilio-go"
	twclient "github.com/twilio/twilio-go/client"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

// messageCreator is the subset of the Twilio API used here.
type messageCreator interface {
	CreateMessage(params *openapi.CreateMessageParams) (*openapi.ApiV2010Message, error)
}

// TwilioTransport sends SMS through Twilio's Messages API.
type TwilioTransport struct {
	From string
	To   string
	api  messageCreator
}

// NewTwilioTransport creates an SMS transport for a single recipient. Requests
// go through httpClient so the shared timeout and proxy apply.
func NewTwilioTransport(accountSID, authToken, from, to string, httpClient *http.Client) *TwilioTransport {
	base := &twclient.Client{
		Credentials: twclient.NewCredentials(accountSID, authToken),
		HTTPClient:  httpClient,
	}
	base.SetAccountSid(accountSID)
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
		Client:   base,
	})
	return &TwilioTransport{From: from, To: to, api: client.Api}
}

func (t *TwilioTransport) Name() string { return "twilio" }

// Send creates one message. The Twilio client is not context-aware, so ctx is
// only checked before the call.
func (t *TwilioTransport) Send(ctx context.Context, body string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	params := &openapi.CreateMessageParams{}
	params.SetTo(t.To)
	params.SetFrom(t.From)
	params.SetBody(body)

	msg, err := t.api.CreateMessage(params)
	if err != nil {
		return "", fmt.Errorf("twilio create message: %w", err)
	}
	if msg == nil || msg.Status == nil {
		return "unknown", nil
	}
	return *msg.Status, nil
}
