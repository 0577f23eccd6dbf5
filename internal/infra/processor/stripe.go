package processor

import (
	"context"
	"encoding/json"

	"slotbooking/internal/pkg/errs"
	"slotbooking/internal/usecase/commands"

	stripe "github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/client"
	"github.com/stripe/stripe-go/v78/webhook"
)

type StripeProcessor struct {
	api           *client.API
	webhookSecret string
}

func NewStripeProcessor(secretKey, webhookSecret string) *StripeProcessor {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeProcessor{
		api:           api,
		webhookSecret: webhookSecret,
	}
}

func (p *StripeProcessor) CreateIntent(ctx context.Context, params commands.CreateIntentParams) (*commands.PaymentIntent, error) {
	intentParams := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(params.AmountCents),
		Currency: stripe.String(params.Currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	intentParams.Context = ctx
	for k, v := range params.Metadata {
		intentParams.AddMetadata(k, v)
	}
	// Retried initiation requests reuse the same processor object instead of
	// double-charging.
	intentParams.SetIdempotencyKey(params.IdempotencyKey)

	intent, err := p.api.PaymentIntents.New(intentParams)
	if err != nil {
		return nil, errs.Wrap(err, "failed to create payment intent")
	}

	return &commands.PaymentIntent{
		ID:           intent.ID,
		ClientSecret: intent.ClientSecret,
		Status:       string(intent.Status),
	}, nil
}

func (p *StripeProcessor) VerifyCallback(payload []byte, signature string) (*commands.PaymentEvent, error) {
	event, err := webhook.ConstructEvent(payload, signature, p.webhookSecret)
	if err != nil {
		return nil, errs.Mark(err, commands.ErrSignatureInvalid)
	}

	kind, ok := eventKind(string(event.Type))
	if !ok {
		return nil, commands.ErrEventIgnored
	}

	var intent stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
		return nil, errs.Wrap(err, "failed to decode payment intent from event")
	}

	return &commands.PaymentEvent{
		ProcessorPaymentID: intent.ID,
		Kind:               kind,
		AmountCents:        intent.Amount,
		Currency:           string(intent.Currency),
		Metadata:           intent.Metadata,
		Raw:                json.RawMessage(payload),
	}, nil
}

func eventKind(eventType string) (commands.EventKind, bool) {
	switch eventType {
	case "payment_intent.succeeded":
		return commands.EventSucceeded, true
	case "payment_intent.payment_failed":
		return commands.EventFailed, true
	case "payment_intent.canceled":
		return commands.EventCanceled, true
	case "payment_intent.processing":
		return commands.EventProcessing, true
	case "payment_intent.requires_action":
		return commands.EventRequiresAction, true
	default:
		return "", false
	}
}

var _ commands.PaymentProcessor = (*StripeProcessor)(nil)
