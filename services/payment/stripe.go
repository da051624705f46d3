package payment

import (
	"context"
	"strconv"

	"smarthub/models"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
)

// StripeCharger confirms a PaymentIntent immediately. stripe.Key must be set.
type StripeCharger struct {
	newIntent func(*stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
}

func NewStripeCharger() *StripeCharger {
	return &StripeCharger{newIntent: paymentintent.New}
}

func (c *StripeCharger) Charge(ctx context.Context, req models.ChargeRequest) (*models.ChargeResult, error) {
	params := &stripe.PaymentIntentParams{
		Amount:        stripe.Int64(req.Amount),
		Currency:      stripe.String(req.Currency),
		PaymentMethod: stripe.String(req.PaymentToken),
		Confirm:       stripe.Bool(true),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled:        stripe.Bool(true),
			AllowRedirects: stripe.String("never"),
		},
	}
	params.Context = ctx
	params.AddMetadata("bookingId", strconv.FormatInt(req.BookingID, 10))

	pi, err := c.newIntent(params)
	if err != nil {
		return nil, err
	}
	return &models.ChargeResult{
		ChargeID:  pi.ID,
		BookingID: req.BookingID,
		Status:    string(pi.Status),
		Amount:    pi.Amount,
		Currency:  string(pi.Currency),
	}, nil
}
