// payments.go - Payment intent creation through Stripe

package payments

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// ErrInvalidAmount is returned for prices that round to zero or less, or
// exceed MaxAmount.
var ErrInvalidAmount = errors.New("invalid amount")

// MaxAmount is the largest charge Stripe accepts, in minor units.
const MaxAmount = 99_999_999

// IntentCreator creates a card payment intent and returns its client secret.
type IntentCreator interface {
	CreateIntent(ctx context.Context, amount int64, currency string) (string, error)
}

// AmountFromPrice converts a decimal price to minor currency units.
func AmountFromPrice(price float64) (int64, error) {
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return 0, ErrInvalidAmount
	}
	cents := math.Round(price * 100)
	if cents <= 0 || cents > MaxAmount {
		return 0, ErrInvalidAmount
	}
	return int64(cents), nil
}

type Stripe struct {
	api *client.API
}

// NewStripe returns a Stripe-backed IntentCreator using secretKey.
func NewStripe(secretKey string) *Stripe {
	return &Stripe{api: client.New(secretKey, nil)}
}

func (s *Stripe) CreateIntent(ctx context.Context, amount int64, currency string) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(amount),
		Currency:           stripe.String(currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	params.Context = ctx

	intent, err := s.api.PaymentIntents.New(params)
	if err != nil {
		return "", fmt.Errorf("create payment intent: %w", err)
	}
	return intent.ClientSecret, nil
}
