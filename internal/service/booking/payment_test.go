package booking

import (
	"testing"

	"github.com/Domenick1991/tripavista/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestPaymentDetails_Normalize(t *testing.T) {
	p := PaymentDetails{
		CardHolder: " Jane Doe ",
		CardNumber: "4242-4242-4242-4242-99",
		Expiry:     "1226",
		CVV:        "12a3",
	}.Normalize()

	assert.Equal(t, domain.PaymentMethodCard, p.Method)
	assert.Equal(t, "Jane Doe", p.CardHolder)
	assert.Equal(t, "4242 4242 4242 4242", p.CardNumber)
	assert.Equal(t, "12/26", p.Expiry)
	assert.Equal(t, "123", p.CVV)
	assert.Equal(t, "4242", p.Last4())
}

func TestPaymentDetails_Validate(t *testing.T) {
	card := PaymentDetails{Method: domain.PaymentMethodCard, CardHolder: "Jane", CardNumber: "4242", Expiry: "12/26", CVV: "123"}
	assert.NoError(t, card.Validate())

	missing := card
	missing.CVV = ""
	assert.ErrorIs(t, missing.Validate(), domain.ErrValidation)

	assert.NoError(t, PaymentDetails{Method: domain.PaymentMethodPayPal}.Validate())
	assert.Empty(t, PaymentDetails{Method: domain.PaymentMethodPayPal}.Last4())

	assert.ErrorIs(t, PaymentDetails{Method: "cash"}.Validate(), domain.ErrValidation)
}

func TestFormatExpiry(t *testing.T) {
	assert.Equal(t, "12/26", FormatExpiry("12/26"))
	assert.Equal(t, "1", FormatExpiry("1"))
	assert.Equal(t, "12", FormatExpiry("12"))
	assert.Equal(t, "12/2", FormatExpiry("122"))
}

func TestPaymentMessage(t *testing.T) {
	assert.Equal(t, "Payment successful! $2,907 charged. Your booking is confirmed.", PaymentMessage(2907))
}
