package booking

import (
	"fmt"
	"strings"

	"github.com/Domenick1991/tripavista/internal/domain"
	"github.com/Domenick1991/tripavista/internal/service/pricing"
)

// PaymentDetails is the payment form. Nothing here is checked beyond
// presence: there is no gateway behind it.
type PaymentDetails struct {
	Method     domain.PaymentMethod `json:"method"`
	CardHolder string               `json:"card_holder"`
	CardNumber string               `json:"card_number"`
	Expiry     string               `json:"expiry"`
	CVV        string               `json:"cvv"`
}

// Normalize defaults the method to card and applies the display formats of
// the card form: number grouped by four, expiry as MM/YY.
func (p PaymentDetails) Normalize() PaymentDetails {
	if p.Method == "" {
		p.Method = domain.PaymentMethodCard
	}
	p.CardHolder = strings.TrimSpace(p.CardHolder)
	p.CardNumber = FormatCardNumber(p.CardNumber)
	p.Expiry = FormatExpiry(p.Expiry)
	p.CVV = digits(p.CVV, 4)
	return p
}

func (p PaymentDetails) Validate() error {
	switch p.Method {
	case domain.PaymentMethodPayPal:
		return nil
	case domain.PaymentMethodCard:
	default:
		return fmt.Errorf("%w: unknown payment method %q", domain.ErrValidation, p.Method)
	}

	missing := make([]string, 0, 4)
	if p.CardHolder == "" {
		missing = append(missing, "card holder")
	}
	if p.CardNumber == "" {
		missing = append(missing, "card number")
	}
	if p.Expiry == "" {
		missing = append(missing, "expiry")
	}
	if p.CVV == "" {
		missing = append(missing, "cvv")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", domain.ErrValidation, strings.Join(missing, ", "))
	}
	return nil
}

// Last4 returns the last four card digits, or "" for other methods.
func (p PaymentDetails) Last4() string {
	if p.Method != domain.PaymentMethodCard {
		return ""
	}
	d := digits(p.CardNumber, 19)
	if len(d) < 4 {
		return d
	}
	return d[len(d)-4:]
}

// FormatCardNumber keeps up to 16 digits in groups of four.
func FormatCardNumber(number string) string {
	d := digits(number, 16)
	var b strings.Builder
	for i, r := range d {
		if i > 0 && i%4 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// FormatExpiry renders "1226" or "12/26" as "12/26".
func FormatExpiry(expiry string) string {
	d := digits(expiry, 4)
	if len(d) <= 2 {
		return d
	}
	return d[:2] + "/" + d[2:]
}

// PaymentMessage is the notice shown once a payment went through.
func PaymentMessage(total int64) string {
	return fmt.Sprintf("Payment successful! %s charged. Your booking is confirmed.", pricing.FormatUSD(total))
}

func digits(s string, limit int) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' && b.Len() < limit {
			b.WriteRune(r)
		}
	}
	return b.String()
}
