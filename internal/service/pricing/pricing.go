package pricing

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Domenick1991/tripavista/internal/domain"
)

// ServiceFee is charged once per booking regardless of party size.
const ServiceFee int64 = 49

// MaxSubtotal bounds price times travelers so fee and taxes fit in int64.
const MaxSubtotal int64 = math.MaxInt64 / 2

// ParsePrice reads a display price such as "$1,299" by keeping its digits.
func ParsePrice(price string) (int64, error) {
	var b strings.Builder
	for _, r := range price {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0, fmt.Errorf("%w: price %q has no digits", domain.ErrValidation, price)
	}
	v, err := strconv.ParseInt(b.String(), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: price %q: %v", domain.ErrValidation, price, err)
	}
	return v, nil
}

// ComputeTotal prices a trip: per-person price times travelers, the flat
// service fee and 10% taxes on the subtotal rounded half up.
func ComputeTotal(perPersonPrice string, travelers int) (domain.PriceBreakdown, error) {
	if travelers < domain.MinTravelers {
		return domain.PriceBreakdown{}, fmt.Errorf("%w: travelers must be at least %d", domain.ErrValidation, domain.MinTravelers)
	}
	price, err := ParsePrice(perPersonPrice)
	if err != nil {
		return domain.PriceBreakdown{}, err
	}

	if price > MaxSubtotal/int64(travelers) {
		return domain.PriceBreakdown{}, fmt.Errorf("%w: price %q for %d travelers is out of range", domain.ErrValidation, perPersonPrice, travelers)
	}

	subtotal := price * int64(travelers)
	taxes := (subtotal + 5) / 10
	return domain.PriceBreakdown{
		Subtotal:   subtotal,
		ServiceFee: ServiceFee,
		Taxes:      taxes,
		Total:      subtotal + ServiceFee + taxes,
	}, nil
}

// FormatUSD renders an amount as "$2,907".
func FormatUSD(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	digits := strconv.FormatInt(amount, 10)
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + "$" + b.String()
}
