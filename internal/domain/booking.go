package domain

import (
	"strings"
	"time"
)

// DateLayout is the wire format of travel dates.
const DateLayout = "2006-01-02"

const (
	MinTravelers = 1
	MaxTravelers = 20
)

// BookingDraft is the record created by the booking form and forwarded by
// value through roadmap, payment and ticket. Name and Email are empty for
// drafts created from the preview entry point.
type BookingDraft struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Date        string `json:"date"`
	Travelers   int    `json:"travelers"`
	Destination string `json:"destination"`
	Price       string `json:"price"`
}

func (d BookingDraft) HasContact() bool {
	return strings.TrimSpace(d.Name) != "" && strings.TrimSpace(d.Email) != ""
}

func (d BookingDraft) StartDate() (time.Time, error) {
	return time.Parse(DateLayout, d.Date)
}

type PaymentMethod string

const (
	PaymentMethodCard   PaymentMethod = "card"
	PaymentMethodPayPal PaymentMethod = "paypal"
)

// PriceBreakdown is derived at checkout; amounts are whole currency units.
type PriceBreakdown struct {
	Subtotal   int64 `json:"subtotal"`
	ServiceFee int64 `json:"service_fee"`
	Taxes      int64 `json:"taxes"`
	Total      int64 `json:"total"`
}

// Confirmation is generated once, when a booking becomes confirmed, and
// carried with the ticket from then on.
type Confirmation struct {
	Reference     string         `json:"reference"`
	QRCode        string         `json:"qr_code"`
	Travel        TravelPlan     `json:"travel"`
	Price         PriceBreakdown `json:"price"`
	PaymentMethod PaymentMethod  `json:"payment_method"`
	CardLast4     string         `json:"card_last4,omitempty"`
	ConfirmedAt   time.Time      `json:"confirmed_at"`
}

type Ticket struct {
	Draft        BookingDraft `json:"booking"`
	Confirmation Confirmation `json:"confirmation"`
}
