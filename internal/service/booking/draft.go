package booking

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Domenick1991/tripavista/internal/domain"
	"github.com/Domenick1991/tripavista/internal/service/pricing"
)

// PreviewPrice is carried by drafts that were not priced by a booking form.
const PreviewPrice = "$0"

// DraftInput is the booking form as submitted; every field is text.
type DraftInput struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Date        string `json:"date"`
	Travelers   string `json:"travelers"`
	Destination string `json:"destination"`
	Price       string `json:"price"`
}

// NewDraft checks the booking form and builds the draft it describes.
func NewDraft(in DraftInput) (domain.BookingDraft, error) {
	travelers, err := strconv.Atoi(strings.TrimSpace(in.Travelers))
	if err != nil {
		return domain.BookingDraft{}, fmt.Errorf("%w: travelers must be a whole number", domain.ErrValidation)
	}
	draft := domain.BookingDraft{
		Name:        strings.TrimSpace(in.Name),
		Email:       strings.TrimSpace(in.Email),
		Date:        strings.TrimSpace(in.Date),
		Travelers:   travelers,
		Destination: strings.TrimSpace(in.Destination),
		Price:       strings.TrimSpace(in.Price),
	}
	if err := ValidateDraft(draft, true); err != nil {
		return domain.BookingDraft{}, err
	}
	return draft, nil
}

// NewPreviewDraft builds the contact-less draft behind the destinations
// page preview. An empty date means today.
func NewPreviewDraft(destination, date string, today time.Time) (domain.BookingDraft, error) {
	if strings.TrimSpace(date) == "" {
		date = today.Format(domain.DateLayout)
	}
	draft := domain.BookingDraft{
		Date:        strings.TrimSpace(date),
		Travelers:   domain.MinTravelers,
		Destination: strings.TrimSpace(destination),
		Price:       PreviewPrice,
	}
	if err := ValidateDraft(draft, false); err != nil {
		return domain.BookingDraft{}, err
	}
	return draft, nil
}

// ValidateDraft checks the fields every step relies on. Contact fields are
// only checked when withContact is set.
func ValidateDraft(d domain.BookingDraft, withContact bool) error {
	if withContact {
		if d.Name == "" {
			return fmt.Errorf("%w: name is required", domain.ErrValidation)
		}
		if d.Email == "" {
			return fmt.Errorf("%w: email is required", domain.ErrValidation)
		}
		if !strings.Contains(d.Email, "@") {
			return fmt.Errorf("%w: email %q is not an address", domain.ErrValidation, d.Email)
		}
	}
	if d.Date == "" {
		return fmt.Errorf("%w: date is required", domain.ErrValidation)
	}
	if _, err := d.StartDate(); err != nil {
		return fmt.Errorf("%w: date %q is not a calendar date", domain.ErrValidation, d.Date)
	}
	if d.Travelers < domain.MinTravelers || d.Travelers > domain.MaxTravelers {
		return fmt.Errorf("%w: travelers must be between %d and %d", domain.ErrValidation, domain.MinTravelers, domain.MaxTravelers)
	}
	if d.Destination == "" {
		return fmt.Errorf("%w: destination is required", domain.ErrValidation)
	}
	if _, err := pricing.ParsePrice(d.Price); err != nil {
		return err
	}
	return nil
}
