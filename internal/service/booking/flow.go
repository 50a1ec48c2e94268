package booking

import (
	"fmt"

	"github.com/Domenick1991/tripavista/internal/domain"
)

// State is a step of the booking flow.
type State string

const (
	StateBrowsing         State = "browsing"
	StateDraftCreated     State = "draft_created"
	StateRoadmapPreviewed State = "roadmap_previewed"
	StatePaymentPending   State = "payment_pending"
	StateConfirmed        State = "confirmed"
)

type Event string

const (
	EventSubmitBooking    Event = "submit_booking"
	EventViewRoadmap      Event = "view_roadmap"
	EventProceedToPayment Event = "proceed_to_payment"
	EventSubmitPayment    Event = "submit_payment"
	EventAbandon          Event = "abandon"
)

// Transition is the booking state machine. It returns the next state, or
// the current one together with the reason the event was refused.
//
//	browsing --submit_booking--> draft_created --view_roadmap--> roadmap_previewed
//	roadmap_previewed --proceed_to_payment--> payment_pending --submit_payment--> confirmed
//
// abandon returns to browsing from anywhere but confirmed.
func Transition(state State, event Event, draft *domain.BookingDraft) (State, error) {
	if state == StateConfirmed {
		return state, fmt.Errorf("%w: booking is already confirmed", domain.ErrIllegalTransition)
	}
	if event == EventAbandon {
		return StateBrowsing, nil
	}
	if draft == nil {
		return state, domain.ErrMissingContext
	}

	switch {
	case state == StateBrowsing && event == EventSubmitBooking:
		if err := ValidateDraft(*draft, true); err != nil {
			return state, err
		}
		return StateDraftCreated, nil
	case state == StateDraftCreated && event == EventViewRoadmap:
		return StateRoadmapPreviewed, nil
	case state == StateRoadmapPreviewed && event == EventProceedToPayment:
		if !draft.HasContact() {
			return state, domain.ErrContactRequired
		}
		return StatePaymentPending, nil
	case state == StatePaymentPending && event == EventSubmitPayment:
		return StateConfirmed, nil
	}
	return state, fmt.Errorf("%w: %s from %s", domain.ErrIllegalTransition, event, state)
}
