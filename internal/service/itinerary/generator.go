package itinerary

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"sync"
	"time"

	"github.com/Domenick1991/tripavista/internal/domain"
	"github.com/Domenick1991/tripavista/internal/refdata"
)

const (
	PreviewDays = 3
	FullDays    = 7

	previewDateLayout = "Jan 2, 2006"
	fullDateLayout    = "January 2, 2006"

	// Return flights leave on the last day of a full trip.
	returnOffset = FullDays - 1
)

var meals = []string{"Breakfast", "Lunch", "Dinner"}

var explorationFocus = []string{
	"Historical sites tour",
	"Cultural experiences",
	"Adventure activities",
	"Local markets & shopping",
	"Beach/nature activities",
}

// Profiles resolves a destination to its itinerary content.
type Profiles interface {
	Lookup(destination string) (refdata.Profile, bool)
}

// RandomSource is the randomness behind reference numbers and seats.
type RandomSource interface {
	IntN(n int) int
}

type Generator struct {
	profiles Profiles

	mu  sync.Mutex
	rnd RandomSource
}

// NewGenerator builds a generator. A nil rnd selects a time-seeded source.
func NewGenerator(profiles Profiles, rnd RandomSource) *Generator {
	if rnd == nil {
		seed := uint64(time.Now().UnixNano())
		rnd = rand.New(rand.NewPCG(seed, seed>>1))
	}
	return &Generator{profiles: profiles, rnd: rnd}
}

// Generate lays out a 3-day preview or a 7-day roadmap. Both share the
// same day content; only the date display differs.
func (g *Generator) Generate(destination string, start time.Time, days int) ([]domain.ItineraryDay, error) {
	var layout string
	switch days {
	case PreviewDays:
		layout = previewDateLayout
	case FullDays:
		layout = fullDateLayout
	default:
		return nil, fmt.Errorf("%w: itinerary must span %d or %d days, got %d", domain.ErrValidation, PreviewDays, FullDays, days)
	}

	profile, _ := g.profiles.Lookup(destination)

	plan := make([]domain.ItineraryDay, 0, days)
	for i := 0; i < days; i++ {
		day := domain.ItineraryDay{
			Day:           i + 1,
			Title:         "Day " + strconv.Itoa(i+1),
			Date:          start.AddDate(0, 0, i).Format(layout),
			Meals:         append([]string(nil), meals...),
			Accommodation: profile.Hotel,
		}
		if i == 0 {
			day.Title = "Arrival & Welcome"
			day.Activities = append([]domain.Activity(nil), profile.Arrival...)
		} else {
			day.Activities = regularDay(destination, i, profile.Feature)
		}
		if days == FullDays && i == days-1 {
			day.Title = "Departure"
			day.Activities = append(day.Activities,
				domain.Activity{Time: "11:00", Title: "Check-out", Description: "Hotel departure"},
				domain.Activity{Time: "14:00", Title: "Airport Transfer", Description: "Transfer to airport"},
			)
		}
		plan = append(plan, day)
	}
	return plan, nil
}

func regularDay(destination string, i int, feature domain.Activity) []domain.Activity {
	focus := "Free time & relaxation"
	if i <= len(explorationFocus) {
		focus = explorationFocus[i-1]
	}
	feature.Time = "15:00"
	return []domain.Activity{
		{Time: "09:00", Title: "Breakfast", Description: "Hotel breakfast buffet"},
		{Time: "10:00", Title: destination + " Exploration", Description: focus},
		{Time: "13:00", Title: "Lunch", Description: "Local restaurant"},
		feature,
		{Time: "19:00", Title: "Dinner", Description: "Fine dining experience"},
	}
}

// Travel synthesizes the flights and hotel stay of a trip. Reference
// numbers and seats are left empty; see AssignReferences.
func (g *Generator) Travel(destination string, start time.Time) domain.TravelPlan {
	profile, _ := g.profiles.Lookup(destination)

	plan := domain.TravelPlan{
		Outbound: profile.Outbound,
		Return:   profile.Return,
		Hotel:    profile.Stay,
	}
	plan.Outbound.Date = start.Format(domain.DateLayout)
	plan.Return.Date = start.AddDate(0, 0, returnOffset).Format(domain.DateLayout)
	return plan
}

// AssignReferences fills booking references and seats. Call it once per
// confirmed booking; the result is carried from then on.
func (g *Generator) AssignReferences(destination string, plan domain.TravelPlan) domain.TravelPlan {
	profile, _ := g.profiles.Lookup(destination)

	g.mu.Lock()
	defer g.mu.Unlock()

	plan.Outbound.BookingRef = "TW" + g.sixDigits()
	plan.Outbound.Seat = g.seat(profile.FixedSeat)
	plan.Return.BookingRef = "TW" + g.sixDigits()
	plan.Return.Seat = g.seat(profile.FixedSeat)
	plan.Hotel.BookingRef = "HTL" + g.sixDigits()
	return plan
}

// BookingReference is "TWV", the last eight digits of the Unix millisecond
// clock at confirmation and a random six digit suffix, so bookings
// confirmed in the same millisecond still differ.
func (g *Generator) BookingReference(at time.Time) string {
	ms := strconv.FormatInt(at.UnixMilli(), 10)
	if len(ms) > 8 {
		ms = ms[len(ms)-8:]
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	return "TWV" + ms + g.sixDigits()
}

// QRCode returns a 13 character base36 token for the ticket.
func (g *Generator) QRCode() string {
	const alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

	g.mu.Lock()
	defer g.mu.Unlock()

	b := make([]byte, 13)
	for i := range b {
		b[i] = alphabet[g.rnd.IntN(len(alphabet))]
	}
	return string(b)
}

func (g *Generator) sixDigits() string {
	return strconv.Itoa(100000 + g.rnd.IntN(900000))
}

func (g *Generator) seat(fixed string) string {
	if fixed != "" {
		return fixed
	}
	row := g.rnd.IntN(40) + 1
	letter := rune('A' + g.rnd.IntN(6))
	return strconv.Itoa(row) + string(letter)
}
