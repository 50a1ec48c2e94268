package itinerary

import (
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/Domenick1991/tripavista/internal/domain"
	"github.com/Domenick1991/tripavista/internal/refdata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedSource returns the queued values in order, then zeros.
type fixedSource struct {
	mu     sync.Mutex
	values []int
}

func (s *fixedSource) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.values) == 0 {
		return 0
	}
	v := s.values[0]
	s.values = s.values[1:]
	return v % n
}

var start = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

func newTestGenerator(values ...int) *Generator {
	return NewGenerator(refdata.MustLoad(), &fixedSource{values: values})
}

func TestGenerate_FullKnownDestination(t *testing.T) {
	g := newTestGenerator()

	days, err := g.Generate("Paris", start, FullDays)
	require.NoError(t, err)
	require.Len(t, days, 7)

	assert.Equal(t, "Arrival & Welcome", days[0].Title)
	assert.NotEqual(t, days[0].Title, days[6].Title)
	assert.Equal(t, "Eiffel Tower Tour", days[0].Activities[1].Title)
	assert.Equal(t, "Day 2", days[1].Title)
	assert.Equal(t, "Departure", days[6].Title)

	last := days[6].Activities
	require.Len(t, last, 7)
	assert.Equal(t, "Check-out", last[5].Title)
	assert.Equal(t, "Airport Transfer", last[6].Title)

	assert.Equal(t, "June 1, 2024", days[0].Date)
	assert.Equal(t, "June 7, 2024", days[6].Date)
	for i, d := range days {
		assert.Equal(t, i+1, d.Day)
		assert.Equal(t, []string{"Breakfast", "Lunch", "Dinner"}, d.Meals)
		assert.Equal(t, "Hotel des Invalides - Luxury Collection", d.Accommodation)
	}
}

func TestGenerate_RegularDayTemplate(t *testing.T) {
	g := newTestGenerator()

	days, err := g.Generate("Tokyo", start, FullDays)
	require.NoError(t, err)

	acts := days[1].Activities
	require.Len(t, acts, 5)
	assert.Equal(t, domain.Activity{Time: "10:00", Title: "Tokyo Exploration", Description: "Historical sites tour"}, acts[1])
	assert.Equal(t, domain.Activity{Time: "15:00", Title: "Garden Visit", Description: "Imperial Gardens"}, acts[3])

	assert.Equal(t, "Beach/nature activities", days[5].Activities[1].Description)
	assert.Equal(t, "Free time & relaxation", days[6].Activities[1].Description)
}

func TestGenerate_PreviewMatchesFullPlan(t *testing.T) {
	g := newTestGenerator()

	preview, err := g.Generate("Bali", start, PreviewDays)
	require.NoError(t, err)
	full, err := g.Generate("Bali", start, FullDays)
	require.NoError(t, err)

	require.Len(t, preview, 3)
	assert.Equal(t, "Jun 1, 2024", preview[0].Date)
	for i := range preview {
		p, f := preview[i], full[i]
		p.Date, f.Date = "", ""
		assert.Equal(t, f, p)
	}
	assert.Equal(t, "Day 3", preview[2].Title)
}

func TestGenerate_UnknownDestinationFallsBack(t *testing.T) {
	g := newTestGenerator()

	days, err := g.Generate("Reykjavik", start, FullDays)
	require.NoError(t, err)
	require.Len(t, days, 7)

	assert.Len(t, days[0].Activities, 3)
	assert.Equal(t, "Hotel check-in and welcome", days[0].Activities[0].Description)
	assert.Equal(t, "Reykjavik Exploration", days[1].Activities[1].Title)
	assert.Equal(t, "Premium Hotel", days[3].Accommodation)
}

func TestGenerate_RejectsOtherLengths(t *testing.T) {
	g := newTestGenerator()

	for _, n := range []int{0, 1, 5, 14} {
		_, err := g.Generate("Paris", start, n)
		assert.ErrorIs(t, err, domain.ErrValidation)
	}
}

func TestTravel_IsDeterministic(t *testing.T) {
	g := newTestGenerator()

	a := g.Travel("Maldives", start)
	b := g.Travel("Maldives", start)
	assert.Equal(t, a, b)

	assert.Equal(t, "EK203", a.Outbound.Flight)
	assert.Equal(t, "2024-06-01", a.Outbound.Date)
	assert.Equal(t, "EK204", a.Return.Flight)
	assert.Equal(t, "2024-06-07", a.Return.Date)
	assert.Equal(t, "Conrad Maldives Rangali Island", a.Hotel.Name)
	assert.Empty(t, a.Outbound.BookingRef)
	assert.Empty(t, a.Outbound.Seat)
	assert.Empty(t, a.Hotel.BookingRef)
}

func TestAssignReferences(t *testing.T) {
	// outbound ref, row, letter, return ref, row, letter, hotel ref
	g := newTestGenerator(23456, 11, 2, 0, 39, 5, 899999)

	plan := g.AssignReferences("Paris", g.Travel("Paris", start))

	assert.Equal(t, "TW123456", plan.Outbound.BookingRef)
	assert.Equal(t, "12C", plan.Outbound.Seat)
	assert.Equal(t, "TW100000", plan.Return.BookingRef)
	assert.Equal(t, "40F", plan.Return.Seat)
	assert.Equal(t, "HTL999999", plan.Hotel.BookingRef)
}

func TestAssignReferences_Formats(t *testing.T) {
	g := NewGenerator(refdata.MustLoad(), nil)
	flightRef := regexp.MustCompile(`^TW\d{6}$`)
	hotelRef := regexp.MustCompile(`^HTL\d{6}$`)
	seat := regexp.MustCompile(`^([1-9]|[1-3]\d|40)[A-F]$`)

	for i := 0; i < 50; i++ {
		plan := g.AssignReferences("Bali", g.Travel("Bali", start))
		assert.Regexp(t, flightRef, plan.Outbound.BookingRef)
		assert.Regexp(t, flightRef, plan.Return.BookingRef)
		assert.Regexp(t, hotelRef, plan.Hotel.BookingRef)
		assert.Regexp(t, seat, plan.Outbound.Seat)
	}
}

func TestAssignReferences_FixedSeat(t *testing.T) {
	g := newTestGenerator()

	plan := g.AssignReferences("Reykjavik", g.Travel("Reykjavik", start))
	assert.Equal(t, "12A", plan.Outbound.Seat)
	assert.Equal(t, "12A", plan.Return.Seat)
	assert.Equal(t, "Reykjavik Airport", plan.Outbound.Arrival.Name)
}

func TestBookingReference(t *testing.T) {
	at := time.Date(2024, 5, 20, 10, 0, 0, 123_000_000, time.UTC)

	g := newTestGenerator(23456)
	assert.Equal(t, "TWV99200123123456", g.BookingReference(at))

	g = NewGenerator(refdata.MustLoad(), nil)
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		ref := g.BookingReference(at)
		assert.Regexp(t, `^TWV99200123\d{6}$`, ref)
		seen[ref] = true
	}
	assert.Greater(t, len(seen), 90)
}

func TestQRCode(t *testing.T) {
	g := NewGenerator(refdata.MustLoad(), nil)
	assert.Regexp(t, `^[0-9a-z]{13}$`, g.QRCode())
}
