package refdata

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/Domenick1991/tripavista/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed data.yaml
var embedded []byte

const destinationPlaceholder = "{destination}"

// Profile is the per-destination content the itinerary generator draws from.
type Profile struct {
	Hotel     string              `yaml:"hotel"`
	Arrival   []domain.Activity   `yaml:"arrival"`
	Feature   domain.Activity     `yaml:"feature"`
	Outbound  domain.FlightRecord `yaml:"outbound"`
	Return    domain.FlightRecord `yaml:"return"`
	FixedSeat string              `yaml:"fixed_seat"`
	Stay      domain.HotelRecord  `yaml:"stay"`
}

type document struct {
	Destinations    []domain.Destination    `yaml:"destinations"`
	Profiles        map[string]Profile      `yaml:"profiles"`
	Fallback        Profile                 `yaml:"fallback"`
	FeaturedFlights []domain.FeaturedFlight `yaml:"featured_flights"`
	FeaturedHotels  []domain.FeaturedHotel  `yaml:"featured_hotels"`
	About           domain.About            `yaml:"about"`
}

// Store is the read-only reference data shared by search and itinerary.
// Accessors return copies, so callers may modify what they get.
type Store struct {
	doc document
}

// Load parses the reference data compiled into the binary.
func Load() (*Store, error) {
	return Parse(embedded)
}

func Parse(data []byte) (*Store, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse reference data: %w", err)
	}
	if len(doc.Destinations) == 0 {
		return nil, errors.New("reference data has no destinations")
	}
	for i, d := range doc.Destinations {
		if strings.TrimSpace(d.Title) == "" {
			return nil, fmt.Errorf("destination #%d has no title", i+1)
		}
	}
	if doc.Fallback.Hotel == "" {
		return nil, errors.New("reference data has no fallback profile")
	}
	return &Store{doc: doc}, nil
}

// MustLoad is Load for program start-up.
func MustLoad() *Store {
	s, err := Load()
	if err != nil {
		panic(err)
	}
	return s
}

func (s *Store) Catalog() []domain.Destination {
	out := make([]domain.Destination, len(s.doc.Destinations))
	for i, d := range s.doc.Destinations {
		d.Activities = append([]string(nil), d.Activities...)
		out[i] = d
	}
	return out
}

func (s *Store) FeaturedFlights() []domain.FeaturedFlight {
	return append([]domain.FeaturedFlight(nil), s.doc.FeaturedFlights...)
}

func (s *Store) FeaturedHotels() []domain.FeaturedHotel {
	out := make([]domain.FeaturedHotel, len(s.doc.FeaturedHotels))
	for i, h := range s.doc.FeaturedHotels {
		h.Amenities = append([]string(nil), h.Amenities...)
		out[i] = h
	}
	return out
}

func (s *Store) About() domain.About {
	about := s.doc.About
	about.Story = append([]string(nil), about.Story...)
	about.Highlights = append([]domain.Highlight(nil), about.Highlights...)
	return about
}

// Lookup returns the profile of a known destination. For anything else it
// returns the fallback profile with the destination name filled in and
// false.
func (s *Store) Lookup(destination string) (Profile, bool) {
	if p, ok := s.doc.Profiles[destination]; ok {
		return p.clone(), true
	}
	return s.doc.Fallback.clone().fill(destination), false
}

func (p Profile) clone() Profile {
	p.Arrival = append([]domain.Activity(nil), p.Arrival...)
	p.Stay.Amenities = append([]string(nil), p.Stay.Amenities...)
	return p
}

func (p Profile) fill(destination string) Profile {
	r := strings.NewReplacer(destinationPlaceholder, destination)
	for i := range p.Arrival {
		p.Arrival[i].Location = r.Replace(p.Arrival[i].Location)
	}
	for _, f := range []*domain.FlightRecord{&p.Outbound, &p.Return} {
		f.Departure.Name = r.Replace(f.Departure.Name)
		f.Arrival.Name = r.Replace(f.Arrival.Name)
	}
	p.Stay.Address = r.Replace(p.Stay.Address)
	return p
}
