package domain

import (
	"fmt"
	"time"
)

type TravelType string

const (
	TravelTypeFlights    TravelType = "flights"
	TravelTypeHotels     TravelType = "hotels"
	TravelTypePackages   TravelType = "packages"
	TravelTypeCarRentals TravelType = "car-rentals"
)

func (t TravelType) Valid() bool {
	switch t {
	case TravelTypeFlights, TravelTypeHotels, TravelTypePackages, TravelTypeCarRentals:
		return true
	}
	return false
}

// Destination is one entry of the static catalog.
type Destination struct {
	Title      string   `json:"title" yaml:"title"`
	Location   string   `json:"location" yaml:"location"`
	Image      string   `json:"image" yaml:"image"`
	Price      string   `json:"price" yaml:"price"`
	PriceValue int      `json:"price_value" yaml:"price_value"`
	Rating     float64  `json:"rating" yaml:"rating"`
	Reviews    int      `json:"reviews" yaml:"reviews"`
	Activities []string `json:"activities" yaml:"activities"`
}

// HasAnyActivity reports whether the destination carries at least one of tags.
func (d Destination) HasAnyActivity(tags []string) bool {
	for _, want := range tags {
		for _, have := range d.Activities {
			if want == have {
				return true
			}
		}
	}
	return false
}

type PriceRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

func (r PriceRange) Contains(v int) bool {
	return v >= r.Min && v <= r.Max
}

// SearchCriteria holds the optional filter dimensions of the search form.
// A nil or empty field means the dimension was not supplied.
type SearchCriteria struct {
	Destination   string      `json:"destination,omitempty"`
	TravelType    TravelType  `json:"travel_type,omitempty"`
	DepartureDate *time.Time  `json:"departure_date,omitempty"`
	ReturnDate    *time.Time  `json:"return_date,omitempty"`
	Activities    []string    `json:"activities,omitempty"`
	PriceRange    *PriceRange `json:"price_range,omitempty"`
}

func (c SearchCriteria) IsEmpty() bool {
	return c.Destination == "" && c.TravelType == "" && c.DepartureDate == nil &&
		c.ReturnDate == nil && len(c.Activities) == 0 && c.PriceRange == nil
}

func (c SearchCriteria) Validate() error {
	if c.TravelType != "" && !c.TravelType.Valid() {
		return fmt.Errorf("%w: unknown travel type %q", ErrValidation, c.TravelType)
	}
	if c.PriceRange != nil && c.PriceRange.Min > c.PriceRange.Max {
		return fmt.Errorf("%w: price range minimum exceeds maximum", ErrValidation)
	}
	if c.DepartureDate != nil && c.ReturnDate != nil && c.ReturnDate.Before(*c.DepartureDate) {
		return fmt.Errorf("%w: return date is before departure date", ErrValidation)
	}
	return nil
}

// FeaturedFlight is a flight deal shown on the home page.
type FeaturedFlight struct {
	ID       string  `json:"id" yaml:"id"`
	Airline  string  `json:"airline" yaml:"airline"`
	Flight   string  `json:"flight" yaml:"flight"`
	From     Airport `json:"from" yaml:"from"`
	To       Airport `json:"to" yaml:"to"`
	Duration string  `json:"duration" yaml:"duration"`
	Price    string  `json:"price" yaml:"price"`
	Stops    int     `json:"stops" yaml:"stops"`
	Date     string  `json:"date" yaml:"date"`
}

// FeaturedHotel is a hotel shown on the home page.
type FeaturedHotel struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Location    string   `json:"location" yaml:"location"`
	Destination string   `json:"destination" yaml:"destination"`
	Price       string   `json:"price" yaml:"price"`
	Rating      int      `json:"rating" yaml:"rating"`
	Reviews     int      `json:"reviews" yaml:"reviews"`
	Amenities   []string `json:"amenities" yaml:"amenities"`
}
