package search

import (
	"context"
	"time"

	"github.com/Domenick1991/tripavista/internal/domain"
)

type SearchUseCase interface {
	Search(ctx context.Context, criteria domain.SearchCriteria) (*Result, error)
	FeaturedFlights(ctx context.Context) ([]FlightDeal, error)
	FeaturedHotels(ctx context.Context) ([]HotelDeal, error)
	About(ctx context.Context) (domain.About, error)
}

// Catalog is the reference data the search reads from.
type Catalog interface {
	Catalog() []domain.Destination
	FeaturedFlights() []domain.FeaturedFlight
	FeaturedHotels() []domain.FeaturedHotel
	About() domain.About
}

type Result struct {
	Criteria     domain.SearchCriteria `json:"criteria"`
	Destinations []domain.Destination  `json:"destinations"`
	NoResults    bool                  `json:"no_results"`
}

// FlightDeal is a featured flight together with the search its select
// button starts.
type FlightDeal struct {
	domain.FeaturedFlight
	Select domain.SearchCriteria `json:"select"`
}

type HotelDeal struct {
	domain.FeaturedHotel
	Select domain.SearchCriteria `json:"select"`
}

type SearchService struct {
	catalog Catalog
}

func NewSearchService(catalog Catalog) *SearchService {
	return &SearchService{catalog: catalog}
}

func (s *SearchService) Search(ctx context.Context, criteria domain.SearchCriteria) (*Result, error) {
	if err := criteria.Validate(); err != nil {
		return nil, err
	}
	found := Filter(s.catalog.Catalog(), criteria)
	return &Result{
		Criteria:     criteria,
		Destinations: found,
		NoResults:    len(found) == 0,
	}, nil
}

func (s *SearchService) FeaturedFlights(ctx context.Context) ([]FlightDeal, error) {
	flights := s.catalog.FeaturedFlights()
	deals := make([]FlightDeal, 0, len(flights))
	for _, f := range flights {
		sel := domain.SearchCriteria{
			TravelType:  domain.TravelTypeFlights,
			Destination: f.To.Name,
		}
		if d, err := time.Parse(domain.DateLayout, f.Date); err == nil {
			sel.DepartureDate = &d
		}
		deals = append(deals, FlightDeal{FeaturedFlight: f, Select: sel})
	}
	return deals, nil
}

func (s *SearchService) FeaturedHotels(ctx context.Context) ([]HotelDeal, error) {
	hotels := s.catalog.FeaturedHotels()
	deals := make([]HotelDeal, 0, len(hotels))
	for _, h := range hotels {
		deals = append(deals, HotelDeal{
			FeaturedHotel: h,
			Select: domain.SearchCriteria{
				TravelType:  domain.TravelTypeHotels,
				Destination: h.Destination,
			},
		})
	}
	return deals, nil
}

var _ SearchUseCase = (*SearchService)(nil)

func (s *SearchService) About(ctx context.Context) (domain.About, error) {
	return s.catalog.About(), nil
}
