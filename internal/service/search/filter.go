package search

import (
	"strings"

	"github.com/Domenick1991/tripavista/internal/domain"
)

// Filter returns the catalog entries matching every supplied dimension of
// criteria, in catalog order. Travel type and dates do not narrow the
// catalog.
func Filter(catalog []domain.Destination, criteria domain.SearchCriteria) []domain.Destination {
	query := strings.ToLower(strings.TrimSpace(criteria.Destination))

	out := make([]domain.Destination, 0, len(catalog))
	for _, d := range catalog {
		if query != "" &&
			!strings.Contains(strings.ToLower(d.Title), query) &&
			!strings.Contains(strings.ToLower(d.Location), query) {
			continue
		}
		if criteria.PriceRange != nil && !criteria.PriceRange.Contains(d.PriceValue) {
			continue
		}
		if len(criteria.Activities) > 0 && !d.HasAnyActivity(criteria.Activities) {
			continue
		}
		out = append(out, d)
	}
	return out
}
