// internal/domain/entity/search_stats.go
package entity

// SearchStats accumulates counters for one poll cycle
type SearchStats struct {
	DatesChecked        int
	DatesWithFlights    int
	DatesWithoutFlights int
	OffersFound         int
	Errors              int
	FoundDates          []string
}

// NewSearchStats creates empty statistics for a fresh cycle
func NewSearchStats() *SearchStats {
	return &SearchStats{}
}

// RecordFound registers a date that produced offers
func (s *SearchStats) RecordFound(date string, offers int) {
	s.DatesWithFlights++
	s.OffersFound += offers
	s.FoundDates = append(s.FoundDates, date)
}

// RecordEmpty registers a date with no offers
func (s *SearchStats) RecordEmpty() {
	s.DatesWithoutFlights++
}

// RecordError registers a date whose search was abandoned
func (s *SearchStats) RecordError() {
	s.Errors++
}
