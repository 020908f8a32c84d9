package directory

import (
	"sort"
	"strings"
)

// SortKey selects the result ordering of a search.
type SortKey string

const (
	SortByRating     SortKey = "rating"     // descending
	SortByFee        SortKey = "fee"        // ascending
	SortByExperience SortKey = "experience" // descending
)

// Query is one search request over an in-memory doctor collection.
// Zero values disable their stage: empty strings skip the text, location and
// specialty stages, MinRating 0 disables the rating floor, MaxPrice 0
// disables the price ceiling.
type Query struct {
	Text      string
	Location  string
	Specialty string
	MinRating float64
	MaxPrice  int
	SortBy    SortKey
}

// Search filters and sorts a doctor collection. The stages narrow the result
// in a fixed order: free-text match against name or primary specialty,
// location match against city, exact specialty, rating floor, price ceiling.
// The input slice is never mutated and identical inputs always produce
// identical output, so the engine can re-run on every keystroke.
func Search(doctors []*Doctor, q Query) []*Doctor {
	result := make([]*Doctor, 0, len(doctors))

	text := strings.ToLower(strings.TrimSpace(q.Text))
	location := strings.ToLower(strings.TrimSpace(q.Location))

	for _, d := range doctors {
		if text != "" &&
			!strings.Contains(strings.ToLower(d.Name), text) &&
			!strings.Contains(strings.ToLower(d.PrimarySpecialty), text) {
			continue
		}
		if location != "" && !strings.Contains(strings.ToLower(d.Address.City), location) {
			continue
		}
		if q.Specialty != "" && d.PrimarySpecialty != q.Specialty {
			continue
		}
		if q.MinRating > 0 && d.Rating.Average < q.MinRating {
			continue
		}
		if q.MaxPrice > 0 && d.ConsultationFee > q.MaxPrice {
			continue
		}
		result = append(result, d)
	}

	sortDoctors(result, q.SortBy)
	return result
}

// sortDoctors orders in place by the given key. Ties keep input order.
func sortDoctors(doctors []*Doctor, key SortKey) {
	switch key {
	case SortByRating:
		sort.SliceStable(doctors, func(i, j int) bool {
			return doctors[i].Rating.Average > doctors[j].Rating.Average
		})
	case SortByFee:
		sort.SliceStable(doctors, func(i, j int) bool {
			return doctors[i].ConsultationFee < doctors[j].ConsultationFee
		})
	case SortByExperience:
		sort.SliceStable(doctors, func(i, j int) bool {
			return doctors[i].YearsExperience > doctors[j].YearsExperience
		})
	}
}
