package directory

import (
	"reflect"
	"testing"
)

func sampleDoctors() []*Doctor {
	return []*Doctor{
		{
			Name:             "Ana García",
			PrimarySpecialty: "Cardiología",
			Rating:           Rating{Average: 4.9, Count: 120},
			ConsultationFee:  800,
			YearsExperience:  15,
			Address:          Address{City: "Ciudad de México"},
		},
		{
			Name:             "Luis Pérez",
			PrimarySpecialty: "Pediatría",
			Rating:           Rating{Average: 4.2, Count: 48},
			ConsultationFee:  600,
			YearsExperience:  8,
			Address:          Address{City: "Guadalajara"},
		},
	}
}

func names(doctors []*Doctor) []string {
	out := make([]string, len(doctors))
	for i, d := range doctors {
		out[i] = d.Name
	}
	return out
}

func TestSearch_TextMatchesSpecialty(t *testing.T) {
	got := Search(sampleDoctors(), Query{Text: "cardio", MaxPrice: 2000})

	if want := []string{"Ana García"}; !reflect.DeepEqual(names(got), want) {
		t.Errorf("expected %v, got %v", want, names(got))
	}
}

func TestSearch_TextMatchesName(t *testing.T) {
	got := Search(sampleDoctors(), Query{Text: "luis"})

	if want := []string{"Luis Pérez"}; !reflect.DeepEqual(names(got), want) {
		t.Errorf("expected %v, got %v", want, names(got))
	}
}

func TestSearch_TextCaseInsensitive(t *testing.T) {
	got := Search(sampleDoctors(), Query{Text: "CARDIO"})
	if len(got) != 1 || got[0].Name != "Ana García" {
		t.Errorf("expected case-insensitive match, got %v", names(got))
	}
}

func TestSearch_LocationFilter(t *testing.T) {
	got := Search(sampleDoctors(), Query{Location: "guadalajara"})

	if want := []string{"Luis Pérez"}; !reflect.DeepEqual(names(got), want) {
		t.Errorf("expected %v, got %v", want, names(got))
	}
}

func TestSearch_SpecialtyExactMatch(t *testing.T) {
	got := Search(sampleDoctors(), Query{Specialty: "Pediatría"})
	if want := []string{"Luis Pérez"}; !reflect.DeepEqual(names(got), want) {
		t.Errorf("expected %v, got %v", want, names(got))
	}

	// Partial specialty text is not an exact match.
	got = Search(sampleDoctors(), Query{Specialty: "Pedia"})
	if len(got) != 0 {
		t.Errorf("expected no exact match for partial specialty, got %v", names(got))
	}
}

func TestSearch_RatingFloor(t *testing.T) {
	got := Search(sampleDoctors(), Query{MinRating: 4.5})
	if want := []string{"Ana García"}; !reflect.DeepEqual(names(got), want) {
		t.Errorf("expected %v, got %v", want, names(got))
	}

	// Zero disables the floor.
	got = Search(sampleDoctors(), Query{MinRating: 0})
	if len(got) != 2 {
		t.Errorf("expected rating floor disabled at 0, got %v", names(got))
	}
}

func TestSearch_PriceCeiling(t *testing.T) {
	got := Search(sampleDoctors(), Query{MaxPrice: 700})
	if want := []string{"Luis Pérez"}; !reflect.DeepEqual(names(got), want) {
		t.Errorf("expected %v, got %v", want, names(got))
	}
}

func TestSearch_SortByFeeAscending(t *testing.T) {
	got := Search(sampleDoctors(), Query{SortBy: SortByFee})

	if want := []string{"Luis Pérez", "Ana García"}; !reflect.DeepEqual(names(got), want) {
		t.Errorf("expected %v, got %v", want, names(got))
	}
}

func TestSearch_SortByRatingDescending(t *testing.T) {
	got := Search(sampleDoctors(), Query{SortBy: SortByRating})

	if want := []string{"Ana García", "Luis Pérez"}; !reflect.DeepEqual(names(got), want) {
		t.Errorf("expected %v, got %v", want, names(got))
	}
}

func TestSearch_SortByExperienceDescending(t *testing.T) {
	got := Search(sampleDoctors(), Query{SortBy: SortByExperience})

	if want := []string{"Ana García", "Luis Pérez"}; !reflect.DeepEqual(names(got), want) {
		t.Errorf("expected %v, got %v", want, names(got))
	}
}

func TestSearch_StableTies(t *testing.T) {
	doctors := []*Doctor{
		{Name: "A", Rating: Rating{Average: 4.0}},
		{Name: "B", Rating: Rating{Average: 4.0}},
		{Name: "C", Rating: Rating{Average: 4.0}},
	}

	got := Search(doctors, Query{SortBy: SortByRating})
	if want := []string{"A", "B", "C"}; !reflect.DeepEqual(names(got), want) {
		t.Errorf("expected stable order %v, got %v", want, names(got))
	}
}

func TestSearch_DoesNotMutateInput(t *testing.T) {
	doctors := sampleDoctors()
	original := names(doctors)

	Search(doctors, Query{SortBy: SortByFee})

	if !reflect.DeepEqual(names(doctors), original) {
		t.Errorf("input order changed: %v", names(doctors))
	}
}

func TestSearch_Idempotent(t *testing.T) {
	doctors := sampleDoctors()
	q := Query{Text: "a", MinRating: 0, MaxPrice: 2000, SortBy: SortByRating}

	first := Search(doctors, q)
	second := Search(doctors, q)

	if !reflect.DeepEqual(names(first), names(second)) {
		t.Errorf("expected identical results, got %v then %v", names(first), names(second))
	}
}
