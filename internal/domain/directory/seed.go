package directory

import "context"

// baselineSpecialties is the catalog loaded by the seed command on a fresh
// database.
var baselineSpecialties = []Specialty{
	{NameEN: "General Medicine", NameES: "Medicina General", Category: CategoryPrimaryCare, Priority: 10, Active: true,
		CommonConditions: []string{"flu", "hypertension", "diabetes"}},
	{NameEN: "Pediatrics", NameES: "Pediatría", Category: CategoryPrimaryCare, Priority: 9, Active: true,
		CommonConditions: []string{"vaccination", "growth checkups"}},
	{NameEN: "Cardiology", NameES: "Cardiología", Category: CategorySpecialty, Priority: 9, Active: true,
		CommonConditions: []string{"chest pain", "arrhythmia", "hypertension"}},
	{NameEN: "Dermatology", NameES: "Dermatología", Category: CategorySpecialty, Priority: 8, Active: true,
		CommonConditions: []string{"acne", "eczema", "moles"}},
	{NameEN: "Gynecology", NameES: "Ginecología", Category: CategorySpecialty, Priority: 8, Active: true},
	{NameEN: "Psychiatry", NameES: "Psiquiatría", Category: CategoryMentalHealth, Priority: 7, Active: true,
		CommonConditions: []string{"anxiety", "depression", "insomnia"}},
	{NameEN: "Psychology", NameES: "Psicología", Category: CategoryMentalHealth, Priority: 7, Active: true},
	{NameEN: "Dentistry", NameES: "Odontología", Category: CategoryDental, Priority: 8, Active: true,
		CommonProcedures: []string{"cleaning", "fillings", "extractions"}},
	{NameEN: "Orthopedics", NameES: "Ortopedia", Category: CategorySurgery, Priority: 6, Active: true,
		CommonConditions: []string{"fractures", "joint pain"}},
	{NameEN: "Radiology", NameES: "Radiología", Category: CategoryDiagnostics, Priority: 5, Active: true,
		CommonProcedures: []string{"x-ray", "ultrasound", "MRI"}},
}

// SeedSpecialties loads the baseline catalog. It is a no-op when the
// catalog already has entries, so reruns are safe.
func SeedSpecialties(ctx context.Context, svc *Service) (int, error) {
	existing, err := svc.ListSpecialties(ctx, false)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, nil
	}

	count := 0
	for _, sp := range baselineSpecialties {
		sp := sp
		if err := svc.CreateSpecialty(ctx, &sp); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}
