package customer

import (
	"reflect"
	"testing"
)

func TestCompletenessScore(t *testing.T) {
	tests := []struct {
		name string
		c    Customer
		want int
	}{
		{"empty profile", Customer{}, 0},
		{
			"three of six",
			Customer{DateOfBirth: "1990-05-01", Gender: "female", PhoneNumber: "+52 55 1234 5678"},
			50,
		},
		{
			"all six",
			Customer{
				DateOfBirth:      "1990-05-01",
				Gender:           "female",
				PhoneNumber:      "+52 55 1234 5678",
				Address:          Address{Street: "Av. Reforma 100"},
				EmergencyContact: EmergencyContact{Name: "Luis Pérez"},
				MedicalInfo:      MedicalInfo{BloodType: "O+"},
			},
			100,
		},
		{
			"whitespace does not count",
			Customer{DateOfBirth: "   ", Gender: "\t", PhoneNumber: " "},
			0,
		},
		{
			"one of six rounds to 17",
			Customer{Gender: "other"},
			17,
		},
		{
			"five of six rounds to 83",
			Customer{
				DateOfBirth:      "1990-05-01",
				Gender:           "male",
				PhoneNumber:      "+52 55 0000 0000",
				Address:          Address{Street: "Calle 5"},
				EmergencyContact: EmergencyContact{Name: "Ana"},
			},
			83,
		},
		{
			"fields outside the checklist do not count",
			Customer{Name: "Someone", Address: Address{City: "CDMX"}, MedicalInfo: MedicalInfo{Insurance: "AXA"}},
			0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CompletenessScore(&tt.c); got != tt.want {
				t.Errorf("CompletenessScore() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCompletenessScore_Pure(t *testing.T) {
	c := Customer{DateOfBirth: "1990-05-01", Gender: "female"}
	before := c
	_ = CompletenessScore(&c)
	if !reflect.DeepEqual(c, before) {
		t.Error("scoring must not mutate the profile")
	}
}
