package card

import "testing"

func TestAddressFormat(t *testing.T) {
	tests := []struct {
		name string
		addr Address
		want string
	}{
		{"full", Address{"123 Test Street", "Test City", "TC", "12345"}, "123 Test Street, Test City, TC 12345"},
		{"city only", Address{City: "Springfield"}, "Springfield"},
		{"state and zip", Address{State: "CA", Zip: "90210"}, "CA 90210"},
		{"zip only", Address{Zip: "90210"}, "90210"},
		{"trims", Address{Street: "  1 Main  ", City: " Town "}, "1 Main, Town"},
		{"empty", Address{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.addr.Format(); got != tt.want {
				t.Errorf("Format() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFullName(t *testing.T) {
	tests := []struct {
		first, last, want string
	}{
		{"Jo", "Li", "Jo Li"},
		{" Jo ", " Li ", "Jo Li"},
		{"Cher", "", "Cher"},
		{"", "Prince", "Prince"},
		{"", "", ""},
	}
	for _, tt := range tests {
		r := Record{FirstName: tt.first, LastName: tt.last}
		if got := r.FullName(); got != tt.want {
			t.Errorf("FullName(%q, %q) = %q, want %q", tt.first, tt.last, got, tt.want)
		}
	}
}

func TestSample(t *testing.T) {
	s := Sample()
	if s.ID != SampleID {
		t.Errorf("ID = %q, want %q", s.ID, SampleID)
	}
	if s.Email != "john.doe@testcompany.com" {
		t.Errorf("Email = %q", s.Email)
	}
	s.FirstName = "changed"
	if Sample().FirstName != "John" {
		t.Error("Sample() should return a fresh record")
	}
}
