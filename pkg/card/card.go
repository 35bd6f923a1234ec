// Package card defines the contact record rendered onto name tags and the
// read-only stores it is loaded from.
//
// The rendering engine never writes records. Put exists on the stores so the
// CLI can import fixtures and tests can seed data.
package card

import (
	"strings"
)

// Address is a postal address.
type Address struct {
	Street string `json:"street,omitempty" bson:"street,omitempty" toml:"street"`
	City   string `json:"city,omitempty" bson:"city,omitempty" toml:"city"`
	State  string `json:"state,omitempty" bson:"state,omitempty" toml:"state"`
	Zip    string `json:"zip,omitempty" bson:"zip,omitempty" toml:"zip"`
}

// Format renders the address as "street, city, state zip". Empty parts are
// dropped, so a record with only a city yields just the city.
func (a Address) Format() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{a.Street, a.City, a.State + " " + a.Zip} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// Record is a business card as far as name tags are concerned.
// Optional fields may be empty; an empty field never produces a blank line.
type Record struct {
	ID        string  `json:"id" bson:"_id" toml:"id"`
	FirstName string  `json:"first_name" bson:"first_name" toml:"first_name"`
	LastName  string  `json:"last_name" bson:"last_name" toml:"last_name"`
	JobTitle  string  `json:"job_title,omitempty" bson:"job_title,omitempty" toml:"job_title"`
	Company   string  `json:"company_name,omitempty" bson:"company_name,omitempty" toml:"company_name"`
	Phone     string  `json:"phone_number,omitempty" bson:"phone_number,omitempty" toml:"phone_number"`
	Email     string  `json:"email,omitempty" bson:"email,omitempty" toml:"email"`
	Website   string  `json:"website,omitempty" bson:"website,omitempty" toml:"website"`
	Address   Address `json:"address,omitempty" bson:"address,omitempty" toml:"address"`

	// ProfilePhoto and CompanyLogo reference media assets, either a path
	// relative to the media directory or an http(s) URL.
	ProfilePhoto string `json:"profile_photo_path,omitempty" bson:"profile_photo_path,omitempty" toml:"profile_photo_path"`
	CompanyLogo  string `json:"company_logo_path,omitempty" bson:"company_logo_path,omitempty" toml:"company_logo_path"`
}

// FullName joins the first and last name with a single space.
func (r *Record) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(r.FirstName) + " " + strings.TrimSpace(r.LastName))
}

// SampleID is the identifier of the built-in sample card.
const SampleID = "test"

// Sample returns the demonstration card used for previews without a
// database.
func Sample() *Record {
	return &Record{
		ID:        SampleID,
		FirstName: "John",
		LastName:  "Doe",
		JobTitle:  "Software Engineer",
		Company:   "Test Company",
		Phone:     "+1 (555) 123-4567",
		Email:     "john.doe@testcompany.com",
		Website:   "https://testcompany.com",
		Address: Address{
			Street: "123 Test Street",
			City:   "Test City",
			State:  "TC",
			Zip:    "12345",
		},
	}
}
