// Package content turns a card record into the ordered text lines printed on
// a name tag.
package content

import (
	"strings"
	"unicode/utf8"

	"github.com/mwarrick/digital-business-card-sub004/pkg/card"
)

// Role identifies which card field a line came from.
type Role string

const (
	RoleName    Role = "name"
	RoleTitle   Role = "title"
	RoleCompany Role = "company"
	RolePhone   Role = "phone"
	RoleEmail   Role = "email"
	RoleWebsite Role = "website"
	RoleAddress Role = "address"
)

// Line is one printed line.
type Line struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// Bold reports whether the line is drawn in the bold face.
func (l Line) Bold() bool { return l.Role == RoleName }

// Flags selects which roles are printed.
type Flags struct {
	Name    bool `json:"include_name"`
	Title   bool `json:"include_title"`
	Company bool `json:"include_company"`
	Phone   bool `json:"include_phone"`
	Email   bool `json:"include_email"`
	Website bool `json:"include_website"`
	Address bool `json:"include_address"`
}

// AllFlags enables every role.
func AllFlags() Flags {
	return Flags{true, true, true, true, true, true, true}
}

// Result is the assembled content of one tag.
type Result struct {
	Lines []Line `json:"lines"`

	// Longest is the length of the longest line in code points.
	Longest int `json:"longest"`
}

// Texts returns the line texts in order.
func (r Result) Texts() []string {
	out := make([]string, len(r.Lines))
	for i, l := range r.Lines {
		out[i] = l.Text
	}
	return out
}

type field struct {
	role    Role
	extract func(*card.Record) string
	enabled func(Flags) bool
}

var order = []field{
	{RoleName, (*card.Record).FullName, func(f Flags) bool { return f.Name }},
	{RoleTitle, func(r *card.Record) string { return r.JobTitle }, func(f Flags) bool { return f.Title }},
	{RoleCompany, func(r *card.Record) string { return r.Company }, func(f Flags) bool { return f.Company }},
	{RolePhone, func(r *card.Record) string { return r.Phone }, func(f Flags) bool { return f.Phone }},
	{RoleEmail, func(r *card.Record) string { return r.Email }, func(f Flags) bool { return f.Email }},
	{RoleWebsite, func(r *card.Record) string { return r.Website }, func(f Flags) bool { return f.Website }},
	{RoleAddress, func(r *card.Record) string { return r.Address.Format() }, func(f Flags) bool { return f.Address }},
}

// Assemble collects the enabled, non-empty fields of rec in the fixed role
// order. A nil record yields no lines.
func Assemble(rec *card.Record, flags Flags) Result {
	var res Result
	if rec == nil {
		return res
	}
	for _, f := range order {
		if !f.enabled(flags) {
			continue
		}
		text := strings.TrimSpace(f.extract(rec))
		if text == "" {
			continue
		}
		res.Lines = append(res.Lines, Line{Role: f.role, Text: text})
		if n := utf8.RuneCountInString(text); n > res.Longest {
			res.Longest = n
		}
	}
	return res
}
