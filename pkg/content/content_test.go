package content

import (
	"reflect"
	"testing"

	"github.com/mwarrick/digital-business-card-sub004/pkg/card"
)

func roles(r Result) []Role {
	out := make([]Role, len(r.Lines))
	for i, l := range r.Lines {
		out[i] = l.Role
	}
	return out
}

func TestAssembleMissingOptionalFields(t *testing.T) {
	rec := &card.Record{ID: "1", FirstName: "Jo", LastName: "Li", Phone: "555-0100"}
	got := Assemble(rec, AllFlags())

	if want := []Role{RoleName, RolePhone}; !reflect.DeepEqual(roles(got), want) {
		t.Errorf("roles = %v, want %v", roles(got), want)
	}
	if want := []string{"Jo Li", "555-0100"}; !reflect.DeepEqual(got.Texts(), want) {
		t.Errorf("texts = %v, want %v", got.Texts(), want)
	}
	if got.Longest != 8 {
		t.Errorf("Longest = %d, want 8", got.Longest)
	}
}

func TestAssembleOrderAndFlags(t *testing.T) {
	rec := card.Sample()

	tests := []struct {
		name  string
		flags Flags
		want  []Role
	}{
		{"all", AllFlags(), []Role{RoleName, RoleTitle, RoleCompany, RolePhone, RoleEmail, RoleWebsite, RoleAddress}},
		{"none", Flags{}, nil},
		{"name only", Flags{Name: true}, []Role{RoleName}},
		{"email and name", Flags{Email: true, Name: true}, []Role{RoleName, RoleEmail}},
		{"address last", Flags{Address: true, Title: true}, []Role{RoleTitle, RoleAddress}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := roles(Assemble(rec, tt.flags))
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("roles = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAssembleLongestCountsCodePoints(t *testing.T) {
	rec := &card.Record{FirstName: "Zoë", LastName: "Ångström"}
	got := Assemble(rec, Flags{Name: true})
	if got.Longest != 12 {
		t.Errorf("Longest = %d, want 12 code points", got.Longest)
	}
}

func TestAssembleWhitespaceIsEmpty(t *testing.T) {
	rec := &card.Record{FirstName: "A", Email: "   ", Website: "\t"}
	got := Assemble(rec, AllFlags())
	if len(got.Lines) != 1 {
		t.Errorf("lines = %v, want only the name", got.Lines)
	}
}

func TestAssembleLongEmail(t *testing.T) {
	const email = "alexandria.thompson-whitfield@internationalconsulting.com"
	got := Assemble(&card.Record{Email: email}, Flags{Email: true})
	if got.Longest != 57 {
		t.Errorf("Longest = %d, want 57", got.Longest)
	}
}

func TestAssembleDeterministic(t *testing.T) {
	a := Assemble(card.Sample(), AllFlags())
	b := Assemble(card.Sample(), AllFlags())
	if !reflect.DeepEqual(a, b) {
		t.Error("Assemble is not deterministic")
	}
	if got := Assemble(nil, AllFlags()); len(got.Lines) != 0 {
		t.Errorf("nil record produced %v", got.Lines)
	}
}

func TestLineBold(t *testing.T) {
	if !(Line{Role: RoleName}).Bold() || (Line{Role: RoleEmail}).Bold() {
		t.Error("only the name line is bold")
	}
}
