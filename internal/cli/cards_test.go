package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mwarrick/digital-business-card-sub004/pkg/card"
	errs "github.com/mwarrick/digital-business-card-sub004/pkg/errors"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadCards(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		body    string
		wantIDs []string
		wantErr bool
	}{
		{
			name:    "json object",
			file:    "card.json",
			body:    `{"id":"42","first_name":"Ada","last_name":"Lovelace"}`,
			wantIDs: []string{"42"},
		},
		{
			name:    "json array",
			file:    "cards.json",
			body:    ` [{"id":"1","first_name":"A"},{"id":"2","first_name":"B"}]`,
			wantIDs: []string{"1", "2"},
		},
		{
			name: "toml",
			file: "cards.toml",
			body: `
[[cards]]
id = "7"
first_name = "Grace"
last_name = "Hopper"
company_name = "Navy"

[cards.address]
city = "Arlington"
`,
			wantIDs: []string{"7"},
		},
		{name: "bad json", file: "bad.json", body: `{"id":`, wantErr: true},
		{name: "bad toml", file: "bad.toml", body: `[[cards]`, wantErr: true},
		{name: "unknown extension", file: "cards.yaml", body: `id: 1`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recs, err := readCards(writeFile(t, tt.file, tt.body))
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				if !errs.Is(err, errs.ErrCodeInvalidInput) {
					t.Errorf("code = %v, want INVALID_INPUT", errs.GetCode(err))
				}
				return
			}
			if err != nil {
				t.Fatalf("readCards() error: %v", err)
			}
			if len(recs) != len(tt.wantIDs) {
				t.Fatalf("got %d cards, want %d", len(recs), len(tt.wantIDs))
			}
			for i, id := range tt.wantIDs {
				if recs[i].ID != id {
					t.Errorf("card %d ID = %q, want %q", i, recs[i].ID, id)
				}
			}
		})
	}
}

func TestReadCardsTOMLFields(t *testing.T) {
	recs, err := readCards(writeFile(t, "cards.toml", `
[[cards]]
id = "7"
first_name = "Grace"
last_name = "Hopper"
phone_number = "555-0100"

[cards.address]
city = "Arlington"
state = "VA"
`))
	if err != nil {
		t.Fatal(err)
	}
	rec := recs[0]
	if rec.FullName() != "Grace Hopper" || rec.Phone != "555-0100" {
		t.Errorf("got %+v", rec)
	}
	if got := rec.Address.Format(); got != "Arlington, VA" {
		t.Errorf("Address.Format() = %q, want %q", got, "Arlington, VA")
	}
}

func TestCardsImportIntoFileStore(t *testing.T) {
	dir := t.TempDir()
	cfg := writeConfig(t, "\n[store]\nbackend = \"file\"\ndir = \""+filepath.ToSlash(dir)+"\"\n")
	src := writeFile(t, "cards.json", `[{"id":"42","first_name":"Ada","last_name":"Lovelace","company_name":"Engines"}]`)

	if err := execute(t, "--config", cfg, "cards", "import", src); err != nil {
		t.Fatalf("import error: %v", err)
	}

	store, err := card.NewFileStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	rec, err := store.Get(context.Background(), "42")
	if err != nil {
		t.Fatalf("imported card not found: %v", err)
	}
	if rec.Company != "Engines" {
		t.Errorf("Company = %q, want Engines", rec.Company)
	}

	if err := execute(t, "--config", cfg, "cards", "show", "42"); err != nil {
		t.Errorf("show error: %v", err)
	}
	if err := execute(t, "--config", cfg, "cards", "list"); err != nil {
		t.Errorf("list error: %v", err)
	}
	if err := execute(t, "--config", cfg, "cards", "show", "nope"); !errs.IsNotFound(err) {
		t.Errorf("show missing = %v, want not found", err)
	}
}

func TestCardsImportRejectsBadID(t *testing.T) {
	cfg := writeConfig(t, "")
	src := writeFile(t, "cards.json", `{"id":"../etc","first_name":"X"}`)

	err := execute(t, "--config", cfg, "cards", "import", src)
	if !errs.Is(err, errs.ErrCodeInvalidCardID) {
		t.Errorf("error = %v, want INVALID_CARD_ID", err)
	}
}

func TestCardListModel(t *testing.T) {
	cards := []card.Record{*card.Sample(), {ID: "2", FirstName: "Jo"}, {ID: "3", FirstName: "Li"}}
	var m tea.Model = NewCardListModel(cards)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})

	if got := m.(CardListModel).Cursor; got != 1 {
		t.Errorf("Cursor = %d, want 1", got)
	}

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Error("enter should quit")
	}
	sel := m.(CardListModel).Selected
	if sel == nil || sel.ID != "2" {
		t.Errorf("Selected = %+v, want card 2", sel)
	}
}

func TestCardListModelQuitWithoutSelection(t *testing.T) {
	var m tea.Model = NewCardListModel([]card.Record{*card.Sample()})
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Error("q should quit")
	}
	if m.(CardListModel).Selected != nil {
		t.Error("q should not select")
	}
}

func TestCardListModelView(t *testing.T) {
	m := NewCardListModel([]card.Record{*card.Sample()})
	view := m.View()
	for _, want := range []string{"Select Card", "John Doe", "Test Company", "[1/1]"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}
