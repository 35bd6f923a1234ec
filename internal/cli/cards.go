package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/mwarrick/digital-business-card-sub004/pkg/card"
	"github.com/mwarrick/digital-business-card-sub004/pkg/content"
	errs "github.com/mwarrick/digital-business-card-sub004/pkg/errors"
)

// cardsCommand creates the cards command for browsing the configured store.
func (c *CLI) cardsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cards",
		Short: "Browse and import business cards",
	}

	cmd.AddCommand(c.cardsListCommand())
	cmd.AddCommand(c.cardsShowCommand())
	cmd.AddCommand(c.cardsImportCommand())
	cmd.AddCommand(c.cardsPickCommand())

	return cmd
}

// withStore runs fn against the configured card store.
func (c *CLI) withStore(ctx context.Context, fn func(card.Store) error) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	store, err := card.Open(ctx, cfg.StoreOptions())
	if err != nil {
		return fmt.Errorf("open card store: %w", err)
	}
	defer store.Close()
	return fn(store)
}

func (c *CLI) cardsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List cards in the store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(cmd.Context(), func(s card.Store) error {
				recs, err := s.List(cmd.Context())
				if err != nil {
					return err
				}
				if len(recs) == 0 {
					printInfo("No cards")
					return nil
				}
				rows := make([][]string, len(recs))
				for i := range recs {
					rows[i] = append([]string{""}, cardRow(&recs[i])...)
				}
				fmt.Println(cardTable(rows).Render())
				return nil
			})
		},
	}
}

func (c *CLI) cardsShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <card-id>",
		Short: "Show a card and the lines printed on its tags",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := errs.ValidateCardID(args[0]); err != nil {
				return err
			}
			return c.withStore(cmd.Context(), func(s card.Store) error {
				rec, err := s.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				printCard(rec)
				return nil
			})
		},
	}
}

func printCard(rec *card.Record) {
	fmt.Println(StyleTitle.Render(rec.FullName()))
	for _, kv := range [][2]string{
		{"ID", rec.ID},
		{"Title", rec.JobTitle},
		{"Company", rec.Company},
		{"Phone", rec.Phone},
		{"Email", rec.Email},
		{"Website", rec.Website},
		{"Address", rec.Address.Format()},
		{"Photo", rec.ProfilePhoto},
		{"Logo", rec.CompanyLogo},
	} {
		if kv[1] != "" {
			printKeyValue(kv[0], kv[1])
		}
	}

	res := content.Assemble(rec, content.AllFlags())
	printNewline()
	printInfo("All lines (longest %d characters)", res.Longest)
	for _, l := range res.Lines {
		printDetail("%-8s %s", l.Role, l.Text)
	}
}

func (c *CLI) cardsImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import cards from a JSON or TOML file",
		Long: `Import cards into the configured store.

JSON files hold one card object or an array of cards. TOML files hold a
[[cards]] array of tables. Existing cards with the same ID are replaced.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			recs, err := readCards(args[0])
			if err != nil {
				return err
			}
			prog := newProgress(loggerFromContext(cmd.Context()))
			return c.withStore(cmd.Context(), func(s card.Store) error {
				for i := range recs {
					if err := errs.ValidateCardID(recs[i].ID); err != nil {
						return fmt.Errorf("card %d: %w", i+1, err)
					}
					if err := s.Put(cmd.Context(), &recs[i]); err != nil {
						return fmt.Errorf("put %s: %w", recs[i].ID, err)
					}
				}
				prog.donef("Imported %d cards", len(recs))
				return nil
			})
		},
	}
}

// readCards decodes a JSON or TOML card file, chosen by extension.
func readCards(path string) ([]card.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		var doc struct {
			Cards []card.Record `toml:"cards"`
		}
		if err := toml.Unmarshal(data, &doc); err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "parse %s", path)
		}
		return doc.Cards, nil
	case ".json":
		trimmed := strings.TrimSpace(string(data))
		if strings.HasPrefix(trimmed, "[") {
			var recs []card.Record
			if err := json.Unmarshal(data, &recs); err != nil {
				return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "parse %s", path)
			}
			return recs, nil
		}
		var rec card.Record
		if err := json.Unmarshal(data, &rec); err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "parse %s", path)
		}
		return []card.Record{rec}, nil
	default:
		return nil, errs.New(errs.ErrCodeInvalidInput, "unsupported card file %q (want .json or .toml)", path)
	}
}

func (c *CLI) cardsPickCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "pick",
		Short: "Pick a card interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(cmd.Context(), func(s card.Store) error {
				recs, err := s.List(cmd.Context())
				if err != nil {
					return err
				}
				if len(recs) == 0 {
					printInfo("No cards")
					return nil
				}

				final, err := tea.NewProgram(NewCardListModel(recs), tea.WithContext(cmd.Context())).Run()
				if err != nil {
					return err
				}
				m, ok := final.(CardListModel)
				if !ok || m.Selected == nil {
					return nil
				}

				printCard(m.Selected)
				printNewline()
				printNextStep("Render its name tags", "nametag render "+m.Selected.ID)
				return nil
			})
		},
	}
}
