package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"happydash/internal/assets"
	"happydash/internal/chart"
	"happydash/internal/dataset"
	"happydash/internal/selection"
)

// ErrBadSelection is returned for a --select value that is not Country:Year.
var ErrBadSelection = errors.New("bad selection")

// parseSelection parses "Country:Year". The country may itself contain
// colons; the year follows the last one.
func parseSelection(s string) (dataset.Key, error) {
	i := strings.LastIndex(s, ":")
	if i <= 0 {
		return dataset.Key{}, fmt.Errorf("%w: %q, want Country:Year", ErrBadSelection, s)
	}
	year, err := strconv.Atoi(strings.TrimSpace(s[i+1:]))
	if err != nil {
		return dataset.Key{}, fmt.Errorf("%w: %q: year: %w", ErrBadSelection, s, err)
	}
	return dataset.Key{Country: strings.TrimSpace(s[:i]), Year: year}, nil
}

func newTableCommand(st *state) *cobra.Command {
	var (
		selected []string
		styled   bool
		width    int
	)
	cmd := &cobra.Command{
		Use:   "table",
		Short: "Print the detail table for selected countries",
		Long: `Print the dashboard's detail table for the given selections, in the order given.

Selections without a record in the data are skipped. Selecting the same
Country:Year twice removes it again, as clicking twice does in the dashboard.

Examples:
  happydash table --select Norway:2023 --select Kenya:2023
  happydash table --select Norway:2022 --styled --width 140`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			rt, err := newRuntime(ctx, st.cfg, true)
			if err != nil {
				return err
			}
			defer rt.Close(context.WithoutCancel(ctx))

			ds, err := assets.Dataset(st.cfg.DataPath)
			if err != nil {
				return err
			}
			store := selection.New()
			for _, s := range selected {
				key, err := parseSelection(s)
				if err != nil {
					return err
				}
				if _, ok := ds.Find(key.Country, key.Year); !ok {
					rt.Log.Warn("no record for selection", "country", key.Country, "year", key.Year)
				}
				store.Toggle(key.Country, key.Year)
			}

			rows := chart.TableRows(ds, store.Entries())
			out := chart.PlainTable(rows)
			if styled {
				out = chart.StyledTable(rows, width, chart.TableStyles{
					Border: lipgloss.NewStyle(),
					Header: lipgloss.NewStyle().Bold(true).Padding(0, 1),
					Cell:   lipgloss.NewStyle().Padding(0, 1),
					Empty:  lipgloss.NewStyle().Italic(true),
				})
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}
	cmd.Flags().StringArrayVar(&selected, "select", nil, "Country:Year to include (repeatable)")
	cmd.Flags().BoolVar(&styled, "styled", false, "Draw a bordered table")
	cmd.Flags().IntVar(&width, "width", 0, "Styled table width (0 = fit content)")
	return cmd
}
