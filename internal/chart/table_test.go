package chart

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"happydash/internal/dataset"
)

func TestTableRows(t *testing.T) {
	ds := testDataset(t)
	rows := TableRows(ds, []dataset.Key{
		{Country: "Kenya", Year: 2023},
		{Country: "Atlantis", Year: 2023},
		{Country: "Norway", Year: 2023},
	})
	require.Len(t, rows, 2, "entries without a record are skipped")
	assert.Equal(t, "Kenya", rows[0][0], "selection order is kept")

	norway := rows[1]
	require.Len(t, norway, len(Headers()))
	assert.Equal(t, []string{
		"Norway", "2023", "Europe", "7.32", "11.08", "0.95", "71", "0.95", "0.12", "0.25", "0.70", "0.20",
	}, norway)
}

func TestTableRows_NilDataset(t *testing.T) {
	assert.Nil(t, TableRows(nil, []dataset.Key{{Country: "Norway", Year: 2023}}))
}

func TestHeaders(t *testing.T) {
	h := Headers()
	assert.Equal(t, []string{"Country", "Year", "Continent", "Life Ladder Score"}, h[:4])
	assert.Equal(t, "Negative Affect", h[len(h)-1])
}

func TestPlainTable(t *testing.T) {
	assert.Equal(t, TablePlaceholder, PlainTable(nil))

	out := PlainTable([][]string{{"Norway", "2023"}})
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "Country | Year | Continent"))
	assert.Equal(t, "Norway | 2023", lines[1])
}

func TestStyledTable(t *testing.T) {
	st := TableStyles{Empty: lipgloss.NewStyle()}
	assert.Contains(t, StyledTable(nil, 200, st), "No country selected")

	ds := testDataset(t)
	out := StyledTable(TableRows(ds, []dataset.Key{{Country: "Norway", Year: 2023}}), 0, st)
	assert.Contains(t, out, "Norway")
	assert.Contains(t, out, "Healthy Life Expectancy")
}

func TestDescriptions(t *testing.T) {
	require.Len(t, Descriptions, 12)
	assert.Equal(t, "Country", Descriptions[0].Title)
}
