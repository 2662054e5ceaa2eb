package chart

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"happydash/internal/dataset"
)

// TablePlaceholder is shown instead of the table when nothing is selected.
const TablePlaceholder = "No country selected, click on a country from a scatterplot or the map above."

// TableCaption introduces a non-empty table.
const TableCaption = "Table showing the data for the selected countries for the selected year."

// Column is one numeric table column.
type Column struct {
	Title    string
	Field    string
	Decimals int
}

// Columns lists the numeric columns after Country, Year and Continent.
var Columns = []Column{
	{"Life Ladder Score", "lifeLadder", 2},
	{"GDP", "gpdPerCapita", 2},
	{"Social Support", "socialSupport", 2},
	{"Healthy Life Expectancy", "healthyLifeExpectancyAtBirth", 0},
	{"Freedom", "freedomToMakeLifeChoices", 2},
	{"Generosity", "generosity", 2},
	{"Corruption", "corruption", 2},
	{"Positive Affect", "positiveAffect", 2},
	{"Negative Affect", "negativeAffect", 2},
}

// Headers returns every column title in display order.
func Headers() []string {
	out := []string{"Country", "Year", "Continent"}
	for _, c := range Columns {
		out = append(out, c.Title)
	}
	return out
}

// TableRows formats one row per selected entry, in selection order.
// Entries without a record in ds are skipped.
func TableRows(ds *dataset.Dataset, entries []dataset.Key) [][]string {
	if ds == nil {
		return nil
	}
	rows := make([][]string, 0, len(entries))
	for _, k := range entries {
		r, ok := ds.Find(k.Country, k.Year)
		if !ok {
			continue
		}
		row := []string{r.CountryName, strconv.Itoa(r.Year), r.Continent}
		for _, c := range Columns {
			v := dataset.MustField(c.Field).Value(r)
			row = append(row, strconv.FormatFloat(v, 'f', c.Decimals, 64))
		}
		rows = append(rows, row)
	}
	return rows
}

// PlainTable renders rows as "a | b | c" lines, header first.
func PlainTable(rows [][]string) string {
	if len(rows) == 0 {
		return TablePlaceholder
	}
	lines := []string{strings.Join(Headers(), " | ")}
	for _, r := range rows {
		lines = append(lines, strings.Join(r, " | "))
	}
	return strings.Join(lines, "\n")
}

// TableStyles configures StyledTable.
type TableStyles struct {
	Border lipgloss.Style
	Header lipgloss.Style
	Cell   lipgloss.Style
	Empty  lipgloss.Style
}

// StyledTable renders rows as a bordered lipgloss table no wider than width.
func StyledTable(rows [][]string, width int, st TableStyles) string {
	if len(rows) == 0 {
		return st.Empty.Width(max(width, 1)).Render(TablePlaceholder)
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(st.Border).
		Headers(Headers()...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return st.Header
			}
			return st.Cell
		})
	if width > 0 {
		t = t.Width(width)
	}
	return t.Render()
}

// Description explains one table column.
type Description struct {
	Title string
	Text  string
}

// Descriptions are the column notes shown under the table.
var Descriptions = []Description{
	{"Country", "Name of the country."},
	{"Year", "The year the data row represents."},
	{"Continent", "Continent the country is located in."},
	{"Life Ladder score", "The happiness score for each country, based on responses to the Cantril Ladder question that asks respondents to think of a ladder, with the best possible life for them being a 10, and the worst possible life being a 0."},
	{"GDP", "The natural logarithm of the country's GDP per capita, adjusted for purchasing power parity (PPP) to account for differences in the cost of living between countries."},
	{"Social support", "The national average of binary responses (either 0 or 1 representing No/Yes) to the question about having relatives or friends to count on in times of trouble."},
	{"Healthy life expectancy", "The average number of years a newborn infant would live in good health, based on mortality rates and life expectancy at different ages."},
	{"Freedom", "The national average of responses to the question about satisfaction with freedom to choose what to do with one's life."},
	{"Generosity", "The residual of regressing the national average of responses to the question about donating money to charity on GDP per capita."},
	{"Corruption", "The national average of survey responses to questions about the perceived extent of corruption in the government and businesses."},
	{"Positive affect", "The national average of responses to questions about positive emotions experienced yesterday. 0 to 1, where 1 is the highest positive affect."},
	{"Negative affect", "The national average of responses to questions about negative emotions experienced yesterday. 0 to 1, where 1 is the highest negative affect."},
}
