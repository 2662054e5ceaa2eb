package chart

import (
	"fmt"
	"math"

	"happydash/internal/dataset"
)

var sparkBlocks = []rune("▁▂▃▄▅▆▇█")

// Sparkline draws values as block characters scaled to [lo, hi].
func Sparkline(values []float64, lo, hi float64) string {
	out := make([]rune, len(values))
	span := hi - lo
	for i, v := range values {
		f := 0.0
		if span > 0 {
			f = (v - lo) / span
		}
		f = math.Max(0, math.Min(1, f))
		out[i] = sparkBlocks[int(math.Round(f*float64(len(sparkBlocks)-1)))]
	}
	return string(out)
}

// Trend is the lifeLadder history of one country.
type Trend struct {
	Country  string
	From, To int
	Values   []float64
}

// TrendFor collects the lifeLadder series for country.
func TrendFor(ds *dataset.Dataset, country string) (Trend, bool) {
	if ds == nil || country == "" {
		return Trend{}, false
	}
	series := ds.Series(country)
	if len(series) == 0 {
		return Trend{}, false
	}
	t := Trend{Country: country, From: series[0].Year, To: series[len(series)-1].Year}
	for _, r := range series {
		t.Values = append(t.Values, r.LifeLadder)
	}
	return t, true
}

// String renders "Norway 2005 ▅▆▇ 2023 (7.32)" on the 0..10 ladder scale.
func (t Trend) String() string {
	if len(t.Values) == 0 {
		return ""
	}
	return fmt.Sprintf("%s %d %s %d (%.2f)", t.Country, t.From, Sparkline(t.Values, 0, 10), t.To, t.Values[len(t.Values)-1])
}
