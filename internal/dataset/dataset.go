package dataset

import (
	"errors"
	"fmt"
	"slices"
	"sort"

	"happydash/internal/jsonutil"
)

// ErrDuplicateRecord is returned when two rows share a (countryName, year).
var ErrDuplicateRecord = errors.New("duplicate record")

// Dataset is the loaded, read-only collection of records in source order.
type Dataset struct {
	records    []Record
	index      map[Key]int
	years      []int
	continents []string
}

// New builds a Dataset from records, preserving their order.
// Returns ErrDuplicateRecord if an identity appears twice.
func New(records []Record) (*Dataset, error) {
	d := &Dataset{
		records: records,
		index:   make(map[Key]int, len(records)),
	}
	seenYear := make(map[int]bool)
	seenContinent := make(map[string]bool)
	for i, r := range records {
		k := r.Key()
		if _, dup := d.index[k]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateRecord, k)
		}
		d.index[k] = i
		if !seenYear[r.Year] {
			seenYear[r.Year] = true
			d.years = append(d.years, r.Year)
		}
		if r.Continent != "" && !seenContinent[r.Continent] {
			seenContinent[r.Continent] = true
			d.continents = append(d.continents, r.Continent)
		}
	}
	sort.Ints(d.years)
	sort.Strings(d.continents)
	return d, nil
}

// Parse decodes a JSON array of records.
func Parse(data []byte) (*Dataset, error) {
	records, err := jsonutil.UnmarshalArray[Record](data, "dataset")
	if err != nil {
		return nil, err
	}
	return New(records)
}

// Load reads and parses the dataset file at path.
func Load(path string) (*Dataset, error) {
	records, err := jsonutil.ReadArray[Record](path, "dataset")
	if err != nil {
		return nil, err
	}
	return New(records)
}

// Records returns all records in source order. The slice is shared and
// must be treated as read-only.
func (d *Dataset) Records() []Record {
	return d.records
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	return len(d.records)
}

// Find returns the record with the given identity.
func (d *Dataset) Find(country string, year int) (Record, bool) {
	i, ok := d.index[Key{Country: country, Year: year}]
	if !ok {
		return Record{}, false
	}
	return d.records[i], true
}

// Years returns the distinct years, ascending.
func (d *Dataset) Years() []int {
	return slices.Clone(d.years)
}

// YearBounds returns the smallest and largest year. ok is false for an empty dataset.
func (d *Dataset) YearBounds() (lo, hi int, ok bool) {
	if len(d.years) == 0 {
		return 0, 0, false
	}
	return d.years[0], d.years[len(d.years)-1], true
}

// ClampYear bounds year to the dataset's year range.
func (d *Dataset) ClampYear(year int) int {
	lo, hi, ok := d.YearBounds()
	if !ok {
		return year
	}
	return max(lo, min(year, hi))
}

// Continents returns the distinct continents, sorted.
func (d *Dataset) Continents() []string {
	return slices.Clone(d.continents)
}

// Series returns every record for country ordered by year.
func (d *Dataset) Series(country string) []Record {
	var out []Record
	for _, y := range d.years {
		if r, ok := d.Find(country, y); ok {
			out = append(out, r)
		}
	}
	return out
}
