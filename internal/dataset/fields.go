package dataset

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// ErrUnknownField is returned when a field key is not a numeric record field.
var ErrUnknownField = errors.New("unknown field")

// Field describes one numeric record column: its JSON key, how to read it,
// and how many decimals the detail table shows.
type Field struct {
	Key      string
	Decimals int
	get      func(Record) float64
}

// Value reads the field from r.
func (f Field) Value(r Record) float64 {
	return f.get(r)
}

// Label is the human-readable axis/column name for the field.
func (f Field) Label() string {
	return Label(f.Key)
}

// Default scatterplot axes.
const (
	FieldPCA1 = "pca1"
	FieldPCA2 = "pca2"
)

// fields lists every numeric column in data-file order. Identity columns
// (countryName, year) and the categorical continent are excluded.
var fields = []Field{
	{Key: "lifeLadder", Decimals: 2, get: func(r Record) float64 { return r.LifeLadder }},
	{Key: "gpdPerCapita", Decimals: 2, get: func(r Record) float64 { return r.GDPPerCapita }},
	{Key: "socialSupport", Decimals: 2, get: func(r Record) float64 { return r.SocialSupport }},
	{Key: "healthyLifeExpectancyAtBirth", Decimals: 0, get: func(r Record) float64 { return r.HealthyLifeExpectancyAtBirth }},
	{Key: "freedomToMakeLifeChoices", Decimals: 2, get: func(r Record) float64 { return r.FreedomToMakeLifeChoices }},
	{Key: "generosity", Decimals: 2, get: func(r Record) float64 { return r.Generosity }},
	{Key: "corruption", Decimals: 2, get: func(r Record) float64 { return r.Corruption }},
	{Key: "positiveAffect", Decimals: 2, get: func(r Record) float64 { return r.PositiveAffect }},
	{Key: "negativeAffect", Decimals: 2, get: func(r Record) float64 { return r.NegativeAffect }},
	{Key: "gpdPerCapita_z", Decimals: 2, get: func(r Record) float64 { return r.GDPPerCapitaZ }},
	{Key: "socialSupport_z", Decimals: 2, get: func(r Record) float64 { return r.SocialSupportZ }},
	{Key: "healthyLifeExpectancyAtBirth_z", Decimals: 2, get: func(r Record) float64 { return r.HealthyLifeExpectancyAtBirthZ }},
	{Key: "freedomToMakeLifeChoices_z", Decimals: 2, get: func(r Record) float64 { return r.FreedomToMakeLifeChoicesZ }},
	{Key: "generosity_z", Decimals: 2, get: func(r Record) float64 { return r.GenerosityZ }},
	{Key: "corruption_z", Decimals: 2, get: func(r Record) float64 { return r.CorruptionZ }},
	{Key: FieldPCA1, Decimals: 2, get: func(r Record) float64 { return r.PCA1 }},
	{Key: FieldPCA2, Decimals: 2, get: func(r Record) float64 { return r.PCA2 }},
}

// Fields returns the numeric fields selectable as scatterplot axes.
func Fields() []Field {
	out := make([]Field, len(fields))
	copy(out, fields)
	return out
}

// FieldByKey looks up a numeric field by its JSON key.
func FieldByKey(key string) (Field, error) {
	for _, f := range fields {
		if f.Key == key {
			return f, nil
		}
	}
	return Field{}, fmt.Errorf("%w: %q", ErrUnknownField, key)
}

// MustField is FieldByKey for keys known at compile time.
func MustField(key string) Field {
	f, err := FieldByKey(key)
	if err != nil {
		panic(err)
	}
	return f
}

// Label converts a field key into a display name: a "_z" suffix becomes a
// "normalized" prefix and camelCase is split into words, e.g.
// "gpdPerCapita_z" -> "Normalized gpd Per Capita".
func Label(key string) string {
	if strings.Contains(key, "_z") {
		key = "normalized " + strings.Replace(key, "_z", "", 1)
	}
	var b strings.Builder
	for i, r := range key {
		if unicode.IsUpper(r) {
			b.WriteRune(' ')
		}
		if i == 0 {
			r = unicode.ToUpper(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}
