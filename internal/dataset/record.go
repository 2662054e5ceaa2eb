// Package dataset holds the World Happiness Report rows the dashboard reads.
//
// Records are loaded once and never mutated afterwards; every view receives
// the same *Dataset by reference.
package dataset

import "fmt"

// Record is one country-year row with its derived z-score and PCA fields.
// JSON keys match the preprocessed data file, including the historical
// "gpdPerCapita" spelling.
type Record struct {
	CountryName string `json:"countryName"`
	Year        int    `json:"year"`
	Continent   string `json:"continent"`

	LifeLadder                   float64 `json:"lifeLadder"`
	GDPPerCapita                 float64 `json:"gpdPerCapita"`
	SocialSupport                float64 `json:"socialSupport"`
	HealthyLifeExpectancyAtBirth float64 `json:"healthyLifeExpectancyAtBirth"`
	FreedomToMakeLifeChoices     float64 `json:"freedomToMakeLifeChoices"`
	Generosity                   float64 `json:"generosity"`
	Corruption                   float64 `json:"corruption"`
	PositiveAffect               float64 `json:"positiveAffect"`
	NegativeAffect               float64 `json:"negativeAffect"`

	GDPPerCapitaZ                 float64 `json:"gpdPerCapita_z"`
	SocialSupportZ                float64 `json:"socialSupport_z"`
	HealthyLifeExpectancyAtBirthZ float64 `json:"healthyLifeExpectancyAtBirth_z"`
	FreedomToMakeLifeChoicesZ     float64 `json:"freedomToMakeLifeChoices_z"`
	GenerosityZ                   float64 `json:"generosity_z"`
	CorruptionZ                   float64 `json:"corruption_z"`

	PCA1 float64 `json:"pca1"`
	PCA2 float64 `json:"pca2"`
}

// Key identifies a record: (countryName, year) is unique within a dataset.
type Key struct {
	Country string
	Year    int
}

func (k Key) String() string {
	return fmt.Sprintf("%s:%d", k.Country, k.Year)
}

// Key returns the record's selection identity.
func (r Record) Key() Key {
	return Key{Country: r.CountryName, Year: r.Year}
}
