package registration

import (
	_ "embed"
	"fmt"
	"slices"
	"sync"

	"github.com/hay-kot/criterio"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

// Catalog lists the countries, regions and time zones offered by the locale
// step.
type Catalog struct {
	DefaultTimezone string              `yaml:"default_timezone"`
	Countries       []string            `yaml:"countries"`
	Regions         map[string][]string `yaml:"regions"`
	Timezones       []string            `yaml:"timezones"`
}

var (
	defaultCatalog     *Catalog
	defaultCatalogErr  error
	defaultCatalogOnce sync.Once
)

// DefaultCatalog returns the embedded catalog. It panics if the embedded
// data is invalid, which the package tests rule out.
func DefaultCatalog() *Catalog {
	defaultCatalogOnce.Do(func() {
		defaultCatalog, defaultCatalogErr = ParseCatalog(catalogYAML)
	})
	if defaultCatalogErr != nil {
		panic(defaultCatalogErr)
	}
	return defaultCatalog
}

// ParseCatalog decodes and checks a catalog document.
func ParseCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if len(c.Countries) == 0 {
		return nil, fmt.Errorf("catalog: no countries")
	}
	if len(c.Timezones) == 0 {
		return nil, fmt.Errorf("catalog: no time zones")
	}
	if c.DefaultTimezone != "" && !slices.Contains(c.Timezones, c.DefaultTimezone) {
		return nil, fmt.Errorf("catalog: default time zone %q is not listed", c.DefaultTimezone)
	}
	for country := range c.Regions {
		if !slices.Contains(c.Countries, country) {
			return nil, fmt.Errorf("catalog: regions for unknown country %q", country)
		}
	}
	return &c, nil
}

// RegionsFor returns the regions of country, or nil when none are listed.
func (c *Catalog) RegionsFor(country string) []string {
	return c.Regions[country]
}

// HasCountry reports whether country is listed.
func (c *Catalog) HasCountry(country string) bool {
	return slices.Contains(c.Countries, country)
}

// HasTimezone reports whether tz is listed.
func (c *Catalog) HasTimezone(tz string) bool {
	return slices.Contains(c.Timezones, tz)
}

// CheckLocale verifies that the locale's values come from the catalog.
// Empty values are left to Locale.Validate.
func (c *Catalog) CheckLocale(l Locale) error {
	var errs criterio.FieldErrorsBuilder

	if l.Country != "" && !c.HasCountry(l.Country) {
		errs = errs.Append("country", fmt.Errorf("unknown country %q", l.Country))
	}
	if l.Region != "" && !slices.Contains(c.RegionsFor(l.Country), l.Region) {
		errs = errs.Append("region", fmt.Errorf("%q is not a region of %q", l.Region, l.Country))
	}
	if l.Timezone != "" && !c.HasTimezone(l.Timezone) {
		errs = errs.Append("timezone", fmt.Errorf("unknown time zone %q", l.Timezone))
	}

	return errs.ToError()
}
