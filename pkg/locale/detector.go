package locale

import "strings"

// RegionForTimezone returns the country code implied by an IANA zone,
// or fallback when the zone is not recognised.
func RegionForTimezone(tz, fallback string) string {
	tz = strings.TrimSpace(tz)
	for code, c := range Countries {
		for _, z := range c.Timezones {
			if strings.EqualFold(tz, z) {
				return code
			}
		}
	}
	return fallback
}

// CurrencyForRegion returns the display symbol for a region's prices.
func CurrencyForRegion(region, fallback string) string {
	if c, ok := Lookup(region); ok {
		return c.CurrencySymbol
	}
	return fallback
}
