package locale

import "strings"

type Country struct {
	Code           string   // ISO 3166-1 alpha-2, as used for phone parsing
	Name           string
	CurrencySymbol string
	Timezones      []string // IANA zones that imply this country
}

var Countries = map[string]Country{
	"GB": {
		Code:           "GB",
		Name:           "United Kingdom",
		CurrencySymbol: "£",
		Timezones:      []string{"Europe/London", "GB", "Europe/Belfast"},
	},
	"IE": {
		Code:           "IE",
		Name:           "Ireland",
		CurrencySymbol: "€",
		Timezones:      []string{"Europe/Dublin", "Eire"},
	},
	"US": {
		Code:           "US",
		Name:           "United States",
		CurrencySymbol: "$",
		Timezones:      []string{"America/New_York", "America/Chicago", "America/Denver", "America/Los_Angeles", "US/Eastern", "US/Pacific"},
	},
	"AU": {
		Code:           "AU",
		Name:           "Australia",
		CurrencySymbol: "$",
		Timezones:      []string{"Australia/Sydney", "Australia/Melbourne", "Australia/Brisbane", "Australia/Perth"},
	},
}

func Lookup(code string) (Country, bool) {
	c, ok := Countries[strings.ToUpper(strings.TrimSpace(code))]
	return c, ok
}
