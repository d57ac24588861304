package locale

import (
	"fmt"
	"strings"
)

// Name of a locale, e.g. "en-US" or "fr"
type Name string

var localeChars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ-"

// NameFromString takes a string and returns a locale Name if valid, otherwise returns an
// InvalidName error.
//
// Accepts BCP-47-ish language tags of the form "ll" or "ll-CC"; we only check shape, not
// membership in any registry, because the set of supported locales is deployment config.
func NameFromString(s string) (*Name, error) {
	var errs []error

	if len(s) == 0 {
		errs = append(errs, fmt.Errorf("empty string"))
	}
	for _, r := range s {
		if !strings.ContainsRune(localeChars, r) {
			errs = append(errs, fmt.Errorf("contains char outside of [%v]", localeChars))
			break
		}
	}
	parts := strings.Split(s, "-")
	if len(parts) > 3 {
		errs = append(errs, fmt.Errorf("too many subtags [%v]", s))
	}
	for _, part := range parts {
		if len(s) != 0 && len(part) == 0 {
			errs = append(errs, fmt.Errorf("empty subtag in [%v]", s))
		}
	}
	if len(parts) > 0 && len(parts[0]) != 0 && parts[0] != strings.ToLower(parts[0]) {
		errs = append(errs, fmt.Errorf("language subtag not lower case [%v]", parts[0]))
	}
	if len(errs) == 0 {
		l := Name(s)
		return &l, nil
	} else {
		return nil, &InvalidName{
			Errors: errs,
		}
	}
}

type InvalidName struct {
	Errors []error
}

func (i *InvalidName) Error() string {
	return fmt.Sprintf("Illegal locale name: [%v]", i.Errors)
}
