package validation

import (
	"fmt"
	"regexp"
)

var dateFormats = []*regexp.Regexp{
	regexp.MustCompile(`^\d{4}$`),                    // 2020
	regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`),    // 2020-03
	regexp.MustCompile(`^(0[1-9]|1[0-2])/\d{4}$`),    // 03/2020
	regexp.MustCompile(`^[A-Z][a-z]{2} \d{4}$`),      // Mar 2020
	regexp.MustCompile(`^[A-Z][a-z]{3,8} \d{4}$`),    // March 2020
	regexp.MustCompile(`^(?i)(present|current)$`),    // ongoing sentinel
}

// ValidateDate checks that a date string uses one of the accepted CV date
// formats. Empty values pass.
func ValidateDate(date string) error {
	if date == "" {
		return nil
	}
	for _, re := range dateFormats {
		if re.MatchString(date) {
			return nil
		}
	}
	return fmt.Errorf("unrecognized date format: %q (expected e.g. 2020, 2020-03, 03/2020, Mar 2020, or Present)", date)
}
