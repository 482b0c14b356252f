package models

import (
	"regexp"
	"time"
)

// DateLayout is the storage format of Transaction.Date.
const DateLayout = "2006-01-02"

var localDatePattern = regexp.MustCompile(`^(\d{2})\.(\d{2})\.(\d{4})$`)

// LocalDateToISO converts a day-first DD.MM.YYYY string to YYYY-MM-DD.
// ok is false when s does not have that shape or is not a real calendar date.
func LocalDateToISO(s string) (iso string, ok bool) {
	m := localDatePattern.FindStringSubmatch(s)
	if m == nil {
		return "", false
	}
	iso = m[3] + "-" + m[2] + "-" + m[1]
	if !IsISODate(iso) {
		return "", false
	}
	return iso, true
}

// IsISODate reports whether s is a valid YYYY-MM-DD calendar date.
func IsISODate(s string) bool {
	if len(s) != len(DateLayout) {
		return false
	}
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// NormalizeDate accepts YYYY-MM-DD or DD.MM.YYYY and returns the ISO form.
func NormalizeDate(s string) (string, bool) {
	if IsISODate(s) {
		return s, true
	}
	return LocalDateToISO(s)
}
