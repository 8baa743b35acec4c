package models

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	appErrors "github.com/baula-dev/baula-sync/pkg/errors"
)

// Semester identifies a term in the feed's native token form: a four-digit
// year followed by 'w' (winter) or 's' (summer), e.g. "2025w".
type Semester string

var semesterPattern = regexp.MustCompile(`^\d{4}[ws]$`)

// ParseSemester validates a raw token.
func ParseSemester(raw string) (Semester, error) {
	if !semesterPattern.MatchString(raw) {
		return "", appErrors.Clone(appErrors.ErrInvalidSemester, fmt.Sprintf("invalid semester identifier %q", raw))
	}
	return Semester(raw), nil
}

// CurrentSemester computes the semester a given date falls into. March
// through August belong to the summer term of the same year, September
// through December to the winter term of the same year, and January and
// February still to the winter term of the previous year.
func CurrentSemester(now time.Time) Semester {
	year := now.Year()
	switch month := now.Month(); {
	case month >= time.March && month <= time.August:
		return Semester(fmt.Sprintf("%ds", year))
	case month >= time.September:
		return Semester(fmt.Sprintf("%dw", year))
	default:
		return Semester(fmt.Sprintf("%dw", year-1))
	}
}

func (s Semester) String() string { return string(s) }

// Year returns the calendar year the token names.
func (s Semester) Year() int {
	if len(s) != 5 {
		return 0
	}
	year, _ := strconv.Atoi(string(s[:4]))
	return year
}

// IsWinter reports whether the token names a winter term.
func (s Semester) IsWinter() bool {
	return len(s) == 5 && s[4] == 'w'
}

// ShortName renders the display form, e.g. "WS 2025/26" or "SS 2025".
func (s Semester) ShortName() string {
	if len(s) != 5 {
		return string(s)
	}
	if s.IsWinter() {
		next := (s.Year() + 1) % 100
		return fmt.Sprintf("WS %d/%02d", s.Year(), next)
	}
	return fmt.Sprintf("SS %d", s.Year())
}

// Next returns the semester following this one.
func (s Semester) Next() Semester {
	if s.IsWinter() {
		return Semester(fmt.Sprintf("%ds", s.Year()+1))
	}
	return Semester(fmt.Sprintf("%dw", s.Year()))
}
