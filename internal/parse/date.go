package parse

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/araddon/dateparse"
)

var ErrInvalidDate = errors.New("invalid date")

var (
	isoDate   = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	slashDate = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
)

// Date accepts YYYY-MM-DD, M/D/YYYY (month first) or any other layout
// dateparse understands, and returns the calendar date it names.
func Date(s string) (civil.Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return civil.Date{}, ErrInvalidDate
	}

	if isoDate.MatchString(s) {
		d, err := civil.ParseDate(s)
		if err != nil || !d.IsValid() {
			return civil.Date{}, ErrInvalidDate
		}

		return d, nil
	}

	if m := slashDate.FindStringSubmatch(s); m != nil {
		month, _ := strconv.Atoi(m[1])
		day, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])

		d := civil.Date{Year: year, Month: time.Month(month), Day: day}
		if !d.IsValid() {
			return civil.Date{}, ErrInvalidDate
		}

		return d, nil
	}

	// Keep the wall-clock date as written instead of shifting it to local time.
	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return civil.Date{}, ErrInvalidDate
	}

	return civil.DateOf(t), nil
}
