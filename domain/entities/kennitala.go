package entities

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Validation failures fall into two classes: the input is not shaped like
// a kennitala at all, or it is shaped correctly but encodes an impossible
// birth date. Callers distinguish them with errors.Is.
var (
	ErrMalformedKennitala = errors.New("kennitala must be 10 digits, optionally with a dash after the sixth")
	ErrInvalidDate        = errors.New("kennitala encodes an invalid calendar date")
)

// centuryCutoff is the two-digit-year boundary for century resolution:
// years 00 through centuryCutoff belong to the 2000s, everything above to
// the 1900s. The split is the domain convention at the time of writing and
// will need revisiting as 2050 approaches.
const centuryCutoff = 50

// Kennitala is a validated Icelandic national identification number.
// It is immutable once constructed via ParseKennitala.
type Kennitala struct {
	Raw           string `json:"raw"`
	Normalized    string `json:"normalized"`
	Day           int    `json:"day"`
	Month         int    `json:"month"`
	YearInCentury int    `json:"year_in_century"`
	Serial        string `json:"serial"`
	Year          int    `json:"year"`
}

// resolveYear maps a two-digit birth year to a full year.
func resolveYear(yearInCentury int) int {
	if yearInCentury <= centuryCutoff {
		return 2000 + yearInCentury
	}
	return 1900 + yearInCentury
}

// ParseKennitala validates a raw kennitala string and returns its decoded
// form. The accepted formats are DDMMYYXXXX and DDMMYY-XXXX. It is a pure
// function of its input.
func ParseKennitala(raw string) (Kennitala, error) {
	normalized := raw
	if i := strings.IndexByte(raw, '-'); i >= 0 {
		// A single dash is tolerated, and only between the date and
		// serial segments.
		if i != 6 || strings.IndexByte(raw[i+1:], '-') >= 0 {
			return Kennitala{}, fmt.Errorf("%w: unexpected separator in %q", ErrMalformedKennitala, raw)
		}
		normalized = raw[:6] + raw[7:]
	}

	if len(normalized) != 10 {
		return Kennitala{}, fmt.Errorf("%w: got %d digits", ErrMalformedKennitala, len(normalized))
	}
	for i := 0; i < len(normalized); i++ {
		if normalized[i] < '0' || normalized[i] > '9' {
			return Kennitala{}, fmt.Errorf("%w: non-digit character at position %d", ErrMalformedKennitala, i)
		}
	}

	day := digits2(normalized[0:2])
	month := digits2(normalized[2:4])
	yearInCentury := digits2(normalized[4:6])
	year := resolveYear(yearInCentury)

	if day < 1 || day > 31 || month < 1 || month > 12 {
		return Kennitala{}, fmt.Errorf("%w: day=%02d month=%02d", ErrInvalidDate, day, month)
	}
	// time.Date normalizes out-of-range days (Feb 30 becomes Mar 2), so a
	// round-trip mismatch means the date does not exist in that year.
	birth := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if birth.Day() != day || birth.Month() != time.Month(month) || birth.Year() != year {
		return Kennitala{}, fmt.Errorf("%w: %02d/%02d/%d does not exist", ErrInvalidDate, day, month, year)
	}

	return Kennitala{
		Raw:           raw,
		Normalized:    normalized,
		Day:           day,
		Month:         month,
		YearInCentury: yearInCentury,
		Serial:        normalized[6:10],
		Year:          year,
	}, nil
}

// BirthDate returns the decoded birth date at midnight UTC.
func (k Kennitala) BirthDate() time.Time {
	return time.Date(k.Year, time.Month(k.Month), k.Day, 0, 0, 0, 0, time.UTC)
}

func (k Kennitala) String() string {
	return k.Normalized
}

// digits2 parses exactly two ASCII digits. Callers guarantee the input is
// already digit-checked.
func digits2(s string) int {
	return int(s[0]-'0')*10 + int(s[1]-'0')
}
