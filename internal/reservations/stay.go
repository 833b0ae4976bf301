package reservations

import (
	"fmt"
	"time"
)

// Hotel policy wall-clock times. Check-out (12:00) precedes the same
// day's check-in (14:00), so back-to-back stays on adjoining days never
// overlap under the half-open interval predicate.
const (
	checkInHour  = 14
	checkOutHour = 12
)

// stayLayouts are the accepted date inputs: a plain calendar date or a
// full timestamp, whose date part is used.
var stayLayouts = []string{
	"2006-01-02",
	time.RFC3339,
}

// StayWindow is a canonical half-open stay interval [CheckIn, CheckOut).
type StayWindow struct {
	CheckIn  time.Time
	CheckOut time.Time
}

// Nights returns the stay length in whole nights.
func (w StayWindow) Nights() int {
	nights := 0
	for d := w.CheckIn; d.Before(w.CheckOut); d = d.AddDate(0, 0, 1) {
		nights++
	}
	return nights
}

// NormalizeStay canonicalizes raw date input into the hotel's
// check-in/check-out instants: 14:00 on the check-in day, 12:00 on the
// check-out day. Pure function; normalizing an already-normalized pair
// yields the same pair.
func NormalizeStay(checkInRaw, checkOutRaw string) (StayWindow, error) {
	checkInDay, err := parseStayDate(checkInRaw)
	if err != nil {
		return StayWindow{}, fmt.Errorf("%w: checkIn %q", ErrInvalidDate, checkInRaw)
	}
	checkOutDay, err := parseStayDate(checkOutRaw)
	if err != nil {
		return StayWindow{}, fmt.Errorf("%w: checkOut %q", ErrInvalidDate, checkOutRaw)
	}

	// Day granularity: the checkout calendar day must be strictly later.
	if !checkOutDay.After(checkInDay) {
		return StayWindow{}, ErrMinimumStay
	}

	return StayWindow{
		CheckIn:  checkInDay.Add(checkInHour * time.Hour),
		CheckOut: checkOutDay.Add(checkOutHour * time.Hour),
	}, nil
}

// parseStayDate parses a date-like input and truncates it to midnight UTC.
func parseStayDate(raw string) (time.Time, error) {
	var lastErr error
	for _, layout := range stayLayouts {
		parsed, err := time.Parse(layout, raw)
		if err != nil {
			lastErr = err
			continue
		}
		y, m, d := parsed.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
	}
	return time.Time{}, lastErr
}
