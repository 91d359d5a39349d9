// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import "time"

// dateLayout is the ledger date format.
const dateLayout = "2006-01-02"

// maxDateAttempts bounds the forward scan so a corrupted or adversarially
// filled ledger cannot cause an unbounded loop.
const maxDateAttempts = 365

// NextAvailableDate scans forward one day at a time from the given start
// date, skipping dates already in the ledger, and returns the first free
// date in YYYY-MM-DD form. A zero start date means tomorrow. It returns
// ErrDatesExhausted when every day in the next year is taken.
func (s *Store) NextAvailableDate(from time.Time) (string, error) {
	if from.IsZero() {
		from = s.now().AddDate(0, 0, 1)
	}

	current := from
	for i := 0; i < maxDateAttempts; i++ {
		date := current.Format(dateLayout)
		if !s.IsDateUsed(date) {
			return date, nil
		}
		current = current.AddDate(0, 0, 1)
	}
	return "", ErrDatesExhausted
}
