package utils

import "time"

// RoundToHalfHour snaps t down to the previous 30-minute boundary.
// Queries inside the same half-hour window share an as-of time, which
// keeps the hours filter stable and avoids redundant re-fetches.
func RoundToHalfHour(t time.Time) time.Time {
	return t.Truncate(30 * time.Minute)
}

// HHMM renders a time as the 4-digit "HHMM" form used by the stored
// operating-hours payloads, e.g. 9:05 -> "0905".
func HHMM(t time.Time) string {
	return t.Format("1504")
}

// HourFromISOTime extracts the hour component (0-23) from an RFC 3339
// timestamp. Used when defaulting the venue type by time of day.
func HourFromISOTime(iso string) (int, error) {
	t, err := time.Parse(time.RFC3339, iso)
	if err != nil {
		return 0, err
	}
	return t.Hour(), nil
}
