package weather

import "time"

// ForecastWindow returns the [from, to] range of slots worth reporting at now:
// from now until local midnight two calendar days ahead, both in Tokyo.
func ForecastWindow(now time.Time) (time.Time, time.Time) {
	from := now.In(Tokyo)
	later := from.AddDate(0, 0, 2)
	to := time.Date(later.Year(), later.Month(), later.Day(), 0, 0, 0, 0, Tokyo)
	return from, to
}

// FilterForecast keeps the entries whose time falls inside ForecastWindow(now),
// inclusive at both ends. Entries without a time are dropped. Order is preserved.
func FilterForecast(entries []ForecastEntry, now time.Time) []ForecastEntry {
	from, to := ForecastWindow(now)

	var kept []ForecastEntry
	for _, e := range entries {
		if e.Time.IsZero() {
			continue
		}
		if e.Time.Before(from) || e.Time.After(to) {
			continue
		}
		kept = append(kept, e)
	}
	return kept
}
