package dataset

import (
	"sort"
	"time"
)

// Reading is a single validated row of the uploaded CSV.
type Reading struct {
	Date time.Time `json:"date"`
	City string    `json:"city"`
	AQI  float64   `json:"aqi"`
}

// Dataset holds the readings that survived coercion, sorted by date. It is
// owned by exactly one analysis session and discarded with it.
type Dataset struct {
	Readings []Reading
}

// Len returns the number of valid readings.
func (d Dataset) Len() int {
	return len(d.Readings)
}

// Cities returns the distinct city names in lexicographic order.
func (d Dataset) Cities() []string {
	seen := make(map[string]struct{}, len(d.Readings))
	cities := make([]string, 0, 4)
	for _, r := range d.Readings {
		if _, ok := seen[r.City]; ok {
			continue
		}
		seen[r.City] = struct{}{}
		cities = append(cities, r.City)
	}
	sort.Strings(cities)
	return cities
}

// DateRange returns the earliest and latest reading dates.
func (d Dataset) DateRange() (time.Time, time.Time) {
	if len(d.Readings) == 0 {
		return time.Time{}, time.Time{}
	}
	min, max := d.Readings[0].Date, d.Readings[0].Date
	for _, r := range d.Readings[1:] {
		if r.Date.Before(min) {
			min = r.Date
		}
		if r.Date.After(max) {
			max = r.Date
		}
	}
	return min, max
}
