package dataset

import (
	"fmt"
	"sort"
	"strings"
)

// BuildDigest reduces a Dataset into the line-oriented text block handed to
// the prompt composer. Output is deterministic: cities sorted, months in
// chronological order, fixed rounding (2dp stats, 1dp monthly means).
func BuildDigest(ds Dataset) string {
	if ds.Len() == 0 {
		return ""
	}

	start, end := ds.DateRange()
	cities := ds.Cities()

	lines := []string{
		"### DATASET SUMMARY",
		fmt.Sprintf("Date Range: %s to %s", start.Format("2006-01-02"), end.Format("2006-01-02")),
		fmt.Sprintf("Cities Included: %s", strings.Join(cities, ", ")),
		"",
		"### CITY-WISE STATISTICS",
	}

	for _, city := range cities {
		stats := cityStats(ds, city)
		lines = append(lines,
			"",
			fmt.Sprintf("City: %s", city),
			fmt.Sprintf("- Min AQI: %.2f", stats.min),
			fmt.Sprintf("- Max AQI: %.2f", stats.max),
			fmt.Sprintf("- Avg AQI: %.2f", stats.mean),
			"- Monthly Averages:",
		)
		for _, bucket := range stats.monthly {
			lines = append(lines, fmt.Sprintf("  %s: %.1f", bucket.month, bucket.mean))
		}
	}

	return strings.Join(lines, "\n")
}

type monthBucket struct {
	month string
	mean  float64
}

type stats struct {
	min     float64
	max     float64
	mean    float64
	monthly []monthBucket
}

func cityStats(ds Dataset, city string) stats {
	var (
		sum        float64
		count      int
		out        stats
		monthSums  = make(map[string]float64)
		monthCount = make(map[string]int)
	)
	first := true
	for _, r := range ds.Readings {
		if r.City != city {
			continue
		}
		if first {
			out.min, out.max = r.AQI, r.AQI
			first = false
		}
		if r.AQI < out.min {
			out.min = r.AQI
		}
		if r.AQI > out.max {
			out.max = r.AQI
		}
		sum += r.AQI
		count++

		month := r.Date.Format("2006-01")
		monthSums[month] += r.AQI
		monthCount[month]++
	}
	if count == 0 {
		return out
	}
	out.mean = sum / float64(count)

	months := make([]string, 0, len(monthSums))
	for month := range monthSums {
		months = append(months, month)
	}
	sort.Strings(months)
	for _, month := range months {
		out.monthly = append(out.monthly, monthBucket{
			month: month,
			mean:  monthSums[month] / float64(monthCount[month]),
		})
	}
	return out
}
