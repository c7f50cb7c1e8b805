package dataset

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBuildDigestStats(t *testing.T) {
	ds := Dataset{Readings: []Reading{
		{Date: day(2024, 1, 1), City: "CityA", AQI: 50},
		{Date: day(2024, 1, 15), City: "CityA", AQI: 100},
		{Date: day(2024, 2, 1), City: "CityA", AQI: 150},
		{Date: day(2024, 1, 10), City: "CityB", AQI: 80},
	}}

	digest := BuildDigest(ds)

	require.Contains(t, digest, "### DATASET SUMMARY")
	require.Contains(t, digest, "Date Range: 2024-01-01 to 2024-02-01")
	require.Contains(t, digest, "Cities Included: CityA, CityB")
	require.Contains(t, digest, "### CITY-WISE STATISTICS")

	require.Contains(t, digest, "City: CityA")
	require.Contains(t, digest, "- Min AQI: 50.00")
	require.Contains(t, digest, "- Max AQI: 150.00")
	require.Contains(t, digest, "- Avg AQI: 100.00")
	require.Contains(t, digest, "  2024-01: 75.0")
	require.Contains(t, digest, "  2024-02: 150.0")

	require.Contains(t, digest, "City: CityB")
	require.Contains(t, digest, "- Avg AQI: 80.00")
}

func TestBuildDigestDeterministic(t *testing.T) {
	ds := Dataset{Readings: []Reading{
		{Date: day(2024, 3, 1), City: "Zagreb", AQI: 40},
		{Date: day(2024, 3, 1), City: "Athens", AQI: 60},
		{Date: day(2024, 4, 1), City: "Zagreb", AQI: 45},
	}}

	first := BuildDigest(ds)
	for i := 0; i < 5; i++ {
		require.Equal(t, first, BuildDigest(ds))
	}

	// Cities appear in sorted order.
	require.Less(t, strings.Index(first, "City: Athens"), strings.Index(first, "City: Zagreb"))
}

func TestBuildDigestMonthsChronological(t *testing.T) {
	ds := Dataset{Readings: []Reading{
		{Date: day(2023, 12, 1), City: "Delhi", AQI: 200},
		{Date: day(2024, 1, 1), City: "Delhi", AQI: 180},
		{Date: day(2023, 11, 1), City: "Delhi", AQI: 220},
	}}

	digest := BuildDigest(ds)
	require.Less(t, strings.Index(digest, "2023-11"), strings.Index(digest, "2023-12"))
	require.Less(t, strings.Index(digest, "2023-12"), strings.Index(digest, "2024-01"))
}

func TestBuildDigestEmptyDataset(t *testing.T) {
	require.Equal(t, "", BuildDigest(Dataset{}))
}
