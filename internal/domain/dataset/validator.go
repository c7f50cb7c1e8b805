package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/yanqian/aqi-analyst/pkg/errors"
)

var requiredColumns = []string{"Date", "City", "AQI"}

// Date layouts accepted during coercion, tried in order.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"02-01-2006",
	time.RFC3339,
	"2006-01-02 15:04:05",
}

// ParseCSV reads an uploaded CSV into a Dataset. Header names are trimmed
// before matching; rows whose Date or AQI cannot be coerced are dropped
// rather than failing the upload. Readings come back sorted by date.
func ParseCSV(r io.Reader) (Dataset, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return Dataset{}, apperrors.Wrap(apperrors.CodeInvalidInput, "failed to read CSV header", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}

	var missing []string
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return Dataset{}, apperrors.Wrap(apperrors.CodeSchemaError, fmt.Sprintf("missing required columns: %s", strings.Join(missing, ", ")), nil)
	}

	dateIdx, cityIdx, aqiIdx := index["Date"], index["City"], index["AQI"]
	readings := make([]Reading, 0, 64)
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Dataset{}, apperrors.Wrap(apperrors.CodeInvalidInput, "failed to read CSV row", err)
		}
		if dateIdx >= len(row) || cityIdx >= len(row) || aqiIdx >= len(row) {
			continue
		}

		date, ok := parseDate(row[dateIdx])
		if !ok {
			continue
		}
		aqi, err := strconv.ParseFloat(strings.TrimSpace(row[aqiIdx]), 64)
		if err != nil {
			continue
		}
		readings = append(readings, Reading{
			Date: date,
			City: strings.TrimSpace(row[cityIdx]),
			AQI:  aqi,
		})
	}

	if len(readings) == 0 {
		return Dataset{}, apperrors.Wrap(apperrors.CodeEmptyDataset, "no valid rows remain after validation", nil)
	}

	sort.SliceStable(readings, func(i, j int) bool {
		return readings[i].Date.Before(readings[j].Date)
	})
	return Dataset{Readings: readings}, nil
}

func parseDate(value string) (time.Time, bool) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, trimmed); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}
