package snotel

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"time"

	"github.com/chrissnell/snowtracker/internal/analytics"
)

// datePattern is the basic shape check applied before parsing a row's date.
// Rows failing it are dropped, not surfaced as errors; the report generator
// occasionally emits footer junk and repeated headers mid-stream.
var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ParseDailyCSV reads a report-generator daily CSV into daily observations.
// Comment lines ('#' prefix) and the header row are skipped. A row with a
// well-formed date but an empty or unparseable value becomes an explicit
// missing observation; a row with a malformed date is dropped and counted.
func ParseDailyCSV(r io.Reader) (obs []analytics.DailyObservation, dropped int, err error) {
	reader := csv.NewReader(r)
	reader.Comment = '#'
	reader.FieldsPerRecord = -1 // column count varies across report types

	first := true
	for {
		record, readErr := reader.Read()
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return nil, dropped, fmt.Errorf("csv read failed: %w", readErr)
		}
		if len(record) == 0 {
			continue
		}

		isDate := datePattern.MatchString(record[0])
		if first {
			first = false
			if !isDate {
				// Header row.
				continue
			}
		}
		if !isDate {
			dropped++
			continue
		}
		date, parseErr := time.Parse("2006-01-02", record[0])
		if parseErr != nil {
			dropped++
			continue
		}

		o := analytics.DailyObservation{Date: date.UTC()}
		if len(record) > 1 && record[1] != "" {
			if v, convErr := strconv.ParseFloat(record[1], 64); convErr == nil {
				o.Value = v
				o.Valid = true
			}
		}
		obs = append(obs, o)
	}

	return obs, dropped, nil
}
