package cmd

import (
	"fmt"
	"time"
)

// ParsedDate is a datestring plus the precision it was written at, which
// determines how wide an implicit range it spans.
type ParsedDate struct {
	Date  time.Time
	Year  bool
	Month bool
	Day   bool
}

// parseDateRangeFromArgs turns zero, one, or two datestring args into a
// [start, end) range. No args means unbounded (zero times). One arg spans
// the unit it names: '2023' is the whole year, '2023-06' the whole month.
func parseDateRangeFromArgs(args []string) (start time.Time, end time.Time, err error) {
	switch len(args) {
	case 0:
		// Unbounded

	case 1:
		start, end, err = getImplicitDateRange(args[0])

	case 2:
		start, end, err = getExplicitDateRange(args[0], args[1])

	default:
		err = fmt.Errorf("expected at most two date arguments")
	}
	return
}

func getImplicitDateRange(ds string) (start time.Time, end time.Time, err error) {
	date, err := parseSingleDatestring(ds)
	if err != nil {
		return
	}

	start = date.Date
	switch {
	case date.Year:
		end = start.AddDate(1, 0, 0)

	case date.Month:
		end = start.AddDate(0, 1, 0)

	case date.Day:
		end = start.AddDate(0, 0, 1)

	default:
		err = fmt.Errorf("invalid format: %q", ds)
	}

	return
}

func getExplicitDateRange(startString, endString string) (start time.Time, end time.Time, err error) {
	startParsed, err := parseSingleDatestring(startString)
	if err != nil {
		return
	}
	start = startParsed.Date

	endParsed, err := parseSingleDatestring(endString)
	if err != nil {
		return
	}
	end = endParsed.Date

	return
}

// parseSingleDatestring accepts 'yyyy', 'yyyy-mm', or 'yyyy-mm-dd'.
func parseSingleDatestring(ds string) (ParsedDate, error) {
	layouts := []struct {
		layout string
		apply  func(*ParsedDate)
	}{
		{"2006-01-02", func(d *ParsedDate) { d.Day = true }},
		{"2006-01", func(d *ParsedDate) { d.Month = true }},
		{"2006", func(d *ParsedDate) { d.Year = true }},
	}

	for _, l := range layouts {
		t, err := time.Parse(l.layout, ds)
		if err != nil {
			continue
		}
		date := ParsedDate{Date: t}
		l.apply(&date)
		return date, nil
	}
	return ParsedDate{}, fmt.Errorf("invalid date format: %q (want yyyy, yyyy-mm, or yyyy-mm-dd)", ds)
}
