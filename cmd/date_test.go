package cmd

import (
	"strings"
	"testing"
	"time"
)

func TestGetImplicitDateRange_year(t *testing.T) {
	doTestGetImplicitDateRange(t, "2020", "2021", "2006")
}

func TestGetImplicitDateRange_month(t *testing.T) {
	doTestGetImplicitDateRange(t, "2020-01", "2020-02", "2006-01")
}

func TestGetImplicitDateRange_day(t *testing.T) {
	doTestGetImplicitDateRange(t, "2020-01-01", "2020-01-02", "2006-01-02")
}

func TestGetImplicitDateRange_invalid(t *testing.T) {
	for _, input := range []string{"2020-01-0123", "not_real", "20-01"} {
		_, _, err := getImplicitDateRange(input)
		if err == nil {
			t.Fatalf("Expected error parsing %q", input)
		}
		if !strings.Contains(err.Error(), "invalid date format") {
			t.Fatalf("Expected invalid-format error for %q, got: %v", input, err)
		}
	}
}

func doTestGetImplicitDateRange(t *testing.T, startString string, endString string, format string) {
	t.Helper()
	start, end, err := getImplicitDateRange(startString)
	if err != nil {
		t.Fatalf("getImplicitDateRange(%q): %v", startString, err)
	}

	expectedStart, err := time.Parse(format, startString)
	if err != nil {
		t.Fatalf("Constructing expectedStart: %v", err)
	}

	expectedEnd, err := time.Parse(format, endString)
	if err != nil {
		t.Fatalf("Constructing expectedEnd: %v", err)
	}

	if start != expectedStart {
		t.Fatalf("Expected start to be %q, got %q", expectedStart, start)
	}

	if end != expectedEnd {
		t.Fatalf("Expected end to be %q, got %q", expectedEnd, end)
	}
}

func TestGetExplicitDateRange_valid(t *testing.T) {
	const startString = "2020"
	const endString = "2020-02-01"
	expectedStart, err := time.Parse("2006", startString)
	if err != nil {
		t.Fatalf("Constructing expectedStart: %v", err)
	}

	expectedEnd, err := time.Parse("2006-01-02", endString)
	if err != nil {
		t.Fatalf("Constructing expectedEnd: %v", err)
	}

	start, end, err := getExplicitDateRange(startString, endString)
	if err != nil {
		t.Fatalf("getExplicitDateRange(%q, %q): %v", startString, endString, err)
	}

	if start != expectedStart {
		t.Fatalf("Expected start to be %q, got %q", expectedStart, start)
	}

	if end != expectedEnd {
		t.Fatalf("Expected end to be %q, got %q", expectedEnd, end)
	}
}

func TestGetExplicitDateRange_invalid(t *testing.T) {
	_, _, err := getExplicitDateRange("2020", "abc")
	if err == nil {
		t.Fatalf("Expected error when parsing invalid datestring")
	}
}

func TestParseDateRangeFromArgs_noArgs(t *testing.T) {
	start, end, err := parseDateRangeFromArgs(nil)
	if err != nil {
		t.Fatalf("parseDateRangeFromArgs(nil): %v", err)
	}
	if !start.IsZero() || !end.IsZero() {
		t.Errorf("Expected unbounded range, got %v to %v", start, end)
	}
}
