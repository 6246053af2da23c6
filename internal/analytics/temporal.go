package analytics

import (
	"fmt"
	"time"

	"github.com/ajmok/streamstats/internal/history"
)

// Bucket is one labeled cell of a temporal histogram.
type Bucket struct {
	Label string
	Count int
}

// TimeDistribution holds four independent histograms over an event set.
// Every bucket is present, zero counts included, so the output is directly
// chart-ready.
type TimeDistribution struct {
	// Hourly has 24 buckets, "0:00" through "23:00".
	Hourly []Bucket
	// Weekday has 7 buckets, Monday through Sunday.
	Weekday []Bucket
	// MonthDay has 31 buckets, "1st" through "31st".
	MonthDay []Bucket
	// Monthly has 12 buckets, January through December.
	Monthly []Bucket
}

// Distributions buckets events by hour of day, weekday, day of month, and
// month of year.
func Distributions(events []history.Event) TimeDistribution {
	var hours [24]int
	var weekdays [7]int
	var monthDays [31]int
	var months [12]int

	for _, e := range events {
		hours[e.Time.Hour()]++
		weekdays[mondayIndexed(e.Time.Weekday())]++
		monthDays[e.Time.Day()-1]++
		months[int(e.Time.Month())-1]++
	}

	d := TimeDistribution{
		Hourly:   make([]Bucket, 24),
		Weekday:  make([]Bucket, 7),
		MonthDay: make([]Bucket, 31),
		Monthly:  make([]Bucket, 12),
	}
	for h := 0; h < 24; h++ {
		d.Hourly[h] = Bucket{Label: fmt.Sprintf("%d:00", h), Count: hours[h]}
	}
	for w := 0; w < 7; w++ {
		label := time.Weekday((w + 1) % 7).String()
		d.Weekday[w] = Bucket{Label: label, Count: weekdays[w]}
	}
	for day := 1; day <= 31; day++ {
		d.MonthDay[day-1] = Bucket{Label: ordinal(day), Count: monthDays[day-1]}
	}
	for m := 1; m <= 12; m++ {
		d.Monthly[m-1] = Bucket{Label: time.Month(m).String(), Count: months[m-1]}
	}
	return d
}

// mondayIndexed maps time.Weekday (Sunday=0) to Monday=0..Sunday=6.
func mondayIndexed(w time.Weekday) int {
	return (int(w) + 6) % 7
}

// ordinal renders 1 as "1st", 22 as "22nd", and so on, with the usual
// 11th/12th/13th exception.
func ordinal(n int) string {
	suffix := "th"
	if n%100 < 11 || n%100 > 13 {
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return fmt.Sprintf("%d%s", n, suffix)
}
