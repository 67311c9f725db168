package reporting

import "time"

// MonthBucket is one month's slice of an annual report.
type MonthBucket struct {
	Month time.Month `json:"month"`
	Label string     `json:"label"`
	Count int64      `json:"count"`
}

// MonthlyCounts buckets timestamps into the twelve calendar months,
// January through December, ignoring the year. Months with no activity are
// present with a zero count so the caller always gets a full year shape.
func MonthlyCounts(timestamps []time.Time) []MonthBucket {
	counts := make(map[time.Month]int64, 12)
	for _, ts := range timestamps {
		counts[ts.UTC().Month()]++
	}
	return buckets(counts)
}

// MonthlyCountsForYear is MonthlyCounts restricted to a single calendar
// year. Timestamps from other years are dropped.
func MonthlyCountsForYear(timestamps []time.Time, year int) []MonthBucket {
	counts := make(map[time.Month]int64, 12)
	for _, ts := range timestamps {
		ts = ts.UTC()
		if ts.Year() != year {
			continue
		}
		counts[ts.Month()]++
	}
	return buckets(counts)
}

func buckets(counts map[time.Month]int64) []MonthBucket {
	result := make([]MonthBucket, 0, 12)
	for m := time.January; m <= time.December; m++ {
		result = append(result, MonthBucket{
			Month: m,
			// Dashboard axis labels use the short month name, "Jan"
			// through "Dec".
			Label: m.String()[:3],
			Count: counts[m],
		})
	}
	return result
}
