package application

import (
	"sort"
	"time"

	"github.com/AzielCF/az-planner/pkg/timeutils"
)

// RandomDates picks up to count distinct days of year/month and returns them
// as sorted YYYY-MM-DD strings. Asking for more days than the month has
// returns every day of the month.
func RandomDates(rng RandSource, count int, year int, month time.Month) []string {
	if count <= 0 {
		return []string{}
	}

	daysInMonth := timeutils.DaysInMonth(year, month)
	if count > daysInMonth {
		count = daysInMonth
	}

	used := make(map[int]bool, count)
	dates := make([]string, 0, count)
	for len(dates) < count {
		day := rng.Intn(daysInMonth) + 1
		if used[day] {
			continue
		}
		used[day] = true
		dates = append(dates, timeutils.FormatDate(time.Date(year, month, day, 0, 0, 0, 0, time.UTC)))
	}

	sort.Strings(dates)
	return dates
}
