package domain

import "time"

// JournalStreak counts consecutive calendar days, walking back from today,
// that have a journal entry. dates may be in any order and contain duplicates.
func JournalStreak(dates []string, today string) int {
	have := make(map[string]bool, len(dates))
	for _, d := range dates {
		have[d] = true
	}
	return walkBack(today, func(d string) bool { return have[d] })
}

// TaskStreak counts consecutive calendar days, walking back from today, on
// which every task for the day was completed. A day without tasks ends the streak.
func TaskStreak(days []DayCompletion, today string) int {
	byDate := make(map[string]DayCompletion, len(days))
	for _, d := range days {
		byDate[d.Date] = d
	}
	return walkBack(today, func(d string) bool { return byDate[d].AllDone() })
}

func walkBack(today string, qualifies func(string) bool) int {
	cur, err := ParseDate(today)
	if err != nil {
		return 0
	}
	streak := 0
	for qualifies(FormatDate(cur)) {
		streak++
		cur = cur.Add(-24 * time.Hour)
	}
	return streak
}
