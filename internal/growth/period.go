package growth

import "time"

// Усечение периодов повторяет семантику date_trunc в PostgreSQL:
// день и месяц по календарю UTC, неделя — ISO, с понедельника.

func truncDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func truncWeek(t time.Time) time.Time {
	t = truncDay(t)
	offset := (int(t.Weekday()) + 6) % 7
	return t.AddDate(0, 0, -offset)
}

func truncMonth(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func addMonth(t time.Time) time.Time {
	return t.AddDate(0, 1, 0)
}

func weeksBetween(first, active time.Time) int {
	return int(active.Sub(first).Hours() / (24 * 7))
}
