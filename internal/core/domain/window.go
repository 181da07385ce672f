package domain

import "time"

// CurrentWeekRange returns the Monday and Sunday of the week containing ref,
// as UTC calendar dates. The window is inclusive on both ends.
func CurrentWeekRange(ref time.Time) (start, end time.Time) {
	day := Day(ref)
	// time.Weekday numbers Sunday as 0; shift so Monday is the anchor.
	offset := (int(day.Weekday()) + 6) % 7
	start = day.AddDate(0, 0, -offset)
	end = start.AddDate(0, 0, 6)
	return start, end
}
