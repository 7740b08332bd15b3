package calendar

import (
	"time"

	"github.com/hy4ri/taskcal/internal/api"
)

// IsOverdue reports whether task is overdue at day granularity: the task is not done and
// the whole of its due day has elapsed. A task due today is never overdue under this policy.
// Month and List views use it.
func IsOverdue(task api.Task, now time.Time) bool {
	if task.DueDate == nil || task.IsDone() {
		return false
	}
	return EndOfDay(*task.DueDate).Before(now)
}

// IsOverdueAt reports whether task is overdue at instant granularity: the task is not done and
// its due timestamp has passed. Day and Week views use it.
func IsOverdueAt(task api.Task, now time.Time) bool {
	if task.DueDate == nil || task.IsDone() {
		return false
	}
	return task.DueDate.Before(now)
}

// DayLabel is the relative heading for a day in the list view.
type DayLabel string

const (
	LabelToday     DayLabel = "Today"
	LabelTomorrow  DayLabel = "Tomorrow"
	LabelYesterday DayLabel = "Yesterday"
	LabelOverdue   DayLabel = "Overdue"
	LabelThisWeek  DayLabel = "This Week"
	LabelNextWeek  DayLabel = "Next Week"
	LabelUpcoming  DayLabel = "Upcoming"
)

// DateStatus classifies date relative to today. Rules apply in order: today, tomorrow,
// yesterday, any earlier day, then by distance ahead (<=7 this week, <=14 next week).
func DateStatus(date, today time.Time) DayLabel {
	diff := DaysBetween(today, date)
	switch {
	case diff == 0:
		return LabelToday
	case diff == 1:
		return LabelTomorrow
	case diff == -1:
		return LabelYesterday
	case diff < 0:
		return LabelOverdue
	case diff <= 7:
		return LabelThisWeek
	case diff <= 14:
		return LabelNextWeek
	default:
		return LabelUpcoming
	}
}
