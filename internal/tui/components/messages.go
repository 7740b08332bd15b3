package components

import (
	"time"

	"github.com/hy4ri/taskcal/internal/api"
)

// TaskSelectedMsg is emitted when a task is activated in a calendar view.
type TaskSelectedMsg struct {
	Task api.Task
}

// SlotSelectedMsg is emitted when an empty part of a slot is activated.
// Time is the start of the slot: local midnight for day slots, the hour for hour slots.
type SlotSelectedMsg struct {
	Time  time.Time
	Timed bool
}
