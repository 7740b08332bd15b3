package calendar

import (
	"sort"
	"strings"
	"time"

	"github.com/hy4ri/taskcal/internal/api"
)

// Filters restricts which tasks are shown. An empty field places no restriction.
type Filters struct {
	Status   []api.Status
	Priority []api.Priority
	Tags     []string
}

// IsEmpty reports whether no restriction is set.
func (f Filters) IsEmpty() bool {
	return len(f.Status) == 0 && len(f.Priority) == 0 && len(f.Tags) == 0
}

// Merge returns f with every non-nil field of partial applied.
// A non-nil empty slice clears the corresponding restriction.
func (f Filters) Merge(partial Filters) Filters {
	if partial.Status != nil {
		f.Status = append([]api.Status(nil), partial.Status...)
	}
	if partial.Priority != nil {
		f.Priority = append([]api.Priority(nil), partial.Priority...)
	}
	if partial.Tags != nil {
		f.Tags = append([]string(nil), partial.Tags...)
	}
	return f
}

// Match reports whether task passes every restriction. Tags match if any tag intersects.
func (f Filters) Match(task api.Task) bool {
	if len(f.Status) > 0 && !containsStatus(f.Status, task.Status) {
		return false
	}
	if len(f.Priority) > 0 && !containsPriority(f.Priority, task.Priority) {
		return false
	}
	if len(f.Tags) > 0 {
		hit := false
		for _, tag := range f.Tags {
			if task.HasTag(tag) {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}
	return true
}

// Apply returns the tasks that pass f, preserving order.
func (f Filters) Apply(tasks []api.Task) []api.Task {
	out := make([]api.Task, 0, len(tasks))
	for _, t := range tasks {
		if f.Match(t) {
			out = append(out, t)
		}
	}
	return out
}

// Summary is a short description of the active restrictions, e.g. "status:done tags:home".
func (f Filters) Summary() string {
	var parts []string
	if len(f.Status) > 0 {
		values := make([]string, len(f.Status))
		for i, s := range f.Status {
			values[i] = string(s)
		}
		parts = append(parts, "status:"+strings.Join(values, ","))
	}
	if len(f.Priority) > 0 {
		values := make([]string, len(f.Priority))
		for i, p := range f.Priority {
			values[i] = string(p)
		}
		parts = append(parts, "priority:"+strings.Join(values, ","))
	}
	if len(f.Tags) > 0 {
		parts = append(parts, "tags:"+strings.Join(f.Tags, ","))
	}
	return strings.Join(parts, " ")
}

// ToggleStatus adds s to the status restriction, or removes it if present.
func (f Filters) ToggleStatus(s api.Status) Filters {
	out := make([]api.Status, 0, len(f.Status)+1)
	found := false
	for _, existing := range f.Status {
		if existing == s {
			found = true
			continue
		}
		out = append(out, existing)
	}
	if !found {
		out = append(out, s)
	}
	return f.Merge(Filters{Status: out})
}

// TogglePriority adds p to the priority restriction, or removes it if present.
func (f Filters) TogglePriority(p api.Priority) Filters {
	out := make([]api.Priority, 0, len(f.Priority)+1)
	found := false
	for _, existing := range f.Priority {
		if existing == p {
			found = true
			continue
		}
		out = append(out, existing)
	}
	if !found {
		out = append(out, p)
	}
	return f.Merge(Filters{Priority: out})
}

func containsStatus(list []api.Status, s api.Status) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func containsPriority(list []api.Priority, p api.Priority) bool {
	for _, v := range list {
		if v == p {
			return true
		}
	}
	return false
}

// GroupByDateKey buckets tasks by the local day of their due date, preserving input order
// within a bucket. Tasks without a due date are left out.
func GroupByDateKey(tasks []api.Task) map[DateKey][]api.Task {
	grouped := make(map[DateKey][]api.Task)
	for _, t := range tasks {
		if t.DueDate == nil {
			continue
		}
		key := FormatDateKey(*t.DueDate)
		grouped[key] = append(grouped[key], t)
	}
	return grouped
}

// SortForCell orders tasks for a calendar cell: due hour ascending, then priority
// (urgent first). Tasks without a due date sort last. The sort is stable.
func SortForCell(tasks []api.Task) []api.Task {
	out := append([]api.Task(nil), tasks...)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if (a.DueDate == nil) != (b.DueDate == nil) {
			return a.DueDate != nil
		}
		if a.DueDate != nil {
			ha, hb := a.DueDate.In(time.Local).Hour(), b.DueDate.In(time.Local).Hour()
			if ha != hb {
				return ha < hb
			}
		}
		return a.Priority.Rank() < b.Priority.Rank()
	})
	return out
}

// SortByDue orders tasks by due date ascending with undated tasks last. The sort is stable.
func SortByDue(tasks []api.Task) []api.Task {
	out := append([]api.Task(nil), tasks...)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].DueDate, out[j].DueDate
		switch {
		case a == nil && b == nil:
			return false
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.Before(*b)
		}
	})
	return out
}

// KnownTags returns the distinct tags used by tasks, sorted.
func KnownTags(tasks []api.Task) []string {
	seen := make(map[string]bool)
	var tags []string
	for _, t := range tasks {
		for _, tag := range t.Tags {
			if tag == "" || seen[tag] {
				continue
			}
			seen[tag] = true
			tags = append(tags, tag)
		}
	}
	sort.Strings(tags)
	return tags
}
