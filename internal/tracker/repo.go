package tracker

// Collection operations. Every mutation returns a new slice; the input is
// never edited in place. That keeps the single-writer model honest: callers
// holding the previous snapshot (views, staged exports) never see partial
// mutations.

// Insert prepends t to the collection. Most-recent-first ordering on the
// dashboard is a core UX contract, so new trackers go to the top.
func Insert(list []Tracker, t Tracker) []Tracker {
	out := make([]Tracker, 0, len(list)+1)
	out = append(out, t)
	out = append(out, list...)
	return out
}

// Replace substitutes the tracker with a matching id. A missing id is a
// silent no-op: callers are expected to pass a tracker obtained from the
// current collection.
func Replace(list []Tracker, t Tracker) []Tracker {
	out := make([]Tracker, len(list))
	for i, existing := range list {
		if existing.ID == t.ID {
			out[i] = t
		} else {
			out[i] = existing
		}
	}
	return out
}

// Remove deletes the tracker with the given id. No error if absent.
func Remove(list []Tracker, id string) []Tracker {
	out := make([]Tracker, 0, len(list))
	for _, t := range list {
		if t.ID != id {
			out = append(out, t)
		}
	}
	return out
}

// Find returns the tracker with the given id, if present.
func Find(list []Tracker, id string) (Tracker, bool) {
	for _, t := range list {
		if t.ID == id {
			return t, true
		}
	}
	return Tracker{}, false
}

// Per-tracker task operations. Tasks are addressed through the owning
// tracker; the returned Tracker is a new value with a fresh task slice.

// AddTask appends a task with the given id and fields to the end of the
// task list. The new task starts uncompleted with no habit history.
func AddTask(t Tracker, id, text string, value *float64, quantity int) (Tracker, Task) {
	task := Task{
		ID:        id,
		Text:      text,
		Completed: false,
	}
	if value != nil {
		v := *value
		task.Value = &v
	}
	if quantity != 1 {
		q := quantity
		task.Quantity = &q
	}
	t.Tasks = append(t.CloneTasks(), task)
	return t, task
}

// UpdateTask replaces text/value/quantity on the matching task. A nil value
// clears the price ("no price set", distinct from zero); quantity 1 resets
// to the default. Returns false if no task matches.
func UpdateTask(t Tracker, taskID, text string, value *float64, quantity int) (Tracker, bool) {
	tasks := t.CloneTasks()
	found := false
	for i, task := range tasks {
		if task.ID != taskID {
			continue
		}
		task.Text = text
		if value != nil {
			v := *value
			task.Value = &v
		} else {
			task.Value = nil
		}
		if quantity != 1 {
			q := quantity
			task.Quantity = &q
		} else {
			task.Quantity = nil
		}
		tasks[i] = task
		found = true
		break
	}
	t.Tasks = tasks
	return t, found
}

// ToggleTask flips the completed flag on the matching task.
// Returns false if no task matches.
func ToggleTask(t Tracker, taskID string) (Tracker, bool) {
	tasks := t.CloneTasks()
	found := false
	for i, task := range tasks {
		if task.ID == taskID {
			tasks[i].Completed = !task.Completed
			found = true
			break
		}
	}
	t.Tasks = tasks
	return t, found
}

// DeleteTask removes the matching task. Returns false if no task matches.
func DeleteTask(t Tracker, taskID string) (Tracker, bool) {
	tasks := make([]Task, 0, len(t.Tasks))
	found := false
	for _, task := range t.Tasks {
		if task.ID == taskID {
			found = true
			continue
		}
		tasks = append(tasks, task)
	}
	t.Tasks = tasks
	return t, found
}

// ClearCompleted removes all tasks with completed=true.
func ClearCompleted(t Tracker) Tracker {
	tasks := make([]Task, 0, len(t.Tasks))
	for _, task := range t.Tasks {
		if !task.Completed {
			tasks = append(tasks, task)
		}
	}
	t.Tasks = tasks
	return t
}

// DeleteAllTasks empties the task list unconditionally.
func DeleteAllTasks(t Tracker) Tracker {
	t.Tasks = []Task{}
	return t
}
