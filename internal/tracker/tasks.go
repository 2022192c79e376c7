package tracker

import (
	"fmt"
	"sort"
	"strings"
)

type TaskInput struct {
	Title         string
	Description   string
	Priority      Priority
	Context       string
	EstimatedTime int
	DueDate       *string
	IsFrog        bool
	ProjectID     *string
}

func (in TaskInput) normalize() (TaskInput, error) {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return in, fmt.Errorf("%w: title is required", ErrInvalid)
	}
	if in.Priority == "" {
		in.Priority = PriorityC
	}
	if !in.Priority.IsValid() {
		return in, fmt.Errorf("%w: priority %q", ErrInvalid, in.Priority)
	}
	if in.EstimatedTime < 0 {
		return in, fmt.Errorf("%w: estimated time must not be negative", ErrInvalid)
	}
	if in.DueDate != nil {
		if _, err := ParseDay(*in.DueDate); err != nil {
			return in, fmt.Errorf("%w: %v", ErrInvalid, err)
		}
	}
	return in, nil
}

func findTask(st *State, id string) int {
	for i := range st.Tasks {
		if st.Tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// clearFrogs unsets the frog flag on every task except keep.
func clearFrogs(st *State, keep string) {
	for i := range st.Tasks {
		if st.Tasks[i].ID != keep {
			st.Tasks[i].IsFrog = false
		}
	}
}

func (t *Tracker) AddTask(in TaskInput) (Task, error) {
	in, err := in.normalize()
	if err != nil {
		return Task{}, err
	}
	var created Task
	err = t.mutate(func(st *State) error {
		task := Task{
			ID:            t.newID(),
			Title:         in.Title,
			Description:   in.Description,
			Priority:      in.Priority,
			Context:       in.Context,
			EstimatedTime: in.EstimatedTime,
			DueDate:       clonePtr(in.DueDate),
			IsFrog:        in.IsFrog,
			CreatedAt:     t.clock(),
		}
		st.Tasks = append(st.Tasks, task)
		if in.ProjectID != nil {
			if err := assignTask(st, task.ID, *in.ProjectID); err != nil {
				return err
			}
		}
		if task.IsFrog {
			clearFrogs(st, task.ID)
		}
		created = st.Tasks[findTask(st, task.ID)]
		return nil
	})
	return created, err
}

// UpdateTask replaces the editable fields. Completion is changed only through
// ToggleTaskCompletion.
func (t *Tracker) UpdateTask(id string, in TaskInput) error {
	in, err := in.normalize()
	if err != nil {
		return err
	}
	return t.mutate(func(st *State) error {
		i := findTask(st, id)
		if i < 0 {
			return notFound("task", id)
		}
		task := &st.Tasks[i]
		task.Title = in.Title
		task.Description = in.Description
		task.Priority = in.Priority
		task.Context = in.Context
		task.EstimatedTime = in.EstimatedTime
		task.DueDate = clonePtr(in.DueDate)
		task.IsFrog = in.IsFrog
		if task.IsFrog {
			clearFrogs(st, id)
		}

		projectID := ""
		if in.ProjectID != nil {
			projectID = *in.ProjectID
		}
		return assignTask(st, id, projectID)
	})
}

func (t *Tracker) DeleteTask(id string) error {
	return t.mutate(func(st *State) error {
		i := findTask(st, id)
		if i < 0 {
			return notFound("task", id)
		}
		if err := assignTask(st, id, ""); err != nil {
			return err
		}
		st.Tasks = append(st.Tasks[:i], st.Tasks[i+1:]...)
		return nil
	})
}

// ToggleTaskCompletion flips the completed flag. Points are awarded only on
// the transition to completed: 30 for the frog, 5 otherwise.
func (t *Tracker) ToggleTaskCompletion(id string) (Task, error) {
	var updated Task
	err := t.mutate(func(st *State) error {
		i := findTask(st, id)
		if i < 0 {
			return notFound("task", id)
		}
		task := &st.Tasks[i]
		task.Completed = !task.Completed
		if !task.Completed {
			task.CompletedAt = nil
			updated = *task
			return nil
		}

		now := t.clock()
		task.CompletedAt = &now
		if task.IsFrog {
			t.award(st, Points.CompleteFrog)
			t.unlock(st, AchievementFirstFrog)
		} else {
			t.award(st, Points.CompleteTask)
		}
		updated = st.Tasks[i]
		return nil
	})
	return updated, err
}

// SetFrogOfDay makes id the only frog. An unknown id changes nothing.
func (t *Tracker) SetFrogOfDay(id string) error {
	return t.mutate(func(st *State) error {
		if findTask(st, id) < 0 {
			return notFound("task", id)
		}
		for i := range st.Tasks {
			st.Tasks[i].IsFrog = st.Tasks[i].ID == id
		}
		return nil
	})
}

// Frog returns the current frog task, if any.
func (t *Tracker) Frog() (Task, bool) {
	st := t.Snapshot()
	for _, task := range st.Tasks {
		if task.IsFrog {
			return task, true
		}
	}
	return Task{}, false
}

// SortTasks orders open tasks before completed ones, then by priority, then
// by due date with undated tasks last.
func SortTasks(tasks []Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		a, b := tasks[i], tasks[j]
		if a.Completed != b.Completed {
			return !a.Completed
		}
		if a.Priority.Rank() != b.Priority.Rank() {
			return a.Priority.Rank() < b.Priority.Rank()
		}
		switch {
		case a.DueDate == nil && b.DueDate == nil:
			return false
		case a.DueDate == nil:
			return false
		case b.DueDate == nil:
			return true
		default:
			return *a.DueDate < *b.DueDate
		}
	})
}
