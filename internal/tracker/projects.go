package tracker

import (
	"fmt"
	"strings"
)

type ProjectInput struct {
	Title       string
	Description string
	Status      ProjectStatus
}

func (in ProjectInput) normalize() (ProjectInput, error) {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return in, fmt.Errorf("%w: title is required", ErrInvalid)
	}
	switch in.Status {
	case "":
		in.Status = ProjectActive
	case ProjectActive, ProjectCompleted, ProjectSomeday, ProjectWaiting:
	default:
		return in, fmt.Errorf("%w: project status %q", ErrInvalid, in.Status)
	}
	return in, nil
}

func findProject(st *State, id string) int {
	for i := range st.Projects {
		if st.Projects[i].ID == id {
			return i
		}
	}
	return -1
}

// assignTask moves a task into projectID, or out of any project when
// projectID is empty. The task's ProjectID and the project's Tasks list are
// kept in agreement.
func assignTask(st *State, taskID, projectID string) error {
	ti := findTask(st, taskID)
	if ti < 0 {
		return notFound("task", taskID)
	}
	pi := -1
	if projectID != "" {
		if pi = findProject(st, projectID); pi < 0 {
			return notFound("project", projectID)
		}
	}

	for i := range st.Projects {
		st.Projects[i].Tasks = removeString(st.Projects[i].Tasks, taskID)
	}
	if pi < 0 {
		st.Tasks[ti].ProjectID = nil
		return nil
	}
	st.Projects[pi].Tasks = append(st.Projects[pi].Tasks, taskID)
	pid := projectID
	st.Tasks[ti].ProjectID = &pid
	return nil
}

func removeString(in []string, s string) []string {
	out := in[:0]
	for _, v := range in {
		if v != s {
			out = append(out, v)
		}
	}
	return out
}

func (t *Tracker) AddProject(in ProjectInput) (Project, error) {
	in, err := in.normalize()
	if err != nil {
		return Project{}, err
	}
	var created Project
	err = t.mutate(func(st *State) error {
		created = Project{
			ID:          t.newID(),
			Title:       in.Title,
			Description: in.Description,
			Status:      in.Status,
			Tasks:       []string{},
			CreatedAt:   t.clock(),
		}
		st.Projects = append(st.Projects, created)
		return nil
	})
	return created, err
}

func (t *Tracker) UpdateProject(id string, in ProjectInput) error {
	in, err := in.normalize()
	if err != nil {
		return err
	}
	return t.mutate(func(st *State) error {
		i := findProject(st, id)
		if i < 0 {
			return notFound("project", id)
		}
		p := &st.Projects[i]
		p.Title = in.Title
		p.Description = in.Description
		p.Status = in.Status
		return nil
	})
}

// DeleteProject removes the project. Its tasks are kept and become unassigned.
func (t *Tracker) DeleteProject(id string) error {
	return t.mutate(func(st *State) error {
		i := findProject(st, id)
		if i < 0 {
			return notFound("project", id)
		}
		for j := range st.Tasks {
			if st.Tasks[j].ProjectID != nil && *st.Tasks[j].ProjectID == id {
				st.Tasks[j].ProjectID = nil
			}
		}
		st.Projects = append(st.Projects[:i], st.Projects[i+1:]...)
		return nil
	})
}

// AssignTask moves a task into a project. An empty projectID unassigns it.
func (t *Tracker) AssignTask(taskID, projectID string) error {
	return t.mutate(func(st *State) error {
		return assignTask(st, taskID, projectID)
	})
}
