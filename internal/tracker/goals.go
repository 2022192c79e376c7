package tracker

import (
	"fmt"
	"strings"
)

type GoalInput struct {
	Title        string
	Description  string
	Why          string
	LifeArea     LifeArea
	Timeframe    GoalTimeframe
	Priority     Priority
	Specific     string
	Measurable   string
	TargetValue  float64
	CurrentValue float64
	TargetDate   *string
}

func (in GoalInput) normalize() (GoalInput, error) {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return in, fmt.Errorf("%w: title is required", ErrInvalid)
	}
	if in.LifeArea == "" {
		in.LifeArea = LifeAreaPersonalGrowth
	}
	if _, err := ParseLifeArea(string(in.LifeArea)); err != nil {
		return in, err
	}
	if in.Timeframe == "" {
		in.Timeframe = TimeframeYearly
	}
	if _, err := ParseTimeframe(string(in.Timeframe)); err != nil {
		return in, err
	}
	if in.Priority == "" {
		in.Priority = PriorityB
	}
	if !in.Priority.IsValid() {
		return in, fmt.Errorf("%w: priority %q", ErrInvalid, in.Priority)
	}
	if in.TargetDate != nil {
		if _, err := ParseDay(*in.TargetDate); err != nil {
			return in, fmt.Errorf("%w: %v", ErrInvalid, err)
		}
	}
	return in, nil
}

func findGoal(st *State, id string) int {
	for i := range st.Goals {
		if st.Goals[i].ID == id {
			return i
		}
	}
	return -1
}

// AddGoal creates an active goal. The first goal unlocks goal_setter.
func (t *Tracker) AddGoal(in GoalInput) (Goal, error) {
	in, err := in.normalize()
	if err != nil {
		return Goal{}, err
	}
	var created Goal
	err = t.mutate(func(st *State) error {
		now := t.clock()
		g := Goal{
			ID:           t.newID(),
			Title:        in.Title,
			Description:  in.Description,
			Why:          in.Why,
			LifeArea:     in.LifeArea,
			Timeframe:    in.Timeframe,
			Priority:     in.Priority,
			Specific:     in.Specific,
			Measurable:   in.Measurable,
			TargetValue:  in.TargetValue,
			CurrentValue: in.CurrentValue,
			TargetDate:   clonePtr(in.TargetDate),
			Status:       GoalActive,
			Progress:     GoalProgress(in.CurrentValue, in.TargetValue),
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		first := len(st.Goals) == 0
		st.Goals = append(st.Goals, g)
		if first {
			t.unlock(st, AchievementGoalSetter)
		}
		created = g
		created.TargetDate = clonePtr(g.TargetDate)
		return nil
	})
	return created, err
}

func (t *Tracker) UpdateGoal(id string, in GoalInput) error {
	in, err := in.normalize()
	if err != nil {
		return err
	}
	return t.mutate(func(st *State) error {
		i := findGoal(st, id)
		if i < 0 {
			return notFound("goal", id)
		}
		g := &st.Goals[i]
		g.Title = in.Title
		g.Description = in.Description
		g.Why = in.Why
		g.LifeArea = in.LifeArea
		g.Timeframe = in.Timeframe
		g.Priority = in.Priority
		g.Specific = in.Specific
		g.Measurable = in.Measurable
		g.TargetValue = in.TargetValue
		g.CurrentValue = in.CurrentValue
		g.TargetDate = clonePtr(in.TargetDate)
		g.Progress = GoalProgress(g.CurrentValue, g.TargetValue)
		g.UpdatedAt = t.clock()
		return nil
	})
}

// SetGoalValue records the current measured value and rederives progress.
func (t *Tracker) SetGoalValue(id string, value float64) (Goal, error) {
	var updated Goal
	err := t.mutate(func(st *State) error {
		i := findGoal(st, id)
		if i < 0 {
			return notFound("goal", id)
		}
		g := &st.Goals[i]
		g.CurrentValue = value
		g.Progress = GoalProgress(g.CurrentValue, g.TargetValue)
		g.UpdatedAt = t.clock()
		updated = *g
		updated.TargetDate = clonePtr(g.TargetDate)
		return nil
	})
	return updated, err
}

// CompleteGoal marks the goal completed at full progress. The first
// completion unlocks goal_crusher. Completing twice is a no-op.
func (t *Tracker) CompleteGoal(id string) error {
	return t.SetGoalStatus(id, GoalCompleted)
}

func (t *Tracker) SetGoalStatus(id string, status GoalStatus) error {
	if _, err := ParseGoalStatus(string(status)); err != nil {
		return err
	}
	return t.mutate(func(st *State) error {
		i := findGoal(st, id)
		if i < 0 {
			return notFound("goal", id)
		}
		g := &st.Goals[i]
		if g.Status == status {
			return errNoChange
		}
		g.Status = status
		g.UpdatedAt = t.clock()
		if status == GoalCompleted {
			if g.TargetValue > 0 && g.CurrentValue < g.TargetValue {
				g.CurrentValue = g.TargetValue
			}
			g.Progress = 100
			t.unlock(st, AchievementGoalCrusher)
			return nil
		}
		g.Progress = GoalProgress(g.CurrentValue, g.TargetValue)
		return nil
	})
}

func (t *Tracker) DeleteGoal(id string) error {
	return t.mutate(func(st *State) error {
		i := findGoal(st, id)
		if i < 0 {
			return notFound("goal", id)
		}
		st.Goals = append(st.Goals[:i], st.Goals[i+1:]...)
		return nil
	})
}
