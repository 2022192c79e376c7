package tracker

import "math"

func findLog(st *State, day string) int {
	for i := range st.DailyLogs {
		if st.DailyLogs[i].Date == day {
			return i
		}
	}
	return -1
}

// LogFor returns the daily log for day, if one was written.
func (t *Tracker) LogFor(day string) (DailyLog, bool) {
	st := t.Snapshot()
	if i := findLog(&st, day); i >= 0 {
		return st.DailyLogs[i], true
	}
	return DailyLog{}, false
}

// TodayLog returns today's log, or a blank one dated today when nothing was
// written yet.
func (t *Tracker) TodayLog() DailyLog {
	today := Today(t.clock)
	if l, ok := t.LogFor(today); ok {
		return l
	}
	return DailyLog{Date: today}
}

// UpdateTodayLog applies edit to today's log, creating it on first write.
// Finishing the whole morning routine awards the routine bonus once per day;
// new whole deep-work hours earn points as they accumulate.
func (t *Tracker) UpdateTodayLog(edit func(l *DailyLog)) (DailyLog, error) {
	var updated DailyLog
	err := t.mutate(func(st *State) error {
		today := Today(t.clock)
		i := findLog(st, today)
		if i < 0 {
			st.DailyLogs = append(st.DailyLogs, DailyLog{ID: t.newID(), Date: today})
			i = len(st.DailyLogs) - 1
		}
		before := st.DailyLogs[i]
		l := before
		edit(&l)
		l.ID, l.Date = before.ID, before.Date
		l.OverallScore = overallScore(l)

		if l.FrogCompleted && !before.FrogCompleted {
			now := t.clock()
			l.FrogCompletedTime = &now
		}
		if !l.FrogCompleted {
			l.FrogCompletedTime = nil
		}
		st.DailyLogs[i] = l

		if l.MorningRoutineDone() && !before.MorningRoutineDone() {
			t.award(st, Points.CompleteMorningRoutine)
			if ComputeStreak(morningHistory(st.DailyLogs), today) >= morningMasterStreak {
				t.unlock(st, AchievementMorningMaster)
			}
		}
		if gained := int64(math.Floor(l.DeepWorkHours) - math.Floor(before.DeepWorkHours)); gained > 0 {
			t.award(st, gained*Points.DeepWorkHour)
		}
		if l.DeepWorkHours >= deepWorkerHours {
			t.unlock(st, AchievementDeepWorker)
		}
		updated = st.DailyLogs[i]
		return nil
	})
	return updated, err
}

// morningHistory marks the days whose log has the full morning routine.
func morningHistory(logs []DailyLog) History {
	h := History{}
	for _, l := range logs {
		if l.MorningRoutineDone() {
			h[l.Date] = true
		}
	}
	return h
}

// MorningStreak is the number of consecutive days, ending today, with the
// full morning routine done.
func (t *Tracker) MorningStreak() int {
	st := t.Snapshot()
	return ComputeStreak(morningHistory(st.DailyLogs), Today(t.clock))
}

// overallScore averages the scores that were filled in (1-10 each).
func overallScore(l DailyLog) int {
	sum, n := 0, 0
	for _, s := range []int{l.ProductivityScore, l.EnergyScore, l.MoodScore} {
		if s > 0 {
			sum += s
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return int(math.Round(float64(sum) / float64(n)))
}
