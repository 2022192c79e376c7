package tracker

import (
	"fmt"
	"strings"
	"time"
)

type Priority string

const (
	PriorityA Priority = "A"
	PriorityB Priority = "B"
	PriorityC Priority = "C"
	PriorityD Priority = "D"
	PriorityE Priority = "E"
)

// Priorities lists the priority levels from most to least important.
var Priorities = []Priority{PriorityA, PriorityB, PriorityC, PriorityD, PriorityE}

func (p Priority) IsValid() bool {
	switch p {
	case PriorityA, PriorityB, PriorityC, PriorityD, PriorityE:
		return true
	default:
		return false
	}
}

// Rank orders priorities; A is 0.
func (p Priority) Rank() int {
	for i, q := range Priorities {
		if q == p {
			return i
		}
	}
	return len(Priorities)
}

func ParsePriority(input string) (Priority, error) {
	p := Priority(strings.ToUpper(strings.TrimSpace(input)))
	if !p.IsValid() {
		return "", fmt.Errorf("%w: priority %q", ErrInvalid, input)
	}
	return p, nil
}

type LifeArea string

const (
	LifeAreaCareer              LifeArea = "career"
	LifeAreaFinancial           LifeArea = "financial"
	LifeAreaHealth              LifeArea = "health"
	LifeAreaRelationships       LifeArea = "relationships"
	LifeAreaPersonalGrowth      LifeArea = "personal_growth"
	LifeAreaSpiritual           LifeArea = "spiritual"
	LifeAreaFunRecreation       LifeArea = "fun_recreation"
	LifeAreaPhysicalEnvironment LifeArea = "physical_environment"
)

var LifeAreas = []LifeArea{
	LifeAreaCareer, LifeAreaFinancial, LifeAreaHealth, LifeAreaRelationships,
	LifeAreaPersonalGrowth, LifeAreaSpiritual, LifeAreaFunRecreation, LifeAreaPhysicalEnvironment,
}

func ParseLifeArea(input string) (LifeArea, error) {
	a := LifeArea(strings.ToLower(strings.TrimSpace(input)))
	for _, known := range LifeAreas {
		if a == known {
			return a, nil
		}
	}
	return "", fmt.Errorf("%w: life area %q", ErrInvalid, input)
}

type GoalTimeframe string

const (
	TimeframeDaily     GoalTimeframe = "daily"
	TimeframeWeekly    GoalTimeframe = "weekly"
	TimeframeMonthly   GoalTimeframe = "monthly"
	TimeframeQuarterly GoalTimeframe = "quarterly"
	TimeframeYearly    GoalTimeframe = "yearly"
	Timeframe3Year     GoalTimeframe = "3_year"
	Timeframe5Year     GoalTimeframe = "5_year"
	Timeframe10Year    GoalTimeframe = "10_year"
	TimeframeLifetime  GoalTimeframe = "lifetime"
)

var Timeframes = []GoalTimeframe{
	TimeframeDaily, TimeframeWeekly, TimeframeMonthly, TimeframeQuarterly, TimeframeYearly,
	Timeframe3Year, Timeframe5Year, Timeframe10Year, TimeframeLifetime,
}

func ParseTimeframe(input string) (GoalTimeframe, error) {
	tf := GoalTimeframe(strings.ToLower(strings.TrimSpace(input)))
	for _, known := range Timeframes {
		if tf == known {
			return tf, nil
		}
	}
	return "", fmt.Errorf("%w: timeframe %q", ErrInvalid, input)
}

type HabitFrequency string

const (
	FrequencyDaily    HabitFrequency = "daily"
	FrequencyWeekdays HabitFrequency = "weekdays"
	FrequencyWeekends HabitFrequency = "weekends"
	FrequencyCustom   HabitFrequency = "custom"
)

func ParseFrequency(input string) (HabitFrequency, error) {
	f := HabitFrequency(strings.ToLower(strings.TrimSpace(input)))
	switch f {
	case FrequencyDaily, FrequencyWeekdays, FrequencyWeekends, FrequencyCustom:
		return f, nil
	default:
		return "", fmt.Errorf("%w: frequency %q", ErrInvalid, input)
	}
}

// TargetDaysFor returns the weekdays (0 = Sunday) a frequency class applies to.
// Custom frequencies keep whatever days the caller chose.
func TargetDaysFor(f HabitFrequency, custom []time.Weekday) []time.Weekday {
	switch f {
	case FrequencyWeekdays:
		return []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday}
	case FrequencyWeekends:
		return []time.Weekday{time.Saturday, time.Sunday}
	case FrequencyCustom:
		return append([]time.Weekday(nil), custom...)
	default:
		return []time.Weekday{time.Sunday, time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday}
	}
}

type GoalStatus string

const (
	GoalActive    GoalStatus = "active"
	GoalCompleted GoalStatus = "completed"
	GoalPaused    GoalStatus = "paused"
	GoalCancelled GoalStatus = "cancelled"
)

func ParseGoalStatus(input string) (GoalStatus, error) {
	s := GoalStatus(strings.ToLower(strings.TrimSpace(input)))
	switch s {
	case GoalActive, GoalCompleted, GoalPaused, GoalCancelled:
		return s, nil
	default:
		return "", fmt.Errorf("%w: goal status %q", ErrInvalid, input)
	}
}

type ProjectStatus string

const (
	ProjectActive    ProjectStatus = "active"
	ProjectCompleted ProjectStatus = "completed"
	ProjectSomeday   ProjectStatus = "someday"
	ProjectWaiting   ProjectStatus = "waiting"
)

type JournalType string

const (
	JournalMorning    JournalType = "morning"
	JournalEvening    JournalType = "evening"
	JournalGratitude  JournalType = "gratitude"
	JournalReflection JournalType = "reflection"
	JournalFree       JournalType = "free"
)

func ParseJournalType(input string) (JournalType, error) {
	jt := JournalType(strings.ToLower(strings.TrimSpace(input)))
	switch jt {
	case JournalMorning, JournalEvening, JournalGratitude, JournalReflection, JournalFree:
		return jt, nil
	default:
		return "", fmt.Errorf("%w: journal type %q", ErrInvalid, input)
	}
}

type FinanceType string

const (
	FinanceIncome     FinanceType = "income"
	FinanceExpense    FinanceType = "expense"
	FinanceSaving     FinanceType = "saving"
	FinanceInvestment FinanceType = "investment"
)

func ParseFinanceType(input string) (FinanceType, error) {
	ft := FinanceType(strings.ToLower(strings.TrimSpace(input)))
	switch ft {
	case FinanceIncome, FinanceExpense, FinanceSaving, FinanceInvestment:
		return ft, nil
	default:
		return "", fmt.Errorf("%w: finance type %q", ErrInvalid, input)
	}
}

type BookStatus string

const (
	BookReading   BookStatus = "reading"
	BookCompleted BookStatus = "completed"
	BookWishlist  BookStatus = "wishlist"
)

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
	ThemeAuto  Theme = "auto"
)

func ParseTheme(input string) (Theme, error) {
	th := Theme(strings.ToLower(strings.TrimSpace(input)))
	switch th {
	case ThemeLight, ThemeDark, ThemeAuto:
		return th, nil
	default:
		return "", fmt.Errorf("%w: theme %q", ErrInvalid, input)
	}
}

// Profile is the single local user.
type Profile struct {
	ID               string            `json:"id"`
	Name             string            `json:"name"`
	Email            string            `json:"email"`
	CreatedAt        time.Time         `json:"created_at"`
	MissionStatement string            `json:"mission_statement"`
	CoreValues       []string          `json:"core_values"`
	LifeRoles        map[string]string `json:"life_roles"`
	WakeUpTime       string            `json:"wake_up_time"`
	MorningRoutine   []string          `json:"morning_routine"`
	EveningRoutine   []string          `json:"evening_routine"`
	TotalPoints      int64             `json:"total_points"`
	Level            int               `json:"level"`
	Achievements     []string          `json:"achievements"`
}

type Habit struct {
	ID               string         `json:"id"`
	Title            string         `json:"title"`
	Description      string         `json:"description"`
	Cue              string         `json:"cue"`
	Craving          string         `json:"craving"`
	Response         string         `json:"response"`
	Reward           string         `json:"reward"`
	Identity         string         `json:"identity"`
	Frequency        HabitFrequency `json:"frequency"`
	TargetDays       []time.Weekday `json:"target_days"`
	ReminderTime     *string        `json:"reminder_time"`
	AfterHabit       *string        `json:"after_habit"`
	CurrentStreak    int            `json:"current_streak"`
	LongestStreak    int            `json:"longest_streak"`
	TotalCompletions int            `json:"total_completions"`
	History          History        `json:"completion_history"`
	Color            string         `json:"color"`
	Icon             string         `json:"icon"`
	CreatedAt        time.Time      `json:"created_at"`
}

// ScheduledOn reports whether the habit applies to weekday.
func (h Habit) ScheduledOn(weekday time.Weekday) bool {
	for _, d := range h.TargetDays {
		if d == weekday {
			return true
		}
	}
	return false
}

type Task struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Priority      Priority   `json:"priority"`
	Context       string     `json:"context"`
	EstimatedTime int        `json:"estimated_minutes"`
	DueDate       *string    `json:"due_date"`
	Completed     bool       `json:"completed"`
	CompletedAt   *time.Time `json:"completed_at"`
	IsFrog        bool       `json:"is_frog"`
	ProjectID     *string    `json:"project_id"`
	CreatedAt     time.Time  `json:"created_at"`
}

type Goal struct {
	ID           string        `json:"id"`
	Title        string        `json:"title"`
	Description  string        `json:"description"`
	Why          string        `json:"why"`
	LifeArea     LifeArea      `json:"life_area"`
	Timeframe    GoalTimeframe `json:"timeframe"`
	Priority     Priority      `json:"priority"`
	Specific     string        `json:"specific"`
	Measurable   string        `json:"measurable"`
	TargetValue  float64       `json:"target_value"`
	CurrentValue float64       `json:"current_value"`
	TargetDate   *string       `json:"target_date"`
	Status       GoalStatus    `json:"status"`
	Progress     float64       `json:"progress"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// GoalProgress returns current/target as a percentage clamped to [0,100].
// A non-positive target yields 0.
func GoalProgress(current, target float64) float64 {
	if target <= 0 {
		return 0
	}
	p := current / target * 100
	switch {
	case p < 0:
		return 0
	case p > 100:
		return 100
	default:
		return p
	}
}

type Project struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Status      ProjectStatus `json:"status"`
	Tasks       []string      `json:"tasks"`
	CreatedAt   time.Time     `json:"created_at"`
}

// DailyLog holds one day's routine, focus and reflection data.
type DailyLog struct {
	ID                     string     `json:"id"`
	Date                   string     `json:"date"`
	SilenceCompleted       bool       `json:"silence_completed"`
	SilenceDuration        int        `json:"silence_duration"`
	AffirmationsCompleted  bool       `json:"affirmations_completed"`
	VisualizationCompleted bool       `json:"visualization_completed"`
	ExerciseCompleted      bool       `json:"exercise_completed"`
	ExerciseType           string     `json:"exercise_type"`
	ExerciseDuration       int        `json:"exercise_duration"`
	ReadingCompleted       bool       `json:"reading_completed"`
	ReadingPages           int        `json:"reading_pages"`
	ScribingCompleted      bool       `json:"scribing_completed"`
	FrogOfTheDay           string     `json:"frog_of_the_day"`
	FrogCompleted          bool       `json:"frog_completed"`
	FrogCompletedTime      *time.Time `json:"frog_completed_time"`
	DeepWorkHours          float64    `json:"deep_work_hours"`
	DeepWorkSessions       int        `json:"deep_work_sessions"`
	GratitudeList          []string   `json:"gratitude_list"`
	FocusToday             string     `json:"focus_today"`
	ExcitedAbout           string     `json:"excited_about"`
	CommittedTo            string     `json:"committed_to"`
	Wins                   []string   `json:"wins"`
	Lessons                []string   `json:"lessons"`
	Improvements           []string   `json:"improvements"`
	TomorrowPriorities     []string   `json:"tomorrow_priorities"`
	ProductivityScore      int        `json:"productivity_score"`
	EnergyScore            int        `json:"energy_score"`
	MoodScore              int        `json:"mood_score"`
	OverallScore           int        `json:"overall_score"`
	JournalEntry           string     `json:"journal_entry"`
}

// MorningRoutineDone reports whether all six morning routine steps are checked.
func (l DailyLog) MorningRoutineDone() bool {
	return l.SilenceCompleted && l.AffirmationsCompleted && l.VisualizationCompleted &&
		l.ExerciseCompleted && l.ReadingCompleted && l.ScribingCompleted
}

type JournalEntry struct {
	ID             string      `json:"id"`
	Date           string      `json:"date"`
	Type           JournalType `json:"type"`
	Title          string      `json:"title"`
	Content        string      `json:"content"`
	GratitudeItems []string    `json:"gratitude_items"`
	Mood           int         `json:"mood"`
	Tags           []string    `json:"tags"`
	CreatedAt      time.Time   `json:"created_at"`
}

type Book struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Author         string     `json:"author"`
	Why            string     `json:"why"`
	TopIdeas       []string   `json:"top_ideas"`
	Rating         int        `json:"rating"`
	Status         BookStatus `json:"status"`
	PagesRead      int        `json:"pages_read"`
	TotalPages     int        `json:"total_pages"`
	DailyPagesGoal int        `json:"daily_pages_goal"`
	Favorite       bool       `json:"favorite"`
	CompletedAt    *time.Time `json:"completed_at"`
	CreatedAt      time.Time  `json:"created_at"`
	LastUpdated    time.Time  `json:"last_updated"`
}

type ReadingSession struct {
	ID              string    `json:"id"`
	BookID          string    `json:"book_id"`
	Date            time.Time `json:"date"`
	PagesRead       int       `json:"pages_read"`
	DurationMinutes int       `json:"duration_minutes"`
	FocusLevel      int       `json:"focus_level"`
	Mood            int       `json:"mood"`
	Notes           string    `json:"notes"`
}

// FinanceEntry amounts are in cents.
type FinanceEntry struct {
	ID          string      `json:"id"`
	Type        FinanceType `json:"type"`
	Category    string      `json:"category"`
	Amount      int64       `json:"amount_cents"`
	Description string      `json:"description"`
	Date        time.Time   `json:"date"`
}

type Finance struct {
	Entries    []FinanceEntry  `json:"entries"`
	MoneyRules map[string]bool `json:"money_rules"`
}
