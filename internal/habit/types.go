package habit

import "time"

// DateLayout is the calendar-day format used for log dates and index keys.
const DateLayout = "2006-01-02"

// Cadence is the recurrence rule kind for a habit.
type Cadence string

const (
	CadenceDaily  Cadence = "daily"
	CadenceWeekly Cadence = "weekly"
	CadenceCustom Cadence = "custom"
)

// IsValid checks if the cadence is valid.
func (c Cadence) IsValid() bool {
	switch c {
	case CadenceDaily, CadenceWeekly, CadenceCustom:
		return true
	default:
		return false
	}
}

// CadenceConfig refines weekly and custom cadences.
type CadenceConfig struct {
	// DaysOfWeek lists weekdays for a weekly cadence, 0=Sunday.
	DaysOfWeek []int `json:"days_of_week,omitempty"`
	// CustomIntervalDays is the N-day interval for a custom cadence.
	CustomIntervalDays int `json:"custom_days,omitempty"`
}

// Habit is a recurring activity being tracked.
type Habit struct {
	ID                string         `json:"id"`
	Name              string         `json:"name"`
	Description       string         `json:"description,omitempty"`
	Cadence           Cadence        `json:"cadence"`
	CadenceConfig     *CadenceConfig `json:"cadence_config,omitempty"`
	ReminderEnabled   bool           `json:"reminder_enabled"`
	ReminderTimeLocal string         `json:"reminder_time_local,omitempty"`
	IsActive          bool           `json:"is_active"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
}

// LogStatus marks how a habit day was resolved.
type LogStatus string

const (
	LogStatusDone    LogStatus = "done"
	LogStatusSkipped LogStatus = "skipped"
)

// IsValid checks if the status is valid.
func (s LogStatus) IsValid() bool {
	return s == LogStatusDone || s == LogStatusSkipped
}

// Log records one habit outcome for one calendar day. At most one log
// exists per (habit, date) pair.
type Log struct {
	ID        string    `json:"id"`
	HabitID   string    `json:"habit_id"`
	Date      string    `json:"date"`
	Status    LogStatus `json:"status"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateHabitRequest is the payload for POST /habits.
type CreateHabitRequest struct {
	Name              string         `json:"name"`
	Description       string         `json:"description,omitempty"`
	Cadence           Cadence        `json:"cadence"`
	CadenceConfig     *CadenceConfig `json:"cadence_config,omitempty"`
	ReminderEnabled   bool           `json:"reminder_enabled"`
	ReminderTimeLocal string         `json:"reminder_time_local,omitempty"`
}

// UpdateHabitRequest is the partial payload for PATCH /habits/{id}. Nil
// fields are omitted.
type UpdateHabitRequest struct {
	Name              *string        `json:"name,omitempty"`
	Description       *string        `json:"description,omitempty"`
	Cadence           *Cadence       `json:"cadence,omitempty"`
	CadenceConfig     *CadenceConfig `json:"cadence_config,omitempty"`
	ReminderEnabled   *bool          `json:"reminder_enabled,omitempty"`
	ReminderTimeLocal *string        `json:"reminder_time_local,omitempty"`
	IsActive          *bool          `json:"is_active,omitempty"`
}

// LogRequest is the payload for POST /habits/{habitId}/logs.
type LogRequest struct {
	Date   string    `json:"date"`
	Status LogStatus `json:"status"`
	Notes  string    `json:"notes,omitempty"`
}
