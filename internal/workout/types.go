package workout

import "time"

// Mode distinguishes gym and home workouts.
type Mode string

const (
	ModeGym  Mode = "gym"
	ModeHome Mode = "home"
)

// IsValid checks if the mode is valid.
func (m Mode) IsValid() bool {
	return m == ModeGym || m == ModeHome
}

// Exercise is a planned exercise inside a template.
type Exercise struct {
	Name            string  `json:"name"`
	Sets            int     `json:"sets,omitempty"`
	Reps            int     `json:"reps,omitempty"`
	Weight          float64 `json:"weight,omitempty"`
	DurationSeconds int     `json:"duration,omitempty"`
}

// SessionSet is one tracked set inside a session exercise.
type SessionSet struct {
	Reps      int     `json:"reps"`
	Weight    float64 `json:"weight"`
	Completed bool    `json:"completed"`
}

// SessionExercise is an exercise as performed in a session, with per-set
// tracking when the user records sets.
type SessionExercise struct {
	Name            string       `json:"name"`
	Sets            []SessionSet `json:"sets,omitempty"`
	DurationSeconds int          `json:"duration,omitempty"`
}

// Template is a reusable workout definition. System templates are
// provided by the backend and read-only from the client's perspective.
type Template struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Mode        Mode       `json:"mode"`
	Exercises   []Exercise `json:"exercises"`
	IsSystem    bool       `json:"is_system"`
	CreatedBy   string     `json:"created_by,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Session is a workout in progress or just finished.
type Session struct {
	ID              string            `json:"id"`
	TemplateID      string            `json:"template_id,omitempty"`
	Name            string            `json:"name"`
	Mode            Mode              `json:"mode"`
	Exercises       []SessionExercise `json:"exercises"`
	StartTime       time.Time         `json:"start_time"`
	EndTime         *time.Time        `json:"end_time,omitempty"`
	DurationSeconds int               `json:"duration,omitempty"`
	TotalVolume     float64           `json:"total_volume,omitempty"`
	Notes           string            `json:"notes,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
}

// WeeklyStats is the server-computed aggregate for the current week. It
// is a replaceable snapshot, never maintained incrementally.
type WeeklyStats struct {
	SessionsCount          int     `json:"sessions_count"`
	TotalDurationSeconds   int     `json:"total_duration"`
	TotalVolume            float64 `json:"total_volume"`
	AverageSessionDuration int     `json:"average_session_duration"`
	WeekStart              string  `json:"week_start"`
}

type statsResponse struct {
	Weekly WeeklyStats `json:"weekly"`
}

// CreateTemplateRequest is the payload for POST /workout-templates.
type CreateTemplateRequest struct {
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Mode        Mode       `json:"mode"`
	Exercises   []Exercise `json:"exercises"`
}

// UpdateTemplateRequest is the partial payload for PATCH
// /workout-templates/{id}. Nil fields are omitted.
type UpdateTemplateRequest struct {
	Name        *string    `json:"name,omitempty"`
	Description *string    `json:"description,omitempty"`
	Mode        *Mode      `json:"mode,omitempty"`
	Exercises   []Exercise `json:"exercises,omitempty"`
}

// StartSessionRequest is the payload for POST /workout-sessions.
type StartSessionRequest struct {
	TemplateID string            `json:"template_id,omitempty"`
	Name       string            `json:"name"`
	Mode       Mode              `json:"mode"`
	Exercises  []SessionExercise `json:"exercises"`
	StartTime  time.Time         `json:"start_time"`
	Notes      string            `json:"notes,omitempty"`
}

// SessionPatch carries local in-progress edits merged into the current
// session. Nil fields leave the session field untouched.
type SessionPatch struct {
	Name      *string
	Exercises []SessionExercise
	Notes     *string
}

type finishSessionRequest struct {
	EndTime   time.Time         `json:"end_time"`
	Exercises []SessionExercise `json:"exercises"`
	Notes     string            `json:"notes,omitempty"`
}
