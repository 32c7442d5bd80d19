package couple

import "time"

// MemberRole distinguishes the couple creator from the joined partner.
type MemberRole string

const (
	RoleOwner  MemberRole = "owner"
	RoleMember MemberRole = "member"
)

// Couple is the pairing between two users.
type Couple struct {
	ID        string    `json:"id"`
	Name      string    `json:"name,omitempty"`
	CreatedBy string    `json:"created_by,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MemberUser is the partner-visible slice of a user profile.
type MemberUser struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

// Member is one side of a couple.
type Member struct {
	ID       string     `json:"id"`
	UserID   string     `json:"user_id"`
	CoupleID string     `json:"couple_id"`
	Role     MemberRole `json:"role"`
	User     MemberUser `json:"user"`
	JoinedAt time.Time  `json:"joined_at"`
}

// Settings controls outbound sharing. Display gating only; the server
// decides what is actually returned.
type Settings struct {
	ID                   string    `json:"id"`
	CoupleID             string    `json:"couple_id"`
	ShareProgressEnabled bool      `json:"share_progress_enabled"`
	ShareHabitsEnabled   bool      `json:"share_habits_enabled"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// FeedItemType classifies shared feed entries.
type FeedItemType string

const (
	FeedItemWorkout  FeedItemType = "workout"
	FeedItemHabit    FeedItemType = "habit"
	FeedItemProgress FeedItemType = "progress"
)

// FeedItem is one read-only entry of the partner's activity stream.
type FeedItem struct {
	ID        string       `json:"id"`
	Type      FeedItemType `json:"type"`
	UserName  string       `json:"user_name"`
	Content   string       `json:"content"`
	CreatedAt time.Time    `json:"created_at"`
}

// Invite is a generated pairing invitation.
type Invite struct {
	CoupleID   string    `json:"couple_id"`
	InviteCode string    `json:"invite_code"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// CreateCoupleRequest is the payload for POST /couples.
type CreateCoupleRequest struct {
	Name string `json:"name,omitempty"`
}

// UpdateSettingsRequest is the partial payload for PATCH
// /couples/{id}/settings. Nil fields are omitted.
type UpdateSettingsRequest struct {
	ShareProgressEnabled *bool `json:"share_progress_enabled,omitempty"`
	ShareHabitsEnabled   *bool `json:"share_habits_enabled,omitempty"`
}
