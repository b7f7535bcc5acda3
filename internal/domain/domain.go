package domain

import (
	"context"
	"time"
)

// --- Model types ---

type User struct {
	ID           int64     `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

type Poll struct {
	ID          int64        `json:"id" db:"id"`
	Question    string       `json:"question" db:"question"`
	CreatorID   int64        `json:"creatorId" db:"creator_id"`
	IsPublished bool         `json:"isPublished" db:"is_published"`
	CreatedAt   time.Time    `json:"createdAt" db:"created_at"`
	Options     []PollOption `json:"options,omitempty"`
}

type PollOption struct {
	ID     int64  `json:"id" db:"id"`
	PollID int64  `json:"pollId" db:"poll_id"`
	Text   string `json:"text" db:"text"`
}

type Vote struct {
	ID           int64     `json:"id" db:"id"`
	UserID       int64     `json:"userId" db:"user_id"`
	PollOptionID int64     `json:"pollOptionId" db:"poll_option_id"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// --- Shared value types ---

// OptionTally is a poll option together with its current vote count.
// The count is computed on read and never stored.
type OptionTally struct {
	ID        int64  `json:"id"`
	PollID    int64  `json:"pollId"`
	Text      string `json:"text"`
	VoteCount int64  `json:"voteCount"`
}

// PollView is the composed poll state pushed to subscribers and returned
// by the poll fetch endpoint.
type PollView struct {
	ID          int64         `json:"id"`
	Question    string        `json:"question"`
	CreatorID   int64         `json:"creatorId"`
	IsPublished bool          `json:"isPublished"`
	Options     []OptionTally `json:"options"`
}

// UserUpdate carries the optional fields of a partial user update.
// Nil fields are left untouched.
type UserUpdate struct {
	Name     *string
	Email    *string
	Password *string
}

// PollUpdate carries the optional fields of a partial poll update.
type PollUpdate struct {
	Question    *string
	IsPublished *bool
}

// --- Interfaces ---

// UserRepository abstracts user persistence.
type UserRepository interface {
	Create(ctx context.Context, name, email, passwordHash string) (*User, error)
	List(ctx context.Context) ([]User, error)
	Update(ctx context.Context, userID int64, update UserUpdate) (*User, error)
	Delete(ctx context.Context, userID int64) error
}

// PollRepository abstracts poll and option persistence.
type PollRepository interface {
	Create(ctx context.Context, question string, creatorID int64, options []string) (*Poll, error)
	GetView(ctx context.Context, pollID int64) (*PollView, error)
	GetViewByOption(ctx context.Context, optionID int64) (*PollView, error)
	Update(ctx context.Context, pollID int64, update PollUpdate) (*Poll, error)
	Delete(ctx context.Context, pollID int64) error
}

// VoteRepository abstracts vote persistence. Create relies on the storage
// uniqueness constraint on (user, option) and reports ErrDuplicateVote.
type VoteRepository interface {
	Create(ctx context.Context, userID, pollOptionID int64) (*Vote, error)
	Delete(ctx context.Context, voteID int64) error
}

// Publisher pushes a named event to every connected subscriber session.
// Delivery is fire-and-forget.
type Publisher interface {
	Publish(event string, payload any)
}

// AppService is the application layer contract. Handlers route all operations through here.
type AppService interface {
	CreateUser(ctx context.Context, name, email, password string) (*User, error)
	ListUsers(ctx context.Context) ([]User, error)
	UpdateUser(ctx context.Context, userID int64, update UserUpdate) (*User, error)
	DeleteUser(ctx context.Context, userID int64) error

	CreatePoll(ctx context.Context, question string, creatorID int64, options []string) (*Poll, error)
	GetPoll(ctx context.Context, pollID int64) (*PollView, error)
	UpdatePoll(ctx context.Context, pollID int64, update PollUpdate) (*Poll, error)
	DeletePoll(ctx context.Context, pollID int64) error

	CastVote(ctx context.Context, userID, pollOptionID int64) (*Vote, error)
	DeleteVote(ctx context.Context, voteID int64) error
}
