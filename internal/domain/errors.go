package domain

import "errors"

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrPollNotFound   = errors.New("poll not found")
	ErrOptionNotFound = errors.New("poll option not found")
	ErrVoteNotFound   = errors.New("vote not found")
	ErrDuplicateEmail = errors.New("email already exists")
	ErrDuplicateVote  = errors.New("user already voted for this option")

	ErrMissingVoteFields = errors.New("userId and pollOptionId are required")
)
