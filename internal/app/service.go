package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Talha62370/Real-Time-Polling/internal/domain"
	"github.com/Talha62370/Real-Time-Polling/internal/metrics"
	"golang.org/x/sync/singleflight"
)

// EventPollUpdated is the single event type published on every successful vote.
const EventPollUpdated = "pollUpdated"

// Service is the application layer, the only component that references
// multiple repositories. It orchestrates all use cases and owns the
// post-vote broadcast side effect.
type Service struct {
	users       domain.UserRepository
	polls       domain.PollRepository
	votes       domain.VoteRepository
	publisher   domain.Publisher
	reloadGroup singleflight.Group
}

// NewService creates the application layer service.
func NewService(users domain.UserRepository, polls domain.PollRepository, votes domain.VoteRepository, publisher domain.Publisher) *Service {
	return &Service{
		users:     users,
		polls:     polls,
		votes:     votes,
		publisher: publisher,
	}
}

// --- Users ---

// CreateUser stores a new user. The password is stored verbatim as the
// password hash; hashing is out of scope for this service.
func (s *Service) CreateUser(ctx context.Context, name, email, password string) (*domain.User, error) {
	return s.users.Create(ctx, name, email, password)
}

func (s *Service) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

func (s *Service) UpdateUser(ctx context.Context, userID int64, update domain.UserUpdate) (*domain.User, error) {
	return s.users.Update(ctx, userID, update)
}

func (s *Service) DeleteUser(ctx context.Context, userID int64) error {
	return s.users.Delete(ctx, userID)
}

// --- Polls ---

func (s *Service) CreatePoll(ctx context.Context, question string, creatorID int64, options []string) (*domain.Poll, error) {
	return s.polls.Create(ctx, question, creatorID, options)
}

func (s *Service) GetPoll(ctx context.Context, pollID int64) (*domain.PollView, error) {
	return s.polls.GetView(ctx, pollID)
}

func (s *Service) UpdatePoll(ctx context.Context, pollID int64, update domain.PollUpdate) (*domain.Poll, error) {
	return s.polls.Update(ctx, pollID, update)
}

func (s *Service) DeletePoll(ctx context.Context, pollID int64) error {
	return s.polls.Delete(ctx, pollID)
}

// --- Votes ---

// CastVote records a vote for a poll option. Duplicate detection is left
// entirely to the storage uniqueness constraint on (user, option), so
// concurrent identical requests resolve to exactly one stored vote.
//
// On success the parent poll is reloaded with fresh tallies and published to
// all subscribers. The broadcast is best-effort: if the reload fails (for
// example the option was deleted concurrently), the update is skipped and
// the committed vote is still returned.
func (s *Service) CastVote(ctx context.Context, userID, pollOptionID int64) (*domain.Vote, error) {
	if userID == 0 || pollOptionID == 0 {
		metrics.VotesTotal.WithLabelValues("invalid").Inc()
		return nil, domain.ErrMissingVoteFields
	}

	vote, err := s.votes.Create(ctx, userID, pollOptionID)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateVote) {
			metrics.VotesTotal.WithLabelValues("duplicate").Inc()
			return nil, err
		}
		metrics.VotesTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("failed to cast vote: %w", err)
	}
	metrics.VotesTotal.WithLabelValues("cast").Inc()

	s.broadcastPollUpdate(ctx, pollOptionID)

	return vote, nil
}

// DeleteVote removes a vote by id. It has no broadcast side effect.
func (s *Service) DeleteVote(ctx context.Context, voteID int64) error {
	return s.votes.Delete(ctx, voteID)
}

// broadcastPollUpdate reloads the poll owning the option and publishes the
// composed view. Concurrent reloads for the same option collapse into one
// query. Failures are logged and swallowed.
func (s *Service) broadcastPollUpdate(ctx context.Context, pollOptionID int64) {
	view, err, _ := s.reloadGroup.Do(fmt.Sprintf("option:%d", pollOptionID), func() (any, error) {
		return s.polls.GetViewByOption(ctx, pollOptionID)
	})
	if err != nil {
		slog.WarnContext(ctx, "Skipping poll update broadcast", "poll_option_id", pollOptionID, "error", err)
		metrics.VoteBroadcastSkipped.Inc()
		return
	}

	s.publisher.Publish(EventPollUpdated, view)
}
