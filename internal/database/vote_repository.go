package database

import (
	"context"
	"fmt"

	"github.com/Talha62370/Real-Time-Polling/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type VoteRepo struct {
	pool *pgxpool.Pool
}

func NewVoteRepo(pool *pgxpool.Pool) *VoteRepo {
	return &VoteRepo{pool: pool}
}

// Create inserts a vote. The unique index on (user_id, poll_option_id) is
// the single authority for duplicate detection: concurrent identical
// requests race on the insert, and exactly one wins.
func (r *VoteRepo) Create(ctx context.Context, userID, pollOptionID int64) (*domain.Vote, error) {
	var vote domain.Vote
	err := r.pool.QueryRow(ctx, `
		INSERT INTO votes (user_id, poll_option_id)
		VALUES ($1, $2)
		RETURNING id, user_id, poll_option_id, created_at
	`, userID, pollOptionID).Scan(
		&vote.ID, &vote.UserID, &vote.PollOptionID, &vote.CreatedAt,
	)
	if isUniqueViolation(err) {
		return nil, domain.ErrDuplicateVote
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create vote: %w", err)
	}
	return &vote, nil
}

func (r *VoteRepo) Delete(ctx context.Context, voteID int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM votes WHERE id = $1`, voteID)
	if err != nil {
		return fmt.Errorf("failed to delete vote: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrVoteNotFound
	}
	return nil
}
