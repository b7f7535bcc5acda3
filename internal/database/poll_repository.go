package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/Talha62370/Real-Time-Polling/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PollRepo struct {
	pool *pgxpool.Pool
}

func NewPollRepo(pool *pgxpool.Pool) *PollRepo {
	return &PollRepo{pool: pool}
}

// Create inserts a poll and its options in one transaction.
func (r *PollRepo) Create(ctx context.Context, question string, creatorID int64, options []string) (*domain.Poll, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var poll domain.Poll
	err = tx.QueryRow(ctx, `
		INSERT INTO polls (question, creator_id)
		VALUES ($1, $2)
		RETURNING id, question, creator_id, is_published, created_at
	`, question, creatorID).Scan(
		&poll.ID, &poll.Question, &poll.CreatorID, &poll.IsPublished, &poll.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create poll: %w", err)
	}

	poll.Options = make([]domain.PollOption, 0, len(options))
	for _, text := range options {
		var option domain.PollOption
		err = tx.QueryRow(ctx, `
			INSERT INTO poll_options (poll_id, text)
			VALUES ($1, $2)
			RETURNING id, poll_id, text
		`, poll.ID, text).Scan(&option.ID, &option.PollID, &option.Text)
		if err != nil {
			return nil, fmt.Errorf("failed to create poll option: %w", err)
		}
		poll.Options = append(poll.Options, option)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return &poll, nil
}

// GetView loads a poll with per-option vote counts. Counts are computed on
// read; nothing is stored.
func (r *PollRepo) GetView(ctx context.Context, pollID int64) (*domain.PollView, error) {
	var view domain.PollView
	err := r.pool.QueryRow(ctx, `
		SELECT id, question, creator_id, is_published
		FROM polls
		WHERE id = $1
	`, pollID).Scan(&view.ID, &view.Question, &view.CreatorID, &view.IsPublished)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrPollNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get poll: %w", err)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT o.id, o.poll_id, o.text, COUNT(v.id)
		FROM poll_options o
		LEFT JOIN votes v ON v.poll_option_id = o.id
		WHERE o.poll_id = $1
		GROUP BY o.id, o.poll_id, o.text
		ORDER BY o.id
	`, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to get poll options: %w", err)
	}
	defer rows.Close()

	view.Options = make([]domain.OptionTally, 0)
	for rows.Next() {
		var tally domain.OptionTally
		if err := rows.Scan(&tally.ID, &tally.PollID, &tally.Text, &tally.VoteCount); err != nil {
			return nil, fmt.Errorf("failed to scan poll option: %w", err)
		}
		view.Options = append(view.Options, tally)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read poll options: %w", err)
	}
	return &view, nil
}

// GetViewByOption resolves an option to its parent poll and loads the view.
func (r *PollRepo) GetViewByOption(ctx context.Context, optionID int64) (*domain.PollView, error) {
	var pollID int64
	err := r.pool.QueryRow(ctx, `
		SELECT poll_id FROM poll_options WHERE id = $1
	`, optionID).Scan(&pollID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrOptionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve poll option: %w", err)
	}
	return r.GetView(ctx, pollID)
}

func (r *PollRepo) Update(ctx context.Context, pollID int64, update domain.PollUpdate) (*domain.Poll, error) {
	var poll domain.Poll
	err := r.pool.QueryRow(ctx, `
		UPDATE polls
		SET question = COALESCE($2, question),
		    is_published = COALESCE($3, is_published)
		WHERE id = $1
		RETURNING id, question, creator_id, is_published, created_at
	`, pollID, update.Question, update.IsPublished).Scan(
		&poll.ID, &poll.Question, &poll.CreatorID, &poll.IsPublished, &poll.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrPollNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update poll: %w", err)
	}
	return &poll, nil
}

func (r *PollRepo) Delete(ctx context.Context, pollID int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM polls WHERE id = $1`, pollID)
	if err != nil {
		return fmt.Errorf("failed to delete poll: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPollNotFound
	}
	return nil
}
