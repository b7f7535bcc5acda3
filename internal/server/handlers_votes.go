package server

import (
	"errors"
	"fmt"

	"github.com/Talha62370/Real-Time-Polling/internal/domain"
	apperrors "github.com/Talha62370/Real-Time-Polling/internal/errors"
	"github.com/labstack/echo/v4"
)

type castVoteRequest struct {
	UserID       int64 `json:"userId"`
	PollOptionID int64 `json:"pollOptionId"`
}

// handleCastVote records a vote and returns the vote record. The caller does
// not receive the recomputed poll; that goes out on the push channel.
func (s *Server) handleCastVote(c echo.Context) error {
	var req castVoteRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}

	vote, err := s.app.CastVote(c.Request().Context(), req.UserID, req.PollOptionID)
	if err != nil {
		if errors.Is(err, domain.ErrMissingVoteFields) {
			return apperrors.ValidationError("userId and pollOptionId are required")
		}
		if errors.Is(err, domain.ErrDuplicateVote) {
			return apperrors.ConflictError("User already voted for this option").
				WithField("user_id", req.UserID).
				WithField("poll_option_id", req.PollOptionID)
		}
		return apperrors.InternalError("failed to cast vote", err).
			WithField("user_id", req.UserID).
			WithField("poll_option_id", req.PollOptionID)
	}

	if err := c.JSON(200, vote); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleDeleteVote(c echo.Context) error {
	voteID, err := paramID(c)
	if err != nil {
		return err
	}

	if err := s.app.DeleteVote(c.Request().Context(), voteID); err != nil {
		if errors.Is(err, domain.ErrVoteNotFound) {
			return apperrors.NotFoundError("Vote not found").WithField("vote_id", voteID)
		}
		return apperrors.InternalError("failed to delete vote", err).WithField("vote_id", voteID)
	}

	if err := c.JSON(200, map[string]string{"message": "Vote deleted"}); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}
