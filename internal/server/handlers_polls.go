package server

import (
	"errors"
	"fmt"

	"github.com/Talha62370/Real-Time-Polling/internal/domain"
	apperrors "github.com/Talha62370/Real-Time-Polling/internal/errors"
	"github.com/labstack/echo/v4"
)

type createPollRequest struct {
	Question  string   `json:"question"`
	CreatorID int64    `json:"creatorId"`
	Options   []string `json:"options"`
}

func (s *Server) handleCreatePoll(c echo.Context) error {
	var req createPollRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}

	if req.Question == "" || req.CreatorID == 0 || req.Options == nil {
		return apperrors.ValidationError("question, creatorId, options[] are required")
	}

	poll, err := s.app.CreatePoll(c.Request().Context(), req.Question, req.CreatorID, req.Options)
	if err != nil {
		return apperrors.InternalError("failed to create poll", err)
	}

	if err := c.JSON(200, poll); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleGetPoll(c echo.Context) error {
	pollID, err := paramID(c)
	if err != nil {
		return err
	}

	view, err := s.app.GetPoll(c.Request().Context(), pollID)
	if err != nil {
		if errors.Is(err, domain.ErrPollNotFound) {
			return apperrors.NotFoundError("Poll not found").WithField("poll_id", pollID)
		}
		return apperrors.InternalError("failed to fetch poll", err).WithField("poll_id", pollID)
	}

	if err := c.JSON(200, view); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

type updatePollRequest struct {
	Question    *string `json:"question"`
	IsPublished *bool   `json:"isPublished"`
}

func (s *Server) handleUpdatePoll(c echo.Context) error {
	pollID, err := paramID(c)
	if err != nil {
		return err
	}

	var req updatePollRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}

	// An empty question is treated as absent; isPublished false is a real
	// update and is applied.
	update := domain.PollUpdate{
		Question:    nonEmpty(req.Question),
		IsPublished: req.IsPublished,
	}

	poll, err := s.app.UpdatePoll(c.Request().Context(), pollID, update)
	if err != nil {
		if errors.Is(err, domain.ErrPollNotFound) {
			return apperrors.NotFoundError("Poll not found").WithField("poll_id", pollID)
		}
		return apperrors.InternalError("failed to update poll", err).WithField("poll_id", pollID)
	}

	if err := c.JSON(200, poll); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleDeletePoll(c echo.Context) error {
	pollID, err := paramID(c)
	if err != nil {
		return err
	}

	if err := s.app.DeletePoll(c.Request().Context(), pollID); err != nil {
		if errors.Is(err, domain.ErrPollNotFound) {
			return apperrors.NotFoundError("Poll not found").WithField("poll_id", pollID)
		}
		return apperrors.InternalError("failed to delete poll", err).WithField("poll_id", pollID)
	}

	if err := c.JSON(200, map[string]string{"message": "Poll deleted"}); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}
