package server

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/Talha62370/Real-Time-Polling/internal/domain"
	apperrors "github.com/Talha62370/Real-Time-Polling/internal/errors"
	"github.com/labstack/echo/v4"
)

// paramID parses the :id route parameter.
func paramID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, apperrors.ValidationError("invalid id").WithField("id", c.Param("id"))
	}
	return id, nil
}

type createUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleCreateUser(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}

	user, err := s.app.CreateUser(c.Request().Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return apperrors.ConflictError("Email already exists. Please use a different email.").
				WithField("email", req.Email)
		}
		return apperrors.InternalError("failed to create user", err)
	}

	if err := c.JSON(200, user); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleListUsers(c echo.Context) error {
	users, err := s.app.ListUsers(c.Request().Context())
	if err != nil {
		return apperrors.InternalError("failed to list users", err)
	}

	// Password hashes are excluded by the model's JSON tags.
	if err := c.JSON(200, users); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

type updateUserRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

func (s *Server) handleUpdateUser(c echo.Context) error {
	userID, err := paramID(c)
	if err != nil {
		return err
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}

	// Empty strings are treated as absent, like missing fields.
	update := domain.UserUpdate{
		Name:     nonEmpty(req.Name),
		Email:    nonEmpty(req.Email),
		Password: nonEmpty(req.Password),
	}

	user, err := s.app.UpdateUser(c.Request().Context(), userID, update)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return apperrors.NotFoundError("User not found").WithField("user_id", userID)
		}
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return apperrors.ConflictError("Email already exists. Please use a different email.")
		}
		return apperrors.InternalError("failed to update user", err).WithField("user_id", userID)
	}

	if err := c.JSON(200, user); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleDeleteUser(c echo.Context) error {
	userID, err := paramID(c)
	if err != nil {
		return err
	}

	if err := s.app.DeleteUser(c.Request().Context(), userID); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return apperrors.NotFoundError("User not found").WithField("user_id", userID)
		}
		return apperrors.InternalError("failed to delete user", err).WithField("user_id", userID)
	}

	if err := c.JSON(200, map[string]string{"message": "User deleted"}); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
