package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bookbuddy/library-api/internal/core/domain"
	"github.com/bookbuddy/library-api/internal/core/ports"
)

// UserHandler exposes super-admin user management. The router mounts every
// route behind RequireAuth and RequireRole(super-admin).
type UserHandler struct {
	userService ports.UserService
}

func NewUserHandler(userService ports.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// List returns all users, newest first, without password hashes.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Router       /api/users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.userService.List(c.Request().Context())
	if err != nil {
		return err
	}
	return respondList(c, http.StatusOK, users, len(users), int64(len(users)), 1, 1)
}

// Get returns a single user by id.
//
// @Summary      Get a user
// @Tags         users
// @Produce      json
// @Router       /api/users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	user, err := h.userService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, user)
}

// Create adds a new user with the admin-console password rule.
//
// @Summary      Create a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Router       /api/users [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.userService.Create(c.Request().Context(), ports.CreateUserInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Role:     domain.Role(req.Role),
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, user)
}

// Update applies profile changes. The self-protection guard in the service
// refuses a role change on the caller's own account.
//
// @Summary      Update a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Router       /api/users/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	actor := CurrentUser(c)
	if actor == nil {
		return domain.ErrUnauthenticated
	}

	user, err := h.userService.Update(c.Request().Context(), actor.ID, c.Param("id"), ports.UpdateUserInput{
		Username: req.Username,
		Email:    req.Email,
		Role:     domain.Role(req.Role),
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, user)
}

// ResetPassword sets a new password for the target user.
//
// @Summary      Reset a user's password
// @Tags         users
// @Accept       json
// @Produce      json
// @Router       /api/users/{id}/password [put]
func (h *UserHandler) ResetPassword(c echo.Context) error {
	var req resetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.userService.ResetPassword(c.Request().Context(), c.Param("id"), req.Password); err != nil {
		return err
	}
	return respondMessage(c, http.StatusOK, "Password updated successfully")
}

// Delete removes a user. The service refuses deletion of the caller's own
// account.
//
// @Summary      Delete a user
// @Tags         users
// @Produce      json
// @Router       /api/users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	actor := CurrentUser(c)
	if actor == nil {
		return domain.ErrUnauthenticated
	}

	if err := h.userService.Delete(c.Request().Context(), actor.ID, c.Param("id")); err != nil {
		return err
	}
	return respondMessage(c, http.StatusOK, "User deleted successfully")
}
