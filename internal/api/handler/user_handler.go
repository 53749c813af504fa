package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/parik/salon-console/internal/core/domain"
	"github.com/parik/salon-console/internal/core/ports"
)

// UserHandler covers the admin user maintenance forms.
type UserHandler struct {
	admin   ports.CatalogAdmin
	refresh RefreshStrategy
}

func NewUserHandler(admin ports.CatalogAdmin, refresh RefreshStrategy) *UserHandler {
	return &UserHandler{admin: admin, refresh: refresh}
}

type userRequest struct {
	Username string `form:"username" json:"username" validate:"required"`
	Email    string `form:"email"    json:"email"    validate:"required,email"`
	Phone    string `form:"phone"    json:"phone"`
	Password string `form:"password" json:"password" validate:"required,min=6"`
	Role     string `form:"role"     json:"role"     validate:"required,oneof=Administrator Master Client"`
}

// Create handles POST /users.
func (h *UserHandler) Create(c echo.Context) error {
	var req userRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	u := domain.User{
		Username: req.Username,
		Email:    req.Email,
		Phone:    req.Phone,
		Role:     req.Role,
	}
	if err := h.admin.CreateUser(c.Request().Context(), u, req.Password); err != nil {
		return err
	}
	return h.refresh.Done(c, "users")
}

type userUpdateRequest struct {
	Username string `form:"username" json:"username" validate:"required"`
	Email    string `form:"email"    json:"email"    validate:"required,email"`
	Phone    string `form:"phone"    json:"phone"`
	Role     string `form:"role"     json:"role"     validate:"required,oneof=Administrator Master Client"`
}

// Update handles PUT /users/:id. Passwords are not editable here.
func (h *UserHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req userUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	u := domain.User{
		ID:       id,
		Username: req.Username,
		Email:    req.Email,
		Phone:    req.Phone,
		Role:     req.Role,
	}
	if err := h.admin.UpdateUser(c.Request().Context(), id, u); err != nil {
		return err
	}
	return h.refresh.Done(c, "users")
}

// Delete handles DELETE /users/:id.
func (h *UserHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.admin.DeleteUser(c.Request().Context(), id); err != nil {
		return err
	}
	return h.refresh.Done(c, "users")
}
