package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/nstepanov-hw/shop-api/internal/events"
	"github.com/nstepanov-hw/shop-api/internal/logging"
	"github.com/nstepanov-hw/shop-api/internal/models"
	"github.com/nstepanov-hw/shop-api/internal/users"
)

type UserHandler struct {
	Users     *users.Service
	Producer  *events.Producer
	JWTSecret []byte
}

type userResponse struct {
	UID       uint      `json:"uid"`
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	Birthdate time.Time `json:"birthdate"`
	Role      string    `json:"role"`
}

func toUserResponse(u *models.User) userResponse {
	return userResponse{
		UID:       u.ID,
		Username:  u.Username,
		Name:      u.Name,
		Birthdate: u.Birthdate,
		Role:      u.Role,
	}
}

func (h *UserHandler) publish(c echo.Context, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, "user_events", fmt.Sprint(event["userID"]), event); err != nil {
		c.Logger().Errorf("Kafka publish error: %v", err)
	}
}

func (h *UserHandler) Register(c echo.Context) error {
	l := logging.FromContext(c.Request().Context()).With("handler", "user.register")

	var req struct {
		Username  string    `json:"username"`
		Name      string    `json:"name"`
		Birthdate time.Time `json:"birthdate"`
		Password  string    `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("register_failed", "status", 400, "reason", "invalid body")
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	user, err := h.Users.Register(c.Request().Context(), users.RegisterInfo{
		Username:  req.Username,
		Name:      req.Name,
		Birthdate: req.Birthdate,
		Password:  req.Password,
	})
	if err != nil {
		return domainError(err)
	}

	h.publish(c, map[string]any{
		"type":     "user_registered",
		"userID":   user.ID,
		"username": user.Username,
	})

	return c.JSON(http.StatusOK, toUserResponse(user))
}

// GetUser resolves a user by exactly one of id or username. Supplying both
// or neither is rejected as unauthorized, not as a validation error.
func (h *UserHandler) GetUser(c echo.Context) error {
	l := logging.FromContext(c.Request().Context()).With("handler", "user.get")

	idParam := c.QueryParam("id")
	usernameParam := c.QueryParam("username")
	if (idParam == "") == (usernameParam == "") {
		l.Warn("get_user_failed", "status", 401, "reason", "need exactly one of id and username")
		return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	}

	var (
		user *models.User
		err  error
	)
	if idParam != "" {
		uid, perr := strconv.ParseUint(idParam, 10, 32)
		if perr != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "id is not a valid id")
		}
		user, err = h.Users.GetByID(c.Request().Context(), uint(uid))
	} else {
		user, err = h.Users.GetByUsername(c.Request().Context(), usernameParam)
	}
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, toUserResponse(user))
}

func (h *UserHandler) PromoteUser(c echo.Context) error {
	l := logging.FromContext(c.Request().Context()).With("handler", "user.promote")

	idParam := c.QueryParam("id")
	if idParam == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "id parameter is required")
	}
	uid, err := strconv.ParseUint(idParam, 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "id is not a valid id")
	}

	if err := h.Users.GrantAdmin(c.Request().Context(), uint(uid)); err != nil {
		return domainError(err)
	}

	h.publish(c, map[string]any{
		"type":   "user_promoted",
		"userID": uint(uid),
	})

	l.Info("promote_success", "uid", uid)
	return c.JSON(http.StatusOK, echo.Map{"status": "promoted"})
}

// Login exchanges valid credentials for a short-lived HS256 access token,
// returned in the body and as a cookie.
func (h *UserHandler) Login(c echo.Context) error {
	l := logging.FromContext(c.Request().Context()).With("handler", "user.login")

	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("login_failed", "status", 400, "reason", "invalid body")
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	user, err := h.Users.Authenticate(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		l.Warn("login_failed", "status", 401, "reason", "invalid username or password")
		return domainError(err)
	}

	exp := time.Now().Add(15 * time.Minute)
	claims := jwt.MapClaims{
		"sub":  user.ID,
		"role": user.Role,
		"exp":  exp.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(h.JWTSecret)
	if err != nil {
		l.Error("login_failed", "status", 500, "reason", "cannot create token", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot create token")
	}

	c.SetCookie(&http.Cookie{
		Name:     "accessToken",
		Value:    signed,
		Path:     "/",
		Expires:  exp,
		HttpOnly: true,
	})

	l.Info("login_success", "uid", user.ID)
	return c.JSON(http.StatusOK, echo.Map{
		"access_token": signed,
		"is_admin":     user.Role == models.RoleAdmin,
	})
}
