package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/nstepanov-hw/shop-api/internal/mathx"
	"github.com/nstepanov-hw/shop-api/internal/store"
	"github.com/nstepanov-hw/shop-api/internal/users"
)

// domainError maps store and policy errors onto HTTP statuses at the
// surface boundary.
func domainError(err error) error {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he
	}

	switch {
	case errors.Is(err, store.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, store.ErrInvalidArgument), errors.Is(err, mathx.ErrInvalidArgument):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, store.ErrDuplicateKey):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, store.ErrAlreadyDeleted):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, users.ErrDuplicateUsername), errors.Is(err, users.ErrInvalidPassword):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, users.ErrUnauthorized):
		return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	case errors.Is(err, users.ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, "Forbidden")
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
}

func paramUint(c echo.Context, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, name+" is not a valid id")
	}
	return uint(v), nil
}

func queryInt(c echo.Context, name string, def int) (int, error) {
	s := c.QueryParam(name)
	if s == "" {
		return def, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, name+" is not an integer")
	}
	return v, nil
}

func queryFloatPtr(c echo.Context, name string) (*float64, error) {
	s := c.QueryParam(name)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, name+" is not a number")
	}
	return &v, nil
}

func queryUintPtr(c echo.Context, name string) (*uint, error) {
	s := c.QueryParam(name)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, name+" is not a non-negative integer")
	}
	u := uint(v)
	return &u, nil
}
