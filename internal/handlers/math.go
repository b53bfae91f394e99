package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/nstepanov-hw/shop-api/internal/logging"
	"github.com/nstepanov-hw/shop-api/internal/mathx"
)

type MathHandler struct{}

func (h *MathHandler) Factorial(c echo.Context) error {
	l := logging.FromContext(c.Request().Context()).With("handler", "math.factorial")

	nParam := c.QueryParam("n")
	if nParam == "" {
		l.Warn("factorial_failed", "status", 422, "reason", "no n parameter given")
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "no n parameter given")
	}
	n, err := strconv.Atoi(nParam)
	if err != nil {
		l.Warn("factorial_failed", "status", 400, "reason", "invalid n value")
		return echo.NewHTTPError(http.StatusBadRequest, "invalid n value")
	}

	result, err := mathx.Factorial(n)
	if err != nil {
		l.Warn("factorial_failed", "status", 400, "error", err)
		return domainError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"result": result})
}

func (h *MathHandler) Fibonacci(c echo.Context) error {
	l := logging.FromContext(c.Request().Context()).With("handler", "math.fibonacci")

	nParam := c.Param("n")
	if nParam == "" {
		nParam = c.QueryParam("n")
	}
	if nParam == "" {
		l.Warn("fibonacci_failed", "status", 422, "reason", "no n parameter given")
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "no n parameter given")
	}
	n, err := strconv.Atoi(nParam)
	if err != nil {
		l.Warn("fibonacci_failed", "status", 400, "reason", "invalid n value")
		return echo.NewHTTPError(http.StatusBadRequest, "invalid n value")
	}

	result, err := mathx.Fibonacci(n)
	if err != nil {
		l.Warn("fibonacci_failed", "status", 400, "error", err)
		return domainError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"result": result})
}

func (h *MathHandler) Mean(c echo.Context) error {
	l := logging.FromContext(c.Request().Context()).With("handler", "math.mean")

	var xs []float64
	if err := c.Bind(&xs); err != nil {
		l.Warn("mean_failed", "status", 422, "reason", "body is not a list of numbers")
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "the given data must be a list of numbers")
	}

	result, err := mathx.Mean(xs)
	if err != nil {
		l.Warn("mean_failed", "status", 400, "error", err)
		return domainError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"result": result})
}
