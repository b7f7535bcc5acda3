package server

import (
	"github.com/Talha62370/Real-Time-Polling/internal/correlation"
	"github.com/labstack/echo/v4"
)

const correlationHeader = "X-Correlation-ID"

// correlationMiddleware tags every request with a correlation ID. An ID sent
// by the client is reused, otherwise a fresh one is generated. The ID is
// echoed back in the response header.
func correlationMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Request().Header.Get(correlationHeader)
			if id == "" {
				id = correlation.NewID()
			}

			ctx := correlation.WithID(c.Request().Context(), id)
			c.SetRequest(c.Request().WithContext(ctx))
			c.Response().Header().Set(correlationHeader, id)

			return next(c)
		}
	}
}
