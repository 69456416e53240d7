package middleware

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// HeaderRequestID carries the request id in both directions
const HeaderRequestID = "X-Request-ID"

// RequestIDMiddleware adds a unique request ID to each request
func RequestIDMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			requestID := c.Request().Header.Get(HeaderRequestID)
			if requestID == "" {
				requestID = uuid.NewString()
			}

			c.Response().Header().Set(HeaderRequestID, requestID)
			c.Set(ContextKeyRequestID, requestID)
			AddAttribute(c, "request_id", requestID)

			return next(c)
		}
	}
}

func getRequestID(c echo.Context) string {
	if requestID := c.Response().Header().Get(HeaderRequestID); requestID != "" {
		return requestID
	}
	if requestID := c.Request().Header.Get(HeaderRequestID); requestID != "" {
		return requestID
	}
	if requestID := c.Get(ContextKeyRequestID); requestID != nil {
		return fmt.Sprintf("%v", requestID)
	}
	return ""
}
