package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

// DefaultSubmitsPerMinute bounds how often one IP may submit the form.
const DefaultSubmitsPerMinute = 10

// RateLimiter limits requests to DefaultSubmitsPerMinute per IP address for
// the routes it's applied to.
func RateLimiter() echo.MiddlewareFunc {
	return RateLimiterPerMinute(DefaultSubmitsPerMinute)
}

// RateLimiterPerMinute allows perMinute requests per IP, with a burst of the
// same size.
func RateLimiterPerMinute(perMinute int) echo.MiddlewareFunc {
	config := middleware.RateLimiterConfig{
		// NewRateLimiterMemoryStore is a simple in-memory store suitable for single-instance deployments.
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
			Rate:  rate.Limit(float64(perMinute) / 60),
			Burst: perMinute,
		}),
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return c.String(http.StatusTooManyRequests, "Muitas tentativas. Tente novamente em instantes.")
		},
	}
	return middleware.RateLimiterWithConfig(config)
}
