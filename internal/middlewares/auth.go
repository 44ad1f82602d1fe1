package middlewares

import (
	"crypto/subtle"
	"fmt"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/onurcolak/sms-relay/pkg/response"
)

const (
	APIKeyHeader = "x-api-key"

	// accountIDKey holds the authenticated account id in the echo context.
	accountIDKey = "accountID"
)

type tokenParser interface {
	Parse(token string) (int64, error)
}

// secureCompare compares two strings in a way that is safer against timing attacks.
func secureCompare(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

func APIKeyAuth(apiKey string) echo.MiddlewareFunc {
	// If the API key is not configured, treat this as a server-side misconfiguration.
	if apiKey == "" {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error {
				return response.InternalServerError(
					c,
					fmt.Errorf("API key is not configured for this endpoint group"),
				)
			}
		}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := c.Request().Header.Get(APIKeyHeader)
			if token == "" || !secureCompare(token, apiKey) {
				return response.Unauthorized(c)
			}

			return next(c)
		}
	}
}

// SessionAuth accepts a session token from the Authorization header
// ("Bearer <token>") or, for websocket upgrades, the token query parameter.
func SessionAuth(parser tokenParser) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if token == "" {
				token = c.QueryParam("token")
			}
			if token == "" {
				return response.UnauthorizedWithMessage(c, "Missing session token")
			}

			accountID, err := parser.Parse(token)
			if err != nil {
				return response.UnauthorizedWithMessage(c, "Invalid or expired session token")
			}

			c.Set(accountIDKey, accountID)

			return next(c)
		}
	}
}

// AccountID returns the account authenticated by SessionAuth, or 0.
func AccountID(c echo.Context) int64 {
	id, _ := c.Get(accountIDKey).(int64)
	return id
}

func bearerToken(header string) string {
	const prefix = "bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}
