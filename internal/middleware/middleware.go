package middleware

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"zenpay/internal/ratelimit"
)

// InitDataAuth validates the Telegram Mini App init data signature and
// freshness, then stores the caller's user id in the context under
// "user_id". The init data arrives in the X-Init-Data header.
func InitDataAuth(botToken string, maxAge time.Duration) echo.MiddlewareFunc {
	if maxAge <= 0 {
		maxAge = 24 * time.Hour
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := c.Request().Header.Get("X-Init-Data")
			if raw == "" {
				return c.JSON(http.StatusUnauthorized, map[string]interface{}{
					"status": false,
					"msg":    "init data is required",
					"obj":    nil,
				})
			}

			userID, err := ValidateInitData(raw, botToken, maxAge)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]interface{}{
					"status": false,
					"msg":    "invalid init data",
					"obj":    nil,
				})
			}

			c.Set("user_id", userID)
			return next(c)
		}
	}
}

// ValidateInitData checks the HMAC signature Telegram attaches to mini
// app init data and returns the authenticated user id. The secret key
// is HMAC_SHA256("WebAppData", botToken) per the Bot API docs.
func ValidateInitData(raw, botToken string, maxAge time.Duration) (int64, error) {
	values, err := url.ParseQuery(raw)
	if err != nil {
		return 0, fmt.Errorf("init data: %w", err)
	}

	gotHash := values.Get("hash")
	if gotHash == "" {
		return 0, fmt.Errorf("init data: no hash")
	}
	values.Del("hash")

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+values.Get(k))
	}
	checkString := strings.Join(pairs, "\n")

	secret := hmac.New(sha256.New, []byte("WebAppData"))
	secret.Write([]byte(botToken))

	mac := hmac.New(sha256.New, secret.Sum(nil))
	mac.Write([]byte(checkString))
	want := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(want), []byte(gotHash)) {
		return 0, fmt.Errorf("init data: signature mismatch")
	}

	authDate, err := strconv.ParseInt(values.Get("auth_date"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("init data: bad auth_date")
	}
	if time.Since(time.Unix(authDate, 0)) > maxAge {
		return 0, fmt.Errorf("init data: expired")
	}

	var user struct {
		ID int64 `json:"id"`
	}
	if err := json.Unmarshal([]byte(values.Get("user")), &user); err != nil || user.ID == 0 {
		return 0, fmt.Errorf("init data: no user")
	}
	return user.ID, nil
}

// RateLimit bounds requests per authenticated user, falling back to the
// client IP. Limiter errors fail open so a Redis outage never blocks
// payments.
func RateLimit(limiter ratelimit.Limiter, max int, window time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := c.RealIP()
			if userID, ok := c.Get("user_id").(int64); ok {
				key = strconv.FormatInt(userID, 10)
			}

			allowed, err := limiter.Allow(c.Request().Context(), "api:"+key, max, window)
			if err != nil {
				return next(c)
			}
			if !allowed {
				return c.JSON(http.StatusTooManyRequests, map[string]interface{}{
					"status": false,
					"msg":    "too many requests",
					"obj":    nil,
				})
			}
			return next(c)
		}
	}
}

// CORS configures CORS headers for the mini app origin.
func CORS() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Response().Header().Set("Access-Control-Allow-Origin", "*")
			c.Response().Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			c.Response().Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Init-Data, Authorization")
			if c.Request().Method == "OPTIONS" {
				return c.NoContent(http.StatusOK)
			}
			return next(c)
		}
	}
}
