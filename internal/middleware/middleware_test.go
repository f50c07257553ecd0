package middleware

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zenpay/internal/ratelimit"
)

const testBotToken = "12345:TEST-TOKEN"

// signInitData builds a valid signed init data string the way the
// Telegram client does.
func signInitData(botToken string, fields map[string]string) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+fields[k])
	}
	checkString := strings.Join(pairs, "\n")

	secret := hmac.New(sha256.New, []byte("WebAppData"))
	secret.Write([]byte(botToken))
	mac := hmac.New(sha256.New, secret.Sum(nil))
	mac.Write([]byte(checkString))

	values := url.Values{}
	for k, v := range fields {
		values.Set(k, v)
	}
	values.Set("hash", hex.EncodeToString(mac.Sum(nil)))
	return values.Encode()
}

func freshInitData(botToken string) string {
	return signInitData(botToken, map[string]string{
		"user":      `{"id":42,"first_name":"Ann"}`,
		"auth_date": fmt.Sprintf("%d", time.Now().Unix()),
		"query_id":  "AAE42",
	})
}

func TestValidateInitData(t *testing.T) {
	userID, err := ValidateInitData(freshInitData(testBotToken), testBotToken, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
}

func TestValidateInitDataRejectsTamperedPayload(t *testing.T) {
	raw := freshInitData(testBotToken)
	tampered := strings.Replace(raw, "Ann", "Bob", 1)

	_, err := ValidateInitData(tampered, testBotToken, time.Hour)
	assert.Error(t, err)
}

func TestValidateInitDataRejectsWrongToken(t *testing.T) {
	_, err := ValidateInitData(freshInitData("999:OTHER"), testBotToken, time.Hour)
	assert.Error(t, err)
}

func TestValidateInitDataRejectsStaleAuthDate(t *testing.T) {
	raw := signInitData(testBotToken, map[string]string{
		"user":      `{"id":42}`,
		"auth_date": fmt.Sprintf("%d", time.Now().Add(-48*time.Hour).Unix()),
	})
	_, err := ValidateInitData(raw, testBotToken, 24*time.Hour)
	assert.Error(t, err)
}

func TestInitDataAuthMiddleware(t *testing.T) {
	e := echo.New()
	mw := InitDataAuth(testBotToken, time.Hour)
	next := func(c echo.Context) error {
		return c.String(http.StatusOK, fmt.Sprintf("%d", c.Get("user_id")))
	}

	req := httptest.NewRequest(http.MethodGet, "/api/payment/methods", nil)
	req.Header.Set("X-Init-Data", freshInitData(testBotToken))
	rec := httptest.NewRecorder()
	require.NoError(t, mw(next)(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "42", rec.Body.String())

	// Missing header.
	req = httptest.NewRequest(http.MethodGet, "/api/payment/methods", nil)
	rec = httptest.NewRecorder()
	require.NoError(t, mw(next)(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Bad signature.
	req = httptest.NewRequest(http.MethodGet, "/api/payment/methods", nil)
	req.Header.Set("X-Init-Data", "user=%7B%22id%22%3A42%7D&hash=deadbeef&auth_date=1")
	rec = httptest.NewRecorder()
	require.NoError(t, mw(next)(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRateLimitMiddleware(t *testing.T) {
	e := echo.New()
	mw := RateLimit(ratelimit.NewWindow(), 2, time.Minute)
	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }

	do := func(userID int64) int {
		req := httptest.NewRequest(http.MethodPost, "/api/payment/topup", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.Set("user_id", userID)
		require.NoError(t, mw(next)(c))
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, do(1))
	assert.Equal(t, http.StatusOK, do(1))
	assert.Equal(t, http.StatusTooManyRequests, do(1))
	assert.Equal(t, http.StatusOK, do(2), "limits are per user")
}

type failingLimiter struct{}

func (failingLimiter) Allow(context.Context, string, int, time.Duration) (bool, error) {
	return false, errors.New("redis down")
}

func TestRateLimitFailsOpen(t *testing.T) {
	e := echo.New()
	mw := RateLimit(failingLimiter{}, 1, time.Minute)
	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }

	req := httptest.NewRequest(http.MethodPost, "/api/payment/topup", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, mw(next)(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)
}
