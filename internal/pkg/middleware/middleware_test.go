package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	jwtpkg "github.com/piresc/tuitionpay/internal/pkg/jwt"
	"github.com/piresc/tuitionpay/internal/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testJWTConfig() models.JWTConfig {
	return models.JWTConfig{Secret: "middleware-secret", Expiration: 5, Issuer: "tuitionpay-test"}
}

func signTestToken(t *testing.T, userID string, cfg models.JWTConfig) string {
	t.Helper()
	claims := jwtpkg.Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.Issuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Duration(cfg.Expiration) * time.Minute)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.Secret))
	require.NoError(t, err)
	return token
}

func TestJWTAuthMiddleware(t *testing.T) {
	cfg := testJWTConfig()
	validToken := signTestToken(t, "payer-1", cfg)
	noUserToken := signTestToken(t, "", cfg)

	tests := []struct {
		name         string
		header       string
		expectedCode int
	}{
		{name: "Missing header", header: "", expectedCode: http.StatusUnauthorized},
		{name: "Wrong scheme", header: "Basic abc", expectedCode: http.StatusUnauthorized},
		{name: "Invalid token", header: "Bearer nope", expectedCode: http.StatusUnauthorized},
		{name: "Missing user claim", header: "Bearer " + noUserToken, expectedCode: http.StatusUnauthorized},
		{name: "Valid token", header: "Bearer " + validToken, expectedCode: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			var seenUser, seenEmail string
			e.GET("/me", func(c echo.Context) error {
				seenUser = UserID(c)
				seenEmail = UserEmail(c)
				return c.NoContent(http.StatusOK)
			}, JWTAuthMiddleware(cfg))

			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedCode, rec.Code)
			if tt.expectedCode == http.StatusOK {
				assert.Equal(t, "payer-1", seenUser)
				assert.Equal(t, "payer@example.com", seenEmail)
			}
		})
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	t.Run("Generates an id", func(t *testing.T) {
		e := echo.New()
		e.Use(RequestIDMiddleware())
		var seen string
		e.GET("/", func(c echo.Context) error {
			seen = getRequestID(c)
			return c.NoContent(http.StatusOK)
		})

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.NotEmpty(t, rec.Header().Get(HeaderRequestID))
		assert.Equal(t, rec.Header().Get(HeaderRequestID), seen)
	})

	t.Run("Keeps caller id", func(t *testing.T) {
		e := echo.New()
		e.Use(RequestIDMiddleware())
		e.GET("/", func(c echo.Context) error {
			return c.NoContent(http.StatusOK)
		})

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(HeaderRequestID, "abc")
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, "abc", rec.Header().Get(HeaderRequestID))
	})
}

func TestUserRateLimiter(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	e := echo.New()
	e.POST("/payments", func(c echo.Context) error {
		return c.NoContent(http.StatusCreated)
	}, func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(ContextKeyUserID, "payer-1")
			return next(c)
		}
	}, UserRateLimiter(2, time.Minute, client))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/payments", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
		if i == 2 {
			assert.NotEmpty(t, rec.Header().Get("Retry-After"))
			assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))
		}
	}

	assert.Equal(t, []int{http.StatusCreated, http.StatusCreated, http.StatusTooManyRequests}, codes)
	assert.True(t, mr.TTL("rate:user:POST:/payments:payer-1") > 0)

	t.Run("Window reset", func(t *testing.T) {
		mr.FastForward(time.Minute + time.Second)
		req := httptest.NewRequest(http.MethodPost, "/payments", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("Redis down fails open", func(t *testing.T) {
		mr.Close()
		req := httptest.NewRequest(http.MethodPost, "/payments", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusCreated, rec.Code)
	})
}
