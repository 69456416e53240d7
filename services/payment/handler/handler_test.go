package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	jwtpkg "github.com/piresc/tuitionpay/internal/pkg/jwt"
	"github.com/piresc/tuitionpay/internal/pkg/models"
	"github.com/piresc/tuitionpay/services/payment/mocks"
)

func TestRegisterRoutes(t *testing.T) {
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockPaymentUC(ctrl)
	cfg := &models.Config{JWT: models.JWTConfig{Secret: "routes-secret", Expiration: 5, Issuer: "tuitionpay-test"}}

	h := NewHandler(uc, nil, cfg, nil)
	e := echo.New()
	h.RegisterRoutes(e, nil)

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwtpkg.Claims{
		UserID: "U1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(5 * time.Minute)),
		},
	}).SignedString([]byte(cfg.JWT.Secret))
	require.NoError(t, err)

	t.Run("Anonymous requests are rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/sagas", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("Payer comes from the token", func(t *testing.T) {
		id := uuid.New()
		uc.EXPECT().CancelPayment(gomock.Any(), id, "U1", "").Return(nil)

		req := httptest.NewRequest(http.MethodPost, "/payments/"+id.String()+"/cancel", strings.NewReader(""))
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("Static segments win over the id parameter", func(t *testing.T) {
		uc.EXPECT().GetPaymentsByStudent(gomock.Any(), "S1").Return([]*models.Payment{}, nil)

		req := httptest.NewRequest(http.MethodGet, "/payments/student/S1", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("Saga list with limit", func(t *testing.T) {
		uc.EXPECT().GetAllSagas(gomock.Any(), 10).Return([]*models.Saga{}, nil)

		req := httptest.NewRequest(http.MethodGet, "/sagas?limit=10", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
