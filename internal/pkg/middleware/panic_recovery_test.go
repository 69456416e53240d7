package middleware

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/piresc/tuitionpay/internal/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func bufferLogger(buf *bytes.Buffer) *logger.ZapLogger {
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.AddSync(buf),
		zapcore.DebugLevel,
	)
	return logger.NewFromZap(zap.New(core))
}

func TestPanicRecoveryWithZapMiddleware(t *testing.T) {
	var logBuffer bytes.Buffer
	zapLogger := bufferLogger(&logBuffer)

	tests := []struct {
		name         string
		panicValue   interface{}
		expectInLogs []string
		setupContext func(c echo.Context)
	}{
		{
			name:         "string panic",
			panicValue:   "test panic message",
			expectInLogs: []string{"test panic message", "stack_trace", "Panic recovered during request processing"},
		},
		{
			name:         "error panic",
			panicValue:   fmt.Errorf("test error panic"),
			expectInLogs: []string{"test error panic", "*errors.errorString"},
		},
		{
			name:         "panic with payer context",
			panicValue:   "payer context panic",
			expectInLogs: []string{"payer context panic", "payer-123"},
			setupContext: func(c echo.Context) {
				c.Set(ContextKeyUserID, "payer-123")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logBuffer.Reset()
			e := echo.New()

			handler := PanicRecoveryWithZapMiddleware(zapLogger)(func(c echo.Context) error {
				if tt.setupContext != nil {
					tt.setupContext(c)
				}
				panic(tt.panicValue)
			})

			req := httptest.NewRequest(http.MethodPost, "/payments", nil)
			req.Header.Set("User-Agent", "test-agent")
			req.Header.Set("Authorization", "Bearer secret-token")
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			err := handler(c)
			assert.NoError(t, err)
			assert.Equal(t, http.StatusInternalServerError, rec.Code)

			var response map[string]interface{}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
			assert.Equal(t, "Internal Server Error", response["error"])
			assert.Equal(t, false, response["success"])

			logOutput := logBuffer.String()
			for _, expected := range tt.expectInLogs {
				assert.Contains(t, logOutput, expected)
			}
			assert.Contains(t, logOutput, "/payments")
			assert.Contains(t, logOutput, "test-agent")
			assert.NotContains(t, logOutput, "secret-token")
		})
	}
}

func TestPanicRecoveryWithNewRelicTransaction(t *testing.T) {
	var logBuffer bytes.Buffer
	zapLogger := bufferLogger(&logBuffer)

	app, err := newrelic.NewApplication(
		newrelic.ConfigAppName("test-app"),
		newrelic.ConfigLicense("0000000000000000000000000000000000000000"),
		newrelic.ConfigEnabled(false),
	)
	require.NoError(t, err)

	e := echo.New()
	handler := PanicRecoveryWithZapMiddleware(zapLogger)(func(c echo.Context) error {
		panic("new relic panic test")
	})

	txn := app.StartTransaction("test-transaction")
	defer txn.End()
	req := httptest.NewRequest(http.MethodPost, "/payments/1/verify-otp", nil)
	req = req.WithContext(newrelic.NewContext(req.Context(), txn))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err = handler(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, logBuffer.String(), "new relic panic test")
}

func TestPanicRecoveryMiddleware_RequiresLogger(t *testing.T) {
	assert.Panics(t, func() {
		PanicRecoveryMiddleware(DefaultPanicRecoveryConfig())
	})
}

func TestPanicRecovery_IncludesRequestID(t *testing.T) {
	var logBuffer bytes.Buffer
	e := echo.New()
	e.Use(RequestIDMiddleware())
	e.Use(PanicRecoveryWithZapMiddleware(bufferLogger(&logBuffer)))
	e.GET("/boom", func(c echo.Context) error {
		panic("boom")
	})

	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	req.Header.Set(HeaderRequestID, "req-42")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "req-42", response["request_id"])
}

func TestExtractSafeHeaders(t *testing.T) {
	headers := http.Header{}
	headers.Set("Authorization", "Bearer token")
	headers.Set("Cookie", "session=1")
	headers.Set("Content-Type", "application/json")

	safe := extractSafeHeaders(headers)

	assert.Equal(t, "application/json", safe["Content-Type"])
	assert.NotContains(t, safe, "Authorization")
	assert.NotContains(t, safe, "Cookie")
}

func TestSendPanicResponse_Committed(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	require.NoError(t, c.String(http.StatusAccepted, "already sent"))

	sendPanicResponse(c, "")

	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, "already sent", rec.Body.String())
}
