package config

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	os.Setenv("DB_URI", "mongodb://127.0.0.1:27017")
	os.Setenv("DB_NAME", "test")
	defer os.Unsetenv("DB_URI")
	defer os.Unsetenv("DB_NAME")
	conf := New()

	assert.NotEmpty(t, conf)
	assert.Equal(t, "mongodb://127.0.0.1:27017", conf.URL)
	assert.Equal(t, "test", conf.DatabaseName)
}

func TestNewDefaults(t *testing.T) {
	os.Unsetenv("MAX_UPLOAD_BYTES")
	os.Unsetenv("CREDENTIAL_TTL")
	os.Unsetenv("AUTH_CACHE_TTL")
	conf := New()

	assert.Equal(t, DefaultMaxUploadBytes, conf.MaxUploadBytes)
	assert.Equal(t, DefaultCredentialTTL, conf.CredentialTTL)
	assert.False(t, conf.RequireVerifierAuth)
	assert.Equal(t, time.Hour, conf.AuthCacheTTL)
	assert.Equal(t, "8080", conf.Port)
}

func TestNewOverrides(t *testing.T) {
	os.Setenv("MAX_UPLOAD_BYTES", "10485760")
	os.Setenv("CREDENTIAL_TTL", "24h")
	os.Setenv("REQUIRE_VERIFIER_AUTH", "true")
	defer os.Unsetenv("MAX_UPLOAD_BYTES")
	defer os.Unsetenv("CREDENTIAL_TTL")
	defer os.Unsetenv("REQUIRE_VERIFIER_AUTH")
	conf := New()

	assert.Equal(t, int64(10<<20), conf.MaxUploadBytes)
	assert.Equal(t, 24*time.Hour, conf.CredentialTTL)
	assert.True(t, conf.RequireVerifierAuth)
}

func TestNewIgnoresGarbage(t *testing.T) {
	os.Setenv("MAX_UPLOAD_BYTES", "lots")
	os.Setenv("CREDENTIAL_TTL", "forever")
	defer os.Unsetenv("MAX_UPLOAD_BYTES")
	defer os.Unsetenv("CREDENTIAL_TTL")
	conf := New()

	assert.Equal(t, DefaultMaxUploadBytes, conf.MaxUploadBytes)
	assert.Equal(t, DefaultCredentialTTL, conf.CredentialTTL)
}

func TestErrorStatus(t *testing.T) {
	rr := httptest.NewRecorder()
	ErrorStatus("error it borked", http.StatusBadRequest, rr, errors.New("bad request"))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	var body map[string]string
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "error it borked", body["error"])
	assert.NotContains(t, rr.Body.String(), "bad request")
}

func TestSetLoggerSetsDevelopmentLogger(t *testing.T) {
	l, err := setLogger("development")
	assert.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.DebugLevel))
}

func TestSetLoggerSetsProductionLogger(t *testing.T) {
	l, err := setLogger("production")
	assert.NoError(t, err)
	assert.False(t, l.Core().Enabled(zapcore.DebugLevel))
	assert.True(t, l.Core().Enabled(zapcore.InfoLevel))
}

func TestSetLoggerSetsLocalLogger(t *testing.T) {
	l, err := setLogger("local")
	assert.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.DebugLevel))
}
