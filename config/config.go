package config

import (
	"encoding/json"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/linesmerrill/rider-docs-api/models"
)

// DefaultMaxUploadBytes is the single authoritative ceiling for an uploaded file.
const DefaultMaxUploadBytes int64 = 5 << 20

// DefaultCredentialTTL matches the lifetime both issuance paths have always used.
const DefaultCredentialTTL = 365 * 24 * time.Hour

// Config holds the project config values
type Config struct {
	URL          string
	DatabaseName string
	BaseURL      string
	Port         string
	Env          string

	Cloudinary Cloudinary

	MaxUploadBytes       int64
	CredentialTTL        time.Duration
	CredentialSigningKey string
	AuthJWTSecret        string
	AuthCacheTTL         time.Duration
	RequireVerifierAuth  bool
	RequestTimeout       time.Duration

	RedisAddr          string
	RedisPassword      string
	RateLimitPerMinute int

	SendgridAPIKey string
	MailFrom       string

	DigestSchedule string
}

// Cloudinary holds both credential pairs. The admin pair is only used to
// prepare the upload folder; every read/write goes through the upload pair.
type Cloudinary struct {
	CloudName      string
	APIKey         string
	APISecret      string
	AdminAPIKey    string
	AdminAPISecret string
	Folder         string
}

// New sets up all config related services
func New() *Config {
	// a missing .env is normal outside local development
	_ = godotenv.Load()

	env := os.Getenv("ENV")
	logger, err := setLogger(env)
	if err != nil {
		logger = zap.NewExample()
	}
	defer logger.Sync()
	_ = zap.ReplaceGlobals(logger)

	return &Config{
		URL:          os.Getenv("DB_URI"),
		DatabaseName: os.Getenv("DB_NAME"),
		BaseURL:      os.Getenv("BASE_URL"),
		Port:         getEnv("PORT", "8080"),
		Env:          env,
		Cloudinary: Cloudinary{
			CloudName:      os.Getenv("CLOUDINARY_CLOUD_NAME"),
			APIKey:         os.Getenv("CLOUDINARY_API_KEY"),
			APISecret:      os.Getenv("CLOUDINARY_API_SECRET"),
			AdminAPIKey:    os.Getenv("CLOUDINARY_ADMIN_API_KEY"),
			AdminAPISecret: os.Getenv("CLOUDINARY_ADMIN_API_SECRET"),
			Folder:         getEnv("CLOUDINARY_FOLDER", "rider-documents"),
		},
		MaxUploadBytes:       getEnvInt64("MAX_UPLOAD_BYTES", DefaultMaxUploadBytes),
		CredentialTTL:        getEnvDuration("CREDENTIAL_TTL", DefaultCredentialTTL),
		CredentialSigningKey: os.Getenv("CREDENTIAL_SIGNING_KEY"),
		AuthJWTSecret:        os.Getenv("AUTH_JWT_SECRET"),
		AuthCacheTTL:         getEnvDuration("AUTH_CACHE_TTL", time.Hour),
		RequireVerifierAuth:  getEnvBool("REQUIRE_VERIFIER_AUTH", false),
		RequestTimeout:       getEnvDuration("REQUEST_TIMEOUT", 30*time.Second),
		RedisAddr:            os.Getenv("REDIS_ADDR"),
		RedisPassword:        os.Getenv("REDIS_PASSWORD"),
		RateLimitPerMinute:   int(getEnvInt64("RATE_LIMIT_PER_MINUTE", 60)),
		SendgridAPIKey:       os.Getenv("SENDGRID_API_KEY"),
		MailFrom:             getEnv("MAIL_FROM", "no-reply@rider-docs.app"),
		DigestSchedule:       getEnv("DIGEST_SCHEDULE", "@hourly"),
	}
}

// ErrorStatus is a useful function that will log, write http headers and body for a
// give message, status code and err. The message is what the caller sees, the err
// only ever reaches the logs.
func ErrorStatus(message string, httpStatusCode int, w http.ResponseWriter, err error) {
	zap.S().With("error", err).Errorw(message, "status", httpStatusCode)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatusCode)
	b, _ := json.Marshal(models.ErrorResponse{Error: message})
	_, _ = w.Write(b)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		zap.S().Warnw("ignoring invalid integer config value", "key", key, "value", v)
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 {
		zap.S().Warnw("ignoring invalid duration config value", "key", key, "value", v)
		return fallback
	}
	return d
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
