package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/linesmerrill/rider-docs-api/api"
	"github.com/linesmerrill/rider-docs-api/api/events"
	"github.com/linesmerrill/rider-docs-api/config"
	"github.com/linesmerrill/rider-docs-api/credential"
	"github.com/linesmerrill/rider-docs-api/databases"
	"github.com/linesmerrill/rider-docs-api/documents"
	"github.com/linesmerrill/rider-docs-api/models"
	"github.com/linesmerrill/rider-docs-api/notify"
	"github.com/linesmerrill/rider-docs-api/storage"
)

const localUploadDir = "uploads"

// App stores the router and db connection, so it can be reused
type App struct {
	Router  *mux.Router
	Config  config.Config
	Blobs   storage.BlobStore
	Limiter api.Counter
	Mailer  notify.Mailer
	Hub     *events.Hub

	dbHelper  databases.DatabaseHelper
	client    databases.ClientHelper
	localRoot string
}

// New creates a new mux router and all the routes
func (a *App) New() *mux.Router {
	// setup go-guardian for middleware
	m := api.MiddlewareDB{
		DB:        databases.NewVerifierDatabase(a.dbHelper),
		JWTSecret: a.Config.AuthJWTSecret,
		CacheTTL:  a.Config.AuthCacheTTL,
	}
	m.SetupGoGuardian()

	if a.Hub == nil {
		a.Hub = events.NewHub()
	}
	issuer := a.Issuer()

	d := Document{
		Store:  a.DocumentStore(),
		Riders: databases.NewRiderDatabase(a.dbHelper),
		Issuer: issuer,
		Mailer: a.Mailer,
	}
	q := Credential{Issuer: issuer}
	v := Verify{Issuer: issuer, Hub: a.Hub, Now: time.Now}
	e := Events{Hub: a.Hub}

	r := mux.NewRouter()
	r.Use(api.MetricsMiddleware)

	// healthchex
	r.HandleFunc("/health", healthCheckHandler)
	r.Handle("/metrics", promhttp.Handler())
	if a.localRoot != "" {
		r.PathPrefix("/uploads/").Handler(http.StripPrefix("/uploads/", http.FileServer(http.Dir(a.localRoot))))
	}

	timeout := api.TimeoutMiddleware(a.Config.RequestTimeout)
	limit := api.RateLimit(a.Limiter, a.Config.RateLimitPerMinute)
	verifyAuth := api.OptionalAuth
	if a.Config.RequireVerifierAuth {
		verifyAuth = api.VerifierOnly
	}

	apiCreate := r.PathPrefix("/api/v1").Subrouter()

	apiCreate.Handle("/auth/token", api.VerifierOnly(http.HandlerFunc(m.CreateToken))).Methods("POST")
	apiCreate.Handle("/auth/logout", api.Middleware(http.HandlerFunc(api.RevokeToken))).Methods("DELETE")

	apiCreate.Handle("/documents/upload", timeout(limit(api.OptionalAuth(http.HandlerFunc(d.UploadHandler))))).Methods("POST")
	apiCreate.Handle("/documents", timeout(api.RiderOnly(http.HandlerFunc(d.DocumentsHandler)))).Methods("GET")
	apiCreate.Handle("/qr-generate", timeout(limit(http.HandlerFunc(q.QRGenerateHandler)))).Methods("POST")
	apiCreate.Handle("/verify", timeout(limit(verifyAuth(http.HandlerFunc(v.VerifyHandler))))).Methods("POST")

	// long lived, so no request timeout
	apiCreate.Handle("/riders/{rider_id}/events", api.RiderOnly(http.HandlerFunc(e.RiderEventsHandler))).Methods("GET")

	return r
}

// Initialize is invoked by main to connect with the database and create a router
func (a *App) Initialize() error {
	client, err := databases.NewClient(&a.Config)
	if err != nil {
		// if we fail to create a new database client, then kill the pod
		zap.S().With(err).Error("failed to create new client")
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	a.dbHelper = databases.NewDatabase(&a.Config, client)
	err = client.Connect(ctx)
	if err != nil {
		// if we fail to connect to the database, then kill the pod
		zap.S().With(err).Error("failed to connect to database")
		return err
	}
	a.client = client
	zap.S().Info("rider-docs-api has connected to the database")

	if err := databases.NewDocumentDatabase(a.dbHelper).EnsureIndexes(ctx); err != nil {
		zap.S().Warnw("failed to ensure document indexes", "error", err)
	}

	if a.Blobs == nil {
		if err := a.initializeBlobs(ctx); err != nil {
			return err
		}
	}

	if a.Limiter == nil && a.Config.RedisAddr != "" {
		limiter, err := api.NewRedisCounter(ctx, a.Config.RedisAddr, a.Config.RedisPassword)
		if err != nil {
			zap.S().With(err).Error("failed to connect to redis")
			return err
		}
		a.Limiter = limiter
	}

	if a.Mailer == nil {
		if mailer := notify.NewSendgrid(a.Config.SendgridAPIKey, a.Config.MailFrom); mailer != nil {
			a.Mailer = mailer
		} else {
			zap.S().Warn("SENDGRID_API_KEY not set, upload receipts are disabled")
		}
	}

	// initialize api router
	a.initializeRoutes()
	return nil
}

// initializeBlobs picks cloudinary when it is configured and the local disk otherwise
func (a *App) initializeBlobs(ctx context.Context) error {
	if a.Config.Cloudinary.CloudName != "" {
		if err := storage.EnsureFolder(ctx, a.Config.Cloudinary); err != nil {
			zap.S().Warnw("failed to ensure cloudinary folder", "folder", a.Config.Cloudinary.Folder, "error", err)
		}
		blobs, err := storage.NewCloudinary(a.Config.Cloudinary)
		if err != nil {
			zap.S().With(err).Error("failed to create cloudinary client")
			return err
		}
		a.Blobs = blobs
		return nil
	}

	local, err := storage.NewLocal(localUploadDir, a.Config.BaseURL)
	if err != nil {
		zap.S().With(err).Error("failed to prepare local upload directory")
		return err
	}
	zap.S().Warnw("cloudinary is not configured, storing uploads on local disk", "root", local.Root())
	a.Blobs = local
	a.localRoot = local.Root()
	return nil
}

// Close releases the database connection and the rate limiter
func (a *App) Close(ctx context.Context) {
	if a.client != nil {
		if err := a.client.Disconnect(ctx); err != nil {
			zap.S().Warnw("failed to disconnect from database", "error", err)
		}
	}
	if c, ok := a.Limiter.(*api.RedisCounter); ok {
		c.Close()
	}
}

// DocumentStore builds the document store over the app's blob store and database
func (a *App) DocumentStore() *documents.Store {
	maxBytes := a.Config.MaxUploadBytes
	if maxBytes <= 0 {
		maxBytes = config.DefaultMaxUploadBytes
	}
	return documents.NewStore(a.Blobs, databases.NewDocumentDatabase(a.dbHelper), documents.NewValidator(maxBytes))
}

// Issuer builds the credential issuer from the configured lifetime and signing key
func (a *App) Issuer() credential.Issuer {
	return credential.NewIssuer(a.Config.CredentialTTL, credential.NewSigner(a.Config.CredentialSigningKey))
}

func (a *App) initializeRoutes() {
	a.Router = a.New()
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	b, _ := json.Marshal(models.HealthCheckResponse{
		Alive: true,
	})
	_, _ = io.WriteString(w, string(b))
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	b, err := json.Marshal(v)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(b)
}
