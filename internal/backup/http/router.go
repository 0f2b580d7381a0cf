package http

import (
	"log/slog"
	"net/http"
	"time"

	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/aussiebroadwan/entrabackup/api/backup" // Swagger docs
	"github.com/aussiebroadwan/entrabackup/internal/backup/service"
	"github.com/aussiebroadwan/entrabackup/internal/backup/store"
	"github.com/aussiebroadwan/entrabackup/pkg/httpx"
	"github.com/aussiebroadwan/entrabackup/pkg/metricsx"
	"github.com/aussiebroadwan/entrabackup/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	credentials  httpx.BasicCredentials
	metrics      *metricsx.Metrics

	store               store.Store
	BackupService       *service.BackupService
	WebhookService      *service.WebhookService
	SubscriptionService *service.SubscriptionService
}

func NewRouter(
	buildVersion string,
	st store.Store,
	credentials httpx.BasicCredentials,
	metrics *metricsx.Metrics,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		logger:       logger,
		credentials:  credentials,
		metrics:      metrics,
		store:        st,
	}

	// Instrument must sit directly on the mux so r.Pattern is visible to it.
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		r.metrics.Instrument,
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerBackups()
	r.registerWebhook()
	r.registerSubscriptions()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Entra Backup Service API
//	@version		0.1.0
//	@description	Backs up Microsoft Entra ID users into a relational store, restores them through batched Graph calls and records user change notifications in an audit log.
//
//	@contact.name	AussieBroadWAN Team
//	@contact.url	https://github.com/aussiebroadwan/entrabackup
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host			localhost:8080
//	@BasePath		/
//
//	@schemes		http https
//
//	@securityDefinitions.basic	BasicAuth
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// operator wraps h with Basic authentication followed by a per-user limit.
func (r *Router) operator(h http.Handler, limit httpx.RateLimitConfig) http.Handler {
	return httpx.Chain(h,
		httpx.BasicAuthMiddleware(r.credentials),
		httpx.RateLimitByUser(limit),
	)
}

func (r *Router) registerBackups() {
	h := &BackupsHandler{BackupService: r.BackupService}

	// Backup and restore walk or rewrite the whole directory.
	r.Mux.Handle("POST /api/backup-users",
		r.operator(http.HandlerFunc(h.HandleBackupUsers), httpx.DirectoryLimit))
	r.Mux.Handle("POST /api/restore-users/{backupId}",
		r.operator(http.HandlerFunc(h.HandleRestoreUsers), httpx.DirectoryLimit))

	r.Mux.Handle("GET /api/backups",
		r.operator(http.HandlerFunc(h.HandleListBackups), httpx.AdminLimit))
}

func (r *Router) registerWebhook() {
	// Graph cannot send credentials; every event is checked against its clientState.
	r.Mux.Handle("POST /api/webhook",
		httpx.Chain(&WebhookHandler{WebhookService: r.WebhookService},
			httpx.RateLimitByIP(httpx.WebhookLimit),
		),
	)
}

func (r *Router) registerSubscriptions() {
	h := &SubscriptionsHandler{SubscriptionService: r.SubscriptionService}

	r.Mux.Handle("POST /api/create-subscription",
		r.operator(http.HandlerFunc(h.HandleCreate), httpx.AdminLimit))
	r.Mux.Handle("DELETE /api/subscriptions",
		r.operator(http.HandlerFunc(h.HandleDeleteAll), httpx.AdminLimit))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
	if r.metrics != nil {
		r.Mux.Handle("GET /metrics", r.metrics.Handler())
	}
}
