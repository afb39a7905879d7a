package router

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dtroode/codepad-server/internal/api/http/handler"
	"github.com/dtroode/codepad-server/internal/api/http/middleware"
	"github.com/dtroode/codepad-server/internal/logger"
	"github.com/dtroode/codepad-server/internal/metrics"
)

// HealthChecker reports whether a backing store is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// Router wires handlers and middleware into a chi mux.
type Router struct {
	editor   *handler.Editor
	auth     *handler.Auth
	session  *middleware.Session
	health   HealthChecker
	gatherer prometheus.Gatherer
	metrics  *metrics.Metrics
	logger   *logger.Logger
}

// New creates new Router instance.
func New(
	editor *handler.Editor,
	auth *handler.Auth,
	session *middleware.Session,
	health HealthChecker,
	gatherer prometheus.Gatherer,
	metrics *metrics.Metrics,
	logger *logger.Logger,
) *Router {
	return &Router{
		editor:   editor,
		auth:     auth,
		session:  session,
		health:   health,
		gatherer: gatherer,
		metrics:  metrics,
		logger:   logger,
	}
}

// Register builds the HTTP handler.
func (rt *Router) Register() http.Handler {
	logging := middleware.NewLogging(rt.logger, rt.metrics)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(logging.Handle)
	r.Use(chimiddleware.Recoverer)

	r.Get("/healthz", rt.healthz)
	r.Handle("/metrics", promhttp.HandlerFor(rt.gatherer, promhttp.HandlerOpts{}))

	r.Group(func(r chi.Router) {
		r.Use(rt.session.Handle)

		r.Get("/", rt.editor.Index)
		r.Get("/codes", rt.editor.Codes)
		r.Get("/new", rt.editor.New)
		r.Get("/editor/{id}", rt.editor.Show)
		r.Post("/editor/{id}", rt.editor.Save)

		r.Post("/send-otp", rt.auth.SendOTP)
		r.Get("/register", rt.auth.RegisterPage)
		r.Post("/register", rt.auth.Register)
		r.Get("/login", rt.auth.LoginPage)
		r.Post("/login", rt.auth.Login)
		r.Get("/login/google", rt.auth.GoogleLogin)
		r.Get("/auth/callback", rt.auth.Callback)
		r.Get("/logout", rt.auth.Logout)
	})

	return r
}

func (rt *Router) healthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := rt.health.Ping(ctx); err != nil {
		rt.logger.Error("Health check failed",
			"error", err.Error())
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
		return
	}

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
