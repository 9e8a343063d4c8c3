package http

import (
	"net/http"

	"github.com/mauv0809/role-ladder/internal/admin"
	"github.com/mauv0809/role-ladder/internal/club"
	"github.com/mauv0809/role-ladder/internal/config"
	"github.com/mauv0809/role-ladder/internal/http/handlers"
	"github.com/mauv0809/role-ladder/internal/metrics"
	"github.com/mauv0809/role-ladder/internal/processor"
	"github.com/mauv0809/role-ladder/internal/timestamp"
)

func NewServer(store club.ClubStore, admins admin.AdminService, proc *processor.Processor, normalizer *timestamp.Normalizer, metricsSvc metrics.Metrics, metricsHandler http.Handler, cfg config.Config) *Server {
	server := &Server{
		Store:          store,
		Admins:         admins,
		Processor:      proc,
		Normalizer:     normalizer,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Router:         http.NewServeMux(),
		logins:         newLoginLimiter(cfg.LoginPerMinute, cfg.TrustProxy),
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All API handlers share the same middleware: request logging and the
	// request deadline. Login additionally passes the per-IP limiter.
	api := func(h http.Handler, extra ...Middleware) http.Handler {
		mws := append([]Middleware{requestLogger(s.Metrics), withTimeout(s.Cfg.RequestTimeout)}, extra...)
		return Chain(h, mws...)
	}

	s.Router.Handle("GET /metrics", s.MetricsHandler)
	s.Router.Handle("GET /health", api(handlers.HealthCheckHandler(s.Store)))

	s.Router.Handle("GET /api/players", api(handlers.ListPlayersHandler(s.Store)))
	s.Router.Handle("POST /api/player", api(handlers.AddPlayerHandler(s.Store)))
	s.Router.Handle("DELETE /api/player/{id}", api(handlers.DeletePlayerHandler(s.Store)))
	s.Router.Handle("GET /api/player/{id}/matches", api(handlers.PlayerMatchesHandler(s.Store, s.Normalizer)))

	s.Router.Handle("POST /api/match", api(handlers.CreateMatchHandler(s.Processor)))
	s.Router.Handle("GET /api/stats", api(handlers.StatsHandler(s.Store, s.Normalizer)))
	s.Router.Handle("GET /api/match-dates", api(handlers.MatchDatesHandler(s.Store, s.Normalizer)))
	s.Router.Handle("GET /api/matches/by-date/{date}", api(handlers.MatchesByDateHandler(s.Store, s.Normalizer)))

	s.Router.Handle("POST /api/admin/login", api(handlers.LoginHandler(s.Admins, s.Metrics), s.logins.middleware(s.Metrics)))
	s.Router.Handle("GET /api/admins", api(handlers.ListAdminsHandler(s.Admins)))
	s.Router.Handle("POST /api/admin/create", api(handlers.CreateAdminHandler(s.Admins)))
	s.Router.Handle("DELETE /api/admin/{id}", api(handlers.DeleteAdminHandler(s.Admins)))
	s.Router.Handle("POST /api/admin/log", api(handlers.AppendLogHandler(s.Admins)))
	s.Router.Handle("GET /api/admin/logs", api(handlers.AdminLogsHandler(s.Admins)))
	s.Router.Handle("GET /api/admin/matches", api(handlers.AdminMatchesHandler(s.Store)))
	s.Router.Handle("GET /api/admin/match/{id}", api(handlers.AdminMatchHandler(s.Store)))
	s.Router.Handle("PUT /api/admin/match-full/{id}", api(handlers.UpdateMatchHandler(s.Processor)))
	s.Router.Handle("PUT /api/admin/match/{id}", api(handlers.UpdateMatchHandler(s.Processor)))
	s.Router.Handle("DELETE /api/admin/match/{id}", api(handlers.DeleteMatchHandler(s.Processor)))

	if s.Cfg.StaticDir != "" {
		s.Router.Handle("GET /", http.FileServer(http.Dir(s.Cfg.StaticDir)))
	}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
