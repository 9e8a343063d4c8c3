package http

import (
	"net/http"

	"github.com/mauv0809/role-ladder/internal/admin"
	"github.com/mauv0809/role-ladder/internal/club"
	"github.com/mauv0809/role-ladder/internal/config"
	"github.com/mauv0809/role-ladder/internal/metrics"
	"github.com/mauv0809/role-ladder/internal/processor"
	"github.com/mauv0809/role-ladder/internal/timestamp"
)

type Server struct {
	Store          club.ClubStore
	Admins         admin.AdminService
	Processor      *processor.Processor
	Normalizer     *timestamp.Normalizer
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Cfg            config.Config
	Router         *http.ServeMux

	logins *loginLimiter
}
