// Package app assembles the kitchen service: HTTP handlers, alert channels,
// locks and the periodic jobs.
package app

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	alerthttp "github.com/tair/kitchen-stock/internal/alert/delivery/http"
	"github.com/tair/kitchen-stock/internal/config"
	inventoryhttp "github.com/tair/kitchen-stock/internal/inventory/delivery/http"
	orderhttp "github.com/tair/kitchen-stock/internal/order/delivery/http"
	"github.com/tair/kitchen-stock/internal/scheduler"
	jobhttp "github.com/tair/kitchen-stock/internal/scheduler/delivery/http"
	"github.com/tair/kitchen-stock/pkg/health"
	"github.com/tair/kitchen-stock/pkg/middleware"
	"github.com/tair/kitchen-stock/pkg/response"
)

// App is the fully wired service.
type App struct {
	Inventory *inventoryhttp.InventoryHandler
	Orders    *orderhttp.OrderHandler
	Alerts    *alerthttp.AlertHandler
	Jobs      *jobhttp.JobHandler
	Scheduler *scheduler.Registry

	authn       *middleware.Authenticator
	httpMetrics *middleware.Metrics
	gatherer    prometheus.Gatherer
	limiter     *middleware.RateLimiter
	health      *health.Checker
	timeout     time.Duration
}

func NewApp(
	cfg *config.Config,
	inventory *inventoryhttp.InventoryHandler,
	orders *orderhttp.OrderHandler,
	alerts *alerthttp.AlertHandler,
	jobs *jobhttp.JobHandler,
	registry *scheduler.Registry,
	authn *middleware.Authenticator,
	httpMetrics *middleware.Metrics,
	gatherer prometheus.Gatherer,
	limiter *middleware.RateLimiter,
	checker *health.Checker,
) *App {
	return &App{
		Inventory:   inventory,
		Orders:      orders,
		Alerts:      alerts,
		Jobs:        jobs,
		Scheduler:   registry,
		authn:       authn,
		httpMetrics: httpMetrics,
		gatherer:    gatherer,
		limiter:     limiter,
		health:      checker,
		timeout:     cfg.Server.RequestTimeout,
	}
}

// Router builds the HTTP surface with the middleware chain, health check and
// metrics endpoint.
func (a *App) Router() http.Handler {
	router := mux.NewRouter()

	mwConfig := middleware.DefaultConfig(a.httpMetrics)
	if a.timeout > 0 {
		mwConfig.TimeoutDuration = a.timeout
	}
	middleware.Register(router, mwConfig)
	if a.limiter != nil {
		router.Use(a.limiter.Middleware)
	}

	a.Inventory.RegisterRoutes(router, a.authn)
	a.Orders.RegisterRoutes(router, a.authn)
	a.Alerts.RegisterRoutes(router, a.authn)
	a.Jobs.RegisterRoutes(router, a.authn)

	router.HandleFunc("/health", a.healthCheck).Methods("GET")
	router.Handle("/metrics", promhttp.HandlerFor(a.gatherer, promhttp.HandlerOpts{}))

	return middleware.CORS(mwConfig, router)
}

func (a *App) healthCheck(w http.ResponseWriter, r *http.Request) {
	report := a.health.Check(r.Context())

	status := http.StatusOK
	if !report.Healthy() {
		status = http.StatusServiceUnavailable
	}
	response.JSON(w, status, response.Response{
		Success: report.Healthy(),
		Message: report.Status,
		Data:    report,
	})
}
