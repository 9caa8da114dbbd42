package http

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tair/kitchen-stock/internal/scheduler"
	"github.com/tair/kitchen-stock/pkg/auth"
	"github.com/tair/kitchen-stock/pkg/middleware"
	"github.com/tair/kitchen-stock/pkg/response"
)

// JobHandler exposes manual job triggers
type JobHandler struct {
	registry *scheduler.Registry
}

// NewJobHandler creates a new job handler
func NewJobHandler(registry *scheduler.Registry) *JobHandler {
	return &JobHandler{registry: registry}
}

// RunJob handles POST /api/jobs/{name}/run. The job runs to completion
// within the request, detached from client cancellation.
func (h *JobHandler) RunJob(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	if err := h.registry.RunNow(context.WithoutCancel(r.Context()), name); err != nil {
		response.Error(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Response{
		Success: true,
		Message: "Job " + name + " finished",
	})
}

// ListJobs handles GET /api/jobs
func (h *JobHandler) ListJobs(w http.ResponseWriter, r *http.Request) {
	response.OK(w, http.StatusOK, h.registry.Names())
}

// RegisterRoutes registers job routes
func (h *JobHandler) RegisterRoutes(router *mux.Router, authn *middleware.Authenticator) {
	headChef := authn.Require(auth.RoleHeadChef)
	router.HandleFunc("/api/jobs", headChef(h.ListJobs)).Methods("GET")
	router.HandleFunc("/api/jobs/{name}/run", headChef(h.RunJob)).Methods("POST")
}
