package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tair/kitchen-stock/internal/alert"
	"github.com/tair/kitchen-stock/pkg/auth"
	"github.com/tair/kitchen-stock/pkg/middleware"
	"github.com/tair/kitchen-stock/pkg/response"
)

// AlertHandler serves the head chef's inbox
type AlertHandler struct {
	inbox alert.Inbox
}

// NewAlertHandler creates a new alert handler
func NewAlertHandler(inbox alert.Inbox) *AlertHandler {
	return &AlertHandler{inbox: inbox}
}

// Drain handles GET /api/alerts. Returned alerts are removed from the queue.
func (h *AlertHandler) Drain(w http.ResponseWriter, r *http.Request) {
	alerts, err := h.inbox.Drain(r.Context())
	if err != nil {
		response.Error(w, r, err)
		return
	}
	if alerts == nil {
		alerts = []alert.Alert{}
	}
	response.OK(w, http.StatusOK, alerts)
}

// RegisterRoutes registers alert routes
func (h *AlertHandler) RegisterRoutes(router *mux.Router, authn *middleware.Authenticator) {
	router.HandleFunc("/api/alerts", authn.Require(auth.RoleHeadChef)(h.Drain)).Methods("GET")
}
