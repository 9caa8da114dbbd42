package http

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	inventory "github.com/tair/kitchen-stock/internal/inventory/domain"
	"github.com/tair/kitchen-stock/internal/order/domain"
	"github.com/tair/kitchen-stock/internal/order/usecase/command"
	"github.com/tair/kitchen-stock/internal/order/usecase/query"
	"github.com/tair/kitchen-stock/pkg/apperr"
	"github.com/tair/kitchen-stock/pkg/auth"
	"github.com/tair/kitchen-stock/pkg/middleware"
	"github.com/tair/kitchen-stock/pkg/request"
	"github.com/tair/kitchen-stock/pkg/response"
)

// OrderHandler handles HTTP requests for orders
type OrderHandler struct {
	create   *command.CreateOrderHandler
	approve  *command.ApproveOrderHandler
	reject   *command.RejectOrderHandler
	dispatch *command.DispatchOrderHandler
	deliver  *command.DeliverOrderHandler
	get      *query.GetOrderHandler
	list     *query.ListOrdersHandler
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(
	create *command.CreateOrderHandler,
	approve *command.ApproveOrderHandler,
	reject *command.RejectOrderHandler,
	dispatch *command.DispatchOrderHandler,
	deliver *command.DeliverOrderHandler,
	get *query.GetOrderHandler,
	list *query.ListOrdersHandler,
) *OrderHandler {
	return &OrderHandler{
		create:   create,
		approve:  approve,
		reject:   reject,
		dispatch: dispatch,
		deliver:  deliver,
		get:      get,
		list:     list,
	}
}

type orderItemRequest struct {
	ItemID       string       `json:"itemId"`
	ItemName     string       `json:"itemName"`
	SupplierID   string       `json:"supplierId"`
	SupplierName string       `json:"supplierName"`
	Quantity     int          `json:"quantity"`
	ExpiryDate   request.Date `json:"expiryDate"`
}

type createOrderRequest struct {
	SupplierID   string             `json:"supplierId"`
	SupplierName string             `json:"supplierName"`
	PlacedDate   request.Date       `json:"placedDate"`
	DeliveryDate request.Date       `json:"deliveryDate"`
	Items        []orderItemRequest `json:"items"`
}

// CreateOrder handles POST /api/orders
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := request.Decode(r, &req); err != nil {
		response.Error(w, r, err)
		return
	}

	items := make([]inventory.ItemDelta, len(req.Items))
	for i, it := range req.Items {
		items[i] = inventory.ItemDelta{
			ItemID:       it.ItemID,
			ItemName:     it.ItemName,
			SupplierID:   it.SupplierID,
			SupplierName: it.SupplierName,
			Quantity:     it.Quantity,
			ExpiryDate:   it.ExpiryDate.Time,
		}
	}

	order, err := h.create.Handle(r.Context(), command.CreateOrderCommand{
		SupplierID:   req.SupplierID,
		SupplierName: req.SupplierName,
		PlacedDate:   req.PlacedDate.Time,
		DeliveryDate: req.DeliveryDate.Time,
		Items:        items,
	})
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.Response{
		Success: true,
		Message: "Order created successfully",
		Data:    order,
	})
}

// ListOrders handles GET /api/orders
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	var q query.ListOrdersQuery

	n, err := request.OptionalInt(r, "status")
	if err != nil {
		response.Error(w, r, err)
		return
	}
	if n != nil {
		status, ok := domain.StatusFromWire(*n)
		if !ok {
			response.Error(w, r, fmt.Errorf("unknown status %d: %w", *n, apperr.ErrInvalidInput))
			return
		}
		q.Status = &status
	}

	orders, err := h.list.Handle(r.Context(), q)
	h.respondList(w, r, orders, err)
}

// ListApproved handles GET /api/orders/approved
func (h *OrderHandler) ListApproved(w http.ResponseWriter, r *http.Request) {
	orders, err := h.list.Approved(r.Context())
	h.respondList(w, r, orders, err)
}

// ListReady handles GET /api/orders/ready
func (h *OrderHandler) ListReady(w http.ResponseWriter, r *http.Request) {
	orders, err := h.list.Ready(r.Context())
	h.respondList(w, r, orders, err)
}

// MyOrders handles GET /api/orders/my-orders
func (h *OrderHandler) MyOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.list.ByDriver(r.Context(), middleware.ActorID(r.Context()))
	h.respondList(w, r, orders, err)
}

func (h *OrderHandler) respondList(w http.ResponseWriter, r *http.Request, orders []domain.Order, err error) {
	if err != nil {
		response.Error(w, r, err)
		return
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	response.OK(w, http.StatusOK, orders)
}

// GetOrder handles GET /api/orders/{id}
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.get.Handle(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.OK(w, http.StatusOK, order)
}

// Approve handles PUT /api/orders/{id}/approve
func (h *OrderHandler) Approve(w http.ResponseWriter, r *http.Request) {
	order, err := h.approve.Handle(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Response{
		Success: true,
		Message: "Order approved",
		Data:    order,
	})
}

// Reject handles DELETE /api/orders/{id}/reject
func (h *OrderHandler) Reject(w http.ResponseWriter, r *http.Request) {
	if err := h.reject.Handle(r.Context(), mux.Vars(r)["id"]); err != nil {
		response.Error(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Response{
		Success: true,
		Message: "Order rejected",
	})
}

// Dispatch handles PUT /api/orders/{id}/in-transit
func (h *OrderHandler) Dispatch(w http.ResponseWriter, r *http.Request) {
	order, err := h.dispatch.Handle(r.Context(), command.DispatchOrderCommand{
		OrderID:  mux.Vars(r)["id"],
		DriverID: middleware.ActorID(r.Context()),
	})
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Response{
		Success: true,
		Message: "Order in transit",
		Data:    order,
	})
}

// Deliver handles PUT /api/orders/{id}/deliver
func (h *OrderHandler) Deliver(w http.ResponseWriter, r *http.Request) {
	result, err := h.deliver.Handle(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Response{
		Success: true,
		Message: "Order delivered",
		Data:    result,
	})
}

// RegisterRoutes registers all order routes. Fixed paths go before {id}.
func (h *OrderHandler) RegisterRoutes(router *mux.Router, authn *middleware.Authenticator) {
	headChef := authn.Require(auth.RoleHeadChef)
	driver := authn.Require(auth.RoleDeliveryDriver)
	driverOrHeadChef := authn.Require(auth.RoleDeliveryDriver, auth.RoleHeadChef)

	router.HandleFunc("/api/orders", headChef(h.CreateOrder)).Methods("POST")
	router.HandleFunc("/api/orders", headChef(h.ListOrders)).Methods("GET")
	router.HandleFunc("/api/orders/approved", driver(h.ListApproved)).Methods("GET")
	router.HandleFunc("/api/orders/ready", headChef(h.ListReady)).Methods("GET")
	router.HandleFunc("/api/orders/my-orders", driver(h.MyOrders)).Methods("GET")
	router.HandleFunc("/api/orders/{id}", driverOrHeadChef(h.GetOrder)).Methods("GET")
	router.HandleFunc("/api/orders/{id}/approve", headChef(h.Approve)).Methods("PUT")
	router.HandleFunc("/api/orders/{id}/reject", headChef(h.Reject)).Methods("DELETE")
	router.HandleFunc("/api/orders/{id}/in-transit", driver(h.Dispatch)).Methods("PUT")
	router.HandleFunc("/api/orders/{id}/deliver", driver(h.Deliver)).Methods("PUT")
}
