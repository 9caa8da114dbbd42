package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tair/kitchen-stock/internal/inventory/domain"
	"github.com/tair/kitchen-stock/internal/inventory/usecase/command"
	"github.com/tair/kitchen-stock/internal/inventory/usecase/query"
	"github.com/tair/kitchen-stock/pkg/auth"
	"github.com/tair/kitchen-stock/pkg/middleware"
	"github.com/tair/kitchen-stock/pkg/request"
	"github.com/tair/kitchen-stock/pkg/response"
)

// InventoryHandler handles HTTP requests for the stock ledger
type InventoryHandler struct {
	addStock     *command.AddStockHandler
	removeStock  *command.RemoveStockHandler
	updateRecord *command.UpdateStockRecordHandler
	purgeExpired *command.PurgeExpiredHandler
	listStock    *query.ListStockHandler
	getRecord    *query.GetStockRecordHandler
	history      *query.ChangeHistoryHandler
	getChange    *query.GetChangeHandler
	listExpired  *query.ListExpiredHandler
	aggregate    *query.AggregateStockHandler
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(
	addStock *command.AddStockHandler,
	removeStock *command.RemoveStockHandler,
	updateRecord *command.UpdateStockRecordHandler,
	purgeExpired *command.PurgeExpiredHandler,
	listStock *query.ListStockHandler,
	getRecord *query.GetStockRecordHandler,
	history *query.ChangeHistoryHandler,
	getChange *query.GetChangeHandler,
	listExpired *query.ListExpiredHandler,
	aggregate *query.AggregateStockHandler,
) *InventoryHandler {
	return &InventoryHandler{
		addStock:     addStock,
		removeStock:  removeStock,
		updateRecord: updateRecord,
		purgeExpired: purgeExpired,
		listStock:    listStock,
		getRecord:    getRecord,
		history:      history,
		getChange:    getChange,
		listExpired:  listExpired,
		aggregate:    aggregate,
	}
}

type itemRequest struct {
	ItemID       string       `json:"itemId"`
	ItemName     string       `json:"itemName"`
	SupplierID   string       `json:"supplierId"`
	SupplierName string       `json:"supplierName"`
	Quantity     int          `json:"quantity"`
	ExpiryDate   request.Date `json:"expiryDate"`
}

func (i itemRequest) toDelta() domain.ItemDelta {
	return domain.ItemDelta{
		ItemID:       i.ItemID,
		ItemName:     i.ItemName,
		SupplierID:   i.SupplierID,
		SupplierName: i.SupplierName,
		Quantity:     i.Quantity,
		ExpiryDate:   i.ExpiryDate.Time,
	}
}

func decodeItems(r *http.Request) ([]domain.ItemDelta, error) {
	var req []itemRequest
	if err := request.Decode(r, &req); err != nil {
		return nil, err
	}
	items := make([]domain.ItemDelta, len(req))
	for i, it := range req {
		items[i] = it.toDelta()
	}
	return items, nil
}

// AddStock handles POST /api/inventory/insert
func (h *InventoryHandler) AddStock(w http.ResponseWriter, r *http.Request) {
	items, err := decodeItems(r)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	entry, err := h.addStock.Handle(r.Context(), command.AddStockCommand{
		Items:   items,
		ActorID: middleware.ActorID(r.Context()),
	})
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.Response{
		Success: true,
		Message: "Stock added successfully",
		Data:    entry,
	})
}

// RemoveStock handles POST /api/inventory/remove
func (h *InventoryHandler) RemoveStock(w http.ResponseWriter, r *http.Request) {
	items, err := decodeItems(r)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	entry, err := h.removeStock.Handle(r.Context(), command.RemoveStockCommand{
		Items:   items,
		ActorID: middleware.ActorID(r.Context()),
	})
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Response{
		Success: true,
		Message: "Stock removed successfully",
		Data:    entry,
	})
}

// ListStock handles GET /api/inventory
func (h *InventoryHandler) ListStock(w http.ResponseWriter, r *http.Request) {
	q := query.ListStockQuery{ItemName: r.URL.Query().Get("itemName")}

	var err error
	if q.MinQuantity, err = request.OptionalInt(r, "minQuantity"); err != nil {
		response.Error(w, r, err)
		return
	}
	if q.MaxQuantity, err = request.OptionalInt(r, "maxQuantity"); err != nil {
		response.Error(w, r, err)
		return
	}
	if q.ExpiryDateFrom, err = request.OptionalDate(r, "expiryDateFrom"); err != nil {
		response.Error(w, r, err)
		return
	}
	if q.ExpiryDateTo, err = request.OptionalDate(r, "expiryDateTo"); err != nil {
		response.Error(w, r, err)
		return
	}

	records, err := h.listStock.Handle(r.Context(), q)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.OK(w, http.StatusOK, records)
}

// GetStockRecord handles GET /api/inventory/{id}
func (h *InventoryHandler) GetStockRecord(w http.ResponseWriter, r *http.Request) {
	record, err := h.getRecord.Handle(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.OK(w, http.StatusOK, record)
}

// UpdateStockRecord handles PUT /api/inventory/{id}
func (h *InventoryHandler) UpdateStockRecord(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if err := request.Decode(r, &req); err != nil {
		response.Error(w, r, err)
		return
	}

	d := req.toDelta()
	record, err := h.updateRecord.Handle(r.Context(), command.UpdateStockRecordCommand{
		ID: mux.Vars(r)["id"],
		Replacement: domain.StockRecord{
			ItemID:       d.ItemID,
			ItemName:     d.ItemName,
			SupplierID:   d.SupplierID,
			SupplierName: d.SupplierName,
			Quantity:     d.Quantity,
			ExpiryDate:   d.ExpiryDate,
		},
	})
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Response{
		Success: true,
		Message: "Stock record updated successfully",
		Data:    record,
	})
}

// ChangeHistory handles GET /api/inventory/change-history
func (h *InventoryHandler) ChangeHistory(w http.ResponseWriter, r *http.Request) {
	entries, err := h.history.Handle(r.Context(), query.ChangeHistoryQuery{})
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.OK(w, http.StatusOK, entries)
}

// GetChange handles GET /api/inventory/change-history/{id}
func (h *InventoryHandler) GetChange(w http.ResponseWriter, r *http.Request) {
	entry, err := h.getChange.Handle(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.OK(w, http.StatusOK, entry)
}

// ExpiredItems handles GET /api/inventory/expired-items
func (h *InventoryHandler) ExpiredItems(w http.ResponseWriter, r *http.Request) {
	records, err := h.listExpired.Handle(r.Context())
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.OK(w, http.StatusOK, records)
}

// PurgeExpired handles DELETE /api/inventory/expired-items
func (h *InventoryHandler) PurgeExpired(w http.ResponseWriter, r *http.Request) {
	n, err := h.purgeExpired.Handle(r.Context())
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Response{
		Success: true,
		Message: "Expired items removed",
		Data:    map[string]int64{"deleted": n},
	})
}

// Aggregate handles GET /api/inventory/aggregate
func (h *InventoryHandler) Aggregate(w http.ResponseWriter, r *http.Request) {
	aggs, err := h.aggregate.Handle(r.Context())
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.OK(w, http.StatusOK, aggs)
}

// RegisterRoutes registers all inventory routes. Fixed paths go before {id}.
func (h *InventoryHandler) RegisterRoutes(router *mux.Router, authn *middleware.Authenticator) {
	kitchen := authn.Require(auth.RoleChef, auth.RoleHeadChef)
	anyStaff := authn.Require(auth.RoleDeliveryDriver, auth.RoleChef, auth.RoleHeadChef)
	headChef := authn.Require(auth.RoleHeadChef)

	router.HandleFunc("/api/inventory/insert", anyStaff(h.AddStock)).Methods("POST")
	router.HandleFunc("/api/inventory/remove", kitchen(h.RemoveStock)).Methods("POST")
	router.HandleFunc("/api/inventory/change-history", kitchen(h.ChangeHistory)).Methods("GET")
	router.HandleFunc("/api/inventory/change-history/{id}", kitchen(h.GetChange)).Methods("GET")
	router.HandleFunc("/api/inventory/expired-items", headChef(h.ExpiredItems)).Methods("GET")
	router.HandleFunc("/api/inventory/expired-items", headChef(h.PurgeExpired)).Methods("DELETE")
	router.HandleFunc("/api/inventory/aggregate", headChef(h.Aggregate)).Methods("GET")
	router.HandleFunc("/api/inventory", kitchen(h.ListStock)).Methods("GET")
	router.HandleFunc("/api/inventory/{id}", kitchen(h.GetStockRecord)).Methods("GET")
	router.HandleFunc("/api/inventory/{id}", kitchen(h.UpdateStockRecord)).Methods("PUT")
}
