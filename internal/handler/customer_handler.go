package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Raymond9734/customer-manager/internal/models"
	"github.com/Raymond9734/customer-manager/internal/service"
)

// CustomersBasePath is where the customer API is mounted
const CustomersBasePath = "/api/v1/customers"

// maxBodyBytes bounds request bodies
const maxBodyBytes = 1 << 20

// CustomerHandler handles customer HTTP requests
type CustomerHandler struct {
	customerService service.CustomerService
	logger          *slog.Logger
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(customerService service.CustomerService, logger *slog.Logger) *CustomerHandler {
	return &CustomerHandler{
		customerService: customerService,
		logger:          logger,
	}
}

// Routes registers the customer endpoints on r
func (h *CustomerHandler) Routes(r chi.Router) {
	r.Get("/", h.ListCustomers)
	r.Post("/", h.CreateCustomer)
	r.Get("/{id}", h.GetCustomer)
	r.Put("/{id}", h.UpdateCustomer)
	r.Delete("/{id}", h.DeleteCustomer)
}

// ListCustomers handles GET /api/v1/customers
func (h *CustomerHandler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	records, err := h.customerService.List(r.Context())
	if err != nil {
		handleError(w, err, h.logger)
		return
	}

	if records == nil {
		records = []*models.CustomerRecord{}
	}

	respondSuccess(w, records)
}

// GetCustomer handles GET /api/v1/customers/{id}
func (h *CustomerHandler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := customerID(w, r)
	if !ok {
		return
	}

	record, err := h.customerService.GetByID(r.Context(), id)
	if err != nil {
		handleError(w, err, h.logger)
		return
	}

	respondSuccess(w, record)
}

// CreateCustomer handles POST /api/v1/customers
func (h *CustomerHandler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	record, ok := decodeRecord(w, r)
	if !ok {
		return
	}

	created, err := h.customerService.Create(r.Context(), record)
	if err != nil {
		handleError(w, err, h.logger)
		return
	}

	respondCreated(w, fmt.Sprintf("%s/%d", CustomersBasePath, created.ID), created)
}

// UpdateCustomer handles PUT /api/v1/customers/{id}
func (h *CustomerHandler) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := customerID(w, r)
	if !ok {
		return
	}

	record, ok := decodeRecord(w, r)
	if !ok {
		return
	}

	if _, err := h.customerService.Update(r.Context(), id, record); err != nil {
		handleError(w, err, h.logger)
		return
	}

	respondNoContent(w)
}

// DeleteCustomer handles DELETE /api/v1/customers/{id}
func (h *CustomerHandler) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := customerID(w, r)
	if !ok {
		return
	}

	if err := h.customerService.Delete(r.Context(), id); err != nil {
		handleError(w, err, h.logger)
		return
	}

	respondNoContent(w)
}

// customerID parses the {id} URL parameter, answering 400 when it is not a positive integer
func customerID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "INVALID_ID", "Invalid customer ID")
		return 0, false
	}
	return id, true
}

func decodeRecord(w http.ResponseWriter, r *http.Request) (*models.CustomerRecord, bool) {
	var record models.CustomerRecord

	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&record); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON format")
		return nil, false
	}

	return &record, true
}
