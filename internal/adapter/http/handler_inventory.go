package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/driveline/driveline/internal/domain"
	"github.com/driveline/driveline/internal/usecase"

	"github.com/gorilla/mux"
)

// InventoryHandler handles HTTP requests for inventory management
type InventoryHandler struct {
	inventoryUseCase *usecase.InventoryUseCase
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(inventoryUseCase *usecase.InventoryUseCase) *InventoryHandler {
	return &InventoryHandler{
		inventoryUseCase: inventoryUseCase,
	}
}

// RegisterRoutes registers inventory routes
func (h *InventoryHandler) RegisterRoutes(router *mux.Router, auth *AuthMiddleware) {
	router.HandleFunc("/api/admin/add-car", auth.Require(h.AddCar)).Methods("POST")
	router.HandleFunc("/api/admin/update-car/{id}", auth.Require(h.UpdateCar)).Methods("PUT")
	router.HandleFunc("/api/admin/delete-car/{id}", auth.Require(h.DeleteCar)).Methods("DELETE")

	router.HandleFunc("/api/cars", h.ListCars).Methods("GET")
	router.HandleFunc("/api/cars/{id}", h.GetCar).Methods("GET")
}

// AddCar handles adding a car to inventory
func (h *InventoryHandler) AddCar(w http.ResponseWriter, r *http.Request) {
	var req usecase.CreateCarRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "Invalid request body")
		return
	}

	car, err := h.inventoryUseCase.AddCar(r.Context(), req, AdminIDFromContext(r.Context()))
	if err != nil {
		if strings.Contains(err.Error(), "validation failed") {
			writeBadRequest(w, err.Error())
			return
		}
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"car":     car,
	})
}

// GetCar handles retrieving a single car
func (h *InventoryHandler) GetCar(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	carID := vars["id"]

	if carID == "" {
		writeBadRequest(w, "Car ID is required")
		return
	}

	car, err := h.inventoryUseCase.GetCar(r.Context(), carID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"car":     car,
	})
}

// ListCars handles listing cars with filters
func (h *InventoryHandler) ListCars(w http.ResponseWriter, r *http.Request) {
	filter := domain.CarFilter{}

	if status := r.URL.Query().Get("status"); status != "" {
		s := domain.CarStatus(status)
		filter.Status = &s
	}
	if make := r.URL.Query().Get("make"); make != "" {
		filter.Make = &make
	}
	if soldStr := r.URL.Query().Get("sold"); soldStr != "" {
		if sold, err := strconv.ParseBool(soldStr); err == nil {
			filter.Sold = &sold
		}
	}
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil {
			filter.Limit = limit
		}
	}
	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		if offset, err := strconv.Atoi(offsetStr); err == nil {
			filter.Offset = offset
		}
	}

	cars, total, err := h.inventoryUseCase.ListCars(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}

	if cars == nil {
		cars = []*domain.Car{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"cars":    cars,
		"total":   total,
		"limit":   filter.Limit,
		"offset":  filter.Offset,
	})
}

// UpdateCar handles partial car updates. Fields absent from the body are
// left untouched; only real changes land in the audit trail.
func (h *InventoryHandler) UpdateCar(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	carID := vars["id"]

	if carID == "" {
		writeBadRequest(w, "Car ID is required")
		return
	}

	var proposed domain.CarUpdate
	if err := json.NewDecoder(r.Body).Decode(&proposed); err != nil {
		writeBadRequest(w, "Invalid request body")
		return
	}

	car, err := h.inventoryUseCase.UpdateCar(r.Context(), carID, proposed, AdminIDFromContext(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"car":     car,
	})
}

// DeleteCar handles removing a car from inventory
func (h *InventoryHandler) DeleteCar(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	carID := vars["id"]

	if carID == "" {
		writeBadRequest(w, "Car ID is required")
		return
	}

	if err := h.inventoryUseCase.DeleteCar(r.Context(), carID, AdminIDFromContext(r.Context())); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Car deleted",
	})
}
