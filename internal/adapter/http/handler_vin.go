package http

import (
	"net/http"

	"github.com/driveline/driveline/internal/ports"

	"github.com/gorilla/mux"
)

// VinHandler handles HTTP requests for VIN decoding
type VinHandler struct {
	decoder ports.VinDecoder
}

// NewVinHandler creates a new VIN handler
func NewVinHandler(decoder ports.VinDecoder) *VinHandler {
	return &VinHandler{decoder: decoder}
}

// RegisterRoutes registers VIN routes
func (h *VinHandler) RegisterRoutes(router *mux.Router, auth *AuthMiddleware) {
	router.HandleFunc("/api/admin/decode-vin/{vin}", auth.Require(h.DecodeVIN)).Methods("GET")
}

// DecodeVIN handles VIN lookup. Malformed VINs are rejected before any
// external call is made.
func (h *VinHandler) DecodeVIN(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	vin := vars["vin"]

	vehicle, err := h.decoder.Decode(r.Context(), vin)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"vehicle": vehicle,
	})
}
