package handlers

import (
	"net/http"

	"service-foodrescue/internal/domain"
	"service-foodrescue/internal/geo"
	"service-foodrescue/internal/logx"
)

// UtilityHandler exposes the geocoding helpers.
type UtilityHandler struct {
	geocoder geocodeUsecase
	logger   logx.Logger
}

// NewUtilityHandler creates a new UtilityHandler.
func NewUtilityHandler(logger logx.Logger, g geocodeUsecase) *UtilityHandler {
	return &UtilityHandler{geocoder: g, logger: logger}
}

// Geocode handles POST /api/utility/geocode.
func (h *UtilityHandler) Geocode(w http.ResponseWriter, r *http.Request) {
	var req geocodeRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}
	if req.Address == "" {
		writeError(h.logger, w, r, http.StatusBadRequest, "address is required")
		return
	}
	if h.geocoder == nil {
		writeError(h.logger, w, r, http.StatusServiceUnavailable, "geocoder is not configured")
		return
	}

	coords, err := h.geocoder.Geocode(r.Context(), req.Address)
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, geocodeResponse{Address: req.Address, Coordinates: coords})
}

// Distance handles POST /api/utility/distance. Each endpoint is given
// either as coordinates or as an address to resolve.
func (h *UtilityHandler) Distance(w http.ResponseWriter, r *http.Request) {
	var req distanceRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	from, ok := h.resolveEndpoint(w, r, req.From, req.FromAddress)
	if !ok {
		return
	}
	to, ok := h.resolveEndpoint(w, r, req.To, req.ToAddress)
	if !ok {
		return
	}

	writeJSON(h.logger, w, r, http.StatusOK, distanceResponse{DistanceKm: geo.Distance(*from, *to)})
}

func (h *UtilityHandler) resolveEndpoint(w http.ResponseWriter, r *http.Request, coords *domain.Coordinates, address string) (*domain.Coordinates, bool) {
	if coords != nil {
		return coords, true
	}
	if address == "" {
		writeError(h.logger, w, r, http.StatusBadRequest, "each endpoint needs coordinates or an address")
		return nil, false
	}
	if h.geocoder == nil {
		writeError(h.logger, w, r, http.StatusServiceUnavailable, "geocoder is not configured")
		return nil, false
	}
	resolved, err := h.geocoder.Geocode(r.Context(), address)
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return nil, false
	}
	return &resolved, true
}
