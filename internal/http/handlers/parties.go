package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"service-foodrescue/internal/logx"
)

// PartyHandler handles restaurant, food bank and driver registration
// and lookup.
type PartyHandler struct {
	usecase partyUsecase
	logger  logx.Logger
}

// NewPartyHandler creates a new PartyHandler.
func NewPartyHandler(logger logx.Logger, uc partyUsecase) *PartyHandler {
	return &PartyHandler{usecase: uc, logger: logger}
}

// CreateRestaurant handles POST /api/restaurants.
func (h *PartyHandler) CreateRestaurant(w http.ResponseWriter, r *http.Request) {
	var req createRestaurantRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	created, err := h.usecase.CreateRestaurant(r.Context(), req.toModel())
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusCreated, restaurantToResponse(created))
}

// ListRestaurants handles GET /api/restaurants.
func (h *PartyHandler) ListRestaurants(w http.ResponseWriter, r *http.Request) {
	list, err := h.usecase.Restaurants(r.Context())
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, restaurantsToResponse(list))
}

// GetRestaurant handles GET /api/restaurants/{id}.
func (h *PartyHandler) GetRestaurant(w http.ResponseWriter, r *http.Request) {
	m, err := h.usecase.Restaurant(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, restaurantToResponse(m))
}

// CreateFoodBank handles POST /api/foodbanks.
func (h *PartyHandler) CreateFoodBank(w http.ResponseWriter, r *http.Request) {
	var req createFoodBankRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	created, err := h.usecase.CreateFoodBank(r.Context(), req.toModel())
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusCreated, foodBankToResponse(created))
}

// ListFoodBanks handles GET /api/foodbanks.
func (h *PartyHandler) ListFoodBanks(w http.ResponseWriter, r *http.Request) {
	list, err := h.usecase.FoodBanks(r.Context())
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, foodBanksToResponse(list))
}

// GetFoodBank handles GET /api/foodbanks/{id}.
func (h *PartyHandler) GetFoodBank(w http.ResponseWriter, r *http.Request) {
	m, err := h.usecase.FoodBank(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, foodBankToResponse(m))
}

// CreateDriver handles POST /api/drivers.
func (h *PartyHandler) CreateDriver(w http.ResponseWriter, r *http.Request) {
	var req createDriverRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	created, err := h.usecase.CreateDriver(r.Context(), req.toModel())
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusCreated, driverToResponse(created))
}

// ListDrivers handles GET /api/drivers.
func (h *PartyHandler) ListDrivers(w http.ResponseWriter, r *http.Request) {
	list, err := h.usecase.Drivers(r.Context())
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, driversToResponse(list))
}

// GetDriver handles GET /api/drivers/{id}.
func (h *PartyHandler) GetDriver(w http.ResponseWriter, r *http.Request) {
	m, err := h.usecase.Driver(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, driverToResponse(m))
}

// ListAvailableDrivers handles GET /api/drivers/available.
func (h *PartyHandler) ListAvailableDrivers(w http.ResponseWriter, r *http.Request) {
	list, err := h.usecase.AvailableDrivers(r.Context())
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, driversToResponse(list))
}

// SetDriverAvailability handles PUT /api/drivers/{id}/availability.
func (h *PartyHandler) SetDriverAvailability(w http.ResponseWriter, r *http.Request) {
	var req driverAvailabilityRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	d, err := h.usecase.SetDriverAvailability(r.Context(), chi.URLParam(r, "id"), req.IsAvailable, req.Location)
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, driverToResponse(d))
}
