package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"service-foodrescue/internal/domain"
	"service-foodrescue/internal/logx"
	"service-foodrescue/internal/repository"
)

// AlertHandler handles HTTP requests for donation alerts.
type AlertHandler struct {
	usecase alertUsecase
	parties partyUsecase
	logger  logx.Logger
}

// NewAlertHandler creates a new AlertHandler.
func NewAlertHandler(logger logx.Logger, uc alertUsecase, parties partyUsecase) *AlertHandler {
	return &AlertHandler{usecase: uc, parties: parties, logger: logger}
}

// Create handles POST /api/alerts.
func (h *AlertHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createAlertRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	a, err := h.usecase.Create(r.Context(), req.toInput())
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusCreated, alertToResponse(a))
}

// List handles GET /api/alerts with optional filters.
func (h *AlertHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := repository.AlertFilter{
		Status:       domain.AlertStatus(q.Get("status")),
		RestaurantID: q.Get("restaurant_id"),
		FoodBankID:   q.Get("foodbank_id"),
		DriverID:     q.Get("driver_id"),
	}
	if filter.Status != "" && !filter.Status.Valid() {
		writeError(h.logger, w, r, http.StatusBadRequest, "unknown status filter")
		return
	}

	alerts, err := h.usecase.List(r.Context(), filter)
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, alertsToResponse(alerts))
}

// Get handles GET /api/alerts/{id}. The response embeds contact
// summaries of the involved parties when they resolve.
func (h *AlertHandler) Get(w http.ResponseWriter, r *http.Request) {
	a, err := h.usecase.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}

	detail := alertDetailDTO{alertDTO: alertToResponse(a)}
	if rest, err := h.parties.Restaurant(r.Context(), a.RestaurantID); err == nil {
		detail.Restaurant = &partySummaryDTO{ID: rest.ID, Name: rest.Name, Phone: rest.Phone, Address: rest.Address}
	}
	if a.FoodBankID != "" {
		if fb, err := h.parties.FoodBank(r.Context(), a.FoodBankID); err == nil {
			detail.FoodBank = &partySummaryDTO{ID: fb.ID, Name: fb.Name, Phone: fb.Phone, Address: fb.Address}
		}
	}
	if a.DriverID != "" {
		if d, err := h.parties.Driver(r.Context(), a.DriverID); err == nil {
			detail.Driver = &partySummaryDTO{ID: d.ID, Name: d.Name, Phone: d.Phone}
		}
	}
	writeJSON(h.logger, w, r, http.StatusOK, detail)
}

// Accept handles POST /api/alerts/{id}/accept.
func (h *AlertHandler) Accept(w http.ResponseWriter, r *http.Request) {
	var req acceptAlertRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	a, err := h.usecase.Accept(r.Context(), chi.URLParam(r, "id"), req.FoodBankID)
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, alertToResponse(a))
}

// AssignDriver handles POST /api/alerts/{id}/assign-driver.
func (h *AlertHandler) AssignDriver(w http.ResponseWriter, r *http.Request) {
	var req assignDriverRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	a, err := h.usecase.AssignDriver(r.Context(), chi.URLParam(r, "id"), req.DriverID)
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, alertToResponse(a))
}

// UpdateStatus handles PUT /api/alerts/{id}/status.
func (h *AlertHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req updateAlertStatusRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	a, err := h.usecase.UpdateStatus(r.Context(), chi.URLParam(r, "id"), domain.AlertStatus(req.Status))
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, alertToResponse(a))
}
