package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"service-foodrescue/internal/domain"
	"service-foodrescue/internal/http/handlers"
	"service-foodrescue/internal/logx"
	"service-foodrescue/internal/repository"
	"service-foodrescue/internal/service/alert"
	"service-foodrescue/internal/service/party"
	"service-foodrescue/internal/store"
)

type nopTimers struct{}

func (nopTimers) Arm(string)    {}
func (nopTimers) Disarm(string) {}

type stack struct {
	router    http.Handler
	directory *repository.Directory
}

// newStack wires the handlers over the in-memory store so requests run
// through the same code paths as production.
func newStack(t *testing.T) *stack {
	t.Helper()
	docs := store.NewMemory()
	directory := repository.NewDirectory(docs)

	engine := alert.NewEngine(alert.Deps{
		Alerts:     repository.NewAlertRepo(docs),
		Deliveries: repository.NewDeliveryRepo(docs),
		Directory:  directory,
		Publisher:  alert.DiscardPublisher{},
		Timers:     nopTimers{},
		Logger:     logx.Nop(),
	}, alert.Config{})
	parties := party.NewService(directory, nil, logx.Nop())

	alertHandler := handlers.NewAlertHandler(logx.Nop(), handlers.NewAlertUsecase(engine), handlers.NewPartyUsecase(parties))
	partyHandler := handlers.NewPartyHandler(logx.Nop(), handlers.NewPartyUsecase(parties))

	r := chi.NewRouter()
	r.Post("/api/alerts", alertHandler.Create)
	r.Get("/api/alerts", alertHandler.List)
	r.Get("/api/alerts/{id}", alertHandler.Get)
	r.Post("/api/alerts/{id}/accept", alertHandler.Accept)
	r.Post("/api/alerts/{id}/assign-driver", alertHandler.AssignDriver)
	r.Put("/api/alerts/{id}/status", alertHandler.UpdateStatus)
	r.Post("/api/restaurants", partyHandler.CreateRestaurant)
	r.Post("/api/foodbanks", partyHandler.CreateFoodBank)
	r.Post("/api/drivers", partyHandler.CreateDriver)

	return &stack{router: r, directory: directory}
}

func (s *stack) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)
	return rr
}

func (s *stack) seedParties(t *testing.T) (restaurantID, foodBankID, driverID string) {
	t.Helper()

	rr := s.do(t, http.MethodPost, "/api/restaurants", map[string]any{
		"name":    "Pane e Vino",
		"address": "Alexanderplatz 1, Berlin",
		"coordinates": map[string]float64{"lat": 52.52, "lng": 13.405},
	})
	require.Equal(t, http.StatusCreated, rr.Code)
	var rest map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &rest))

	rr = s.do(t, http.MethodPost, "/api/foodbanks", map[string]any{
		"name":     "Berliner Tafel",
		"address":  "Beusselstr. 44, Berlin",
		"capacity": 500,
		"coordinates": map[string]float64{"lat": 52.53, "lng": 13.32},
	})
	require.Equal(t, http.StatusCreated, rr.Code)
	var fb map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &fb))

	rr = s.do(t, http.MethodPost, "/api/drivers", map[string]any{
		"name":           "Sam",
		"license_number": "B-123456",
	})
	require.Equal(t, http.StatusCreated, rr.Code)
	var d map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &d))

	return rest["id"].(string), fb["id"].(string), d["id"].(string)
}

func TestAlertLifecycleOverHTTP(t *testing.T) {
	t.Parallel()

	s := newStack(t)
	restaurantID, foodBankID, driverID := s.seedParties(t)

	rr := s.do(t, http.MethodPost, "/api/alerts", map[string]any{
		"restaurant_id": restaurantID,
		"food_items": []map[string]any{
			{"label": "bread", "count": 20},
			{"label": "salad", "count": 15},
		},
		"notes": "pick up before 22:00",
	})
	require.Equal(t, http.StatusCreated, rr.Code)

	var created map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	alertID := created["id"].(string)
	require.Equal(t, float64(35), created["total_quantity"])
	require.Equal(t, string(domain.StatusFoodBankNotified), created["status"])

	rr = s.do(t, http.MethodPost, "/api/alerts/"+alertID+"/accept", map[string]any{"foodbank_id": foodBankID})
	require.Equal(t, http.StatusOK, rr.Code)

	rr = s.do(t, http.MethodPost, "/api/alerts/"+alertID+"/assign-driver", map[string]any{"driver_id": driverID})
	require.Equal(t, http.StatusOK, rr.Code)
	var assigned map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &assigned))
	require.Equal(t, string(domain.StatusDriverAssigned), assigned["status"])

	rr = s.do(t, http.MethodPut, "/api/alerts/"+alertID+"/status", map[string]any{"status": "in_transit"})
	require.Equal(t, http.StatusOK, rr.Code)

	rr = s.do(t, http.MethodPut, "/api/alerts/"+alertID+"/status", map[string]any{"status": "delivered"})
	require.Equal(t, http.StatusOK, rr.Code)

	rr = s.do(t, http.MethodGet, "/api/alerts/"+alertID, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var detail map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &detail))
	require.Equal(t, string(domain.StatusDelivered), detail["status"])
	require.NotNil(t, detail["delivered_at"])
	require.Equal(t, "Pane e Vino", detail["restaurant"].(map[string]any)["name"])
	require.Equal(t, "Berliner Tafel", detail["foodbank"].(map[string]any)["name"])
	require.Equal(t, "Sam", detail["driver"].(map[string]any)["name"])
}

func TestAlertCreate_BadRequests(t *testing.T) {
	t.Parallel()

	s := newStack(t)

	rr := s.do(t, http.MethodPost, "/api/alerts", map[string]any{"restaurant_id": "ghost"})
	require.Equal(t, http.StatusBadRequest, rr.Code)

	rr = s.do(t, http.MethodPost, "/api/alerts", map[string]any{
		"restaurant_id": "ghost",
		"food_items":    []map[string]any{{"label": "bread", "count": 5}},
	})
	require.Equal(t, http.StatusNotFound, rr.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/alerts", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAlertAccept_Conflicts(t *testing.T) {
	t.Parallel()

	s := newStack(t)
	restaurantID, foodBankID, _ := s.seedParties(t)

	rr := s.do(t, http.MethodPost, "/api/alerts", map[string]any{
		"restaurant_id": restaurantID,
		"food_items":    []map[string]any{{"label": "bread", "count": 5}},
	})
	require.Equal(t, http.StatusCreated, rr.Code)
	var created map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	alertID := created["id"].(string)

	rr = s.do(t, http.MethodPost, "/api/alerts/"+alertID+"/accept", map[string]any{"foodbank_id": foodBankID})
	require.Equal(t, http.StatusOK, rr.Code)

	// Second accept hits the transition guard.
	rr = s.do(t, http.MethodPost, "/api/alerts/"+alertID+"/accept", map[string]any{"foodbank_id": foodBankID})
	require.Equal(t, http.StatusConflict, rr.Code)
}

func TestAlertList_FilterByStatus(t *testing.T) {
	t.Parallel()

	s := newStack(t)
	restaurantID, _, _ := s.seedParties(t)

	rr := s.do(t, http.MethodPost, "/api/alerts", map[string]any{
		"restaurant_id": restaurantID,
		"food_items":    []map[string]any{{"label": "soup", "count": 10}},
	})
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = s.do(t, http.MethodGet, "/api/alerts?status=foodbank_notified", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &list))
	require.Len(t, list, 1)

	rr = s.do(t, http.MethodGet, "/api/alerts?status=delivered", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &list))
	require.Empty(t, list)

	rr = s.do(t, http.MethodGet, "/api/alerts?status=bogus", nil)
	require.Equal(t, http.StatusBadRequest, rr.Code)
}
