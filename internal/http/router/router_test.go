package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"service-foodrescue/internal/http/handlers"
	"service-foodrescue/internal/http/router"
	"service-foodrescue/internal/logx"
	"service-foodrescue/internal/repository"
	"service-foodrescue/internal/service/alert"
	"service-foodrescue/internal/service/party"
	"service-foodrescue/internal/store"
)

type nopTimers struct{}

func (nopTimers) Arm(string)    {}
func (nopTimers) Disarm(string) {}

func newHandler(rl router.RateLimit) http.Handler {
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

	return router.New(router.Deps{
		Base:      handlers.New(logx.Nop()),
		Alerts:    handlers.NewAlertHandler(logx.Nop(), handlers.NewAlertUsecase(engine), handlers.NewPartyUsecase(parties)),
		Parties:   handlers.NewPartyHandler(logx.Nop(), handlers.NewPartyUsecase(parties)),
		Utility:   handlers.NewUtilityHandler(logx.Nop(), nil),
		Logger:    logx.Nop(),
		RateLimit: rl,
	})
}

func TestRouter_Ping(t *testing.T) {
	h := newHandler(router.RateLimit{})

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.Equal(t, http.StatusOK, rr.Code)
}

func TestRouter_UnknownRouteIsJSON404(t *testing.T) {
	h := newHandler(router.RateLimit{})

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/nope", nil))
	require.Equal(t, http.StatusNotFound, rr.Code)
	require.Contains(t, rr.Header().Get("Content-Type"), "application/json")
}

func TestRouter_MetricsExposed(t *testing.T) {
	h := newHandler(router.RateLimit{})

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rr.Code)
}

func TestRouter_AlertsRouteWired(t *testing.T) {
	h := newHandler(router.RateLimit{})

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/alerts", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	require.JSONEq(t, "[]", rr.Body.String())
}

func TestRouter_RateLimitOnAPI(t *testing.T) {
	h := newHandler(router.RateLimit{Enabled: true, Limit: 2, Window: time.Minute})

	var last int
	for i := 0; i < 5; i++ {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/alerts", nil)
		req.RemoteAddr = "10.1.2.3:555"
		h.ServeHTTP(rr, req)
		last = rr.Code
	}
	require.Equal(t, http.StatusTooManyRequests, last)
}
