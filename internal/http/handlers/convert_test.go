package handlers

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"service-foodrescue/internal/domain"
)

func TestAlertToResponse_ProjectsEveryField(t *testing.T) {
	t.Parallel()

	created := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	expires := created.Add(24 * time.Hour)
	delivered := created.Add(2 * time.Hour)
	itemExpiry := created.Add(6 * time.Hour)

	a := &domain.Alert{
		RestaurantID: "r-1",
		FoodBankID:   "fb-1",
		DriverID:     "dr-1",
		Status:       domain.StatusDelivered,
		Items: []domain.FoodItem{
			{Label: "bread", Count: 20, ExpiresAt: &itemExpiry},
			{Label: "salad", Count: 15},
		},
		TotalQuantity:     35,
		Notes:             "side door",
		ExpiresAt:         expires,
		DeliveredAt:       &delivered,
		NotifiedFoodBanks: []string{"fb-2", "fb-1"},
	}
	a.ID = "al-1"
	a.CreatedAt = created

	got := alertToResponse(a)
	require.Equal(t, "al-1", got.ID)
	require.Equal(t, "r-1", got.RestaurantID)
	require.Equal(t, "fb-1", got.FoodBankID)
	require.Equal(t, "dr-1", got.DriverID)
	require.Equal(t, string(domain.StatusDelivered), got.Status)
	require.Equal(t, []foodItemDTO{
		{Label: "bread", Count: 20, ExpiresAt: &itemExpiry},
		{Label: "salad", Count: 15},
	}, got.FoodItems)
	require.Equal(t, 35, got.TotalQuantity)
	require.Equal(t, "side door", got.Notes)
	require.Equal(t, created, got.CreatedAt)
	require.Equal(t, expires, got.ExpiresAt)
	require.Equal(t, &delivered, got.DeliveredAt)
	require.Equal(t, []string{"fb-2", "fb-1"}, got.NotifiedFoodBanks)
}

func TestAlertToResponse_FreshAlertSerializesEmptyNotifiedList(t *testing.T) {
	t.Parallel()

	a := &domain.Alert{RestaurantID: "r-1", Status: domain.StatusCreated}
	a.ID = "al-1"

	body, err := json.Marshal(alertToResponse(a))
	require.NoError(t, err)
	require.Contains(t, string(body), `"notified_foodbanks":[]`)
	require.NotContains(t, string(body), `"foodbank_id"`)
	require.NotContains(t, string(body), `"delivered_at"`)
}
