package domain

import "time"

// FoodItem is a single line of a donation.
type FoodItem struct {
	Label     string     `json:"label"`
	Count     int        `json:"count"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// Alert represents one donation-to-delivery case.
type Alert struct {
	Meta
	RestaurantID  string      `json:"restaurant_id"`
	FoodBankID    string      `json:"foodbank_id,omitempty"`
	DriverID      string      `json:"driver_id,omitempty"`
	Status        AlertStatus `json:"status"`
	Items         []FoodItem  `json:"food_items"`
	TotalQuantity int         `json:"total_quantity"`
	Notes         string      `json:"notes,omitempty"`
	ExpiresAt     time.Time   `json:"expires_at"`
	DeliveredAt   *time.Time  `json:"delivered_at,omitempty"`

	// NotifiedFoodBanks is the ordered list of food banks already tried
	// for this alert. It only ever grows and never holds duplicates.
	NotifiedFoodBanks []string `json:"notified_foodbanks"`
}

// TotalCount sums the item counts of a donation.
func TotalCount(items []FoodItem) int {
	total := 0
	for _, it := range items {
		total += it.Count
	}
	return total
}

// Notified reports whether the food bank was already tried for this alert.
func (a *Alert) Notified(foodBankID string) bool {
	for _, id := range a.NotifiedFoodBanks {
		if id == foodBankID {
			return true
		}
	}
	return false
}

// AppendNotified records a tried food bank, preserving order and uniqueness.
func (a *Alert) AppendNotified(foodBankID string) {
	if a.Notified(foodBankID) {
		return
	}
	a.NotifiedFoodBanks = append(a.NotifiedFoodBanks, foodBankID)
}
