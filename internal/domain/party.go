package domain

// Coordinates is a resolved geographic location.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Restaurant represents a donating party.
type Restaurant struct {
	Meta
	Name          string       `json:"name"`
	Email         string       `json:"email"`
	Phone         string       `json:"phone"`
	Address       string       `json:"address"`
	Coordinates   *Coordinates `json:"coordinates,omitempty"`
	ContactPerson string       `json:"contact_person,omitempty"`
	IsActive      bool         `json:"is_active"`
}

// FoodBank represents a donation recipient.
type FoodBank struct {
	Meta
	Name          string       `json:"name"`
	Email         string       `json:"email"`
	Phone         string       `json:"phone"`
	Address       string       `json:"address"`
	Coordinates   *Coordinates `json:"coordinates,omitempty"`
	Capacity      int          `json:"capacity"`
	CurrentLoad   int          `json:"current_load"`
	ContactPerson string       `json:"contact_person,omitempty"`
	IsActive      bool         `json:"is_active"`
}

// AvailableCapacity is advisory only; the lifecycle engine does not enforce it.
func (f *FoodBank) AvailableCapacity() int {
	return f.Capacity - f.CurrentLoad
}

// Driver represents a delivery courier.
type Driver struct {
	Meta
	Name            string       `json:"name"`
	Email           string       `json:"email"`
	Phone           string       `json:"phone"`
	LicenseNumber   string       `json:"license_number"`
	VehicleType     string       `json:"vehicle_type"`
	CurrentLocation *Coordinates `json:"current_location,omitempty"`
	IsAvailable     bool         `json:"is_available"`
	IsActive        bool         `json:"is_active"`
	Rating          float64      `json:"rating"`
}
