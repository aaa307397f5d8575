package config

import "time"

const defaultPort = 8080

var defaultDB = DB{
	Host: "127.0.0.1",
	Port: "5432",
	User: "myuser",
	Pass: "mypassword",
	Name: "foodrescue",
}

var defaultStore = Store{Backend: "memory"}

var defaultEscalation = Escalation{Delay: 10 * time.Minute}

var defaultDonation = Donation{TTL: 24 * time.Hour}

var defaultDelivery = Delivery{EstimatedDuration: 30 * time.Minute}

var defaultGeocode = Geocode{
	BaseURL:     "https://nominatim.openstreetmap.org",
	UserAgent:   "service-foodrescue/1.0",
	MaxAttempts: 4,
	BaseDelay:   150 * time.Millisecond,
	MaxDelay:    2 * time.Second,
	Timeout:     5 * time.Second,
}

var defaultRateLimit = RateLimit{
	Enabled: true,
	Limit:   60,
	Window:  time.Minute,
}

// DefaultPort returns the default port.
func DefaultPort() int { return defaultPort }

// DefaultDB returns the default Postgres settings.
func DefaultDB() DB { return defaultDB }

// DefaultStore returns the default store backend.
func DefaultStore() Store { return defaultStore }

// DefaultEscalation returns the default escalation settings.
func DefaultEscalation() Escalation { return defaultEscalation }

// DefaultDonation returns the default donation window.
func DefaultDonation() Donation { return defaultDonation }

// DefaultDelivery returns the default dispatch settings.
func DefaultDelivery() Delivery { return defaultDelivery }

// DefaultGeocode returns the default geocoder gateway settings.
func DefaultGeocode() Geocode { return defaultGeocode }

// DefaultRateLimit returns the default API throttling settings.
func DefaultRateLimit() RateLimit { return defaultRateLimit }
