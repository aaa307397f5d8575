package domain

import "time"

// DeliveryRequest is created once a driver is matched to an alert.
// It is owned by the lifecycle engine: created on assignment and
// updated as the driver reports progress.
type DeliveryRequest struct {
	Meta
	AlertID             string        `json:"alert_id"`
	DriverID            string        `json:"driver_id"`
	PickupAddress       string        `json:"pickup_address"`
	DeliveryAddress     string        `json:"delivery_address"`
	PickupCoordinates   *Coordinates  `json:"pickup_coordinates,omitempty"`
	DeliveryCoordinates *Coordinates  `json:"delivery_coordinates,omitempty"`
	EstimatedDuration   time.Duration `json:"estimated_duration"`
	ActualPickupTime    *time.Time    `json:"actual_pickup_time,omitempty"`
	ActualDeliveryTime  *time.Time    `json:"actual_delivery_time,omitempty"`
}
