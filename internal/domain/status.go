package domain

// AlertStatus represents the lifecycle stage of a food alert.
type AlertStatus string

// List of possible alert statuses.
const (
	StatusCreated          AlertStatus = "created"
	StatusFoodBankNotified AlertStatus = "foodbank_notified"
	StatusFoodBankAccepted AlertStatus = "foodbank_accepted"
	StatusDriverRequested  AlertStatus = "driver_requested"
	StatusDriverAssigned   AlertStatus = "driver_assigned"
	StatusInTransit        AlertStatus = "in_transit"
	StatusDelivered        AlertStatus = "delivered"
	StatusExpired          AlertStatus = "expired"
	StatusCancelled        AlertStatus = "cancelled"
)

var allowedStatuses = [...]AlertStatus{
	StatusCreated, StatusFoodBankNotified, StatusFoodBankAccepted,
	StatusDriverRequested, StatusDriverAssigned, StatusInTransit,
	StatusDelivered, StatusExpired, StatusCancelled,
}

// Statuses a driver may report while carrying out a delivery.
var driverReportable = [...]AlertStatus{
	StatusInTransit, StatusDelivered, StatusCancelled,
}

// Valid checks if the AlertStatus is a known value.
func (s AlertStatus) Valid() bool {
	for _, v := range allowedStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transition is allowed from s.
func (s AlertStatus) Terminal() bool {
	return s == StatusDelivered || s == StatusExpired || s == StatusCancelled
}

// DriverReportable checks if a driver is allowed to move an alert to s.
func (s AlertStatus) DriverReportable() bool {
	for _, v := range driverReportable {
		if s == v {
			return true
		}
	}
	return false
}
