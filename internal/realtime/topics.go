package realtime

// Topic names follow the party-kind:party-id convention.

// RestaurantTopic is the room a restaurant listens on.
func RestaurantTopic(id string) string { return "restaurant:" + id }

// FoodBankTopic is the room a food bank listens on.
func FoodBankTopic(id string) string { return "foodbank:" + id }

// DriverTopic is the room a driver listens on.
func DriverTopic(id string) string { return "driver:" + id }

// AlertTopic is the room observers of a single alert listen on.
func AlertTopic(id string) string { return "alert:" + id }
