package realtime

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"service-foodrescue/internal/domain"
	"service-foodrescue/internal/logx"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(*http.Request) bool { return true },
}

// inbound is a client-to-server message. Which fields matter depends
// on the action.
type inbound struct {
	Action       string   `json:"action"`
	RestaurantID string   `json:"restaurant_id,omitempty"`
	FoodBankID   string   `json:"foodbank_id,omitempty"`
	DriverID     string   `json:"driver_id,omitempty"`
	AlertID      string   `json:"alert_id,omitempty"`
	Room         string   `json:"room,omitempty"`
	Lat          *float64 `json:"lat,omitempty"`
	Lng          *float64 `json:"lng,omitempty"`
}

// Handler upgrades HTTP requests to WebSocket connections and runs the
// subscription protocol against the hub.
type Handler struct {
	hub    *Hub
	logger logx.Logger
}

// NewHandler builds the /ws handler.
func NewHandler(hub *Hub, logger logx.Logger) *Handler {
	return &Handler{hub: hub, logger: logger}
}

// ServeHTTP upgrades the connection and processes inbound actions until
// the peer disconnects.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", logx.Err(err))
		return
	}

	client := NewClient(uuid.NewString(), conn)
	defer func() {
		h.hub.Drop(client)
		_ = client.Close()
	}()

	if err := client.Send("connected", map[string]string{"client_id": client.ID()}); err != nil {
		return
	}
	h.logger.Debug("websocket client connected", logx.String("client", client.ID()))

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn("websocket read failed",
					logx.String("client", client.ID()),
					logx.Err(err),
				)
			}
			return
		}

		var msg inbound
		if err := json.Unmarshal(raw, &msg); err != nil {
			_ = client.Send("error", map[string]string{"message": "malformed message"})
			continue
		}
		h.dispatch(client, msg)
	}
}

func (h *Handler) dispatch(client *Client, msg inbound) {
	switch msg.Action {
	case "join_restaurant":
		h.join(client, RestaurantTopic(msg.RestaurantID), msg.RestaurantID)
	case "join_foodbank":
		h.join(client, FoodBankTopic(msg.FoodBankID), msg.FoodBankID)
	case "join_driver":
		h.join(client, DriverTopic(msg.DriverID), msg.DriverID)
	case "join_alert":
		h.join(client, AlertTopic(msg.AlertID), msg.AlertID)
	case "leave_room":
		if msg.Room != "" {
			h.hub.Leave(client, msg.Room)
			_ = client.Send("left", map[string]string{"room": msg.Room})
		}
	case "ping":
		_ = client.Send("pong", nil)
	case "location_update":
		h.locationUpdate(client, msg)
	default:
		_ = client.Send("error", map[string]string{"message": "unknown action: " + msg.Action})
	}
}

func (h *Handler) join(client *Client, topic, id string) {
	if id == "" {
		_ = client.Send("error", map[string]string{"message": "missing id"})
		return
	}
	h.hub.Join(client, topic)
	_ = client.Send("joined", map[string]string{"room": topic})
}

// locationUpdate rebroadcasts a driver position to the alert room so
// the restaurant and food bank can follow the delivery.
func (h *Handler) locationUpdate(client *Client, msg inbound) {
	if msg.AlertID == "" || msg.DriverID == "" || msg.Lat == nil || msg.Lng == nil {
		_ = client.Send("error", map[string]string{"message": "missing location fields"})
		return
	}
	h.hub.Publish(AlertTopic(msg.AlertID), "driver_location_update", map[string]any{
		"alert_id":  msg.AlertID,
		"driver_id": msg.DriverID,
		"location":  domain.Coordinates{Lat: *msg.Lat, Lng: *msg.Lng},
	})
}
