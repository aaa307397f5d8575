package realtime

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"service-foodrescue/internal/logx"
)

type recorderConn struct {
	mu     sync.Mutex
	sent   []Envelope
	closed bool
}

func (r *recorderConn) WriteJSON(v any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, v.(Envelope))
	return nil
}

func (r *recorderConn) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	return nil
}

func (r *recorderConn) events() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.sent))
	for _, e := range r.sent {
		out = append(out, e.Event)
	}
	return out
}

func newTestClient(id string) (*Client, *recorderConn) {
	conn := &recorderConn{}
	return NewClient(id, conn), conn
}

func TestHub_PublishReachesOnlyMembers(t *testing.T) {
	t.Parallel()

	hub := NewHub(logx.Nop(), nil)
	member, memberConn := newTestClient("a")
	outsider, outsiderConn := newTestClient("b")

	hub.Join(member, FoodBankTopic("fb-1"))
	hub.Join(outsider, FoodBankTopic("fb-2"))

	n := hub.Publish(FoodBankTopic("fb-1"), "new_alert", map[string]string{"alert_id": "al-1"})

	require.Equal(t, 1, n)
	require.Equal(t, []string{"new_alert"}, memberConn.events())
	require.Empty(t, outsiderConn.events())
}

func TestHub_PublishEmptyRoom(t *testing.T) {
	t.Parallel()

	hub := NewHub(logx.Nop(), nil)
	require.Zero(t, hub.Publish(AlertTopic("nope"), "new_alert", nil))
}

func TestHub_LeaveStopsDelivery(t *testing.T) {
	t.Parallel()

	hub := NewHub(logx.Nop(), nil)
	client, conn := newTestClient("a")
	hub.Join(client, DriverTopic("dr-1"))
	hub.Leave(client, DriverTopic("dr-1"))

	require.Zero(t, hub.Publish(DriverTopic("dr-1"), "delivery_request", nil))
	require.Empty(t, conn.events())
}

func TestHub_DropRemovesAllSubscriptions(t *testing.T) {
	t.Parallel()

	hub := NewHub(logx.Nop(), nil)
	client, conn := newTestClient("a")
	hub.Join(client, RestaurantTopic("r-1"))
	hub.Join(client, AlertTopic("al-1"))

	hub.Drop(client)

	require.Zero(t, hub.Publish(RestaurantTopic("r-1"), "alert_status_changed", nil))
	require.Zero(t, hub.Publish(AlertTopic("al-1"), "alert_status_changed", nil))
	require.Empty(t, conn.events())
}

func TestHub_DoubleJoinDeliversOnce(t *testing.T) {
	t.Parallel()

	hub := NewHub(logx.Nop(), nil)
	client, conn := newTestClient("a")
	hub.Join(client, AlertTopic("al-1"))
	hub.Join(client, AlertTopic("al-1"))

	require.Equal(t, 1, hub.Publish(AlertTopic("al-1"), "new_alert", nil))
	require.Len(t, conn.events(), 1)
}

func TestHub_ConcurrentJoinPublish(t *testing.T) {
	t.Parallel()

	hub := NewHub(logx.Nop(), nil)
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			client, _ := newTestClient("c")
			hub.Join(client, AlertTopic("al-1"))
			hub.Drop(client)
		}()
		go func() {
			defer wg.Done()
			hub.Publish(AlertTopic("al-1"), "new_alert", nil)
		}()
	}
	wg.Wait()
}
