package escalation

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"service-foodrescue/internal/logx"
)

type fireRecorder struct {
	mu    sync.Mutex
	ids   []string
	fired chan string
}

func newFireRecorder() *fireRecorder {
	return &fireRecorder{fired: make(chan string, 16)}
}

func (f *fireRecorder) fire(_ context.Context, alertID string) {
	f.mu.Lock()
	f.ids = append(f.ids, alertID)
	f.mu.Unlock()
	f.fired <- alertID
}

func (f *fireRecorder) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.ids)
}

func (f *fireRecorder) wait(t *testing.T) string {
	t.Helper()
	select {
	case id := <-f.fired:
		return id
	case <-time.After(time.Second):
		t.Fatal("timer did not fire")
		return ""
	}
}

func TestScheduler_FiresAfterDelay(t *testing.T) {
	t.Parallel()

	rec := newFireRecorder()
	s := New(5*time.Millisecond, logx.Nop())
	defer s.Close()
	s.Bind(rec.fire)

	s.Arm("al-1")
	require.True(t, s.Pending("al-1"))
	require.Equal(t, "al-1", rec.wait(t))
	require.False(t, s.Pending("al-1"))
}

func TestScheduler_DisarmPreventsFire(t *testing.T) {
	t.Parallel()

	rec := newFireRecorder()
	s := New(10*time.Millisecond, logx.Nop())
	defer s.Close()
	s.Bind(rec.fire)

	s.Arm("al-1")
	s.Disarm("al-1")
	require.False(t, s.Pending("al-1"))

	time.Sleep(30 * time.Millisecond)
	require.Zero(t, rec.count())
}

func TestScheduler_RearmReplacesTimer(t *testing.T) {
	t.Parallel()

	rec := newFireRecorder()
	s := New(20*time.Millisecond, logx.Nop())
	defer s.Close()
	s.Bind(rec.fire)

	s.Arm("al-1")
	s.Arm("al-1")

	require.Equal(t, "al-1", rec.wait(t))
	time.Sleep(40 * time.Millisecond)
	require.Equal(t, 1, rec.count())
}

func TestScheduler_DisarmUnknownAlertIsNoop(t *testing.T) {
	t.Parallel()

	s := New(time.Millisecond, logx.Nop())
	defer s.Close()
	s.Bind(newFireRecorder().fire)
	s.Disarm("missing")
}

func TestScheduler_IndependentAlerts(t *testing.T) {
	t.Parallel()

	rec := newFireRecorder()
	s := New(5*time.Millisecond, logx.Nop())
	defer s.Close()
	s.Bind(rec.fire)

	s.Arm("al-1")
	s.Arm("al-2")
	s.Disarm("al-1")

	require.Equal(t, "al-2", rec.wait(t))
	time.Sleep(20 * time.Millisecond)
	require.Equal(t, 1, rec.count())
}

func TestScheduler_CloseStopsTimers(t *testing.T) {
	t.Parallel()

	rec := newFireRecorder()
	s := New(10*time.Millisecond, logx.Nop())
	s.Bind(rec.fire)

	s.Arm("al-1")
	s.Close()

	time.Sleep(30 * time.Millisecond)
	require.Zero(t, rec.count())
	require.False(t, s.Pending("al-1"))
}
