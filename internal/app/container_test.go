package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

func resetFlags(t *testing.T) {
	t.Helper()
	old := pflag.CommandLine
	pflag.CommandLine = pflag.NewFlagSet(os.Args[0], pflag.ContinueOnError)
	t.Cleanup(func() {
		pflag.CommandLine = old
	})
}

// One container per test binary: the domain counters register on the
// default Prometheus registry.
func TestMustBuildContainer_MemoryBackend(t *testing.T) {
	resetFlags(t)
	t.Setenv("STORE_BACKEND", "memory")
	t.Setenv("PORT", "8081")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var fatal string
	b := NewContainerBuilder().WithLogFatalf(func(format string, args ...interface{}) {
		fatal = format
		t.Fatalf("unexpected fatal: "+format, args...)
	})

	container := b.MustBuild(ctx)
	require.Empty(t, fatal)

	err := container.Invoke(func(server *http.Server) {
		require.Equal(t, ":8081", server.Addr)

		rr := httptest.NewRecorder()
		server.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/ping", nil))
		require.Equal(t, http.StatusOK, rr.Code)
	})
	require.NoError(t, err)
}
