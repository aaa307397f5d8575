package app

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/dig"
)

func TestWorkerRunner_CancelledIsClean(t *testing.T) {
	t.Parallel()

	r := &WorkerRunner{runFn: func(*dig.Container) error {
		return context.Canceled
	}}
	require.NotPanics(t, func() { r.MustRun(dig.New()) })
}

func TestWorkerRunner_FailurePanics(t *testing.T) {
	t.Parallel()

	r := &WorkerRunner{runFn: func(*dig.Container) error {
		return errors.New("boom")
	}}
	require.Panics(t, func() { r.MustRun(dig.New()) })
}
