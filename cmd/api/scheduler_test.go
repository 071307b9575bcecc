package main

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type republishFunc func(ctx context.Context) int

func (f republishFunc) Republish(ctx context.Context) int { return f(ctx) }

type purgeFunc func() int

func (f purgeFunc) PurgeExpired() int { return f() }

func TestNewScheduler_RegistersJobs(t *testing.T) {
	var republished, purged int
	c, err := newScheduler(
		republishFunc(func(context.Context) int { republished++; return 2 }),
		purgeFunc(func() int { purged++; return 0 }),
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
	require.NoError(t, err)

	entries := c.Entries()
	require.Len(t, entries, 2)
	for _, e := range entries {
		e.Job.Run()
	}

	assert.Equal(t, 1, republished)
	assert.Equal(t, 1, purged)
}
