package lifecycle

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShutdownRunsHooksInReverseOrder(t *testing.T) {
	m := New(time.Second, nil)

	var order []string
	for _, name := range []string{"db", "cache", "server"} {
		name := name
		m.Register(name, func(context.Context) error {
			order = append(order, name)
			return nil
		})
	}

	require.NoError(t, m.Shutdown(context.Background()))
	assert.Equal(t, []string{"server", "cache", "db"}, order)
}

func TestShutdownContinuesPastFailingHook(t *testing.T) {
	m := New(time.Second, nil)

	errBroken := errors.New("connection already closed")
	var stopped []string
	m.Register("db", func(context.Context) error {
		stopped = append(stopped, "db")
		return nil
	})
	m.Register("cache", func(context.Context) error {
		return errBroken
	})
	m.Register("server", func(context.Context) error {
		stopped = append(stopped, "server")
		return nil
	})

	err := m.Shutdown(context.Background())
	require.ErrorIs(t, err, errBroken)
	assert.Contains(t, err.Error(), "cache")
	assert.Equal(t, []string{"server", "db"}, stopped)
}

func TestShutdownAppliesTimeout(t *testing.T) {
	m := New(50*time.Millisecond, nil)

	m.Register("slow", func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})

	start := time.Now()
	err := m.Shutdown(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)
}

func TestRegisterIgnoresNilHook(t *testing.T) {
	m := New(time.Second, nil)
	m.Register("nothing", nil)
	require.NoError(t, m.Shutdown(context.Background()))
}
