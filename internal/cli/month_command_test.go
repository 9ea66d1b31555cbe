package cli

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthCommand_Execute(t *testing.T) {
	ctx := context.Background()
	fixNow(t, time.Date(2024, time.March, 12, 9, 0, 0, 0, time.UTC))

	t.Run("should fetch the requested month with its carry-over week", func(t *testing.T) {
		transport := newFakeTransport()
		transport.getFunc = serve(entriesBody(entryRow(9, 42, "2024-03-11", 2, "")))
		root := newTestRoot(transport)

		err := NewMonthCommand(root).Execute(ctx, []string{"2024-03"})

		require.NoError(t, err)
		require.Len(t, transport.gets, 1)
		assert.Equal(t, "/time_entries.json", transport.gets[0].path)
		assert.Equal(t, "2024-02-23", transport.gets[0].query.Get("from"))
		assert.Equal(t, "2024-03-31", transport.gets[0].query.Get("to"))
	})

	t.Run("should default to the current month", func(t *testing.T) {
		transport := newFakeTransport()
		transport.getFunc = serve(entriesBody())
		root := newTestRoot(transport)

		err := NewMonthCommand(root).Execute(ctx, nil)

		require.NoError(t, err)
		require.Len(t, transport.gets, 1)
		assert.Equal(t, "2024-03-31", transport.gets[0].query.Get("to"))
	})

	t.Run("should not fetch an already loaded month again", func(t *testing.T) {
		transport := newFakeTransport()
		transport.getFunc = serve(entriesBody())
		root := newTestRoot(transport)
		cmd := NewMonthCommand(root)

		require.NoError(t, cmd.Execute(ctx, []string{"2024-03"}))
		require.NoError(t, cmd.Execute(ctx, []string{"2024-03"}))

		assert.Len(t, transport.gets, 1)
	})

	t.Run("should reject a malformed month", func(t *testing.T) {
		root := newTestRoot(newFakeTransport())

		err := NewMonthCommand(root).Execute(ctx, []string{"March 2024"})

		require.Error(t, err)
	})
}
