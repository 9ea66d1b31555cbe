package cli

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReloadCommand_Execute(t *testing.T) {
	ctx := context.Background()
	fixNow(t, time.Date(2024, time.March, 12, 9, 0, 0, 0, time.UTC))
	today := time.Date(2024, time.March, 12, 0, 0, 0, 0, time.UTC)

	t.Run("should drop local changes and fetch the month again", func(t *testing.T) {
		transport := newFakeTransport()
		transport.getFunc = serve(entriesBody(entryRow(9, 42, "2024-03-12", 2, "")))
		root := newTestRoot(transport)
		require.NoError(t, root.manager.SelectDay(ctx, today))

		root.manager.EntriesOn(today)[0].ChangeHours(1)
		require.True(t, root.manager.HasChanges())

		err := NewReloadCommand(root).Execute(ctx, nil)

		require.NoError(t, err)
		assert.False(t, root.manager.HasChanges())
		entries := root.manager.EntriesOn(today)
		require.Len(t, entries, 1)
		assert.Equal(t, 2.0, entries[0].Hours)

		fetches := 0
		for _, get := range transport.gets {
			if get.path == "/time_entries.json" {
				fetches++
			}
		}
		assert.Equal(t, 2, fetches)
	})

	t.Run("should load the current month when no day was selected", func(t *testing.T) {
		transport := newFakeTransport()
		transport.getFunc = serve(entriesBody())
		root := newTestRoot(transport)

		err := NewReloadCommand(root).Execute(ctx, nil)

		require.NoError(t, err)
		require.NotEmpty(t, transport.gets)
		assert.Equal(t, "2024-02-23", transport.gets[0].query.Get("from"))
	})
}
