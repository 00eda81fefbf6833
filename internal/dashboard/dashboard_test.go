package dashboard_test

import (
	"sync"
	"testing"
	"time"

	"github.com/UnknownOlympus/meteogrid/internal/dashboard"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBoard() *dashboard.Board {
	return dashboard.NewBoard(clockwork.NewFakeClockAt(time.Date(2024, time.November, 5, 9, 0, 0, 0, time.UTC)))
}

func TestBoard_Move(t *testing.T) {
	t.Run("swap two sections", func(t *testing.T) {
		board := newBoard()

		require.NoError(t, board.Move(0, 1))

		assert.Equal(t, []string{dashboard.SectionStocks, dashboard.SectionWeather}, board.Sections())
	})

	t.Run("move onto itself", func(t *testing.T) {
		board := newBoard()

		require.NoError(t, board.Move(1, 1))

		assert.Equal(t, []string{dashboard.SectionWeather, dashboard.SectionStocks}, board.Sections())
	})

	t.Run("out of range", func(t *testing.T) {
		board := newBoard()

		for _, move := range [][2]int{{-1, 0}, {0, 2}, {2, 0}, {0, -1}} {
			err := board.Move(move[0], move[1])

			require.ErrorIs(t, err, dashboard.ErrIndexOutOfRange)
		}
		assert.Equal(t, []string{dashboard.SectionWeather, dashboard.SectionStocks}, board.Sections())
	})

	t.Run("sections is a copy", func(t *testing.T) {
		board := newBoard()

		sections := board.Sections()
		sections[0] = "mutated"

		assert.Equal(t, dashboard.SectionWeather, board.Sections()[0])
	})

	t.Run("concurrent moves keep both sections", func(t *testing.T) {
		board := newBoard()

		var wg sync.WaitGroup
		for range 50 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_ = board.Move(0, 1)
			}()
		}
		wg.Wait()

		assert.ElementsMatch(t, []string{dashboard.SectionWeather, dashboard.SectionStocks}, board.Sections())
	})
}

func TestBoard_Snapshot(t *testing.T) {
	board := newBoard()
	require.NoError(t, board.Move(0, 1))

	snap := board.Snapshot()

	assert.Equal(t, "2024.11.05 (화)", snap.Date)
	assert.Equal(t, []string{dashboard.SectionStocks, dashboard.SectionWeather}, snap.Sections)
	assert.Len(t, snap.Watchlist, 5)
}

func TestBoard_SnapshotDateInKST(t *testing.T) {
	// 2024-11-05 20:00 UTC is already Wednesday morning in Seoul.
	board := dashboard.NewBoard(clockwork.NewFakeClockAt(time.Date(2024, time.November, 5, 20, 0, 0, 0, time.UTC)))

	assert.Equal(t, "2024.11.06 (수)", board.Snapshot().Date)
}

func TestWatchlist(t *testing.T) {
	list := dashboard.Watchlist()

	require.Len(t, list, 5)
	assert.Equal(t, "Apple", list[0].Name)
	assert.InDelta(t, 154.65, list[0].Price, 1e-9)
	assert.Equal(t, "Microsoft", list[4].Name)
}

func TestFormatDate(t *testing.T) {
	tests := map[string]time.Time{
		"2024.11.03 (일)": time.Date(2024, time.November, 3, 0, 0, 0, 0, time.UTC),
		"2024.11.09 (토)": time.Date(2024, time.November, 9, 23, 59, 0, 0, time.UTC),
		"2025.01.01 (수)": time.Date(2025, time.January, 1, 12, 0, 0, 0, time.UTC),
	}

	for want, in := range tests {
		assert.Equal(t, want, dashboard.FormatDate(in))
	}
}
