// Package dashboard holds the reorderable dashboard sections and the static stock watchlist.
package dashboard

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/UnknownOlympus/meteogrid/internal/models"
	"github.com/jonboulle/clockwork"
	"golang.org/x/exp/slices"
)

// Section identifiers.
const (
	SectionWeather = "weather"
	SectionStocks  = "stocks"
)

// ErrIndexOutOfRange is returned by Move for an index outside the section list.
var ErrIndexOutOfRange = errors.New("section index out of range")

var weekdays = [...]string{"일", "월", "화", "수", "목", "금", "토"}

var kst = time.FixedZone("KST", 9*60*60)

// Board is the ordered list of dashboard sections. It is safe for concurrent use.
type Board struct {
	mu       sync.RWMutex
	sections []string
	clock    clockwork.Clock
}

// Snapshot is the dashboard state at one instant.
type Snapshot struct {
	Date      string         `json:"date"`
	Sections  []string       `json:"sections"`
	Watchlist []models.Stock `json:"watchlist"`
}

// NewBoard returns a board with the weather section above the stocks section.
func NewBoard(clock clockwork.Clock) *Board {
	return &Board{
		sections: []string{SectionWeather, SectionStocks},
		clock:    clock,
	}
}

// Move takes the section at index from out of the list and inserts it at index to
// of the shortened list. Moving a section onto itself is a no-op.
func (b *Board) Move(from, to int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	n := len(b.sections)
	if from < 0 || from >= n || to < 0 || to >= n {
		return fmt.Errorf("%w: move %d -> %d with %d sections", ErrIndexOutOfRange, from, to, n)
	}
	if from == to {
		return nil
	}

	moved := b.sections[from]
	b.sections = slices.Delete(b.sections, from, from+1)
	b.sections = slices.Insert(b.sections, to, moved)

	return nil
}

// Sections returns a copy of the current order.
func (b *Board) Sections() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return slices.Clone(b.sections)
}

// Snapshot returns today's date in KST, the section order and the watchlist.
func (b *Board) Snapshot() Snapshot {
	return Snapshot{
		Date:      FormatDate(b.clock.Now().In(kst)),
		Sections:  b.Sections(),
		Watchlist: Watchlist(),
	}
}

// Watchlist returns the fixed stock watchlist.
func Watchlist() []models.Stock {
	return []models.Stock{
		{Name: "Apple", Price: 154.65},
		{Name: "Google", Price: 2804.25},
		{Name: "Amazon", Price: 3446.57},
		{Name: "Tesla", Price: 762.32},
		{Name: "Microsoft", Price: 299.87},
	}
}

// FormatDate renders t as "YYYY.MM.DD (요일)".
func FormatDate(t time.Time) string {
	return fmt.Sprintf("%04d.%02d.%02d (%s)", t.Year(), int(t.Month()), t.Day(), weekdays[t.Weekday()])
}
