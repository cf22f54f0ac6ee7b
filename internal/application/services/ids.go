package services

import (
	"sync"
	"time"
)

// DateLayout is the calendar date format stored on records
const DateLayout = "2006-01-02"

// Clock supplies the current time
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock
type SystemClock struct{}

// Now returns time.Now
func (SystemClock) Now() time.Time {
	return time.Now()
}

// IDGenerator issues millisecond timestamp ids. Two ids taken within the
// same millisecond would collide, so the generator never issues a value
// lower than or equal to the previous one.
type IDGenerator struct {
	mu    sync.Mutex
	clock Clock
	last  int64
}

// NewIDGenerator creates a generator reading from clock
func NewIDGenerator(clock Clock) *IDGenerator {
	return &IDGenerator{clock: clock}
}

// Next returns the next record id
func (g *IDGenerator) Next() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := g.clock.Now().UnixMilli()
	if id <= g.last {
		id = g.last + 1
	}
	g.last = id
	return id
}

func today(clock Clock) string {
	return clock.Now().Format(DateLayout)
}
