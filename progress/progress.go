package progress

import (
	"github.com/rs/zerolog"
)

// Tracker receives status events from mesh operators. It is purely
// observational: nothing a tracker does affects the operation it watches.
type Tracker interface {
	// SetStatus reports a status line. A positive depth delta opens a nested
	// step after reporting, a negative one closes it before reporting.
	SetStatus(caller, status string, depthDelta int)
	// SetCount reports count out of total for a long running step.
	SetCount(caller, status string, count, total int)
}

// Nop returns a tracker that drops every event.
func Nop() Tracker {
	return nopTracker{}
}

type nopTracker struct{}

func (nopTracker) SetStatus(string, string, int)      {}
func (nopTracker) SetCount(string, string, int, int) {}

// LogTracker writes status events to a zerolog logger. Status lines are
// logged at info level, counter updates at debug level.
type LogTracker struct {
	log   zerolog.Logger
	depth int
}

// NewLogTracker creates a tracker writing to log.
func NewLogTracker(log zerolog.Logger) *LogTracker {
	return &LogTracker{log: log.With().Str("logger", "progress").Logger()}
}

// SetStatus implements Tracker.
func (t *LogTracker) SetStatus(caller, status string, depthDelta int) {
	if depthDelta < 0 {
		t.depth += depthDelta
		if t.depth < 0 {
			t.depth = 0
		}
	}
	t.log.Info().Str("operator", caller).Int("depth", t.depth).Msg(status)
	if depthDelta > 0 {
		t.depth += depthDelta
	}
}

// SetCount implements Tracker.
func (t *LogTracker) SetCount(caller, status string, count, total int) {
	t.log.Debug().
		Str("operator", caller).
		Int("depth", t.depth).
		Int("count", count).
		Int("total", total).
		Msg(status)
}

// Depth returns the current nesting depth.
func (t *LogTracker) Depth() int {
	return t.depth
}

// Counter reports progress of a step through a tracker every time another
// percentage step of the total has been completed.
type Counter struct {
	tracker Tracker
	caller  string
	status  string
	total   int
	step    int
	count   int
	next    int
}

// NewCounter creates a counter over total items that reports every
// percentageStep percent. The starting state is reported immediately.
func NewCounter(tracker Tracker, caller, status string, total, percentageStep int) *Counter {
	if percentageStep <= 0 {
		percentageStep = 10
	}
	c := &Counter{
		tracker: tracker,
		caller:  caller,
		status:  status,
		total:   total,
		step:    percentageStep,
		next:    percentageStep,
	}
	tracker.SetCount(caller, status, 0, total)
	return c
}

// Increment advances the counter by one.
func (c *Counter) Increment() {
	c.count++
	if c.total <= 0 {
		return
	}
	pct := c.count * 100 / c.total
	if pct < c.next && c.count != c.total {
		return
	}
	for c.next <= pct {
		c.next += c.step
	}
	c.tracker.SetCount(c.caller, c.status, c.count, c.total)
}

// Count returns the number of increments so far.
func (c *Counter) Count() int {
	return c.count
}
