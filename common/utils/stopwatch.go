package utils

import (
	"strconv"
	"strings"
	"time"
)

// Stopwatch times named sections of the tick for ad hoc profiling.
type Stopwatch struct {
	name    string
	order   []string
	started map[string]time.Time
	elapsed map[string]time.Duration
}

func MakeStopwatch(name string) Stopwatch {
	return Stopwatch{
		name:    name,
		order:   make([]string, 0),
		started: make(map[string]time.Time),
		elapsed: make(map[string]time.Duration),
	}
}

func (w *Stopwatch) Start(section string) {
	if _, seen := w.elapsed[section]; !seen {
		w.order = append(w.order, section)
	}
	w.started[section] = time.Now()
}

func (w *Stopwatch) Stop(section string) {
	begin, ok := w.started[section]
	if !ok {
		return
	}
	w.elapsed[section] += time.Since(begin)
}

func (w *Stopwatch) String() string {
	parts := make([]string, 0, len(w.order))
	for _, section := range w.order {
		parts = append(parts, section+"="+strconv.FormatInt(w.elapsed[section].Microseconds(), 10)+"µs")
	}
	return w.name + " " + strings.Join(parts, " ")
}
