// Package progress reports the advancement of an export to an observer:
// the log, an editor listening over socket.io, or both.
package progress

import (
	"log/slog"
	"sync"
)

// Observer receives progress updates. Percent goes from 0 to 100.
type Observer interface {
	Update(percent int, message string)
}

// Func adapts a function to the Observer interface.
type Func func(percent int, message string)

// Update calls f.
func (f Func) Update(percent int, message string) { f(percent, message) }

// Nop discards every update.
type Nop struct{}

// Update does nothing.
func (Nop) Update(int, string) {}

// Log writes every update to a logger.
type Log struct {
	Logger *slog.Logger
}

// Update logs the update at info level.
func (l Log) Update(percent int, message string) {
	l.Logger.Info("Export progress.", "percent", percent, "message", message)
}

// Multi fans updates out to several observers, in order.
func Multi(observers ...Observer) Observer {
	var out multi
	for _, o := range observers {
		if o != nil {
			out = append(out, o)
		}
	}
	return out
}

type multi []Observer

func (m multi) Update(percent int, message string) {
	for _, o := range m {
		o.Update(percent, message)
	}
}

// Recorder keeps every update. It is safe for concurrent use.
type Recorder struct {
	mu      sync.Mutex
	updates []Update
}

// Update is one recorded progress update.
type Update struct {
	Percent int
	Message string
}

// Update records the update.
func (r *Recorder) Update(percent int, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updates = append(r.updates, Update{Percent: percent, Message: message})
}

// Updates returns a copy of the recorded updates.
func (r *Recorder) Updates() []Update {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Update(nil), r.updates...)
}

// Percents returns the recorded percentages in order.
func (r *Recorder) Percents() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]int, len(r.updates))
	for i, u := range r.updates {
		out[i] = u.Percent
	}
	return out
}
