package transform

import (
	"sync"
	"time"
)

// Formats is a registry of named date layouts. Layout names used by
// DateLayout and mapping files resolve through a Formats instance; the
// registry is an explicit collaborator rather than hidden global state, with
// DefaultFormats as the shared process-wide instance.
type Formats struct {
	mu      sync.RWMutex
	layouts map[string]string
}

func NewFormats() *Formats {
	f := &Formats{layouts: make(map[string]string)}
	f.Register("iso8601", time.RFC3339)
	f.Register("rfc3339", time.RFC3339)
	f.Register("rfc3339nano", time.RFC3339Nano)
	f.Register("date", "2006-01-02")
	f.Register("datetime", "2006-01-02 15:04:05")
	return f
}

// Register binds a name to a Go reference layout, replacing any previous
// binding.
func (f *Formats) Register(name, layout string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.layouts[name] = layout
}

// Lookup resolves a registered layout name.
func (f *Formats) Lookup(name string) (string, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	layout, ok := f.layouts[name]
	return layout, ok
}

// DefaultFormats is the registry used when a date transformer is not given
// an explicit one.
var DefaultFormats = NewFormats()

// isoLayouts are the layouts tried for ISO-8601 input, in order. They cover
// offsets with and without a colon, a bare Z, fractional seconds, and
// zoneless timestamps (interpreted as UTC).
var isoLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999-0700",
	"2006-01-02T15:04:05-0700",
	"2006-01-02T15:04:05",
	"2006-01-02",
}
