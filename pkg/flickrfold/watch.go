package flickrfold

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// EventFilter decides which data-directory events name a record file
// that still needs processing. A single dropped file fires Create and
// then one or more Write echoes; each path is accepted once so the
// record is processed and counted once.
type EventFilter struct {
	seen map[string]bool
}

// NewEventFilter returns a filter with no paths seen yet.
func NewEventFilter() *EventFilter {
	return &EventFilter{seen: map[string]bool{}}
}

// Wants reports whether an event names a not-yet-processed record
// file, and marks the path as handled.
func (f *EventFilter) Wants(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) && !event.Has(fsnotify.Write) {
		return false
	}
	if !IsRecordFile(filepath.Base(event.Name)) {
		return false
	}
	if f.seen[event.Name] {
		return false
	}
	f.seen[event.Name] = true
	return true
}
