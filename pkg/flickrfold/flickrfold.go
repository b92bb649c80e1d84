// Package flickrfold reconciles Flickr export metadata with image files,
// embedding merged fields into per-album copies for re-import elsewhere.
package flickrfold

import "time"

// Config holds configuration for a flickrfold run.
type Config struct {
	// DataDir holds the per-photo JSON records from the export.
	DataDir string
	// ImageDir holds the original image files.
	ImageDir string
	// OutDir receives one subdirectory per album.
	OutDir string
}

// Outcome classifies the result of processing one photo record.
type Outcome int

const (
	// Unknown is the zero value; no classification ever produces it.
	Unknown Outcome = iota
	// Processed means every destination copy was written.
	Processed
	// Skipped means some destinations succeeded and some failed.
	Skipped
	// Errored means the record was unusable or every destination failed.
	Errored
	// MissingImage means no source file matched the record's id.
	MissingImage
)

func (o Outcome) String() string {
	switch o {
	case Processed:
		return "processed"
	case Skipped:
		return "skipped"
	case Errored:
		return "error"
	case MissingImage:
		return "missing image"
	}
	return "unknown"
}

// Result is the per-record output of the photo processor.
type Result struct {
	Outcome Outcome
	// Changes is the distinct-change total across successful destinations.
	Changes int
}

// RunStats are the aggregate counters for a full run.
type RunStats struct {
	Processed     int
	Skipped       int
	Errors        int
	MissingImages int
	TotalChanges  int
	Records       int
	Elapsed       time.Duration
}

// Add folds one per-photo result into the counters.
func (s *RunStats) Add(r Result) {
	switch r.Outcome {
	case Processed:
		s.Processed++
	case Skipped:
		s.Skipped++
	case Errored:
		s.Errors++
	case MissingImage:
		s.MissingImages++
	}
	s.TotalChanges += r.Changes
	s.Records++
}
