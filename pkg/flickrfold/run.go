package flickrfold

import (
	"fmt"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"k8s.io/klog/v2"
)

// Runner owns the run-wide collaborators: one exiftool process and one
// source image index, shared by the batch pass and by watch mode.
type Runner struct {
	c     *Config
	store *Store
	proc  *Processor
}

// NewRunner checks the run-fatal preconditions (metadata tooling,
// top-level directories) and indexes the source images. After this,
// individual record failures only move counters.
func NewRunner(c *Config) (*Runner, error) {
	if _, err := os.Stat(c.DataDir); err != nil {
		return nil, fmt.Errorf("data dir: %w", err)
	}
	if _, err := os.Stat(c.ImageDir); err != nil {
		return nil, fmt.Errorf("image dir: %w", err)
	}
	if err := os.MkdirAll(c.OutDir, 0o755); err != nil {
		return nil, fmt.Errorf("out dir: %w", err)
	}

	store, err := NewStore()
	if err != nil {
		return nil, fmt.Errorf("metadata store: %w", err)
	}

	idx, err := IndexImages(c.ImageDir)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("index images: %w", err)
	}

	return &Runner{
		c:     c,
		store: store,
		proc:  &Processor{OutDir: c.OutDir, Store: store, Images: idx},
	}, nil
}

// Close shuts down the metadata store.
func (r *Runner) Close() {
	r.store.Close()
}

// Run processes every record currently in the data directory.
func (r *Runner) Run() (*RunStats, error) {
	paths, err := FindRecordFiles(r.c.DataDir)
	if err != nil {
		return nil, fmt.Errorf("find records: %w", err)
	}
	klog.Infof("found %d photo records in %s", len(paths), r.c.DataDir)

	stats := &RunStats{}
	start := time.Now()

	bar := progressbar.Default(int64(len(paths)), "embedding metadata")
	for _, path := range paths {
		stats.Add(r.ProcessFile(path))
		if err := bar.Add(1); err != nil {
			klog.V(1).Infof("progress: %v", err)
		}
	}
	if err := bar.Finish(); err != nil {
		klog.V(1).Infof("progress: %v", err)
	}

	stats.Elapsed = time.Since(start)
	return stats, nil
}

// ProcessFile parses and processes a single record file. A malformed
// record is an error outcome, never a run failure.
func (r *Runner) ProcessFile(path string) Result {
	rec, err := ParseRecordFile(path)
	if err != nil {
		klog.Errorf("bad record %s: %v", path, err)
		return Result{Outcome: Errored}
	}
	return r.proc.Process(rec)
}

// Run is the one-shot entry point: set up, process everything, tear
// down.
func Run(c *Config) (*RunStats, error) {
	runner, err := NewRunner(c)
	if err != nil {
		return nil, err
	}
	defer runner.Close()

	return runner.Run()
}
