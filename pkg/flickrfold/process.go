package flickrfold

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/otiai10/copy"
	"k8s.io/klog/v2"
)

// CopyFunc copies one file to a destination path.
type CopyFunc func(src, dst string) error

// Processor turns one record into per-album destination copies with
// reconciled metadata.
type Processor struct {
	OutDir string
	Store  MetadataStore
	Images *ImageIndex

	// Copy overrides the file copy; nil uses otiai10/copy.
	Copy CopyFunc
}

// Process handles one record end to end. Failures on one destination
// never abort the others; each failed destination's partial file is
// removed. The outcome folds the per-destination results: all good is
// Processed, all bad is Errored, a mix is Skipped.
func (p *Processor) Process(r *Record) Result {
	if r == nil || r.ID == "" {
		klog.Warningf("record without id, skipping")
		return Result{Outcome: Errored}
	}

	src, ok := p.Images.Locate(r.ID)
	if !ok {
		klog.Warningf("no source image for photo %s", r.ID)
		return Result{Outcome: MissingImage}
	}

	succeeded, failed, changes := 0, 0, 0
	for _, folder := range albumFolders(r) {
		dir := filepath.Join(p.OutDir, folder)
		dst := filepath.Join(dir, filepath.Base(src))

		n, err := p.fill(r, src, dir, dst)
		if err != nil {
			klog.Errorf("photo %s -> %s: %v", r.ID, dst, err)
			removeIfPresent(dst)
			failed++
			continue
		}
		succeeded++
		changes += n
	}

	res := Result{Changes: changes}
	switch {
	case failed == 0:
		res.Outcome = Processed
	case succeeded == 0:
		res.Outcome = Errored
	default:
		res.Outcome = Skipped
	}
	return res
}

// fill copies the source into one destination and applies whatever
// patch the planner decides. Returns the patch's change count.
func (p *Processor) fill(r *Record, src, dir, dst string) (int, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, fmt.Errorf("mkdir: %w", err)
	}

	if err := p.copyFile(src, dst); err != nil {
		return 0, fmt.Errorf("copy: %w", err)
	}

	snap, err := p.Store.Read(dst)
	if err != nil {
		return 0, fmt.Errorf("read metadata: %w", err)
	}

	patch := Plan(r, snap)
	if len(patch.Assignments) == 0 {
		klog.V(1).Infof("photo %s: nothing to write to %s", r.ID, dst)
		return 0, nil
	}

	if err := p.Store.Apply(dst, patch); err != nil {
		return 0, fmt.Errorf("apply patch: %w", err)
	}

	klog.V(1).Infof("photo %s: wrote %d changes to %s", r.ID, patch.Changes, dst)
	return patch.Changes, nil
}

func (p *Processor) copyFile(src, dst string) error {
	if p.Copy != nil {
		return p.Copy(src, dst)
	}
	return copy.Copy(src, dst)
}

func removeIfPresent(path string) {
	if _, err := os.Stat(path); err != nil {
		return
	}
	if err := os.Remove(path); err != nil {
		klog.Warningf("cleanup %s: %v", path, err)
	}
}
