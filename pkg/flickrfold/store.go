package flickrfold

import (
	"fmt"
	"strings"

	"github.com/barasher/go-exiftool"
	"k8s.io/klog/v2"
)

// Snapshot is a point-in-time read of the embedded fields this tool
// consumes. A nil *Snapshot means the file had no readable metadata.
type Snapshot struct {
	Description      string
	CaptionAbstract  string
	DateTimeOriginal string
	CreateDate       string
	GPSLatitude      string
	Keywords         string
	Subject          string
}

// MetadataStore reads and writes embedded image metadata.
type MetadataStore interface {
	Read(path string) (*Snapshot, error)
	Apply(path string, p Patch) error
}

// Store is a MetadataStore backed by a long-lived exiftool process.
type Store struct {
	et *exiftool.Exiftool
}

// NewStore starts the exiftool helper. Failure here means the tooling
// is unavailable and the run cannot start.
func NewStore() (*Store, error) {
	et, err := exiftool.NewExiftool()
	if err != nil {
		return nil, fmt.Errorf("exiftool: %w", err)
	}
	return &Store{et: et}, nil
}

// Close shuts down the exiftool helper.
func (s *Store) Close() {
	if err := s.et.Close(); err != nil {
		klog.Errorf("exiftool close: %v", err)
	}
}

// Read extracts the consumed fields from one file. An unreadable or
// unsupported file yields a nil snapshot, not an error: downstream
// treats it as "no existing metadata".
func (s *Store) Read(path string) (*Snapshot, error) {
	fis := s.et.ExtractMetadata(path)
	if len(fis) == 0 {
		return nil, nil
	}
	fi := fis[0]
	if fi.Err != nil {
		klog.V(1).Infof("no readable metadata in %s: %v", path, fi.Err)
		return nil, nil
	}

	for k, v := range fi.Fields {
		klog.V(2).Infof("%s: %q=%v", path, k, v)
	}

	return &Snapshot{
		Description:      fieldString(fi.Fields, "Description"),
		CaptionAbstract:  fieldString(fi.Fields, "Caption-Abstract"),
		DateTimeOriginal: fieldString(fi.Fields, "DateTimeOriginal"),
		CreateDate:       fieldString(fi.Fields, "CreateDate"),
		GPSLatitude:      fieldString(fi.Fields, "GPSLatitude"),
		Keywords:         fieldString(fi.Fields, "Keywords"),
		Subject:          fieldString(fi.Fields, "Subject"),
	}, nil
}

// Apply writes a patch to one file. Assignments apply in order, so a
// later assignment to the same field wins.
func (s *Store) Apply(path string, p Patch) error {
	if len(p.Assignments) == 0 {
		return nil
	}

	fms := []exiftool.FileMetadata{patchMetadata(path, p)}
	s.et.WriteMetadata(fms)
	if fms[0].Err != nil {
		return fmt.Errorf("write %s: %w", path, fms[0].Err)
	}
	return nil
}

// patchMetadata maps a patch onto exiftool's field set. Every key in
// the map is rendered as a tag argument, so only tag assignments
// belong here; WriteMetadata overwrites in place on its own.
func patchMetadata(path string, p Patch) exiftool.FileMetadata {
	fm := exiftool.EmptyFileMetadata()
	fm.File = path
	for _, a := range p.Assignments {
		fm.SetString(a.Field, a.Value)
	}
	return fm
}

// fieldString flattens an exiftool field value to the string form the
// keyword splitter expects. List values join with ", ".
func fieldString(fields map[string]any, key string) string {
	v, ok := fields[key]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case []any:
		parts := make([]string, 0, len(t))
		for _, e := range t {
			parts = append(parts, fmt.Sprintf("%v", e))
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprintf("%v", t)
	}
}
