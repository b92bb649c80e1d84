package flickrfold

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/karrick/godirwalk"
	"k8s.io/klog/v2"
)

// Record is one parsed per-photo export unit. It is read once and never
// mutated.
type Record struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	DateTaken   string     `json:"date_taken"`
	Geo         []GeoEntry `json:"geo"`
	Tags        []Tag      `json:"tags"`
	Albums      []AlbumRef `json:"albums"`
	PhotoPage   string     `json:"photopage"`
}

// GeoEntry is one geotag from the export. Coordinates are degrees
// multiplied by one million.
type GeoEntry struct {
	Latitude  exportNumber `json:"latitude"`
	Longitude exportNumber `json:"longitude"`
}

// exportNumber is a numeric export value that may arrive quoted or bare.
type exportNumber string

func (n *exportNumber) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" {
		s = ""
	}
	*n = exportNumber(s)
	return nil
}

// Tag is one keyword attached to the photo.
type Tag struct {
	Tag string `json:"tag"`
}

// AlbumRef names one album the photo belongs to.
type AlbumRef struct {
	Title string `json:"title"`
}

// UnmarshalJSON tolerates exports where id is a bare number rather than
// a string.
func (r *Record) UnmarshalJSON(data []byte) error {
	type alias Record
	aux := struct {
		ID exportNumber `json:"id"`
		*alias
	}{alias: (*alias)(r)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	r.ID = string(aux.ID)
	return nil
}

// ParseRecordFile reads and decodes one photo record.
func ParseRecordFile(path string) (*Record, error) {
	bs, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	r := &Record{}
	if err := json.Unmarshal(bs, r); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return r, nil
}

// IsRecordFile reports whether a file name follows the export's
// per-photo record convention.
func IsRecordFile(name string) bool {
	return strings.HasPrefix(name, "photo_") && strings.HasSuffix(name, ".json")
}

// FindRecordFiles walks the data directory and returns the photo record
// paths in a stable order.
func FindRecordFiles(root string) ([]string, error) {
	found := []string{}

	err := godirwalk.Walk(root, &godirwalk.Options{
		Callback: func(path string, de *godirwalk.Dirent) error {
			base := filepath.Base(path)
			if base[0] == '.' && de.IsDir() && path != root {
				return godirwalk.SkipThis
			}

			if !de.IsDir() && IsRecordFile(base) {
				klog.V(1).Infof("found record %s", path)
				found = append(found, path)
			}

			return nil
		},
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}

	sort.Strings(found)
	return found, nil
}
