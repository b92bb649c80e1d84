package flickrfold

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/karrick/godirwalk"
	"k8s.io/klog/v2"
)

// FallbackFolder receives photos that belong to no album.
var FallbackFolder = "Uncategorized"

var (
	// sourceNameRe matches the export's original-size naming scheme,
	// capturing the numeric photo id: anything_<id>_o.<ext>.
	sourceNameRe = regexp.MustCompile(`(?i)_(\d+)_o\.[a-z0-9]+$`)

	invalidPathChars = regexp.MustCompile(`[<>:"/\\|?*]`)
	whitespaceRun    = regexp.MustCompile(`\s+`)
)

// ImageIndex maps photo ids to source image paths, built from one scan
// of the image directory.
type ImageIndex struct {
	byID map[string]string
}

// IndexImages scans root for original-size images. The first file seen
// for an id wins.
func IndexImages(root string) (*ImageIndex, error) {
	idx := &ImageIndex{byID: map[string]string{}}

	err := godirwalk.Walk(root, &godirwalk.Options{
		Callback: func(path string, de *godirwalk.Dirent) error {
			if de.IsDir() {
				if filepath.Base(path)[0] == '.' && path != root {
					return godirwalk.SkipThis
				}
				return nil
			}

			m := sourceNameRe.FindStringSubmatch(filepath.Base(path))
			if m == nil {
				return nil
			}
			id := m[1]
			if _, ok := idx.byID[id]; !ok {
				idx.byID[id] = path
			}
			return nil
		},
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}

	klog.Infof("indexed %d source images under %s", len(idx.byID), root)
	return idx, nil
}

// Locate resolves a record id to its source image path.
func (x *ImageIndex) Locate(id string) (string, bool) {
	p, ok := x.byID[id]
	return p, ok
}

// Len returns the number of indexed images.
func (x *ImageIndex) Len() int {
	return len(x.byID)
}

// sanitizeFolder turns an album title into a usable directory name:
// path-hostile characters become underscores, whitespace collapses to
// single spaces, ends are trimmed. Distinct titles may collide after
// sanitizing; they share a folder.
func sanitizeFolder(title string) string {
	s := invalidPathChars.ReplaceAllString(title, "_")
	s = whitespaceRun.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// albumFolders lists the destination folder names for a record: one
// per titled album, or the fallback when there are none.
func albumFolders(r *Record) []string {
	folders := []string{}
	for _, a := range r.Albums {
		if a.Title == "" {
			continue
		}
		folders = append(folders, sanitizeFolder(a.Title))
	}
	if len(folders) == 0 {
		folders = append(folders, FallbackFolder)
	}
	return folders
}
