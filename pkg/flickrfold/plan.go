package flickrfold

import (
	"strconv"
	"strings"
)

// Assignment is one field write destined for the metadata store.
type Assignment struct {
	Field string
	Value string
}

// Patch is the ordered list of assignments for one destination copy
// plus the number of distinct decisions behind them. A decision may
// emit several assignments (a title writes two fields) but counts once.
type Patch struct {
	Assignments []Assignment
	Changes     int
}

// rule inspects a record against a copy's current snapshot and emits
// zero or more assignments. counted reports whether the firing adds to
// the patch's change total.
type rule func(r *Record, s *Snapshot) (as []Assignment, counted bool)

// rules run in order; output concatenates into one patch. Later
// assignments to a field the albums rule also touches win on apply.
var rules = []rule{
	titleRule,
	descriptionRule,
	dateRule,
	gpsRule,
	keywordRule,
	albumRule,
	sourceRule,
}

// Plan decides the patch for one destination copy. Pure and
// deterministic; a nil snapshot means the copy has no metadata yet and
// never suppresses a write. An empty patch means nothing to do.
func Plan(r *Record, s *Snapshot) Patch {
	p := Patch{}
	for _, rl := range rules {
		as, counted := rl(r, s)
		if len(as) == 0 {
			continue
		}
		p.Assignments = append(p.Assignments, as...)
		if counted {
			p.Changes++
		}
	}
	return p
}

// titleRule always rewrites the title fields when the record has a
// name. The export is authoritative for titles.
func titleRule(r *Record, _ *Snapshot) ([]Assignment, bool) {
	if r.Name == "" {
		return nil, false
	}
	t := escapeValue(r.Name)
	return []Assignment{
		{"XMP:Title", t},
		{"IPTC:ObjectName", t},
	}, true
}

// descriptionRule fills in the description unless a human-looking one
// is already embedded. Camera boilerplate gets replaced.
func descriptionRule(r *Record, s *Snapshot) ([]Assignment, bool) {
	if strings.TrimSpace(r.Description) == "" {
		return nil, false
	}

	existing := s.description()
	if existing != "" && !isCameraPlaceholder(existing) {
		return nil, false
	}

	d := escapeValue(r.Description)
	return []Assignment{
		{"XMP:Description", d},
		{"IPTC:Caption-Abstract", d},
	}, true
}

// dateRule writes the export's date when the embedded one is absent or
// disagrees. The export value is always what gets written.
func dateRule(r *Record, s *Snapshot) ([]Assignment, bool) {
	if r.DateTaken == "" {
		return nil, false
	}

	existing := s.date()
	if existing != "" && datesEquivalent(existing, r.DateTaken) {
		return nil, false
	}

	d := storeDate(r.DateTaken)
	return []Assignment{
		{"DateTimeOriginal", d},
		{"CreateDate", d},
	}, true
}

// gpsRule writes coordinates only onto files with no latitude at all.
// An embedded latitude blocks the pair, even when coordinates differ.
func gpsRule(r *Record, s *Snapshot) ([]Assignment, bool) {
	if len(r.Geo) == 0 || r.Geo[0].Latitude == "" {
		return nil, false
	}

	lat := geoToDecimal(r.Geo[0].Latitude)
	lon := geoToDecimal(r.Geo[0].Longitude)
	if lat == 0 || lon == 0 || s.latitude() != "" {
		return nil, false
	}

	return []Assignment{
		{"GPSLatitude", strconv.FormatFloat(lat, 'f', -1, 64)},
		{"GPSLongitude", strconv.FormatFloat(lon, 'f', -1, 64)},
	}, true
}

// keywordRule merges export tags into the embedded keyword list,
// case-insensitively, keeping the embedded order in front. No missing
// tags, no write.
func keywordRule(r *Record, s *Snapshot) ([]Assignment, bool) {
	if len(r.Tags) == 0 {
		return nil, false
	}

	existing := existingKeywords(s)
	missing := missingFrom(existing, tagTexts(r.Tags))
	if len(missing) == 0 {
		return nil, false
	}

	all := escapeValue(strings.Join(append(existing, missing...), ", "))
	return []Assignment{
		{"IPTC:Keywords", all},
		{"XMP:Subject", all},
	}, true
}

// albumRule always rewrites the album field, and additionally folds
// album titles into the keyword list. The extra keyword assignment can
// shadow keywordRule's within the same patch; that is the intended
// last-write-wins behavior and it never counts as a second change.
func albumRule(r *Record, s *Snapshot) ([]Assignment, bool) {
	if len(r.Albums) == 0 {
		return nil, false
	}

	titles := make([]string, 0, len(r.Albums))
	for _, a := range r.Albums {
		titles = append(titles, a.Title)
	}

	as := []Assignment{
		{"XMP:Album", escapeValue(strings.Join(titles, "; "))},
	}

	existing := existingKeywords(s)
	if missing := missingFrom(existing, titles); len(missing) > 0 {
		all := escapeValue(strings.Join(append(existing, missing...), ", "))
		as = append(as, Assignment{"IPTC:Keywords", all})
	}

	return as, true
}

// sourceRule always records the photo's page URL on the source field.
func sourceRule(r *Record, _ *Snapshot) ([]Assignment, bool) {
	if r.PhotoPage == "" {
		return nil, false
	}
	return []Assignment{
		{"XMP:Source", escapeValue(r.PhotoPage)},
	}, true
}

func tagTexts(tags []Tag) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		out = append(out, t.Tag)
	}
	return out
}

// missingFrom returns the candidates not already present in existing,
// compared case-insensitively. Original casing and order survive; the
// lookup set only carries the folded keys.
func missingFrom(existing, candidates []string) []string {
	seen := make(map[string]bool, len(existing))
	for _, k := range existing {
		seen[strings.ToLower(k)] = true
	}

	missing := []string{}
	for _, c := range candidates {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		if !seen[strings.ToLower(c)] {
			missing = append(missing, c)
		}
	}
	return missing
}

// Nil-tolerant snapshot accessors. Each prefers the primary field and
// falls back to its sibling, matching how readers populate these pairs.

func (s *Snapshot) description() string {
	if s == nil {
		return ""
	}
	if s.Description != "" {
		return s.Description
	}
	return s.CaptionAbstract
}

func (s *Snapshot) date() string {
	if s == nil {
		return ""
	}
	if s.DateTimeOriginal != "" {
		return s.DateTimeOriginal
	}
	return s.CreateDate
}

func (s *Snapshot) latitude() string {
	if s == nil {
		return ""
	}
	return s.GPSLatitude
}
