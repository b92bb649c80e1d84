package flickrfold

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// cameraBrands are tokens that mark a description as camera-generated
// boilerplate rather than something a person wrote.
var cameraBrands = []string{
	"DIGITAL CAMERA", "NIKON", "CANON", "OLYMPUS",
	"SONY", "FUJIFILM", "PENTAX", "PANASONIC",
}

// geoToDecimal converts an export coordinate (degrees x 1,000,000) to
// decimal degrees. Empty in, zero out.
func geoToDecimal(raw exportNumber) float64 {
	if raw == "" {
		return 0
	}
	n, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		return 0
	}
	return float64(n) / 1000000
}

// storeDate rewrites the export's dashed date into exiftool's colon
// form: "2019-05-01 10:00:00" -> "2019:05:01 10:00:00".
func storeDate(s string) string {
	return strings.ReplaceAll(s, "-", ":")
}

// normalizeDate strips fractional seconds and a timezone suffix so two
// date strings can be compared. Comparison only; never written back.
func normalizeDate(s string) string {
	s, _, _ = strings.Cut(s, ".")
	s, _, _ = strings.Cut(s, "+")
	return strings.TrimSpace(s)
}

// datesEquivalent reports whether an embedded date and an export date
// name the same instant, ignoring fraction and timezone. Absence on
// either side is never equivalent.
func datesEquivalent(imageDate, exportDate string) bool {
	if imageDate == "" || exportDate == "" {
		return false
	}
	return normalizeDate(imageDate) == normalizeDate(storeDate(exportDate))
}

// escapeValue makes a value safe inside a quoted field assignment.
// Backslash goes first so it doesn't double-escape the others.
func escapeValue(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	s = strings.ReplaceAll(s, `$`, `\$`)
	return s
}

// isCameraPlaceholder reports whether a description is auto-generated
// camera boilerplate, eligible to be overwritten.
func isCameraPlaceholder(desc string) bool {
	if desc == "" {
		return false
	}
	d := strings.TrimSpace(strings.ToUpper(desc))
	for _, brand := range cameraBrands {
		if strings.Contains(d, brand) {
			return true
		}
	}
	return utf8.RuneCountInString(d) < 5
}

// existingKeywords returns the snapshot's keyword list in first-seen
// order, reading Keywords and falling back to Subject.
func existingKeywords(s *Snapshot) []string {
	if s == nil {
		return nil
	}
	raw := s.Keywords
	if raw == "" {
		raw = s.Subject
	}

	out := []string{}
	for _, k := range strings.Split(raw, ",") {
		k = strings.TrimSpace(k)
		if k != "" {
			out = append(out, k)
		}
	}
	return out
}
