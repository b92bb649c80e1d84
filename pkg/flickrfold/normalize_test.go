package flickrfold

import (
	"reflect"
	"testing"
)

func TestEscapeValue(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{``, ``},
		{`plain`, `plain`},
		{`He said "hi" \ $HOME`, `He said \"hi\" \\ \$HOME`},
		{`back\slash`, `back\\slash`},
		{`$$`, `\$\$`},
	}
	for _, tc := range tests {
		if got := escapeValue(tc.in); got != tc.want {
			t.Errorf("escapeValue(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestStoreDate(t *testing.T) {
	if got := storeDate("2019-05-01 10:00:00"); got != "2019:05:01 10:00:00" {
		t.Errorf("storeDate = %q", got)
	}
}

func TestDatesEquivalent(t *testing.T) {
	tests := []struct {
		name      string
		imageDate string
		srcDate   string
		want      bool
	}{
		{"fraction and tz stripped", "2019:05:01 10:00:00.00+02:00", "2019-05-01 10:00:00", true},
		{"exact", "2019:05:01 10:00:00", "2019-05-01 10:00:00", true},
		{"different time", "2019:05:01 11:00:00", "2019-05-01 10:00:00", false},
		{"image absent", "", "2019-05-01 10:00:00", false},
		{"source absent", "2019:05:01 10:00:00", "", false},
		{"both absent", "", "", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := datesEquivalent(tc.imageDate, tc.srcDate); got != tc.want {
				t.Errorf("datesEquivalent(%q, %q) = %v, want %v", tc.imageDate, tc.srcDate, got, tc.want)
			}
		})
	}
}

func TestGeoToDecimal(t *testing.T) {
	tests := []struct {
		in   exportNumber
		want float64
	}{
		{"48858844", 48.858844},
		{"-122419400", -122.4194},
		{"", 0},
		{"bogus", 0},
	}
	for _, tc := range tests {
		if got := geoToDecimal(tc.in); got != tc.want {
			t.Errorf("geoToDecimal(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestIsCameraPlaceholder(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"OLYMPUS DIGITAL CAMERA", true},
		{"nikon d90", true},
		{"  SONY DSC  ", true},
		{"abc", true}, // too short to be a real description
		{"A sunny day at the beach", false},
		{"", false},
	}
	for _, tc := range tests {
		if got := isCameraPlaceholder(tc.in); got != tc.want {
			t.Errorf("isCameraPlaceholder(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestExistingKeywords(t *testing.T) {
	tests := []struct {
		name string
		snap *Snapshot
		want []string
	}{
		{"nil snapshot", nil, nil},
		{"empty", &Snapshot{}, []string{}},
		{"keywords", &Snapshot{Keywords: "Paris, Travel"}, []string{"Paris", "Travel"}},
		{"subject fallback", &Snapshot{Subject: "Food"}, []string{"Food"}},
		{"keywords win over subject", &Snapshot{Keywords: "a", Subject: "b"}, []string{"a"}},
		{"trim and drop empties", &Snapshot{Keywords: " a ,, b "}, []string{"a", "b"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := existingKeywords(tc.snap)
			if len(got) == 0 && len(tc.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("existingKeywords = %v, want %v", got, tc.want)
			}
		})
	}
}
