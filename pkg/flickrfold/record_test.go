package flickrfold

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestParseRecordFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "photo_123.json")
	writeFile(t, path, `{
		"id": "123",
		"name": "Sunset",
		"description": "pier",
		"date_taken": "2019-05-01 10:00:00",
		"geo": [{"latitude": 48858844, "longitude": "2294481"}],
		"tags": [{"tag": "paris"}],
		"albums": [{"title": "2020 Trip"}],
		"photopage": "https://www.flickr.com/photos/me/123"
	}`)

	r, err := ParseRecordFile(path)
	if err != nil {
		t.Fatalf("ParseRecordFile: %v", err)
	}

	if r.ID != "123" {
		t.Errorf("ID = %q", r.ID)
	}
	if r.Name != "Sunset" {
		t.Errorf("Name = %q", r.Name)
	}
	if len(r.Geo) != 1 || r.Geo[0].Latitude != "48858844" || r.Geo[0].Longitude != "2294481" {
		t.Errorf("Geo = %+v", r.Geo)
	}
	if len(r.Tags) != 1 || r.Tags[0].Tag != "paris" {
		t.Errorf("Tags = %+v", r.Tags)
	}
	if len(r.Albums) != 1 || r.Albums[0].Title != "2020 Trip" {
		t.Errorf("Albums = %+v", r.Albums)
	}
}

func TestParseRecordFileNumericID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "photo_9.json")
	writeFile(t, path, `{"id": 4567890}`)

	r, err := ParseRecordFile(path)
	if err != nil {
		t.Fatalf("ParseRecordFile: %v", err)
	}
	if r.ID != "4567890" {
		t.Errorf("ID = %q, want 4567890", r.ID)
	}
}

func TestParseRecordFileMissingID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "photo_0.json")
	writeFile(t, path, `{"name": "no id here"}`)

	r, err := ParseRecordFile(path)
	if err != nil {
		t.Fatalf("ParseRecordFile: %v", err)
	}
	if r.ID != "" {
		t.Errorf("ID = %q, want empty", r.ID)
	}
}

func TestParseRecordFileMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "photo_bad.json")
	writeFile(t, path, `{"id": `)

	if _, err := ParseRecordFile(path); err == nil {
		t.Error("want error for malformed record")
	}
}

func TestIsRecordFile(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"photo_123.json", true},
		{"photo_.json", true},
		{"album_123.json", false},
		{"photo_123.txt", false},
		{"readme.md", false},
	}
	for _, tc := range tests {
		if got := IsRecordFile(tc.name); got != tc.want {
			t.Errorf("IsRecordFile(%q) = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestFindRecordFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "photo_2.json"), `{}`)
	writeFile(t, filepath.Join(dir, "photo_1.json"), `{}`)
	writeFile(t, filepath.Join(dir, "albums.json"), `{}`)

	got, err := FindRecordFiles(dir)
	if err != nil {
		t.Fatalf("FindRecordFiles: %v", err)
	}

	want := []string{
		filepath.Join(dir, "photo_1.json"),
		filepath.Join(dir, "photo_2.json"),
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FindRecordFiles = %v, want %v", got, want)
	}
}
