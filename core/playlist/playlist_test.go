package playlist

import (
	"os"
	"path/filepath"
	"testing"

	"proflow/core/codec"
	"proflow/core/errors"
	"proflow/core/presentation"
	"proflow/core/rtf"
)

func sampleDoc(name string) *presentation.Document {
	slide := &presentation.PresentationSlide{
		Slide: &presentation.Slide{
			UUID: presentation.NewIdentifier(),
			Size: presentation.DefaultCanvas,
			Elements: []*presentation.Element{{
				UUID: presentation.NewIdentifier(),
				Text: &presentation.TextElement{
					RTFData: rtf.Encode([]rtf.Run{{Text: name}}, rtf.DefaultOptions()),
					Font:    presentation.Font{Name: "Helvetica", Size: 72},
					Color:   presentation.White,
				},
			}},
		},
	}
	return presentation.NewBuilder(name, "song").AddSlide(name, slide).Build()
}

func TestBundleAndRead(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sunday"+Extension)

	entries := []Entry{
		{Name: "Opening Hymn", Document: sampleDoc("Opening Hymn")},
		{Name: "Isaiah 35", Document: sampleDoc("Isaiah 35")},
		{Name: "Closing", Document: sampleDoc("Closing")},
	}
	if err := Write(path, "Sunday Service", entries); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	manifest, contents, err := Read(path)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if manifest.Name != "Sunday Service" {
		t.Errorf("manifest name = %q", manifest.Name)
	}
	if len(manifest.Entries) != 3 {
		t.Fatalf("manifest entries = %d", len(manifest.Entries))
	}
	// Playlist order is preserved in the manifest.
	for i, want := range []string{"Opening Hymn", "Isaiah 35", "Closing"} {
		if manifest.Entries[i].Name != want {
			t.Errorf("entry %d = %q, want %q", i, manifest.Entries[i].Name, want)
		}
	}

	// Each archived document decodes back to a valid tree.
	for _, me := range manifest.Entries {
		doc, err := codec.Decode(contents[me.Filename])
		if err != nil {
			t.Errorf("entry %s does not decode: %v", me.Filename, err)
			continue
		}
		if doc.Name != me.Name {
			t.Errorf("entry %s decodes to %q", me.Filename, doc.Name)
		}
	}
}

func TestBundleRawEntries(t *testing.T) {
	raw := codec.Encode(sampleDoc("From Disk"))
	data, err := Bundle("mixed", []Entry{{Name: "From Disk", Raw: raw}})
	if err != nil {
		t.Fatalf("Bundle failed: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("empty bundle")
	}
}

func TestBundleRejectsInvalidEntries(t *testing.T) {
	if _, err := Bundle("x", nil); !errors.Is(err, errors.ErrInvalidInput) {
		t.Errorf("empty playlist: got %v", err)
	}
	if _, err := Bundle("x", []Entry{{Name: ""}}); !errors.Is(err, errors.ErrInvalidInput) {
		t.Errorf("unnamed entry: got %v", err)
	}
	if _, err := Bundle("x", []Entry{{Name: "empty"}}); !errors.Is(err, errors.ErrInvalidInput) {
		t.Errorf("contentless entry: got %v", err)
	}
}

func TestWriteIsAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "service"+Extension)

	if err := Write(path, "v1", []Entry{{Name: "a", Document: sampleDoc("a")}}); err != nil {
		t.Fatalf("first Write failed: %v", err)
	}
	if err := Write(path, "v2", []Entry{{Name: "b", Document: sampleDoc("b")}}); err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}

	manifest, _, err := Read(path)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if manifest.Name != "v2" {
		t.Errorf("manifest name = %q, want v2", manifest.Name)
	}

	// No temp residue.
	files, _ := os.ReadDir(dir)
	if len(files) != 1 {
		t.Errorf("directory holds %d files, want 1", len(files))
	}
}

func TestWriteFailureLeavesNoFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "service"+Extension)

	// A directory squatting on the target path makes the final rename fail.
	if err := os.Mkdir(path, 0o755); err != nil {
		t.Fatal(err)
	}

	err := Write(path, "Sunday Service", []Entry{{Name: "a", Document: sampleDoc("a")}})
	if err == nil {
		t.Fatal("Write should fail when the target path cannot be renamed onto")
	}

	info, statErr := os.Stat(path)
	if statErr != nil || !info.IsDir() {
		t.Error("failed write should leave the target path untouched")
	}
	inside, _ := os.ReadDir(path)
	if len(inside) != 0 {
		t.Errorf("nothing should land at the final path, found %d entries", len(inside))
	}

	// The temp file is cleaned up on failure too.
	outside, _ := os.ReadDir(dir)
	if len(outside) != 1 {
		t.Errorf("directory holds %d entries, want only the squatting directory", len(outside))
	}
}

func TestReadDetectsCorruption(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bundle"+Extension)
	if err := Write(path, "x", []Entry{{Name: "a", Document: sampleDoc("a")}}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	// Flip bytes in the archived document region.
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	data[60] ^= 0xff
	data[61] ^= 0xff
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	if _, _, err := Read(path); err == nil {
		t.Error("corrupted bundle should fail to read")
	}
}

func TestChecksumStable(t *testing.T) {
	data := []byte("container bytes")
	if Checksum(data) != Checksum(data) {
		t.Error("checksum should be deterministic")
	}
	if Checksum(data) == Checksum([]byte("other")) {
		t.Error("different content should hash differently")
	}
	if len(Checksum(data)) != 64 {
		t.Errorf("checksum length = %d, want 64 hex chars", len(Checksum(data)))
	}
}
