package generate

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"proflow/core/bible"
	"proflow/core/codec"
	"proflow/core/errors"
	"proflow/core/lyrics"
	"proflow/core/presentation"
	"proflow/core/rtf"
	"proflow/core/template"
)

func writeTemplate(t *testing.T, dir, category string) {
	t.Helper()
	slide := &presentation.PresentationSlide{
		Slide: &presentation.Slide{
			UUID: presentation.NewIdentifier(),
			Size: presentation.DefaultCanvas,
			Elements: []*presentation.Element{{
				UUID: presentation.NewIdentifier(),
				Bounds: presentation.Rect{
					Origin: presentation.Point{X: 100, Y: 100},
					Size:   presentation.Size{Width: 1720, Height: 880},
				},
				Text: &presentation.TextElement{
					RTFData:   rtf.Encode([]rtf.Run{{Text: "placeholder"}}, rtf.DefaultOptions()),
					Font:      presentation.Font{Name: "Helvetica", Size: 72, Bold: true},
					Color:     presentation.White,
					Alignment: presentation.AlignCenter,
				},
			}},
		},
	}
	doc := presentation.NewBuilder("template", category).AddSlide("slide", slide).Build()
	if err := codec.WriteFile(filepath.Join(dir, template.Filename(category)), doc); err != nil {
		t.Fatal(err)
	}
}

func writeBibleData(t *testing.T, dir string) {
	t.Helper()
	data := map[string]map[string]map[string]string{
		"Isaiah": {
			"35": {
				"1": "The wilderness and the dry land shall be glad.",
				"2": "It shall blossom abundantly and rejoice with joy and singing.",
			},
		},
	}
	raw, err := json.Marshal(data)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "ESV.json"), raw, 0o644); err != nil {
		t.Fatal(err)
	}
}

func newGenerator(t *testing.T) *Generator {
	t.Helper()
	tmplDir, dataDir, outDir := t.TempDir(), t.TempDir(), t.TempDir()
	writeTemplate(t, tmplDir, template.CategoryScripture)
	writeTemplate(t, tmplDir, template.CategorySong)
	writeTemplate(t, tmplDir, template.CategoryInfo)
	writeBibleData(t, dataDir)
	return &Generator{
		Templates: template.NewCache(tmplDir),
		Bibles:    bible.NewStore(dataDir),
		OutputDir: outDir,
	}
}

func TestScripture(t *testing.T) {
	g := newGenerator(t)
	res, err := g.Scripture(context.Background(), "Isaiah 35:1-2", "ESV")
	if err != nil {
		t.Fatalf("Scripture failed: %v", err)
	}

	doc, err := codec.ReadFile(res.Path)
	if err != nil {
		t.Fatalf("generated document does not read back: %v", err)
	}
	if doc.Category != template.CategoryScripture {
		t.Errorf("Category = %q", doc.Category)
	}
	if len(doc.Cues) == 0 {
		t.Fatal("no cues generated")
	}

	text := presentation.PlainText(doc)
	if !strings.Contains(text, "wilderness") || !strings.Contains(text, "blossom") {
		t.Errorf("verse text missing: %q", text)
	}
	if !strings.Contains(text, "¹") || !strings.Contains(text, "²") {
		t.Errorf("verse markers should be superscript: %q", text)
	}

	// Cue groups and the default arrangement reference real cues.
	if len(doc.CueGroups) != 1 {
		t.Fatalf("cue groups = %d", len(doc.CueGroups))
	}
	if !strings.Contains(doc.CueGroups[0].Group.Name, "Isaiah 35:1-2") {
		t.Errorf("group name = %q", doc.CueGroups[0].Group.Name)
	}
	if doc.SelectedArrangement == "" {
		t.Error("generated document should select an arrangement")
	}
}

func TestScriptureStylePreserved(t *testing.T) {
	g := newGenerator(t)
	res, err := g.Scripture(context.Background(), "Isaiah 35:1", "ESV")
	if err != nil {
		t.Fatalf("Scripture failed: %v", err)
	}

	tmpl, err := g.Templates.Load(template.CategoryScripture)
	if err != nil {
		t.Fatal(err)
	}
	tmplEl := tmpl.Cues[0].Actions[0].Slide.Slide.Elements[0]
	genEl := res.Document.Cues[0].Actions[0].Slide.Slide.Elements[0]
	if !presentation.StyleEquivalent(tmplEl, genEl) {
		t.Error("generated slide should keep the template's style")
	}
	if genEl.UUID == tmplEl.UUID {
		t.Error("generated slide should carry fresh identifiers")
	}
}

func TestSong(t *testing.T) {
	g := newGenerator(t)
	song, err := lyrics.ParseText("Amazing Grace",
		"[Verse 1]\nAmazing grace how sweet the sound\n\n[Chorus]\nPraise God")
	if err != nil {
		t.Fatal(err)
	}

	res, err := g.Song(context.Background(), song)
	if err != nil {
		t.Fatalf("Song failed: %v", err)
	}
	doc := res.Document
	if len(doc.CueGroups) != 2 {
		t.Fatalf("cue groups = %d, want one per stanza", len(doc.CueGroups))
	}
	if doc.CueGroups[0].Group.Name != "Verse 1" || doc.CueGroups[1].Group.Name != "Chorus" {
		t.Errorf("group names = %q, %q", doc.CueGroups[0].Group.Name, doc.CueGroups[1].Group.Name)
	}
	if doc.CueGroups[0].Group.Color == doc.CueGroups[1].Group.Color {
		t.Error("verse and chorus groups should differ in color")
	}
}

func TestInfo(t *testing.T) {
	g := newGenerator(t)
	res, err := g.Info(context.Background(), "Announcements",
		[]string{"Potluck on Saturday", "Choir practice moves to 7pm"})
	if err != nil {
		t.Fatalf("Info failed: %v", err)
	}
	if len(res.Document.Cues) != 2 {
		t.Errorf("cues = %d, want one per paragraph", len(res.Document.Cues))
	}
}

func TestMissingTemplate(t *testing.T) {
	g := newGenerator(t)
	g.Templates = template.NewCache(t.TempDir())

	_, err := g.Scripture(context.Background(), "Isaiah 35:1", "ESV")
	if !errors.Is(err, errors.ErrTemplateNotFound) {
		t.Fatalf("want ErrTemplateNotFound, got %v", err)
	}
	var ge *errors.GenerateError
	if !errors.As(err, &ge) {
		t.Fatalf("want GenerateError, got %T", err)
	}
	if ge.Step != "template" {
		t.Errorf("Step = %q", ge.Step)
	}
	if ge.Category != template.CategoryScripture {
		t.Errorf("Category = %q", ge.Category)
	}
}

func TestBadReference(t *testing.T) {
	g := newGenerator(t)
	_, err := g.Scripture(context.Background(), "Narnia 3:16", "ESV")
	if !errors.Is(err, errors.ErrInvalidInput) {
		t.Errorf("want ErrInvalidInput, got %v", err)
	}
}

func TestCancelledContext(t *testing.T) {
	g := newGenerator(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := g.Scripture(ctx, "Isaiah 35:1", "ESV"); !errors.Is(err, context.Canceled) {
		t.Errorf("want context.Canceled, got %v", err)
	}
}

func TestAsync(t *testing.T) {
	g := newGenerator(t)
	ch := Async(func() (*Result, error) {
		return g.Scripture(context.Background(), "Isaiah 35:1", "ESV")
	})
	res := <-ch
	if res.Err != nil {
		t.Fatalf("async generation failed: %v", res.Err)
	}
	if res.Path == "" || res.Document == nil {
		t.Errorf("incomplete result: %+v", res)
	}
}
