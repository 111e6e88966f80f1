package presentation

import (
	"strings"
	"testing"

	"proflow/core/errors"
	"proflow/core/rtf"
)

func textSlide(texts ...string) *PresentationSlide {
	s := &Slide{
		UUID: NewIdentifier(),
		Size: DefaultCanvas,
	}
	for _, txt := range texts {
		s.Elements = append(s.Elements, &Element{
			UUID: NewIdentifier(),
			Bounds: Rect{
				Origin: Point{X: 100, Y: 100},
				Size:   Size{Width: 1720, Height: 880},
			},
			Text: &TextElement{
				RTFData:   rtf.Encode([]Run{{Text: txt}}, rtf.DefaultOptions()),
				Font:      Font{Name: "Helvetica", Size: 72, Bold: true},
				Color:     White,
				Alignment: AlignCenter,
			},
		})
	}
	return &PresentationSlide{Slide: s}
}

type Run = rtf.Run

func TestNewIdentifierUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := NewIdentifier()
		if seen[id] {
			t.Fatalf("duplicate identifier %s", id)
		}
		if id != strings.ToUpper(id) {
			t.Fatalf("identifier not uppercase: %s", id)
		}
		seen[id] = true
	}
}

func TestBuilderChainsCues(t *testing.T) {
	doc := NewBuilder("John 3", "scripture").
		Group("Verses", Color{Red: 0.2, Green: 0.4, Blue: 0.8, Alpha: 1}).
		AddSlide("John 3:16", textSlide("For God so loved the world")).
		AddSlide("John 3:17", textSlide("For God did not send his Son")).
		Build()

	if doc.Version != FormatVersion {
		t.Errorf("Version = %d, want %d", doc.Version, FormatVersion)
	}
	if len(doc.Cues) != 2 {
		t.Fatalf("len(Cues) = %d, want 2", len(doc.Cues))
	}
	first, second := doc.Cues[0], doc.Cues[1]
	if first.CompletionTargetType != CompletionTargetNext {
		t.Error("first cue should chain to the next")
	}
	if first.CompletionTargetUUID != second.UUID {
		t.Errorf("first cue targets %s, want %s", first.CompletionTargetUUID, second.UUID)
	}
	if second.CompletionTargetUUID != "" {
		t.Error("last cue should not chain anywhere")
	}

	if len(doc.CueGroups) != 1 {
		t.Fatalf("len(CueGroups) = %d, want 1", len(doc.CueGroups))
	}
	cg := doc.CueGroups[0]
	if cg.Group.Name != "Verses" {
		t.Errorf("group name = %q", cg.Group.Name)
	}
	if len(cg.CueIdentifiers) != 2 || cg.CueIdentifiers[0] != first.UUID {
		t.Errorf("group cues = %v", cg.CueIdentifiers)
	}

	if len(doc.Arrangements) != 1 {
		t.Fatalf("len(Arrangements) = %d, want 1", len(doc.Arrangements))
	}
	if doc.SelectedArrangement != doc.Arrangements[0].UUID {
		t.Error("default arrangement should be selected")
	}
}

func TestCloneSlideRegeneratesIdentity(t *testing.T) {
	src := textSlide("Amazing grace").Slide
	src.Unknown = UnknownFields{{Number: 99, Raw: []byte{0x9a, 0x06, 0x01, 0x41}}}

	dst := CloneSlide(src)
	if dst.UUID == src.UUID {
		t.Error("clone should carry a fresh slide identifier")
	}
	if dst.Elements[0].UUID == src.Elements[0].UUID {
		t.Error("clone should carry fresh element identifiers")
	}
	if !StyleEquivalent(src.Elements[0], dst.Elements[0]) {
		t.Error("clone should preserve element style")
	}
	if len(dst.Unknown) != 1 || string(dst.Unknown[0].Raw) != string(src.Unknown[0].Raw) {
		t.Error("clone should preserve unknown fields")
	}
	// Deep copy: mutating the clone's raw bytes must not touch the source.
	dst.Unknown[0].Raw[0] = 0
	if src.Unknown[0].Raw[0] == 0 {
		t.Error("unknown fields should be deep-copied")
	}
}

func TestCloneSlideWithText(t *testing.T) {
	src := textSlide("placeholder one", "placeholder two").Slide
	runs := [][]rtf.Run{{{Text: "new content"}}}

	dst, err := CloneSlideWithText(src, runs, rtf.DefaultOptions())
	if err != nil {
		t.Fatalf("CloneSlideWithText failed: %v", err)
	}
	got, _, err := rtf.Decode(dst.Elements[0].Text.RTFData)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if rtf.PlainText(got) != "new content" {
		t.Errorf("first element text = %q", rtf.PlainText(got))
	}
	// Surplus text elements keep their template content.
	got2, _, _ := rtf.Decode(dst.Elements[1].Text.RTFData)
	if rtf.PlainText(got2) != "placeholder two" {
		t.Errorf("second element text = %q", rtf.PlainText(got2))
	}
	if !StyleEquivalent(src.Elements[0], dst.Elements[0]) {
		t.Error("text replacement must not alter style")
	}
}

func TestCloneSlideWithTextOverflow(t *testing.T) {
	src := textSlide("only one").Slide
	too := [][]rtf.Run{{{Text: "a"}}, {{Text: "b"}}}
	if _, err := CloneSlideWithText(src, too, rtf.DefaultOptions()); !errors.Is(err, errors.ErrContentOverflow) {
		t.Errorf("want ErrContentOverflow, got %v", err)
	}
}

func TestValidateTagPayloadMismatch(t *testing.T) {
	doc := NewBuilder("x", "song").
		AddSlide("v1", textSlide("line")).
		Build()
	if err := Validate(doc); err != nil {
		t.Fatalf("well-formed document should validate: %v", err)
	}

	doc.Cues[0].Actions[0].Type = ActionTypePropSlide
	err := Validate(doc)
	if !errors.Is(err, errors.ErrTypeTagMismatch) {
		t.Fatalf("want ErrTypeTagMismatch, got %v", err)
	}
	if !strings.Contains(err.Error(), "cue[0].action[0]") {
		t.Errorf("error should locate the action: %v", err)
	}
}

func TestDiffReportsPositionalPaths(t *testing.T) {
	a := NewBuilder("doc", "song").AddSlide("v1", textSlide("hello")).Build()
	b := NewBuilder("doc", "song").AddSlide("v1", textSlide("world")).Build()

	diffs := Diff(a, b, DiffOptions{IgnoreIdentity: true})
	if len(diffs) != 1 {
		t.Fatalf("got %d mismatches: %v", len(diffs), diffs)
	}
	if want := "cue[0].action[0].slide.element[0].text.rtf"; diffs[0].Path != want {
		t.Errorf("path = %q, want %q", diffs[0].Path, want)
	}

	if got := Diff(a, b, DiffOptions{IgnoreIdentity: true, IgnoreText: true}); len(got) != 0 {
		t.Errorf("IgnoreText should suppress the mismatch: %v", got)
	}
}

func TestDiffIdentity(t *testing.T) {
	a := NewBuilder("doc", "song").AddSlide("v1", textSlide("same")).Build()
	b := NewBuilder("doc", "song").AddSlide("v1", textSlide("same")).Build()

	if got := Diff(a, b, DiffOptions{IgnoreIdentity: true}); len(got) != 0 {
		t.Errorf("structurally equal documents should match: %v", got)
	}
	if got := Diff(a, b, DiffOptions{}); len(got) == 0 {
		t.Error("identifiers differ, so a strict diff should report mismatches")
	}
}

func TestDiffLengthMismatchStopsDescent(t *testing.T) {
	a := NewBuilder("doc", "song").
		AddSlide("v1", textSlide("one")).
		AddSlide("v2", textSlide("two")).
		Build()
	b := NewBuilder("doc", "song").AddSlide("v1", textSlide("one")).Build()

	diffs := Diff(a, b, DiffOptions{IgnoreIdentity: true})
	var sawLength bool
	for _, m := range diffs {
		if m.Path == "cue.length" {
			sawLength = true
		}
		if strings.HasPrefix(m.Path, "cue[1]") {
			t.Errorf("should not descend into the missing cue: %v", m)
		}
	}
	if !sawLength {
		t.Errorf("want a cue.length mismatch, got %v", diffs)
	}
}

func TestExtractText(t *testing.T) {
	doc := NewBuilder("Isaiah 35", "scripture").
		AddSlide("Isaiah 35:1", textSlide("¹The wilderness and the dry land shall be glad")).
		AddSlide("Isaiah 35:2", textSlide("²it shall blossom abundantly")).
		Build()

	slides := ExtractText(doc)
	if len(slides) != 2 {
		t.Fatalf("got %d slides", len(slides))
	}
	if slides[0].CueName != "Isaiah 35:1" {
		t.Errorf("cue name = %q", slides[0].CueName)
	}
	if len(slides[0].Lines) != 1 || !strings.Contains(slides[0].Lines[0], "wilderness") {
		t.Errorf("lines = %v", slides[0].Lines)
	}
	if !strings.HasPrefix(slides[0].Lines[0], "¹") {
		t.Errorf("verse marker should survive extraction: %q", slides[0].Lines[0])
	}

	full := PlainText(doc)
	if !strings.Contains(full, "blossom") {
		t.Errorf("document text = %q", full)
	}
}
