package inject

import (
	"fmt"
	"strings"
	"testing"

	"proflow/core/errors"
	"proflow/core/presentation"
	"proflow/core/rtf"
)

func verse(num uint, text string) Segment {
	return Segment{
		Label: fmt.Sprintf("v%d", num),
		Runs: []rtf.Run{
			{Text: fmt.Sprintf("%d", num), Superscript: true},
			{Text: text},
		},
	}
}

func TestPlaceKeepsSegmentsWhole(t *testing.T) {
	segments := []Segment{
		verse(1, "The wilderness and the dry land shall be glad."),
		verse(2, "The desert shall rejoice and blossom."),
		verse(3, "They shall see the glory of the Lord."),
	}
	// Each verse is under one slide's budget; two fit per slide.
	capacity := Capacity{Lines: 4, CharsPerLine: 25}

	placements, err := Place(segments, capacity)
	if err != nil {
		t.Fatalf("Place failed: %v", err)
	}
	if len(placements) != 2 {
		t.Fatalf("got %d placements, want 2: %+v", len(placements), placements)
	}
	if got := placements[0].Labels; len(got) != 2 || got[0] != "v1" || got[1] != "v2" {
		t.Errorf("first slide labels = %v", got)
	}
	if got := placements[1].Labels; len(got) != 1 || got[0] != "v3" {
		t.Errorf("second slide labels = %v", got)
	}
	// Verse markers stay superscript.
	if !placements[0].Runs[0].Superscript || placements[0].Runs[0].Text != "1" {
		t.Errorf("first run = %+v", placements[0].Runs[0])
	}
}

func TestPlaceSplitsOversizedSegment(t *testing.T) {
	long := strings.Repeat("word ", 40) // ~200 chars, budget is 60
	segments := []Segment{{Label: "v1", Runs: []rtf.Run{{Text: long}}}}

	placements, err := Place(segments, Capacity{Lines: 3, CharsPerLine: 20})
	if err != nil {
		t.Fatalf("Place failed: %v", err)
	}
	if len(placements) < 3 {
		t.Fatalf("oversized segment should spread over slides, got %d", len(placements))
	}
	for i, p := range placements {
		text := rtf.PlainText(p.Runs)
		for _, w := range strings.Fields(text) {
			if w != "word" {
				t.Errorf("placement %d split mid-word: %q", i, text)
			}
		}
		if p.Labels[0] != "v1" {
			t.Errorf("placement %d labels = %v", i, p.Labels)
		}
	}
}

func TestPlaceLosesNothing(t *testing.T) {
	var segments []Segment
	for i := uint(1); i <= 20; i++ {
		segments = append(segments, verse(i, strings.Repeat("glory ", int(i))))
	}
	placements, err := Place(segments, Capacity{Lines: 4, CharsPerLine: 30})
	if err != nil {
		t.Fatalf("Place failed: %v", err)
	}

	var want, got strings.Builder
	for _, s := range segments {
		want.WriteString(stripSpace(s.PlainText()))
	}
	for _, p := range placements {
		got.WriteString(stripSpace(rtf.PlainText(p.Runs)))
	}
	if want.String() != got.String() {
		t.Error("placement dropped content")
	}
}

func TestPlaceSkipsEmptySegments(t *testing.T) {
	segments := []Segment{
		{Label: "empty"},
		verse(1, "text"),
	}
	placements, err := Place(segments, DefaultCapacity)
	if err != nil {
		t.Fatalf("Place failed: %v", err)
	}
	if len(placements) != 1 || len(placements[0].Labels) != 1 {
		t.Errorf("placements = %+v", placements)
	}
}

func TestPlaceInvalidCapacity(t *testing.T) {
	_, err := Place([]Segment{verse(1, "x")}, Capacity{})
	if !errors.Is(err, errors.ErrInvalidInput) {
		t.Errorf("want ErrInvalidInput, got %v", err)
	}
}

func TestCapacityForElement(t *testing.T) {
	el := &presentation.Element{
		Bounds: presentation.Rect{
			Size: presentation.Size{Width: 1720, Height: 880},
		},
		Text: &presentation.TextElement{
			Font: presentation.Font{Name: "Helvetica", Size: 72},
		},
	}
	got := CapacityForElement(el)
	if got.Lines < 2 || got.Lines > 20 {
		t.Errorf("Lines = %d, out of plausible range", got.Lines)
	}
	if got.CharsPerLine < 10 {
		t.Errorf("CharsPerLine = %d, out of plausible range", got.CharsPerLine)
	}

	if got := CapacityForElement(nil); got != DefaultCapacity {
		t.Errorf("nil element should fall back to default, got %+v", got)
	}
}

func TestSlideCountMatchesPlace(t *testing.T) {
	segments := []Segment{
		verse(1, "The wilderness and the dry land shall be glad."),
		verse(2, "The desert shall rejoice and blossom."),
		verse(3, "They shall see the glory of the Lord."),
		verse(4, "Strengthen the weak hands."),
	}
	capacity := Capacity{Lines: 4, CharsPerLine: 25}
	placements, err := Place(segments, capacity)
	if err != nil {
		t.Fatalf("Place failed: %v", err)
	}
	if got := SlideCount(segments, capacity); got != len(placements) {
		t.Errorf("SlideCount = %d, Place produced %d", got, len(placements))
	}
}
