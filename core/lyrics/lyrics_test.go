package lyrics

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseTextLabeledStanzas(t *testing.T) {
	input := `[Verse 1]
Amazing grace how sweet the sound
That saved a wretch like me

[Chorus]
Praise God, praise God

[Verse 2]
Through many dangers, toils and snares
I have already come`

	song, err := ParseText("Amazing Grace", input)
	if err != nil {
		t.Fatalf("ParseText failed: %v", err)
	}
	want := []Stanza{
		{Label: "Verse 1", Lines: []string{"Amazing grace how sweet the sound", "That saved a wretch like me"}},
		{Label: "Chorus", Lines: []string{"Praise God, praise God"}},
		{Label: "Verse 2", Lines: []string{"Through many dangers, toils and snares", "I have already come"}},
	}
	if diff := cmp.Diff(want, song.Stanzas); diff != "" {
		t.Errorf("stanzas mismatch (-want +got):\n%s", diff)
	}
	if song.Title != "Amazing Grace" {
		t.Errorf("Title = %q", song.Title)
	}
}

func TestParseTextAutoLabels(t *testing.T) {
	input := "First stanza line one\nline two\n\nSecond stanza"
	song, err := ParseText("x", input)
	if err != nil {
		t.Fatalf("ParseText failed: %v", err)
	}
	if len(song.Stanzas) != 2 {
		t.Fatalf("got %d stanzas", len(song.Stanzas))
	}
	if song.Stanzas[0].Label != "Verse 1" || song.Stanzas[1].Label != "Verse 2" {
		t.Errorf("labels = %q, %q", song.Stanzas[0].Label, song.Stanzas[1].Label)
	}
}

func TestParseTextEmpty(t *testing.T) {
	if _, err := ParseText("x", "\n\n  \n"); err == nil {
		t.Error("empty input should fail")
	}
	if _, err := ParseText("x", "[Verse 1]\n\n"); err == nil {
		t.Error("a header with no lines should fail")
	}
}

func TestGroupColor(t *testing.T) {
	if GroupColor("Verse 1") != GroupColor("Verse 2") {
		t.Error("all verses share a color")
	}
	if GroupColor("Verse 1") == GroupColor("Chorus") {
		t.Error("verse and chorus colors differ")
	}
	if GroupColor("Pre-Chorus") == GroupColor("Chorus") {
		t.Error("pre-chorus is not chorus")
	}
	if GroupColor("Bridge") == GroupColor("Verse 1") {
		t.Error("bridge and verse colors differ")
	}
}

const openLyricsSample = `<?xml version="1.0" encoding="UTF-8"?>
<song xmlns="http://openlyrics.info/namespace/2009/song" version="0.8">
  <properties>
    <titles><title>Amazing Grace</title></titles>
    <authors><author>John Newton</author></authors>
  </properties>
  <lyrics>
    <verse name="v1">
      <lines>Amazing grace how sweet the sound<br/>That saved a wretch like me</lines>
    </verse>
    <verse name="c">
      <lines>Praise God, praise God</lines>
    </verse>
    <verse name="b1">
      <lines>My chains are gone</lines>
    </verse>
  </lyrics>
</song>`

func TestImportOpenLyrics(t *testing.T) {
	song, err := ImportOpenLyrics(strings.NewReader(openLyricsSample))
	if err != nil {
		t.Fatalf("ImportOpenLyrics failed: %v", err)
	}
	if song.Title != "Amazing Grace" {
		t.Errorf("Title = %q", song.Title)
	}
	if song.Author != "John Newton" {
		t.Errorf("Author = %q", song.Author)
	}
	want := []Stanza{
		{Label: "Verse 1", Lines: []string{"Amazing grace how sweet the sound", "That saved a wretch like me"}},
		{Label: "Chorus", Lines: []string{"Praise God, praise God"}},
		{Label: "Bridge 1", Lines: []string{"My chains are gone"}},
	}
	if diff := cmp.Diff(want, song.Stanzas); diff != "" {
		t.Errorf("stanzas mismatch (-want +got):\n%s", diff)
	}
}

func TestImportOpenLyricsInvalid(t *testing.T) {
	if _, err := ImportOpenLyrics(strings.NewReader("<song></song>")); err == nil {
		t.Error("song with no lyrics should fail")
	}
}

func TestLabelFromVerseName(t *testing.T) {
	tests := map[string]string{
		"v1": "Verse 1",
		"v2": "Verse 2",
		"c":  "Chorus",
		"c2": "Chorus 2",
		"b":  "Bridge",
		"p1": "Pre-Chorus 1",
		"e":  "Ending",
		"":   "Verse",
	}
	for in, want := range tests {
		if got := labelFromVerseName(in); got != want {
			t.Errorf("labelFromVerseName(%q) = %q, want %q", in, got, want)
		}
	}
}
