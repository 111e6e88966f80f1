package rtf

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// TestEncodeDecodeRoundTrip verifies the round-trip law: decode recovers
// exactly the run boundaries encode produced.
func TestEncodeDecodeRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		runs []Run
	}{
		{
			"plain text",
			[]Run{{Text: "Amazing grace how sweet the sound"}},
		},
		{
			"superscript verse numbers",
			[]Run{
				{Text: "15", Superscript: true},
				{Text: "For God so loved the world "},
				{Text: "16", Superscript: true},
				{Text: "that he gave his only Son"},
			},
		},
		{
			"bold and italic",
			[]Run{
				{Text: "plain "},
				{Text: "bold", Bold: true},
				{Text: " and "},
				{Text: "italic", Italic: true},
			},
		},
		{
			"bold italic combination",
			[]Run{{Text: "both", Bold: true, Italic: true}},
		},
		{
			"size override",
			[]Run{
				{Text: "big"},
				{Text: "small", Size: 36},
			},
		},
		{
			"superscript with size override",
			[]Run{
				{Text: "a"},
				{Text: "1", Superscript: true, Size: 40},
				{Text: "b"},
			},
		},
		{
			"newlines",
			[]Run{{Text: "line one\nline two\nline three"}},
		},
		{
			"escaped characters",
			[]Run{{Text: `braces {and} back\slash`}},
		},
		{
			"non-ascii",
			[]Run{{Text: "déjà vu"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := Encode(tt.runs, DefaultOptions())
			got, opts, err := Decode(data)
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			if diff := cmp.Diff(Normalize(tt.runs), got); diff != "" {
				t.Errorf("run mismatch (-want +got):\n%s", diff)
			}
			if opts.FontSize != DefaultOptions().FontSize {
				t.Errorf("FontSize = %v, want %v", opts.FontSize, DefaultOptions().FontSize)
			}
		})
	}
}

func TestDecodeRecoversFontName(t *testing.T) {
	data := Encode([]Run{{Text: "x"}}, Options{FontName: "Georgia", FontSize: 48})
	_, opts, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if opts.FontName != "Georgia" {
		t.Errorf("FontName = %q, want Georgia", opts.FontName)
	}
	if opts.FontSize != 48 {
		t.Errorf("FontSize = %v, want 48", opts.FontSize)
	}
}

func TestDecodeInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty", ""},
		{"no header", "{plain}"},
		{"unclosed group", `{\rtf1 hello`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := Decode([]byte(tt.data)); err == nil {
				t.Error("Decode should fail")
			}
		})
	}
}

func TestDecodeForeignStream(t *testing.T) {
	// A stream the application itself might produce: \b0 toggles, fonttbl.
	data := `{\rtf1\ansi{\fonttbl{\f0\fswiss Helvetica;}}\f0\fs144 Hello \b bold\b0  world\par }`
	runs, _, err := Decode([]byte(data))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	text := PlainText(runs)
	if !strings.Contains(text, "Hello") || !strings.Contains(text, "bold") || !strings.Contains(text, "world") {
		t.Errorf("unexpected text: %q", text)
	}
	var sawBold bool
	for _, r := range runs {
		if r.Bold && strings.Contains(r.Text, "bold") {
			sawBold = true
		}
		if r.Bold && strings.Contains(r.Text, "world") {
			t.Error("\\b0 should end the bold run")
		}
	}
	if !sawBold {
		t.Error("expected a bold run")
	}
}

func TestNormalizeCoalesces(t *testing.T) {
	runs := []Run{
		{Text: "a"},
		{Text: "b"},
		{Text: "c", Bold: true},
		{Text: ""},
		{Text: "d", Bold: true},
	}
	got := Normalize(runs)
	want := []Run{
		{Text: "ab"},
		{Text: "cd", Bold: true},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Normalize mismatch (-want +got):\n%s", diff)
	}
}

func TestSplitSuperscript(t *testing.T) {
	r := Run{Text: "15For God", Bold: true, Size: 60}
	pieces, err := SplitSuperscript(r, 0, 2)
	if err != nil {
		t.Fatalf("SplitSuperscript failed: %v", err)
	}
	want := []Run{
		{Text: "15", Bold: true, Size: 60, Superscript: true},
		{Text: "For God", Bold: true, Size: 60},
	}
	if diff := cmp.Diff(want, pieces); diff != "" {
		t.Errorf("pieces mismatch (-want +got):\n%s", diff)
	}
}

func TestSplitSuperscriptMiddle(t *testing.T) {
	r := Run{Text: "world 16that he gave", Italic: true}
	pieces, err := SplitSuperscript(r, 6, 8)
	if err != nil {
		t.Fatalf("SplitSuperscript failed: %v", err)
	}
	want := []Run{
		{Text: "world ", Italic: true},
		{Text: "16", Italic: true, Superscript: true},
		{Text: "that he gave", Italic: true},
	}
	if diff := cmp.Diff(want, pieces); diff != "" {
		t.Errorf("pieces mismatch (-want +got):\n%s", diff)
	}
}

func TestSplitSuperscriptInvalidRange(t *testing.T) {
	r := Run{Text: "abc"}
	for _, rng := range [][2]int{{-1, 2}, {2, 2}, {1, 9}} {
		if _, err := SplitSuperscript(r, rng[0], rng[1]); err == nil {
			t.Errorf("range %v should fail", rng)
		}
	}
}

func TestRunsFromMarkedText(t *testing.T) {
	runs := RunsFromMarkedText("¹⁵For God so loved the world ¹⁶that he gave his only Son")
	want := []Run{
		{Text: "15", Superscript: true},
		{Text: "For God so loved the world "},
		{Text: "16", Superscript: true},
		{Text: "that he gave his only Son"},
	}
	if diff := cmp.Diff(want, runs); diff != "" {
		t.Errorf("runs mismatch (-want +got):\n%s", diff)
	}
}

func TestMarkedTextRoundTrip(t *testing.T) {
	text := "¹⁵The wilderness and dry land shall be glad ¹⁶the desert shall rejoice"
	if got := MarkedTextFromRuns(RunsFromMarkedText(text)); got != text {
		t.Errorf("round trip = %q, want %q", got, text)
	}
}

func TestSuperscriptNumber(t *testing.T) {
	tests := []struct {
		n    uint
		want string
	}{
		{0, "⁰"},
		{1, "¹"},
		{15, "¹⁵"},
		{100, "¹⁰⁰"},
	}
	for _, tt := range tests {
		if got := Superscript(tt.n); got != tt.want {
			t.Errorf("Superscript(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}
