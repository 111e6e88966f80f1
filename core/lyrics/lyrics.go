// Package lyrics parses song content into labeled stanzas, from the
// editor's plain-text form ("[Verse 1]" headers, blank-line separation)
// and from OpenLyrics XML song files.
package lyrics

import (
	"fmt"
	"strings"

	"proflow/core/errors"
	"proflow/core/presentation"
)

// Stanza is one block of lyrics under a label.
type Stanza struct {
	Label string
	Lines []string
}

// Song is a parsed song: title, optional author, stanzas in order.
type Song struct {
	Title   string
	Author  string
	Stanzas []Stanza
}

// ParseText parses editor-style song text. Stanzas separate on blank
// lines; a "[Verse 1]"-style header labels the stanza that follows it;
// unlabeled stanzas are numbered as verses in order.
func ParseText(title, input string) (*Song, error) {
	song := &Song{Title: title}

	var cur *Stanza
	autoVerse := 0
	flush := func() {
		if cur != nil && len(cur.Lines) > 0 {
			song.Stanzas = append(song.Stanzas, *cur)
		}
		cur = nil
	}

	for _, raw := range strings.Split(input, "\n") {
		line := strings.TrimRight(raw, " \t\r")
		trimmed := strings.TrimSpace(line)

		if trimmed == "" {
			flush()
			continue
		}
		if label, ok := parseHeader(trimmed); ok {
			flush()
			cur = &Stanza{Label: label}
			continue
		}
		if cur == nil {
			autoVerse++
			cur = &Stanza{Label: fmt.Sprintf("Verse %d", autoVerse)}
		}
		cur.Lines = append(cur.Lines, trimmed)
	}
	flush()

	if len(song.Stanzas) == 0 {
		return nil, errors.NewParse("lyrics", "", "no stanzas in song text")
	}
	return song, nil
}

// parseHeader recognizes "[Chorus]"-style stanza labels.
func parseHeader(line string) (string, bool) {
	if len(line) < 3 || line[0] != '[' || line[len(line)-1] != ']' {
		return "", false
	}
	label := strings.TrimSpace(line[1 : len(line)-1])
	if label == "" {
		return "", false
	}
	return label, true
}

// Group colors by stanza kind, matching the editor's palette.
var (
	verseColor     = presentation.Color{Red: 0.16, Green: 0.35, Blue: 0.75, Alpha: 1}
	chorusColor    = presentation.Color{Red: 0.75, Green: 0.22, Blue: 0.22, Alpha: 1}
	bridgeColor    = presentation.Color{Red: 0.22, Green: 0.6, Blue: 0.32, Alpha: 1}
	preChorusColor = presentation.Color{Red: 0.8, Green: 0.55, Blue: 0.18, Alpha: 1}
	otherColor     = presentation.Color{Red: 0.45, Green: 0.45, Blue: 0.5, Alpha: 1}
)

// GroupColor picks the display color for a stanza label.
func GroupColor(label string) presentation.Color {
	l := strings.ToLower(label)
	switch {
	case strings.HasPrefix(l, "pre-chorus"), strings.HasPrefix(l, "prechorus"):
		return preChorusColor
	case strings.HasPrefix(l, "verse"):
		return verseColor
	case strings.HasPrefix(l, "chorus"), strings.HasPrefix(l, "refrain"):
		return chorusColor
	case strings.HasPrefix(l, "bridge"):
		return bridgeColor
	default:
		return otherColor
	}
}
