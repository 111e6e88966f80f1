package lyrics

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/antchfx/xmlquery"

	"proflow/core/errors"
)

// ImportOpenLyrics parses an OpenLyrics XML song. Verse names follow the
// format's convention: v1, v2 for verses, c for chorus, b for bridge, p
// for pre-chorus, e for ending.
func ImportOpenLyrics(r io.Reader) (*Song, error) {
	doc, err := xmlquery.Parse(r)
	if err != nil {
		return nil, errors.NewParse("openlyrics", "", fmt.Sprintf("bad XML: %v", err))
	}

	song := &Song{}
	if n := xmlquery.FindOne(doc, "//properties/titles/title"); n != nil {
		song.Title = strings.TrimSpace(n.InnerText())
	}
	if n := xmlquery.FindOne(doc, "//properties/authors/author"); n != nil {
		song.Author = strings.TrimSpace(n.InnerText())
	}

	for _, verse := range xmlquery.Find(doc, "//lyrics/verse") {
		stanza := Stanza{Label: labelFromVerseName(verse.SelectAttr("name"))}
		for _, lines := range xmlquery.Find(verse, "lines") {
			stanza.Lines = append(stanza.Lines, splitLines(lines)...)
		}
		if len(stanza.Lines) > 0 {
			song.Stanzas = append(song.Stanzas, stanza)
		}
	}

	if len(song.Stanzas) == 0 {
		return nil, errors.NewParse("openlyrics", "", "song has no lyrics")
	}
	return song, nil
}

// ImportOpenLyricsFile imports a song from a file path.
func ImportOpenLyricsFile(path string) (*Song, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewIO("open", path, err)
	}
	defer f.Close()

	song, err := ImportOpenLyrics(f)
	if err != nil {
		var pe *errors.ParseError
		if errors.As(err, &pe) {
			pe.Path = path
		}
		return nil, err
	}
	return song, nil
}

// splitLines flattens a <lines> node to text lines, honoring <br/> breaks.
func splitLines(node *xmlquery.Node) []string {
	var b strings.Builder
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		switch {
		case child.Type == xmlquery.TextNode:
			b.WriteString(child.Data)
		case child.Data == "br":
			b.WriteByte('\n')
		default:
			b.WriteString(child.InnerText())
		}
	}
	var out []string
	for _, line := range strings.Split(b.String(), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

// labelFromVerseName expands OpenLyrics short verse names to display
// labels: "v2" becomes "Verse 2", "c" becomes "Chorus".
func labelFromVerseName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return "Verse"
	}

	kind := name[:1]
	num := ""
	if n, err := strconv.Atoi(name[1:]); err == nil {
		num = fmt.Sprintf(" %d", n)
	}

	switch kind {
	case "v":
		return "Verse" + num
	case "c":
		return "Chorus" + num
	case "b":
		return "Bridge" + num
	case "p":
		return "Pre-Chorus" + num
	case "t":
		return "Tag" + num
	case "e":
		return "Ending" + num
	default:
		return strings.ToUpper(name[:1]) + name[1:]
	}
}
