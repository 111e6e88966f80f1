package presentation

import (
	"strings"

	"proflow/core/rtf"
)

// SlideText is the recovered text of one slide, in element z-order.
type SlideText struct {
	CueName string
	Lines   []string
}

// ExtractText walks a document and decodes the rich-text payload of every
// text element, one entry per presentation slide. Elements whose payload
// fails to decode contribute nothing rather than aborting the walk.
func ExtractText(doc *Document) []SlideText {
	var out []SlideText
	for _, cue := range doc.Cues {
		for _, act := range cue.Actions {
			if act.Slide == nil || act.Slide.Slide == nil {
				continue
			}
			st := SlideText{CueName: cue.Name}
			for _, el := range act.Slide.Slide.Elements {
				if !el.IsText() {
					continue
				}
				runs, _, err := rtf.Decode(el.Text.RTFData)
				if err != nil {
					continue
				}
				text := strings.TrimRight(rtf.MarkedTextFromRuns(runs), "\n")
				if text != "" {
					st.Lines = append(st.Lines, text)
				}
			}
			out = append(out, st)
		}
	}
	return out
}

// PlainText flattens the extracted text of a whole document, slides
// separated by blank lines.
func PlainText(doc *Document) string {
	var b strings.Builder
	for i, st := range ExtractText(doc) {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(strings.Join(st.Lines, "\n"))
	}
	return b.String()
}
