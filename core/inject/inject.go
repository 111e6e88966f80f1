// Package inject fits content segments (verses, stanza lines, notice
// paragraphs) onto slides. Segments are kept whole whenever they fit; a
// segment splits internally, at word boundaries, only when it alone
// exceeds a slide's capacity. Nothing is ever dropped: losing content is a
// programming defect and reports as such.
package inject

import (
	"math"
	"strings"
	"unicode"

	"proflow/core/errors"
	"proflow/core/presentation"
	"proflow/core/rtf"
)

// Segment is one atomic unit of content: it lands on a single slide intact
// unless it cannot fit on any slide by itself.
type Segment struct {
	// Label names the segment for cue titles, e.g. "John 3:16" or "Verse 2".
	Label string
	Runs  []rtf.Run
}

// PlainText flattens the segment's runs.
func (s Segment) PlainText() string { return rtf.PlainText(s.Runs) }

// Capacity is how much text one slide holds, derived from the template's
// text element geometry.
type Capacity struct {
	Lines        int
	CharsPerLine int
}

// chars is the character budget of one slide.
func (c Capacity) chars() int { return c.Lines * c.CharsPerLine }

// DefaultCapacity suits a 1920x1080 canvas at 72pt.
var DefaultCapacity = Capacity{Lines: 4, CharsPerLine: 40}

// CapacityForElement estimates capacity from a template text element's
// bounds and font size. Line height and average glyph width are rough but
// only feed a packing heuristic, not layout.
func CapacityForElement(el *presentation.Element) Capacity {
	if el == nil || !el.IsText() || el.Text.Font.Size <= 0 {
		return DefaultCapacity
	}
	size := el.Text.Font.Size
	lines := int(el.Bounds.Size.Height / (size * 1.2))
	chars := int(el.Bounds.Size.Width / (size * 0.55))
	if lines < 1 {
		lines = 1
	}
	if chars < 8 {
		chars = 8
	}
	return Capacity{Lines: lines, CharsPerLine: chars}
}

// Placement is the content of one slide: the merged run list and the
// labels of every segment it holds.
type Placement struct {
	Runs   []rtf.Run
	Labels []string
}

// Place packs segments into slide-sized placements. Segment order is
// preserved; segment boundaries are preferred break points; a lone
// oversized segment splits at word boundaries. The result always carries
// every input character (whitespace aside), verified before returning.
func Place(segments []Segment, capacity Capacity) ([]Placement, error) {
	if capacity.Lines < 1 || capacity.CharsPerLine < 1 {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "capacity %+v", capacity)
	}

	budget := capacity.chars()
	var out []Placement
	var cur Placement
	var curLen int

	flush := func() {
		if curLen == 0 {
			return
		}
		cur.Runs = rtf.Normalize(cur.Runs)
		out = append(out, cur)
		cur = Placement{}
		curLen = 0
	}

	for _, seg := range segments {
		segLen := len([]rune(seg.PlainText()))
		if segLen == 0 {
			continue
		}

		if segLen > budget {
			// The segment cannot fit on any slide whole; split it.
			flush()
			pieces := splitRuns(seg.Runs, budget)
			for i, piece := range pieces {
				p := Placement{Runs: rtf.Normalize(piece), Labels: []string{seg.Label}}
				if i < len(pieces)-1 {
					out = append(out, p)
					continue
				}
				cur = p
				curLen = len([]rune(rtf.PlainText(piece)))
			}
			continue
		}

		joiner := 0
		if curLen > 0 {
			joiner = 1
		}
		if curLen+joiner+segLen > budget {
			flush()
			joiner = 0
		}
		if joiner == 1 {
			cur.Runs = append(cur.Runs, rtf.Run{Text: " "})
			curLen++
		}
		cur.Runs = append(cur.Runs, seg.Runs...)
		cur.Labels = append(cur.Labels, seg.Label)
		curLen += segLen
	}
	flush()

	if err := verifyNoLoss(segments, out); err != nil {
		return nil, err
	}
	return out, nil
}

// splitRuns cuts a run list into pieces of at most limit characters,
// breaking at word boundaries. Style attributes carry through each cut.
func splitRuns(runs []rtf.Run, limit int) [][]rtf.Run {
	var pieces [][]rtf.Run
	var cur []rtf.Run
	curLen := 0

	for _, run := range runs {
		for _, word := range splitWords(run.Text) {
			wlen := len([]rune(word))
			if curLen > 0 && curLen+wlen > limit {
				pieces = append(pieces, cur)
				cur = nil
				curLen = 0
				// A leading space at a fresh piece is cut residue.
				if strings.TrimSpace(word) == "" {
					continue
				}
			}
			piece := run
			piece.Text = word
			cur = append(cur, piece)
			curLen += wlen
		}
	}
	if curLen > 0 {
		pieces = append(pieces, cur)
	}
	return pieces
}

// splitWords cuts text into alternating word and whitespace chunks, so a
// piece boundary never lands mid-word.
func splitWords(text string) []string {
	var out []string
	var b strings.Builder
	var inSpace bool
	for i, r := range text {
		space := unicode.IsSpace(r)
		if i > 0 && space != inSpace {
			out = append(out, b.String())
			b.Reset()
		}
		inSpace = space
		b.WriteRune(r)
	}
	if b.Len() > 0 {
		out = append(out, b.String())
	}
	return out
}

// verifyNoLoss checks that every non-whitespace character of the input
// appears, in order, in the output.
func verifyNoLoss(segments []Segment, placements []Placement) error {
	var want, got strings.Builder
	for _, seg := range segments {
		want.WriteString(stripSpace(seg.PlainText()))
	}
	for _, p := range placements {
		got.WriteString(stripSpace(rtf.PlainText(p.Runs)))
	}
	if want.String() != got.String() {
		return errors.Wrapf(errors.ErrContentOverflow,
			"placed %d of %d content characters", got.Len(), want.Len())
	}
	return nil
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// SlideCount predicts how many slides Place will produce, for progress
// reporting before the heavy work runs.
func SlideCount(segments []Segment, capacity Capacity) int {
	if capacity.Lines < 1 || capacity.CharsPerLine < 1 {
		return 0
	}
	budget := capacity.chars()
	count, curLen := 0, 0
	for _, seg := range segments {
		segLen := len([]rune(seg.PlainText()))
		if segLen == 0 {
			continue
		}
		if segLen > budget {
			if curLen > 0 {
				count++
			}
			full := int(math.Ceil(float64(segLen) / float64(budget)))
			count += full - 1
			curLen = segLen - (full-1)*budget
			continue
		}
		joiner := 0
		if curLen > 0 {
			joiner = 1
		}
		if curLen+joiner+segLen > budget {
			count++
			curLen = segLen
			continue
		}
		curLen += joiner + segLen
	}
	if curLen > 0 {
		count++
	}
	return count
}
