// Package rtf encodes and decodes the styled text runs embedded in
// presentation text elements. The consuming application stores text as RTF;
// this is a pure Go implementation so the run boundaries it emits are the
// run boundaries it recovers.
package rtf

import (
	"fmt"
	"strconv"
	"strings"

	"proflow/core/errors"
)

// Run is a contiguous span of text sharing one set of style attributes.
type Run struct {
	Text        string
	Bold        bool
	Italic      bool
	Superscript bool
	// Size is a font size override in points. Zero means the run inherits
	// the enclosing document size.
	Size float64
}

// sameStyle reports whether two runs carry identical attributes, text aside.
func (r Run) sameStyle(o Run) bool {
	return r.Bold == o.Bold && r.Italic == o.Italic &&
		r.Superscript == o.Superscript && r.Size == o.Size
}

// Options controls the enclosing document font of an encoded stream.
type Options struct {
	FontName string
	// FontSize is the base size in points.
	FontSize float64
}

// DefaultOptions returns the font settings the consuming application uses
// for freshly authored text.
func DefaultOptions() Options {
	return Options{FontName: "Helvetica", FontSize: 72}
}

// Normalize coalesces adjacent runs with identical attributes and drops
// empty runs. Encode normalizes its input, so Decode(Encode(r)) returns
// Normalize(r).
func Normalize(runs []Run) []Run {
	out := make([]Run, 0, len(runs))
	for _, r := range runs {
		if r.Text == "" {
			continue
		}
		if n := len(out); n > 0 && out[n-1].sameStyle(r) {
			out[n-1].Text += r.Text
			continue
		}
		out = append(out, r)
	}
	return out
}

// Encode serializes a run list to an RTF stream. Each styled run is emitted
// as its own brace group so run boundaries survive a decode unchanged.
func Encode(runs []Run, opts Options) []byte {
	if opts.FontName == "" {
		opts.FontName = DefaultOptions().FontName
	}
	if opts.FontSize <= 0 {
		opts.FontSize = DefaultOptions().FontSize
	}

	var b strings.Builder
	fmt.Fprintf(&b, `{\rtf1\ansi\deff0{\fonttbl{\f0 %s;}}`, opts.FontName)
	// \uc0 so unicode escapes carry no fallback byte; \fs is in half-points.
	fmt.Fprintf(&b, `\uc0\f0\fs%d `, halfPoints(opts.FontSize))

	for _, r := range Normalize(runs) {
		writeRun(&b, r, opts)
	}

	b.WriteByte('}')
	return []byte(b.String())
}

func writeRun(b *strings.Builder, r Run, opts Options) {
	plain := !r.Bold && !r.Italic && !r.Superscript && r.Size == 0
	if plain {
		writeEscaped(b, r.Text)
		return
	}

	b.WriteByte('{')
	if r.Bold {
		b.WriteString(`\b`)
	}
	if r.Italic {
		b.WriteString(`\i`)
	}
	if r.Superscript {
		b.WriteString(`\super`)
		// Superscript scales to half the enclosing size unless the run
		// carries its own override.
		size := opts.FontSize / 2
		if r.Size > 0 {
			size = r.Size
		}
		fmt.Fprintf(b, `\fs%d`, halfPoints(size))
	} else if r.Size > 0 {
		fmt.Fprintf(b, `\fs%d`, halfPoints(r.Size))
	}
	b.WriteByte(' ')
	writeEscaped(b, r.Text)
	b.WriteByte('}')
}

func writeEscaped(b *strings.Builder, text string) {
	for _, c := range text {
		switch c {
		case '\n':
			b.WriteString(`\par `)
		case '\\':
			b.WriteString(`\\`)
		case '{':
			b.WriteString(`\{`)
		case '}':
			b.WriteString(`\}`)
		default:
			if c < 0x80 {
				b.WriteRune(c)
			} else {
				fmt.Fprintf(b, `\u%d `, c)
			}
		}
	}
}

func halfPoints(points float64) int {
	return int(points*2 + 0.5)
}

// Decode parses an RTF stream back into a run list. The run boundaries are
// exactly those Encode produced for the same (normalized) input.
func Decode(data []byte) ([]Run, Options, error) {
	if len(data) == 0 {
		return nil, Options{}, errors.NewParse("rtf", "", "empty data")
	}
	if !strings.HasPrefix(string(data), `{\rtf`) {
		return nil, Options{}, errors.NewParse("rtf", "", `missing \rtf header`)
	}

	p := &parser{data: data}
	root, err := p.parseGroup()
	if err != nil {
		return nil, Options{}, err
	}

	d := &decoder{}
	d.walk(root, runState{})
	return Normalize(d.runs), d.opts, nil
}

// PlainText flattens a run list to its text content.
func PlainText(runs []Run) string {
	var b strings.Builder
	for _, r := range runs {
		b.WriteString(r.Text)
	}
	return b.String()
}

// SplitSuperscript re-segments a run so that [start,end) (byte offsets into
// the run text) becomes a superscript piece. All other style attributes of
// the original run are preserved on all three pieces.
func SplitSuperscript(r Run, start, end int) ([]Run, error) {
	if start < 0 || end > len(r.Text) || start >= end {
		return nil, fmt.Errorf("invalid superscript range [%d,%d) in run of %d bytes", start, end, len(r.Text))
	}
	super := r
	super.Text = r.Text[start:end]
	super.Superscript = true

	out := make([]Run, 0, 3)
	if start > 0 {
		prefix := r
		prefix.Text = r.Text[:start]
		out = append(out, prefix)
	}
	out = append(out, super)
	if end < len(r.Text) {
		suffix := r
		suffix.Text = r.Text[end:]
		out = append(out, suffix)
	}
	return out, nil
}

// runState carries inherited style while walking groups.
type runState struct {
	bold, italic, super bool
	size                float64 // points; 0 = document default
}

type decoder struct {
	runs     []Run
	opts     Options
	sawBase  bool
	baseHalf int
}

func (d *decoder) walk(g *group, st runState) {
	for _, child := range g.children {
		switch v := child.(type) {
		case controlWord:
			switch v.word {
			case "b":
				st.bold = !v.has || v.param != 0
			case "i":
				st.italic = !v.has || v.param != 0
			case "super":
				st.super = true
			case "fs":
				if v.has {
					if !d.sawBase {
						// First \fs at top level is the document base size.
						d.sawBase = true
						d.baseHalf = v.param
						d.opts.FontSize = float64(v.param) / 2
					} else {
						st.size = float64(v.param) / 2
					}
				}
			case "par", "line":
				d.emit(st, "\n")
			case "tab":
				d.emit(st, "\t")
			case "{", "}", "\\":
				d.emit(st, v.word)
			case "u":
				if v.has {
					d.emit(st, string(rune(v.param)))
				}
			}
		case string:
			d.emit(st, v)
		case *group:
			if isSkippedGroup(v) {
				if name := fontName(v); name != "" && d.opts.FontName == "" {
					d.opts.FontName = name
				}
				continue
			}
			d.walk(v, st)
		}
	}
}

func (d *decoder) emit(st runState, text string) {
	if text == "" {
		return
	}
	r := Run{Text: text, Bold: st.bold, Italic: st.italic, Superscript: st.super}
	if st.size > 0 {
		if st.super && d.sawBase && halfPoints(st.size) == d.baseHalf/2 {
			// Default superscript scale, not a per-run override.
			r.Size = 0
		} else {
			r.Size = st.size
		}
	}
	d.runs = append(d.runs, r)
}

// isSkippedGroup reports whether a group carries document furniture rather
// than content.
func isSkippedGroup(g *group) bool {
	for _, c := range g.children {
		if cw, ok := c.(controlWord); ok {
			switch cw.word {
			case "fonttbl", "colortbl", "stylesheet", "info", "pict", "object":
				return true
			}
		}
	}
	return false
}

// fontName pulls the first font name out of a fonttbl group, if present.
func fontName(g *group) string {
	for _, c := range g.children {
		switch v := c.(type) {
		case string:
			return strings.TrimSuffix(strings.TrimSpace(v), ";")
		case *group:
			if name := fontName(v); name != "" {
				return name
			}
		}
	}
	return ""
}

// group represents an RTF group (content within braces).
type group struct {
	children []interface{} // *group, controlWord, or string
}

// controlWord represents an RTF control word.
type controlWord struct {
	word  string
	param int
	has   bool
}

type parser struct {
	data []byte
	pos  int
}

func (p *parser) parseGroup() (*group, error) {
	if p.pos >= len(p.data) || p.data[p.pos] != '{' {
		return nil, errors.NewParseAt("rtf", p.pos, "expected '{'")
	}
	p.pos++ // consume '{'

	g := &group{}

	for p.pos < len(p.data) {
		switch p.data[p.pos] {
		case '}':
			p.pos++
			return g, nil

		case '{':
			nested, err := p.parseGroup()
			if err != nil {
				return nil, err
			}
			g.children = append(g.children, nested)

		case '\\':
			cw, err := p.parseControlWord()
			if err != nil {
				return nil, err
			}
			g.children = append(g.children, cw)

		case '\r', '\n':
			p.pos++

		default:
			if text := p.parseText(); text != "" {
				g.children = append(g.children, text)
			}
		}
	}

	return nil, errors.NewParseAt("rtf", p.pos, "unclosed group")
}

func (p *parser) parseControlWord() (controlWord, error) {
	p.pos++ // consume '\'
	if p.pos >= len(p.data) {
		return controlWord{}, errors.NewParseAt("rtf", p.pos, "unexpected end after backslash")
	}

	ch := p.data[p.pos]

	// Escaped delimiters: \{, \}, \\
	if ch == '{' || ch == '}' || ch == '\\' {
		p.pos++
		return controlWord{word: string(ch)}, nil
	}

	if isLetter(ch) {
		start := p.pos
		for p.pos < len(p.data) && isLetter(p.data[p.pos]) {
			p.pos++
		}
		word := string(p.data[start:p.pos])

		var param int
		var hasParam bool
		if p.pos < len(p.data) && (p.data[p.pos] == '-' || isDigit(p.data[p.pos])) {
			numStart := p.pos
			if p.data[p.pos] == '-' {
				p.pos++
			}
			for p.pos < len(p.data) && isDigit(p.data[p.pos]) {
				p.pos++
			}
			param, _ = strconv.Atoi(string(p.data[numStart:p.pos]))
			hasParam = true
		}

		// Skip the single delimiter space.
		if p.pos < len(p.data) && p.data[p.pos] == ' ' {
			p.pos++
		}

		return controlWord{word: word, param: param, has: hasParam}, nil
	}

	// Control symbol.
	p.pos++
	return controlWord{word: string(ch)}, nil
}

func (p *parser) parseText() string {
	var b strings.Builder
	for p.pos < len(p.data) {
		ch := p.data[p.pos]
		if ch == '{' || ch == '}' || ch == '\\' {
			break
		}
		if ch != '\r' && ch != '\n' {
			b.WriteByte(ch)
		}
		p.pos++
	}
	return b.String()
}

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
