// Package generate runs the presentation-building pipeline: template
// lookup, content placement, slide cloning, document assembly, encode,
// write. Steps run in a fixed order and every failure names the category,
// document, and step involved.
package generate

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"proflow/core/bible"
	"proflow/core/codec"
	"proflow/core/errors"
	"proflow/core/inject"
	"proflow/core/lyrics"
	"proflow/core/presentation"
	"proflow/core/rtf"
	"proflow/core/scripture"
	"proflow/core/template"
	"proflow/internal/logging"
)

// Generator wires the pipeline's collaborators. OutputDir receives the
// generated documents.
type Generator struct {
	Templates *template.Cache
	Bibles    *bible.Store
	OutputDir string
}

// Result is the outcome of one generation run.
type Result struct {
	Path     string
	Document *presentation.Document
	Err      error
}

// group is one cue group's worth of content on its way into a document.
type group struct {
	label    string
	color    presentation.Color
	segments []inject.Segment
}

// Scripture generates a presentation for one or more scripture references
// ("Isaiah 35:1-2; John 3:16"). An empty version uses the reference's own
// translation marker, then the store default.
func (g *Generator) Scripture(ctx context.Context, refInput, version string) (*Result, error) {
	name := strings.TrimSpace(refInput)

	refs, err := scripture.Parse(refInput)
	if err != nil {
		return nil, g.fail(template.CategoryScripture, name, "parse", err)
	}

	var groups []group
	var names []string
	for _, ref := range refs {
		passage, err := g.Bibles.Lookup(version, ref)
		if err != nil {
			return nil, g.fail(template.CategoryScripture, name, "lookup", err)
		}
		grp := group{
			label: passage.Header(),
			color: presentation.Color{Red: 0.16, Green: 0.35, Blue: 0.75, Alpha: 1},
		}
		for _, v := range passage.Verses {
			grp.segments = append(grp.segments, inject.Segment{
				Label: fmt.Sprintf("%s %d:%d", ref.Book, ref.Chapter, v.Number),
				Runs: []rtf.Run{
					{Text: fmt.Sprintf("%d", v.Number), Superscript: true},
					{Text: v.Text},
				},
			})
		}
		groups = append(groups, grp)
		names = append(names, passage.Header())
	}

	return g.run(ctx, template.CategoryScripture, strings.Join(names, "; "), groups)
}

// Song generates a presentation from parsed lyrics, one cue group per
// stanza, colored by stanza kind.
func (g *Generator) Song(ctx context.Context, song *lyrics.Song) (*Result, error) {
	if song == nil || len(song.Stanzas) == 0 {
		return nil, g.fail(template.CategorySong, "", "parse",
			errors.Wrap(errors.ErrInvalidInput, "song has no stanzas"))
	}

	var groups []group
	for _, stanza := range song.Stanzas {
		groups = append(groups, group{
			label: stanza.Label,
			color: lyrics.GroupColor(stanza.Label),
			segments: []inject.Segment{{
				Label: stanza.Label,
				Runs:  []rtf.Run{{Text: strings.Join(stanza.Lines, "\n")}},
			}},
		})
	}
	return g.run(ctx, template.CategorySong, song.Title, groups)
}

// Info generates an announcement-style presentation: each paragraph
// becomes its own slide.
func (g *Generator) Info(ctx context.Context, title string, paragraphs []string) (*Result, error) {
	if title == "" || len(paragraphs) == 0 {
		return nil, g.fail(template.CategoryInfo, title, "parse",
			errors.Wrap(errors.ErrInvalidInput, "info needs a title and at least one paragraph"))
	}

	grp := group{label: title, color: presentation.Color{Red: 0.45, Green: 0.45, Blue: 0.5, Alpha: 1}}
	for i, p := range paragraphs {
		grp.segments = append(grp.segments, inject.Segment{
			Label: fmt.Sprintf("%s %d", title, i+1),
			Runs:  []rtf.Run{{Text: p}},
		})
	}
	return g.run(ctx, template.CategoryInfo, title, []group{grp})
}

// run is the shared pipeline tail: template → place → clone → assemble →
// write.
func (g *Generator) run(ctx context.Context, category, name string, groups []group) (*Result, error) {
	started := time.Now()

	if err := ctx.Err(); err != nil {
		return nil, g.fail(category, name, "start", err)
	}

	protos, err := g.Templates.Slides(category)
	if err != nil {
		return nil, g.fail(category, name, "template", err)
	}
	proto := protos[0]
	capacity := capacityOf(proto)

	builder := presentation.NewBuilder(name, category)
	slides := 0
	for _, grp := range groups {
		if err := ctx.Err(); err != nil {
			return nil, g.fail(category, name, "inject", err)
		}

		placements, err := inject.Place(grp.segments, capacity)
		if err != nil {
			return nil, g.fail(category, name, "inject", err)
		}

		builder.Group(grp.label, grp.color)
		for _, placement := range placements {
			slide, err := presentation.CloneSlideWithText(
				proto.Slide, [][]rtf.Run{placement.Runs}, rtf.DefaultOptions())
			if err != nil {
				return nil, g.fail(category, name, "clone", err)
			}
			ps := &presentation.PresentationSlide{
				BackgroundRef: proto.BackgroundRef,
				LayoutName:    proto.LayoutName,
				Slide:         slide,
			}
			builder.AddSlide(cueName(placement), ps)
			slides++
		}
	}
	doc := builder.Build()

	if err := presentation.Validate(doc); err != nil {
		return nil, g.fail(category, name, "assemble", err)
	}

	path := filepath.Join(g.OutputDir, safeFilename(name)+codec.Extension)
	if err := codec.WriteFile(path, doc); err != nil {
		return nil, g.fail(category, name, "write", err)
	}

	logging.Info("presentation generated",
		"category", category,
		"name", name,
		"slides", slides,
		"path", path,
		"elapsed_ms", time.Since(started).Milliseconds())
	return &Result{Path: path, Document: doc}, nil
}

// Async runs fn off the caller's goroutine and delivers exactly one
// result on the returned channel.
func Async(fn func() (*Result, error)) <-chan Result {
	ch := make(chan Result, 1)
	go func() {
		res, err := fn()
		if err != nil {
			ch <- Result{Err: err}
			return
		}
		ch <- *res
	}()
	return ch
}

func (g *Generator) fail(category, name, step string, err error) error {
	return &errors.GenerateError{Category: category, Name: name, Step: step, Err: err}
}

// capacityOf derives placement capacity from the template's first text
// element.
func capacityOf(proto *presentation.PresentationSlide) inject.Capacity {
	if proto.Slide == nil {
		return inject.DefaultCapacity
	}
	for _, el := range proto.Slide.Elements {
		if el.IsText() {
			return inject.CapacityForElement(el)
		}
	}
	return inject.DefaultCapacity
}

// cueName titles a cue from what landed on its slide: a single label, or
// the first and last for a span.
func cueName(p inject.Placement) string {
	switch len(p.Labels) {
	case 0:
		return ""
	case 1:
		return p.Labels[0]
	default:
		return p.Labels[0] + " – " + p.Labels[len(p.Labels)-1]
	}
}

// safeFilename strips characters that are unsafe in document filenames.
func safeFilename(name string) string {
	out := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '-'
		default:
			return r
		}
	}, name)
	out = strings.TrimSpace(out)
	if out == "" {
		out = "untitled"
	}
	return out
}
