package presentation

import "fmt"

// Mismatch is one difference between two documents, located by a positional
// path such as "cue[0].action[0].slide.element[2].text.color".
type Mismatch struct {
	Path     string
	Expected string
	Actual   string
}

func (m Mismatch) String() string {
	return fmt.Sprintf("%s: expected %s, got %s", m.Path, m.Expected, m.Actual)
}

// DiffOptions controls which attribute classes Diff compares.
type DiffOptions struct {
	// IgnoreIdentity skips UUID fields, so two documents that differ only
	// in generated identifiers compare equal.
	IgnoreIdentity bool
	// IgnoreText skips rich-text payloads, comparing structure and style only.
	IgnoreText bool
}

// Diff walks two documents in positional lock step and reports every
// mismatch. Nodes present in one document but not the other are reported
// once at the containing list and not descended into.
func Diff(expected, actual *Document, opts DiffOptions) []Mismatch {
	d := &differ{opts: opts}
	d.document(expected, actual)
	return d.out
}

type differ struct {
	opts DiffOptions
	out  []Mismatch
}

func (d *differ) add(path string, expected, actual interface{}) {
	d.out = append(d.out, Mismatch{
		Path:     path,
		Expected: fmt.Sprintf("%v", expected),
		Actual:   fmt.Sprintf("%v", actual),
	})
}

func (d *differ) cmp(path string, expected, actual interface{}) {
	if expected != actual {
		d.add(path, expected, actual)
	}
}

func (d *differ) id(path, expected, actual string) {
	if !d.opts.IgnoreIdentity {
		d.cmp(path, expected, actual)
	}
}

// lengths compares list lengths; descent is safe only when they match.
func (d *differ) lengths(path string, expected, actual int) bool {
	if expected != actual {
		d.add(path+".length", expected, actual)
		return false
	}
	return true
}

func (d *differ) document(e, a *Document) {
	d.cmp("version", e.Version, a.Version)
	d.id("uuid", e.UUID, a.UUID)
	d.cmp("name", e.Name, a.Name)
	d.cmp("category", e.Category, a.Category)
	d.id("selectedArrangement", e.SelectedArrangement, a.SelectedArrangement)

	if d.lengths("cue", len(e.Cues), len(a.Cues)) {
		for i := range e.Cues {
			d.cue(fmt.Sprintf("cue[%d]", i), e.Cues[i], a.Cues[i])
		}
	}
	if d.lengths("cueGroup", len(e.CueGroups), len(a.CueGroups)) {
		for i := range e.CueGroups {
			d.cueGroup(fmt.Sprintf("cueGroup[%d]", i), e.CueGroups[i], a.CueGroups[i])
		}
	}
	if d.lengths("arrangement", len(e.Arrangements), len(a.Arrangements)) {
		for i := range e.Arrangements {
			d.arrangement(fmt.Sprintf("arrangement[%d]", i), e.Arrangements[i], a.Arrangements[i])
		}
	}
}

func (d *differ) cue(path string, e, a *Cue) {
	d.id(path+".uuid", e.UUID, a.UUID)
	d.cmp(path+".name", e.Name, a.Name)
	d.cmp(path+".isEnabled", e.IsEnabled, a.IsEnabled)
	d.cmp(path+".completionTargetType", e.CompletionTargetType, a.CompletionTargetType)
	d.id(path+".completionTargetUUID", e.CompletionTargetUUID, a.CompletionTargetUUID)
	if d.lengths(path+".action", len(e.Actions), len(a.Actions)) {
		for i := range e.Actions {
			d.action(fmt.Sprintf("%s.action[%d]", path, i), e.Actions[i], a.Actions[i])
		}
	}
}

func (d *differ) action(path string, e, a *Action) {
	d.id(path+".uuid", e.UUID, a.UUID)
	d.cmp(path+".name", e.Name, a.Name)
	d.cmp(path+".type", e.Type.String(), a.Type.String())
	d.cmp(path+".isEnabled", e.IsEnabled, a.IsEnabled)
	d.cmp(path+".delayTime", e.DelayTime, a.DelayTime)
	d.cmp(path+".duration", e.Duration, a.Duration)

	switch {
	case e.Slide != nil && a.Slide != nil:
		d.presentationSlide(path+".slide", e.Slide, a.Slide)
	case e.Slide != nil || a.Slide != nil:
		d.add(path+".slide", e.Slide != nil, a.Slide != nil)
	}
	switch {
	case e.Prop != nil && a.Prop != nil:
		d.id(path+".prop.uuid", e.Prop.UUID, a.Prop.UUID)
	case e.Prop != nil || a.Prop != nil:
		d.add(path+".prop", e.Prop != nil, a.Prop != nil)
	}
}

func (d *differ) presentationSlide(path string, e, a *PresentationSlide) {
	d.cmp(path+".backgroundRef", e.BackgroundRef, a.BackgroundRef)
	d.cmp(path+".layoutName", e.LayoutName, a.LayoutName)
	switch {
	case e.Slide != nil && a.Slide != nil:
		d.slide(path, e.Slide, a.Slide)
	case e.Slide != nil || a.Slide != nil:
		d.add(path+".canvas", e.Slide != nil, a.Slide != nil)
	}
}

func (d *differ) slide(path string, e, a *Slide) {
	d.id(path+".uuid", e.UUID, a.UUID)
	d.cmp(path+".size", e.Size, a.Size)
	d.cmp(path+".drawsBackgroundColor", e.DrawsBackgroundColor, a.DrawsBackgroundColor)
	d.cmp(path+".backgroundMedia", e.BackgroundMedia, a.BackgroundMedia)
	switch {
	case e.BackgroundColor != nil && a.BackgroundColor != nil:
		d.cmp(path+".backgroundColor", *e.BackgroundColor, *a.BackgroundColor)
	case e.BackgroundColor != nil || a.BackgroundColor != nil:
		d.add(path+".backgroundColor", e.BackgroundColor != nil, a.BackgroundColor != nil)
	}
	if d.lengths(path+".element", len(e.Elements), len(a.Elements)) {
		for i := range e.Elements {
			d.element(fmt.Sprintf("%s.element[%d]", path, i), e.Elements[i], a.Elements[i])
		}
	}
}

func (d *differ) element(path string, e, a *Element) {
	d.id(path+".uuid", e.UUID, a.UUID)
	d.cmp(path+".bounds", e.Bounds, a.Bounds)
	switch {
	case e.Text != nil && a.Text != nil:
		d.text(path+".text", e.Text, a.Text)
	case e.Text != nil || a.Text != nil:
		d.add(path+".text", e.Text != nil, a.Text != nil)
	}
	switch {
	case e.Media != nil && a.Media != nil:
		d.cmp(path+".media.url", e.Media.URL, a.Media.URL)
		d.cmp(path+".media.fit", e.Media.Fit, a.Media.Fit)
		d.cmp(path+".media.opacity", e.Media.Opacity, a.Media.Opacity)
	case e.Media != nil || a.Media != nil:
		d.add(path+".media", e.Media != nil, a.Media != nil)
	}
}

func (d *differ) text(path string, e, a *TextElement) {
	if !d.opts.IgnoreText && string(e.RTFData) != string(a.RTFData) {
		d.add(path+".rtf", summarizeRTF(e.RTFData), summarizeRTF(a.RTFData))
	}
	if !e.Font.Equal(a.Font) {
		d.add(path+".font", e.Font, a.Font)
	}
	d.cmp(path+".color", e.Color, a.Color)
	d.cmp(path+".alignment", e.Alignment, a.Alignment)
	switch {
	case e.Shadow != nil && a.Shadow != nil:
		if !e.Shadow.Equal(*a.Shadow) {
			d.add(path+".shadow", *e.Shadow, *a.Shadow)
		}
	case e.Shadow != nil || a.Shadow != nil:
		d.add(path+".shadow", e.Shadow != nil, a.Shadow != nil)
	}
}

func (d *differ) cueGroup(path string, e, a *CueGroup) {
	switch {
	case e.Group != nil && a.Group != nil:
		d.id(path+".group.uuid", e.Group.UUID, a.Group.UUID)
		d.cmp(path+".group.name", e.Group.Name, a.Group.Name)
		d.cmp(path+".group.color", e.Group.Color, a.Group.Color)
	case e.Group != nil || a.Group != nil:
		d.add(path+".group", e.Group != nil, a.Group != nil)
	}
	if !d.opts.IgnoreIdentity && d.lengths(path+".cue", len(e.CueIdentifiers), len(a.CueIdentifiers)) {
		for i := range e.CueIdentifiers {
			d.cmp(fmt.Sprintf("%s.cue[%d]", path, i), e.CueIdentifiers[i], a.CueIdentifiers[i])
		}
	}
}

func (d *differ) arrangement(path string, e, a *Arrangement) {
	d.id(path+".uuid", e.UUID, a.UUID)
	d.cmp(path+".name", e.Name, a.Name)
	if !d.opts.IgnoreIdentity && d.lengths(path+".group", len(e.GroupIdentifiers), len(a.GroupIdentifiers)) {
		for i := range e.GroupIdentifiers {
			d.cmp(fmt.Sprintf("%s.group[%d]", path, i), e.GroupIdentifiers[i], a.GroupIdentifiers[i])
		}
	}
}

// summarizeRTF keeps mismatch output readable for long streams.
func summarizeRTF(data []byte) string {
	const max = 60
	s := string(data)
	if len(s) > max {
		return fmt.Sprintf("%q… (%d bytes)", s[:max], len(data))
	}
	return fmt.Sprintf("%q", s)
}
