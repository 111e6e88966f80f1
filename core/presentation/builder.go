package presentation

// Builder assembles a Document incrementally: cues are appended in order
// and chained so advancing past one cue lands on the next. The document is
// finished with Build, after which the builder must not be reused.
type Builder struct {
	doc     *Document
	group   *Group
	cueIDs  []string
	prevCue *Cue
}

// NewBuilder starts a document with the given display name and category.
func NewBuilder(name, category string) *Builder {
	return &Builder{
		doc: &Document{
			Version:  FormatVersion,
			UUID:     NewIdentifier(),
			Name:     name,
			Category: category,
			Application: &ApplicationInfo{
				Platform:    PlatformMacOS,
				Application: ApplicationPresenter,
				ApplicationVersion: Version{
					Major: 7,
				},
			},
		},
	}
}

// Group sets the display group (name and color) that cues appended after
// this call belong to. Calling Group again closes the previous group.
func (b *Builder) Group(name string, color Color) *Builder {
	b.closeGroup()
	b.group = &Group{
		UUID:  NewIdentifier(),
		Name:  name,
		Color: color,
	}
	return b
}

// AddSlide appends a cue wrapping a single presentation slide. The previous
// cue, if any, is chained to complete into this one.
func (b *Builder) AddSlide(name string, slide *PresentationSlide) *Builder {
	cue := &Cue{
		UUID:      NewIdentifier(),
		Name:      name,
		IsEnabled: true,
		Actions:   []*Action{NewSlideAction(name, slide)},
	}
	b.chain(cue)
	b.doc.Cues = append(b.doc.Cues, cue)
	b.cueIDs = append(b.cueIDs, cue.UUID)
	return b
}

// chain points the previous cue's completion target at the new cue.
func (b *Builder) chain(next *Cue) {
	if b.prevCue != nil {
		b.prevCue.CompletionTargetType = CompletionTargetNext
		b.prevCue.CompletionTargetUUID = next.UUID
	}
	b.prevCue = next
}

func (b *Builder) closeGroup() {
	if b.group == nil {
		return
	}
	b.doc.CueGroups = append(b.doc.CueGroups, &CueGroup{
		Group:          b.group,
		CueIdentifiers: b.cueIDs,
	})
	b.group = nil
	b.cueIDs = nil
}

// Build closes any open group, creates a default arrangement covering all
// groups in insertion order, and returns the finished document.
func (b *Builder) Build() *Document {
	b.closeGroup()
	if len(b.doc.CueGroups) > 0 {
		arr := &Arrangement{
			UUID: NewIdentifier(),
			Name: "Default",
		}
		for _, cg := range b.doc.CueGroups {
			arr.GroupIdentifiers = append(arr.GroupIdentifiers, cg.Group.UUID)
		}
		b.doc.Arrangements = append(b.doc.Arrangements, arr)
		b.doc.SelectedArrangement = arr.UUID
	}
	return b.doc
}
