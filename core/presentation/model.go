// Package presentation defines the typed document tree for presentation
// files: Document → Cue → Action → PresentationSlide → Slide → Element,
// plus the style and geometry value types they carry. The schema is
// reverse-engineered from files the consuming application produces, so
// every node also carries an opaque side-channel of unrecognized fields
// that the codec preserves across a decode/encode round trip.
package presentation

import "bytes"

// FormatVersion is the envelope version this codebase produces and fully
// understands. Other versions decode permissively (unknown fields kept)
// with Document.VersionFlagged set.
const FormatVersion = 7

// UnknownField is one unrecognized wire field captured during decode: the
// complete raw bytes (tag included) so encode can re-emit it verbatim.
type UnknownField struct {
	Number int32
	Raw    []byte
}

// UnknownFields is the ordered opaque side-channel attached to each node.
type UnknownFields []UnknownField

// Equal reports whether two side-channels hold identical raw fields in the
// same order.
func (u UnknownFields) Equal(v UnknownFields) bool {
	if len(u) != len(v) {
		return false
	}
	for i := range u {
		if u[i].Number != v[i].Number || !bytes.Equal(u[i].Raw, v[i].Raw) {
			return false
		}
	}
	return true
}

// Clone deep-copies the side-channel.
func (u UnknownFields) Clone() UnknownFields {
	if len(u) == 0 {
		return nil
	}
	out := make(UnknownFields, len(u))
	for i, f := range u {
		raw := make([]byte, len(f.Raw))
		copy(raw, f.Raw)
		out[i] = UnknownField{Number: f.Number, Raw: raw}
	}
	return out
}

// Document is the root of the presentation tree. It is assembled fully in
// memory, serialized once, and never mutated after serialization begins.
type Document struct {
	Version int32
	// VersionFlagged is set when decode saw a version it does not
	// recognize and fell back to permissive unknown-field preservation.
	VersionFlagged bool

	UUID     string
	Name     string
	Category string

	Application *ApplicationInfo

	Cues         []*Cue
	CueGroups    []*CueGroup
	Arrangements []*Arrangement
	// SelectedArrangement is the UUID of the active arrangement, empty if none.
	SelectedArrangement string

	Unknown UnknownFields
}

// ApplicationInfo records the builder and platform that produced a document.
type ApplicationInfo struct {
	Platform           int32
	PlatformVersion    Version
	Application        int32
	ApplicationVersion Version

	Unknown UnknownFields
}

// Version is a semantic build version.
type Version struct {
	Major int32
	Minor int32
	Patch int32
	Build string
}

// Platform and application identifiers for ApplicationInfo.
const (
	PlatformUnknown int32 = 0
	PlatformMacOS   int32 = 1
	PlatformWindows int32 = 2

	ApplicationPresenter int32 = 1
)

// Cue is one authorable entry (a slide group). Owned exclusively by its
// Document.
type Cue struct {
	UUID      string
	Name      string
	Actions   []*Action
	IsEnabled bool

	CompletionTargetType int32
	CompletionTargetUUID string
	CompletionActionType int32
	CompletionTime       float64

	Unknown UnknownFields
}

// Completion target and action types for cues.
const (
	CompletionTargetNone int32 = 0
	CompletionTargetNext int32 = 1

	CompletionActionFirst int32 = 0
	CompletionActionLast  int32 = 1
)

// ActionType is the declared variant tag of an Action. The tag is kept
// physically adjacent to the payload and validated at construction, so a
// tag/payload mismatch cannot be built through the public constructors.
type ActionType int32

const (
	ActionTypeNone ActionType = 0
	// ActionTypePresentationSlide wraps a PresentationSlide payload.
	ActionTypePresentationSlide ActionType = 3
	// ActionTypePropSlide wraps a PropSlide payload.
	ActionTypePropSlide ActionType = 4
)

// String returns the wire-stable name of the variant tag.
func (t ActionType) String() string {
	switch t {
	case ActionTypeNone:
		return "none"
	case ActionTypePresentationSlide:
		return "presentation-slide"
	case ActionTypePropSlide:
		return "prop-slide"
	default:
		return "unknown"
	}
}

// Action is a tagged variant wrapping exactly one typed-slide payload plus
// transition/timing metadata. Exactly one of Slide/Prop is non-nil and must
// agree with Type.
type Action struct {
	UUID      string
	Name      string
	Type      ActionType
	IsEnabled bool
	DelayTime float64
	Duration  float64

	Slide *PresentationSlide
	Prop  *PropSlide

	Unknown UnknownFields
}

// NewSlideAction constructs a presentation-slide action with the variant
// tag and payload set together.
func NewSlideAction(name string, slide *PresentationSlide) *Action {
	return &Action{
		UUID:      NewIdentifier(),
		Name:      name,
		Type:      ActionTypePresentationSlide,
		IsEnabled: true,
		Slide:     slide,
	}
}

// PayloadType reports the variant of the payload actually attached.
func (a *Action) PayloadType() ActionType {
	switch {
	case a.Slide != nil:
		return ActionTypePresentationSlide
	case a.Prop != nil:
		return ActionTypePropSlide
	default:
		return ActionTypeNone
	}
}

// PresentationSlide is the typed-slide variant produced by this system.
type PresentationSlide struct {
	// BackgroundRef names the background media of the slide, if any.
	BackgroundRef string
	LayoutName    string
	Slide         *Slide

	Unknown UnknownFields
}

// PropSlide is the other typed-slide variant the format defines. This
// system never produces one but must decode documents that contain them.
type PropSlide struct {
	UUID string

	Unknown UnknownFields
}

// Slide is a canvas with an ordered element list. Element order is z-order
// and is significant; it is never re-sorted.
type Slide struct {
	UUID string
	Size Size

	DrawsBackgroundColor bool
	BackgroundColor      *Color
	BackgroundMedia      string

	Elements []*Element

	Unknown UnknownFields
}

// Element is a leaf node: geometry plus either styled text or a media
// reference. Exactly one of Text/Media is non-nil.
type Element struct {
	UUID   string
	Bounds Rect

	Text  *TextElement
	Media *MediaElement

	Unknown UnknownFields
}

// IsText reports whether the element carries a text payload.
func (e *Element) IsText() bool { return e.Text != nil }

// TextElement carries an RTF payload and the style state the payload
// renders under.
type TextElement struct {
	// RTFData is the rich-text stream (see core/rtf).
	RTFData   []byte
	Font      Font
	Color     Color
	Alignment Alignment
	Shadow    *Shadow

	Unknown UnknownFields
}

// MediaElement references external media.
type MediaElement struct {
	URL     string
	Fit     int32
	Opacity float64

	Unknown UnknownFields
}

// Equal reports whether two media references carry the same state.
func (m MediaElement) Equal(o MediaElement) bool {
	return m.URL == o.URL && m.Fit == o.Fit && m.Opacity == o.Opacity &&
		m.Unknown.Equal(o.Unknown)
}

// Media fit modes.
const (
	MediaFitScale   int32 = 0
	MediaFitStretch int32 = 1
	MediaFitCenter  int32 = 2
)

// Font describes a typeface.
type Font struct {
	Name   string
	Size   float64
	Bold   bool
	Italic bool
	Family string
	Face   string

	Unknown UnknownFields
}

// IsZero reports whether the font carries no state, unknown fields included.
func (f Font) IsZero() bool {
	return f.Name == "" && f.Size == 0 && !f.Bold && !f.Italic &&
		f.Family == "" && f.Face == "" && len(f.Unknown) == 0
}

// Equal reports whether two fonts carry the same state.
func (f Font) Equal(o Font) bool {
	return f.Name == o.Name && f.Size == o.Size && f.Bold == o.Bold &&
		f.Italic == o.Italic && f.Family == o.Family && f.Face == o.Face &&
		f.Unknown.Equal(o.Unknown)
}

// Alignment is horizontal text alignment.
type Alignment int32

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
	AlignJustified
)

// Shadow is a drop shadow on a text element.
type Shadow struct {
	Color   Color
	Radius  float64
	Offset  Point
	Opacity float64
	Angle   float64
	Enabled bool

	Unknown UnknownFields
}

// Equal reports whether two shadows carry the same state.
func (s Shadow) Equal(o Shadow) bool {
	return s.Color == o.Color && s.Radius == o.Radius && s.Offset == o.Offset &&
		s.Opacity == o.Opacity && s.Angle == o.Angle && s.Enabled == o.Enabled &&
		s.Unknown.Equal(o.Unknown)
}

// Color is an RGBA color with components in [0,1].
type Color struct {
	Red   float64
	Green float64
	Blue  float64
	Alpha float64
}

// White is the default text color.
var White = Color{Red: 1, Green: 1, Blue: 1, Alpha: 1}

// Size is a width/height pair in canvas points.
type Size struct {
	Width  float64
	Height float64
}

// Point is an x/y position in canvas points.
type Point struct {
	X float64
	Y float64
}

// Rect is a bounding rectangle.
type Rect struct {
	Origin Point
	Size   Size
}

// Group organizes cues for display.
type Group struct {
	UUID  string
	Name  string
	Color Color

	ApplicationGroupID   string
	ApplicationGroupName string

	Unknown UnknownFields
}

// CueGroup binds a Group to the cues it contains, by identifier.
type CueGroup struct {
	Group          *Group
	CueIdentifiers []string

	Unknown UnknownFields
}

// Arrangement is an ordered selection of cue groups.
type Arrangement struct {
	UUID             string
	Name             string
	GroupIdentifiers []string

	Unknown UnknownFields
}

// DefaultCanvas is the slide size new documents are authored at.
var DefaultCanvas = Size{Width: 1920, Height: 1080}
