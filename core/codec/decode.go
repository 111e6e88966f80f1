package codec

import (
	"fmt"
	"math"

	"google.golang.org/protobuf/encoding/protowire"

	"proflow/core/errors"
	"proflow/core/presentation"
)

// Decode parses container bytes into a document tree. Fields the schema
// does not cover are captured per node, in order, and survive a re-encode
// verbatim. A version other than FormatVersion does not fail the decode;
// it sets Document.VersionFlagged so callers can warn.
//
// Tag/payload disagreement on any action is fatal: the consuming
// application renders such documents silently wrong, so producing one is
// never acceptable.
func Decode(data []byte) (*presentation.Document, error) {
	doc, err := decodeDocument(data, 0)
	if err != nil {
		return nil, err
	}
	if doc.Version != presentation.FormatVersion {
		doc.VersionFlagged = true
	}
	if err := presentation.Validate(doc); err != nil {
		return nil, err
	}
	presentation.RecordDocumentIdentifiers(doc)
	return doc, nil
}

// walker steps through one message's fields, tracking absolute offsets so
// parse errors locate the failure in the original byte stream.
type walker struct {
	data     []byte
	base     int // absolute offset of data[0]
	off      int
	tagStart int
}

func (w *walker) done() bool { return w.off >= len(w.data) }

func (w *walker) abs() int { return w.base + w.off }

func (w *walker) truncated(what string) error {
	return &errors.ParseError{
		Format:  "presentation",
		Offset:  w.abs(),
		Message: fmt.Sprintf("input ends inside %s", what),
		Err:     errors.ErrTruncated,
	}
}

func (w *walker) next() (protowire.Number, protowire.Type, error) {
	w.tagStart = w.off
	num, typ, n := protowire.ConsumeTag(w.data[w.off:])
	if n < 0 {
		return 0, 0, w.truncated("field tag")
	}
	w.off += n
	return num, typ, nil
}

func (w *walker) varint() (uint64, error) {
	v, n := protowire.ConsumeVarint(w.data[w.off:])
	if n < 0 {
		return 0, w.truncated("varint")
	}
	w.off += n
	return v, nil
}

func (w *walker) double() (float64, error) {
	v, n := protowire.ConsumeFixed64(w.data[w.off:])
	if n < 0 {
		return 0, w.truncated("fixed64")
	}
	w.off += n
	return math.Float64frombits(v), nil
}

// bytes returns the payload of a length-delimited field along with its
// absolute offset, for decoding nested messages.
func (w *walker) bytes() ([]byte, int, error) {
	v, n := protowire.ConsumeBytes(w.data[w.off:])
	if n < 0 {
		return nil, 0, w.truncated("length-delimited field")
	}
	abs := w.base + w.off + (n - len(v))
	w.off += n
	return v, abs, nil
}

// skip consumes an unrecognized field's value and returns the raw bytes of
// the whole field, tag included.
func (w *walker) skip(num protowire.Number, typ protowire.Type) ([]byte, error) {
	n := protowire.ConsumeFieldValue(num, typ, w.data[w.off:])
	if n < 0 {
		return nil, w.truncated("unknown field")
	}
	w.off += n
	raw := make([]byte, w.off-w.tagStart)
	copy(raw, w.data[w.tagStart:w.off])
	return raw, nil
}

func (w *walker) keep(u *presentation.UnknownFields, num protowire.Number, typ protowire.Type) error {
	raw, err := w.skip(num, typ)
	if err != nil {
		return err
	}
	*u = append(*u, presentation.UnknownField{Number: int32(num), Raw: raw})
	return nil
}

func decodeDocument(data []byte, base int) (*presentation.Document, error) {
	doc := &presentation.Document{}
	w := &walker{data: data, base: base}
	for !w.done() {
		num, typ, err := w.next()
		if err != nil {
			return nil, err
		}
		switch {
		case num == fDocVersion && typ == protowire.VarintType:
			v, err := w.varint()
			if err != nil {
				return nil, err
			}
			doc.Version = int32(v)
		case num == fDocUUID && typ == protowire.BytesType:
			if doc.UUID, err = decodeUUIDField(w); err != nil {
				return nil, err
			}
		case num == fDocName && typ == protowire.BytesType:
			if doc.Name, err = decodeString(w); err != nil {
				return nil, err
			}
		case num == fDocApplication && typ == protowire.BytesType:
			sub, abs, err := w.bytes()
			if err != nil {
				return nil, err
			}
			if doc.Application, err = decodeApplication(sub, abs); err != nil {
				return nil, err
			}
		case num == fDocCue && typ == protowire.BytesType:
			sub, abs, err := w.bytes()
			if err != nil {
				return nil, err
			}
			cue, err := decodeCue(sub, abs)
			if err != nil {
				return nil, err
			}
			doc.Cues = append(doc.Cues, cue)
		case num == fDocCueGroup && typ == protowire.BytesType:
			sub, abs, err := w.bytes()
			if err != nil {
				return nil, err
			}
			cg, err := decodeCueGroup(sub, abs)
			if err != nil {
				return nil, err
			}
			doc.CueGroups = append(doc.CueGroups, cg)
		case num == fDocArrangement && typ == protowire.BytesType:
			sub, abs, err := w.bytes()
			if err != nil {
				return nil, err
			}
			arr, err := decodeArrangement(sub, abs)
			if err != nil {
				return nil, err
			}
			doc.Arrangements = append(doc.Arrangements, arr)
		case num == fDocSelectedArrangement && typ == protowire.BytesType:
			if doc.SelectedArrangement, err = decodeUUIDField(w); err != nil {
				return nil, err
			}
		case num == fDocCategory && typ == protowire.BytesType:
			if doc.Category, err = decodeString(w); err != nil {
				return nil, err
			}
		default:
			if err := w.keep(&doc.Unknown, num, typ); err != nil {
				return nil, err
			}
		}
	}
	return doc, nil
}

func decodeApplication(data []byte, base int) (*presentation.ApplicationInfo, error) {
	app := &presentation.ApplicationInfo{}
	w := &walker{data: data, base: base}
	for !w.done() {
		num, typ, err := w.next()
		if err != nil {
			return nil, err
		}
		switch {
		case num == fAppPlatform && typ == protowire.VarintType:
			v, err := w.varint()
			if err != nil {
				return nil, err
			}
			app.Platform = int32(v)
		case num == fAppPlatformVersion && typ == protowire.BytesType:
			sub, abs, err := w.bytes()
			if err != nil {
				return nil, err
			}
			if app.PlatformVersion, err = decodeVersion(sub, abs); err != nil {
				return nil, err
			}
		case num == fAppApplication && typ == protowire.VarintType:
			v, err := w.varint()
			if err != nil {
				return nil, err
			}
			app.Application = int32(v)
		case num == fAppApplicationVersion && typ == protowire.BytesType:
			sub, abs, err := w.bytes()
			if err != nil {
				return nil, err
			}
			if app.ApplicationVersion, err = decodeVersion(sub, abs); err != nil {
				return nil, err
			}
		default:
			if err := w.keep(&app.Unknown, num, typ); err != nil {
				return nil, err
			}
		}
	}
	return app, nil
}

func decodeVersion(data []byte, base int) (presentation.Version, error) {
	var ver presentation.Version
	w := &walker{data: data, base: base}
	for !w.done() {
		num, typ, err := w.next()
		if err != nil {
			return ver, err
		}
		switch {
		case num == fVerMajor && typ == protowire.VarintType:
			v, err := w.varint()
			if err != nil {
				return ver, err
			}
			ver.Major = int32(v)
		case num == fVerMinor && typ == protowire.VarintType:
			v, err := w.varint()
			if err != nil {
				return ver, err
			}
			ver.Minor = int32(v)
		case num == fVerPatch && typ == protowire.VarintType:
			v, err := w.varint()
			if err != nil {
				return ver, err
			}
			ver.Patch = int32(v)
		case num == fVerBuild && typ == protowire.BytesType:
			if ver.Build, err = decodeString(w); err != nil {
				return ver, err
			}
		default:
			if _, err := w.skip(num, typ); err != nil {
				return ver, err
			}
		}
	}
	return ver, nil
}

func decodeCue(data []byte, base int) (*presentation.Cue, error) {
	cue := &presentation.Cue{}
	w := &walker{data: data, base: base}
	for !w.done() {
		num, typ, err := w.next()
		if err != nil {
			return nil, err
		}
		switch {
		case num == fCueUUID && typ == protowire.BytesType:
			if cue.UUID, err = decodeUUIDField(w); err != nil {
				return nil, err
			}
		case num == fCueName && typ == protowire.BytesType:
			if cue.Name, err = decodeString(w); err != nil {
				return nil, err
			}
		case num == fCueAction && typ == protowire.BytesType:
			sub, abs, err := w.bytes()
			if err != nil {
				return nil, err
			}
			act, err := decodeAction(sub, abs)
			if err != nil {
				return nil, err
			}
			cue.Actions = append(cue.Actions, act)
		case num == fCueIsEnabled && typ == protowire.VarintType:
			v, err := w.varint()
			if err != nil {
				return nil, err
			}
			cue.IsEnabled = v != 0
		case num == fCueCompletionTargetType && typ == protowire.VarintType:
			v, err := w.varint()
			if err != nil {
				return nil, err
			}
			cue.CompletionTargetType = int32(v)
		case num == fCueCompletionTargetUUID && typ == protowire.BytesType:
			if cue.CompletionTargetUUID, err = decodeUUIDField(w); err != nil {
				return nil, err
			}
		case num == fCueCompletionActionType && typ == protowire.VarintType:
			v, err := w.varint()
			if err != nil {
				return nil, err
			}
			cue.CompletionActionType = int32(v)
		case num == fCueCompletionTime && typ == protowire.Fixed64Type:
			if cue.CompletionTime, err = w.double(); err != nil {
				return nil, err
			}
		default:
			if err := w.keep(&cue.Unknown, num, typ); err != nil {
				return nil, err
			}
		}
	}
	return cue, nil
}

func decodeAction(data []byte, base int) (*presentation.Action, error) {
	act := &presentation.Action{}
	w := &walker{data: data, base: base}
	for !w.done() {
		num, typ, err := w.next()
		if err != nil {
			return nil, err
		}
		switch {
		case num == fActUUID && typ == protowire.BytesType:
			if act.UUID, err = decodeUUIDField(w); err != nil {
				return nil, err
			}
		case num == fActName && typ == protowire.BytesType:
			if act.Name, err = decodeString(w); err != nil {
				return nil, err
			}
		case num == fActType && typ == protowire.VarintType:
			v, err := w.varint()
			if err != nil {
				return nil, err
			}
			act.Type = presentation.ActionType(v)
		case num == fActIsEnabled && typ == protowire.VarintType:
			v, err := w.varint()
			if err != nil {
				return nil, err
			}
			act.IsEnabled = v != 0
		case num == fActDelayTime && typ == protowire.Fixed64Type:
			if act.DelayTime, err = w.double(); err != nil {
				return nil, err
			}
		case num == fActDuration && typ == protowire.Fixed64Type:
			if act.Duration, err = w.double(); err != nil {
				return nil, err
			}
		case num == fActSlide && typ == protowire.BytesType:
			sub, abs, err := w.bytes()
			if err != nil {
				return nil, err
			}
			if act.Slide, err = decodePresentationSlide(sub, abs); err != nil {
				return nil, err
			}
		case num == fActProp && typ == protowire.BytesType:
			sub, abs, err := w.bytes()
			if err != nil {
				return nil, err
			}
			if act.Prop, err = decodePropSlide(sub, abs); err != nil {
				return nil, err
			}
		default:
			if err := w.keep(&act.Unknown, num, typ); err != nil {
				return nil, err
			}
		}
	}
	return act, nil
}

func decodePresentationSlide(data []byte, base int) (*presentation.PresentationSlide, error) {
	ps := &presentation.PresentationSlide{}
	w := &walker{data: data, base: base}
	for !w.done() {
		num, typ, err := w.next()
		if err != nil {
			return nil, err
		}
		switch {
		case num == fPSlideBackgroundRef && typ == protowire.BytesType:
			if ps.BackgroundRef, err = decodeString(w); err != nil {
				return nil, err
			}
		case num == fPSlideLayoutName && typ == protowire.BytesType:
			if ps.LayoutName, err = decodeString(w); err != nil {
				return nil, err
			}
		case num == fPSlideSlide && typ == protowire.BytesType:
			sub, abs, err := w.bytes()
			if err != nil {
				return nil, err
			}
			if ps.Slide, err = decodeSlide(sub, abs); err != nil {
				return nil, err
			}
		default:
			if err := w.keep(&ps.Unknown, num, typ); err != nil {
				return nil, err
			}
		}
	}
	return ps, nil
}

func decodePropSlide(data []byte, base int) (*presentation.PropSlide, error) {
	p := &presentation.PropSlide{}
	w := &walker{data: data, base: base}
	for !w.done() {
		num, typ, err := w.next()
		if err != nil {
			return nil, err
		}
		switch {
		case num == fPropUUID && typ == protowire.BytesType:
			if p.UUID, err = decodeUUIDField(w); err != nil {
				return nil, err
			}
		default:
			if err := w.keep(&p.Unknown, num, typ); err != nil {
				return nil, err
			}
		}
	}
	return p, nil
}

func decodeSlide(data []byte, base int) (*presentation.Slide, error) {
	s := &presentation.Slide{}
	w := &walker{data: data, base: base}
	for !w.done() {
		num, typ, err := w.next()
		if err != nil {
			return nil, err
		}
		switch {
		case num == fSlideUUID && typ == protowire.BytesType:
			if s.UUID, err = decodeUUIDField(w); err != nil {
				return nil, err
			}
		case num == fSlideSize && typ == protowire.BytesType:
			sub, abs, err := w.bytes()
			if err != nil {
				return nil, err
			}
			if s.Size, err = decodeSize(sub, abs); err != nil {
				return nil, err
			}
		case num == fSlideDrawsBackground && typ == protowire.VarintType:
			v, err := w.varint()
			if err != nil {
				return nil, err
			}
			s.DrawsBackgroundColor = v != 0
		case num == fSlideBackgroundColor && typ == protowire.BytesType:
			sub, abs, err := w.bytes()
			if err != nil {
				return nil, err
			}
			c, err := decodeColor(sub, abs)
			if err != nil {
				return nil, err
			}
			s.BackgroundColor = &c
		case num == fSlideBackgroundMedia && typ == protowire.BytesType:
			if s.BackgroundMedia, err = decodeString(w); err != nil {
				return nil, err
			}
		case num == fSlideElement && typ == protowire.BytesType:
			sub, abs, err := w.bytes()
			if err != nil {
				return nil, err
			}
			el, err := decodeElement(sub, abs)
			if err != nil {
				return nil, err
			}
			s.Elements = append(s.Elements, el)
		default:
			if err := w.keep(&s.Unknown, num, typ); err != nil {
				return nil, err
			}
		}
	}
	return s, nil
}

func decodeElement(data []byte, base int) (*presentation.Element, error) {
	el := &presentation.Element{}
	w := &walker{data: data, base: base}
	for !w.done() {
		num, typ, err := w.next()
		if err != nil {
			return nil, err
		}
		switch {
		case num == fElemUUID && typ == protowire.BytesType:
			if el.UUID, err = decodeUUIDField(w); err != nil {
				return nil, err
			}
		case num == fElemBounds && typ == protowire.BytesType:
			sub, abs, err := w.bytes()
			if err != nil {
				return nil, err
			}
			if el.Bounds, err = decodeRect(sub, abs); err != nil {
				return nil, err
			}
		case num == fElemText && typ == protowire.BytesType:
			sub, abs, err := w.bytes()
			if err != nil {
				return nil, err
			}
			if el.Text, err = decodeText(sub, abs); err != nil {
				return nil, err
			}
		case num == fElemMedia && typ == protowire.BytesType:
			sub, abs, err := w.bytes()
			if err != nil {
				return nil, err
			}
			if el.Media, err = decodeMedia(sub, abs); err != nil {
				return nil, err
			}
		default:
			if err := w.keep(&el.Unknown, num, typ); err != nil {
				return nil, err
			}
		}
	}
	return el, nil
}

func decodeText(data []byte, base int) (*presentation.TextElement, error) {
	t := &presentation.TextElement{}
	w := &walker{data: data, base: base}
	for !w.done() {
		num, typ, err := w.next()
		if err != nil {
			return nil, err
		}
		switch {
		case num == fTextRTFData && typ == protowire.BytesType:
			sub, _, err := w.bytes()
			if err != nil {
				return nil, err
			}
			t.RTFData = append([]byte(nil), sub...)
		case num == fTextFont && typ == protowire.BytesType:
			sub, abs, err := w.bytes()
			if err != nil {
				return nil, err
			}
			if t.Font, err = decodeFont(sub, abs); err != nil {
				return nil, err
			}
		case num == fTextColor && typ == protowire.BytesType:
			sub, abs, err := w.bytes()
			if err != nil {
				return nil, err
			}
			if t.Color, err = decodeColor(sub, abs); err != nil {
				return nil, err
			}
		case num == fTextAlignment && typ == protowire.VarintType:
			v, err := w.varint()
			if err != nil {
				return nil, err
			}
			t.Alignment = presentation.Alignment(v)
		case num == fTextShadow && typ == protowire.BytesType:
			sub, abs, err := w.bytes()
			if err != nil {
				return nil, err
			}
			sh, err := decodeShadow(sub, abs)
			if err != nil {
				return nil, err
			}
			t.Shadow = &sh
		default:
			if err := w.keep(&t.Unknown, num, typ); err != nil {
				return nil, err
			}
		}
	}
	return t, nil
}

func decodeMedia(data []byte, base int) (*presentation.MediaElement, error) {
	m := &presentation.MediaElement{}
	w := &walker{data: data, base: base}
	for !w.done() {
		num, typ, err := w.next()
		if err != nil {
			return nil, err
		}
		switch {
		case num == fMediaURL && typ == protowire.BytesType:
			if m.URL, err = decodeString(w); err != nil {
				return nil, err
			}
		case num == fMediaFit && typ == protowire.VarintType:
			v, err := w.varint()
			if err != nil {
				return nil, err
			}
			m.Fit = int32(v)
		case num == fMediaOpacity && typ == protowire.Fixed64Type:
			if m.Opacity, err = w.double(); err != nil {
				return nil, err
			}
		default:
			if err := w.keep(&m.Unknown, num, typ); err != nil {
				return nil, err
			}
		}
	}
	return m, nil
}

func decodeFont(data []byte, base int) (presentation.Font, error) {
	var f presentation.Font
	w := &walker{data: data, base: base}
	for !w.done() {
		num, typ, err := w.next()
		if err != nil {
			return f, err
		}
		switch {
		case num == fFontName && typ == protowire.BytesType:
			if f.Name, err = decodeString(w); err != nil {
				return f, err
			}
		case num == fFontSize && typ == protowire.Fixed64Type:
			if f.Size, err = w.double(); err != nil {
				return f, err
			}
		case num == fFontBold && typ == protowire.VarintType:
			v, err := w.varint()
			if err != nil {
				return f, err
			}
			f.Bold = v != 0
		case num == fFontItalic && typ == protowire.VarintType:
			v, err := w.varint()
			if err != nil {
				return f, err
			}
			f.Italic = v != 0
		case num == fFontFamily && typ == protowire.BytesType:
			if f.Family, err = decodeString(w); err != nil {
				return f, err
			}
		case num == fFontFace && typ == protowire.BytesType:
			if f.Face, err = decodeString(w); err != nil {
				return f, err
			}
		default:
			if err := w.keep(&f.Unknown, num, typ); err != nil {
				return f, err
			}
		}
	}
	return f, nil
}

func decodeColor(data []byte, base int) (presentation.Color, error) {
	var c presentation.Color
	w := &walker{data: data, base: base}
	for !w.done() {
		num, typ, err := w.next()
		if err != nil {
			return c, err
		}
		if typ != protowire.Fixed64Type {
			if _, err := w.skip(num, typ); err != nil {
				return c, err
			}
			continue
		}
		v, err := w.double()
		if err != nil {
			return c, err
		}
		switch num {
		case fColorRed:
			c.Red = v
		case fColorGreen:
			c.Green = v
		case fColorBlue:
			c.Blue = v
		case fColorAlpha:
			c.Alpha = v
		}
	}
	return c, nil
}

func decodeSize(data []byte, base int) (presentation.Size, error) {
	var s presentation.Size
	w := &walker{data: data, base: base}
	for !w.done() {
		num, typ, err := w.next()
		if err != nil {
			return s, err
		}
		if typ != protowire.Fixed64Type {
			if _, err := w.skip(num, typ); err != nil {
				return s, err
			}
			continue
		}
		v, err := w.double()
		if err != nil {
			return s, err
		}
		switch num {
		case fSizeWidth:
			s.Width = v
		case fSizeHeight:
			s.Height = v
		}
	}
	return s, nil
}

func decodePoint(data []byte, base int) (presentation.Point, error) {
	var p presentation.Point
	w := &walker{data: data, base: base}
	for !w.done() {
		num, typ, err := w.next()
		if err != nil {
			return p, err
		}
		if typ != protowire.Fixed64Type {
			if _, err := w.skip(num, typ); err != nil {
				return p, err
			}
			continue
		}
		v, err := w.double()
		if err != nil {
			return p, err
		}
		switch num {
		case fPointX:
			p.X = v
		case fPointY:
			p.Y = v
		}
	}
	return p, nil
}

func decodeRect(data []byte, base int) (presentation.Rect, error) {
	var r presentation.Rect
	w := &walker{data: data, base: base}
	for !w.done() {
		num, typ, err := w.next()
		if err != nil {
			return r, err
		}
		switch {
		case num == fRectOrigin && typ == protowire.BytesType:
			sub, abs, err := w.bytes()
			if err != nil {
				return r, err
			}
			if r.Origin, err = decodePoint(sub, abs); err != nil {
				return r, err
			}
		case num == fRectSize && typ == protowire.BytesType:
			sub, abs, err := w.bytes()
			if err != nil {
				return r, err
			}
			if r.Size, err = decodeSize(sub, abs); err != nil {
				return r, err
			}
		default:
			if _, err := w.skip(num, typ); err != nil {
				return r, err
			}
		}
	}
	return r, nil
}

func decodeShadow(data []byte, base int) (presentation.Shadow, error) {
	var sh presentation.Shadow
	w := &walker{data: data, base: base}
	for !w.done() {
		num, typ, err := w.next()
		if err != nil {
			return sh, err
		}
		switch {
		case num == fShadowColor && typ == protowire.BytesType:
			sub, abs, err := w.bytes()
			if err != nil {
				return sh, err
			}
			if sh.Color, err = decodeColor(sub, abs); err != nil {
				return sh, err
			}
		case num == fShadowRadius && typ == protowire.Fixed64Type:
			if sh.Radius, err = w.double(); err != nil {
				return sh, err
			}
		case num == fShadowOffset && typ == protowire.BytesType:
			sub, abs, err := w.bytes()
			if err != nil {
				return sh, err
			}
			if sh.Offset, err = decodePoint(sub, abs); err != nil {
				return sh, err
			}
		case num == fShadowOpacity && typ == protowire.Fixed64Type:
			if sh.Opacity, err = w.double(); err != nil {
				return sh, err
			}
		case num == fShadowAngle && typ == protowire.Fixed64Type:
			if sh.Angle, err = w.double(); err != nil {
				return sh, err
			}
		case num == fShadowEnabled && typ == protowire.VarintType:
			v, err := w.varint()
			if err != nil {
				return sh, err
			}
			sh.Enabled = v != 0
		default:
			if err := w.keep(&sh.Unknown, num, typ); err != nil {
				return sh, err
			}
		}
	}
	return sh, nil
}

func decodeGroup(data []byte, base int) (*presentation.Group, error) {
	g := &presentation.Group{}
	w := &walker{data: data, base: base}
	for !w.done() {
		num, typ, err := w.next()
		if err != nil {
			return nil, err
		}
		switch {
		case num == fGroupUUID && typ == protowire.BytesType:
			if g.UUID, err = decodeUUIDField(w); err != nil {
				return nil, err
			}
		case num == fGroupName && typ == protowire.BytesType:
			if g.Name, err = decodeString(w); err != nil {
				return nil, err
			}
		case num == fGroupColor && typ == protowire.BytesType:
			sub, abs, err := w.bytes()
			if err != nil {
				return nil, err
			}
			if g.Color, err = decodeColor(sub, abs); err != nil {
				return nil, err
			}
		case num == fGroupAppID && typ == protowire.BytesType:
			if g.ApplicationGroupID, err = decodeString(w); err != nil {
				return nil, err
			}
		case num == fGroupAppName && typ == protowire.BytesType:
			if g.ApplicationGroupName, err = decodeString(w); err != nil {
				return nil, err
			}
		default:
			if err := w.keep(&g.Unknown, num, typ); err != nil {
				return nil, err
			}
		}
	}
	return g, nil
}

func decodeCueGroup(data []byte, base int) (*presentation.CueGroup, error) {
	cg := &presentation.CueGroup{}
	w := &walker{data: data, base: base}
	for !w.done() {
		num, typ, err := w.next()
		if err != nil {
			return nil, err
		}
		switch {
		case num == fCueGroupGroup && typ == protowire.BytesType:
			sub, abs, err := w.bytes()
			if err != nil {
				return nil, err
			}
			if cg.Group, err = decodeGroup(sub, abs); err != nil {
				return nil, err
			}
		case num == fCueGroupCue && typ == protowire.BytesType:
			id, err := decodeUUIDField(w)
			if err != nil {
				return nil, err
			}
			cg.CueIdentifiers = append(cg.CueIdentifiers, id)
		default:
			if err := w.keep(&cg.Unknown, num, typ); err != nil {
				return nil, err
			}
		}
	}
	return cg, nil
}

func decodeArrangement(data []byte, base int) (*presentation.Arrangement, error) {
	arr := &presentation.Arrangement{}
	w := &walker{data: data, base: base}
	for !w.done() {
		num, typ, err := w.next()
		if err != nil {
			return nil, err
		}
		switch {
		case num == fArrUUID && typ == protowire.BytesType:
			if arr.UUID, err = decodeUUIDField(w); err != nil {
				return nil, err
			}
		case num == fArrName && typ == protowire.BytesType:
			if arr.Name, err = decodeString(w); err != nil {
				return nil, err
			}
		case num == fArrGroup && typ == protowire.BytesType:
			id, err := decodeUUIDField(w)
			if err != nil {
				return nil, err
			}
			arr.GroupIdentifiers = append(arr.GroupIdentifiers, id)
		default:
			if err := w.keep(&arr.Unknown, num, typ); err != nil {
				return nil, err
			}
		}
	}
	return arr, nil
}

func decodeString(w *walker) (string, error) {
	sub, _, err := w.bytes()
	if err != nil {
		return "", err
	}
	return string(sub), nil
}

// decodeUUIDField reads the uuid wrapper message and returns its string.
func decodeUUIDField(w *walker) (string, error) {
	sub, abs, err := w.bytes()
	if err != nil {
		return "", err
	}
	inner := &walker{data: sub, base: abs}
	var id string
	for !inner.done() {
		num, typ, err := inner.next()
		if err != nil {
			return "", err
		}
		if num == fUUIDString && typ == protowire.BytesType {
			if id, err = decodeString(inner); err != nil {
				return "", err
			}
			continue
		}
		if _, err := inner.skip(num, typ); err != nil {
			return "", err
		}
	}
	return id, nil
}
